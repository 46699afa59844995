// Package mylist keeps the user's saved list: an insertion-ordered set of
// catalog items keyed by id, persisted in full after every mutation.
package mylist

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/mmcdole/streamverse/internal/domain"
	"github.com/mmcdole/streamverse/internal/store"
)

// Store is the saved list. It is not safe for concurrent use; callers
// mutate it from the UI event loop only.
type Store struct {
	state  domain.StateStore
	logger *slog.Logger
	items  []domain.ContentItem
}

// Load reads the persisted list. Missing or corrupt data yields an empty list.
func Load(state domain.StateStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{state: state, logger: logger}
	s.items = s.load()
	return s
}

func (s *Store) load() []domain.ContentItem {
	var items []domain.ContentItem
	err := s.state.Load(store.KeyMyList, &items)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		s.logger.Warn("discarding unreadable saved list", "error", err)
		return nil
	}
	return dedupe(items)
}

// dedupe drops repeated ids, keeping the first occurrence
func dedupe(items []domain.ContentItem) []domain.ContentItem {
	seen := make(map[int]bool, len(items))
	out := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}

// Items returns a copy of the current snapshot
func (s *Store) Items() []domain.ContentItem {
	return slices.Clone(s.items)
}

// Contains reports whether an item with id is saved
func (s *Store) Contains(id int) bool {
	return s.indexOf(id) >= 0
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.items, func(item domain.ContentItem) bool {
		return item.ID == id
	})
}

// Toggle removes item if present, otherwise appends it, then persists the
// resulting snapshot. The in-memory list is updated even when saving fails.
func (s *Store) Toggle(item domain.ContentItem) (added bool, snapshot []domain.ContentItem, err error) {
	if i := s.indexOf(item.ID); i >= 0 {
		s.items = slices.Delete(slices.Clone(s.items), i, i+1)
	} else {
		s.items = append(slices.Clone(s.items), item)
		added = true
	}

	snapshot = s.Items()
	if err := s.Save(snapshot); err != nil {
		s.logger.Error("failed to persist saved list", "error", err, "count", len(snapshot))
		return added, snapshot, err
	}
	return added, snapshot, nil
}

// Save persists snapshot as the full saved list
func (s *Store) Save(snapshot []domain.ContentItem) error {
	if snapshot == nil {
		snapshot = []domain.ContentItem{}
	}
	return s.state.Save(store.KeyMyList, snapshot)
}
