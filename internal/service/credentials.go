package service

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/mmcdole/streamverse/internal/domain"
	"github.com/mmcdole/streamverse/internal/store"
)

// CredentialService persists provider API keys. Values from configuration
// act as fallbacks when nothing has been saved yet.
type CredentialService struct {
	state    domain.StateStore
	logger   *slog.Logger
	defaults map[domain.Provider]string
}

// NewCredentialService creates a new credential service
func NewCredentialService(state domain.StateStore, defaults map[domain.Provider]string, logger *slog.Logger) *CredentialService {
	if logger == nil {
		logger = slog.Default()
	}
	d := make(map[domain.Provider]string, len(defaults))
	for p, v := range defaults {
		if v = strings.TrimSpace(v); v != "" {
			d[p] = v
		}
	}
	return &CredentialService{state: state, logger: logger, defaults: d}
}

// Get returns the stored key for p, or the configured default, or ""
func (s *CredentialService) Get(p domain.Provider) string {
	var v string
	err := s.state.Load(store.CredentialKey(p), &v)
	switch {
	case err == nil && v != "":
		return v
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		s.logger.Warn("ignoring unreadable credential", "provider", p, "error", err)
	}
	return s.defaults[p]
}

// Save trims and persists value for p
func (s *CredentialService) Save(p domain.Provider, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.ErrCredentialMissing
	}
	if err := s.state.Save(store.CredentialKey(p), value); err != nil {
		s.logger.Error("failed to persist credential", "provider", p, "error", err)
		return value, err
	}
	s.logger.Info("saved credential", "provider", p)
	return value, nil
}

// Clear forgets the stored key for p
func (s *CredentialService) Clear(p domain.Provider) error {
	return s.state.Delete(store.CredentialKey(p))
}
