package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/streamverse/internal/domain"
	"github.com/mmcdole/streamverse/internal/service"
	"github.com/mmcdole/streamverse/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Route to the focused component
	switch m.Focus {
	case FocusHelp:
		m.Focus = FocusBrowse
		return m, nil
	case FocusInfo:
		return m.handleInfoKey(msg)
	case FocusCredential:
		return m.handleCredentialKey(msg)
	case FocusGenre:
		return m.handleGenreKey(msg)
	case FocusSearch:
		return m.handleSearchKey(msg)
	case FocusChat:
		return m.handleChatKey(msg)
	}

	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.Focus = FocusHelp
		return m, nil

	case key.Matches(msg, Keys.Category):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(domain.Categories) {
			return m, m.selectCategory(domain.Categories[idx].ID)
		}
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		return m, m.cycleCategory(1)

	case key.Matches(msg, Keys.PrevTab):
		return m, m.cycleCategory(-1)

	case key.Matches(msg, Keys.Up):
		m.Grid.MoveUp()
		return m, nil

	case key.Matches(msg, Keys.Down):
		m.Grid.MoveDown()
		return m, nil

	case key.Matches(msg, Keys.Left):
		m.Grid.MoveLeft()
		return m, nil

	case key.Matches(msg, Keys.Right):
		m.Grid.MoveRight()
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.Focus = FocusSearch
		return m, m.SearchInput.Focus()

	case key.Matches(msg, Keys.Escape):
		// Clear an active search
		if m.SearchInput.Value() != "" {
			m.SearchInput.SetValue("")
			m.Session.SetSearch("")
			m.syncGrid()
		}
		return m, nil

	case key.Matches(msg, Keys.Genre):
		if m.Session.GenresVisible() {
			st := m.Session.State()
			m.GenreModal.Show(st.Genres, st.Genre)
			m.Focus = FocusGenre
		}
		return m, nil

	case key.Matches(msg, Keys.ToggleList):
		if item, ok := m.Grid.Selected(); ok {
			return m, m.toggleList(item)
		}
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if item, ok := m.Grid.Selected(); ok {
			m.infoItem = item
			m.Focus = FocusInfo
		}
		return m, nil

	case key.Matches(msg, Keys.HeroList):
		if hero, ok := m.heroItem(); ok {
			return m, m.toggleList(hero)
		}
		return m, nil

	case key.Matches(msg, Keys.Play):
		if hero, ok := m.heroItem(); ok {
			return m, m.notify(fmt.Sprintf("Playing %q", hero.Title))
		}
		return m, nil

	case key.Matches(msg, Keys.Info):
		if hero, ok := m.heroItem(); ok {
			m.infoItem = hero
			m.Focus = FocusInfo
		}
		return m, nil

	case key.Matches(msg, Keys.ChangeKey):
		m.showCatalogKeyModal()
		return m, nil

	case key.Matches(msg, Keys.Chat):
		// Reopening focuses an already open panel without resetting it
		if !m.Chat.IsOpen() {
			m.Chat.Open()
			m.updateLayout()
		}
		m.Focus = FocusChat
		m.syncChat()
		return m, m.ChatPanel.Focus()
	}

	return m, nil
}

func (m Model) handleInfoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.ToggleList):
		return m, m.toggleList(m.infoItem)
	case key.Matches(msg, Keys.Play):
		m.Focus = FocusBrowse
		return m, m.notify(fmt.Sprintf("Playing %q", m.infoItem.Title))
	case key.Matches(msg, Keys.Quit, Keys.Escape, Keys.Enter, Keys.Info):
		m.Focus = FocusBrowse
	}
	return m, nil
}

func (m Model) handleCredentialKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool
	m.KeyModal, cmd, submitted = m.KeyModal.Update(msg)

	if submitted {
		req, ok, err := m.Session.SaveCredential(m.KeyModal.Value())
		if err != nil {
			m.KeyModal.SetError("Please enter an API key.")
			return m, nil
		}
		m.KeyModal.Hide()
		m.Focus = FocusBrowse
		m.syncGrid()
		if ok {
			return m, FetchCmd(m.Session, req, m.opts.FetchTimeout)
		}
		return m, nil
	}

	if !m.KeyModal.IsVisible() {
		m.Session.CloseCredentialPrompt()
		m.Focus = FocusBrowse
	}
	return m, cmd
}

func (m Model) handleGenreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var sel *components.GenreSelection
	m.GenreModal, cmd, sel = m.GenreModal.Update(msg)

	if sel != nil {
		m.Session.SelectGenre(sel.ID)
		m.Grid.ResetCursor()
		m.syncGrid()
	}
	if !m.GenreModal.IsVisible() {
		m.Focus = FocusBrowse
	}
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.SearchInput.SetValue("")
		m.Session.SetSearch("")
		m.SearchInput.Blur()
		m.Focus = FocusBrowse
		m.syncGrid()
		return m, nil
	case "enter", "tab", "down":
		m.SearchInput.Blur()
		m.Focus = FocusBrowse
		return m, nil
	}

	before := m.SearchInput.Value()
	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	if m.SearchInput.Value() != before {
		m.Session.SetSearch(m.SearchInput.Value())
		m.Grid.ResetCursor()
		m.syncGrid()
	}
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.Chat.Close()
		m.ChatPanel.Blur()
		m.ChatPanel.ClearInput()
		m.Focus = FocusBrowse
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		// Back to browsing with the panel left open
		m.ChatPanel.Blur()
		m.Focus = FocusBrowse
		return m, nil

	case key.Matches(msg, Keys.ModeSearch):
		m.Chat.SwitchMode(domain.ModeSearch)
		m.syncChat()
		return m, nil

	case key.Matches(msg, Keys.ModeThink):
		m.Chat.SwitchMode(domain.ModeThinking)
		m.syncChat()
		return m, nil
	}

	var cmd tea.Cmd
	var submitted bool
	m.ChatPanel, cmd, submitted = m.ChatPanel.Update(msg)
	if !submitted {
		return m, cmd
	}

	text := m.ChatPanel.Value()
	if m.Chat.Phase() == service.ChatAwaitingCredential {
		if err := m.Chat.SaveCredential(text); err != nil {
			return m, nil
		}
		m.ChatPanel.ClearInput()
		m.syncChat()
		return m, nil
	}

	req, ok := m.Chat.Submit(text)
	if !ok {
		return m, nil
	}
	m.ChatPanel.ClearInput()
	m.syncChat()
	return m, SendChatCmd(m.Chat, req, m.opts.ChatTimeout)
}

// heroItem returns the featured item shown in the banner
func (m Model) heroItem() (domain.ContentItem, bool) {
	st := m.Session.State()
	if st.Loading || st.Error != "" || st.Credential == "" {
		return domain.ContentItem{}, false
	}
	return m.Session.Hero()
}
