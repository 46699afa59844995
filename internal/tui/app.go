package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/streamverse/internal/domain"
	"github.com/mmcdole/streamverse/internal/service"
	"github.com/mmcdole/streamverse/internal/tui/components"
	"github.com/mmcdole/streamverse/internal/tui/styles"
)

// Focus is the component receiving key input
type Focus int

const (
	FocusBrowse Focus = iota
	FocusSearch
	FocusGenre
	FocusCredential
	FocusChat
	FocusInfo
	FocusHelp
)

const (
	tickInterval        = 100 * time.Millisecond
	defaultFetchTimeout = 15 * time.Second
	defaultChatTimeout  = 90 * time.Second
)

// Options configures the model
type Options struct {
	DefaultCategory domain.Category
	FetchTimeout    time.Duration
	ChatTimeout     time.Duration
	Logger          *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	Session *service.SessionController
	Chat    *service.ChatSession

	opts   Options
	logger *slog.Logger

	// Application state
	Focus Focus
	Ready bool

	// UI Components
	SearchInput textinput.Model
	Grid        components.Grid
	GenreModal  components.GenreModal
	KeyModal    components.InputModal
	ChatPanel   components.ChatPanel

	// Item shown in the details modal
	infoItem domain.ContentItem

	// Dimensions
	Width  int
	Height int

	SpinnerFrame int

	initCmd tea.Cmd
}

// NewModel creates a new application model and starts the session
func NewModel(session *service.SessionController, chat *service.ChatSession, opts Options) Model {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if opts.ChatTimeout <= 0 {
		opts.ChatTimeout = defaultChatTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	si := textinput.New()
	si.Placeholder = "Search titles..."
	si.Prompt = "/ "
	si.PromptStyle = styles.AccentStyle
	si.Width = 24

	m := Model{
		Session:     session,
		Chat:        chat,
		opts:        opts,
		logger:      opts.Logger,
		Focus:       FocusBrowse,
		SearchInput: si,
		Grid:        components.NewGrid(),
		GenreModal:  components.NewGenreModal(),
		KeyModal:    components.NewInputModal(),
		ChatPanel:   components.NewChatPanel(opts.Logger),
	}
	m.Grid.SetMembership(session.IsInList)

	if req, ok := session.Init(opts.DefaultCategory); ok {
		m.initCmd = FetchCmd(session, req, opts.FetchTimeout)
	}
	if session.State().CredentialPromptOpen {
		m.showCatalogKeyModal()
	}
	m.syncGrid()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.initCmd,
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		if m.Session.State().Loading || m.Chat.Phase() == service.ChatAwaitingResponse {
			m.SpinnerFrame++
		}
		return m, TickCmd(tickInterval)

	case FetchDoneMsg:
		if m.Session.ApplyFetch(msg.Result) {
			m.syncGrid()
		}
		return m, nil

	case ChatReplyMsg:
		m.Chat.Receive(msg.Reply)
		m.syncChat()
		return m, nil

	case HideNotificationMsg:
		m.Session.HideNotification(msg.Seq)
		return m, nil
	}

	// Other messages (cursor blink) go to the focused input
	var cmd tea.Cmd
	switch m.Focus {
	case FocusSearch:
		m.SearchInput, cmd = m.SearchInput.Update(msg)
	case FocusCredential:
		m.KeyModal, cmd, _ = m.KeyModal.Update(msg)
	case FocusGenre:
		m.GenreModal, cmd, _ = m.GenreModal.Update(msg)
	case FocusChat:
		m.ChatPanel, cmd, _ = m.ChatPanel.Update(msg)
	}
	return m, cmd
}

// selectCategory switches category and starts its fetch
func (m *Model) selectCategory(c domain.Category) tea.Cmd {
	if c == m.Session.State().Category {
		// Re-selecting the active tab only resets its genre filter
		if m.Session.State().Genre != domain.NoGenre {
			m.Session.SelectGenre(domain.NoGenre)
			m.Grid.ResetCursor()
			m.syncGrid()
		}
		return nil
	}
	req, ok := m.Session.SelectCategory(c)
	m.Grid.ResetCursor()
	m.syncGrid()
	if !ok {
		return nil
	}
	return FetchCmd(m.Session, req, m.opts.FetchTimeout)
}

// cycleCategory moves delta tabs through domain.Categories
func (m *Model) cycleCategory(delta int) tea.Cmd {
	current := m.Session.State().Category
	idx := 0
	for i, info := range domain.Categories {
		if info.ID == current {
			idx = i
			break
		}
	}
	n := len(domain.Categories)
	next := domain.Categories[((idx+delta)%n+n)%n].ID
	return m.selectCategory(next)
}

// toggleList adds or removes item and schedules the notification's dismissal
func (m *Model) toggleList(item domain.ContentItem) tea.Cmd {
	n := m.Session.ToggleList(item)
	m.syncGrid()
	return HideNotificationCmd(n.Seq)
}

// notify shows text and schedules its dismissal
func (m *Model) notify(text string) tea.Cmd {
	n := m.Session.Notify(text)
	return HideNotificationCmd(n.Seq)
}

// syncGrid pushes the session's filtered view into the grid
func (m *Model) syncGrid() {
	st := m.Session.State()
	m.Grid.SetLoading(st.Loading)
	m.Grid.SetItems(m.Session.Filtered())
	m.updateLayout()
}

// syncChat pushes the chat session into the panel
func (m *Model) syncChat() {
	m.ChatPanel.SetContent(components.ChatContent{
		Messages:    m.Chat.Messages(),
		Mode:        m.Chat.Mode(),
		Placeholder: m.Chat.Placeholder(),
		NeedsKey:    m.Chat.Phase() == service.ChatAwaitingCredential,
		Pending:     m.Chat.Phase() == service.ChatAwaitingResponse,
	})
}

func (m *Model) showCatalogKeyModal() {
	dismissable := m.Session.State().Credential != ""
	m.KeyModal.Show(
		"Enter your TMDb API Key",
		"Paste your TMDb API Key (v3 auth)",
		dismissable,
		"To fetch real-time movie and show data, StreamVerse requires an API key from The Movie Database (TMDb).",
		"Get a free key at https://www.themoviedb.org/signup",
	)
	m.Session.OpenCredentialPrompt()
	m.Focus = FocusCredential
}
