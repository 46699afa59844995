package components

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/streamverse/internal/domain"
	"github.com/mmcdole/streamverse/internal/tui/styles"
)

const (
	chatHeaderLines = 2 // title + mode bar
	chatInputLines  = 2 // separator + input
	keyPlaceholder  = "Paste your Gemini API key"
)

// ChatContent is what the panel displays
type ChatContent struct {
	Messages    []domain.ChatMessage
	Mode        domain.ChatMode
	Placeholder string
	NeedsKey    bool
	Pending     bool
}

// ChatPanel is the assistant side panel
type ChatPanel struct {
	content  ChatContent
	viewport viewport.Model
	input    textinput.Model
	width    int
	height   int

	md      *glamour.TermRenderer
	mdWidth int
	logger  *slog.Logger
}

// NewChatPanel creates a new chat panel
func NewChatPanel(logger *slog.Logger) ChatPanel {
	if logger == nil {
		logger = slog.Default()
	}
	ti := textinput.New()
	ti.Prompt = "› "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Indigo)
	ti.PlaceholderStyle = styles.DimStyle
	ti.CharLimit = 2000

	return ChatPanel{
		viewport: viewport.New(0, 0),
		input:    ti,
		logger:   logger,
	}
}

// SetSize sets the panel's outer dimensions
func (p *ChatPanel) SetSize(width, height int) {
	p.width = width
	p.height = height

	inner := max(10, width-4)
	p.viewport.Width = inner
	p.viewport.Height = max(1, height-2-chatHeaderLines-chatInputLines)
	p.input.Width = inner - 3
	p.render()
}

// Focus focuses the input
func (p *ChatPanel) Focus() tea.Cmd {
	return p.input.Focus()
}

// Blur blurs the input
func (p *ChatPanel) Blur() {
	p.input.Blur()
}

// Value returns the typed text
func (p ChatPanel) Value() string {
	return p.input.Value()
}

// ClearInput empties the input
func (p *ChatPanel) ClearInput() {
	p.input.SetValue("")
}

// SetContent updates what the panel shows and scrolls to the latest message
func (p *ChatPanel) SetContent(c ChatContent) {
	keyModeChanged := c.NeedsKey != p.content.NeedsKey
	p.content = c

	if c.NeedsKey {
		p.input.EchoMode = textinput.EchoPassword
		p.input.EchoCharacter = '•'
		p.input.Placeholder = keyPlaceholder
	} else {
		p.input.EchoMode = textinput.EchoNormal
		p.input.Placeholder = c.Placeholder
	}
	if keyModeChanged {
		p.input.SetValue("")
	}
	p.render()
}

// Update handles input. submitted reports an enter press.
func (p ChatPanel) Update(msg tea.Msg) (ChatPanel, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return p, nil, true
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			p.viewport, cmd = p.viewport.Update(msg)
			return p, cmd, false
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

// render rebuilds the transcript into the viewport
func (p *ChatPanel) render() {
	if p.width == 0 {
		return
	}

	if p.content.NeedsKey {
		p.viewport.SetContent(lipgloss.NewStyle().Width(p.viewport.Width).Render(
			styles.TitleStyle.Render("Gemini API key required") + "\n\n" +
				styles.SubtitleStyle.Render("The assistant needs a Google Gemini API key. "+
					"Create one in Google AI Studio, then paste it below and press enter.")))
		return
	}

	var blocks []string
	for _, msg := range p.content.Messages {
		blocks = append(blocks, p.renderMessage(msg))
	}
	if p.content.Pending {
		blocks = append(blocks, styles.DimStyle.Render("• • •"))
	}
	p.viewport.SetContent(strings.Join(blocks, "\n\n"))
	p.viewport.GotoBottom()
}

func (p *ChatPanel) renderMessage(msg domain.ChatMessage) string {
	width := p.viewport.Width
	if msg.Role == domain.RoleUser {
		bubble := styles.UserBubbleStyle.MaxWidth(width).Width(min(width, lipgloss.Width(msg.Text)+2)).Render(msg.Text)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}

	body := p.markdown(msg.Text, width)
	if len(msg.Sources) == 0 {
		return body
	}

	lines := []string{body, styles.DimStyle.Render("Sources:")}
	for i, src := range msg.Sources {
		title := src.Title
		if title == "" {
			title = src.URI
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, styles.LinkStyle.Render(styles.Truncate(title, width-4))))
		lines = append(lines, "   "+styles.DimStyle.Render(styles.Truncate(src.URI, width-4)))
	}
	return strings.Join(lines, "\n")
}

// markdown renders text with glamour, falling back to plain wrapping
func (p *ChatPanel) markdown(text string, width int) string {
	if p.md == nil || p.mdWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(styles.MarkdownStyle()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			p.logger.Warn("markdown renderer unavailable", "error", err)
			p.md = nil
		} else {
			p.md = r
			p.mdWidth = width
		}
	}

	if p.md != nil {
		if out, err := p.md.Render(text); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// View renders the panel
func (p ChatPanel) View() string {
	if p.width == 0 {
		return ""
	}

	inner := max(10, p.width-4)
	header := styles.ChatHeaderStyle.Width(inner).Render("StreamVerse Assistant")
	modes := p.renderModes()
	sep := styles.DimStyle.Render(strings.Repeat("─", inner))

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		modes,
		p.viewport.View(),
		sep,
		p.input.View(),
	)
	return styles.ChatPanelStyle.Width(p.width - 2).Height(p.height - 2).Render(body)
}

func (p ChatPanel) renderModes() string {
	tag := func(label, hint string, mode domain.ChatMode) string {
		if p.content.Mode == mode {
			return styles.ModeActiveStyle.Render(label)
		}
		return styles.ModeInactiveStyle.Render(label + " " + hint)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		tag("Search", "C-s", domain.ModeSearch),
		tag("Thinking", "C-t", domain.ModeThinking),
	)
}
