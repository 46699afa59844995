package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/streamverse/internal/tui/styles"
)

// InputModal is a masked text input modal used for API keys
type InputModal struct {
	visible     bool
	dismissable bool
	title       string
	lines       []string
	errText     string
	input       textinput.Model
}

// NewInputModal creates a new input modal
func NewInputModal() InputModal {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 44
	ti.Prompt = "› "
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return InputModal{
		input: ti,
	}
}

// Show displays the modal. When dismissable is false, esc does nothing.
func (m *InputModal) Show(title, placeholder string, dismissable bool, lines ...string) {
	m.visible = true
	m.dismissable = dismissable
	m.title = title
	m.lines = lines
	m.errText = ""
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
}

// Hide dismisses the modal
func (m *InputModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the current input value
func (m InputModal) Value() string {
	return m.input.Value()
}

// SetError shows text under the input
func (m *InputModal) SetError(text string) {
	m.errText = text
}

// Update handles input events, returns (modal, cmd, submitted)
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, nil, true
		case "esc":
			if m.dismissable {
				m.Hide()
			}
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.errText = ""
	return m, cmd, false
}

// View renders the input modal
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 52

	block := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.SlateDark)

	rows := []string{block.Inherit(styles.TitleStyle).Render(m.title), block.Render("")}
	for _, line := range m.lines {
		rows = append(rows, block.Foreground(styles.LightGray).Render(line))
	}
	if len(m.lines) > 0 {
		rows = append(rows, block.Render(""))
	}
	rows = append(rows, block.Render(m.input.View()))

	if m.errText != "" {
		rows = append(rows, block.Inherit(styles.ErrorStyle).Render(m.errText))
	}

	hint := "enter save"
	if m.dismissable {
		hint += " · esc cancel"
	}
	rows = append(rows, block.Render(""), block.Inherit(styles.DimStyle).Render(hint))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
