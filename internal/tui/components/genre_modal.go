package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/streamverse/internal/domain"
	"github.com/mmcdole/streamverse/internal/search"
	"github.com/mmcdole/streamverse/internal/tui/styles"
)

const (
	genreModalWidth = 34
	genreModalRows  = 10
	allGenresLabel  = "All Genres"
)

// GenreSelection is the user's genre choice (domain.NoGenre = all)
type GenreSelection struct {
	ID int
}

// GenreModal is a type-to-filter genre picker
type GenreModal struct {
	visible bool
	genres  []domain.Genre
	active  int
	input   textinput.Model
	matches []search.GenreMatch
	cursor  int
	offset  int
}

// NewGenreModal creates a new genre modal
func NewGenreModal() GenreModal {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.Width = genreModalWidth - 4
	return GenreModal{input: ti}
}

// Show opens the picker with the cursor on the active genre
func (m *GenreModal) Show(genres []domain.Genre, active int) {
	m.visible = true
	m.genres = genres
	m.active = active
	m.input.SetValue("")
	m.input.Focus()
	m.refilter()

	for i, row := range m.rows() {
		if row.Genre.ID == active {
			m.cursor = i
			break
		}
	}
	m.scrollToCursor()
}

// Hide dismisses the picker
func (m *GenreModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m GenreModal) IsVisible() bool {
	return m.visible
}

// rows returns the visible choices; "All Genres" leads when unfiltered
func (m GenreModal) rows() []search.GenreMatch {
	if strings.TrimSpace(m.input.Value()) != "" {
		return m.matches
	}
	all := search.GenreMatch{Genre: domain.Genre{ID: domain.NoGenre, Name: allGenresLabel}}
	return append([]search.GenreMatch{all}, m.matches...)
}

func (m *GenreModal) refilter() {
	m.matches = search.Genres(m.input.Value(), m.genres)
	m.cursor = 0
	m.offset = 0
}

func (m *GenreModal) scrollToCursor() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+genreModalRows {
		m.offset = m.cursor - genreModalRows + 1
	}
}

// Update handles a message. Returns a non-nil selection when the user confirms.
func (m GenreModal) Update(msg tea.Msg) (GenreModal, tea.Cmd, *GenreSelection) {
	if !m.visible {
		return m, nil, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		rows := m.rows()
		switch keyMsg.String() {
		case "down", "ctrl+n":
			if m.cursor < len(rows)-1 {
				m.cursor++
				m.scrollToCursor()
			}
			return m, nil, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
				m.scrollToCursor()
			}
			return m, nil, nil
		case "enter":
			if len(rows) == 0 {
				return m, nil, nil
			}
			m.Hide()
			return m, nil, &GenreSelection{ID: rows[m.cursor].Genre.ID}
		case "esc":
			m.Hide()
			return m, nil, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd, nil
}

// View renders the picker
func (m GenreModal) View() string {
	if !m.visible {
		return ""
	}

	lines := []string{
		styles.ModalTitleStyle.Render("Filter by Genre"),
		m.input.View(),
		"",
	}

	rows := m.rows()
	if len(rows) == 0 {
		lines = append(lines, styles.DimStyle.Render("No matching genres"))
	}
	end := min(m.offset+genreModalRows, len(rows))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], i == m.cursor))
	}
	if end < len(rows) {
		lines = append(lines, styles.DimStyle.Render("  ↓ more"))
	}

	return styles.ModalStyle.Width(genreModalWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m GenreModal) renderRow(row search.GenreMatch, selected bool) string {
	prefix := "  "
	if row.Genre.ID == m.active {
		prefix = "✓ "
	}

	base := lipgloss.NewStyle().Foreground(styles.LightGray)
	hl := styles.MatchHighlightStyle
	if selected {
		base = styles.SelectedRowStyle
		hl = hl.Background(styles.SlateLight)
	}

	matched := make(map[int]bool, len(row.MatchedIndexes))
	for _, idx := range row.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	b.WriteString(base.Render(prefix))
	for i, r := range row.Genre.Name {
		if matched[i] {
			b.WriteString(hl.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	width := lipgloss.Width(prefix + row.Genre.Name)
	if pad := genreModalWidth - 4 - width; pad > 0 {
		b.WriteString(base.Render(strings.Repeat(" ", pad)))
	}
	return b.String()
}
