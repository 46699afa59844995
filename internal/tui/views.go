package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/streamverse/internal/domain"
	"github.com/mmcdole/streamverse/internal/tui/styles"
)

const (
	emptyDefault = "No content found. Try adjusting your search or filter."
	emptyMyList  = "Your list is empty. Add movies and shows to see them here!"
	emptyGenre   = "No content found in the selected genre. Try another one!"
	noKeyMessage = "Please enter your TMDb API key to browse content."
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.Focus == FocusHelp {
		return m.renderHelp()
	}

	layout := m.calculateLayout()

	var panes []string
	if layout.mainWidth > 0 {
		main := lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(layout.mainWidth),
			m.renderMain(layout.mainWidth),
		)
		panes = append(panes, lipgloss.NewStyle().
			Width(layout.mainWidth).
			Height(m.Height-FooterHeight).
			MaxHeight(m.Height-FooterHeight).
			Render(main))
	}
	if layout.chatWidth > 0 {
		panes = append(panes, m.ChatPanel.View())
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, panes...),
		m.renderFooter(),
	)

	// Overlay modals
	switch {
	case m.KeyModal.IsVisible():
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.KeyModal.View())
	case m.GenreModal.IsVisible():
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.GenreModal.View())
	case m.Focus == FocusInfo:
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.renderInfo())
	}

	return view
}

// renderHeader renders the logo, category tabs and search box
func (m Model) renderHeader(width int) string {
	st := m.Session.State()

	tabs := []string{styles.LogoStyle.Render("STREAMVERSE"), " "}
	for i, info := range domain.Categories {
		label := fmt.Sprintf("%d %s", i+1, info.Name)
		if info.ID == st.Category {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabStyle.Render(label))
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	right := m.SearchInput.View()
	if m.Focus != FocusSearch && m.SearchInput.Value() == "" {
		right = styles.DimStyle.Render("/ search")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	line := left
	if gap > 0 {
		line = left + strings.Repeat(" ", gap) + right
	}
	rule := styles.DimStyle.Render(strings.Repeat("─", max(width-1, 0)))
	return lipgloss.JoinVertical(lipgloss.Left, line, rule)
}

// renderMain renders the hero, heading and grid (or a status message)
func (m Model) renderMain(width int) string {
	st := m.Session.State()

	if st.Error != "" {
		hint := "Press K to change your API key."
		if m.Session.NeedsCredentialRecovery() {
			hint = "Your TMDb key was rejected. Press K to enter a new one."
		}
		return m.renderCentered(width,
			styles.ErrorStyle.Render(st.Error),
			"",
			styles.AccentStyle.Render(hint),
		)
	}

	if st.Credential == "" && !st.Category.IsLocal() {
		return m.renderCentered(width,
			styles.SubtitleStyle.Render(noKeyMessage),
			"",
			styles.AccentStyle.Render("Press K to enter an API key."),
		)
	}

	var sections []string
	if hero, ok := m.heroItem(); ok {
		sections = append(sections, m.renderHero(hero, width))
	}
	sections = append(sections, m.renderSectionTitle())

	if st.Loading {
		sections = append(sections, m.Grid.View())
	} else if len(m.Session.Filtered()) == 0 {
		sections = append(sections, "", styles.DimStyle.Render("  "+m.emptyMessage()))
	} else {
		sections = append(sections, m.Grid.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderCentered(width int, lines ...string) string {
	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, max(m.Height-HeaderHeight-FooterHeight, 1),
		lipgloss.Center, lipgloss.Center, block)
}

func (m Model) emptyMessage() string {
	st := m.Session.State()
	switch {
	case st.Category == domain.CategoryMyList:
		return emptyMyList
	case st.Genre != domain.NoGenre:
		return emptyGenre
	default:
		return emptyDefault
	}
}

// renderHero renders the featured item banner
func (m Model) renderHero(item domain.ContentItem, width int) string {
	textWidth := max(width-8, 20)

	desc := item.Description
	if desc == "" {
		desc = "No description available."
	}
	descLines := strings.Split(lipgloss.NewStyle().Width(textWidth).Render(desc), "\n")
	if len(descLines) > heroDescriptionLines {
		descLines = descLines[:heroDescriptionLines]
		last := strings.TrimRight(descLines[heroDescriptionLines-1], " ")
		descLines[heroDescriptionLines-1] = styles.Truncate(last, textWidth-1) + "…"
	}
	for len(descLines) < heroDescriptionLines {
		descLines = append(descLines, "")
	}

	listLabel := "+ Add to List (a)"
	if m.Session.IsInList(item.ID) {
		listLabel = "✓ In My List (a)"
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.PrimaryButtonStyle.Render("▶ Play (p)"),
		" ",
		styles.ButtonStyle.Render(listLabel),
		" ",
		styles.ButtonStyle.Render("ⓘ More Info (i)"),
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.HeroTitleStyle.Render(styles.Truncate(item.Title, textWidth)),
		"",
		styles.SubtitleStyle.Render(strings.Join(descLines, "\n")),
		"",
		buttons,
	)
	return styles.HeroStyle.MarginTop(1).Render(body)
}

// renderSectionTitle renders the grid heading with active filters
func (m Model) renderSectionTitle() string {
	title := styles.TitleStyle.Render(m.Session.CategoryTitle())

	var tags []string
	if name := m.Session.GenreName(); name != "" {
		tags = append(tags, "genre: "+name)
	}
	if q := m.Session.State().Search; q != "" {
		tags = append(tags, fmt.Sprintf("search: %q", q))
	}
	if !m.Session.State().Loading {
		tags = append(tags, fmt.Sprintf("%d titles", len(m.Session.Filtered())))
	}
	if m.Session.GenresVisible() {
		tags = append(tags, "g genres")
	}

	line := " " + title
	if len(tags) > 0 {
		line += "  " + styles.DimStyle.Render(strings.Join(tags, " · "))
	}
	return lipgloss.NewStyle().MarginTop(1).Render(line)
}

// renderFooter renders the status line with the notification toast at the right
func (m Model) renderFooter() string {
	st := m.Session.State()

	var left string
	switch {
	case st.Loading:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading "+m.Session.CategoryTitle()+"...")
	case m.Focus == FocusChat:
		left = styles.DimStyle.Render("enter send · C-s search · C-t thinking · tab browse · esc close")
	default:
		left = styles.HelpKeyStyle.Render("?") + styles.HelpDescStyle.Render(" help  ") +
			styles.HelpKeyStyle.Render("c") + styles.HelpDescStyle.Render(" assistant  ") +
			styles.HelpKeyStyle.Render("q") + styles.HelpDescStyle.Render(" quit")
	}

	var right string
	if st.NotificationVisible {
		right = styles.ToastStyle.Render(st.Notification)
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return right
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderInfo renders the details modal
func (m Model) renderInfo() string {
	item := m.infoItem
	const width = 56

	var genreNames []string
	for _, g := range m.Session.State().Genres {
		if item.HasGenre(g.ID) {
			genreNames = append(genreNames, g.Name)
		}
	}

	status := styles.DimStyle.Render("Not in My List")
	if m.Session.IsInList(item.ID) {
		status = styles.SuccessStyle.Render("✓ In My List")
	}

	desc := item.Description
	if desc == "" {
		desc = "No description available."
	}

	lines := []string{
		styles.ModalTitleStyle.Render(item.Title),
		lipgloss.NewStyle().Width(width).Foreground(styles.LightGray).Render(desc),
		"",
	}
	if len(genreNames) > 0 {
		lines = append(lines, styles.DimStyle.Render("Genres: ")+strings.Join(genreNames, ", "))
	}
	if name := item.Category.DisplayName(); name != "" {
		lines = append(lines, styles.DimStyle.Render("Category: ")+name)
	}
	lines = append(lines,
		styles.DimStyle.Render("Poster: ")+styles.LinkStyle.Render(styles.Truncate(item.ImageURL, width-8)),
		status,
		"",
		styles.DimStyle.Render("p play · space add/remove · esc close"),
	)
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSE                          FEATURED
  1-6        Jump to category     p      Play
  tab/S-tab  Next/prev category   a      Add/remove My List
  h/j/k/l    Move in grid         i      More info
  space      Add/remove My List
  enter      Details

FILTER                          ASSISTANT
  /          Search titles        c      Open / focus
  g          Genre picker         C-s    Web search mode
  esc        Clear search         C-t    Thinking mode
                                  esc    Close

OTHER
  K          Change TMDb key
  q          Quit

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// RenderSpinner renders the spinner animation
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}
