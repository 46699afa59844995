package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/streamverse/internal/domain"
	"github.com/mmcdole/streamverse/internal/tui/styles"
)

// Layout constants for grid cards
const (
	// Card inner text width; border adds 2 and padding adds 2
	CardTextWidth  = 20
	CardWidth      = CardTextWidth + 4
	CardTextLines  = 4
	CardHeight     = CardTextLines + 2
	SkeletonCount  = 12
	titleLines     = 2
	scrollHintLine = 1
)

// Grid is the poster grid content browser
type Grid struct {
	items   []domain.ContentItem
	loading bool
	inList  func(id int) bool

	// Selection
	cursor int
	offset int // first visible row

	// Dimensions
	width  int
	height int
}

// NewGrid creates a new grid component
func NewGrid() Grid {
	return Grid{inList: func(int) bool { return false }}
}

// SetSize sets the available area
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.clamp()
}

// SetItems replaces the grid content, keeping the cursor in range
func (g *Grid) SetItems(items []domain.ContentItem) {
	g.items = items
	g.clamp()
}

// SetLoading toggles skeleton cards
func (g *Grid) SetLoading(loading bool) {
	g.loading = loading
}

// SetMembership sets the saved-list lookup used for card badges
func (g *Grid) SetMembership(inList func(id int) bool) {
	if inList != nil {
		g.inList = inList
	}
}

// ResetCursor moves the selection back to the first card
func (g *Grid) ResetCursor() {
	g.cursor = 0
	g.offset = 0
}

// Selected returns the card under the cursor
func (g Grid) Selected() (domain.ContentItem, bool) {
	if g.loading || g.cursor < 0 || g.cursor >= len(g.items) {
		return domain.ContentItem{}, false
	}
	return g.items[g.cursor], true
}

// Cursor returns the selected index
func (g Grid) Cursor() int {
	return g.cursor
}

// Columns returns how many cards fit per row
func (g Grid) Columns() int {
	return max(1, g.width/CardWidth)
}

func (g Grid) visibleRows() int {
	return max(1, (g.height-scrollHintLine)/CardHeight)
}

// MoveLeft moves the cursor one card left
func (g *Grid) MoveLeft() {
	if g.cursor > 0 {
		g.cursor--
	}
	g.clamp()
}

// MoveRight moves the cursor one card right
func (g *Grid) MoveRight() {
	if g.cursor < len(g.items)-1 {
		g.cursor++
	}
	g.clamp()
}

// MoveUp moves the cursor one row up
func (g *Grid) MoveUp() {
	if g.cursor-g.Columns() >= 0 {
		g.cursor -= g.Columns()
	}
	g.clamp()
}

// MoveDown moves the cursor one row down
func (g *Grid) MoveDown() {
	if g.cursor+g.Columns() < len(g.items) {
		g.cursor += g.Columns()
	}
	g.clamp()
}

// clamp keeps cursor and scroll offset valid
func (g *Grid) clamp() {
	if g.cursor >= len(g.items) {
		g.cursor = len(g.items) - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}

	row := g.cursor / g.Columns()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+g.visibleRows() {
		g.offset = row - g.visibleRows() + 1
	}
}

// View renders the grid
func (g Grid) View() string {
	if g.loading {
		return g.renderSkeletons()
	}
	if len(g.items) == 0 {
		return ""
	}

	cols := g.Columns()
	totalRows := (len(g.items) + cols - 1) / cols
	lastRow := min(g.offset+g.visibleRows(), totalRows)

	var rows []string
	for r := g.offset; r < lastRow; r++ {
		var cards []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(g.items) {
				break
			}
			cards = append(cards, g.renderCard(g.items[i], i == g.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	if lastRow < totalRows {
		rows = append(rows, styles.DimStyle.Render("  ↓ more"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (g Grid) renderCard(item domain.ContentItem, selected bool) string {
	style := styles.CardStyle
	titleStyle := styles.SubtitleStyle
	if selected {
		style = styles.CardSelectedStyle
		titleStyle = styles.TitleStyle
	}

	lines := wrapTitle(item.Title, CardTextWidth)
	for i := range lines {
		lines[i] = titleStyle.Render(lines[i])
	}
	for len(lines) < titleLines {
		lines = append(lines, "")
	}

	badge := styles.DimStyle.Render("+ My List")
	if g.inList(item.ID) {
		badge = styles.SuccessStyle.Render("✓ In My List")
	}
	lines = append(lines, "", badge)

	return style.Width(CardTextWidth + 2).Render(strings.Join(lines, "\n"))
}

func (g Grid) renderSkeletons() string {
	cols := g.Columns()
	count := min(SkeletonCount, cols*g.visibleRows())
	body := strings.Join([]string{
		strings.Repeat("░", CardTextWidth),
		strings.Repeat("░", CardTextWidth/2),
		"",
		"",
	}, "\n")

	var rows, cards []string
	for i := 0; i < count; i++ {
		cards = append(cards, styles.SkeletonStyle.Width(CardTextWidth+2).Render(body))
		if len(cards) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
			cards = nil
		}
	}
	if len(cards) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// wrapTitle word-wraps title to at most two lines of width cells
func wrapTitle(title string, width int) []string {
	var lines []string
	var cur string
	for _, word := range strings.Fields(title) {
		switch {
		case cur == "":
			cur = word
		case lipgloss.Width(cur+" "+word) <= width:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}

	if len(lines) > titleLines {
		lines[titleLines-1] = strings.Join(lines[titleLines-1:], " ")
		lines = lines[:titleLines]
	}
	for i := range lines {
		lines[i] = styles.Truncate(lines[i], width)
	}
	return lines
}
