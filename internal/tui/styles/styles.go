package styles

import (
	"strings"

	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Color palette
var (
	Crimson    = lipgloss.Color("#E50914")
	Indigo     = lipgloss.Color("#6366F1")
	SlateDark  = lipgloss.Color("#111827")
	SlateMid   = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Sky        = lipgloss.Color("#38BDF8")
)

// Text styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(Crimson).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Crimson)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	LinkStyle = lipgloss.NewStyle().
			Foreground(Sky).
			Underline(true)
)

// Tab styles
var (
	TabStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Crimson).
			Bold(true).
			Padding(0, 1)
)

// Hero banner
var (
	HeroStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(Crimson).
			Padding(0, 2)

	HeroTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateLight).
			Padding(0, 1)

	PrimaryButtonStyle = lipgloss.NewStyle().
				Foreground(SlateDark).
				Background(White).
				Bold(true).
				Padding(0, 1)
)

// Grid cell styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SlateLight).
			Padding(0, 1)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Crimson).
				Padding(0, 1)

	SkeletonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SlateMid).
			Foreground(SlateLight).
			Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Crimson).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Chat panel styles
var (
	ChatPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Indigo).
			Padding(0, 1)

	ChatHeaderStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Indigo).
			Bold(true).
			Padding(0, 1)

	UserBubbleStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Indigo).
			Padding(0, 1)

	ModeActiveStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(Sky).
			Padding(0, 1)

	ModeInactiveStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Padding(0, 1)
)

// Toast
var (
	ToastStyle = lipgloss.NewStyle().
		Foreground(White).
		Background(Green).
		Bold(true).
		Padding(0, 2)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Crimson)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(Crimson)
)

// Match highlight style for fuzzy results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Crimson).
				Bold(true)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)
)

// Helper functions

// Truncate shortens s to width display cells with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// Pad pads or truncates s to exactly width display cells
func Pad(s string, width int) string {
	s = Truncate(s, width)
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

// MarkdownStyle returns the glamour style for assistant replies
func MarkdownStyle() ansi.StyleConfig {
	style := glamourstyles.DarkStyleConfig

	// Replies render inside the panel border
	style.Document.Margin = uintPtr(0)
	style.Document.StylePrimitive.Color = stringPtr(string(White))
	style.Link.Color = stringPtr(string(Sky))
	style.Strong.Color = stringPtr(string(White))
	return style
}

func uintPtr(u uint) *uint       { return &u }
func stringPtr(s string) *string { return &s }
