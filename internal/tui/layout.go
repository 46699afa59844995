package tui

// Layout proportions
const (
	ChatPanelPercent  = 40
	MinChatPanelWidth = 36
	MinMainWidth      = 30

	HeaderHeight  = 2 // tabs + rule
	HeroHeight    = 8 // banner + margin
	SectionHeight = 2 // grid heading + margin
	FooterHeight  = 1

	heroDescriptionLines = 3
)

// screenLayout holds calculated widths for the View
type screenLayout struct {
	mainWidth int
	chatWidth int // 0 if the panel is closed
}

// calculateLayout splits the screen between browsing and the chat panel
func (m Model) calculateLayout() screenLayout {
	if !m.Chat.IsOpen() {
		return screenLayout{mainWidth: m.Width}
	}

	chat := max(m.Width*ChatPanelPercent/100, MinChatPanelWidth)
	chat = min(chat, m.Width-MinMainWidth)
	if chat < MinChatPanelWidth {
		// Too narrow to share; the panel takes the screen
		return screenLayout{chatWidth: m.Width}
	}
	return screenLayout{mainWidth: m.Width - chat, chatWidth: chat}
}

// gridHeight returns the rows left for the grid under the header, hero and heading
func (m Model) gridHeight() int {
	h := m.Height - HeaderHeight - SectionHeight - FooterHeight
	if _, ok := m.heroItem(); ok {
		h -= HeroHeight
	}
	return max(h, 0)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	layout := m.calculateLayout()
	m.Grid.SetSize(layout.mainWidth-2, m.gridHeight())
	if layout.chatWidth > 0 {
		m.ChatPanel.SetSize(layout.chatWidth, m.Height-FooterHeight)
	}
}
