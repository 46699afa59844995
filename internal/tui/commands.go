package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/streamverse/internal/service"
)

// Command factories for async operations

// FetchCmd runs a catalog fetch off the event loop
func FetchCmd(ctrl *service.SessionController, req service.FetchRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return FetchDoneMsg{Result: ctrl.Fetch(ctx, req)}
	}
}

// SendChatCmd sends a chat turn to the assistant
func SendChatCmd(chat *service.ChatSession, req service.ChatRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return ChatReplyMsg{Reply: chat.Send(ctx, req)}
	}
}

// HideNotificationCmd hides notification seq after service.NotificationDuration
func HideNotificationCmd(seq uint64) tea.Cmd {
	return tea.Tick(service.NotificationDuration, func(time.Time) tea.Msg {
		return HideNotificationMsg{Seq: seq}
	})
}

// TickCmd returns a command that ticks after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}
