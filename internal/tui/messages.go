package tui

import "github.com/mmcdole/streamverse/internal/service"

// Message types for the TUI

// FetchDoneMsg carries the result of a catalog fetch
type FetchDoneMsg struct {
	Result service.FetchResult
}

// ChatReplyMsg carries the assistant's reply (or failure)
type ChatReplyMsg struct {
	Reply service.ChatReply
}

// HideNotificationMsg fires when a notification's display time has elapsed
type HideNotificationMsg struct {
	Seq uint64
}

// TickMsg advances the loading spinner
type TickMsg struct{}
