package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/mmcdole/streamverse/internal/domain"
)

// ChatPhase is the derived state of the assistant panel
type ChatPhase int

const (
	ChatClosed ChatPhase = iota
	ChatAwaitingCredential
	ChatReady
	ChatAwaitingResponse
)

func (p ChatPhase) String() string {
	switch p {
	case ChatClosed:
		return "closed"
	case ChatAwaitingCredential:
		return "awaiting-credential"
	case ChatReady:
		return "ready"
	case ChatAwaitingResponse:
		return "awaiting-response"
	default:
		return "unknown"
	}
}

var chatGreetings = map[domain.ChatMode]string{
	domain.ModeLite:     "Hi there! I'm the StreamVerse assistant, running on a low-latency model for quick answers. How can I help?",
	domain.ModeThinking: "Thinking Mode activated. I'm now using a more powerful model to handle complex questions. What's on your mind?",
	domain.ModeSearch:   "Search Mode activated. I can now browse the web to give you the most up-to-date information. What are you looking for?",
}

var chatPlaceholders = map[domain.ChatMode]string{
	domain.ModeLite:     "Ask a quick question...",
	domain.ModeThinking: "Ask a complex question...",
	domain.ModeSearch:   "Search the web...",
}

const chatApology = "Sorry, I seem to be having trouble connecting. Your API key might be invalid, or the model is currently unavailable. Please try again."

// ChatRequest is one assistant call the UI must run off the event loop
type ChatRequest struct {
	Credential string
	History    []domain.ChatMessage // Conversation before Text was submitted
	Text       string
	Mode       domain.ChatMode
}

// ChatReply is the outcome of a ChatRequest
type ChatReply struct {
	Mode  domain.ChatMode
	Reply domain.AssistantReply
	Err   error
}

// ChatSession is the assistant conversation. All methods except Send must
// be called from the UI event loop.
type ChatSession struct {
	assistant domain.Assistant
	creds     CredentialStore
	logger    *slog.Logger

	open       bool
	mode       domain.ChatMode
	credential string
	messages   []domain.ChatMessage
	pending    bool
}

// NewChatSession creates a closed chat session and loads the stored assistant key
func NewChatSession(assistant domain.Assistant, creds CredentialStore, logger *slog.Logger) *ChatSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatSession{
		assistant:  assistant,
		creds:      creds,
		logger:     logger,
		mode:       domain.ModeLite,
		credential: creds.Get(domain.ProviderAssistant),
	}
}

// Phase derives the current phase
func (s *ChatSession) Phase() ChatPhase {
	switch {
	case !s.open:
		return ChatClosed
	case s.credential == "":
		return ChatAwaitingCredential
	case s.pending:
		return ChatAwaitingResponse
	default:
		return ChatReady
	}
}

// Open shows the panel, greeting in the current mode when a key is present
func (s *ChatSession) Open() {
	s.open = true
	s.resetHistory()
}

// Close hides the panel, reverts to lite mode and drops the history.
// A request still in flight keeps the session pending until it arrives.
func (s *ChatSession) Close() {
	s.open = false
	s.mode = domain.ModeLite
	s.messages = nil
}

// Toggle opens a closed panel and closes an open one
func (s *ChatSession) Toggle() {
	if s.open {
		s.Close()
		return
	}
	s.Open()
}

// SaveCredential persists and adopts the assistant key
func (s *ChatSession) SaveCredential(value string) error {
	saved, err := s.creds.Save(domain.ProviderAssistant, value)
	if errors.Is(err, domain.ErrCredentialMissing) {
		return err
	}
	if err != nil {
		s.logger.Warn("assistant credential not persisted", "error", err)
	}
	s.credential = saved
	if s.open {
		s.resetHistory()
	}
	return nil
}

// SwitchMode selects mode, or returns to lite if mode is already active.
// The conversation restarts with the new mode's greeting.
func (s *ChatSession) SwitchMode(mode domain.ChatMode) {
	if mode == s.mode {
		mode = domain.ModeLite
	}
	s.mode = mode
	s.resetHistory()
	s.logger.Debug("chat mode changed", "mode", mode)
}

func (s *ChatSession) resetHistory() {
	if s.credential == "" {
		s.messages = nil
		return
	}
	s.messages = []domain.ChatMessage{{Role: domain.RoleModel, Text: greeting(s.mode)}}
}

// Submit appends the user's message and returns the request to send.
// Blank text, a pending reply or a missing key make it a no-op.
func (s *ChatSession) Submit(text string) (ChatRequest, bool) {
	if strings.TrimSpace(text) == "" || s.Phase() != ChatReady {
		return ChatRequest{}, false
	}

	req := ChatRequest{
		Credential: s.credential,
		History:    slices.Clone(s.messages),
		Text:       text,
		Mode:       s.mode,
	}
	s.messages = append(slices.Clone(s.messages), domain.ChatMessage{Role: domain.RoleUser, Text: text})
	s.pending = true
	return req, true
}

// Send calls the assistant. It touches no session state and may run on any goroutine.
func (s *ChatSession) Send(ctx context.Context, req ChatRequest) ChatReply {
	reply, err := s.assistant.Send(ctx, req.Credential, req.History, req.Text, req.Mode)
	return ChatReply{Mode: req.Mode, Reply: reply, Err: err}
}

// Receive appends the reply, or an apology if the call failed
func (s *ChatSession) Receive(r ChatReply) {
	s.pending = false

	msg := domain.ChatMessage{Role: domain.RoleModel, Text: r.Reply.Text, Sources: r.Reply.Sources}
	if r.Err != nil {
		s.logger.Error("assistant request failed", "mode", r.Mode, "error", r.Err)
		msg = domain.ChatMessage{Role: domain.RoleModel, Text: chatApology}
	}
	s.messages = append(slices.Clone(s.messages), msg)
}

// Messages returns a copy of the conversation
func (s *ChatSession) Messages() []domain.ChatMessage {
	return slices.Clone(s.messages)
}

// Mode returns the active mode
func (s *ChatSession) Mode() domain.ChatMode {
	return s.mode
}

// IsOpen reports whether the panel is shown
func (s *ChatSession) IsOpen() bool {
	return s.open
}

// Placeholder returns the input hint for the active mode
func (s *ChatSession) Placeholder() string {
	return chatPlaceholders[s.mode]
}

func greeting(mode domain.ChatMode) string {
	if g, ok := chatGreetings[mode]; ok {
		return g
	}
	return chatGreetings[domain.ModeLite]
}
