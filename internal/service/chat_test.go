package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/streamverse/internal/domain"
	"github.com/mmcdole/streamverse/internal/store"
)

type fakeAssistant struct {
	reply   domain.AssistantReply
	err     error
	history []domain.ChatMessage
	text    string
	mode    domain.ChatMode
	key     string
}

func (a *fakeAssistant) Send(ctx context.Context, credential string, history []domain.ChatMessage, text string, mode domain.ChatMode) (domain.AssistantReply, error) {
	a.key = credential
	a.history = history
	a.text = text
	a.mode = mode
	return a.reply, a.err
}

func newChat(t *testing.T, credential string, assistant *fakeAssistant) *ChatSession {
	t.Helper()
	creds := NewCredentialService(store.NewMemoryStore(), nil, nil)
	if credential != "" {
		creds.Save(domain.ProviderAssistant, credential)
	}
	return NewChatSession(assistant, creds, nil)
}

func TestChat_OpenGreetsInLiteMode(t *testing.T) {
	s := newChat(t, "gem-key", &fakeAssistant{})

	if s.Phase() != ChatClosed {
		t.Fatalf("Phase() = %v, want closed", s.Phase())
	}
	s.Open()

	if s.Phase() != ChatReady {
		t.Errorf("Phase() = %v, want ready", s.Phase())
	}
	msgs := s.Messages()
	if len(msgs) != 1 || msgs[0].Role != domain.RoleModel || msgs[0].Text != chatGreetings[domain.ModeLite] {
		t.Errorf("Messages() = %+v, want lite greeting", msgs)
	}
	if s.Placeholder() != "Ask a quick question..." {
		t.Errorf("Placeholder() = %q", s.Placeholder())
	}
}

func TestChat_AwaitingCredential(t *testing.T) {
	s := newChat(t, "", &fakeAssistant{})
	s.Open()

	if s.Phase() != ChatAwaitingCredential {
		t.Fatalf("Phase() = %v, want awaiting-credential", s.Phase())
	}
	if len(s.Messages()) != 0 {
		t.Error("no greeting without a key")
	}
	if _, ok := s.Submit("hello"); ok {
		t.Error("Submit() should be a no-op without a key")
	}

	if err := s.SaveCredential("  "); !errors.Is(err, domain.ErrCredentialMissing) {
		t.Errorf("SaveCredential(blank) = %v", err)
	}
	if err := s.SaveCredential("gem-key"); err != nil {
		t.Fatalf("SaveCredential() failed: %v", err)
	}
	if s.Phase() != ChatReady {
		t.Errorf("Phase() = %v, want ready", s.Phase())
	}
	if msgs := s.Messages(); len(msgs) != 1 || msgs[0].Text != chatGreetings[domain.ModeLite] {
		t.Errorf("Messages() = %+v, want greeting", msgs)
	}
}

func TestChat_SwitchModeResetsHistory(t *testing.T) {
	s := newChat(t, "gem-key", &fakeAssistant{reply: domain.AssistantReply{Text: "ok"}})
	s.Open()
	req, _ := s.Submit("hi")
	s.Receive(s.Send(context.Background(), req))

	tests := []struct {
		switchTo domain.ChatMode
		want     domain.ChatMode
		hint     string
	}{
		{domain.ModeThinking, domain.ModeThinking, "Ask a complex question..."},
		{domain.ModeSearch, domain.ModeSearch, "Search the web..."},
		{domain.ModeSearch, domain.ModeLite, "Ask a quick question..."},
		{domain.ModeLite, domain.ModeLite, "Ask a quick question..."},
	}
	for _, tt := range tests {
		s.SwitchMode(tt.switchTo)
		if s.Mode() != tt.want {
			t.Errorf("SwitchMode(%s) -> %s, want %s", tt.switchTo, s.Mode(), tt.want)
		}
		msgs := s.Messages()
		if len(msgs) != 1 || msgs[0].Text != chatGreetings[tt.want] {
			t.Errorf("after SwitchMode(%s) Messages() = %+v", tt.switchTo, msgs)
		}
		if s.Placeholder() != tt.hint {
			t.Errorf("Placeholder() = %q, want %q", s.Placeholder(), tt.hint)
		}
	}
}

func TestChat_SubmitAndReceive(t *testing.T) {
	sources := []domain.Source{{URI: "https://news.test", Title: "News"}}
	a := &fakeAssistant{reply: domain.AssistantReply{Text: "Here you go", Sources: sources}}
	s := newChat(t, "gem-key", a)
	s.Open()
	s.SwitchMode(domain.ModeSearch)

	if _, ok := s.Submit("   "); ok {
		t.Error("blank input should be ignored")
	}

	req, ok := s.Submit("latest releases")
	if !ok {
		t.Fatal("Submit() rejected valid input")
	}
	if s.Phase() != ChatAwaitingResponse {
		t.Errorf("Phase() = %v, want awaiting-response", s.Phase())
	}
	if len(req.History) != 1 {
		t.Errorf("request history = %d messages, want 1 (before submit)", len(req.History))
	}
	if msgs := s.Messages(); len(msgs) != 2 || msgs[1].Role != domain.RoleUser || msgs[1].Text != "latest releases" {
		t.Errorf("Messages() = %+v, want optimistic user message", msgs)
	}

	if _, ok := s.Submit("again"); ok {
		t.Error("Submit() while awaiting should be a no-op")
	}

	s.Receive(s.Send(context.Background(), req))
	if a.mode != domain.ModeSearch || a.key != "gem-key" || a.text != "latest releases" {
		t.Errorf("assistant got mode=%s key=%s text=%q", a.mode, a.key, a.text)
	}
	if s.Phase() != ChatReady {
		t.Errorf("Phase() = %v, want ready", s.Phase())
	}
	msgs := s.Messages()
	last := msgs[len(msgs)-1]
	if last.Role != domain.RoleModel || last.Text != "Here you go" || len(last.Sources) != 1 {
		t.Errorf("last message = %+v", last)
	}
}

func TestChat_FailureApologizes(t *testing.T) {
	s := newChat(t, "gem-key", &fakeAssistant{err: domain.ErrAssistantRequest})
	s.Open()

	req, _ := s.Submit("hello")
	s.Receive(s.Send(context.Background(), req))

	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("len(Messages()) = %d, want 3", len(msgs))
	}
	if msgs[2].Text != chatApology || msgs[2].Role != domain.RoleModel {
		t.Errorf("last message = %+v, want apology", msgs[2])
	}
	if s.Phase() != ChatReady {
		t.Error("session should accept input after a failure")
	}
}

func TestChat_CloseResetsModeAndHistory(t *testing.T) {
	s := newChat(t, "gem-key", &fakeAssistant{reply: domain.AssistantReply{Text: "late"}})
	s.Open()
	s.SwitchMode(domain.ModeThinking)
	req, _ := s.Submit("slow question")

	s.Close()
	if s.IsOpen() || s.Phase() != ChatClosed {
		t.Fatal("Close() should close")
	}
	if s.Mode() != domain.ModeLite {
		t.Errorf("Mode() = %s, want lite after close", s.Mode())
	}

	s.Open()
	if s.Phase() != ChatAwaitingResponse {
		t.Errorf("Phase() = %v, pending request should survive reopen", s.Phase())
	}
	if msgs := s.Messages(); len(msgs) != 1 || msgs[0].Text != chatGreetings[domain.ModeLite] {
		t.Errorf("Messages() = %+v, want fresh lite greeting", msgs)
	}

	s.Receive(s.Send(context.Background(), req))
	msgs := s.Messages()
	if len(msgs) != 2 || msgs[1].Text != "late" {
		t.Errorf("Messages() = %+v, want late reply appended", msgs)
	}
}

func TestChat_Toggle(t *testing.T) {
	s := newChat(t, "gem-key", &fakeAssistant{})

	s.Toggle()
	if !s.IsOpen() {
		t.Fatal("Toggle() should open a closed panel")
	}
	s.SwitchMode(domain.ModeSearch)

	s.Toggle()
	if s.IsOpen() || s.Mode() != domain.ModeLite || len(s.Messages()) != 0 {
		t.Errorf("Toggle() on open panel: open=%v mode=%s messages=%d", s.IsOpen(), s.Mode(), len(s.Messages()))
	}
}

func TestChatPhase_String(t *testing.T) {
	if ChatAwaitingResponse.String() != "awaiting-response" || ChatPhase(42).String() != "unknown" {
		t.Error("unexpected phase names")
	}
}
