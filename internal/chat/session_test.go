package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/gurumate/gurumate/internal/dispatch"
	"github.com/gurumate/gurumate/internal/llm"
	"github.com/gurumate/gurumate/internal/state"
	"github.com/gurumate/gurumate/internal/tools"
)

type nopStore struct{}

func (nopStore) Load(context.Context) (state.AppState, error) { return state.Default(), nil }
func (nopStore) Save(context.Context, state.AppState) error   { return nil }
func (nopStore) Clear(context.Context) error                  { return nil }

// fakeClient scripts the gateway: it can answer, fail, or block until
// released, and records what it was asked.
type fakeClient struct {
	mu          sync.Mutex
	calls       int
	reply       *llm.Reply
	err         error
	started     chan struct{}
	release     chan struct{}
	lastPrompt  string
	lastHistory []llm.Message
	lastAtt     *llm.Attachment
}

func (f *fakeClient) Chat(_ context.Context, prompt string, _ state.AppState, history []llm.Message, att *llm.Attachment) (*llm.Reply, error) {
	f.mu.Lock()
	f.calls++
	f.lastPrompt = prompt
	f.lastHistory = history
	f.lastAtt = att
	started, release := f.started, f.release
	f.started, f.release = nil, nil
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if release != nil {
		<-release
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.reply != nil {
		return f.reply, nil
	}
	return &llm.Reply{Text: "Baik, sudah saya catat."}, nil
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestSession(t *testing.T, client llm.Client) (*Session, *dispatch.Dispatcher) {
	t.Helper()
	d, err := dispatch.New(context.Background(), nopStore{})
	if err != nil {
		t.Fatalf("dispatch.New: %v", err)
	}
	return NewSession("test-session", client, d, 10), d
}

func TestNewSessionSeedsWelcome(t *testing.T) {
	s, _ := newTestSession(t, &fakeClient{})
	msgs := s.Messages()
	if len(msgs) != 1 || msgs[0].Role != llm.RoleModel {
		t.Fatalf("expected one seeded model message, got %+v", msgs)
	}
	if !strings.Contains(msgs[0].Text, "GuruMate") {
		t.Errorf("welcome text missing, got %q", msgs[0].Text)
	}
}

func TestSendAppliesToolCalls(t *testing.T) {
	client := &fakeClient{reply: &llm.Reply{
		Text: "Jadwal ditambahkan.",
		ToolCalls: []*tools.ToolCall{{
			ID:   "1",
			Type: tools.ToolTypeFunction,
			Function: tools.ToolCallFunction{
				Name:      tools.NameAddSchedule,
				Arguments: `{"day":"Senin","subject":"Matematika","time":"08:00-09:30","className":"9A"}`,
			},
		}},
	}}
	s, d := newTestSession(t, client)

	res, err := s.Send(context.Background(), "Tambahkan jadwal matematika hari Senin", nil)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.Failed {
		t.Fatal("expected a successful turn")
	}
	if len(d.State().Schedules) != 1 {
		t.Fatal("tool call was not dispatched")
	}
	// welcome + user + model
	if got := len(s.Messages()); got != 3 {
		t.Fatalf("expected 3 transcript entries, got %d", got)
	}
}

func TestSendReminderAppendsConfirmation(t *testing.T) {
	client := &fakeClient{reply: &llm.Reply{
		Text: "Siap, akan saya ingatkan.",
		ToolCalls: []*tools.ToolCall{{
			ID:   "1",
			Type: tools.ToolTypeFunction,
			Function: tools.ToolCallFunction{
				Name:      tools.NameAddReminder,
				Arguments: `{"text":"Rapat","date":"besok 08:00","priority":"Tinggi"}`,
			},
		}},
	}}
	s, _ := newTestSession(t, client)

	res, err := s.Send(context.Background(), "Ingatkan saya besok jam 8 ada rapat", nil)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.Contains(res.Reply, "Google Calendar") {
		t.Errorf("expected sync confirmation in reply, got %q", res.Reply)
	}
}

func TestSendOfflineNeverContactsGateway(t *testing.T) {
	client := &fakeClient{}
	s, _ := newTestSession(t, client)
	s.SetOffline(true)

	before := len(s.Messages())
	res, err := s.Send(context.Background(), "Catat nilai Budi 85", nil)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if client.callCount() != 0 {
		t.Fatal("offline submission must not contact the gateway")
	}
	if !res.Failed || res.Reply != offlineText {
		t.Fatalf("expected the offline warning, got %+v", res)
	}
	if got := len(s.Messages()) - before; got != 1 {
		t.Fatalf("expected exactly one synthetic warning message, got %d new entries", got)
	}

	// The undelivered input stays available for resubmission, same as a
	// gateway failure.
	pending := s.Pending()
	if pending == nil || pending.Text != "Catat nilai Budi 85" {
		t.Fatalf("expected the offline input to be preserved, got %+v", pending)
	}
}

func TestSendGatewayFailurePreservesInput(t *testing.T) {
	client := &fakeClient{err: llm.ErrConnectivity}
	s, _ := newTestSession(t, client)

	res, err := s.Send(context.Background(), "Catat nilai Budi 85", nil)
	if err != nil {
		t.Fatalf("Send must absorb gateway errors, got %v", err)
	}
	if !res.Failed || res.Reply != connectivityFailureText {
		t.Fatalf("expected the connectivity message, got %+v", res)
	}

	pending := s.Pending()
	if pending == nil || pending.Text != "Catat nilai Budi 85" {
		t.Fatalf("expected the failed input to be preserved, got %+v", pending)
	}

	// The user's message stays in the transcript, followed by the
	// synthetic failure message.
	msgs := s.Messages()
	if len(msgs) != 3 || msgs[1].Role != llm.RoleUser {
		t.Fatalf("unexpected transcript: %+v", msgs)
	}
}

func TestSendFailureMessagesPerClass(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", llm.ErrAuth, authFailureText},
		{"rate limit", llm.ErrRateLimited, rateLimitText},
		{"connectivity", llm.ErrConnectivity, connectivityFailureText},
		{"unknown", errors.New("boom"), genericFailureText},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestSession(t, &fakeClient{err: tc.err})
			res, err := s.Send(context.Background(), "Halo", nil)
			if err != nil {
				t.Fatalf("Send: %v", err)
			}
			if res.Reply != tc.want {
				t.Errorf("got %q, want %q", res.Reply, tc.want)
			}
		})
	}
}

func TestSendSuccessClearsPending(t *testing.T) {
	client := &fakeClient{err: llm.ErrConnectivity}
	s, _ := newTestSession(t, client)

	if _, err := s.Send(context.Background(), "pertama", nil); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if s.Pending() == nil {
		t.Fatal("expected pending input after failure")
	}

	client.mu.Lock()
	client.err = nil
	client.mu.Unlock()
	if _, err := s.Send(context.Background(), "kedua", nil); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if s.Pending() != nil {
		t.Fatal("expected pending input to clear on success")
	}
}

func TestSendRejectsSecondInFlightRequest(t *testing.T) {
	// The fake consumes its channels on first use, so keep local handles.
	started := make(chan struct{})
	release := make(chan struct{})
	client := &fakeClient{started: started, release: release}
	s, _ := newTestSession(t, client)

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "pertama", nil)
		done <- err
	}()

	<-started
	if _, err := s.Send(context.Background(), "kedua", nil); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy for concurrent submission, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Send: %v", err)
	}

	// The guard lifts once the first request completes.
	if _, err := s.Send(context.Background(), "ketiga", nil); err != nil {
		t.Fatalf("Send after completion: %v", err)
	}
}

func TestSendAttachmentOnlyUsesFallbackPrompt(t *testing.T) {
	client := &fakeClient{}
	s, _ := newTestSession(t, client)
	att := &llm.Attachment{Name: "nilai.jpg", MIMEType: "image/jpeg", Data: []byte{0xFF}}

	if _, err := s.Send(context.Background(), "", att); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if client.lastPrompt != attachmentFallbackPrompt {
		t.Errorf("expected fallback prompt, got %q", client.lastPrompt)
	}
	if client.lastAtt == nil || client.lastAtt.MIMEType != "image/jpeg" {
		t.Error("attachment was not forwarded")
	}
	msgs := s.Messages()
	if !strings.Contains(msgs[1].Text, "nilai.jpg") {
		t.Errorf("expected file placeholder in transcript, got %q", msgs[1].Text)
	}
}

func TestSendEmptyInputRejected(t *testing.T) {
	s, _ := newTestSession(t, &fakeClient{})
	if _, err := s.Send(context.Background(), "", nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestHistoryWindowIsBounded(t *testing.T) {
	client := &fakeClient{}
	d, err := dispatch.New(context.Background(), nopStore{})
	if err != nil {
		t.Fatalf("dispatch.New: %v", err)
	}
	s := NewSession("test", client, d, 4)

	for i := 0; i < 10; i++ {
		if _, err := s.Send(context.Background(), "pesan", nil); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}
	if len(client.lastHistory) != 4 {
		t.Fatalf("expected history capped at 4, got %d", len(client.lastHistory))
	}
}
