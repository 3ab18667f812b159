// Package chat holds the per-session conversation flow: the ordered
// transcript, the single-in-flight request guard, and the offline and
// gateway-failure fallbacks that keep a pending message from being lost.
package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gurumate/gurumate/internal/dispatch"
	"github.com/gurumate/gurumate/internal/llm"
)

// ErrBusy is returned while a previous request for the same session is
// still outstanding. There is at most one in-flight gateway request per
// session; the caller should re-enable submission once Send returns.
var ErrBusy = errors.New("a request is already in flight for this session")

// ErrEmptyInput is returned when there is neither text nor an attachment.
var ErrEmptyInput = errors.New("nothing to send")

// ChatMessage is one transcript entry.
type ChatMessage struct {
	Role      llm.Role  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Pending is the input of a failed submission, kept so the caller can offer
// resubmission. It is replaced on the next failure and cleared on success.
type Pending struct {
	Text       string
	Attachment *llm.Attachment
}

// SendResult reports what one submission did.
type SendResult struct {
	// Reply is the assistant text appended to the transcript, including
	// any dispatcher suffix or synthetic failure message.
	Reply string
	// Applied and Skipped name the tool calls the dispatcher processed.
	Applied []string
	Skipped []string
	// Failed is set when the reply is a locally generated failure message
	// rather than a model answer.
	Failed bool
}

// Session is one continuous conversation. All methods are safe for
// concurrent use; the gateway call itself runs outside the lock so the
// transcript stays readable while a request is pending.
type Session struct {
	ID string

	mu       sync.Mutex
	inFlight bool
	offline  bool
	messages []ChatMessage
	pending  *Pending

	client     llm.Client
	dispatcher *dispatch.Dispatcher
	window     int
}

// NewSession seeds a session with the welcome message. window bounds how
// many trailing transcript entries are replayed to the model per turn.
func NewSession(id string, client llm.Client, d *dispatch.Dispatcher, window int) *Session {
	return &Session{
		ID:         id,
		client:     client,
		dispatcher: d,
		window:     window,
		messages: []ChatMessage{
			{Role: llm.RoleModel, Text: welcomeText, Timestamp: time.Now()},
		},
	}
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChatMessage{}, s.messages...)
}

// SetOffline toggles the client-reported connectivity flag. While offline,
// Send never contacts the gateway.
func (s *Session) SetOffline(offline bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offline = offline
}

// Pending returns the preserved input of the last failed submission, or nil.
func (s *Session) Pending() *Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Send submits one user turn: text, an attachment, or both. On gateway
// failure the error is absorbed into a synthetic assistant message and the
// input is preserved in Pending; Send itself only errors on ErrBusy or
// ErrEmptyInput.
func (s *Session) Send(ctx context.Context, text string, att *llm.Attachment) (*SendResult, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if s.offline {
		s.appendLocked(llm.RoleModel, offlineText)
		s.pending = &Pending{Text: text, Attachment: att}
		s.mu.Unlock()
		return &SendResult{Reply: offlineText, Failed: true}, nil
	}
	if text == "" && att == nil {
		s.mu.Unlock()
		return nil, ErrEmptyInput
	}

	// History is the trailing window before this turn; the new prompt is
	// sent separately.
	history := s.historyLocked()

	userText := text
	if userText == "" {
		userText = attachedFilePrefix
		if att.Name != "" {
			userText = fmt.Sprintf("%s: %s", attachedFilePrefix, att.Name)
		}
	}
	s.appendLocked(llm.RoleUser, userText)

	prompt := text
	if prompt == "" {
		prompt = attachmentFallbackPrompt
	}

	s.inFlight = true
	s.mu.Unlock()

	reply, err := s.client.Chat(ctx, prompt, s.dispatcher.State(), history, att)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		msg := failureMessage(err)
		s.appendLocked(llm.RoleModel, msg)
		s.pending = &Pending{Text: text, Attachment: att}
		return &SendResult{Reply: msg, Failed: true}, nil
	}

	res := s.dispatcher.Apply(ctx, reply.ToolCalls)
	botText := reply.Text
	if botText == "" {
		botText = defaultReply
	}
	botText += res.ReplySuffix

	s.appendLocked(llm.RoleModel, botText)
	s.pending = nil
	return &SendResult{Reply: botText, Applied: res.Applied, Skipped: res.Skipped}, nil
}

// historyLocked maps the trailing transcript window to gateway messages.
func (s *Session) historyLocked() []llm.Message {
	start := 0
	if len(s.messages) > s.window {
		start = len(s.messages) - s.window
	}
	out := make([]llm.Message, 0, len(s.messages)-start)
	for _, m := range s.messages[start:] {
		out = append(out, llm.Message{Role: m.Role, Text: m.Text})
	}
	return out
}

func (s *Session) appendLocked(role llm.Role, text string) {
	s.messages = append(s.messages, ChatMessage{Role: role, Text: text, Timestamp: time.Now()})
}

// failureMessage maps a classified gateway error to the user-facing string
// for its class. Every class gets a distinct message; nothing is retried.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, llm.ErrAuth):
		return authFailureText
	case errors.Is(err, llm.ErrRateLimited):
		return rateLimitText
	case errors.Is(err, llm.ErrConnectivity):
		return connectivityFailureText
	default:
		return genericFailureText
	}
}
