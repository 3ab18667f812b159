// Package llm talks to the hosted model. It shapes the outgoing request
// (persona instruction with the serialized application state, a bounded
// history window, an optional inline attachment), advertises the fixed tool
// set, and classifies transport failures into the error taxonomy the chat
// layer renders.
package llm

import (
	"context"

	"github.com/gurumate/gurumate/internal/state"
	"github.com/gurumate/gurumate/internal/tools"
)

// Role identifies the originator of a transcript message, using the wire
// values the Gemini API expects.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one prior conversation turn passed back to the model.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Attachment is a single file sent alongside the prompt: raw bytes plus the
// declared MIME type. Transport encoding (base64) happens at the API edge;
// no size limit is enforced here.
type Attachment struct {
	// Name is display-only, used for the transcript placeholder.
	Name     string
	MIMEType string
	Data     []byte
}

// Reply is the model's answer: free text plus zero or more structured tool
// calls, already filtered down to the advertised tool set.
type Reply struct {
	Text      string
	ToolCalls []*tools.ToolCall
}

// Client is the gateway to the hosted model. Implementations perform no
// retries; a request runs to completion or failure and errors come back
// classified (see ErrConnectivity, ErrAuth, ErrRateLimited).
type Client interface {
	Chat(ctx context.Context, prompt string, st state.AppState, history []Message, att *Attachment) (*Reply, error)
}
