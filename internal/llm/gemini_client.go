package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/gurumate/gurumate/internal/state"
	"github.com/gurumate/gurumate/internal/tools"
)

// GeminiClient talks to Google's Gemini models through the official SDK.
type GeminiClient struct {
	client  *genai.Client
	modelID string
	tools   []*genai.Tool
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient builds a client for the given model id. The advertised
// tool set is fixed at construction and sent with every request.
func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{
		client:  client,
		modelID: modelID,
		tools:   toGeminiTools(tools.Declarations()),
	}, nil
}

// requestModel derives a model handle configured for one request. Sessions
// chat concurrently, so the system instruction must never be written to a
// shared model value.
func (c *GeminiClient) requestModel(st state.AppState) *genai.GenerativeModel {
	model := c.client.GenerativeModel(c.modelID)
	model.Tools = c.tools
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction(st))},
	}
	return model
}

// Chat sends one user turn. The current AppState rides along in the system
// instruction, history is replayed as chat turns, and an attachment (if any)
// becomes an inline blob part next to the prompt text.
func (c *GeminiClient) Chat(ctx context.Context, prompt string, st state.AppState, history []Message, att *Attachment) (*Reply, error) {
	chat := c.requestModel(st).StartChat()
	chat.History = toGeminiHistory(history)

	parts := []genai.Part{genai.Text(prompt)}
	if att != nil {
		parts = append(parts, genai.Blob{MIMEType: att.MIMEType, Data: att.Data})
	}

	resp, err := chat.SendMessage(ctx, parts...)
	if err != nil {
		return nil, classify(fmt.Errorf("gemini API call failed: %w", err))
	}
	return parseResponse(resp)
}

// toGeminiHistory converts prior turns to the SDK's content format.
func toGeminiHistory(history []Message) []*genai.Content {
	var out []*genai.Content
	for _, msg := range history {
		role := "user"
		if msg.Role == RoleModel {
			role = "model"
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}
	return out
}

// toGeminiTools converts the advertised tool set to the SDK's declarations.
func toGeminiTools(declared []tools.Tool) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(declared))
	for _, t := range declared {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Function.Name,
			Description: t.Function.Description,
			Parameters:  convertSchema(t.Function.Parameters),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// convertSchema maps our JSONSchema subset onto the SDK schema type.
func convertSchema(s tools.JSONSchema) *genai.Schema {
	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
	}
	switch s.Type {
	case "object":
		out.Type = genai.TypeObject
	case "string":
		out.Type = genai.TypeString
	case "number":
		out.Type = genai.TypeNumber
	case "integer":
		out.Type = genai.TypeInteger
	case "boolean":
		out.Type = genai.TypeBoolean
	}
	if s.Properties != nil {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = convertSchema(*v)
		}
	}
	return out
}

// parseResponse flattens the candidate parts into free text plus tool calls.
// Calls naming functions outside the advertised set are dropped here so the
// dispatcher only ever sees the closed set.
func parseResponse(resp *genai.GenerateContentResponse) (*Reply, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("no content returned from Gemini")
	}

	var text strings.Builder
	var calls []*tools.ToolCall
	for _, part := range resp.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case genai.Text:
			text.WriteString(string(v))
		case genai.FunctionCall:
			if !tools.IsKnown(v.Name) {
				log.Printf("WARNING: model requested unknown tool %q, dropping", v.Name)
				continue
			}
			args, err := json.Marshal(v.Args)
			if err != nil {
				log.Printf("WARNING: could not marshal tool call args for %s: %v", v.Name, err)
				continue
			}
			calls = append(calls, &tools.ToolCall{
				ID:   fmt.Sprintf("gemini-toolcall-%s", v.Name),
				Type: tools.ToolTypeFunction,
				Function: tools.ToolCallFunction{
					Name:      v.Name,
					Arguments: string(args),
				},
			})
		}
	}

	return &Reply{
		Text:      strings.TrimSpace(text.String()),
		ToolCalls: calls,
	}, nil
}
