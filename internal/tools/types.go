// Package tools defines the function-calling wire contract between the
// assistant core and the hosted model: provider-agnostic schema types plus
// the fixed set of functions GuruMate advertises. The set is closed and
// versioned with the deployment; changing a name or argument shape breaks
// the model's extraction accuracy.
package tools

// ToolTypeFunction is the standard type for function-based tools.
const ToolTypeFunction = "function"

// Tool describes one callable function to the model.
type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function is the name, description, and parameter schema of a callable
// tool. The description is what the model uses to decide when to call it.
type Function struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  JSONSchema `json:"parameters"`
}

// JSONSchema is a minimal, typed subset of JSON Schema sufficient for tool
// parameters. The top-level parameters node is always an "object".
type JSONSchema struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Enum        []string               `json:"enum,omitempty"`
	Properties  map[string]*JSONSchema `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
}

// ToolCall is one structured invocation returned by the model: the function
// it wants applied plus its arguments.
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction carries the requested function name and its arguments.
// Arguments is a JSON object encoded as a string; the dispatcher unmarshals
// it into the typed mutation for that name.
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// NewFunctionTool builds a Tool with the standard "function" type.
func NewFunctionTool(name, description string, parameters JSONSchema) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}
