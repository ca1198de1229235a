package domain

// ChatMessage is the provider-agnostic chat message shape used by the
// assistant adapters and LLM integrations.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a single completion request. Schema is optional; when set the
// provider is asked for a JSON object matching it.
type ChatRequest struct {
	Model    string
	Messages []ChatMessage
	Schema   *ResponseSchema
}

// ResponseSchema describes a flat JSON object whose fields are all strings.
type ResponseSchema struct {
	Name   string
	Fields []SchemaField
}

// SchemaField is one required string property, optionally constrained to Enum.
type SchemaField struct {
	Name        string
	Description string
	Enum        []string
}
