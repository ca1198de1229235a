// Package gemini adapts the Google Gen AI SDK to the assistant's LLM client
// contract.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"wellness-assistant/internal/domain"
	"wellness-assistant/internal/integrations/paramstore"
)

// generator is the slice of *genai.Models the client uses.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

type generatorFactory func(ctx context.Context, apiKey, baseURL string) (generator, error)

// Client sends chat requests to Gemini. The SDK client is built from the key
// stored at <paramPrefix>/gemini-token on the first call that succeeds.
type Client struct {
	getter      Getter
	paramPrefix string
	baseURL     string
	newGen      generatorFactory

	genMu sync.RWMutex
	gen   generator
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func NewClient(ps Getter, paramPrefix string, opts ...Option) (*Client, error) {
	if ps == nil {
		return nil, errors.New("gemini: paramstore getter must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("gemini: parameter prefix must not be empty")
	}
	c := &Client{
		getter:      ps,
		paramPrefix: paramPrefix,
		newGen:      newSDKGenerator,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func newSDKGenerator(ctx context.Context, apiKey, baseURL string) (generator, error) {
	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return sdk.Models, nil
}

func (c *Client) tokenParameterName() string {
	return c.paramPrefix + "/gemini-token"
}

func (c *Client) resolveGenerator(ctx context.Context) (generator, error) {
	c.genMu.RLock()
	if c.gen != nil {
		gen := c.gen
		c.genMu.RUnlock()
		return gen, nil
	}
	c.genMu.RUnlock()

	c.genMu.Lock()
	defer c.genMu.Unlock()
	if c.gen != nil {
		return c.gen, nil
	}
	key, err := paramstore.Token(ctx, c.getter, c.tokenParameterName())
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	gen, err := c.newGen(ctx, key, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	c.gen = gen
	return gen, nil
}

// Chat generates one reply. System messages become the system instruction;
// assistant messages are sent with the model role.
func (c *Client) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	if strings.TrimSpace(req.Model) == "" {
		return "", errors.New("gemini: model must not be empty")
	}
	gen, err := c.resolveGenerator(ctx)
	if err != nil {
		return "", err
	}

	system, contents := toContents(req.Messages)
	if len(contents) == 0 {
		return "", errors.New("gemini: no messages")
	}
	cfg := &genai.GenerateContentConfig{SystemInstruction: system}
	if schema := toSchema(req.Schema); schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = schema
	}

	resp, err := gen.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return text, nil
}

// Moderate always reports the input as clean; Gemini applies its own safety
// filters during generation.
func (c *Client) Moderate(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func toContents(msgs []domain.ChatMessage) (*genai.Content, []*genai.Content) {
	var system []string
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.RoleUser
		switch strings.ToLower(m.Role) {
		case "system":
			system = append(system, m.Content)
			continue
		case "assistant", "model":
			role = genai.RoleModel
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	if len(system) == 0 {
		return nil, out
	}
	return &genai.Content{Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}}}, out
}

func toSchema(s *domain.ResponseSchema) *genai.Schema {
	if s == nil || len(s.Fields) == 0 {
		return nil
	}
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(s.Fields)),
	}
	for _, f := range s.Fields {
		schema.Properties[f.Name] = &genai.Schema{
			Type:        genai.TypeString,
			Description: f.Description,
			Enum:        f.Enum,
		}
		schema.Required = append(schema.Required, f.Name)
		schema.PropertyOrdering = append(schema.PropertyOrdering, f.Name)
	}
	return schema
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini: no candidates in response")
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", errors.New("gemini: empty candidate content")
	}
	var b strings.Builder
	for _, p := range content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return b.String(), nil
}
