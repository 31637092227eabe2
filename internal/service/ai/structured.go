package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"medextract/internal/config"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Generator issues one schema-constrained completion per call and decodes
// the result into out. It is the single reusable abstraction the
// extraction and diagnosis services are built on.
type Generator interface {
	GenerateSchema(ctx context.Context, name string, schema *jsonschema.Definition, prompt string, out any) error
}

// Generate runs one structured-output request and returns the decoded value.
func Generate[T any](ctx context.Context, g Generator, name string, schema *jsonschema.Definition, prompt string) (T, error) {
	var out T
	if err := g.GenerateSchema(ctx, name, schema, prompt, &out); err != nil {
		return out, err
	}
	return out, nil
}

// StructuredClient implements Generator on the OpenAI chat completion API
// using the json_schema response format.
type StructuredClient struct {
	client *openai.Client
	model  string
}

func NewStructuredClient(provCfg config.ProviderConfig) *StructuredClient {
	clientCfg := openai.DefaultConfig(provCfg.APIKey)
	if provCfg.BaseURL != "" {
		clientCfg.BaseURL = provCfg.BaseURL
	}
	model := provCfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &StructuredClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

func (c *StructuredClient) GenerateSchema(ctx context.Context, name string, schema *jsonschema.Definition, prompt string, out any) error {
	if c.client == nil {
		return errors.New("openai client not initialized")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   name,
				Schema: schema,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("structured completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return errors.New("structured completion returned no choices")
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("decode structured response: %w", err)
	}
	return nil
}
