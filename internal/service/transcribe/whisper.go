package transcribe

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"medextract/internal/config"
)

// Whisper transcribes a local audio file through the OpenAI speech-to-text
// API. No language is set so the transcript stays in the original language.
type Whisper struct {
	client *openai.Client
	model  string
}

func NewWhisper(provCfg config.ProviderConfig, model string) *Whisper {
	clientCfg := openai.DefaultConfig(provCfg.APIKey)
	if provCfg.BaseURL != "" {
		clientCfg.BaseURL = provCfg.BaseURL
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &Whisper{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// Transcribe runs one synchronous transcription call for the file at path.
func (w *Whisper) Transcribe(ctx context.Context, path string) (string, error) {
	if w.client == nil {
		return "", errors.New("openai client not initialized")
	}
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: path,
	})
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	return resp.Text, nil
}
