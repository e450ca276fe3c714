package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyTranscript is returned when Whisper produces no text at all,
// usually silence or unintelligible audio. Callers treat it like any
// other transcription failure.
var ErrEmptyTranscript = errors.New("transcription returned no text")

// WhisperProvider implements SpeechProvider using OpenAI Whisper.
type WhisperProvider struct {
	apiKey string
}

// NewWhisperProvider creates a new Whisper speech-to-text provider.
func NewWhisperProvider(apiKey string) *WhisperProvider {
	return &WhisperProvider{apiKey: apiKey}
}

// TranscribeFile transcribes the audio file at path to text using
// Whisper. A single attempt is made; the evaluation pipeline treats any
// failure as terminal for that request.
func (p *WhisperProvider) TranscribeFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	client := openai.NewClient(p.apiKey)
	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   f,
		FilePath: filepath.Base(path),
	})
	if err != nil {
		return "", fmt.Errorf("Whisper API error: %w", err)
	}
	if resp.Text == "" {
		return "", ErrEmptyTranscript
	}

	return resp.Text, nil
}
