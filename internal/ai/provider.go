package ai

import "context"

// SpeechProvider handles speech-to-text (Whisper).
type SpeechProvider interface {
	TranscribeFile(ctx context.Context, path string) (string, error)
}

// FeedbackProvider produces structured feedback for a spoken answer.
type FeedbackProvider interface {
	GenerateFeedback(ctx context.Context, question, transcript string) (*Feedback, error)
}

// Feedback is the structured assessment of one spoken answer.
type Feedback struct {
	Strengths   []string
	Weaknesses  []string
	ModelAnswer string
}
