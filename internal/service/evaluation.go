package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/windoze95/speakify-bot/internal/ai"
	"github.com/windoze95/speakify-bot/internal/config"
	"github.com/windoze95/speakify-bot/internal/logger"
	"github.com/windoze95/speakify-bot/internal/transport"
	"go.uber.org/zap"
)

// User-facing pipeline messages.
const (
	MsgAnalyzing           = "🎧 Got it! Analyzing your response now... this might take a moment."
	MsgDownloadFailed      = "❌ Sorry, I could not retrieve your voice message. Please try sending it again."
	MsgTranscribeFailed    = "❌ Sorry, I could not understand the audio. Please make sure it is clear and try again."
	MsgFeedbackUnavailable = "❌ The feedback service is unavailable right now. Please try again later."

	defaultQuestionContext = "an IELTS speaking question"
)

// EvaluationService runs the voice-answer evaluation pipeline:
// download, transcribe, generate feedback, reply. Each step has a
// bounded timeout and no retries; any failure is terminal for that
// request and reported to the user in plain language.
type EvaluationService struct {
	Cfg       *config.Config
	Speech    ai.SpeechProvider
	Feedback  ai.FeedbackProvider
	Transport transport.Transport
}

// NewEvaluationService is the constructor function for initializing a
// new EvaluationService.
func NewEvaluationService(cfg *config.Config, speech ai.SpeechProvider, feedback ai.FeedbackProvider, tp transport.Transport) *EvaluationService {
	return &EvaluationService{
		Cfg:       cfg,
		Speech:    speech,
		Feedback:  feedback,
		Transport: tp,
	}
}

// Evaluate processes one voice answer end to end and delivers either
// formatted feedback or a failure notice to the user. The temporary
// audio artifact is removed on every exit path.
func (s *EvaluationService) Evaluate(ctx context.Context, chatID int64, voice *transport.Voice, question string) {
	log := logger.With(zap.Int64("chat_id", chatID))

	s.notify(ctx, chatID, MsgAnalyzing)

	downloadCtx, cancel := context.WithTimeout(ctx, s.Cfg.EnvVars.DownloadTimeout)
	audio, err := s.Transport.DownloadVoice(downloadCtx, voice.FileID)
	cancel()
	if err != nil {
		log.Warn("voice download failed", zap.Error(err))
		s.notify(ctx, chatID, MsgDownloadFailed)
		return
	}

	path, err := s.writeArtifact(chatID, audio)
	if err != nil {
		log.Error("failed to write audio artifact", zap.Error(err))
		s.notify(ctx, chatID, MsgDownloadFailed)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Warn("failed to remove audio artifact", zap.String("path", path), zap.Error(err))
		}
	}()

	transcribeCtx, cancel := context.WithTimeout(ctx, s.Cfg.EnvVars.TranscribeTimeout)
	transcript, err := s.Speech.TranscribeFile(transcribeCtx, path)
	cancel()
	if err != nil {
		if errors.Is(err, ai.ErrEmptyTranscript) {
			log.Info("empty transcription")
		} else {
			log.Warn("transcription failed", zap.Error(err))
		}
		s.notify(ctx, chatID, MsgTranscribeFailed)
		return
	}

	if question == "" {
		question = defaultQuestionContext
	}

	feedbackCtx, cancel := context.WithTimeout(ctx, s.Cfg.EnvVars.FeedbackTimeout)
	feedback, err := s.Feedback.GenerateFeedback(feedbackCtx, question, transcript)
	cancel()
	if err != nil {
		log.Warn("feedback generation failed", zap.Error(err))
		s.notify(ctx, chatID, MsgFeedbackUnavailable)
		return
	}

	s.notify(ctx, chatID, FormatFeedback(feedback))
	log.Info("voice answer evaluated", zap.Int("transcript_len", len(transcript)))
}

// writeArtifact stores the downloaded audio as a temporary file scoped
// to this one evaluation.
func (s *EvaluationService) writeArtifact(chatID int64, audio []byte) (string, error) {
	f, err := os.CreateTemp("", fmt.Sprintf("voice_%d_%s_*.oga", chatID, uuid.New().String()))
	if err != nil {
		return "", fmt.Errorf("create audio artifact: %w", err)
	}
	if _, err := f.Write(audio); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write audio artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close audio artifact: %w", err)
	}
	return f.Name(), nil
}

// notify sends a message with the configured send timeout; delivery
// failures are logged but do not change pipeline outcome.
func (s *EvaluationService) notify(ctx context.Context, chatID int64, text string) {
	sendCtx, cancel := context.WithTimeout(ctx, s.Cfg.EnvVars.SendTimeout)
	defer cancel()
	if err := s.Transport.SendText(sendCtx, chatID, text); err != nil {
		logger.Get().Warn("failed to send pipeline message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// FormatFeedback renders structured feedback as a reply message.
func FormatFeedback(fb *ai.Feedback) string {
	var b strings.Builder

	b.WriteString("🤖 AI Examiner Feedback\n")
	if len(fb.Strengths) > 0 {
		b.WriteString("\n✅ What went well:\n")
		for _, s := range fb.Strengths {
			b.WriteString("• " + s + "\n")
		}
	}
	if len(fb.Weaknesses) > 0 {
		b.WriteString("\n⚠️ What to work on:\n")
		for _, s := range fb.Weaknesses {
			b.WriteString("• " + s + "\n")
		}
	}
	if fb.ModelAnswer != "" {
		b.WriteString("\n💬 Model answer:\n" + fb.ModelAnswer + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
