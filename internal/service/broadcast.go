package service

import (
	"context"

	"github.com/windoze95/speakify-bot/internal/config"
	"github.com/windoze95/speakify-bot/internal/logger"
	"github.com/windoze95/speakify-bot/internal/repository"
	"github.com/windoze95/speakify-bot/internal/transport"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BroadcastService fans a message out to every known user.
type BroadcastService struct {
	Cfg       *config.Config
	Users     repository.UserRepo
	Transport transport.Transport
}

// BroadcastResult summarizes one fan-out.
type BroadcastResult struct {
	Sent   int
	Failed int
}

// NewBroadcastService is the constructor function for initializing a new
// BroadcastService.
func NewBroadcastService(cfg *config.Config, users repository.UserRepo, tp transport.Transport) *BroadcastService {
	return &BroadcastService{
		Cfg:       cfg,
		Users:     users,
		Transport: tp,
	}
}

// Broadcast sends text to every known chat id except the sender.
// Per-recipient failures (user blocked the bot, timeout) are counted
// and skipped, never retried; sends are paced so the transport's rate
// limits are respected. Each send carries its own timeout so one
// unreachable recipient cannot stall the rest.
func (s *BroadcastService) Broadcast(ctx context.Context, senderID int64, text string) (*BroadcastResult, error) {
	chatIDs, err := s.Users.AllChatIDs()
	if err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Every(s.Cfg.EnvVars.BroadcastDelay), 1)
	result := &BroadcastResult{}

	for _, chatID := range chatIDs {
		if chatID == senderID {
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}

		sendCtx, cancel := context.WithTimeout(ctx, s.Cfg.EnvVars.SendTimeout)
		err := s.Transport.SendText(sendCtx, chatID, text)
		cancel()
		if err != nil {
			logger.Get().Warn("broadcast delivery failed",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			result.Failed++
			continue
		}
		result.Sent++
	}

	logger.Get().Info("broadcast complete",
		zap.Int64("sender", senderID),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}
