package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/windoze95/speakify-bot/internal/logger"
	"github.com/windoze95/speakify-bot/internal/models"
	"github.com/windoze95/speakify-bot/internal/session"
	"go.uber.org/zap"
)

// handleAdminButton routes the privileged panel buttons. Every path
// goes through the guard first: a non-privileged press gets a denial
// and nothing else happens.
func (r *Router) handleAdminButton(ctx context.Context, chatID int64, data string) {
	if !r.Guard.IsAdmin(chatID) {
		logger.Get().Info("unauthorized admin action attempted",
			zap.Int64("chat_id", chatID),
			zap.String("action", data),
		)
		r.send(ctx, chatID, msgUnauthorized)
		return
	}

	switch data {
	case btnAdminAddMenu:
		r.sendButtons(ctx, chatID, msgAskCategory, categoryKeyboard(prefixAdminAdd))
		return
	case btnAdminDelMenu:
		r.sendButtons(ctx, chatID, msgAskCategory, categoryKeyboard(prefixAdminDel))
		return
	case btnAdminListMenu:
		r.sendButtons(ctx, chatID, msgAskCategory, categoryKeyboard(prefixAdminList))
		return
	case btnAdminStats:
		r.sendAdminStats(ctx, chatID)
		return
	case btnAdminBroadcast:
		r.Sessions.Set(chatID, session.Mode{State: session.StateAwaitingBroadcast})
		r.sendButtons(ctx, chatID, msgAskBroadcast, cancelKeyboard())
		return
	}

	switch {
	case strings.HasPrefix(data, prefixAdminAdd):
		if category, ok := models.ParseCategory(strings.TrimPrefix(data, prefixAdminAdd)); ok {
			r.Sessions.Set(chatID, session.Mode{
				State:    session.StateAwaitingQuestionText,
				Category: category,
			})
			r.sendButtons(ctx, chatID, fmt.Sprintf(msgAskNewQuestion, category.Title()), cancelKeyboard())
			return
		}

	case strings.HasPrefix(data, prefixAdminDel):
		if category, ok := models.ParseCategory(strings.TrimPrefix(data, prefixAdminDel)); ok {
			r.sendQuestionPage(ctx, chatID, category, 1)
			r.Sessions.Set(chatID, session.Mode{
				State:    session.StateAwaitingDeleteID,
				Category: category,
			})
			r.sendButtons(ctx, chatID, fmt.Sprintf(msgAskDeleteID, category.Title()), cancelKeyboard())
			return
		}

	case strings.HasPrefix(data, prefixAdminList):
		if category, ok := models.ParseCategory(strings.TrimPrefix(data, prefixAdminList)); ok {
			r.sendQuestionPage(ctx, chatID, category, 1)
			return
		}
	}

	r.send(ctx, chatID, msgUnrecognized)
}

// sendAdminStats gathers and sends the usage and content statistics.
func (r *Router) sendAdminStats(ctx context.Context, chatID int64) {
	stats, err := r.Users.Stats()
	if err != nil {
		logger.Get().Error("failed to gather user stats", zap.Error(err))
		r.send(ctx, chatID, msgStorageError)
		return
	}

	counts, err := r.Questions.CountByCategory()
	if err != nil {
		logger.Get().Error("failed to count questions", zap.Error(err))
		r.send(ctx, chatID, msgStorageError)
		return
	}

	r.send(ctx, chatID, formatStats(stats, counts))
}
