package transport

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/speakify-bot/internal/logger"
	"go.uber.org/zap"
)

// update is the subset of a Telegram update the bot consumes.
type update struct {
	UpdateID int64          `json:"update_id"`
	Message  *message       `json:"message"`
	Callback *callbackQuery `json:"callback_query"`
}

type message struct {
	Chat  chat          `json:"chat"`
	Text  string        `json:"text"`
	Voice *voicePayload `json:"voice"`
}

type chat struct {
	ID int64 `json:"id"`
}

type voicePayload struct {
	FileID   string `json:"file_id"`
	Duration int    `json:"duration"`
}

type callbackQuery struct {
	ID      string   `json:"id"`
	Data    string   `json:"data"`
	Message *message `json:"message"`
}

// Webhook receives Telegram updates over HTTP and hands them to the
// dialog router. Each update is dispatched on its own goroutine; the
// router's per-user locks take care of ordering.
type Webhook struct {
	secret  string
	client  *TelegramClient
	handler EventHandler
}

// NewWebhook creates a webhook receiver.
func NewWebhook(secret string, client *TelegramClient, handler EventHandler) *Webhook {
	return &Webhook{
		secret:  secret,
		client:  client,
		handler: handler,
	}
}

// Register mounts the webhook and health routes on a gin engine.
func (w *Webhook) Register(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.POST("/webhook/:secret", w.handleUpdate)
}

// handleUpdate validates the path secret, translates the update into an
// Event, and dispatches it. Telegram retries non-200 responses, so
// malformed updates are acknowledged and dropped rather than re-queued
// forever.
func (w *Webhook) handleUpdate(c *gin.Context) {
	if c.Param("secret") != w.secret {
		c.Status(http.StatusNotFound)
		return
	}

	var u update
	if err := c.ShouldBindJSON(&u); err != nil {
		logger.Get().Warn("malformed webhook update", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	ev, callbackID, ok := eventFromUpdate(&u)
	if !ok {
		c.Status(http.StatusOK)
		return
	}

	go func() {
		ctx := context.Background()
		if callbackID != "" {
			if err := w.client.AnswerCallbackQuery(ctx, callbackID); err != nil {
				logger.Get().Warn("failed to answer callback query", zap.Error(err))
			}
		}
		w.handler.HandleEvent(ctx, ev)
	}()

	c.Status(http.StatusOK)
}

// eventFromUpdate maps an update onto the core's event model. Updates
// the bot does not understand (edits, stickers, channel posts) are
// dropped.
func eventFromUpdate(u *update) (Event, string, bool) {
	switch {
	case u.Callback != nil && u.Callback.Message != nil:
		return Event{
			ChatID: u.Callback.Message.Chat.ID,
			Kind:   EventButton,
			Button: u.Callback.Data,
		}, u.Callback.ID, true

	case u.Message != nil && u.Message.Voice != nil:
		return Event{
			ChatID: u.Message.Chat.ID,
			Kind:   EventVoice,
			Voice: &Voice{
				FileID:   u.Message.Voice.FileID,
				Duration: u.Message.Voice.Duration,
			},
		}, "", true

	case u.Message != nil && u.Message.Text != "":
		return Event{
			ChatID: u.Message.Chat.ID,
			Kind:   EventText,
			Text:   u.Message.Text,
		}, "", true

	default:
		return Event{}, "", false
	}
}
