package dialog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/windoze95/speakify-bot/internal/config"
	"github.com/windoze95/speakify-bot/internal/logger"
	"github.com/windoze95/speakify-bot/internal/models"
	"github.com/windoze95/speakify-bot/internal/repository"
	"github.com/windoze95/speakify-bot/internal/service"
	"github.com/windoze95/speakify-bot/internal/session"
	"github.com/windoze95/speakify-bot/internal/transport"
	"go.uber.org/zap"
)

// adminLookupPattern matches the part:id shorthand admins can send to
// fetch a single question, e.g. "2:15".
var adminLookupPattern = regexp.MustCompile(`^\d+:\d+$`)

// Router is the dialog state machine. Given an incoming event and the
// user's current session mode, it decides the next action and the next
// mode. All handling for one user is serialized through the session
// lock registry; distinct users proceed in parallel.
type Router struct {
	Cfg         *config.Config
	Sessions    *session.Table
	Locks       *session.Locks
	Guard       *Guard
	Questions   *service.QuestionService
	Users       *service.UserService
	Broadcaster *service.BroadcastService
	Evaluator   *service.EvaluationService
	Transport   transport.Transport
}

// NewRouter is the constructor function for initializing a new Router.
func NewRouter(
	cfg *config.Config,
	sessions *session.Table,
	locks *session.Locks,
	guard *Guard,
	questions *service.QuestionService,
	users *service.UserService,
	broadcaster *service.BroadcastService,
	evaluator *service.EvaluationService,
	tp transport.Transport,
) *Router {
	return &Router{
		Cfg:         cfg,
		Sessions:    sessions,
		Locks:       locks,
		Guard:       guard,
		Questions:   questions,
		Users:       users,
		Broadcaster: broadcaster,
		Evaluator:   evaluator,
		Transport:   tp,
	}
}

// HandleEvent processes one inbound event under the sender's lock.
func (r *Router) HandleEvent(ctx context.Context, ev transport.Event) {
	r.Locks.Lock(ev.ChatID)
	defer r.Locks.Unlock(ev.ChatID)

	if err := r.Users.Touch(ev.ChatID); err != nil {
		logger.Get().Warn("failed to record user activity",
			zap.Int64("chat_id", ev.ChatID),
			zap.Error(err),
		)
	}

	mode := r.Sessions.Get(ev.ChatID)

	switch ev.Kind {
	case transport.EventText:
		r.handleText(ctx, ev, mode)
	case transport.EventButton:
		r.handleButton(ctx, ev, mode)
	case transport.EventVoice:
		r.handleVoice(ctx, ev, mode)
	default:
		r.send(ctx, ev.ChatID, msgUnrecognized)
	}
}

// --- text events ---

func (r *Router) handleText(ctx context.Context, ev transport.Event, mode session.Mode) {
	text := strings.TrimSpace(ev.Text)

	// Commands reset whatever flow was in progress.
	switch text {
	case "/start":
		r.resetToMainMenu(ctx, ev.ChatID)
		return
	case "/admin":
		if !r.Guard.IsAdmin(ev.ChatID) {
			r.send(ctx, ev.ChatID, msgUnauthorized)
			return
		}
		r.Sessions.Clear(ev.ChatID)
		r.sendButtons(ctx, ev.ChatID, msgAdminPanel, adminMenuKeyboard())
		return
	}

	switch mode.State {
	case session.StateAwaitingQuestionText:
		r.handleNewQuestionText(ctx, ev.ChatID, mode.Category, text)
	case session.StateAwaitingDeleteID:
		r.handleDeleteID(ctx, ev.ChatID, mode.Category, text)
	case session.StateAwaitingBroadcast:
		r.handleBroadcastText(ctx, ev.ChatID, text)
	case session.StateAwaitingAdminMessage:
		r.handleAdminChatText(ctx, ev.ChatID, text)
	case session.StateAwaitingVoiceAnswer:
		r.send(ctx, ev.ChatID, msgVoiceExpected)
	default:
		if r.Guard.IsAdmin(ev.ChatID) && adminLookupPattern.MatchString(text) {
			r.handleAdminLookup(ctx, ev.ChatID, text)
			return
		}
		r.send(ctx, ev.ChatID, msgUnrecognized)
	}
}

func (r *Router) handleNewQuestionText(ctx context.Context, chatID int64, category models.QuestionCategory, text string) {
	_, err := r.Questions.AddQuestion(category, text)
	switch {
	case errors.Is(err, service.ErrEmptyQuestionText):
		// Re-prompt; the flow stays open.
		r.send(ctx, chatID, msgEmptyQuestionText)
		return
	case errors.Is(err, service.ErrProfaneQuestionText):
		r.send(ctx, chatID, msgProfaneQuestion)
	case errors.Is(err, repository.ErrDuplicateQuestion):
		r.send(ctx, chatID, msgQuestionExists)
	case err != nil:
		logger.Get().Error("failed to add question", zap.Error(err))
		r.send(ctx, chatID, msgStorageError)
	default:
		r.send(ctx, chatID, msgQuestionAdded)
	}
	r.Sessions.Clear(chatID)
}

func (r *Router) handleDeleteID(ctx context.Context, chatID int64, category models.QuestionCategory, text string) {
	if !govalidator.IsInt(text) {
		// Re-prompt; the flow stays open.
		r.send(ctx, chatID, msgInvalidID)
		return
	}
	id, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		r.send(ctx, chatID, msgInvalidID)
		return
	}

	err = r.Questions.DeleteQuestion(category, uint(id))
	switch {
	case errors.Is(err, repository.ErrQuestionNotFound):
		r.send(ctx, chatID, msgQuestionNotFound)
	case err != nil:
		logger.Get().Error("failed to delete question", zap.Error(err))
		r.send(ctx, chatID, msgStorageError)
	default:
		r.send(ctx, chatID, msgQuestionDeleted)
	}
	r.Sessions.Clear(chatID)
}

func (r *Router) handleBroadcastText(ctx context.Context, chatID int64, text string) {
	r.Sessions.Clear(chatID)
	r.send(ctx, chatID, msgBroadcastStarted)

	result, err := r.Broadcaster.Broadcast(ctx, chatID, text)
	if err != nil {
		logger.Get().Error("broadcast failed", zap.Error(err))
		r.send(ctx, chatID, msgStorageError)
		return
	}
	r.send(ctx, chatID, formatBroadcastSummary(result))
}

func (r *Router) handleAdminChatText(ctx context.Context, chatID int64, text string) {
	forwarded := formatForwardedMessage(chatID, text)
	for _, adminID := range r.Guard.AdminIDs() {
		if err := r.Transport.SendText(ctx, adminID, forwarded); err != nil {
			logger.Get().Warn("failed to forward message to admin",
				zap.Int64("admin_id", adminID),
				zap.Error(err),
			)
		}
	}
	r.send(ctx, chatID, msgAdminMessageSent)
	r.Sessions.Clear(chatID)
}

func (r *Router) handleAdminLookup(ctx context.Context, chatID int64, text string) {
	parts := strings.SplitN(text, ":", 2)
	partNum, _ := strconv.Atoi(parts[0])
	id, _ := strconv.ParseUint(parts[1], 10, 64)

	var category models.QuestionCategory
	switch partNum {
	case 1:
		category = models.Part1
	case 2:
		category = models.Part2
	case 3:
		category = models.Part3
	default:
		r.send(ctx, chatID, fmt.Sprintf("Invalid part number: %d. Please use 1, 2, or 3.", partNum))
		return
	}

	question, err := r.Questions.GetQuestion(category, uint(id))
	switch {
	case errors.Is(err, repository.ErrQuestionNotFound):
		r.send(ctx, chatID, msgQuestionNotFound)
	case err != nil:
		logger.Get().Error("failed to look up question", zap.Error(err))
		r.send(ctx, chatID, msgStorageError)
	default:
		r.send(ctx, chatID, formatQuestionReply(question))
	}
}

// --- button events ---

func (r *Router) handleButton(ctx context.Context, ev transport.Event, mode session.Mode) {
	data := ev.Button

	// Cancel aborts any flow from any state.
	if data == btnCancel {
		r.Sessions.Clear(ev.ChatID)
		r.Sessions.ClearCurrentQuestion(ev.ChatID)
		r.send(ctx, ev.ChatID, msgCancelled)
		r.sendButtons(ctx, ev.ChatID, msgWelcome, mainMenuKeyboard())
		return
	}

	// Mid-flow button presses other than cancel don't match the
	// expected input type for the state; never silently drop them.
	if mode.State != session.StateIdle {
		r.send(ctx, ev.ChatID, msgUnrecognized)
		return
	}

	switch data {
	case btnAICheck:
		question := r.Sessions.CurrentQuestion(ev.ChatID)
		r.Sessions.Set(ev.ChatID, session.Mode{
			State:    session.StateAwaitingVoiceAnswer,
			Question: question,
		})
		prompt := fmt.Sprintf(msgVoicePrompt, r.Cfg.EnvVars.MaxVoiceDuration/60)
		r.sendButtons(ctx, ev.ChatID, prompt, cancelKeyboard())
		return

	case btnChatAdmin:
		r.Sessions.Set(ev.ChatID, session.Mode{State: session.StateAwaitingAdminMessage})
		r.sendButtons(ctx, ev.ChatID, msgAskAdminChat, cancelKeyboard())
		return

	case btnListMenu:
		r.sendButtons(ctx, ev.ChatID, msgAskCategory, categoryKeyboard(prefixList))
		return

	case btnAdminAddMenu, btnAdminDelMenu, btnAdminListMenu, btnAdminStats, btnAdminBroadcast:
		r.handleAdminButton(ctx, ev.ChatID, data)
		return
	}

	switch {
	case strings.HasPrefix(data, prefixAdminAdd), strings.HasPrefix(data, prefixAdminDel), strings.HasPrefix(data, prefixAdminList):
		r.handleAdminButton(ctx, ev.ChatID, data)

	case strings.HasPrefix(data, prefixRandom):
		if category, ok := models.ParseCategory(strings.TrimPrefix(data, prefixRandom)); ok {
			r.handleRandomQuestion(ctx, ev.ChatID, category)
			return
		}
		r.send(ctx, ev.ChatID, msgUnrecognized)

	case strings.HasPrefix(data, prefixPage):
		r.handlePagination(ctx, ev.ChatID, data)

	case strings.HasPrefix(data, prefixList):
		if category, ok := models.ParseCategory(strings.TrimPrefix(data, prefixList)); ok {
			r.sendQuestionPage(ctx, ev.ChatID, category, 1)
			return
		}
		r.send(ctx, ev.ChatID, msgUnrecognized)

	default:
		r.send(ctx, ev.ChatID, msgUnrecognized)
	}
}

func (r *Router) handleRandomQuestion(ctx context.Context, chatID int64, category models.QuestionCategory) {
	question, err := r.Questions.RandomQuestion(category)
	switch {
	case errors.Is(err, repository.ErrNoQuestions):
		r.send(ctx, chatID, fmt.Sprintf(msgEmptyCategory, category.Title()))
	case err != nil:
		logger.Get().Error("failed to pick random question", zap.Error(err))
		r.send(ctx, chatID, msgStorageError)
	default:
		r.Sessions.SetCurrentQuestion(chatID, question.Text)
		r.sendButtons(ctx, chatID, formatQuestionReply(question), questionActionsKeyboard(category))
	}
}

func (r *Router) handlePagination(ctx context.Context, chatID int64, data string) {
	rest := strings.TrimPrefix(data, prefixPage)
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		r.send(ctx, chatID, msgUnrecognized)
		return
	}
	page, err := strconv.Atoi(parts[0])
	if err != nil {
		r.send(ctx, chatID, msgUnrecognized)
		return
	}
	category, ok := models.ParseCategory(parts[1])
	if !ok {
		r.send(ctx, chatID, msgUnrecognized)
		return
	}
	r.sendQuestionPage(ctx, chatID, category, page)
}

func (r *Router) sendQuestionPage(ctx context.Context, chatID int64, category models.QuestionCategory, page int) {
	questionPage, err := r.Questions.ListPage(category, page)
	if err != nil {
		logger.Get().Error("failed to list questions", zap.Error(err))
		r.send(ctx, chatID, msgStorageError)
		return
	}

	text := formatQuestionPage(category, questionPage)
	keyboard := paginationKeyboard(questionPage.Page, questionPage.TotalPages, category)
	if keyboard == nil {
		r.send(ctx, chatID, text)
		return
	}
	r.sendButtons(ctx, chatID, text, keyboard)
}

// --- voice events ---

func (r *Router) handleVoice(ctx context.Context, ev transport.Event, mode session.Mode) {
	if mode.State != session.StateAwaitingVoiceAnswer {
		r.send(ctx, ev.ChatID, msgUnrecognized)
		return
	}

	if ev.Voice.Duration > r.Cfg.EnvVars.MaxVoiceDuration {
		r.send(ctx, ev.ChatID, fmt.Sprintf(msgVoiceTooLong, ev.Voice.Duration, r.Cfg.EnvVars.MaxVoiceDuration))
		return
	}

	// The pipeline reports its own outcome to the user; whatever
	// happened, the session goes back to idle.
	r.Evaluator.Evaluate(ctx, ev.ChatID, ev.Voice, mode.Question)
	r.Sessions.Clear(ev.ChatID)
	r.Sessions.ClearCurrentQuestion(ev.ChatID)
	r.sendButtons(ctx, ev.ChatID, msgWelcome, mainMenuKeyboard())
}

// --- helpers ---

func (r *Router) resetToMainMenu(ctx context.Context, chatID int64) {
	r.Sessions.Clear(chatID)
	r.sendButtons(ctx, chatID, msgWelcome, mainMenuKeyboard())
}

func (r *Router) send(ctx context.Context, chatID int64, text string) {
	sendCtx, cancel := context.WithTimeout(ctx, r.Cfg.EnvVars.SendTimeout)
	defer cancel()
	if err := r.Transport.SendText(sendCtx, chatID, text); err != nil {
		logger.Get().Warn("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) sendButtons(ctx context.Context, chatID int64, text string, rows [][]transport.Button) {
	sendCtx, cancel := context.WithTimeout(ctx, r.Cfg.EnvVars.SendTimeout)
	defer cancel()
	if err := r.Transport.SendButtons(sendCtx, chatID, text, rows); err != nil {
		logger.Get().Warn("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
