package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/windoze95/speakify-bot/internal/ai"
	"github.com/windoze95/speakify-bot/internal/models"
	"github.com/windoze95/speakify-bot/internal/repository"
	"github.com/windoze95/speakify-bot/internal/transport"
)

// --- MockSpeechProvider ---

// MockSpeechProvider is a mock implementation of ai.SpeechProvider.
type MockSpeechProvider struct {
	TranscribeFileFunc func(ctx context.Context, path string) (string, error)
}

func (m *MockSpeechProvider) TranscribeFile(ctx context.Context, path string) (string, error) {
	if m.TranscribeFileFunc != nil {
		return m.TranscribeFileFunc(ctx, path)
	}
	return "", fmt.Errorf("TranscribeFile not configured")
}

// --- MockFeedbackProvider ---

// MockFeedbackProvider is a mock implementation of ai.FeedbackProvider.
type MockFeedbackProvider struct {
	GenerateFeedbackFunc func(ctx context.Context, question, transcript string) (*ai.Feedback, error)
}

func (m *MockFeedbackProvider) GenerateFeedback(ctx context.Context, question, transcript string) (*ai.Feedback, error) {
	if m.GenerateFeedbackFunc != nil {
		return m.GenerateFeedbackFunc(ctx, question, transcript)
	}
	return nil, fmt.Errorf("GenerateFeedback not configured")
}

// --- MockQuestionRepo ---

// MockQuestionRepo is an in-memory mock implementation of
// repository.QuestionRepo.
type MockQuestionRepo struct {
	mu        sync.Mutex
	Questions map[uint]*models.Question
	NextID    uint

	CreateErr error
	ListErr   error
}

// NewMockQuestionRepo creates an empty MockQuestionRepo.
func NewMockQuestionRepo() *MockQuestionRepo {
	return &MockQuestionRepo{
		Questions: make(map[uint]*models.Question),
		NextID:    1,
	}
}

func (m *MockQuestionRepo) CreateQuestion(question *models.Question) (*models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	for _, q := range m.Questions {
		if q.Category == question.Category && q.Text == question.Text {
			return nil, repository.ErrDuplicateQuestion
		}
	}

	question.ID = m.NextID
	m.NextID++
	stored := *question
	m.Questions[question.ID] = &stored
	return question, nil
}

func (m *MockQuestionRepo) DeleteQuestion(category models.QuestionCategory, questionID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.Questions[questionID]
	if !ok || q.Category != category {
		return repository.ErrQuestionNotFound
	}
	delete(m.Questions, questionID)
	return nil
}

func (m *MockQuestionRepo) GetQuestionByID(category models.QuestionCategory, questionID uint) (*models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.Questions[questionID]
	if !ok || q.Category != category {
		return nil, repository.ErrQuestionNotFound
	}
	copied := *q
	return &copied, nil
}

func (m *MockQuestionRepo) ListQuestions(category models.QuestionCategory, offset, limit int) ([]models.Question, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, 0, m.ListErr
	}

	all := m.sortedByCategory(category)
	total := int64(len(all))

	// limit <= 0 mirrors SQL LIMIT 0: count only, no rows.
	if limit <= 0 || offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *MockQuestionRepo) RandomQuestion(category models.QuestionCategory) (*models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.sortedByCategory(category)
	if len(all) == 0 {
		return nil, repository.ErrNoQuestions
	}
	// Deterministic pick keeps tests stable.
	copied := all[0]
	return &copied, nil
}

func (m *MockQuestionRepo) CountQuestions(category models.QuestionCategory) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.sortedByCategory(category))), nil
}

func (m *MockQuestionRepo) sortedByCategory(category models.QuestionCategory) []models.Question {
	var all []models.Question
	for _, q := range m.Questions {
		if q.Category == category {
			all = append(all, *q)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// --- MockUserRepo ---

// MockUserRepo is an in-memory mock implementation of repository.UserRepo.
type MockUserRepo struct {
	mu    sync.Mutex
	Users map[int64]*models.User

	TouchErr error
}

// NewMockUserRepo creates an empty MockUserRepo.
func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{Users: make(map[int64]*models.User)}
}

func (m *MockUserRepo) TouchUser(chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.TouchErr != nil {
		return m.TouchErr
	}

	now := time.Now()
	if user, ok := m.Users[chatID]; ok {
		user.LastInteraction = now
		return nil
	}
	m.Users[chatID] = &models.User{
		ChatID:          chatID,
		FirstSeen:       now,
		LastInteraction: now,
	}
	return nil
}

func (m *MockUserRepo) AllChatIDs() ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int64, 0, len(m.Users))
	for id := range m.Users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *MockUserRepo) CountUsers() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.Users)), nil
}

func (m *MockUserRepo) CountUsersActiveSince(since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, user := range m.Users {
		if !user.LastInteraction.Before(since) {
			count++
		}
	}
	return count, nil
}

// --- MockTransport ---

// SentMessage is one outbound message recorded by MockTransport.
type SentMessage struct {
	ChatID  int64
	Text    string
	Buttons [][]transport.Button
}

// MockTransport is a mock implementation of transport.Transport that
// records every send. SendErrs injects per-recipient delivery failures;
// DownloadVoiceFunc overrides the download.
type MockTransport struct {
	mu   sync.Mutex
	Sent []SentMessage

	SendErrs          map[int64]error
	DownloadVoiceFunc func(ctx context.Context, fileID string) ([]byte, error)
}

// NewMockTransport creates an empty MockTransport.
func NewMockTransport() *MockTransport {
	return &MockTransport{SendErrs: make(map[int64]error)}
}

func (m *MockTransport) SendText(ctx context.Context, chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.SendErrs[chatID]; ok {
		return err
	}
	m.Sent = append(m.Sent, SentMessage{ChatID: chatID, Text: text})
	return nil
}

func (m *MockTransport) SendButtons(ctx context.Context, chatID int64, text string, rows [][]transport.Button) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.SendErrs[chatID]; ok {
		return err
	}
	m.Sent = append(m.Sent, SentMessage{ChatID: chatID, Text: text, Buttons: rows})
	return nil
}

func (m *MockTransport) DownloadVoice(ctx context.Context, fileID string) ([]byte, error) {
	if m.DownloadVoiceFunc != nil {
		return m.DownloadVoiceFunc(ctx, fileID)
	}
	return nil, fmt.Errorf("DownloadVoice not configured")
}

// MessagesTo returns the texts sent to one chat id, in order.
func (m *MockTransport) MessagesTo(chatID int64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var texts []string
	for _, msg := range m.Sent {
		if msg.ChatID == chatID {
			texts = append(texts, msg.Text)
		}
	}
	return texts
}
