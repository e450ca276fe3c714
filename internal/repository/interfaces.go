package repository

import (
	"time"

	"github.com/windoze95/speakify-bot/internal/models"
)

// QuestionRepo is the interface for question repository operations.
type QuestionRepo interface {
	CreateQuestion(question *models.Question) (*models.Question, error)
	DeleteQuestion(category models.QuestionCategory, questionID uint) error
	GetQuestionByID(category models.QuestionCategory, questionID uint) (*models.Question, error)
	ListQuestions(category models.QuestionCategory, offset, limit int) ([]models.Question, int64, error)
	RandomQuestion(category models.QuestionCategory) (*models.Question, error)
	CountQuestions(category models.QuestionCategory) (int64, error)
}

// UserRepo is the interface for user repository operations.
type UserRepo interface {
	TouchUser(chatID int64) error
	AllChatIDs() ([]int64, error)
	CountUsers() (int64, error)
	CountUsersActiveSince(since time.Time) (int64, error)
}
