package repository

import (
	"errors"

	"github.com/lib/pq"
	"github.com/windoze95/speakify-bot/internal/logger"
	"github.com/windoze95/speakify-bot/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionRepository is a repository for interacting with questions.
type QuestionRepository struct {
	DB *gorm.DB
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// CreateQuestion inserts a new question.
func (r *QuestionRepository) CreateQuestion(question *models.Question) (*models.Question, error) {
	if err := r.DB.Create(question).Error; err != nil {
		// Check for unique constraints
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return nil, ErrDuplicateQuestion
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateQuestion
		}
		return nil, err
	}

	return question, nil
}

// DeleteQuestion removes a question by id within a category.
func (r *QuestionRepository) DeleteQuestion(category models.QuestionCategory, questionID uint) error {
	result := r.DB.Where("category = ? AND id = ?", category, questionID).
		Delete(&models.Question{})
	if result.Error != nil {
		logger.Get().Error("failed to delete question",
			zap.String("category", string(category)),
			zap.Uint("question_id", questionID),
			zap.Error(result.Error),
		)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

// GetQuestionByID retrieves a single question by id within a category.
func (r *QuestionRepository) GetQuestionByID(category models.QuestionCategory, questionID uint) (*models.Question, error) {
	var question models.Question
	err := r.DB.Where("category = ? AND id = ?", category, questionID).
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	return &question, nil
}

// ListQuestions returns a page of questions in a category ordered by id,
// along with the total count in that category.
func (r *QuestionRepository) ListQuestions(category models.QuestionCategory, offset, limit int) ([]models.Question, int64, error) {
	var total int64
	if err := r.DB.Model(&models.Question{}).
		Where("category = ?", category).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []models.Question
	err := r.DB.Where("category = ?", category).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

// RandomQuestion picks a uniformly random question from a category.
func (r *QuestionRepository) RandomQuestion(category models.QuestionCategory) (*models.Question, error) {
	var question models.Question
	err := r.DB.Where("category = ?", category).
		Order("RANDOM()").
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoQuestions
		}
		return nil, err
	}

	return &question, nil
}

// CountQuestions returns the number of questions in a category.
func (r *QuestionRepository) CountQuestions(category models.QuestionCategory) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Question{}).
		Where("category = ?", category).
		Count(&count).Error
	return count, err
}
