package service

import (
	"errors"
	"strings"

	goaway "github.com/TwiN/go-away"
	"github.com/windoze95/speakify-bot/internal/config"
	"github.com/windoze95/speakify-bot/internal/models"
	"github.com/windoze95/speakify-bot/internal/repository"
)

// Validation errors surfaced to the dialog layer as corrective replies.
var (
	ErrEmptyQuestionText   = errors.New("question text is empty")
	ErrProfaneQuestionText = errors.New("question text contains profanity")
)

// QuestionService is the business logic layer for question operations.
type QuestionService struct {
	Cfg  *config.Config
	Repo repository.QuestionRepo
}

// QuestionPage is one page of a category listing.
type QuestionPage struct {
	Questions  []models.Question
	Page       int
	TotalPages int
	Total      int64
}

// NewQuestionService is the constructor function for initializing a new
// QuestionService.
func NewQuestionService(cfg *config.Config, repo repository.QuestionRepo) *QuestionService {
	return &QuestionService{
		Cfg:  cfg,
		Repo: repo,
	}
}

// AddQuestion validates and stores a new question.
func (s *QuestionService) AddQuestion(category models.QuestionCategory, text string) (*models.Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuestionText
	}
	if goaway.IsProfane(text) {
		return nil, ErrProfaneQuestionText
	}

	question := &models.Question{
		Category: category,
		Text:     text,
	}
	return s.Repo.CreateQuestion(question)
}

// DeleteQuestion removes a question by id within a category.
func (s *QuestionService) DeleteQuestion(category models.QuestionCategory, questionID uint) error {
	return s.Repo.DeleteQuestion(category, questionID)
}

// GetQuestion retrieves a single question by id within a category.
func (s *QuestionService) GetQuestion(category models.QuestionCategory, questionID uint) (*models.Question, error) {
	return s.Repo.GetQuestionByID(category, questionID)
}

// RandomQuestion picks a random question from a category.
func (s *QuestionService) RandomQuestion(category models.QuestionCategory) (*models.Question, error) {
	return s.Repo.RandomQuestion(category)
}

// ListPage returns one page of a category listing. Pages are 1-based
// and clamped to the valid range.
func (s *QuestionService) ListPage(category models.QuestionCategory, page int) (*QuestionPage, error) {
	pageSize := s.Cfg.EnvVars.QuestionsPerPage
	if pageSize <= 0 {
		pageSize = 5
	}

	_, total, err := s.Repo.ListQuestions(category, 0, 0)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages == 0 {
		return &QuestionPage{Page: 1, TotalPages: 0, Total: 0}, nil
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	questions, _, err := s.Repo.ListQuestions(category, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:  questions,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

// CountByCategory returns the per-category question counts in category
// display order.
func (s *QuestionService) CountByCategory() (map[models.QuestionCategory]int64, error) {
	counts := make(map[models.QuestionCategory]int64)
	for _, category := range models.AllCategories() {
		count, err := s.Repo.CountQuestions(category)
		if err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, nil
}
