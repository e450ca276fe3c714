package service

import (
	"errors"
	"testing"

	"github.com/windoze95/speakify-bot/internal/config"
	"github.com/windoze95/speakify-bot/internal/models"
	"github.com/windoze95/speakify-bot/internal/repository"
	"github.com/windoze95/speakify-bot/internal/testutil"
)

var errTest = errors.New("test error")

func newTestQuestionService(repo *testutil.MockQuestionRepo) *QuestionService {
	cfg := &config.Config{}
	cfg.EnvVars.QuestionsPerPage = 5
	return NewQuestionService(cfg, repo)
}

func TestAddQuestion_Success(t *testing.T) {
	repo := testutil.NewMockQuestionRepo()
	svc := newTestQuestionService(repo)

	q, err := svc.AddQuestion(models.Part1, "  Do you enjoy your job?  ")
	if err != nil {
		t.Fatalf("AddQuestion error: %v", err)
	}
	if q.Text != "Do you enjoy your job?" {
		t.Errorf("Text = %q, want trimmed text", q.Text)
	}
	if q.Category != models.Part1 {
		t.Errorf("Category = %q, want part1", q.Category)
	}
}

func TestAddQuestion_EmptyText(t *testing.T) {
	repo := testutil.NewMockQuestionRepo()
	svc := newTestQuestionService(repo)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.AddQuestion(models.Part1, text)
		if !errors.Is(err, ErrEmptyQuestionText) {
			t.Errorf("AddQuestion(%q) error = %v, want ErrEmptyQuestionText", text, err)
		}
	}
	if len(repo.Questions) != 0 {
		t.Errorf("repo has %d questions, want 0", len(repo.Questions))
	}
}

func TestAddQuestion_Profanity(t *testing.T) {
	repo := testutil.NewMockQuestionRepo()
	svc := newTestQuestionService(repo)

	_, err := svc.AddQuestion(models.Part1, "Why is your boss such a fucking idiot?")
	if !errors.Is(err, ErrProfaneQuestionText) {
		t.Errorf("AddQuestion error = %v, want ErrProfaneQuestionText", err)
	}
}

func TestAddQuestion_Duplicate(t *testing.T) {
	repo := testutil.NewMockQuestionRepo()
	svc := newTestQuestionService(repo)

	if _, err := svc.AddQuestion(models.Part2, "Describe a memorable trip."); err != nil {
		t.Fatalf("first AddQuestion error: %v", err)
	}
	_, err := svc.AddQuestion(models.Part2, "Describe a memorable trip.")
	if !errors.Is(err, repository.ErrDuplicateQuestion) {
		t.Errorf("second AddQuestion error = %v, want ErrDuplicateQuestion", err)
	}
}

func TestAddQuestion_CategoryIsolation(t *testing.T) {
	repo := testutil.NewMockQuestionRepo()
	svc := newTestQuestionService(repo)

	if _, err := svc.AddQuestion(models.Part1, "What is your favourite season?"); err != nil {
		t.Fatalf("AddQuestion error: %v", err)
	}

	q, err := svc.RandomQuestion(models.Part1)
	if err != nil {
		t.Fatalf("RandomQuestion(part1) error: %v", err)
	}
	if q.Text != "What is your favourite season?" {
		t.Errorf("RandomQuestion text = %q", q.Text)
	}

	if _, err := svc.RandomQuestion(models.Part2); !errors.Is(err, repository.ErrNoQuestions) {
		t.Errorf("RandomQuestion(part2) error = %v, want ErrNoQuestions", err)
	}
	if _, err := svc.RandomQuestion(models.Part3); !errors.Is(err, repository.ErrNoQuestions) {
		t.Errorf("RandomQuestion(part3) error = %v, want ErrNoQuestions", err)
	}
}

func TestDeleteQuestion_RemovesFromListAndRandom(t *testing.T) {
	repo := testutil.NewMockQuestionRepo()
	svc := newTestQuestionService(repo)

	q, err := svc.AddQuestion(models.Part3, "How might cities change in the future?")
	if err != nil {
		t.Fatalf("AddQuestion error: %v", err)
	}

	if err := svc.DeleteQuestion(models.Part3, q.ID); err != nil {
		t.Fatalf("DeleteQuestion error: %v", err)
	}

	page, err := svc.ListPage(models.Part3, 1)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("Total after delete = %d, want 0", page.Total)
	}

	if _, err := svc.RandomQuestion(models.Part3); !errors.Is(err, repository.ErrNoQuestions) {
		t.Errorf("RandomQuestion after delete error = %v, want ErrNoQuestions", err)
	}
}

func TestDeleteQuestion_NotFound(t *testing.T) {
	repo := testutil.NewMockQuestionRepo()
	svc := newTestQuestionService(repo)

	err := svc.DeleteQuestion(models.Part1, 999)
	if !errors.Is(err, repository.ErrQuestionNotFound) {
		t.Errorf("DeleteQuestion error = %v, want ErrQuestionNotFound", err)
	}
}

func TestDeleteQuestion_WrongCategory(t *testing.T) {
	repo := testutil.NewMockQuestionRepo()
	svc := newTestQuestionService(repo)

	q, err := svc.AddQuestion(models.Part1, "Do you prefer mornings or evenings?")
	if err != nil {
		t.Fatalf("AddQuestion error: %v", err)
	}

	if err := svc.DeleteQuestion(models.Part2, q.ID); !errors.Is(err, repository.ErrQuestionNotFound) {
		t.Errorf("DeleteQuestion in wrong category error = %v, want ErrQuestionNotFound", err)
	}
}

func TestListPage_Pagination(t *testing.T) {
	repo := testutil.NewMockQuestionRepo()
	svc := newTestQuestionService(repo)

	for i := 0; i < 12; i++ {
		if _, err := svc.AddQuestion(models.Part1, "Question number "+string(rune('A'+i))); err != nil {
			t.Fatalf("AddQuestion error: %v", err)
		}
	}

	page, err := svc.ListPage(models.Part1, 1)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
	if len(page.Questions) != 5 {
		t.Errorf("page 1 size = %d, want 5", len(page.Questions))
	}

	last, err := svc.ListPage(models.Part1, 3)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if len(last.Questions) != 2 {
		t.Errorf("page 3 size = %d, want 2", len(last.Questions))
	}

	// Out-of-range pages clamp instead of erroring.
	clamped, err := svc.ListPage(models.Part1, 99)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if clamped.Page != 3 {
		t.Errorf("clamped page = %d, want 3", clamped.Page)
	}

	below, err := svc.ListPage(models.Part1, 0)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if below.Page != 1 {
		t.Errorf("clamped page = %d, want 1", below.Page)
	}
}

func TestListPage_EmptyCategory(t *testing.T) {
	repo := testutil.NewMockQuestionRepo()
	svc := newTestQuestionService(repo)

	page, err := svc.ListPage(models.Part2, 1)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if page.Total != 0 || page.TotalPages != 0 {
		t.Errorf("empty category page = %+v, want zero totals", page)
	}
}

func TestCountByCategory(t *testing.T) {
	repo := testutil.NewMockQuestionRepo()
	svc := newTestQuestionService(repo)

	if _, err := svc.AddQuestion(models.Part1, "One"); err != nil {
		t.Fatalf("AddQuestion error: %v", err)
	}
	if _, err := svc.AddQuestion(models.Part1, "Two"); err != nil {
		t.Fatalf("AddQuestion error: %v", err)
	}
	if _, err := svc.AddQuestion(models.Part3, "Three"); err != nil {
		t.Fatalf("AddQuestion error: %v", err)
	}

	counts, err := svc.CountByCategory()
	if err != nil {
		t.Fatalf("CountByCategory error: %v", err)
	}
	if counts[models.Part1] != 2 || counts[models.Part2] != 0 || counts[models.Part3] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
