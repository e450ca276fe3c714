package service

import (
	"time"

	"github.com/windoze95/speakify-bot/internal/config"
	"github.com/windoze95/speakify-bot/internal/repository"
)

// UserService is the business logic layer for the user registry.
type UserService struct {
	Cfg  *config.Config
	Repo repository.UserRepo
}

// UsageStats is the activity summary shown to admins.
type UsageStats struct {
	TotalUsers    int64
	DailyActive   int64
	WeeklyActive  int64
	MonthlyActive int64
}

// NewUserService is the constructor function for initializing a new
// UserService.
func NewUserService(cfg *config.Config, repo repository.UserRepo) *UserService {
	return &UserService{
		Cfg:  cfg,
		Repo: repo,
	}
}

// Touch records first-seen/last-interaction for a chat id.
func (s *UserService) Touch(chatID int64) error {
	return s.Repo.TouchUser(chatID)
}

// AllChatIDs returns every known chat id.
func (s *UserService) AllChatIDs() ([]int64, error) {
	return s.Repo.AllChatIDs()
}

// Stats gathers the total and DAU/WAU/MAU counts.
func (s *UserService) Stats() (*UsageStats, error) {
	total, err := s.Repo.CountUsers()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	daily, err := s.Repo.CountUsersActiveSince(now.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	weekly, err := s.Repo.CountUsersActiveSince(now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	monthly, err := s.Repo.CountUsersActiveSince(now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return &UsageStats{
		TotalUsers:    total,
		DailyActive:   daily,
		WeeklyActive:  weekly,
		MonthlyActive: monthly,
	}, nil
}
