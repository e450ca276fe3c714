package repository

import (
	"time"

	"github.com/lib/pq"
	"github.com/windoze95/speakify-bot/internal/logger"
	"github.com/windoze95/speakify-bot/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserRepository is a repository for interacting with users.
type UserRepository struct {
	DB *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// TouchUser records activity for a chat id: updates LastInteraction for
// a known user, or creates the row with FirstSeen set for a new one.
func (r *UserRepository) TouchUser(chatID int64) error {
	now := time.Now()

	result := r.DB.Model(&models.User{}).
		Where("chat_id = ?", chatID).
		Update("last_interaction", now)
	if result.Error != nil {
		logger.Get().Error("failed to touch user", zap.Int64("chat_id", chatID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	user := models.User{
		ChatID:          chatID,
		FirstSeen:       now,
		LastInteraction: now,
	}
	if err := r.DB.Create(&user).Error; err != nil {
		// Two events from a brand-new user can race on the insert; the
		// loser hits the unique index, which is equivalent to success.
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return nil
		}
		logger.Get().Error("failed to create user", zap.Int64("chat_id", chatID), zap.Error(err))
		return err
	}

	logger.Get().Info("new user registered", zap.Int64("chat_id", chatID))
	return nil
}

// AllChatIDs returns every known chat id, for broadcast fan-out.
func (r *UserRepository) AllChatIDs() ([]int64, error) {
	var chatIDs []int64
	if err := r.DB.Model(&models.User{}).Pluck("chat_id", &chatIDs).Error; err != nil {
		return nil, err
	}
	return chatIDs, nil
}

// CountUsers returns the total number of known users.
func (r *UserRepository) CountUsers() (int64, error) {
	var count int64
	err := r.DB.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountUsersActiveSince returns the number of users whose last
// interaction is at or after the given time.
func (r *UserRepository) CountUsersActiveSince(since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&models.User{}).
		Where("last_interaction >= ?", since).
		Count(&count).Error
	return count, err
}
