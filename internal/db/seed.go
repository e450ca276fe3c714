package db

import (
	"fmt"

	"github.com/windoze95/speakify-bot/internal/logger"
	"github.com/windoze95/speakify-bot/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedSampleQuestions inserts placeholder questions into any category
// that is still empty, so a fresh deployment has something to serve
// before admins add real content.
func SeedSampleQuestions(database *gorm.DB) error {
	for _, category := range models.AllCategories() {
		var count int64
		if err := database.Model(&models.Question{}).
			Where("category = ?", category).
			Count(&count).Error; err != nil {
			return fmt.Errorf("count %s questions: %w", category, err)
		}
		if count > 0 {
			continue
		}

		for i := 1; i <= 14; i++ {
			q := models.Question{
				Category: category,
				Text:     fmt.Sprintf("Sample %s Question %d", category.Title(), i),
			}
			if err := database.Create(&q).Error; err != nil {
				return fmt.Errorf("seed %s questions: %w", category, err)
			}
		}
		logger.Get().Info("seeded sample questions", zap.String("category", string(category)))
	}

	return nil
}
