package models

import (
	"errors"

	"gorm.io/gorm"
)

// QuestionCategory is the type for the QuestionCategory enum.
type QuestionCategory string

// QuestionCategory enum values, one per IELTS speaking part.
const (
	Part1 QuestionCategory = "part1"
	Part2 QuestionCategory = "part2"
	Part3 QuestionCategory = "part3"
)

// AllCategories returns the fixed category set in display order.
func AllCategories() []QuestionCategory {
	return []QuestionCategory{Part1, Part2, Part3}
}

// ParseCategory converts a wire value like "part2" into a category.
func ParseCategory(s string) (QuestionCategory, bool) {
	c := QuestionCategory(s)
	return c, c.IsValid()
}

// IsValid checks if the QuestionCategory is valid.
func (c QuestionCategory) IsValid() bool {
	switch c {
	case Part1, Part2, Part3:
		return true
	default:
		return false
	}
}

// Title returns the human-readable name of the category.
func (c QuestionCategory) Title() string {
	switch c {
	case Part1:
		return "Part 1"
	case Part2:
		return "Part 2"
	case Part3:
		return "Part 3"
	default:
		return string(c)
	}
}

// Question is the model for a stored practice question. Questions are
// immutable once created except for deletion, and text is unique within
// a category.
type Question struct {
	gorm.Model
	Category QuestionCategory `gorm:"type:text;not null;uniqueIndex:idx_questions_category_text"`
	Text     string           `gorm:"not null;uniqueIndex:idx_questions_category_text"`
}

// BeforeCreate is a GORM hook that runs before creating a new Question.
func (q *Question) BeforeCreate(tx *gorm.DB) (err error) {
	if !q.Category.IsValid() {
		// Cancel transaction
		return errors.New("invalid QuestionCategory provided")
	}

	return nil
}

// BeforeUpdate is a GORM hook that runs before updating a Question.
func (q *Question) BeforeUpdate(tx *gorm.DB) (err error) {
	if !q.Category.IsValid() {
		// Cancel transaction
		return errors.New("invalid QuestionCategory provided")
	}

	return nil
}
