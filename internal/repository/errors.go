package repository

import "errors"

// Sentinel errors returned by repositories. Services translate these
// into user-facing replies rather than treating them as system faults.
var (
	// ErrQuestionNotFound is returned when a lookup or delete targets an
	// id that does not exist in the requested category.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrDuplicateQuestion is returned when inserting text that already
	// exists in the same category.
	ErrDuplicateQuestion = errors.New("question already exists")

	// ErrNoQuestions is returned by Random when a category is empty.
	ErrNoQuestions = errors.New("no questions in category")
)
