// Package domain holds the catalog entities: questions, categories, and
// announcements.
package domain

import (
	"errors"
	"strings"
	"time"
)

// Difficulty grades a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is a single trivia question with its canonical answer.
type Question struct {
	ID         string
	CategoryID string
	Prompt     string
	Answer     string
	Difficulty Difficulty
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate validates the question for persistence. Returns an error
// describing the first validation failure.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return errors.New("prompt is required")
	}
	if strings.TrimSpace(q.Answer) == "" {
		return errors.New("answer is required")
	}
	if q.Difficulty == "" {
		q.Difficulty = DifficultyMedium
	}
	switch q.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return errors.New("difficulty must be easy, medium, or hard")
	}
	return nil
}
