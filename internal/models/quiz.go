package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	QuizTypeMCQ  = "mcq"
	QuizTypePoll = "poll"
)

const (
	MinQuestions = 1
	MaxQuestions = 5
	MinOptions   = 2
	MaxOptions   = 4
)

// Option has no identity of its own; edits address options by position
// within the question's options array.
type Option struct {
	Text      string `json:"text"`
	ImageURL  string `json:"imageUrl,omitempty"`
	IsCorrect bool   `json:"isCorrect"`
}

type Question struct {
	ID      uuid.UUID `json:"id"`
	Text    string    `json:"text"`
	Options []Option  `json:"options"`
	Timer   *int      `json:"timer"` // seconds, 5 or 10; nil = no timer

	// Stored counters shown in the analytics report. Not maintained by
	// the submission flow; see RecordQuestionOutcomes.
	Attempts  int `json:"attempts"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

type Quiz struct {
	ID                    uuid.UUID  `json:"id"`
	CreatedBy             uuid.UUID  `json:"created_by"`
	Title                 string     `json:"title"`
	Type                  string     `json:"type"` // mcq | poll, immutable
	Questions             []Question `json:"questions"`
	Impressions           int        `json:"impressions"`
	TotalAttempts         int        `json:"total_attempts"`
	TotalCorrectGuesses   int        `json:"total_correct_guesses"`
	TotalIncorrectGuesses int        `json:"total_incorrect_guesses"`
	CreatedAt             time.Time  `json:"created_at"`
}

type OptionInput struct {
	Text      string `json:"text"`
	ImageURL  string `json:"imageUrl,omitempty"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionInput struct {
	Text    string        `json:"text"`
	Options []OptionInput `json:"options"`
	Timer   *int          `json:"timer"`
}

type CreateQuizRequest struct {
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	Questions []QuestionInput `json:"questions"`
}

// UpdateQuestionRequest is a partial patch. Timer is raw so the three JSON
// states stay distinguishable: absent = keep, null = clear, number = set.
// Options, when present, must be a full replacement of the same length.
type UpdateQuestionRequest struct {
	Text    *string         `json:"text"`
	Type    *string         `json:"type"`
	Timer   json.RawMessage `json:"timer"`
	Options []OptionInput   `json:"options"`
}
