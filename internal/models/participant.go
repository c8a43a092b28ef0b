package models

import (
	"time"

	"github.com/google/uuid"
)

// Answer records one response as the participant gave it. QuestionID is
// kept as an opaque string: submissions referencing an unknown question
// are stored as-is, never rejected.
type Answer struct {
	QuestionID     string `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
	IsCorrect      bool   `json:"isCorrect"`
}

// Participant is one submission against a quiz. Created once, never
// mutated. It references the quiz by id but is not cleaned up when the
// quiz is deleted.
type Participant struct {
	ID            uuid.UUID `json:"id"`
	QuizID        uuid.UUID `json:"quiz_id"`
	ParticipantID string    `json:"participant_id"`
	Answers       []Answer  `json:"answers"`
	Score         *int      `json:"score"` // nil for polls
	AttemptDate   time.Time `json:"attempt_date"`
}

type ResponseInput struct {
	QuestionID     string `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
}

type SubmitRequest struct {
	ParticipantID string          `json:"participantId"`
	Responses     []ResponseInput `json:"responses"`
}

// SubmissionResult is the caller-facing outcome: polls get a message,
// mcq quizzes get a score.
type SubmissionResult struct {
	Message        string `json:"message,omitempty"`
	CorrectAnswers *int   `json:"correctAnswers,omitempty"`
	TotalQuestions *int   `json:"totalQuestions,omitempty"`
}
