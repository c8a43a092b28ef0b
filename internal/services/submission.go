package services

import (
	"context"

	"github.com/google/uuid"

	"quizzie-backend/internal/models"
)

// SubmissionService accepts participant responses and records one
// Participant row per call. The quiz row itself is never touched.
type SubmissionService struct {
	quizzes      QuizStore
	participants ParticipantStore
}

func NewSubmissionService(quizzes QuizStore, participants ParticipantStore) *SubmissionService {
	return &SubmissionService{quizzes: quizzes, participants: participants}
}

// Submit scores mcq responses against the quiz's answer key; poll
// responses are recorded as given and never judged. Responses naming an
// unknown question or option are kept but contribute nothing to the
// score. That leniency is intentional: participants may answer against
// a stale copy of the quiz.
func (s *SubmissionService) Submit(ctx context.Context, quizID uuid.UUID, req models.SubmitRequest) (*models.SubmissionResult, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, notFoundOrStorage(err, "Quiz not found")
	}

	participant := &models.Participant{
		QuizID:        quizID,
		ParticipantID: req.ParticipantID,
		Answers:       make([]models.Answer, 0, len(req.Responses)),
	}

	if quiz.Type == models.QuizTypePoll {
		for _, resp := range req.Responses {
			participant.Answers = append(participant.Answers, models.Answer{
				QuestionID:     resp.QuestionID,
				SelectedOption: resp.SelectedOption,
			})
		}
		if err := s.participants.Create(ctx, participant); err != nil {
			return nil, &StorageError{Err: err}
		}
		return &models.SubmissionResult{Message: "Thank you for participating!"}, nil
	}

	score := 0
	for _, resp := range req.Responses {
		answer := models.Answer{
			QuestionID:     resp.QuestionID,
			SelectedOption: resp.SelectedOption,
		}
		if question := findQuestion(quiz, resp.QuestionID); question != nil {
			if option := findOption(question, resp.SelectedOption); option != nil && option.IsCorrect {
				answer.IsCorrect = true
				score++
			}
		}
		participant.Answers = append(participant.Answers, answer)
	}

	participant.Score = &score
	if err := s.participants.Create(ctx, participant); err != nil {
		return nil, &StorageError{Err: err}
	}

	total := len(quiz.Questions)
	return &models.SubmissionResult{
		CorrectAnswers: &score,
		TotalQuestions: &total,
	}, nil
}

func findQuestion(quiz *models.Quiz, questionID string) *models.Question {
	for i := range quiz.Questions {
		if quiz.Questions[i].ID.String() == questionID {
			return &quiz.Questions[i]
		}
	}
	return nil
}

func findOption(question *models.Question, text string) *models.Option {
	for i := range question.Options {
		if question.Options[i].Text == text {
			return &question.Options[i]
		}
	}
	return nil
}
