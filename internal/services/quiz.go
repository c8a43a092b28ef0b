package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"quizzie-backend/internal/models"
)

// QuizService owns the authoring rules: creation-time shape invariants
// and the edit-time answer-key protections.
type QuizService struct {
	quizzes QuizStore
}

func NewQuizService(quizzes QuizStore) *QuizService {
	return &QuizService{quizzes: quizzes}
}

func (s *QuizService) Create(ctx context.Context, ownerID uuid.UUID, req models.CreateQuizRequest) (*models.Quiz, error) {
	fieldErrors := make(map[string]string)

	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.Type != models.QuizTypeMCQ && req.Type != models.QuizTypePoll {
		fieldErrors["type"] = "Type must be mcq or poll"
	}
	if len(req.Questions) < models.MinQuestions {
		fieldErrors["questions"] = "At least one question is required"
	}
	if len(req.Questions) > models.MaxQuestions {
		fieldErrors["questions"] = fmt.Sprintf("Maximum number of questions in a quiz is %d", models.MaxQuestions)
	}

	for i, q := range req.Questions {
		key := fmt.Sprintf("questions[%d]", i)

		if strings.TrimSpace(q.Text) == "" {
			fieldErrors[key+".text"] = "Question text is required"
		}
		if len(q.Options) < models.MinOptions || len(q.Options) > models.MaxOptions {
			fieldErrors[key+".options"] = fmt.Sprintf("Questions should contain between %d and %d options", models.MinOptions, models.MaxOptions)
			continue
		}
		if err := validateTimer(q.Timer); err != "" {
			fieldErrors[key+".timer"] = err
		}

		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		switch req.Type {
		case models.QuizTypeMCQ:
			if correct != 1 {
				fieldErrors[key+".options"] = "MCQ questions must mark exactly one correct option"
			}
		case models.QuizTypePoll:
			if correct != 0 {
				fieldErrors[key+".options"] = "Poll questions cannot mark a correct option"
			}
		}
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	questions := make([]models.Question, len(req.Questions))
	for i, q := range req.Questions {
		options := make([]models.Option, len(q.Options))
		for j, opt := range q.Options {
			options[j] = models.Option{Text: opt.Text, ImageURL: opt.ImageURL, IsCorrect: opt.IsCorrect}
		}
		questions[i] = models.Question{
			ID:      uuid.New(),
			Text:    q.Text,
			Options: options,
			Timer:   q.Timer,
		}
	}

	quiz := &models.Quiz{
		CreatedBy: ownerID,
		Title:     req.Title,
		Type:      req.Type,
		Questions: questions,
	}

	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, &StorageError{Err: err}
	}
	return quiz, nil
}

func (s *QuizService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Quiz, error) {
	quizzes, err := s.quizzes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return quizzes, nil
}

// Get is public: anyone with the id can view a quiz.
func (s *QuizService) Get(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrStorage(err, "Quiz not found")
	}
	return quiz, nil
}

// Take is the participant-facing fetch; it counts one impression.
func (s *QuizService) Take(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	quiz, err := s.quizzes.IncrementImpressions(ctx, id)
	if err != nil {
		return nil, notFoundOrStorage(err, "Quiz not found")
	}
	return quiz, nil
}

// UpdateQuestion applies a partial edit to one question. The answer key
// fixed at creation can never change through this path: correctness
// flags are immutable, the correct option keeps its text, and the
// option count stays as created. Options are matched by index.
func (s *QuizService) UpdateQuestion(ctx context.Context, quizID, questionID, ownerID uuid.UUID, req models.UpdateQuestionRequest) (*models.Quiz, error) {
	quiz, err := s.quizzes.GetOwned(ctx, quizID, ownerID)
	if err != nil {
		return nil, notFoundOrStorage(err, "Quiz not found")
	}

	idx := -1
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == questionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &NotFoundError{Message: fmt.Sprintf("Question with ID %s not found", questionID)}
	}
	question := &quiz.Questions[idx]

	if req.Type != nil && *req.Type != quiz.Type {
		return nil, validationError("type", "Type cannot be changed")
	}

	timerSet, timer, timerErr := parseTimerPatch(req.Timer)
	if timerErr != "" {
		return nil, validationError("timer", timerErr)
	}

	// Validate the whole options patch before touching anything.
	if req.Options != nil {
		if len(req.Options) < models.MinOptions || len(req.Options) > models.MaxOptions {
			return nil, validationError("options", fmt.Sprintf("Options must be between %d and %d", models.MinOptions, models.MaxOptions))
		}
		if len(req.Options) != len(question.Options) {
			return nil, validationError("options", "Cannot add or remove options for the question")
		}
		for i, patch := range req.Options {
			existing := question.Options[i]
			if existing.IsCorrect && patch.Text != existing.Text {
				return nil, validationError("options", "Cannot change the text of the correct option")
			}
			if patch.IsCorrect != existing.IsCorrect {
				return nil, validationError("options", "Cannot change the correct answer flag")
			}
		}
	}

	if req.Options != nil {
		for i, patch := range req.Options {
			question.Options[i].Text = patch.Text
			question.Options[i].ImageURL = patch.ImageURL
		}
	}
	if req.Text != nil {
		question.Text = *req.Text
	}
	if timerSet {
		question.Timer = timer
	}

	if err := s.quizzes.UpdateQuestions(ctx, quiz.ID, quiz.Questions); err != nil {
		return nil, &StorageError{Err: err}
	}
	return quiz, nil
}

// Delete removes the quiz and everything embedded in it. Submission
// records referencing it are deliberately left behind.
func (s *QuizService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.quizzes.Delete(ctx, id)
	if err != nil {
		return &StorageError{Err: err}
	}
	if !found {
		return &NotFoundError{Message: "Quiz not found"}
	}
	return nil
}

func validateTimer(timer *int) string {
	if timer != nil && *timer != 5 && *timer != 10 {
		return "Timer must be 5 or 10 seconds"
	}
	return ""
}

// parseTimerPatch keeps the three patch states apart: absent = keep,
// null = clear, number = set.
func parseTimerPatch(raw []byte) (set bool, timer *int, errMsg string) {
	if len(raw) == 0 {
		return false, nil, ""
	}
	if string(raw) == "null" {
		return true, nil, ""
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || (n != 5 && n != 10) {
		return false, nil, "Timer must be 5 or 10 seconds"
	}
	return true, &n, ""
}
