package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"quizzie-backend/internal/models"
)

// In-memory stores backing the service tests. They hand out copies, so
// nothing persists unless the service calls a write method, same as the
// real repositories.

type fakeQuizStore struct {
	quizzes []*models.Quiz
	clock   time.Time
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{clock: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func cloneQuiz(q *models.Quiz) *models.Quiz {
	clone := *q
	clone.Questions = cloneQuestions(q.Questions)
	return &clone
}

func cloneQuestions(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	for i, q := range questions {
		out[i] = q
		out[i].Options = append([]models.Option(nil), q.Options...)
		if q.Timer != nil {
			t := *q.Timer
			out[i].Timer = &t
		}
	}
	return out
}

func (s *fakeQuizStore) Create(ctx context.Context, q *models.Quiz) error {
	q.ID = uuid.New()
	s.clock = s.clock.Add(time.Minute)
	q.CreatedAt = s.clock
	s.quizzes = append(s.quizzes, cloneQuiz(q))
	return nil
}

func (s *fakeQuizStore) find(id uuid.UUID) *models.Quiz {
	for _, q := range s.quizzes {
		if q.ID == id {
			return q
		}
	}
	return nil
}

func (s *fakeQuizStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	if q := s.find(id); q != nil {
		return cloneQuiz(q), nil
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeQuizStore) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*models.Quiz, error) {
	if q := s.find(id); q != nil && q.CreatedBy == ownerID {
		return cloneQuiz(q), nil
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeQuizStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Quiz, error) {
	var out []*models.Quiz
	for _, q := range s.quizzes {
		if q.CreatedBy == ownerID {
			out = append(out, cloneQuiz(q))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeQuizStore) ListByImpressions(ctx context.Context) ([]*models.Quiz, error) {
	out := make([]*models.Quiz, len(s.quizzes))
	for i, q := range s.quizzes {
		out[i] = cloneQuiz(q)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Impressions > out[j].Impressions })
	return out, nil
}

func (s *fakeQuizStore) ListByCreatedDesc(ctx context.Context) ([]*models.Quiz, error) {
	out := make([]*models.Quiz, len(s.quizzes))
	for i, q := range s.quizzes {
		out[i] = cloneQuiz(q)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeQuizStore) ListTrending(ctx context.Context, limit int) ([]*models.Quiz, error) {
	out, _ := s.ListByImpressions(ctx)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeQuizStore) UpdateQuestions(ctx context.Context, id uuid.UUID, questions []models.Question) error {
	if q := s.find(id); q != nil {
		q.Questions = cloneQuestions(questions)
		return nil
	}
	return pgx.ErrNoRows
}

func (s *fakeQuizStore) IncrementImpressions(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	if q := s.find(id); q != nil {
		q.Impressions++
		return cloneQuiz(q), nil
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeQuizStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	for i, q := range s.quizzes {
		if q.ID == id {
			s.quizzes = append(s.quizzes[:i], s.quizzes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeParticipantStore struct {
	participants []*models.Participant
}

func (s *fakeParticipantStore) Create(ctx context.Context, p *models.Participant) error {
	p.ID = uuid.New()
	p.AttemptDate = time.Now()
	clone := *p
	clone.Answers = append([]models.Answer(nil), p.Answers...)
	s.participants = append(s.participants, &clone)
	return nil
}

func (s *fakeParticipantStore) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]*models.Participant, error) {
	var out []*models.Participant
	for _, p := range s.participants {
		if p.QuizID == quizID {
			clone := *p
			clone.Answers = append([]models.Answer(nil), p.Answers...)
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeUserStore struct {
	users []*models.User
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	clone := *user
	s.users = append(s.users, &clone)
	return nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeUserStore) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	for _, u := range s.users {
		if u.ID == id {
			now := time.Now()
			u.LastLoginAt = &now
		}
	}
	return nil
}
