package services

import (
	"context"

	"github.com/google/uuid"

	"quizzie-backend/internal/models"
)

// Store interfaces cover exactly what the services consume. The pgx
// repositories satisfy them in production; tests use in-memory fakes.
// Missing rows are reported as pgx.ErrNoRows by every implementation.

type QuizStore interface {
	Create(ctx context.Context, q *models.Quiz) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*models.Quiz, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Quiz, error)
	ListByImpressions(ctx context.Context) ([]*models.Quiz, error)
	ListByCreatedDesc(ctx context.Context) ([]*models.Quiz, error)
	ListTrending(ctx context.Context, limit int) ([]*models.Quiz, error)
	UpdateQuestions(ctx context.Context, id uuid.UUID, questions []models.Question) error
	IncrementImpressions(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type ParticipantStore interface {
	Create(ctx context.Context, p *models.Participant) error
	ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]*models.Participant, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}
