package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizzie-backend/internal/models"
)

// QuizRepo stores each quiz as one row with its questions embedded as a
// JSONB array, so a question edit is a single atomic row update.
type QuizRepo struct {
	pool *pgxpool.Pool
}

func NewQuizRepo(pool *pgxpool.Pool) *QuizRepo {
	return &QuizRepo{pool: pool}
}

const quizColumns = `id, created_by, title, type, questions_json, impressions,
	total_attempts, total_correct_guesses, total_incorrect_guesses, created_at`

func (r *QuizRepo) Create(ctx context.Context, q *models.Quiz) error {
	q.ID = uuid.New()
	questionsBytes, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}

	query := `INSERT INTO quizzes (id, created_by, title, type, questions_json)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		q.ID, q.CreatedBy, q.Title, q.Type, questionsBytes,
	).Scan(&q.CreatedAt)
}

func (r *QuizRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetOwned resolves a quiz only when it belongs to ownerID. An owner
// mismatch surfaces as pgx.ErrNoRows, same as a missing quiz.
func (r *QuizRepo) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1 AND created_by = $2`
	return r.scanOne(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *QuizRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE created_by = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, ownerID)
}

// ListByImpressions returns every quiz, most viewed first. Ties keep
// insertion order, which makes the dashboard ranking stable.
func (r *QuizRepo) ListByImpressions(ctx context.Context) ([]*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes ORDER BY impressions DESC, created_at ASC`
	return r.list(ctx, query)
}

func (r *QuizRepo) ListByCreatedDesc(ctx context.Context) ([]*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *QuizRepo) ListTrending(ctx context.Context, limit int) ([]*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes ORDER BY impressions DESC, created_at ASC LIMIT $1`
	return r.list(ctx, query, limit)
}

// UpdateQuestions replaces the embedded questions array in one UPDATE.
// The quiz row is the unit of atomicity; there is no finer-grained lock.
func (r *QuizRepo) UpdateQuestions(ctx context.Context, id uuid.UUID, questions []models.Question) error {
	questionsBytes, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		"UPDATE quizzes SET questions_json = $1 WHERE id = $2",
		questionsBytes, id,
	)
	return err
}

// IncrementImpressions bumps the view counter and returns the fresh row.
func (r *QuizRepo) IncrementImpressions(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	query := `UPDATE quizzes SET impressions = impressions + 1 WHERE id = $1
		RETURNING ` + quizColumns
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// Delete removes the quiz row; embedded questions and options go with
// it. Participant records are left untouched. Returns false when no row
// matched.
func (r *QuizRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM quizzes WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *QuizRepo) scanOne(row rowScanner) (*models.Quiz, error) {
	q := &models.Quiz{}
	var questionsBytes []byte

	err := row.Scan(
		&q.ID, &q.CreatedBy, &q.Title, &q.Type, &questionsBytes, &q.Impressions,
		&q.TotalAttempts, &q.TotalCorrectGuesses, &q.TotalIncorrectGuesses, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questionsBytes, &q.Questions); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *QuizRepo) list(ctx context.Context, query string, args ...any) ([]*models.Quiz, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []*models.Quiz
	for rows.Next() {
		q, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}
