package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizzie-backend/internal/models"
)

// ParticipantRepo stores submission records. Rows are append-only: one
// per submission, never updated, never deleted here.
type ParticipantRepo struct {
	pool *pgxpool.Pool
}

func NewParticipantRepo(pool *pgxpool.Pool) *ParticipantRepo {
	return &ParticipantRepo{pool: pool}
}

func (r *ParticipantRepo) Create(ctx context.Context, p *models.Participant) error {
	p.ID = uuid.New()
	p.AttemptDate = time.Now()

	answersBytes, err := json.Marshal(p.Answers)
	if err != nil {
		return err
	}

	query := `INSERT INTO participants (id, quiz_id, participant_id, answers_json, score, attempt_date)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.pool.Exec(ctx, query,
		p.ID, p.QuizID, p.ParticipantID, answersBytes, p.Score, p.AttemptDate,
	)
	return err
}

func (r *ParticipantRepo) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]*models.Participant, error) {
	query := `SELECT id, quiz_id, participant_id, answers_json, score, attempt_date
		FROM participants WHERE quiz_id = $1 ORDER BY attempt_date ASC`

	rows, err := r.pool.Query(ctx, query, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p := &models.Participant{}
		var answersBytes []byte
		err := rows.Scan(&p.ID, &p.QuizID, &p.ParticipantID, &answersBytes, &p.Score, &p.AttemptDate)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answersBytes, &p.Answers); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
