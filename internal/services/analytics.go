package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"quizzie-backend/internal/models"
)

const dashboardCacheKey = "analytics:dashboard"

// AnalyticsService builds the creator-facing read views. Two of them
// deliberately read different sources: the report serves the counters
// stored on each question, while question-wise analysis recomputes from
// participant records. They can disagree; both are served as-is.
type AnalyticsService struct {
	quizzes      QuizStore
	participants ParticipantStore
	cache        *redis.Client
	cacheTTL     time.Duration
}

func NewAnalyticsService(quizzes QuizStore, participants ParticipantStore, cache *redis.Client, cacheTTL time.Duration) *AnalyticsService {
	return &AnalyticsService{
		quizzes:      quizzes,
		participants: participants,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// DashboardSummary returns corpus-wide totals plus every quiz sorted by
// impressions, most viewed first. The per-quiz impressions source is the
// quiz-level counter everywhere; results are cached briefly in redis.
func (s *AnalyticsService) DashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardCacheKey).Result(); err == nil {
			summary := &models.DashboardSummary{}
			if json.Unmarshal([]byte(cached), summary) == nil {
				return summary, nil
			}
		}
	}

	quizzes, err := s.quizzes.ListByImpressions(ctx)
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	summary := &models.DashboardSummary{
		TotalQuizzes:    len(quizzes),
		TrendingQuizzes: make([]models.Quiz, 0, len(quizzes)),
	}
	for _, q := range quizzes {
		summary.TotalQuestions += len(q.Questions)
		summary.TotalImpressions += q.Impressions
		summary.TrendingQuizzes = append(summary.TrendingQuizzes, *q)
	}

	if s.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			s.cache.Set(ctx, dashboardCacheKey, data, s.cacheTTL)
		}
	}
	return summary, nil
}

// InvalidateDashboard drops the cached summary. Called after quiz
// creation and deletion so totals do not lag a full TTL behind.
func (s *AnalyticsService) InvalidateDashboard(ctx context.Context) {
	if s.cache != nil {
		s.cache.Del(ctx, dashboardCacheKey)
	}
}

// QuizAnalyticsReport lists every quiz newest first, with action links
// and the per-question counters stored on the quiz document.
func (s *AnalyticsService) QuizAnalyticsReport(ctx context.Context) ([]models.QuizAnalyticsRow, error) {
	quizzes, err := s.quizzes.ListByCreatedDesc(ctx)
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	rows := make([]models.QuizAnalyticsRow, 0, len(quizzes))
	for i, quiz := range quizzes {
		row := models.QuizAnalyticsRow{
			SNo:         i + 1,
			Title:       quiz.Title,
			CreatedAt:   quiz.CreatedAt,
			Impressions: quiz.Impressions,
			Edit:        fmt.Sprintf("/quiz/%s", quiz.ID),
			Delete:      fmt.Sprintf("/del/quiz/%s", quiz.ID),
			Share:       fmt.Sprintf("/quiz/take/%s", quiz.ID),
		}
		for j, q := range quiz.Questions {
			row.QuestionAnalytics = append(row.QuestionAnalytics, models.QuestionAnalytics{
				QuestionNo:   j + 1,
				QuestionText: q.Text,
				Attempts:     q.Attempts,
				Correct:      q.Correct,
				Incorrect:    q.Incorrect,
			})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// QuestionWiseAnalysis recomputes per-question attempt counts from the
// recorded participant answers. Answers referencing questions that no
// longer resolve are skipped. For polls there is no right answer, so
// the rows carry per-option selection tallies instead.
func (s *AnalyticsService) QuestionWiseAnalysis(ctx context.Context, quizID uuid.UUID) ([]models.QuestionWiseRow, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, notFoundOrStorage(err, "Quiz not found")
	}

	participants, err := s.participants.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	byQuestion := make(map[string]*models.QuestionWiseRow)
	rows := make([]models.QuestionWiseRow, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		row := models.QuestionWiseRow{
			QuestionID:   q.ID.String(),
			QuestionText: q.Text,
		}
		if quiz.Type == models.QuizTypePoll {
			row.OptionCounts = make(map[string]int, len(q.Options))
			for _, opt := range q.Options {
				row.OptionCounts[opt.Text] = 0
			}
		}
		rows = append(rows, row)
		byQuestion[row.QuestionID] = &rows[len(rows)-1]
	}

	for _, p := range participants {
		for _, answer := range p.Answers {
			row, ok := byQuestion[answer.QuestionID]
			if !ok {
				continue
			}
			row.Attempts++
			if quiz.Type == models.QuizTypePoll {
				if _, known := row.OptionCounts[answer.SelectedOption]; known {
					row.OptionCounts[answer.SelectedOption]++
				}
				continue
			}
			if answer.IsCorrect {
				row.Correct++
			} else {
				row.Incorrect++
			}
		}
	}
	return rows, nil
}

// TrendingQuizzes returns the top quizzes by impressions with a 1-based
// rank. A non-positive limit falls back to the default of 2.
func (s *AnalyticsService) TrendingQuizzes(ctx context.Context, limit int) ([]models.TrendingQuiz, error) {
	if limit <= 0 {
		limit = 2
	}

	quizzes, err := s.quizzes.ListTrending(ctx, limit)
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	trending := make([]models.TrendingQuiz, 0, len(quizzes))
	for i, q := range quizzes {
		trending = append(trending, models.TrendingQuiz{Rank: i + 1, Quiz: *q})
	}
	return trending, nil
}
