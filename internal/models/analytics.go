package models

import "time"

type DashboardSummary struct {
	TotalQuizzes     int    `json:"totalQuizzes"`
	TotalQuestions   int    `json:"totalQuestions"`
	TotalImpressions int    `json:"totalImpressions"`
	TrendingQuizzes  []Quiz `json:"trendingQuizzes"`
}

type QuestionAnalytics struct {
	QuestionNo   int    `json:"questionNo"`
	QuestionText string `json:"questionText"`
	Attempts     int    `json:"attempts"`
	Correct      int    `json:"correct"`
	Incorrect    int    `json:"incorrect"`
}

// QuizAnalyticsRow is one line of the creator's analytics table, with
// action links the frontend renders as-is.
type QuizAnalyticsRow struct {
	SNo               int                 `json:"sNo"`
	Title             string              `json:"title"`
	CreatedAt         time.Time           `json:"createdAt"`
	Impressions       int                 `json:"impressions"`
	Edit              string              `json:"edit"`
	Delete            string              `json:"delete"`
	Share             string              `json:"share"`
	QuestionAnalytics []QuestionAnalytics `json:"questionAnalytics"`
}

// QuestionWiseRow is derived from participant records, not from the
// counters stored on the quiz. The two sources may disagree.
type QuestionWiseRow struct {
	QuestionID   string         `json:"questionId"`
	QuestionText string         `json:"questionText"`
	Attempts     int            `json:"attempts"`
	Correct      int            `json:"correct"`
	Incorrect    int            `json:"incorrect"`
	OptionCounts map[string]int `json:"optionCounts,omitempty"` // poll tallies per option text
}

type TrendingQuiz struct {
	Rank int `json:"rank"`
	Quiz
}
