package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quizzie-backend/internal/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	trendingLimit    int
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, trendingLimit int) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, trendingLimit: trendingLimit}
}

func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsService.DashboardSummary(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	rows, err := h.analyticsService.QuizAnalyticsReport(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

func (h *AnalyticsHandler) QuestionWise(w http.ResponseWriter, r *http.Request) {
	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return
	}

	rows, err := h.analyticsService.QuestionWiseAnalysis(r.Context(), quizID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

func (h *AnalyticsHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit := h.trendingLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	trending, err := h.analyticsService.TrendingQuizzes(r.Context(), limit)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"trending": trending})
}
