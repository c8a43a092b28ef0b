package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quizzie-backend/internal/middleware"
	"quizzie-backend/internal/models"
	"quizzie-backend/internal/services"
)

type QuizHandler struct {
	quizService      *services.QuizService
	analyticsService *services.AnalyticsService
}

func NewQuizHandler(quizService *services.QuizService, analyticsService *services.AnalyticsService) *QuizHandler {
	return &QuizHandler{quizService: quizService, analyticsService: analyticsService}
}

func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	ownerID := middleware.GetUserID(r.Context())

	quiz, err := h.quizService.Create(r.Context(), ownerID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.analyticsService.InvalidateDashboard(r.Context())
	writeJSON(w, http.StatusCreated, quiz)
}

func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	quizzes, err := h.quizService.ListByOwner(r.Context(), ownerID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"quizzes": quizzes})
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return
	}

	quiz, err := h.quizService.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quiz)
}

// Take serves the quiz to a participant and counts the view.
func (h *QuizHandler) Take(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return
	}

	quiz, err := h.quizService.Take(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return
	}

	questionID, err := uuid.Parse(chi.URLParam(r, "questionID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid question ID", r))
		return
	}

	var req models.UpdateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	ownerID := middleware.GetUserID(r.Context())

	quiz, err := h.quizService.UpdateQuestion(r.Context(), quizID, questionID, ownerID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Question updated successfully",
		"quiz":    quiz,
	})
}

func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid quiz ID", r))
		return
	}

	if err := h.quizService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.analyticsService.InvalidateDashboard(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Quiz deleted successfully"})
}
