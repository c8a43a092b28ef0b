package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizzie-backend/internal/models"
	"quizzie-backend/internal/services"
)

// ─── Error Mapping Tests ───

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"title": "Title is required"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", &services.NotFoundError{Message: "Quiz not found"}, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", &services.UnauthorizedError{Message: "Invalid email or password"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"conflict", &services.ConflictError{Message: "Email already in use"}, http.StatusConflict, "CONFLICT"},
		{"storage", &services.StorageError{Err: errors.New("connection refused")}, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/quizzes", nil)
			req.Header.Set("X-Request-ID", "req-123")
			rr := httptest.NewRecorder()

			handleServiceError(rr, req, tc.err)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error body: %v", err)
			}
			if resp.Error.Code != tc.wantCode {
				t.Errorf("Expected code %q, got %q", tc.wantCode, resp.Error.Code)
			}
			if resp.Error.RequestID != "req-123" {
				t.Errorf("Expected request id propagated, got %q", resp.Error.RequestID)
			}
		})
	}
}

func TestStorageErrorBodyIsGeneric(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/dashboard", nil)
	rr := httptest.NewRecorder()

	handleServiceError(rr, req, &services.StorageError{Err: errors.New("pq: password authentication failed")})

	if bytes.Contains(rr.Body.Bytes(), []byte("password")) {
		t.Error("Storage failure details leaked into the response body")
	}
}

// ─── JSON Helper Tests ───

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusCreated, map[string]string{"message": "ok"})

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}

	var result map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["message"] != "ok" {
		t.Errorf("Expected message 'ok', got %v", result["message"])
	}
}

func TestErrorRespWithFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quizzes", nil)
	req.Header.Set("X-Request-ID", "req-456")

	resp := errorRespWithFields("VALIDATION_ERROR", "Validation failed", map[string]string{
		"questions": "At least one question is required",
	}, req)

	if resp.Error.Fields["questions"] == "" {
		t.Error("Expected field errors to be carried through")
	}
	if resp.Error.RequestID != "req-456" {
		t.Errorf("Expected request id 'req-456', got %q", resp.Error.RequestID)
	}
}

// ─── Request Shape Tests ───

func TestCreateQuizRequestParsing(t *testing.T) {
	body := `{
		"title": "T",
		"type": "mcq",
		"questions": [
			{"text": "Q1", "options": [{"text": "A", "isCorrect": true}, {"text": "B"}]}
		]
	}`

	var req models.CreateQuizRequest
	if err := json.NewDecoder(bytes.NewReader([]byte(body))).Decode(&req); err != nil {
		t.Fatalf("Failed to parse request body: %v", err)
	}

	if req.Title != "T" || req.Type != "mcq" {
		t.Errorf("Unexpected quiz header: %q %q", req.Title, req.Type)
	}
	if len(req.Questions) != 1 || len(req.Questions[0].Options) != 2 {
		t.Fatalf("Unexpected question shape: %+v", req.Questions)
	}
	if !req.Questions[0].Options[0].IsCorrect || req.Questions[0].Options[1].IsCorrect {
		t.Error("Correctness flags parsed wrong")
	}
}

func TestUpdateQuestionRequestTimerStates(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"absent keeps timer", `{"text": "t"}`, ""},
		{"null clears timer", `{"timer": null}`, "null"},
		{"number sets timer", `{"timer": 10}`, "10"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var req models.UpdateQuestionRequest
			if err := json.Unmarshal([]byte(tc.body), &req); err != nil {
				t.Fatalf("Failed to parse: %v", err)
			}
			if string(req.Timer) != tc.want {
				t.Errorf("Expected raw timer %q, got %q", tc.want, string(req.Timer))
			}
		})
	}
}

func TestSubmitRequestParsing(t *testing.T) {
	body := `{"participantId": "anon-1", "responses": [{"questionId": "q-1", "selectedOption": "A"}]}`

	var req models.SubmitRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Failed to parse request body: %v", err)
	}

	if req.ParticipantID != "anon-1" {
		t.Errorf("Expected participantId 'anon-1', got %q", req.ParticipantID)
	}
	if len(req.Responses) != 1 || req.Responses[0].SelectedOption != "A" {
		t.Errorf("Unexpected responses: %+v", req.Responses)
	}
}
