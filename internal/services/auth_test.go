package services

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quizzie-backend/internal/middleware"
	"quizzie-backend/internal/models"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	users := &fakeUserStore{}
	return NewAuthService(users, client, middleware.NewJWTAuth("test-secret")), users
}

func registerReq() models.RegisterRequest {
	return models.RegisterRequest{
		FullName: "Test User",
		Email:    "test@example.com",
		Password: "StrongPass123",
	}
}

func TestRegisterIssuesTokens(t *testing.T) {
	svc, users := newAuthFixture(t)

	tokens, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("Expected both tokens to be issued")
	}
	if len(users.users) != 1 {
		t.Fatalf("Expected 1 stored user, got %d", len(users.users))
	}
	if users.users[0].PasswordHash == "StrongPass123" {
		t.Error("Password stored in plain text")
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RegisterRequest)
		field  string
	}{
		{"missing name", func(r *models.RegisterRequest) { r.FullName = "" }, "full_name"},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *models.RegisterRequest) { r.Password = "short" }, "password"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newAuthFixture(t)
			req := registerReq()
			tc.mutate(&req)

			_, err := svc.Register(context.Background(), req)

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if _, ok := vErr.Fields[tc.field]; !ok {
				t.Errorf("Expected error for field %q, got %v", tc.field, vErr.Fields)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	svc.Register(context.Background(), registerReq())

	_, err := svc.Register(context.Background(), registerReq())

	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("Expected ConflictError, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	svc.Register(context.Background(), registerReq())

	tokens, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "test@example.com",
		Password: "StrongPass123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tokens.AccessToken == "" {
		t.Error("Expected an access token")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	svc.Register(context.Background(), registerReq())

	tests := []struct {
		name string
		req  models.LoginRequest
	}{
		{"wrong password", models.LoginRequest{Email: "test@example.com", Password: "WrongPass123"}},
		{"unknown email", models.LoginRequest{Email: "other@example.com", Password: "StrongPass123"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.req)

			var uErr *UnauthorizedError
			if !errors.As(err, &uErr) {
				t.Fatalf("Expected UnauthorizedError, got %v", err)
			}
		})
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, _ := newAuthFixture(t)
	tokens, _ := svc.Register(context.Background(), registerReq())

	fresh, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if fresh.RefreshToken == tokens.RefreshToken {
		t.Error("Refresh token was not rotated")
	}

	// The consumed token is gone.
	_, err = svc.RefreshToken(context.Background(), tokens.RefreshToken)
	var uErr *UnauthorizedError
	if !errors.As(err, &uErr) {
		t.Fatalf("Expected UnauthorizedError for reused token, got %v", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	tokens, _ := svc.Register(context.Background(), registerReq())

	if err := svc.Logout(context.Background(), tokens.RefreshToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	_, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	var uErr *UnauthorizedError
	if !errors.As(err, &uErr) {
		t.Fatalf("Expected UnauthorizedError after logout, got %v", err)
	}
}
