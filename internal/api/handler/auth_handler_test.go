package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/core/ports"
)

type stubSessionService struct {
	loginFn          func(ctx context.Context, email, password string) (string, *domain.Profile, error)
	signupFn         func(ctx context.Context, input ports.SignupInput) (string, *domain.Profile, error)
	logoutFn         func(ctx context.Context, token string) error
	currentFn        func(ctx context.Context, userID string) (*domain.Profile, error)
	updateFn         func(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.Profile, error)
	changePasswordFn func(ctx context.Context, userID, oldPassword, newPassword string) error
	forgotFn         func(ctx context.Context, email string) error
	resetFn          func(ctx context.Context, email, code, newPassword string) error
}

func (s *stubSessionService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSessionService) Signup(ctx context.Context, input ports.SignupInput) (string, *domain.Profile, error) {
	return s.signupFn(ctx, input)
}

func (s *stubSessionService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubSessionService) CurrentProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.currentFn(ctx, userID)
}

func (s *stubSessionService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.Profile, error) {
	return s.updateFn(ctx, userID, update)
}

func (s *stubSessionService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, userID, oldPassword, newPassword)
}

func (s *stubSessionService) ForgotPassword(ctx context.Context, email string) error {
	return s.forgotFn(ctx, email)
}

func (s *stubSessionService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return s.resetFn(ctx, email, code, newPassword)
}

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_ForcesUserRole(t *testing.T) {
	stub := &stubSessionService{
		signupFn: func(_ context.Context, input ports.SignupInput) (string, *domain.Profile, error) {
			if input.Role != domain.RoleUser {
				t.Fatalf("public signup passed role %q", input.Role)
			}
			return "tok", &domain.Profile{ID: "1", Username: input.Username, Role: input.Role}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/signup",
		`{"username":"alice","email":"a@example.com","password":"longenough"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" {
		t.Fatalf("expected token in response, got %v", resp["token"])
	}
	if resp["redirectTo"] != "/v1/me" {
		t.Fatalf("expected user landing redirect, got %v", resp["redirectTo"])
	}
}

func TestAuthHandler_Signup_ForwardsIdempotencyKey(t *testing.T) {
	stub := &stubSessionService{
		signupFn: func(_ context.Context, input ports.SignupInput) (string, *domain.Profile, error) {
			if input.IdempotencyKey != "signup-key-9" {
				t.Fatalf("idempotency key not forwarded: %q", input.IdempotencyKey)
			}
			return "tok", &domain.Profile{ID: "1", Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/signup",
		`{"username":"alice","email":"a@example.com","password":"longenough"}`)
	c.Request().Header.Set("Idempotency-Key", "signup-key-9")

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_ShortPassword(t *testing.T) {
	stub := &stubSessionService{
		signupFn: func(context.Context, ports.SignupInput) (string, *domain.Profile, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/v1/auth/signup",
		`{"username":"alice","email":"a@example.com","password":"short"}`)
	err := h.Signup(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_DefaultRedirectByRole(t *testing.T) {
	stub := &stubSessionService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.Profile, error) {
			return "tok", &domain.Profile{ID: "9", Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/login",
		`{"email":"admin@example.com","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["redirectTo"] != "/v1/admin/overview" {
		t.Fatalf("expected admin landing redirect, got %v", resp["redirectTo"])
	}
}

func TestAuthHandler_Login_HonorsNextParam(t *testing.T) {
	stub := &stubSessionService{
		loginFn: func(context.Context, string, string) (string, *domain.Profile, error) {
			return "tok", &domain.Profile{ID: "1", Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/login?next=/v1/work-items",
		`{"email":"a@example.com","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["redirectTo"] != "/v1/work-items" {
		t.Fatalf("remembered destination lost: %v", resp["redirectTo"])
	}
}

func TestAuthHandler_Login_InvalidCredentialsPassesThrough(t *testing.T) {
	stub := &stubSessionService{
		loginFn: func(context.Context, string, string) (string, *domain.Profile, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/v1/auth/login",
		`{"email":"a@example.com","password":"bad"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_ForgotPassword_AlwaysAccepted(t *testing.T) {
	stub := &stubSessionService{
		forgotFn: func(context.Context, string) error { return nil },
	}
	h := NewAuthHandler(stub)

	for _, email := range []string{"known@example.com", "unknown@example.com"} {
		c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/forgot-password",
			`{"email":"`+email+`"}`)
		if err := h.ForgotPassword(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202 for %s, got %d", email, rec.Code)
		}
	}
}

func TestAuthHandler_ResetPassword_BadCodePassesThrough(t *testing.T) {
	stub := &stubSessionService{
		resetFn: func(context.Context, string, string, string) error {
			return domain.ErrInvalidResetCode
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/v1/auth/reset-password",
		`{"email":"a@example.com","resetCode":"nope","newPassword":"longenough"}`)
	if err := h.ResetPassword(c); !errors.Is(err, domain.ErrInvalidResetCode) {
		t.Fatalf("expected ErrInvalidResetCode, got %v", err)
	}
}

func TestAuthHandler_Logout_UsesContextToken(t *testing.T) {
	var revoked string
	stub := &stubSessionService{
		logoutFn: func(_ context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/logout", "")
	c.Set("token", "the-raw-jwt")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if revoked != "the-raw-jwt" {
		t.Fatalf("logout revoked %q", revoked)
	}
}
