package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/core/ports"
)

type stubWorkService struct {
	saveFn   func(ctx context.Context, input ports.SubmitWorkInput) (*ports.SubmitWorkResult, error)
	listFn   func(ctx context.Context, filter ports.WorkItemFilter) ([]*domain.WorkItem, error)
	acceptFn func(ctx context.Context, id string) (*domain.WorkItem, error)
	rejectFn func(ctx context.Context, id string) (*domain.WorkItem, error)
}

func (s *stubWorkService) SaveWorkData(ctx context.Context, input ports.SubmitWorkInput) (*ports.SubmitWorkResult, error) {
	return s.saveFn(ctx, input)
}

func (s *stubWorkService) List(ctx context.Context, filter ports.WorkItemFilter) ([]*domain.WorkItem, error) {
	return s.listFn(ctx, filter)
}

func (s *stubWorkService) Accept(ctx context.Context, id string) (*domain.WorkItem, error) {
	return s.acceptFn(ctx, id)
}

func (s *stubWorkService) Reject(ctx context.Context, id string) (*domain.WorkItem, error) {
	return s.rejectFn(ctx, id)
}

func TestWorkHandler_Submit_Created(t *testing.T) {
	stub := &stubWorkService{
		saveFn: func(_ context.Context, input ports.SubmitWorkInput) (*ports.SubmitWorkResult, error) {
			if input.UserID != "u1" {
				t.Fatalf("unexpected user id %q", input.UserID)
			}
			if input.IdempotencyKey != "key-1" {
				t.Fatalf("idempotency key not forwarded: %q", input.IdempotencyKey)
			}
			return &ports.SubmitWorkResult{
				Item: &domain.WorkItem{ID: "w1", UserID: input.UserID, Software: input.Software, Status: domain.StatusPending},
			}, nil
		},
	}
	h := NewWorkHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/work-items",
		`{"software":"VS CODE","content":"did the thing"}`)
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleUser)
	c.Request().Header.Set("Idempotency-Key", "key-1")

	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != string(domain.StatusPending) {
		t.Fatalf("expected pending item, got %v", resp["status"])
	}
}

func TestWorkHandler_Submit_ReplayReturns200(t *testing.T) {
	stub := &stubWorkService{
		saveFn: func(context.Context, ports.SubmitWorkInput) (*ports.SubmitWorkResult, error) {
			return &ports.SubmitWorkResult{
				Item:           &domain.WorkItem{ID: "w1", Status: domain.StatusPending},
				AlreadyExisted: true,
			}, nil
		},
	}
	h := NewWorkHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/work-items",
		`{"software":"VS CODE","content":"same thing again"}`)
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleUser)

	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
}

func TestWorkHandler_Submit_ForbiddenPassesThrough(t *testing.T) {
	stub := &stubWorkService{
		saveFn: func(context.Context, ports.SubmitWorkInput) (*ports.SubmitWorkResult, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewWorkHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/v1/work-items",
		`{"software":"PHOTOSHOP","content":"x"}`)
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleUser)

	if err := h.Submit(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestWorkHandler_Submit_MissingClaims(t *testing.T) {
	stub := &stubWorkService{
		saveFn: func(context.Context, ports.SubmitWorkInput) (*ports.SubmitWorkResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewWorkHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/v1/work-items",
		`{"software":"VS CODE","content":"x"}`)
	if err := h.Submit(c); err == nil {
		t.Fatalf("expected error without auth claims")
	}
}

func TestWorkHandler_ListMine_ScopesToViewer(t *testing.T) {
	stub := &stubWorkService{
		listFn: func(_ context.Context, filter ports.WorkItemFilter) ([]*domain.WorkItem, error) {
			if filter.UserID != "u7" {
				t.Fatalf("list not scoped to viewer: %+v", filter)
			}
			return []*domain.WorkItem{{ID: "w1", UserID: "u7", Status: domain.StatusPending}}, nil
		},
	}
	h := NewWorkHandler(stub)

	c, rec := newJSONContext(t, http.MethodGet, "/v1/work-items", "")
	c.Set("user_id", "u7")
	c.Set("role", domain.RoleUser)

	if err := h.ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["id"] != "w1" {
		t.Fatalf("unexpected payload: %v", resp)
	}
}
