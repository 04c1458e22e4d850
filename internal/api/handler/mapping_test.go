package handler

import (
	"testing"
	"time"

	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/core/ports"
)

func TestProfileToUI_NilSoftwareBecomesEmptySet(t *testing.T) {
	p := &domain.Profile{ID: "1", Username: "alice", Role: domain.RoleUser}

	resp := profileToUI(p)
	if resp.AllowedSoftware == nil {
		t.Fatalf("allowedSoftware must serialize as [], not null")
	}
	if len(resp.AllowedSoftware) != 0 {
		t.Fatalf("unexpected entitlements: %v", resp.AllowedSoftware)
	}
}

func TestProfileToUI_FieldMapping(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := &domain.Profile{
		ID:              "1",
		Username:        "alice",
		Email:           "a@example.com",
		Role:            domain.RoleAdmin,
		ProfilePicture:  "https://cdn.example.com/a.png",
		AllowedSoftware: []string{"VS CODE"},
		CreatedAt:       created,
	}

	resp := profileToUI(p)
	if resp.ID != "1" || resp.Username != "alice" || resp.Role != domain.RoleAdmin {
		t.Fatalf("identity fields lost: %+v", resp)
	}
	if resp.CreatedAt != "2025-06-01T12:00:00Z" {
		t.Fatalf("timestamp not RFC3339: %s", resp.CreatedAt)
	}
}

func TestWorkItemToUI_ZeroTimeBecomesEmpty(t *testing.T) {
	w := &domain.WorkItem{ID: "w1", Status: domain.StatusPending}

	resp := workItemToUI(w)
	if resp.CreatedAt != "" {
		t.Fatalf("zero time should map to empty string, got %q", resp.CreatedAt)
	}
	if resp.Status != "pending" {
		t.Fatalf("status lost: %q", resp.Status)
	}
}

func TestOverviewToUI_EmptySlicesNotNil(t *testing.T) {
	resp := overviewToUI(&ports.AdminOverview{})

	if resp.Users == nil || resp.WorkItems == nil {
		t.Fatalf("empty collections must serialize as [], not null")
	}
}
