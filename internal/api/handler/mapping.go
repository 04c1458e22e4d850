package handler

import (
	"time"

	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/core/ports"
)

// The storage schema speaks snake_case, the API speaks camelCase. This file
// is the single place that translation happens; fields absent on the storage
// side come out as empty strings / empty sets, never null, so consumers have
// no missing-field branches.

type profileResponse struct {
	ID              string   `json:"id"`
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	ProfilePicture  string   `json:"profilePicture"`
	AllowedSoftware []string `json:"allowedSoftware"`
	CreatedAt       string   `json:"createdAt"`
}

type workItemResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Software  string `json:"software"`
	Content   string `json:"content"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

type overviewResponse struct {
	Users     []profileResponse  `json:"users"`
	WorkItems []workItemResponse `json:"workItems"`
	Pending   int                `json:"pending"`
	Accepted  int                `json:"accepted"`
	Rejected  int                `json:"rejected"`
}

func profileToUI(p *domain.Profile) profileResponse {
	if p == nil {
		return profileResponse{AllowedSoftware: []string{}}
	}
	allowed := p.AllowedSoftware
	if allowed == nil {
		allowed = []string{}
	}
	return profileResponse{
		ID:              p.ID,
		Username:        p.Username,
		Email:           p.Email,
		Role:            p.Role,
		ProfilePicture:  p.ProfilePicture,
		AllowedSoftware: allowed,
		CreatedAt:       formatTime(p.CreatedAt),
	}
}

func workItemToUI(w *domain.WorkItem) workItemResponse {
	if w == nil {
		return workItemResponse{}
	}
	return workItemResponse{
		ID:        w.ID,
		UserID:    w.UserID,
		Software:  w.Software,
		Content:   w.Content,
		Status:    string(w.Status),
		CreatedAt: formatTime(w.CreatedAt),
	}
}

func overviewToUI(o *ports.AdminOverview) overviewResponse {
	resp := overviewResponse{
		Users:     make([]profileResponse, 0, len(o.Users)),
		WorkItems: make([]workItemResponse, 0, len(o.WorkItems)),
		Pending:   o.Pending,
		Accepted:  o.Accepted,
		Rejected:  o.Rejected,
	}
	for _, u := range o.Users {
		resp.Users = append(resp.Users, profileToUI(u))
	}
	for _, w := range o.WorkItems {
		resp.WorkItems = append(resp.WorkItems, workItemToUI(w))
	}
	return resp
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
