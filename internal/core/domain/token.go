package domain

import "time"

// SSOToken is an opaque, time-scoped capability issued so a launched external
// tool can trust the portal's authentication without re-prompting the user.
// The token bytes carry no identity or scope; resolution goes through the
// server-side lookup record.
type SSOToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Software  string    `json:"software"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
