package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// DefaultAllowedSoftware is the entitlement set granted to a freshly
// signed-up user account. Admin accounts start with none.
var DefaultAllowedSoftware = []string{"VS CODE", "GITHUB"}

// Identity is the authentication-level account record: the credential pair
// used to log in, independent of any application-level profile data.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	// IdempotencyKey is the client-supplied key of the signup that created
	// this identity, when one was presented. Unique across identities.
	IdempotencyKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Profile is the application-level user record, one-to-one with an Identity
// and keyed by the same id.
type Profile struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email,omitempty"`
	Role            string    `json:"role"`
	ProfilePicture  string    `json:"profilePicture"`
	AllowedSoftware []string  `json:"allowedSoftware"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// HasSoftware reports whether name is in the profile's entitlement set.
func (p *Profile) HasSoftware(name string) bool {
	for _, s := range p.AllowedSoftware {
		if s == name {
			return true
		}
	}
	return false
}
