package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type signupRequest struct {
	Username string `json:"username" validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token      string          `json:"token"`
	User       profileResponse `json:"user"`
	RedirectTo string          `json:"redirectTo"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	ResetCode   string `json:"resetCode"   validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Profile ---

type updateProfileRequest struct {
	Username       *string `json:"username"       validate:"omitempty,min=2"`
	ProfilePicture *string `json:"profilePicture"`
}

// --- Work items ---

type submitWorkRequest struct {
	Software string `json:"software" validate:"required"`
	Content  string `json:"content"  validate:"required"`
}

// --- SSO ---

type issueSSOTokenRequest struct {
	Software string `json:"software" validate:"required"`
}

// --- Admin ---

type createUserRequest struct {
	Username        string   `json:"username" validate:"required,min=2"`
	Email           string   `json:"email"    validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	Role            string   `json:"role"     validate:"required,oneof=user admin"`
	AllowedSoftware []string `json:"allowedSoftware"`
}

type updateSoftwareRequest struct {
	AllowedSoftware []string `json:"allowedSoftware" validate:"required"`
}
