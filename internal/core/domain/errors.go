package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrWorkItemNotFound = errors.New("work item not found")
var ErrWorkItemExists = errors.New("work item already exists")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrInvalidResetCode = errors.New("invalid or expired reset code")
var ErrTokenNotFound = errors.New("token not found")
