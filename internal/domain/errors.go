// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrGitHandleTaken     = errors.New("git handle already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrHandleNotVerified  = errors.New("git handle is not public or not owned by the email provided")

	// Project-related errors
	ErrProjectNotFound       = errors.New("project not found")
	ErrRepositoryUnavailable = errors.New("repository is private or does not exist")
	ErrRepositoryNotOwned    = errors.New("repository is not owned by the user")

	// Catalog errors
	ErrSectorNotFound = errors.New("sector not found")
	ErrStackNotFound  = errors.New("stack not found")
)
