// internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dangerclosesec/colab/internal/auth"
	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/github"
	"github.com/dangerclosesec/colab/internal/model"
	"github.com/dangerclosesec/colab/internal/repository"
	"github.com/go-playground/validator/v10"
)

type UserService struct {
	repo           repository.UserRepositoryIface
	github         github.MetadataClient
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
	validate       *validator.Validate
}

func NewUserService(
	repo repository.UserRepositoryIface,
	githubClient github.MetadataClient,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
) *UserService {
	return &UserService{
		repo:           repo,
		github:         githubClient,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
		validate:       newValidator(),
	}
}

type RegisterInput struct {
	Username       string `form:"username" validate:"required,max=20,excludesall=/"`
	Email          string `form:"email" validate:"required,email,max=50"`
	FirstName      string `form:"first_name" validate:"required,max=30"`
	LastName       string `form:"last_name" validate:"required,max=30"`
	Password       string `form:"password" validate:"required,min=8"`
	GitHandle      string `form:"git_handle" validate:"required,max=50,excludesall=/"`
	IsOrganisation bool   `form:"is_organisation"`
}

// Register creates a user after confirming with GitHub that the public
// email of the linked account matches the one supplied. Any lookup
// failure counts as "not verified".
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.GitHandle = strings.TrimSpace(input.GitHandle)

	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	verified, err := s.github.VerifyHandleOwnership(ctx, input.GitHandle, input.Email, input.IsOrganisation)
	if err != nil {
		slog.WarnContext(ctx, "git handle verification failed", "git_handle", input.GitHandle, "error", err)
		verified = false
	}
	if !verified {
		return nil, fieldError("git_handle",
			"Your github account doesn't exist publicly or it is not owned by the email you provided.",
			domain.ErrHandleNotVerified)
	}

	hashedPassword, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Username:       input.Username,
		Email:          input.Email,
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		GitHandle:      input.GitHandle,
		Password:       hashedPassword,
		IsOrganisation: input.IsOrganisation,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if ferr := uniqueFieldError(err); ferr != err {
			return nil, ferr
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Authenticate checks a username and password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.passwordHasher.Verify(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken authenticates the user and returns a signed API token.
func (s *UserService) IssueToken(ctx context.Context, username, password string) (string, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokenManager.Generate(auth.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return token, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// GetProfile loads the user with owned projects, collaborations and
// preferences.
func (s *UserService) GetProfile(ctx context.Context, username string) (*model.User, error) {
	return s.repo.FindProfile(ctx, username)
}

type ProfileInput struct {
	Username  string `form:"username" validate:"required,max=20,excludesall=/"`
	Email     string `form:"email" validate:"required,email,max=50"`
	FirstName string `form:"first_name" validate:"required,max=30"`
	LastName  string `form:"last_name" validate:"required,max=30"`
}

// UpdateProfile edits the profile of username. Only the user themselves
// may do so.
func (s *UserService) UpdateProfile(ctx context.Context, actor, username string, input ProfileInput) (*model.User, error) {
	if actor == "" || actor != username {
		return nil, domain.ErrUnauthorized
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	user.Username = input.Username
	user.Email = input.Email
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)

	if err := s.repo.Update(ctx, user); err != nil {
		if ferr := uniqueFieldError(err); ferr != err {
			return nil, ferr
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return user, nil
}

// Delete removes the account of username along with its owned projects.
func (s *UserService) Delete(ctx context.Context, actor, username string) error {
	if actor == "" || actor != username {
		return domain.ErrUnauthorized
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	slog.InfoContext(ctx, "user deleted", "user_id", user.ID.String(), "username", user.Username)
	return nil
}
