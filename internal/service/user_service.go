// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Sentinel errors that the HTTP layer maps to distinct redirect targets.
var (
	ErrEmailTaken    = models.NewConflictError("Email already registered")
	ErrUsernameTaken = models.NewConflictError("Username already registered")
	ErrWrongEmail    = models.NewUnauthorizedError("Wrong email")
	ErrWrongPassword = models.NewUnauthorizedError("Wrong password")
)

// UserService handles registration, login, and profile management.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Avatar   string
}

// RegistrationError reports every field violation of a registration attempt.
type RegistrationError struct {
	Issues []string
}

func (e *RegistrationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid registration"
	}
	return e.Issues[0]
}

// Register validates the input, hashes the password, and persists the new
// user. All field-length violations are collected and reported together;
// uniqueness is then checked for email first, then username.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if issues := validation.RegistrationIssues(in.Email, in.Username, in.Password); len(issues) > 0 {
		return nil, &RegistrationError{Issues: issues}
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := HashPassword(in.Password, bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    in.Email,
		Username: in.Username,
		Password: hashed,
		Avatar:   in.Avatar,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the matching user. A missing
// account and a bad password are reported distinctly, matching the form's
// error messages.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrWrongEmail
	}
	if err := CheckPassword(user.Password, password); err != nil {
		return nil, ErrWrongPassword
	}
	return user, nil
}

// GetByUsername returns the user with the given username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

// UpdateProfileInput carries the profile edit form fields.
type UpdateProfileInput struct {
	ActorID  uint
	UserID   uint
	Username string
	Bio      string
	Avatar   string // empty keeps the current avatar
}

// UpdateProfile lets a user edit their own username, bio, and avatar.
// Editing another user's profile is forbidden.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if in.ActorID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own profile")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", in.UserID)
	}

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateBio(in.Bio); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if in.Username != user.Username {
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrUsernameTaken
		}
	}

	user.Username = in.Username
	user.Bio = in.Bio
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
