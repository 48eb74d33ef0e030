package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/auth"
	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/validation"
)

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, input map[string]any) (*models.User, error)
	Update(ctx context.Context, id int64, input map[string]any) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	userRepo  repository.UserRepository
	validator *validation.Validator
	hasher    auth.PasswordHasher
}

func NewUserService(userRepo repository.UserRepository, validator *validation.Validator, hasher auth.PasswordHasher) UserService {
	return &userService{
		userRepo:  userRepo,
		validator: validator,
		hasher:    hasher,
	}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "user")
	}

	return user, nil
}

// Create rejects a taken email before anything else, then validates input and
// stores the hashed password.
func (s *userService) Create(ctx context.Context, input map[string]any) (*models.User, error) {
	if email, ok := input["email"].(string); ok {
		if err := s.ensureEmailFree(ctx, email, 0); err != nil {
			return nil, err
		}
	}

	record, err := s.validator.Validate(validation.UserSchema, input, validation.Create)
	if err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(record.String("password"))
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     record.String("username"),
		Email:        record.String("email"),
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fromRepository(err, "user")
	}

	return user, nil
}

func (s *userService) Update(ctx context.Context, id int64, input map[string]any) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "user")
	}

	record, err := s.validator.Validate(validation.UserSchema, input, validation.Update)
	if err != nil {
		return nil, err
	}

	if record.Has("username") {
		user.Username = record.String("username")
	}

	if record.Has("email") && record.String("email") != user.Email {
		if err := s.ensureEmailFree(ctx, record.String("email"), user.ID); err != nil {
			return nil, err
		}
		user.Email = record.String("email")
	}

	if record.Has("password") {
		hash, err := s.hashPassword(record.String("password"))
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fromRepository(err, "user")
	}

	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fromRepository(err, "user")
	}

	return nil
}

// ensureEmailFree fails with ErrDuplicateEmail when email belongs to a user other than self.
func (s *userService) ensureEmailFree(ctx context.Context, email string, self int64) error {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check email: %w", err)
	case existing.ID != self:
		return ErrDuplicateEmail
	}

	return nil
}

func (s *userService) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", validation.Errors{{Field: "password", Message: "must be at most 72 bytes"}}
	}

	return hash, err
}
