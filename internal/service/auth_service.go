package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"blogapi/internal/auth"
	"blogapi/internal/models"
	"blogapi/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, input map[string]any) (*models.User, error)
	Login(ctx context.Context, email, password string) (auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Authenticate(accessToken string) (*auth.Claims, error)
}

type authService struct {
	users     UserService
	userRepo  repository.UserRepository
	hasher    auth.PasswordHasher
	tokens    *auth.TokenIssuer
	log       logrus.FieldLogger
	dummyHash string
}

func NewAuthService(
	users UserService,
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
	tokens *auth.TokenIssuer,
	log logrus.FieldLogger,
) AuthService {
	// Unknown emails are verified against this hash so both login failures cost the same.
	dummyHash, err := hasher.Hash("not-a-real-password!")
	if err != nil {
		log.WithError(err).Warn("could not prepare dummy password hash")
	}

	return &authService{
		users:     users,
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		log:       log,
		dummyHash: dummyHash,
	}
}

func (s *authService) Register(ctx context.Context, input map[string]any) (*models.User, error) {
	user, err := s.users.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("user registered")

	return user, nil
}

// Login returns ErrInvalidCredentials for both an unknown email and a wrong password.
func (s *authService) Login(ctx context.Context, email, password string) (auth.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return auth.TokenPair{}, fmt.Errorf("login: %w", err)
		}

		s.hasher.Verify(password, s.dummyHash)
		s.log.WithField("email", email).Info("login failed")
		return auth.TokenPair{}, ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.WithField("email", email).Info("login failed")
		return auth.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}

	return pair, nil
}

// Refresh exchanges a refresh token of a still existing user for a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken, auth.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: user %d no longer exists", ErrUnauthorized, userID)
		}
		return "", fmt.Errorf("refresh: %w", err)
	}

	access, err := s.tokens.Issue(user.ID, user.Email, auth.AccessToken)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}

	return access, nil
}

func (s *authService) Authenticate(accessToken string) (*auth.Claims, error) {
	claims, err := s.tokens.Verify(accessToken, auth.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	return claims, nil
}
