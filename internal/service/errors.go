package service

import (
	"errors"
	"fmt"

	"blogapi/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	// ErrInvalidReference is returned when a row referenced at write time
	// disappeared before the insert landed.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// notFound produces "<entity> not found", matching ErrNotFound.
func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// fromRepository translates repository sentinels for the given entity.
func fromRepository(err error, entity string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound(entity)
	case errors.Is(err, repository.ErrDuplicate):
		return ErrDuplicateEmail
	case errors.Is(err, repository.ErrInvalidReference):
		return ErrInvalidReference
	default:
		return err
	}
}
