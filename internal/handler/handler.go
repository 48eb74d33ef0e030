package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"blogapi/internal/service"
)

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	UserService     service.UserService
	PostService     service.PostService
	CommentService  service.CommentService
	CategoryService service.CategoryService
	AuthService     service.AuthService
	DB              HealthChecker
	Log             logrus.FieldLogger
	Validate        *validator.Validate
}

func NewHandlers(service *service.Service, db HealthChecker, log logrus.FieldLogger) *Handlers {
	return &Handlers{
		UserService:     service.User,
		PostService:     service.Post,
		CommentService:  service.Comment,
		CategoryService: service.Category,
		AuthService:     service.Auth,
		DB:              db,
		Log:             log,
		Validate:        validator.New(),
	}
}
