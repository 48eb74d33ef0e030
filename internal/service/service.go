package service

import (
	"github.com/sirupsen/logrus"

	"blogapi/internal/auth"
	"blogapi/internal/config"
	"blogapi/internal/repository"
	"blogapi/internal/validation"
)

type Service struct {
	User     UserService
	Post     PostService
	Comment  CommentService
	Category CategoryService
	Auth     AuthService
}

func NewService(rep *repository.Repository, cfg *config.Config, log logrus.FieldLogger) *Service {
	validator := validation.New()
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.JWTSecretKey, cfg.AccessTokenDuration, cfg.RefreshTokenDuration)

	users := NewUserService(rep.User, validator, hasher)

	return &Service{
		User:     users,
		Post:     NewPostService(rep.Post, rep.User, rep.Category, validator),
		Comment:  NewCommentService(rep.Comment, rep.User, rep.Post, validator),
		Category: NewCategoryService(rep.Category, validator),
		Auth:     NewAuthService(users, rep.User, hasher, tokens, log),
	}
}
