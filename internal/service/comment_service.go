package service

import (
	"context"

	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/validation"
)

type CommentService interface {
	List(ctx context.Context) ([]models.Comment, error)
	Get(ctx context.Context, id int64) (*models.Comment, error)
	Create(ctx context.Context, input map[string]any) (*models.Comment, error)
	Update(ctx context.Context, id int64, input map[string]any) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	validator   *validation.Validator
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	validator *validation.Validator,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		postRepo:    postRepo,
		validator:   validator,
	}
}

func (c *commentService) List(ctx context.Context) ([]models.Comment, error) {
	return c.commentRepo.GetAll(ctx)
}

func (c *commentService) Get(ctx context.Context, id int64) (*models.Comment, error) {
	comment, err := c.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "comment")
	}

	return comment, nil
}

func (c *commentService) Create(ctx context.Context, input map[string]any) (*models.Comment, error) {
	record, err := c.validator.Validate(validation.CommentSchema, input, validation.Create)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: record.String("content"),
		UserID:  record.Int64("user_id"),
		PostID:  record.Int64("post_id"),
	}

	err = checkReferences(ctx,
		userReference(c.userRepo, &comment.UserID),
		postReference(c.postRepo, &comment.PostID),
	)
	if err != nil {
		return nil, err
	}

	if err := c.commentRepo.Create(ctx, comment); err != nil {
		return nil, fromRepository(err, "comment")
	}

	return comment, nil
}

func (c *commentService) Update(ctx context.Context, id int64, input map[string]any) (*models.Comment, error) {
	comment, err := c.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "comment")
	}

	record, err := c.validator.Validate(validation.CommentSchema, input, validation.Update)
	if err != nil {
		return nil, err
	}

	var refs []reference

	if record.Has("content") {
		comment.Content = record.String("content")
	}
	if record.Has("user_id") {
		comment.UserID = record.Int64("user_id")
		refs = append(refs, userReference(c.userRepo, &comment.UserID))
	}
	if record.Has("post_id") {
		comment.PostID = record.Int64("post_id")
		refs = append(refs, postReference(c.postRepo, &comment.PostID))
	}

	if err := checkReferences(ctx, refs...); err != nil {
		return nil, err
	}

	if err := c.commentRepo.Update(ctx, comment); err != nil {
		return nil, fromRepository(err, "comment")
	}

	return comment, nil
}

func (c *commentService) Delete(ctx context.Context, id int64) error {
	if err := c.commentRepo.Delete(ctx, id); err != nil {
		return fromRepository(err, "comment")
	}

	return nil
}
