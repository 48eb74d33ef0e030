package service

import (
	"context"

	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/validation"
)

type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, input map[string]any) (*models.Post, error)
	Update(ctx context.Context, id int64, input map[string]any) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

type postService struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	validator    *validation.Validator
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	validator *validation.Validator,
) PostService {
	return &postService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		validator:    validator,
	}
}

func (p *postService) List(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.GetAll(ctx)
}

func (p *postService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "post")
	}

	return post, nil
}

func (p *postService) Create(ctx context.Context, input map[string]any) (*models.Post, error) {
	record, err := p.validator.Validate(validation.PostSchema, input, validation.Create)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:      record.String("title"),
		Content:    record.String("content"),
		UserID:     record.Int64("user_id"),
		CategoryID: record.OptionalInt64("category_id"),
	}

	err = checkReferences(ctx,
		userReference(p.userRepo, &post.UserID),
		categoryReference(p.categoryRepo, post.CategoryID),
	)
	if err != nil {
		return nil, err
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, fromRepository(err, "post")
	}

	return post, nil
}

// Update merges the present fields into the stored post. Any authenticated
// caller may update any post.
func (p *postService) Update(ctx context.Context, id int64, input map[string]any) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "post")
	}

	record, err := p.validator.Validate(validation.PostSchema, input, validation.Update)
	if err != nil {
		return nil, err
	}

	var refs []reference

	if record.Has("title") {
		post.Title = record.String("title")
	}
	if record.Has("content") {
		post.Content = record.String("content")
	}
	if record.Has("user_id") {
		post.UserID = record.Int64("user_id")
		refs = append(refs, userReference(p.userRepo, &post.UserID))
	}
	if record.Has("category_id") {
		post.CategoryID = record.OptionalInt64("category_id")
		refs = append(refs, categoryReference(p.categoryRepo, post.CategoryID))
	}

	if err := checkReferences(ctx, refs...); err != nil {
		return nil, err
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, fromRepository(err, "post")
	}

	return post, nil
}

func (p *postService) Delete(ctx context.Context, id int64) error {
	if err := p.postRepo.Delete(ctx, id); err != nil {
		return fromRepository(err, "post")
	}

	return nil
}
