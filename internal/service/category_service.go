package service

import (
	"context"

	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/validation"
)

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, input map[string]any) (*models.Category, error)
	Update(ctx context.Context, id int64, input map[string]any) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	validator    *validation.Validator
}

func NewCategoryService(categoryRepo repository.CategoryRepository, validator *validation.Validator) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		validator:    validator,
	}
}

func (c *categoryService) List(ctx context.Context) ([]models.Category, error) {
	return c.categoryRepo.GetAll(ctx)
}

func (c *categoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	category, err := c.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "category")
	}

	return category, nil
}

func (c *categoryService) Create(ctx context.Context, input map[string]any) (*models.Category, error) {
	record, err := c.validator.Validate(validation.CategorySchema, input, validation.Create)
	if err != nil {
		return nil, err
	}

	category := &models.Category{Name: record.String("name")}

	if err := c.categoryRepo.Create(ctx, category); err != nil {
		return nil, fromRepository(err, "category")
	}

	return category, nil
}

func (c *categoryService) Update(ctx context.Context, id int64, input map[string]any) (*models.Category, error) {
	category, err := c.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "category")
	}

	record, err := c.validator.Validate(validation.CategorySchema, input, validation.Update)
	if err != nil {
		return nil, err
	}

	if record.Has("name") {
		category.Name = record.String("name")
	}

	if err := c.categoryRepo.Update(ctx, category); err != nil {
		return nil, fromRepository(err, "category")
	}

	return category, nil
}

// Delete leaves posts of the category in place with a null category_id.
func (c *categoryService) Delete(ctx context.Context, id int64) error {
	if err := c.categoryRepo.Delete(ctx, id); err != nil {
		return fromRepository(err, "category")
	}

	return nil
}
