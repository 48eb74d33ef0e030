package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"blogapi/internal/models"
)

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `INSERT INTO categories (name) VALUES (?) RETURNING id`

	if err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), category.Name).Scan(&category.ID); err != nil {
		return classify(err, "create category")
	}

	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category

	query := `SELECT id, name FROM categories WHERE id = ?`

	if err := r.db.GetContext(ctx, &category, r.db.Rebind(query), id); err != nil {
		return nil, classify(err, "get category")
	}

	return &category, nil
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}

	query := `SELECT id, name FROM categories ORDER BY id`

	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, classify(err, "list categories")
	}

	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `UPDATE categories SET name = :name WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, category)
	if err != nil {
		return classify(err, "update category")
	}

	return checkAffected(result, "update category")
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return classify(err, "delete category")
	}

	return checkAffected(result, "delete category")
}
