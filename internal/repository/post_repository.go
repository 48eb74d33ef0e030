package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"blogapi/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `INSERT INTO posts (title, content, date_posted, user_id, category_id) VALUES (?, ?, ?, ?, ?) RETURNING id`

	post.DatePosted = now()

	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query),
		post.Title,
		post.Content,
		post.DatePosted,
		post.UserID,
		post.CategoryID,
	).Scan(&post.ID)
	if err != nil {
		return classify(err, "create post")
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post

	query := `SELECT id, title, content, date_posted, user_id, category_id FROM posts WHERE id = ?`

	if err := r.db.GetContext(ctx, &post, r.db.Rebind(query), id); err != nil {
		return nil, classify(err, "get post")
	}

	return &post, nil
}

func (r *postRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}

	query := `SELECT id, title, content, date_posted, user_id, category_id FROM posts ORDER BY id`

	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, classify(err, "list posts")
	}

	return posts, nil
}

// Update never touches date_posted.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `UPDATE posts SET title = :title, content = :content, user_id = :user_id, category_id = :category_id WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return classify(err, "update post")
	}

	return checkAffected(result, "update post")
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return classify(err, "delete post")
	}

	return checkAffected(result, "delete post")
}
