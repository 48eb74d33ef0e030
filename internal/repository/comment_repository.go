package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"blogapi/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (content, date_commented, user_id, post_id) VALUES (?, ?, ?, ?) RETURNING id`

	comment.DateCommented = now()

	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query),
		comment.Content,
		comment.DateCommented,
		comment.UserID,
		comment.PostID,
	).Scan(&comment.ID)
	if err != nil {
		return classify(err, "create comment")
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment

	query := `SELECT id, content, date_commented, user_id, post_id FROM comments WHERE id = ?`

	if err := r.db.GetContext(ctx, &comment, r.db.Rebind(query), id); err != nil {
		return nil, classify(err, "get comment")
	}

	return &comment, nil
}

func (r *commentRepository) GetAll(ctx context.Context) ([]models.Comment, error) {
	comments := []models.Comment{}

	query := `SELECT id, content, date_commented, user_id, post_id FROM comments ORDER BY id`

	if err := r.db.SelectContext(ctx, &comments, query); err != nil {
		return nil, classify(err, "list comments")
	}

	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := `UPDATE comments SET content = :content, user_id = :user_id, post_id = :post_id WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return classify(err, "update comment")
	}

	return checkAffected(result, "update comment")
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM comments WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return classify(err, "delete comment")
	}

	return checkAffected(result, "delete comment")
}
