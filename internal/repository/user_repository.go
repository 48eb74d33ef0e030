package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"blogapi/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create stores a user whose PasswordHash is already set and fills ID and CreatedAt.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, email, password, created_at) VALUES (?, ?, ?, ?) RETURNING id`

	user.CreatedAt = now()

	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query),
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return classify(err, "create user")
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User

	query := `SELECT id, username, email, password, created_at FROM users WHERE id = ?`

	if err := r.db.GetContext(ctx, &user, r.db.Rebind(query), id); err != nil {
		return nil, classify(err, "get user")
	}

	return &user, nil
}

// GetByEmail matches the exact string, case included.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT id, username, email, password, created_at FROM users WHERE email = ?`

	if err := r.db.GetContext(ctx, &user, r.db.Rebind(query), email); err != nil {
		return nil, classify(err, "get user by email")
	}

	return &user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	query := `SELECT id, username, email, password, created_at FROM users ORDER BY id`

	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, classify(err, "list users")
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET username = :username, email = :email, password = :password WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return classify(err, "update user")
	}

	return checkAffected(result, "update user")
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return classify(err, "delete user")
	}

	return checkAffected(result, "delete user")
}
