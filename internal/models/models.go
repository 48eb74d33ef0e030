package models

import (
	"time"
)

// User.PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Post struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	DatePosted time.Time `json:"date_posted" db:"date_posted"`
	UserID     int64     `json:"user_id" db:"user_id"`
	CategoryID *int64    `json:"category_id" db:"category_id"`
}

type Comment struct {
	ID            int64     `json:"id" db:"id"`
	Content       string    `json:"content" db:"content"`
	DateCommented time.Time `json:"date_commented" db:"date_commented"`
	UserID        int64     `json:"user_id" db:"user_id"`
	PostID        int64     `json:"post_id" db:"post_id"`
}

type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
