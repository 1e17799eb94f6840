package domain

import (
	"context"
	"time"
)

// Author is a snapshot of the creator's identity taken at blog creation
// time. It is never re-validated or synced with the users table.
type Author struct {
	ID    string
	Email string
}

// Blog is a single post. Title and content are the only mutable fields;
// Author and CreatedAt are fixed at creation.
type Blog struct {
	ID        string
	Title     string
	Content   string
	Author    Author
	CreatedAt time.Time
}

// BlogPage is one page of a blog listing.
type BlogPage struct {
	Blogs       []Blog
	TotalPages  int
	CurrentPage int
}

// BlogRepository defines persistence operations for blogs. List and Count
// restrict to a single author when authorID is non-empty.
type BlogRepository interface {
	Create(ctx context.Context, blog *Blog) error
	GetByID(ctx context.Context, id string) (*Blog, error)
	List(ctx context.Context, offset, limit int, authorID string) ([]Blog, error)
	Count(ctx context.Context, authorID string) (int, error)
	Update(ctx context.Context, blog *Blog) error
	Delete(ctx context.Context, id string) error
}
