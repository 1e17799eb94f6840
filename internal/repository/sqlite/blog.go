package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scribbo/scribbo/internal/domain"
)

// BlogRepository implements domain.BlogRepository using SQLite.
type BlogRepository struct {
	db *sql.DB
}

// NewBlogRepository creates a new SQLite-backed BlogRepository.
func NewBlogRepository(db *DB) *BlogRepository {
	return &BlogRepository{db: db.SqlDB}
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blogs (id, title, content, author_id, author_email, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, blog.Title, blog.Content, blog.Author.ID, blog.Author.Email, now,
	)
	if err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}

	blog.ID = id
	blog.CreatedAt = now
	return nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	blog := &domain.Blog{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, content, author_id, author_email, created_at
		 FROM blogs WHERE id = ?`, id,
	).Scan(&blog.ID, &blog.Title, &blog.Content, &blog.Author.ID, &blog.Author.Email, &blog.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query blog by id: %w", err)
	}
	return blog, nil
}

// List returns a window of blogs in insertion order (rowid), optionally
// restricted to one author.
func (r *BlogRepository) List(ctx context.Context, offset, limit int, authorID string) ([]domain.Blog, error) {
	query := `SELECT id, title, content, author_id, author_email, created_at
		 FROM blogs ORDER BY rowid LIMIT ? OFFSET ?`
	args := []any{limit, offset}
	if authorID != "" {
		query = `SELECT id, title, content, author_id, author_email, created_at
		 FROM blogs WHERE author_id = ? ORDER BY rowid LIMIT ? OFFSET ?`
		args = []any{authorID, limit, offset}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query blogs: %w", err)
	}
	defer rows.Close()

	blogs := []domain.Blog{}
	for rows.Next() {
		var b domain.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.Author.ID, &b.Author.Email, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

func (r *BlogRepository) Count(ctx context.Context, authorID string) (int, error) {
	query := "SELECT COUNT(*) FROM blogs"
	args := []any{}
	if authorID != "" {
		query = "SELECT COUNT(*) FROM blogs WHERE author_id = ?"
		args = []any{authorID}
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count blogs: %w", err)
	}
	return count, nil
}

// Update persists new title and content. Author and created_at columns are
// never touched.
func (r *BlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE blogs SET title = ?, content = ? WHERE id = ?",
		blog.Title, blog.Content, blog.ID,
	)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM blogs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
