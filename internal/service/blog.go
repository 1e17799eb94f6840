package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/scribbo/scribbo/internal/domain"
)

// BlogService handles blog CRUD. Mutations are gated on the caller's
// identity matching the blog's stored author id.
type BlogService struct {
	blogs    domain.BlogRepository
	validate *validator.Validate
}

// NewBlogService creates a new BlogService.
func NewBlogService(blogs domain.BlogRepository) *BlogService {
	return &BlogService{
		blogs:    blogs,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type blogInput struct {
	Title   string `validate:"required,max=200"`
	Content string `validate:"required"`
}

// Create stores a new blog. The author snapshot is taken from the caller's
// identity and never re-validated afterwards; title and content are stored
// verbatim.
func (s *BlogService) Create(ctx context.Context, title, content string, ident domain.Identity) (*domain.Blog, error) {
	if err := s.validateInput(title, content); err != nil {
		return nil, err
	}

	blog := &domain.Blog{
		Title:   title,
		Content: content,
		Author:  domain.Author{ID: ident.UserID, Email: ident.Email},
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return blog, nil
}

// GetByID returns a blog by ID.
func (s *BlogService) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	return s.blogs.GetByID(ctx, id)
}

// List returns one page of blogs in insertion order, restricted to a single
// author when authorID is non-empty. page is 1-indexed; page and limit below
// 1 fail with domain.ErrInvalidInput rather than being clamped. A page past
// the end returns an empty slice alongside the true total.
func (s *BlogService) List(ctx context.Context, page, limit int, authorID string) (*domain.BlogPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1", domain.ErrInvalidInput)
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be at least 1", domain.ErrInvalidInput)
	}

	total, err := s.blogs.Count(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("count blogs: %w", err)
	}

	blogs, err := s.blogs.List(ctx, (page-1)*limit, limit, authorID)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	return &domain.BlogPage{
		Blogs:       blogs,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
	}, nil
}

// Update replaces title and content after the ownership check. Author and
// CreatedAt are immutable.
func (s *BlogService) Update(ctx context.Context, id, title, content, callerID string) (*domain.Blog, error) {
	existing, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Author.ID != callerID {
		return nil, domain.ErrForbidden
	}

	if err := s.validateInput(title, content); err != nil {
		return nil, err
	}

	existing.Title = title
	existing.Content = content
	if err := s.blogs.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return existing, nil
}

// Delete permanently removes a blog after the ownership check.
func (s *BlogService) Delete(ctx context.Context, id, callerID string) error {
	existing, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Author.ID != callerID {
		return domain.ErrForbidden
	}

	return s.blogs.Delete(ctx, id)
}

func (s *BlogService) validateInput(title, content string) error {
	err := s.validate.Struct(blogInput{Title: title, Content: content})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch {
		case fe.Field() == "Title" && fe.Tag() == "max":
			return fmt.Errorf("%w: title must be at most 200 characters", domain.ErrInvalidInput)
		case fe.Field() == "Title":
			return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
		default:
			return fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
		}
	}
	return fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
}
