package handler

import (
	"time"

	"github.com/scribbo/scribbo/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash is
// deliberately absent: it never leaves the server.
type UserDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// AuthorDTO is the JSON representation of a blog's author snapshot.
type AuthorDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// BlogDTO is the JSON representation of a blog.
type BlogDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    AuthorDTO `json:"author"`
	CreatedAt string    `json:"createdAt"`
}

func toBlogDTO(b *domain.Blog) BlogDTO {
	return BlogDTO{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Author:    AuthorDTO{ID: b.Author.ID, Email: b.Author.Email},
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

func toBlogDTOs(blogs []domain.Blog) []BlogDTO {
	dtos := make([]BlogDTO, len(blogs))
	for i := range blogs {
		dtos[i] = toBlogDTO(&blogs[i])
	}
	return dtos
}

// BlogPageDTO is the JSON representation of one page of a blog listing.
type BlogPageDTO struct {
	Blogs       []BlogDTO `json:"blogs"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
}

func toBlogPageDTO(p *domain.BlogPage) BlogPageDTO {
	return BlogPageDTO{
		Blogs:       toBlogDTOs(p.Blogs),
		TotalPages:  p.TotalPages,
		CurrentPage: p.CurrentPage,
	}
}
