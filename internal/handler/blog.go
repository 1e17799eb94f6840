package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/scribbo/scribbo/internal/domain"
	"github.com/scribbo/scribbo/internal/service"
)

// BlogHandler handles blog-related HTTP requests.
type BlogHandler struct {
	blogs *service.BlogService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blogs *service.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

// pageParams reads page and limit query parameters, applying the defaults
// page=1 and limit=10 when absent. Non-numeric values are invalid; range
// checks happen in the service.
func pageParams(r *http.Request) (int, int, error) {
	page, limit := 1, 10
	if v := r.URL.Query().Get("page"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New("page must be an integer")
		}
		page = parsed
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New("limit must be an integer")
		}
		limit = parsed
	}
	return page, limit, nil
}

// HandleList returns a page of blogs, optionally filtered by author.
// GET /blogs?page=1&limit=10&userId=...
// Response: {"blogs":[...],"totalPages":N,"currentPage":N}
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.blogs.List(r.Context(), page, limit, r.URL.Query().Get("userId"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("list blogs", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toBlogPageDTO(result))
}

// HandleListMine returns a page of the caller's own blogs.
// GET /blogs/myblogs?page=1&limit=10 (bearer token required)
func (h *BlogHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	page, limit, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.blogs.List(r.Context(), page, limit, ident.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("list my blogs", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toBlogPageDTO(result))
}

// HandleGet returns a single blog.
// GET /blogs/{id}
func (h *BlogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Blog not found.")
			return
		}
		slog.Error("get blog", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toBlogDTO(blog))
}

// HandleCreate creates a blog authored by the caller.
// POST /blogs (bearer token required)
// Request:  {"title":"...","content":"..."}
// Response: 201 with the created blog.
func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	blog, err := h.blogs.Create(r.Context(), req.Title, req.Content, ident)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("create blog", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, toBlogDTO(blog))
}

// HandleUpdate replaces a blog's title and content.
// PUT /blogs/{id} (bearer token required; author only)
func (h *BlogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	blog, err := h.blogs.Update(r.Context(), r.PathValue("id"), req.Title, req.Content, ident.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Blog not found.")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "Not authorized to update this blog.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("update blog", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		}
		return
	}

	writeJSON(w, http.StatusOK, toBlogDTO(blog))
}

// HandleDelete permanently removes a blog.
// DELETE /blogs/{id} (bearer token required; author only)
// Response: 204 No Content
func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	if err := h.blogs.Delete(r.Context(), r.PathValue("id"), ident.UserID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Blog not found.")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "Not authorized to delete this blog.")
		default:
			slog.Error("delete blog", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
