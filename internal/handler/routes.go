package handler

import (
	"net/http"

	"github.com/scribbo/scribbo/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, blogs *service.BlogService) {
	authHandler := NewAuthHandler(auth)
	blogHandler := NewBlogHandler(blogs)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /auth/login", authHandler.HandleLogin)

	mux.HandleFunc("GET /blogs", blogHandler.HandleList)
	mux.Handle("GET /blogs/myblogs", RequireAuth(auth, http.HandlerFunc(blogHandler.HandleListMine)))
	mux.HandleFunc("GET /blogs/{id}", blogHandler.HandleGet)
	mux.Handle("POST /blogs", RequireAuth(auth, http.HandlerFunc(blogHandler.HandleCreate)))
	mux.Handle("PUT /blogs/{id}", RequireAuth(auth, http.HandlerFunc(blogHandler.HandleUpdate)))
	mux.Handle("DELETE /blogs/{id}", RequireAuth(auth, http.HandlerFunc(blogHandler.HandleDelete)))
}
