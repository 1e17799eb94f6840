package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scribbo/scribbo/internal/handler"
)

type testClient struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
}

func newTestServer(t *testing.T) *testClient {
	t.Helper()
	auth, blogs := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, blogs)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &testClient{t: t, srv: srv, client: srv.Client()}
}

// do sends a JSON request, optionally with a bearer token, and decodes the
// response body into out when out is non-nil.
func (c *testClient) do(method, path, token string, body, out any) *http.Response {
	c.t.Helper()

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal request: %v", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.srv.URL+path, reqBody)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp
}

func (c *testClient) register(name, email, password string) *http.Response {
	return c.do(http.MethodPost, "/auth/register", "",
		map[string]string{"name": name, "email": email, "password": password}, nil)
}

func (c *testClient) login(email, password string) string {
	c.t.Helper()
	var body struct {
		Token string `json:"token"`
	}
	resp := c.do(http.MethodPost, "/auth/login", "",
		map[string]string{"email": email, "password": password}, &body)
	if resp.StatusCode != http.StatusOK {
		c.t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	if body.Token == "" {
		c.t.Fatal("login: expected non-empty token")
	}
	return body.Token
}

func TestIntegration_RegisterLoginCrud(t *testing.T) {
	c := newTestServer(t)

	// Register.
	var registered handler.UserDTO
	resp := c.do(http.MethodPost, "/auth/register", "",
		map[string]string{"name": "Alice", "email": "alice@example.com", "password": "password123"},
		&registered)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	if registered.ID == "" || registered.Email != "alice@example.com" {
		t.Fatalf("unexpected register response: %+v", registered)
	}

	// The password hash must never appear in the response.
	raw := c.do(http.MethodPost, "/auth/register", "",
		map[string]string{"name": "Bob", "email": "bob@example.com", "password": "password123"}, nil)
	if raw.StatusCode != http.StatusCreated {
		t.Fatalf("register bob: expected 201, got %d", raw.StatusCode)
	}

	// Duplicate registration fails.
	resp = c.register("Alice Again", "alice@example.com", "password456")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", resp.StatusCode)
	}

	// Login.
	token := c.login("alice@example.com", "password123")

	// Create a blog.
	var created handler.BlogDTO
	resp = c.do(http.MethodPost, "/blogs", token,
		map[string]string{"title": "Hello World", "content": "My first post"}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create blog: expected 201, got %d", resp.StatusCode)
	}
	if created.Author.ID != registered.ID || created.Author.Email != "alice@example.com" {
		t.Fatalf("author snapshot mismatch: %+v", created.Author)
	}

	// Read it back without auth.
	var fetched handler.BlogDTO
	resp = c.do(http.MethodGet, "/blogs/"+created.ID, "", nil, &fetched)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get blog: expected 200, got %d", resp.StatusCode)
	}
	if fetched.Title != "Hello World" {
		t.Fatalf("expected title 'Hello World', got %q", fetched.Title)
	}

	// Update it.
	var updated handler.BlogDTO
	resp = c.do(http.MethodPut, "/blogs/"+created.ID, token,
		map[string]string{"title": "Hello Again", "content": "Edited"}, &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update blog: expected 200, got %d", resp.StatusCode)
	}
	if updated.Title != "Hello Again" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Fatalf("createdAt changed on update: %s vs %s", updated.CreatedAt, created.CreatedAt)
	}

	// Delete it.
	resp = c.do(http.MethodDelete, "/blogs/"+created.ID, token, nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete blog: expected 204, got %d", resp.StatusCode)
	}

	// Gone now.
	resp = c.do(http.MethodGet, "/blogs/"+created.ID, "", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted blog: expected 404, got %d", resp.StatusCode)
	}
}

func TestIntegration_OwnershipEnforced(t *testing.T) {
	c := newTestServer(t)

	c.register("Alice", "alice@example.com", "password123")
	c.register("Mallory", "mallory@example.com", "password123")
	aliceToken := c.login("alice@example.com", "password123")
	malloryToken := c.login("mallory@example.com", "password123")

	var created handler.BlogDTO
	resp := c.do(http.MethodPost, "/blogs", aliceToken,
		map[string]string{"title": "Alice's Post", "content": "hers alone"}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}

	// Mallory cannot update or delete Alice's post.
	resp = c.do(http.MethodPut, "/blogs/"+created.ID, malloryToken,
		map[string]string{"title": "Stolen", "content": "mine now"}, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("update as non-owner: expected 403, got %d", resp.StatusCode)
	}

	resp = c.do(http.MethodDelete, "/blogs/"+created.ID, malloryToken, nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("delete as non-owner: expected 403, got %d", resp.StatusCode)
	}

	// The post is untouched.
	var fetched handler.BlogDTO
	c.do(http.MethodGet, "/blogs/"+created.ID, "", nil, &fetched)
	if fetched.Title != "Alice's Post" {
		t.Fatalf("post was modified: %q", fetched.Title)
	}
}

func TestIntegration_ProtectedRoutesRequireToken(t *testing.T) {
	c := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/blogs"},
		{http.MethodPut, "/blogs/some-id"},
		{http.MethodDelete, "/blogs/some-id"},
		{http.MethodGet, "/blogs/myblogs"},
	}

	for _, p := range paths {
		resp := c.do(p.method, p.path, "", nil, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: expected 401, got %d", p.method, p.path, resp.StatusCode)
		}
	}
}

func TestIntegration_LoginFailures(t *testing.T) {
	c := newTestServer(t)

	c.register("Alice", "alice@example.com", "password123")

	var wrongPw, unknown map[string]string
	resp := c.do(http.MethodPost, "/auth/login", "",
		map[string]string{"email": "alice@example.com", "password": "wrongpassword"}, &wrongPw)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", resp.StatusCode)
	}

	resp = c.do(http.MethodPost, "/auth/login", "",
		map[string]string{"email": "nobody@example.com", "password": "password123"}, &unknown)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown email: expected 401, got %d", resp.StatusCode)
	}

	// Identical error bodies: the response must not reveal which half failed.
	if wrongPw["error"] != unknown["error"] {
		t.Fatalf("login error bodies differ: %q vs %q", wrongPw["error"], unknown["error"])
	}
}

func TestIntegration_ListingAndMyBlogs(t *testing.T) {
	c := newTestServer(t)

	c.register("Alice", "alice@example.com", "password123")
	c.register("Bob", "bob@example.com", "password123")
	aliceToken := c.login("alice@example.com", "password123")
	bobToken := c.login("bob@example.com", "password123")

	for i := 1; i <= 12; i++ {
		resp := c.do(http.MethodPost, "/blogs", aliceToken,
			map[string]string{"title": fmt.Sprintf("Alice %d", i), "content": "c"}, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create alice %d: expected 201, got %d", i, resp.StatusCode)
		}
	}
	for i := 1; i <= 3; i++ {
		resp := c.do(http.MethodPost, "/blogs", bobToken,
			map[string]string{"title": fmt.Sprintf("Bob %d", i), "content": "c"}, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create bob %d: expected 201, got %d", i, resp.StatusCode)
		}
	}

	// Default paging: page=1, limit=10 over all 15 posts.
	var page1 handler.BlogPageDTO
	resp := c.do(http.MethodGet, "/blogs", "", nil, &page1)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	if len(page1.Blogs) != 10 || page1.TotalPages != 2 || page1.CurrentPage != 1 {
		t.Fatalf("unexpected page 1: %d blogs, totalPages=%d, currentPage=%d",
			len(page1.Blogs), page1.TotalPages, page1.CurrentPage)
	}

	var page2 handler.BlogPageDTO
	c.do(http.MethodGet, "/blogs?page=2&limit=10", "", nil, &page2)
	if len(page2.Blogs) != 5 || page2.CurrentPage != 2 {
		t.Fatalf("unexpected page 2: %d blogs, currentPage=%d", len(page2.Blogs), page2.CurrentPage)
	}

	// myblogs is scoped to the caller.
	var mine handler.BlogPageDTO
	resp = c.do(http.MethodGet, "/blogs/myblogs", bobToken, nil, &mine)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("myblogs: expected 200, got %d", resp.StatusCode)
	}
	if len(mine.Blogs) != 3 || mine.TotalPages != 1 {
		t.Fatalf("unexpected myblogs: %d blogs, totalPages=%d", len(mine.Blogs), mine.TotalPages)
	}

	// userId filter on the public listing.
	var filtered handler.BlogPageDTO
	c.do(http.MethodGet, "/blogs?userId="+mine.Blogs[0].Author.ID, "", nil, &filtered)
	if len(filtered.Blogs) != 3 {
		t.Fatalf("expected 3 filtered blogs, got %d", len(filtered.Blogs))
	}

	// Invalid paging parameters are rejected.
	resp = c.do(http.MethodGet, "/blogs?page=0", "", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("page=0: expected 400, got %d", resp.StatusCode)
	}
}
