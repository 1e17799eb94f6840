package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/scribbo/scribbo/internal/domain"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()
	ctx := context.Background()

	user := &domain.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash123",
	}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == "" {
		t.Fatal("expected user ID to be assigned")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	byID, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != "alice@example.com" || byID.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", byID)
	}

	byEmail, err := users.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("expected ID %s, got %s", user.ID, byEmail.ID)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()
	ctx := context.Background()

	first := &domain.User{Name: "First", Email: "dup@example.com", PasswordHash: "h1"}
	if err := users.Create(ctx, first); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	second := &domain.User{Name: "Second", Email: "dup@example.com", PasswordHash: "h2"}
	err := users.Create(ctx, second)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_GetMissing(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()
	ctx := context.Background()

	if _, err := users.GetByID(ctx, "no-such-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID: expected ErrNotFound, got %v", err)
	}
	if _, err := users.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByEmail: expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_EmailCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()
	ctx := context.Background()

	user := &domain.User{Name: "Case", Email: "Case@Example.com", PasswordHash: "h"}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Emails are stored and compared as given.
	if _, err := users.GetByEmail(ctx, "case@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for different casing, got %v", err)
	}
}
