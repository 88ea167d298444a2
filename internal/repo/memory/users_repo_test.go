package memory

import (
	"context"
	"testing"

	"github.com/eventlyhq/evently/internal/domain/user"
)

func TestUsersGetByEmail(t *testing.T) {
	repo := NewUsersRepo(SeedUsers()...)

	u, err := repo.GetByEmail(context.Background(), "admin@example.com")

	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if u.ID != "1" || u.Role != user.RoleAdmin {
		t.Fatalf("unexpected user: %+v", u)
	}

	// lookups are case-sensitive
	if _, err := repo.GetByEmail(context.Background(), "Admin@example.com"); err != user.ErrNotFound {
		t.Fatalf("got err %v, want ErrNotFound", err)
	}
}

func TestUsersCreate(t *testing.T) {
	repo := NewUsersRepo(SeedUsers()...)

	u, err := repo.Create(context.Background(), "Ada", "ada@example.com", "x123456", user.RoleUser)

	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if u.ID != "3" {
		t.Fatalf("got id %q, want count+1 = %q", u.ID, "3")
	}

	if _, err := repo.Create(context.Background(), "A", "ada@example.com", "y", user.RoleUser); err != user.ErrEmailTaken {
		t.Fatalf("got err %v, want ErrEmailTaken", err)
	}

	// a different casing of a taken address is a different address
	u2, err := repo.Create(context.Background(), "A", "ADA@example.com", "y123456", user.RoleUser)

	if err != nil {
		t.Fatalf("create with different casing failed: %v", err)
	}

	if u2.ID != "4" {
		t.Fatalf("got id %q, want %q", u2.ID, "4")
	}

	n, _ := repo.Count(context.Background())

	if n != 4 {
		t.Fatalf("got count %d, want 4", n)
	}
}
