package session

import (
	"context"
	"path/filepath"
	"testing"
)

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStorage(path)

	ctx := context.Background()

	if _, found, err := s.Get(ctx, "session:user"); err != nil || found {
		t.Fatalf("fresh file storage: found=%v err=%v", found, err)
	}

	if err := s.Set(ctx, "session:user", `{"v":1}`); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	v, found, err := s.Get(ctx, "session:user")

	if err != nil || !found || v != `{"v":1}` {
		t.Fatalf("get after set: v=%q found=%v err=%v", v, found, err)
	}

	// set overwrites
	if err := s.Set(ctx, "session:user", `{"v":2}`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	if v, _, _ := s.Get(ctx, "session:user"); v != `{"v":2}` {
		t.Fatalf("got %q after overwrite", v)
	}

	if err := s.Delete(ctx, "session:user"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, found, _ := s.Get(ctx, "session:user"); found {
		t.Fatal("value should be gone after delete")
	}

	// deleting an absent value is not an error
	if err := s.Delete(ctx, "session:user"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
