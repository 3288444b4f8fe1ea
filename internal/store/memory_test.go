package store

import (
	"context"
	"errors"
	"testing"

	"github.com/robalobadob/lettergrid/internal/game"
	"github.com/robalobadob/lettergrid/internal/round"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}

	g := game.New("abc", 1, round.State{Letter: "A", Selected: []string{"ant.png"}, Correct: map[string]struct{}{"ant.png": {}}}, 1)
	if err := s.Save(ctx, g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Get(ctx, "abc")
	if err != nil || got != g {
		t.Fatalf("Get = %v, %v", got, err)
	}

	if err := s.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete err = %v", err)
	}
}
