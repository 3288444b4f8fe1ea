package httpserver

import (
	"testing"

	"github.com/robalobadob/lettergrid/internal/config"
)

func TestSeedSourcePerRound(t *testing.T) {
	base := int64(100)
	s := newSeedSource(config.Debug{Seed: &base, SeedPerRound: true})
	for i := int64(0); i < 3; i++ {
		got, err := s.Next()
		if err != nil {
			t.Fatal(err)
		}
		if got != base+i {
			t.Fatalf("seed %d = %d, want %d", i, got, base+i)
		}
	}
}

func TestSeedSourceReplaysSequence(t *testing.T) {
	base := int64(7)
	a := newSeedSource(config.Debug{Seed: &base})
	b := newSeedSource(config.Debug{Seed: &base})
	for i := 0; i < 5; i++ {
		x, _ := a.Next()
		y, _ := b.Next()
		if x != y {
			t.Fatalf("seed %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestSeedSourceRandom(t *testing.T) {
	s := newSeedSource(config.Debug{})
	x, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	y, _ := s.Next()
	if x == y {
		t.Fatalf("two crypto seeds collided: %d", x)
	}
}
