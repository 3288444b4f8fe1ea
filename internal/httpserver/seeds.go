// internal/httpserver/seeds.go
//
// Seed policy for composed rounds.
// Responsibilities:
//   - Hand out one seed per /round/new so every round can be replayed.
//   - Honour the debug settings (fixed seed, seed per round).
//
// Daily rounds do not use this source; their seed comes from the date.

package httpserver

import (
	"math/rand"
	"sync"

	"github.com/robalobadob/lettergrid/internal/config"
	"github.com/robalobadob/lettergrid/internal/round"
)

// seedSource hands out one seed per composed round.
//
//   - no debug seed:         fresh crypto seed every round
//   - debug seed:            seeds drawn from one generator seeded once,
//                            so a server run replays the same sequence
//   - debug seed, per round: seed+n for the n-th round
type seedSource struct {
	mu       sync.Mutex
	base     *int64
	perRound bool
	master   *rand.Rand
	n        int64
}

func newSeedSource(d config.Debug) *seedSource {
	s := &seedSource{base: d.Seed, perRound: d.SeedPerRound}
	if d.Seed != nil && !d.SeedPerRound {
		s.master = round.NewRand(*d.Seed)
	}
	return s
}

// Next returns the seed for the next round.
func (s *seedSource) Next() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.base == nil:
		return round.NewSeed()
	case s.perRound:
		seed := *s.base + s.n
		s.n++
		return seed, nil
	default:
		return s.master.Int63(), nil
	}
}
