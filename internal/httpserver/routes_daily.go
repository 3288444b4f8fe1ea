// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's round (creates or reuses session)
//   - POST /daily/tap         → tap a tile in today's round
//   - GET  /daily/leaderboard → top 20 wins for today (or a given date)
//
// Every player gets the same round for a date: its seed is HMAC(salt, date).
// Each player can finish it once per day (enforced by DB + in-memory session).

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/lettergrid/internal/daily"
	"github.com/robalobadob/lettergrid/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	now      func() time.Time
	sessions map[string]*game.Game // today's sessions keyed by userID|date
	mu       sync.Mutex            // guards sessions
}

func newDailyServer(s *Server) *dailyServer {
	return &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.Daily.Salt,
		now:      time.Now,
		sessions: make(map[string]*game.Game),
	}
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := newDailyServer(s)
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/tap", dd.handleTap)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key and seed.
func (d *dailyServer) today() (string, int64) {
	date := daily.DateKey(d.now())
	return date, daily.SeedForKey(date, d.salt)
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise an anonymous ID via Server.guestID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) string {
	if me := playerFrom(r.Context()); me != nil {
		return me.ID
	}
	return d.srv.guestID(w, r)
}

// newRes is returned by /daily/new.
type newRes struct {
	*game.View
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

// handleNew creates or reuses today's session.
//   - If the player already has a DB row for today → Played=true, no round.
//   - Otherwise create/reuse an in-memory session. Sessions from earlier
//     dates are dropped first.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userIDWithAnon(w, r)
	date, seed := d.today()

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err != nil {
		log.Warn().Err(err).Msg("daily already played")
	} else if played {
		_ = json.NewEncoder(w).Encode(newRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pruneLocked(date)
	if g, ok := d.sessions[key]; ok {
		v := d.srv.view(g)
		_ = json.NewEncoder(w).Encode(newRes{View: &v, Date: date})
		return
	}

	st, err := d.srv.compose(seed)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("compose daily round")
		composeError(w, err)
		return
	}
	g := game.New(uuid.NewString(), seed, st, d.srv.cfg.Rules.ExtraChances)
	d.sessions[key] = g

	v := d.srv.view(g)
	_ = json.NewEncoder(w).Encode(newRes{View: &v, Date: date})
}

// pruneLocked drops sessions from dates other than date. Callers hold d.mu.
func (d *dailyServer) pruneLocked(date string) {
	for key := range d.sessions {
		if !strings.HasSuffix(key, "|"+date) {
			delete(d.sessions, key)
		}
	}
}

// handleTap applies a tap to today's session; the finished round is
// stored once per player and date.
func (d *dailyServer) handleTap(w http.ResponseWriter, r *http.Request) {
	uid := d.userIDWithAnon(w, r)
	req, ok := d.srv.decodeTap(w, r)
	if !ok {
		return
	}
	date, _ := d.today()

	key := uid + "|" + date
	d.mu.Lock()
	g, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || g.ID != req.GameID {
		writeError(w, http.StatusConflict, "no session")
		return
	}

	res, body, ok := d.srv.applyTap(w, g, *req.Tile)
	if !ok {
		return
	}
	if res.Recorded && res.Over {
		sum := g.Summary()
		err := d.store.InsertResult(r.Context(), daily.Result{
			UserID:    uid,
			Date:      date,
			Seed:      g.Seed,
			Outcome:   string(sum.Outcome),
			Found:     sum.Found,
			Taps:      sum.Taps,
			ElapsedMs: int(sum.Elapsed.Milliseconds()),
		})
		if err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}
	_ = json.NewEncoder(w).Encode(body)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.today()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
