// internal/httpserver/server.go
//
// HTTP server wiring for the Letter Grid backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/pool".
//   - Round endpoints (optional auth): POST /round/new, GET /round/{id}, POST /round/tap.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /rounds/mine (see auth.go).
//   - Database persistence for round history and user stats.
//
// Notes:
//   - The server owns every active session directly (store.Store); the round
//     core never sees HTTP or the database.
//   - A tile only reaches the controller on its first tap (game.Game dedupes).
//   - Persistence after a tap is best effort: failures are logged, not returned.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/lettergrid/internal/config"
	"github.com/robalobadob/lettergrid/internal/describe"
	"github.com/robalobadob/lettergrid/internal/game"
	"github.com/robalobadob/lettergrid/internal/pool"
	"github.com/robalobadob/lettergrid/internal/round"
	"github.com/robalobadob/lettergrid/internal/store"
)

// Options carries the collaborators the server needs besides storage.
type Options struct {
	Config       config.Config
	Pool         *pool.Pool
	Descriptions *describe.Cache
}

// Server bundles router, in-memory session store, and DB handle.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	cfg   config.Config
	pool  *pool.Pool
	desc  *describe.Cache
	seeds *seedSource
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, opts Options) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		store: st,
		db:    db,
		cfg:   opts.Config,
		pool:  opts.Pool,
		desc:  opts.Descriptions,
		seeds: newSeedSource(opts.Config.Debug),
	}
	if s.desc == nil {
		s.desc = describe.NewCache(opts.Config.Paths.Descriptions)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"lettergrid","endpoints":["/health","POST /round/new","POST /round/tap","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/pool", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"source":  s.pool.Source(),
			"items":   s.pool.Len(),
			"letters": s.pool.Letters(),
		})
	})

	// Round endpoints: optional auth, guests can play
	s.r.With(s.identifyPlayer).Post("/round/new", s.handleNewRound)
	s.r.With(s.identifyPlayer).Post("/round/tap", s.handleTap)
	s.r.Get("/round/{id}", s.handleGetRound)

	// Daily challenge: optional auth, one stored result per player and day
	s.mountDaily(s.r.With(s.identifyPlayer))

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.Server.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError writes {"error": msg} with the given status.
func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// ------------------------------ ROUNDS -------------------------------------

// view snapshots g with the configured grid layout.
func (s *Server) view(g *game.Game) game.View {
	v := g.View()
	v.Columns = s.cfg.Grid.Columns
	return v
}

// compose draws a seed and builds a round from the pool.
func (s *Server) compose(seed int64) (round.State, error) {
	return round.Compose(round.NewRand(seed), s.pool.Items(), s.cfg.Constraints())
}

// composeError maps composer failures to a response. They are never retried
// silently: the operator has to add images or change the rules.
func composeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, round.ErrInsufficientPool),
		errors.Is(err, round.ErrUnsatisfiableConstraints),
		errors.Is(err, round.ErrInvalidConstraints):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "compose_failed")
	}
}

// handleNewRound composes a round, stores the session and records an owner row.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	seed, err := s.seeds.Next()
	if err != nil {
		log.Error().Err(err).Msg("seed")
		writeError(w, http.StatusInternalServerError, "seed_failed")
		return
	}
	st, err := s.compose(seed)
	if err != nil {
		log.Error().Err(err).Int64("seed", seed).Int("pool", s.pool.Len()).Msg("compose round")
		composeError(w, err)
		return
	}
	if s.cfg.Debug.LogSeed {
		log.Info().Int64("seed", seed).Str("letter", st.Letter).Msg("round seed")
	}

	g := game.New(uuid.NewString(), seed, st, s.cfg.Rules.ExtraChances)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save round")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.insertRoundRow(w, r, g)

	_ = json.NewEncoder(w).Encode(s.view(g))
}

// insertRoundRow records the new round for history/stats (best effort).
func (s *Server) insertRoundRow(w http.ResponseWriter, r *http.Request, g *game.Game) {
	now := g.StartedAt.Format(time.RFC3339)
	_, total := g.Found()
	if me := playerFrom(r.Context()); me != nil {
		_, err := s.db.Exec(`INSERT INTO rounds (id, user_id, letter, total_to_find, seed, started_at)
		                     VALUES (?,?,?,?,?,?)`, g.ID, me.ID, g.Round.Letter, total, g.Seed, now)
		if err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert user round row")
		}
		return
	}
	anon := s.guestID(w, r)
	_, err := s.db.Exec(`INSERT INTO rounds (id, anonymous_id, letter, total_to_find, seed, started_at)
	                     VALUES (?,?,?,?,?,?)`, g.ID, anon, g.Round.Letter, total, g.Seed, now)
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert anon round row")
	}
}

// handleGetRound returns the current snapshot of a session.
func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	_ = json.NewEncoder(w).Encode(s.view(g))
}

// tapReq is the payload for POST /round/tap and /daily/tap.
type tapReq struct {
	GameID string `json:"gameId"`
	Tile   *int   `json:"tile"`
}

// tapRes flattens the session view with the per-tap details.
type tapRes struct {
	game.View
	Tile        int          `json:"tile"`
	Correct     bool         `json:"correct"`
	Repeat      bool         `json:"repeat"`
	Event       game.Outcome `json:"event"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
}

func (s *Server) decodeTap(w http.ResponseWriter, r *http.Request) (tapReq, bool) {
	var req tapReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return req, false
	}
	if req.GameID == "" || req.Tile == nil {
		writeError(w, http.StatusBadRequest, "gameId and tile are required")
		return req, false
	}
	return req, true
}

// applyTap runs the tap on g and builds the response body.
func (s *Server) applyTap(w http.ResponseWriter, g *game.Game, tile int) (game.TapResult, *tapRes, bool) {
	res, err := g.Tap(tile)
	if err != nil {
		if errors.Is(err, game.ErrInvalidTile) {
			writeError(w, http.StatusBadRequest, "invalid_tile")
		} else {
			writeError(w, http.StatusInternalServerError, "tap_failed")
		}
		return res, nil, false
	}
	return res, &tapRes{
		View:        s.view(g),
		Tile:        res.Tile,
		Correct:     res.Correct,
		Repeat:      !res.Recorded,
		Event:       res.Event,
		Name:        game.DisplayName(res.Item),
		Description: s.desc.Lookup(res.Item),
	}, true
}

// handleTap applies a tap to an in-memory round, persists progress,
// and (if the round just ended) updates user stats.
func (s *Server) handleTap(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTap(w, r)
	if !ok {
		return
	}
	g, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	res, body, ok := s.applyTap(w, g, *req.Tile)
	if !ok {
		return
	}
	if res.Recorded {
		if err := s.store.Save(r.Context(), g); err != nil {
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
		s.recordTap(r.Context(), g, res)
	}
	_ = json.NewEncoder(w).Encode(body)
}

// recordTap persists counters and, on the final event, the outcome (best effort).
func (s *Server) recordTap(ctx context.Context, g *game.Game, res game.TapResult) {
	found, _ := g.Found()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin tap tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE rounds SET taps = taps + 1, found = ? WHERE id = ?`, found, g.ID); err != nil {
		log.Warn().Err(err).Msg("update taps")
	}

	if res.Over {
		status := g.Status()
		if _, err := tx.Exec(`UPDATE rounds SET status = ?, finished_at = ? WHERE id = ?`,
			status, time.Now().UTC().Format(time.RFC3339), g.ID); err != nil {
			log.Warn().Err(err).Msg("finish round")
		}
		if me := playerFrom(ctx); me != nil {
			if err := recordResult(tx, me.ID, res.Outcome == game.OutcomeWin); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("record result")
			}
		}
		log.Info().Str("gameId", g.ID).Str("outcome", status).Int("found", found).Msg("round finished")
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit tap tx")
	}
}
