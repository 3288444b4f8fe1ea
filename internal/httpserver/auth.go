// internal/httpserver/auth.go
//
// Player accounts for the Letter Grid backend.
//   - POST /auth/signup, /auth/login, /auth/logout
//   - GET  /auth/me, /stats/me, /rounds/mine (signed-in players only)
//
// A signed-in player carries an HS256 JWT in a cookie or an Authorization
// header. Guests get a long-lived guest cookie instead; the rounds they play
// are moved to their account when they sign up or log in.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	guestCookie   = "lettergrid_anon"
	guestLifetime = 180 * 24 * time.Hour
	historyLimit  = 50
)

var (
	errNameTaken = errors.New("username taken")

	namePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,24}$`)
)

// player identifies the account behind a request.
type player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type playerKey struct{}

// playerFrom returns the signed-in player, or nil for guests.
func playerFrom(ctx context.Context) *player {
	p, _ := ctx.Value(playerKey{}).(*player)
	return p
}

func withPlayer(r *http.Request, p *player) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), playerKey{}, p))
}

// mountAuthRoutes registers the account endpoints.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.Group(func(r chi.Router) {
		r.Use(s.requirePlayer)
		r.Get("/auth/me", s.handleMe)
		r.Get("/stats/me", s.handleStats)
		r.Get("/rounds/mine", s.handleMyRounds)
	})
}

// ------------------------------ handlers -----------------------------------

type accountReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func readAccountReq(w http.ResponseWriter, r *http.Request) (accountReq, bool) {
	var req accountReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return req, false
	}
	req.Username = strings.TrimSpace(req.Username)
	return req, true
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	req, ok := readAccountReq(w, r)
	if !ok {
		return
	}
	acct, err := s.register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, errNameTaken):
		writeError(w, http.StatusConflict, "Username taken")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Info().Str("player", acct.ID).Msg("account created")
	s.startSession(w, r, acct)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := readAccountReq(w, r)
	if !ok {
		return
	}
	acct, err := s.accountByName(r.Context(), req.Username)
	if err != nil || !acct.passwordMatches(req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	s.startSession(w, r, acct)
}

// startSession sets the token cookie, moves guest rounds onto the account
// and answers with the player.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, acct *account) {
	tok, exp, err := s.mintToken(acct.player())
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setCookie(w, s.cfg.Auth.CookieName, tok, exp, 0)
	s.adoptGuestRounds(r.Context(), s.guestID(w, r), acct.ID)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":        acct.ID,
		"username":  acct.Username,
		"createdAt": acct.CreatedAt,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.setCookie(w, s.cfg.Auth.CookieName, "", time.Time{}, -1)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(playerFrom(r.Context()))
}

// handleStats reports round totals for the signed-in player.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	acct, err := s.accountByID(r.Context(), playerFrom(r.Context()).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "not_found")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":          acct.ID,
		"gamesPlayed": acct.Played,
		"wins":        acct.Wins,
		"losses":      acct.Played - acct.Wins,
		"streak":      acct.Streak,
	})
}

// roundEntry is one row of a player's round history.
type roundEntry struct {
	ID          string `json:"id"`
	Letter      string `json:"letter"`
	Status      string `json:"status"`
	TotalToFind int    `json:"totalToFind"`
	Found       int    `json:"found"`
	Taps        int    `json:"taps"`
	StartedAt   string `json:"startedAt"`
	FinishedAt  string `json:"finishedAt,omitempty"`
}

// handleMyRounds lists the player's most recent rounds, newest first.
func (s *Server) handleMyRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := s.recentRounds(r.Context(), playerFrom(r.Context()).ID)
	if err != nil {
		log.Warn().Err(err).Msg("round history")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(rounds)
}

func (s *Server) recentRounds(ctx context.Context, playerID string) ([]roundEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, letter, status, total_to_find, found, taps, started_at, COALESCE(finished_at, '')
		   FROM rounds
		  WHERE user_id = ?
		  ORDER BY started_at DESC
		  LIMIT ?`, playerID, historyLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []roundEntry{}
	for rows.Next() {
		var e roundEntry
		if err := rows.Scan(&e.ID, &e.Letter, &e.Status, &e.TotalToFind, &e.Found, &e.Taps,
			&e.StartedAt, &e.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ----------------------------- middleware ----------------------------------

// identifyPlayer attaches the signed-in player when the request carries a
// valid token for an existing account. Guests pass through untouched.
func (s *Server) identifyPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := s.playerFromToken(r); ok {
			r = withPlayer(r, p)
		}
		next.ServeHTTP(w, r)
	})
}

// requirePlayer rejects requests without a valid token for an existing account.
func (s *Server) requirePlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tokenFrom(r, s.cfg.Auth.CookieName) == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		p, ok := s.playerFromToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, withPlayer(r, p))
	})
}

// playerFromToken verifies the request token and checks that the account
// still exists.
func (s *Server) playerFromToken(r *http.Request) (*player, bool) {
	raw := tokenFrom(r, s.cfg.Auth.CookieName)
	if raw == "" {
		return nil, false
	}
	p, ok := s.verifyToken(raw)
	if !ok {
		return nil, false
	}
	acct, err := s.accountByID(r.Context(), p.ID)
	if err != nil {
		return nil, false
	}
	return acct.player(), true
}

// guestID returns the guest cookie value, issuing a new one when absent.
func (s *Server) guestID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(guestCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	s.setCookie(w, guestCookie, id, time.Now().Add(guestLifetime), 0)
	return id
}

// adoptGuestRounds moves a guest's rounds onto an account.
func (s *Server) adoptGuestRounds(ctx context.Context, guest, playerID string) {
	if guest == "" || playerID == "" {
		return
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE rounds SET user_id = ?, anonymous_id = NULL WHERE anonymous_id = ?`, playerID, guest)
	if err != nil {
		log.Warn().Err(err).Msg("adopt guest rounds")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Debug().Int64("rounds", n).Str("player", playerID).Msg("guest rounds adopted")
	}
}

// ------------------------------ accounts -----------------------------------

// account is a row of the users table.
type account struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	Played       int
	Wins         int
	Streak       int
}

func (a *account) player() *player { return &player{ID: a.ID, Username: a.Username} }

func (a *account) passwordMatches(pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(pw)) == nil
}

// checkCredentials enforces the username and password rules.
func checkCredentials(name, pw string) error {
	if !namePattern.MatchString(name) {
		return errors.New("username must be 3-24 letters, numbers or underscores")
	}
	if n := len(pw); n < 8 || n > 100 {
		return errors.New("password must be 8-100 chars")
	}
	return nil
}

// register creates an account. Usernames are unique regardless of case.
func (s *Server) register(ctx context.Context, name, pw string) (*account, error) {
	if err := checkCredentials(name, pw); err != nil {
		return nil, err
	}
	if _, err := s.accountByName(ctx, name); err == nil {
		return nil, errNameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	acct := &account{
		ID:           uuid.NewString(),
		Username:     name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		acct.ID, acct.Username, acct.PasswordHash, acct.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	return acct, nil
}

const accountColumns = `id, username, password_hash, created_at, games_played, wins, streak`

func (s *Server) accountByName(ctx context.Context, name string) (*account, error) {
	return scanAccount(s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM users WHERE username = ? COLLATE NOCASE`, name))
}

func (s *Server) accountByID(ctx context.Context, id string) (*account, error) {
	return scanAccount(s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM users WHERE id = ?`, id))
}

func scanAccount(row *sql.Row) (*account, error) {
	var (
		a       account
		created string
	)
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &created, &a.Played, &a.Wins, &a.Streak); err != nil {
		return nil, err
	}
	// Malformed timestamps leave CreatedAt zero.
	a.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &a, nil
}

// recordResult counts a finished round for a player inside tx.
// A win extends the streak; any other outcome resets it.
func recordResult(tx *sql.Tx, playerID string, won bool) error {
	_, err := tx.Exec(`UPDATE users
		   SET games_played = games_played + 1,
		       wins   = wins + CASE WHEN ? THEN 1 ELSE 0 END,
		       streak = CASE WHEN ? THEN streak + 1 ELSE 0 END
		 WHERE id = ?`, won, won, playerID)
	return err
}

// ---------------------------- tokens & cookies -----------------------------

// mintToken signs an HS256 token for p with the configured lifetime.
func (s *Server) mintToken(p *player) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(time.Duration(s.cfg.Auth.JWTExpiresDays) * 24 * time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       p.ID,
		"username": p.Username,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	})
	signed, err := tok.SignedString([]byte(s.cfg.Auth.JWTSecret))
	return signed, exp, err
}

// verifyToken checks the signature and expiry of raw and returns its player.
func (s *Server) verifyToken(raw string) (*player, bool) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Auth.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return nil, false
	}
	p := &player{}
	p.ID, _ = claims["id"].(string)
	p.Username, _ = claims["username"].(string)
	return p, p.ID != "" && p.Username != ""
}

// setCookie writes an HttpOnly cookie; maxAge -1 deletes it.
// Production cookies are Secure with SameSite=None for the cross-site client.
func (s *Server) setCookie(w http.ResponseWriter, name, value string, exp time.Time, maxAge int) {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
		MaxAge:   maxAge,
	}
	if s.cfg.Server.Production() {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, c)
}

// tokenFrom prefers an Authorization bearer token over the named cookie.
func tokenFrom(r *http.Request, cookie string) string {
	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	if c, err := r.Cookie(cookie); err == nil {
		return c.Value
	}
	return ""
}
