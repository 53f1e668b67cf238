// internal/httpserver/server.go
//
// HTTP server wiring for the walking bingo backend.
// Responsibilities:
//   - Router + middleware (CORS, timeouts, panic recovery, request IDs).
//   - HTML surface: "/" renders the card, /play/* form posts (render.go).
//   - Card endpoints (optional auth): /card/new, /card/{id}, /card/toggle, /card/dismiss.
//   - Daily card endpoints (optional auth): mounted under /daily.
//   - Auth + profile endpoints: /auth/*, /stats/me, /cards/mine (auth.go).
//   - Best-effort card history in SQLite.
//
// Notes:
//   - Live cards sit in the in-memory store; SQLite only keeps metadata.
//   - Each owner holds one live free-play card; a new one evicts the old.
//   - Cards idle longer than cardTTL are swept while the server runs.
//   - History writes never fail a request; errors are logged at warn level.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/walkbingo/internal/bingo"
	"github.com/robalobadob/walkbingo/internal/daily"
	"github.com/robalobadob/walkbingo/internal/history"
	"github.com/robalobadob/walkbingo/internal/prompts"
	"github.com/robalobadob/walkbingo/internal/store"
)

// Server bundles router, live card store, and history.
type Server struct {
	r       *chi.Mux
	cfg     Config
	store   store.Store
	history *history.Store
	daily   *daily.Store
	pool    []string
	rnd     bingo.Rand
	now     func() time.Time

	liveMu    sync.Mutex
	liveCards map[string]string // owner ID -> live free-play card ID

	dailyMu    sync.Mutex
	dailyCards map[string]string // player|date -> live card ID
}

// cardTTL is how long an untouched live card is kept.
const cardTTL = 24 * time.Hour

// New constructs a Server, installs middleware, and registers routes.
// db must already be migrated.
func New(cfg Config, st store.Store, db *sql.DB) *Server {
	s := &Server{
		r:          chi.NewRouter(),
		cfg:        cfg.withDefaults(),
		store:      st,
		history:    history.NewStore(db),
		daily:      daily.NewStore(db),
		pool:       prompts.Pool(),
		rnd:        bingo.CryptoRand{},
		now:        time.Now,
		liveCards:  make(map[string]string),
		dailyCards: make(map[string]string),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(s.cors())                        // credentials-friendly CORS
	s.r.Use(s.withOptionalAuth)              // user in context when a valid token is present

	// HTML surface
	s.mountPages(s.r)

	// JSON API
	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/prompts", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]int{"prompts": len(s.pool)})
		})

		r.Post("/card/new", s.handleNewCard)
		r.Get("/card/{id}", s.handleGetCard)
		r.Post("/card/toggle", s.handleToggle)
		r.Post("/card/dismiss", s.handleDismiss)

		s.mountDaily(r)
		s.mountAuthRoutes(r)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found")
		})
	})

	return s
}

// Start begins serving HTTP on addr and sweeps idle cards in the background.
func (s *Server) Start(addr string) error {
	go s.janitor(time.Hour)
	return http.ListenAndServe(addr, s.r)
}

func (s *Server) janitor(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for range t.C {
		if n := s.sweep(context.Background(), s.now().Add(-cardTTL)); n > 0 {
			log.Debug().Int("cards", n).Msg("swept idle cards")
		}
	}
}

// sweep drops cards untouched since before, along with the owner and
// daily indexes that point at them.
func (s *Server) sweep(ctx context.Context, before time.Time) int {
	gone := s.store.Sweep(ctx, before)
	if len(gone) == 0 {
		return 0
	}
	dead := make(map[string]struct{}, len(gone))
	for _, id := range gone {
		dead[id] = struct{}{}
	}

	s.liveMu.Lock()
	for owner, id := range s.liveCards {
		if _, ok := dead[id]; ok {
			delete(s.liveCards, owner)
		}
	}
	s.liveMu.Unlock()

	s.dailyMu.Lock()
	for key, id := range s.dailyCards {
		if _, ok := dead[id]; ok {
			delete(s.dailyCards, key)
		}
	}
	s.dailyMu.Unlock()
	return len(gone)
}

// ServeHTTP lets Server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the single configured origin.
func (s *Server) cors() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.cfg.ClientOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// requestLogger logs method, path, status and duration with zerolog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// writeError writes {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// ------------------------------ CARDS --------------------------------------

// cardRes is the JSON shape of a card plus derived win state.
type cardRes struct {
	bingo.Card
	Bingo bool         `json:"bingo"`
	Lines []bingo.Line `json:"lines"`
}

func toCardRes(c bingo.Card) cardRes {
	lines := bingo.WinningLines(c.Marks())
	if lines == nil {
		lines = []bingo.Line{}
	}
	return cardRes{Card: c, Bingo: len(lines) > 0, Lines: lines}
}

// newCard generates and stores a fresh card, replacing the owner's previous
// free-play card, then records it in history.
func (s *Server) newCard(ctx context.Context, o history.Owner) (bingo.Card, error) {
	c := bingo.Generate(s.pool, s.rnd)
	if err := s.store.Save(ctx, c); err != nil {
		return bingo.Card{}, err
	}

	s.liveMu.Lock()
	prev := s.liveCards[o.ID()]
	s.liveCards[o.ID()] = c.ID
	s.liveMu.Unlock()
	if prev != "" {
		_ = s.store.Delete(ctx, prev)
	}

	if err := s.history.StartCard(ctx, o, c.ID, "", s.now()); err != nil {
		log.Warn().Err(err).Str("cardId", c.ID).Msg("insert card row")
	}
	return c, nil
}

// toggleCard applies a toggle, stores the result, and records the first
// bingo of the card (and the daily result for daily cards).
func (s *Server) toggleCard(ctx context.Context, o history.Owner, id string, row, col int) (bingo.Card, error) {
	next, err := s.store.Update(ctx, id, func(c bingo.Card) (bingo.Card, error) {
		return c.Toggle(row, col)
	})
	if err != nil {
		return bingo.Card{}, err
	}

	if err := s.history.RecordToggle(ctx, o, id); err != nil {
		log.Warn().Err(err).Str("cardId", id).Msg("record toggle")
	}
	if lines := bingo.WinningLines(next.Marks()); len(lines) > 0 {
		s.recordBingo(ctx, o, next, lines[0])
	}
	return next, nil
}

func (s *Server) recordBingo(ctx context.Context, o history.Owner, c bingo.Card, line bingo.Line) {
	at := s.now()
	rec, err := s.history.RecordBingo(ctx, o, c.ID, string(line), at)
	if err != nil {
		log.Warn().Err(err).Str("cardId", c.ID).Msg("record bingo")
		return
	}
	if !rec.First {
		return
	}
	log.Info().Str("cardId", c.ID).Str("line", string(line)).Int("toggles", rec.Toggles).Msg("bingo")
	if c.Daily == "" {
		return
	}
	err = s.daily.InsertResult(ctx, daily.Result{
		PlayerID:  o.ID(),
		Date:      c.Daily,
		CardID:    c.ID,
		Toggles:   rec.Toggles,
		ElapsedMs: int(at.Sub(rec.StartedAt).Milliseconds()),
	})
	if err != nil {
		log.Warn().Err(err).Str("cardId", c.ID).Msg("insert daily result")
	}
}

// dismissCard hides the popup of a stored card.
func (s *Server) dismissCard(ctx context.Context, id string) (bingo.Card, error) {
	return s.store.Update(ctx, id, func(c bingo.Card) (bingo.Card, error) {
		return c.Dismiss(), nil
	})
}

// handleNewCard creates a card for the caller.
func (s *Server) handleNewCard(w http.ResponseWriter, r *http.Request) {
	c, err := s.newCard(r.Context(), s.owner(w, r))
	if err != nil {
		log.Error().Err(err).Msg("save card")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toCardRes(c))
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	_ = json.NewEncoder(w).Encode(toCardRes(c))
}

// toggleReq is the payload for POST /card/toggle.
type toggleReq struct {
	CardID string `json:"cardId"`
	Row    *int   `json:"row"`
	Col    *int   `json:"col"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.CardID == "" || req.Row == nil || req.Col == nil {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}
	c, err := s.toggleCard(r.Context(), s.owner(w, r), req.CardID, *req.Row, *req.Col)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case errors.Is(err, bingo.ErrOutOfRange):
		writeError(w, http.StatusBadRequest, "out_of_range")
		return
	case err != nil:
		log.Error().Err(err).Str("cardId", req.CardID).Msg("toggle")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(toCardRes(c))
}

// dismissReq is the payload for POST /card/dismiss.
type dismissReq struct {
	CardID string `json:"cardId"`
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	var req dismissReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	c, err := s.dismissCard(r.Context(), req.CardID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(toCardRes(c))
}
