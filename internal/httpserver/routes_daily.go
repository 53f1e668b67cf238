// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily card.
// Exposes two endpoints under /daily:
//   - POST /daily/new         → start (or resume) today's card
//   - GET  /daily/leaderboard → fastest bingos for today (or ?date=YYYY-MM-DD)
//
// Every player gets the same prompts in the same positions on a given date.
// A player's first bingo on the daily card is stored once (UNIQUE per date);
// after that /daily/new reports played=true.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/walkbingo/internal/daily"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Get("/leaderboard", s.handleDailyLeaderboard)
	})
}

// dailyNewRes is returned by /daily/new. Card is nil when played is true.
type dailyNewRes struct {
	Date   string   `json:"date"`
	Played bool     `json:"played"`
	Card   *cardRes `json:"card,omitempty"`
}

// handleDailyNew returns the caller's live daily card, creating it if needed.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	o := s.owner(w, r)
	now := s.now()
	date := daily.DateKey(now)

	if played, err := s.daily.AlreadyPlayed(ctx, o.ID(), date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	key := o.ID() + "|" + date
	s.dailyMu.Lock()
	defer s.dailyMu.Unlock()
	s.pruneDailyLocked(ctx, date)

	if id, ok := s.dailyCards[key]; ok {
		if c, err := s.store.Get(ctx, id); err == nil {
			res := toCardRes(c)
			_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Card: &res})
			return
		}
	}

	c := daily.Card(now, s.cfg.DailySalt, s.pool)
	if err := s.store.Save(ctx, c); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if err := s.history.StartCard(ctx, o, c.ID, date, now); err != nil {
		log.Warn().Err(err).Str("cardId", c.ID).Msg("insert daily card row")
	}
	s.dailyCards[key] = c.ID

	res := toCardRes(c)
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Card: &res})
}

// pruneDailyLocked drops live daily cards from dates other than today.
// Caller holds dailyMu.
func (s *Server) pruneDailyLocked(ctx context.Context, today string) {
	for key, id := range s.dailyCards {
		if !strings.HasSuffix(key, "|"+today) {
			_ = s.store.Delete(ctx, id)
			delete(s.dailyCards, key)
		}
	}
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	}
	rows, err := s.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
