// internal/httpserver/render.go
//
// Server-rendered HTML surface.
//   - GET  /             → page for the card in the walkbingo_card cookie;
//                          generates one card when there is none.
//   - POST /play/new     → new card, popup hidden
//   - POST /play/toggle  → form field cell="row-col"
//   - POST /play/dismiss → hide popup
// Every POST answers 303 See Other back to "/".

package httpserver

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/walkbingo/internal/bingo"
	"github.com/robalobadob/walkbingo/internal/store"
	"github.com/robalobadob/walkbingo/internal/theme"
)

const cardCookieName = "walkbingo_card"

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Text.Title}}</title>
<style>
body { margin: 0; font-family: sans-serif; }
.container { display: flex; flex-direction: column; align-items: center; justify-content: center; min-height: 100vh; background: {{.Theme.Background}}; padding: 1rem; box-sizing: border-box; }
.title { font-size: 2.5rem; font-weight: bold; margin-bottom: 1rem; color: {{.Theme.Title}}; }
.card { background: {{.Theme.CardBackground}}; margin-top: 1rem; padding: 2rem; border-radius: 0.5rem; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
.grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1rem; margin-bottom: 1rem; }
.cell { width: {{.Theme.CellSize}}; height: {{.Theme.CellSize}}; display: flex; align-items: center; justify-content: center; font-size: 0.875rem; font-weight: 500; border: 1px solid {{.Theme.CellBorder}}; border-radius: 0.25rem; transition: {{.Theme.Transition}}; cursor: pointer; text-align: center; padding: 0.5rem; background: {{.Theme.CardBackground}}; }
.cell.marked { background: {{.Theme.MarkedBg}}; color: {{.Theme.MarkedFg}}; }
.button { width: 100%; padding: 0.5rem 1rem; background: {{.Theme.ButtonBg}}; color: {{.Theme.ButtonFg}}; border: none; border-radius: 0.25rem; font-size: 1rem; font-weight: 500; cursor: pointer; transition: background-color 0.3s ease; }
.popup { position: fixed; top: 0; left: 0; width: 100%; height: 100%; background: {{.Theme.PopupBackdrop}}; display: flex; align-items: center; justify-content: center; }
.popup-content { background: {{.Theme.CardBackground}}; padding: 2rem; border-radius: 0.5rem; text-align: center; }
.popup-title { font-size: 1.5rem; font-weight: bold; margin-bottom: 1rem; }
.popup-button { padding: 0.5rem 1rem; background: {{.Theme.PopupButtonBg}}; color: {{.Theme.ButtonFg}}; border: none; border-radius: 0.25rem; font-size: 1rem; font-weight: 500; cursor: pointer; }
</style>
</head>
<body>
<div class="container">
  <h1 class="title">{{.Text.Title}}</h1>
  <p>{{.Text.Subtitle}}</p>
  <div class="card">
    <form class="grid" method="post" action="/play/toggle">
      {{- range $r, $row := .Card.Cells}}{{range $c, $cell := $row}}
      <button class="cell{{if $cell.Marked}} marked{{end}}" type="submit" name="cell" value="{{$r}}-{{$c}}">{{$cell.Text}}</button>
      {{- end}}{{end}}
    </form>
    <form method="post" action="/play/new">
      <button class="button" type="submit">{{.Text.NewCard}}</button>
    </form>
  </div>
  {{- if .Shown}}
  <div class="popup" id="bingo-popup">
    <div class="popup-content">
      <h2 class="popup-title">{{.Text.BingoTitle}}</h2>
      <p style="margin-bottom: 1rem">{{.Text.BingoMessage}}</p>
      <form method="post" action="/play/dismiss">
        <button class="popup-button" type="submit">{{.Text.Close}}</button>
      </form>
    </div>
  </div>
  {{- end}}
</div>
</body>
</html>
`))

// pageData is the template input.
type pageData struct {
	Card  bingo.Card
	Shown bool
	Theme theme.Theme
	Text  theme.Copy
}

// mountPages registers the HTML routes.
func (s *Server) mountPages(r chi.Router) {
	r.Get("/", s.handlePage)
	r.Route("/play", func(r chi.Router) {
		r.Post("/new", s.handlePlayNew)
		r.Post("/toggle", s.handlePlayToggle)
		r.Post("/dismiss", s.handlePlayDismiss)
	})
}

// handlePage renders the current card, generating one on first display.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	c, err := s.cardFromCookie(r)
	if err != nil {
		c, err = s.newCard(r.Context(), s.owner(w, r))
		if err != nil {
			log.Error().Err(err).Msg("save card")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		s.setCardCookie(w, c.ID)
	}
	renderPage(w, c)
}

func (s *Server) handlePlayNew(w http.ResponseWriter, r *http.Request) {
	if old, err := s.cardFromCookie(r); err == nil {
		_ = s.store.Delete(r.Context(), old.ID)
	}
	c, err := s.newCard(r.Context(), s.owner(w, r))
	if err != nil {
		log.Error().Err(err).Msg("save card")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.setCardCookie(w, c.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePlayToggle(w http.ResponseWriter, r *http.Request) {
	row, col, err := parseCell(r.FormValue("cell"))
	if err != nil {
		http.Error(w, "bad cell", http.StatusBadRequest)
		return
	}
	id := s.cardID(r)
	_, err = s.toggleCard(r.Context(), s.owner(w, r), id, row, col)
	switch {
	case errors.Is(err, bingo.ErrOutOfRange):
		http.Error(w, "bad cell", http.StatusBadRequest)
		return
	case err != nil && !errors.Is(err, store.ErrNotFound):
		log.Error().Err(err).Str("cardId", id).Msg("toggle")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	// A missing card falls through: "/" generates a new one.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePlayDismiss(w http.ResponseWriter, r *http.Request) {
	if _, err := s.dismissCard(r.Context(), s.cardID(r)); err != nil && !errors.Is(err, store.ErrNotFound) {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderPage writes the HTML page for c.
func renderPage(w http.ResponseWriter, c bingo.Card) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{Card: c, Shown: c.Popup == bingo.PopupShown, Theme: theme.Default, Text: theme.Text}
	if err := pageTmpl.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("render page")
	}
}

func (s *Server) cardID(r *http.Request) string {
	if c, err := r.Cookie(cardCookieName); err == nil {
		return c.Value
	}
	return ""
}

func (s *Server) cardFromCookie(r *http.Request) (bingo.Card, error) {
	id := s.cardID(r)
	if id == "" {
		return bingo.Card{}, store.ErrNotFound
	}
	return s.store.Get(r.Context(), id)
}

// setCardCookie binds the browser to a live card for one day.
func (s *Server) setCardCookie(w http.ResponseWriter, id string) {
	s.setCookie(w, cardCookieName, id, s.now().Add(24*time.Hour), 0)
}

// parseCell parses "row-col" with both parts in [0, bingo.Size).
func parseCell(v string) (row, col int, err error) {
	rs, cs, ok := strings.Cut(v, "-")
	if !ok {
		return 0, 0, fmt.Errorf("cell %q: want row-col", v)
	}
	if row, err = strconv.Atoi(rs); err != nil {
		return 0, 0, err
	}
	if col, err = strconv.Atoi(cs); err != nil {
		return 0, 0, err
	}
	if row < 0 || row >= bingo.Size || col < 0 || col >= bingo.Size {
		return 0, 0, bingo.ErrOutOfRange
	}
	return row, col, nil
}
