package daily

import (
	"context"
	"database/sql"
)

// Result is one player's first bingo on a daily card.
type Result struct {
	PlayerID  string `json:"playerId"`
	Date      string `json:"date"`
	CardID    string `json:"cardId"`
	Toggles   int    `json:"toggles"`
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the player has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, playerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE player_id=? AND date=?`,
		playerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult stores r; a second result for the same player and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(player_id, date, card_id, toggles, elapsed_ms)
		 VALUES(?,?,?,?,?)`, r.PlayerID, r.Date, r.CardID, r.Toggles, r.ElapsedMs,
	)
	return err
}

// LBRow is a leaderboard entry. Name is the username, or empty for guests.
type LBRow struct {
	PlayerID  string `json:"playerId"`
	Name      string `json:"name,omitempty"`
	Toggles   int    `json:"toggles"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard returns the fastest bingos of date: fewest toggles, then
// shortest time, then earliest.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.player_id, COALESCE(u.username,''), r.toggles, r.elapsed_ms
		 FROM daily_results r LEFT JOIN users u ON u.id = r.player_id
		 WHERE r.date=?
		 ORDER BY r.toggles ASC, r.elapsed_ms ASC, r.created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.PlayerID, &r.Name, &r.Toggles, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
