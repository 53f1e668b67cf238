// internal/history/cards.go
//
// Card history persisted in SQLite.
// Only metadata is stored (owner, start time, toggle count, first bingo);
// card cells live in memory and are never written here.
//
// Owners are either a signed-in user (user_id) or a browser holding an
// anonymous cookie (anonymous_id). ClaimAnon moves anonymous rows to a
// user after signup/login.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Owner identifies who played a card. Exactly one field is set.
type Owner struct {
	UserID string
	AnonID string
}

// clause returns the WHERE fragment and argument selecting o's rows.
func (o Owner) clause() (string, any) {
	if o.UserID != "" {
		return `user_id=?`, o.UserID
	}
	return `anonymous_id=?`, o.AnonID
}

// ID returns the user ID if set, otherwise the anonymous ID.
func (o Owner) ID() string {
	if o.UserID != "" {
		return o.UserID
	}
	return o.AnonID
}

// CardRow is one entry of a player's card history.
type CardRow struct {
	ID        string `json:"id"`
	Daily     string `json:"daily,omitempty"`
	Toggles   int    `json:"toggles"`
	StartedAt string `json:"startedAt"`
	BingoAt   string `json:"bingoAt,omitempty"`
	BingoLine string `json:"bingoLine,omitempty"`
}

// BingoRecord describes the first bingo of a card.
type BingoRecord struct {
	First     bool      // false if the card had already reached bingo
	Toggles   int       // toggles made up to and including the winning one
	StartedAt time.Time // when the card was generated
}

// Store wraps the SQLite handle.
type Store struct{ db *sql.DB }

// NewStore returns a Store backed by db. db must be migrated.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// StartCard inserts a card row and bumps cards_played for users.
func (s *Store) StartCard(ctx context.Context, o Owner, cardID, daily string, at time.Time) error {
	var userID, anonID, dailyDate any
	if o.UserID != "" {
		userID = o.UserID
	} else {
		anonID = o.AnonID
	}
	if daily != "" {
		dailyDate = daily
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO cards (id, user_id, anonymous_id, daily_date, started_at) VALUES (?,?,?,?,?)`,
		cardID, userID, anonID, dailyDate, at.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	if o.UserID != "" {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET cards_played = cards_played + 1 WHERE id=?`, o.UserID); err != nil {
			return fmt.Errorf("bump cards_played: %w", err)
		}
	}
	return tx.Commit()
}

// RecordToggle increments the toggle counter of a card.
func (s *Store) RecordToggle(ctx context.Context, o Owner, cardID string) error {
	where, arg := o.clause()
	_, err := s.db.ExecContext(ctx,
		`UPDATE cards SET toggles = toggles + 1 WHERE id=? AND `+where, cardID, arg)
	return err
}

// RecordBingo stamps the first bingo of a card; later calls are no-ops
// reported with First=false. Users get their bingos counter bumped once.
func (s *Store) RecordBingo(ctx context.Context, o Owner, cardID, line string, at time.Time) (BingoRecord, error) {
	where, arg := o.clause()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BingoRecord{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE cards SET bingo_at=?, bingo_line=? WHERE id=? AND bingo_at IS NULL AND `+where,
		at.UTC().Format(time.RFC3339Nano), line, cardID, arg)
	if err != nil {
		return BingoRecord{}, fmt.Errorf("stamp bingo: %w", err)
	}
	n, _ := res.RowsAffected()

	var rec BingoRecord
	var started string
	if err := tx.QueryRowContext(ctx,
		`SELECT toggles, started_at FROM cards WHERE id=? AND `+where, cardID, arg,
	).Scan(&rec.Toggles, &started); err != nil {
		return BingoRecord{}, fmt.Errorf("load card: %w", err)
	}
	rec.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	rec.First = n == 1

	if rec.First && o.UserID != "" {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET bingos = bingos + 1 WHERE id=?`, o.UserID); err != nil {
			return BingoRecord{}, fmt.Errorf("bump bingos: %w", err)
		}
	}
	return rec, tx.Commit()
}

// RecentCards returns up to limit cards of o, newest first.
func (s *Store) RecentCards(ctx context.Context, o Owner, limit int) ([]CardRow, error) {
	if limit <= 0 {
		limit = 50
	}
	where, arg := o.clause()
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(daily_date,''), toggles, started_at, COALESCE(bingo_at,''), COALESCE(bingo_line,'')
		 FROM cards WHERE `+where+` ORDER BY started_at DESC LIMIT ?`, arg, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CardRow{}
	for rows.Next() {
		var r CardRow
		if err := rows.Scan(&r.ID, &r.Daily, &r.Toggles, &r.StartedAt, &r.BingoAt, &r.BingoLine); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ClaimAnon transfers anonymous cards and daily results to a user account.
// Bingos reached while anonymous are added to the user's counters. A daily
// result the user already holds for the same date wins over the anonymous one.
func (s *Store) ClaimAnon(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE OR IGNORE daily_results SET player_id=? WHERE player_id=?`, userID, anonID); err != nil {
		return fmt.Errorf("claim daily results: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM daily_results WHERE player_id=?`, anonID); err != nil {
		return fmt.Errorf("drop duplicate daily results: %w", err)
	}

	var played, bingos int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(bingo_at) FROM cards WHERE anonymous_id=?`, anonID,
	).Scan(&played, &bingos); err != nil {
		return err
	}
	if played == 0 {
		return tx.Commit()
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE cards SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET cards_played = cards_played + ?, bingos = bingos + ? WHERE id=?`,
		played, bingos, userID); err != nil {
		return err
	}
	return tx.Commit()
}
