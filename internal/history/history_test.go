package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/walkbingo/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	sqlDB, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewStore(sqlDB)
}

func TestCreateAndAuthenticateUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u, err := s.CreateUser(ctx, "  walker_1 ", "password123")
	if err != nil {
		t.Fatal(err)
	}
	if u.Username != "walker_1" {
		t.Fatalf("username not normalized: %q", u.Username)
	}
	if _, err := s.CreateUser(ctx, "WALKER_1", "password123"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}

	if _, err := s.Authenticate(ctx, "walker_1", "password123"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if _, err := s.Authenticate(ctx, "walker_1", "wrong-password"); err == nil {
		t.Fatal("expected failure with wrong password")
	}
	if _, err := s.FindUserByID(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestValidateSignup(t *testing.T) {
	cases := []struct {
		user, pw string
		ok       bool
	}{
		{"abc", "12345678", true},
		{"ab", "12345678", false},
		{"has space", "12345678", false},
		{"abc", "short", false},
	}
	for _, tc := range cases {
		if err := ValidateSignup(tc.user, tc.pw); (err == nil) != tc.ok {
			t.Errorf("ValidateSignup(%q,%q) = %v", tc.user, tc.pw, err)
		}
	}
}

func TestCardLifecycleForUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u, err := s.CreateUser(ctx, "walker", "password123")
	if err != nil {
		t.Fatal(err)
	}
	o := Owner{UserID: u.ID}
	start := time.Now().Add(-time.Minute)

	if err := s.StartCard(ctx, o, "card1", "", start); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := s.RecordToggle(ctx, o, "card1"); err != nil {
			t.Fatal(err)
		}
	}

	rec, err := s.RecordBingo(ctx, o, "card1", "row0", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !rec.First || rec.Toggles != 3 {
		t.Fatalf("first record = %+v", rec)
	}
	if rec.StartedAt.IsZero() {
		t.Fatal("started_at not parsed")
	}

	again, err := s.RecordBingo(ctx, o, "card1", "col0", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if again.First {
		t.Fatal("second bingo on the same card must not count")
	}

	got, _ := s.FindUserByID(ctx, u.ID)
	if got.CardsPlayed != 1 || got.Bingos != 1 {
		t.Fatalf("stats = played %d bingos %d", got.CardsPlayed, got.Bingos)
	}

	rows, err := s.RecentCards(ctx, o, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].BingoLine != "row0" || rows[0].Toggles != 3 {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestClaimAnon(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	anon := Owner{AnonID: "anon-1"}

	_ = s.StartCard(ctx, anon, "a1", "", time.Now())
	_ = s.StartCard(ctx, anon, "a2", "2026-10-15", time.Now())
	if _, err := s.RecordBingo(ctx, anon, "a1", "diagonal", time.Now()); err != nil {
		t.Fatal(err)
	}

	u, _ := s.CreateUser(ctx, "claimer", "password123")
	if err := s.ClaimAnon(ctx, "anon-1", u.ID); err != nil {
		t.Fatal(err)
	}

	got, _ := s.FindUserByID(ctx, u.ID)
	if got.CardsPlayed != 2 || got.Bingos != 1 {
		t.Fatalf("stats after claim = played %d bingos %d", got.CardsPlayed, got.Bingos)
	}
	if rows, _ := s.RecentCards(ctx, anon, 10); len(rows) != 0 {
		t.Fatalf("anonymous rows left behind: %+v", rows)
	}
	if rows, _ := s.RecentCards(ctx, Owner{UserID: u.ID}, 10); len(rows) != 2 {
		t.Fatalf("user rows = %+v", rows)
	}

	// Claiming again is a no-op.
	if err := s.ClaimAnon(ctx, "anon-1", u.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = s.FindUserByID(ctx, u.ID)
	if got.CardsPlayed != 2 {
		t.Fatalf("double claim changed stats: %d", got.CardsPlayed)
	}
}

func TestClaimAnonMovesDailyResults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u, _ := s.CreateUser(ctx, "daily_walker", "password123")

	insert := func(player, date, card string, toggles int) {
		t.Helper()
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO daily_results(player_id, date, card_id, toggles, elapsed_ms) VALUES(?,?,?,?,0)`,
			player, date, card, toggles); err != nil {
			t.Fatal(err)
		}
	}
	insert("anon-2", "2026-10-14", "c1", 3)
	insert("anon-2", "2026-10-15", "c2", 5)
	insert(u.ID, "2026-10-15", "c3", 4)

	if err := s.ClaimAnon(ctx, "anon-2", u.ID); err != nil {
		t.Fatal(err)
	}

	var anonLeft, mine int
	_ = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_results WHERE player_id=?`, "anon-2").Scan(&anonLeft)
	_ = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_results WHERE player_id=?`, u.ID).Scan(&mine)
	if anonLeft != 0 || mine != 2 {
		t.Fatalf("anon rows %d, user rows %d; want 0 and 2", anonLeft, mine)
	}

	var card string
	_ = s.db.QueryRowContext(ctx,
		`SELECT card_id FROM daily_results WHERE player_id=? AND date=?`, u.ID, "2026-10-15").Scan(&card)
	if card != "c3" {
		t.Fatalf("same-date result = %s, want the user's own c3", card)
	}
}

func TestGenID(t *testing.T) {
	a, b := GenID(), GenID()
	if len(a) != 22 || a == b {
		t.Fatalf("GenID gave %q and %q", a, b)
	}
}
