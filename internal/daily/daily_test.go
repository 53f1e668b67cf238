package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/walkbingo/internal/db"
	"github.com/robalobadob/walkbingo/internal/prompts"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	got := DateKey(time.Date(2026, 10, 16, 3, 0, 0, 0, loc))
	if got != "2026-10-15" {
		t.Fatalf("DateKey = %s, want UTC date 2026-10-15", got)
	}
}

func TestCardIsDeterministicPerDate(t *testing.T) {
	pool := prompts.MustDefault()
	day := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

	a := Card(day, "salt", pool)
	b := Card(day.Add(3*time.Hour), "salt", pool)
	if a.Cells != b.Cells {
		t.Fatal("same date and salt should give the same grid")
	}
	if a.ID == b.ID {
		t.Fatal("card IDs should differ")
	}
	if a.Daily != "2026-10-15" {
		t.Fatalf("Daily = %q", a.Daily)
	}

	c := Card(day, "other-salt", pool)
	d := Card(day.AddDate(0, 0, 1), "salt", pool)
	if a.Cells == c.Cells && a.Cells == d.Cells {
		t.Fatal("salt and date should both change the grid")
	}
}

func TestStoreLeaderboard(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "daily.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer sqlDB.Close()
	s := NewStore(sqlDB)

	date := "2026-10-15"
	results := []Result{
		{PlayerID: "slow", Date: date, CardID: "c1", Toggles: 5, ElapsedMs: 1000},
		{PlayerID: "fast", Date: date, CardID: "c2", Toggles: 3, ElapsedMs: 9000},
		{PlayerID: "quick", Date: date, CardID: "c3", Toggles: 3, ElapsedMs: 2000},
		{PlayerID: "fast", Date: date, CardID: "c4", Toggles: 3, ElapsedMs: 1},
		{PlayerID: "other-day", Date: "2026-10-14", CardID: "c5", Toggles: 3, ElapsedMs: 1},
	}
	for _, r := range results {
		if err := s.InsertResult(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	played, err := s.AlreadyPlayed(ctx, "fast", date)
	if err != nil || !played {
		t.Fatalf("AlreadyPlayed = %v, %v", played, err)
	}
	if played, _ := s.AlreadyPlayed(ctx, "nobody", date); played {
		t.Fatal("unknown player reported as played")
	}

	top, err := s.Leaderboard(ctx, date, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"quick", "fast", "slow"}
	if len(top) != len(want) {
		t.Fatalf("got %d rows: %+v", len(top), top)
	}
	for i, id := range want {
		if top[i].PlayerID != id {
			t.Fatalf("rank %d = %s, want %s", i, top[i].PlayerID, id)
		}
	}
	if top[1].ElapsedMs != 9000 {
		t.Fatal("duplicate result should have been ignored")
	}
}
