package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/walkbingo/internal/bingo"
)

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	c := bingo.Card{ID: "abc", Popup: bingo.PopupHidden}
	c.Cells[0][0] = bingo.Cell{Text: "猫"}
	if err := s.Save(ctx, c); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if got.Cells[0][0].Text != "猫" {
		t.Fatalf("got %+v", got.Cells[0][0])
	}

	// Mutating the returned copy must not leak into the store.
	got.Cells[0][0].Marked = true
	again, _ := s.Get(ctx, "abc")
	if again.Cells[0][0].Marked {
		t.Fatal("store returned a shared reference")
	}

	if err := s.Delete(ctx, "abc"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%26))
			_ = s.Save(ctx, bingo.Card{ID: id})
			_, _ = s.Get(ctx, id)
		}(i)
	}
	wg.Wait()
}

func TestUpdateSerializesToggles(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for round := 0; round < 100; round++ {
		c := bingo.Card{ID: "live", Popup: bingo.PopupHidden}
		_ = s.Save(ctx, c)

		var wg sync.WaitGroup
		for i := 0; i < bingo.Cells; i++ {
			wg.Add(1)
			go func(row, col int) {
				defer wg.Done()
				_, err := s.Update(ctx, "live", func(c bingo.Card) (bingo.Card, error) { return c.Toggle(row, col) })
				if err != nil {
					t.Error(err)
				}
			}(i/bingo.Size, i%bingo.Size)
		}
		wg.Wait()

		got, _ := s.Get(ctx, "live")
		if n := got.MarkedCount(); n != bingo.Cells {
			t.Fatalf("round %d: %d cells marked, want %d", round, n, bingo.Cells)
		}
	}
}

func TestUpdateErrors(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Update(ctx, "nope", func(c bingo.Card) (bingo.Card, error) { return c, nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id: %v", err)
	}

	_ = s.Save(ctx, bingo.Card{ID: "abc"})
	_, err := s.Update(ctx, "abc", func(c bingo.Card) (bingo.Card, error) { return c.Toggle(5, 5) })
	if !errors.Is(err, bingo.ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
	if got, _ := s.Get(ctx, "abc"); got.MarkedCount() != 0 {
		t.Fatal("failed update changed the stored card")
	}
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore().(*memory)
	clock := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	_ = m.Save(ctx, bingo.Card{ID: "old"})
	clock = clock.Add(2 * time.Hour)
	_ = m.Save(ctx, bingo.Card{ID: "new"})

	gone := m.Sweep(ctx, clock.Add(-time.Hour))
	if len(gone) != 1 || gone[0] != "old" {
		t.Fatalf("swept %v, want [old]", gone)
	}
	if _, err := m.Get(ctx, "new"); err != nil {
		t.Fatal("recent card was swept")
	}
}
