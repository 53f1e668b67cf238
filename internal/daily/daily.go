package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/walkbingo/internal/bingo"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Rand returns a deterministic source seeded with HMAC(salt, YYYY-MM-DD).
// Every player gets the same sequence for the same date and salt.
func Rand(date time.Time, salt string) *rand.Rand {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return rand.New(rand.NewPCG(
		binary.BigEndian.Uint64(sum[:8]),
		binary.BigEndian.Uint64(sum[8:16]),
	))
}

// Card returns the daily card for date. Prompts and their positions are
// identical for every player; the card ID is unique per call.
func Card(date time.Time, salt string, pool []string) bingo.Card {
	c := bingo.Generate(pool, Rand(date, salt))
	c.Daily = DateKey(date)
	return c
}
