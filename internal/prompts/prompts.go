// internal/prompts/prompts.go
//
// Provides the prompt pool that bingo cards are drawn from.
//
// Responsibilities:
//   - Load the pool from an operator-provided file or fall back to the embedded default.
//   - Normalize entries (trim, drop blanks/comments, drop duplicates, keep order).
//   - Enforce the pool invariant: at least bingo.Cells distinct prompts.
//   - Supply lookups: Pool, Stats.
//
// Initialization behavior (Init):
//   1. If PROMPTS_FILE is set, load one prompt per line from that file.
//   2. Otherwise use the embedded assets/prompts.txt.
//
// Environment variables:
//   PROMPTS_FILE=/path/to/prompts.txt
//
// Initialization is run once (sync.Once).

package prompts

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/walkbingo/assets"
	"github.com/robalobadob/walkbingo/internal/bingo"
)

// ErrPoolTooSmall is returned when a pool has fewer than bingo.Cells distinct prompts.
var ErrPoolTooSmall = errors.New("prompts: pool too small")

var (
	initOnce   sync.Once
	pool       []string
	initialErr error
)

// Init loads the pool exactly once.
// Returns an error if the configured file is unreadable or too small.
func Init() error {
	initOnce.Do(func() {
		var list []string
		var err error
		if path := os.Getenv("PROMPTS_FILE"); path != "" {
			list, err = readPromptFile(path)
		} else {
			list, err = assets.PromptList()
		}
		if err != nil {
			initialErr = err
			return
		}
		p, err := FromList(list)
		if err != nil {
			initialErr = err
			return
		}
		pool = p
	})
	return initialErr
}

// FromList normalizes list and checks the size invariant.
func FromList(list []string) ([]string, error) {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if len(out) < bingo.Cells {
		return nil, fmt.Errorf("%w: %d distinct prompts, need %d", ErrPoolTooSmall, len(out), bingo.Cells)
	}
	return out, nil
}

// MustDefault returns the normalized embedded pool.
// Panics if the embedded file is missing or too small.
func MustDefault() []string {
	list, err := assets.PromptList()
	if err != nil {
		panic(err)
	}
	p, err := FromList(list)
	if err != nil {
		panic(err)
	}
	return p
}

// readPromptFile loads one prompt per line from a file.
func readPromptFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// Pool returns a copy of the loaded pool.
// Falls back to the embedded default when Init has not run successfully.
func Pool() []string {
	if len(pool) == 0 {
		return MustDefault()
	}
	return append([]string(nil), pool...)
}

// Stats returns the number of loaded prompts.
func Stats() int { return len(pool) }
