// assets/embed.go
//
// Embedded data shipped with the binary:
//   - prompts.txt: default walking bingo prompt pool.
//   - sql/*.sql:   schema migrations applied by internal/db.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed prompts.txt sql/*.sql
var FS embed.FS

// readLines returns the trimmed, non-empty, non-comment lines of an embedded file.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// PromptList returns the default prompt pool in file order.
func PromptList() ([]string, error) {
	return readLines("prompts.txt")
}
