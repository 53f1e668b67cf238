package prompts

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPool(t *testing.T) {
	p := MustDefault()
	if len(p) != 25 {
		t.Fatalf("default pool has %d prompts, want 25", len(p))
	}
	seen := map[string]bool{}
	for _, s := range p {
		if seen[s] {
			t.Fatalf("duplicate prompt %q", s)
		}
		seen[s] = true
	}
	if p[0] != "小さな公園" || p[24] != "植物のアーチ" {
		t.Fatalf("unexpected order: first=%q last=%q", p[0], p[24])
	}
}

func TestFromList(t *testing.T) {
	in := []string{"  a ", "b", "", "# comment", "c", "a", "d", "e", "f", "g", "h", "i"}
	got, err := FromList(in)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "a,b,c,d,e,f,g,h,i" {
		t.Fatalf("got %v", got)
	}
}

func TestFromListTooSmall(t *testing.T) {
	// Nine lines but only eight distinct prompts.
	in := []string{"a", "b", "c", "d", "e", "f", "g", "h", "h"}
	if _, err := FromList(in); !errors.Is(err, ErrPoolTooSmall) {
		t.Fatalf("err = %v, want ErrPoolTooSmall", err)
	}
}

func TestReadPromptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.txt")
	if err := os.WriteFile(path, []byte("x\ny\n\nz\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := readPromptFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d raw lines, want 4", len(got))
	}
}

func TestInitAndLookups(t *testing.T) {
	t.Setenv("PROMPTS_FILE", "")
	if err := Init(); err != nil {
		t.Fatal(err)
	}
	if Stats() != 25 {
		t.Fatalf("Stats = %d", Stats())
	}
	p := Pool()
	p[0] = "mutated"
	if Pool()[0] == "mutated" {
		t.Fatal("Pool must return a copy")
	}
}
