package db

import (
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestOpenAndMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "walkbingo.db")
	db, err := OpenAndMigrate(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("recorded %d migrations, want 1", n)
	}
	for _, table := range []string{"users", "cards", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestMigrateOrderAndFailure(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "t.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	fsys := fstest.MapFS{
		"m/002_b.sql": {Data: []byte(`INSERT INTO t(v) VALUES (2);`)},
		"m/001_a.sql": {Data: []byte(`CREATE TABLE t (v INTEGER);`)},
	}
	if err := migrateFS(db, fsys, "m"); err != nil {
		t.Fatal(err)
	}
	var v int
	if err := db.QueryRow(`SELECT v FROM t`).Scan(&v); err != nil || v != 2 {
		t.Fatalf("v=%d err=%v", v, err)
	}

	bad := fstest.MapFS{"m/003_bad.sql": {Data: []byte(`NOT SQL`)}}
	if err := migrateFS(db, bad, "m"); err == nil {
		t.Fatal("expected error for invalid migration")
	}
	var n int
	_ = db.QueryRow(`SELECT COUNT(*) FROM _migrations WHERE name='m/003_bad.sql'`).Scan(&n)
	if n != 0 {
		t.Fatal("failed migration must not be recorded")
	}
}
