package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pumlfmt/internal/format"
	"pumlfmt/internal/project"
)

func openTestCache(t *testing.T) *ResultCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenResultCache("pumlfmt-test")
	if err != nil {
		t.Fatalf("OpenResultCache: %v", err)
	}
	return cache
}

func TestResultCacheRoundTrip(t *testing.T) {
	cache := openTestCache(t)
	key := project.HashBytes([]byte("@startuml\n@enduml\n"))

	clean, err := cache.IsClean(key)
	if err != nil || clean {
		t.Fatalf("IsClean before mark = (%v, %v), want (false, nil)", clean, err)
	}

	if err := cache.MarkClean(key, "doc.puml"); err != nil {
		t.Fatalf("MarkClean: %v", err)
	}

	clean, err = cache.IsClean(key)
	if err != nil || !clean {
		t.Fatalf("IsClean after mark = (%v, %v), want (true, nil)", clean, err)
	}
}

func TestResultCacheZeroDigest(t *testing.T) {
	cache := openTestCache(t)
	clean, err := cache.IsClean(project.Digest{})
	if err != nil || clean {
		t.Fatalf("zero digest = (%v, %v), want (false, nil)", clean, err)
	}
}

func TestResultCacheDropAll(t *testing.T) {
	cache := openTestCache(t)
	key := project.HashBytes([]byte("x"))
	if err := cache.MarkClean(key, "x.puml"); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if clean, _ := cache.IsClean(key); clean {
		t.Fatal("cache should be empty after DropAll")
	}
	// Повторный DropAll по уже снесённому каталогу — не ошибка.
	if err := cache.DropAll(); err != nil {
		t.Fatalf("second DropAll: %v", err)
	}
}

func TestResultCacheNil(t *testing.T) {
	var cache *ResultCache
	if err := cache.MarkClean(project.Digest{}, ""); err != nil {
		t.Fatal(err)
	}
	if clean, err := cache.IsClean(project.Digest{}); err != nil || clean {
		t.Fatal("nil cache must behave as a miss")
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
}

func TestFormatPathsUsesCache(t *testing.T) {
	cache := openTestCache(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "seq.puml")
	formatted := "@startuml\nalt a\n    A -> B\nend\n@enduml\n"
	writeFile(t, path, formatted)

	opts := FormatOptions{
		Check:   true,
		Cache:   cache,
		Options: format.Options{IndentWidth: 4},
	}

	// Первый прогон: файл чистый, запоминаем дайджест.
	results, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil || results[0].Changed {
		t.Fatalf("first run: %v %+v", err, results[0])
	}

	key := project.HashBytes([]byte(formatted))
	if clean, _ := cache.IsClean(key); !clean {
		t.Fatal("digest not recorded after clean run")
	}

	// Второй прогон идёт через кеш и так же отвечает "без изменений".
	results, err = FormatPaths(context.Background(), []string{path}, opts)
	if err != nil || results[0].Changed || results[0].Err != nil {
		t.Fatalf("cached run: %v %+v", err, results[0])
	}

	// Изменённый файл в кеш не попадает.
	writeFile(t, path, "alt b\nX->Y\nend\n")
	results, err = FormatPaths(context.Background(), []string{path}, opts)
	if err != nil || !results[0].Changed {
		t.Fatalf("dirty run: %v %+v", err, results[0])
	}
}

func TestOpenResultCacheCreatesDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	if _, err := OpenResultCache("pumlfmt-test"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(base, "pumlfmt-test")); err != nil {
		t.Fatalf("cache dir not created: %v", err)
	}
}
