package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[format]
indent = 2
tabs = false

[files]
extensions = [".puml", ".uml"]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Format.Indent == nil || *cfg.Format.Indent != 2 {
		t.Fatalf("indent = %v, want 2", cfg.Format.Indent)
	}
	if cfg.Format.Tabs == nil || *cfg.Format.Tabs {
		t.Fatalf("tabs = %v, want false", cfg.Format.Tabs)
	}
	if len(cfg.Files.Extensions) != 2 || cfg.Files.Extensions[1] != ".uml" {
		t.Fatalf("extensions = %v", cfg.Files.Extensions)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[format]\nindent = 8\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Format.Tabs != nil {
		t.Fatal("tabs should stay unset")
	}
	if cfg.Files.Extensions != nil {
		t.Fatal("extensions should stay unset")
	}
	if *cfg.Format.Indent != 8 {
		t.Fatalf("indent = %d, want 8", *cfg.Format.Indent)
	}
}

func TestLoadConfigNegativeIndent(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[format]\nindent = -1\n")

	if _, err := LoadConfig(path); !errors.Is(err, ErrNegativeIndent) {
		t.Fatalf("err = %v, want ErrNegativeIndent", err)
	}
}

func TestFindConfigUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[format]\nindent = 2\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok := FindConfig(nested)
	if !ok {
		t.Fatal("config not found from nested dir")
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %q, want file in %q", path, root)
	}
}

func TestLoadConfigForMissing(t *testing.T) {
	// Директория без конфига: не ошибка, просто nil.
	cfg, err := LoadConfigFor(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfigFor: %v", err)
	}
	if cfg != nil {
		t.Fatalf("cfg = %+v, want nil", cfg)
	}
}

func TestDigest(t *testing.T) {
	a := HashBytes([]byte("@startuml\n"))
	b := HashBytes([]byte("@startuml\n"))
	if a != b {
		t.Fatal("digest not deterministic")
	}
	if a.IsZero() {
		t.Fatal("digest of content must not be zero")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex digest length = %d, want 64", len(a.String()))
	}
}
