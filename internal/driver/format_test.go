package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pumlfmt/internal/format"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFormatPathsInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seq.puml")
	writeFile(t, path, "@startuml\nalt a\nA->B:hi\nend\n@enduml\n")

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{
		Options: format.Options{IndentWidth: 4},
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Err != nil || !results[0].Changed {
		t.Fatalf("result = %+v", results[0])
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "@startuml\nalt a\n    A -> B : hi\nend\n@enduml\n"
	if string(got) != want {
		t.Fatalf("file content:\nwant %q\ngot  %q", want, string(got))
	}
}

func TestFormatPathsCheckDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seq.puml")
	original := "alt a\nA->B\nend\n"
	writeFile(t, path, original)

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{
		Check:   true,
		Options: format.Options{IndentWidth: 4},
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if !results[0].Changed {
		t.Fatal("Changed = false, want true")
	}

	got, _ := os.ReadFile(path)
	if string(got) != original {
		t.Fatalf("check mode must not rewrite the file, got %q", string(got))
	}
}

func TestFormatPathsAlreadyFormatted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seq.puml")
	writeFile(t, path, "@startuml\nalt a\n    A -> B : hi\nend\n@enduml\n")

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{
		Check:   true,
		Options: format.Options{IndentWidth: 4},
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if results[0].Changed {
		t.Fatal("Changed = true for already formatted file")
	}
}

func TestFormatPathsWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.puml"), "alt a\nx\nend\n")
	writeFile(t, filepath.Join(dir, "sub", "b.plantuml"), "alt b\ny\nend\n")
	writeFile(t, filepath.Join(dir, "sub", "skip.txt"), "not a diagram\n")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{
		Stdout:  true,
		Options: format.Options{IndentWidth: 2},
		Jobs:    4,
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 (txt must be skipped)", len(results))
	}
	// Отсортированный порядок путей, независимо от воркеров.
	if filepath.Base(results[0].Path) != "a.puml" || filepath.Base(results[1].Path) != "b.plantuml" {
		t.Fatalf("unexpected order: %q, %q", results[0].Path, results[1].Path)
	}
	if string(results[0].Formatted) != "alt a\n  x\nend\n" {
		t.Fatalf("stdout content = %q", results[0].Formatted)
	}
}

func TestFormatPathsNoInputs(t *testing.T) {
	dir := t.TempDir()
	if _, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{}); !errors.Is(err, ErrNoInputs) {
		t.Fatalf("err = %v, want ErrNoInputs", err)
	}
}

func TestFormatPathsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FormatPaths(ctx, []string{"."}, FormatOptions{}); err == nil {
		t.Fatal("canceled context must propagate")
	}
}

func TestFormatDataWarnings(t *testing.T) {
	res := FormatData("stdin.puml", []byte("end\nactor User\n"), FormatOptions{
		MaxWarnings: 8,
		Options:     format.Options{IndentWidth: 4},
	})
	if res.Err != nil {
		t.Fatalf("FormatData: %v", res.Err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %+v, want one unmatched close", res.Warnings)
	}
	if res.Warnings[0].Line != 1 {
		t.Fatalf("warning line = %d, want 1", res.Warnings[0].Line)
	}
}

func TestFormatDataMaxWarningsZero(t *testing.T) {
	// Нулевой лимит значит "не собирать", а не "по умолчанию".
	res := FormatData("stdin.puml", []byte("end\nend\nactor User\n"), FormatOptions{
		MaxWarnings: 0,
		Options:     format.Options{IndentWidth: 4},
	})
	if res.Err != nil {
		t.Fatalf("FormatData: %v", res.Err)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("warnings = %+v, want none at zero limit", res.Warnings)
	}
	// Форматирование от лимита не зависит.
	if string(res.Formatted) != "end\nend\nactor User\n" {
		t.Fatalf("formatted = %q", res.Formatted)
	}
}

func TestFormatDataCRLFCountsAsChange(t *testing.T) {
	res := FormatData("stdin.puml", []byte("actor User\r\n"), FormatOptions{
		Options: format.Options{IndentWidth: 4},
	})
	if !res.Changed {
		t.Fatal("CRLF input must report Changed")
	}
	if string(res.Formatted) != "actor User\n" {
		t.Fatalf("formatted = %q", res.Formatted)
	}
}

func TestCollectInputFilesExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "odd.uml")
	writeFile(t, path, "actor User\n")

	// Явно названный файл берётся независимо от расширения.
	files, err := collectInputFiles(context.Background(), []string{path}, DefaultExtensions)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != path {
		t.Fatalf("files = %q", files)
	}
}
