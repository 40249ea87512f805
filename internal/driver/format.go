package driver

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pumlfmt/internal/diag"
	"pumlfmt/internal/format"
	"pumlfmt/internal/project"
	"pumlfmt/internal/source"
)

// DefaultExtensions are the PlantUML file extensions collected when walking
// directories, unless overridden by configuration.
var DefaultExtensions = []string{".puml", ".plantuml", ".pu", ".iuml", ".wsd"}

// ErrNoInputs reports that no PlantUML files were found under the given paths.
var ErrNoInputs = errors.New("format: no PlantUML files found")

// FormatOptions configures document formatting.
type FormatOptions struct {
	// Check reports Changed without touching files.
	Check bool
	// Stdout returns formatted content in the results instead of rewriting
	// files on disk.
	Stdout bool
	// MaxWarnings caps the diagnostics collected per file; zero collects
	// none.
	MaxWarnings int
	// Jobs bounds the worker pool; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache skips files whose content digest is already recorded as clean.
	Cache *ResultCache
	// Extensions overrides DefaultExtensions for directory walks.
	Extensions []string
	// Options are passed through to the engine.
	Options format.Options
}

// FormatResult captures the outcome of formatting a single document.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	Warnings  []diag.Diagnostic
}

// FormatPaths formats the given files and directories (recursively collecting
// PlantUML sources). When opts.Check is true, files are not modified; Changed
// indicates whether formatting would update the contents. When opts.Stdout is
// true, formatted content is returned in the results without touching disk.
// Results come back in sorted path order regardless of worker scheduling.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectInputFiles(ctx, paths, opts.extensions())
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoInputs
	}

	results, err := formatFilesParallel(ctx, files, opts)
	if err != nil {
		return results, err
	}

	if opts.Check || opts.Stdout {
		return results, nil
	}

	for i := range results {
		res := &results[i]
		if res.Err != nil || !res.Changed {
			continue
		}
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(res.Path); statErr == nil {
			mode = info.Mode()
		}
		if writeErr := os.WriteFile(res.Path, res.Formatted, mode.Perm()); writeErr != nil {
			res.Err = writeErr
			res.Changed = false
		}
	}
	return results, nil
}

// FormatData formats a single in-memory document (stdin, tests).
func FormatData(name string, data []byte, opts FormatOptions) FormatResult {
	fileSet := source.NewFileSet()
	sf := fileSet.Get(fileSet.AddVirtual(name, data))
	return formatSource(sf, opts)
}

func formatSingleFile(path string, opts FormatOptions) FormatResult {
	result := FormatResult{Path: path}

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		result.Err = err
		return result
	}
	sf := fileSet.Get(fileID)

	if opts.Cache != nil {
		if clean, _ := opts.Cache.IsClean(project.Digest(sf.Hash)); clean {
			// Контент уже записан как отформатированный — диск не трогаем.
			result.Formatted = sf.Content
			return result
		}
	}

	result = formatSource(sf, opts)
	if opts.Cache != nil && result.Err == nil && !result.Changed {
		// best-effort: ошибка кеша не делает результат хуже
		_ = opts.Cache.MarkClean(project.Digest(sf.Hash), path)
	}
	return result
}

func formatSource(sf *source.File, opts FormatOptions) FormatResult {
	result := FormatResult{Path: sf.Path}

	// NewBag прижимает отрицательный лимит к нулю; ноль значит ноль.
	bag := diag.NewBag(opts.MaxWarnings)

	formatted, err := format.FormatFile(sf, opts.Options, &diag.BagReporter{Bag: bag})
	if err != nil {
		result.Err = err
		return result
	}

	bag.Sort()
	result.Formatted = formatted
	result.Warnings = bag.Items()
	// Content сравнивается уже нормализованным, поэтому снятый BOM или CRLF —
	// тоже изменение.
	result.Changed = !bytes.Equal(sf.Content, formatted) ||
		sf.Flags&(source.FileHadBOM|source.FileNormalizedCRLF) != 0
	return result
}

func (o FormatOptions) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

func collectInputFiles(ctx context.Context, paths, extensions []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}
	hasExt := func(path string) bool {
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range extensions {
			if ext == want {
				return true
			}
		}
		return false
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if hasExt(path) {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		// Явно названные файлы берём независимо от расширения.
		addFile(p)
	}

	sort.Strings(files)
	return files, nil
}
