package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pumlfmt/internal/diag"
	"pumlfmt/internal/driver"
	"pumlfmt/internal/format"
	"pumlfmt/internal/observ"
	"pumlfmt/internal/project"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [path...]",
	Short: "Format PlantUML files",
	Long: `Format PlantUML files or directories in place.
With no paths (or "-") the document is read from stdin and written to stdout.`,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Int("indent", 4, "number of spaces per nesting level")
	fmtCmd.Flags().Bool("tabs", false, "indent with tabs instead of spaces")
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = number of CPUs)")
	fmtCmd.Flags().Bool("cache", false, "skip files already recorded as formatted")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}

	maxWarnings, err := cmd.Root().PersistentFlags().GetInt("max-warnings")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	opts := driver.FormatOptions{
		Check:       check,
		Stdout:      writeToStdout,
		MaxWarnings: maxWarnings,
		Jobs:        jobs,
	}
	if useCache {
		cache, cacheErr := driver.OpenResultCache(cacheAppName)
		if cacheErr != nil {
			return fmt.Errorf("fmt: cannot open cache: %w", cacheErr)
		}
		opts.Cache = cache
	}

	timer := observ.NewTimer()

	if fromStdin(args) {
		if outputFormat != "text" {
			return fmt.Errorf("fmt: %s output is not supported when reading stdin", outputFormat)
		}
		opts.Options, _, err = resolveFormatOptions(cmd, ".")
		if err != nil {
			return err
		}
		err = runFmtStdin(cmd, opts, check, quiet, timer)
	} else {
		err = runFmtPaths(cmd, args, opts, check, quiet, outputFormat, timer)
	}

	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return err
}

func runFmtStdin(cmd *cobra.Command, opts driver.FormatOptions, check, quiet bool, timer *observ.Timer) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("fmt: reading stdin: %w", err)
	}

	end := timer.Begin("format")
	res := driver.FormatData("<stdin>", data, opts)
	end("stdin")

	if res.Err != nil {
		return fmt.Errorf("fmt: %w", res.Err)
	}
	if !quiet {
		printWarnings(os.Stderr, res.Path, res.Warnings)
	}

	// В режиме --check stdin ведёт себя как файлы: ничего не печатаем,
	// несоответствие — ненулевой код выхода.
	if check {
		if res.Changed {
			return fmt.Errorf("fmt: formatting changes required")
		}
		return nil
	}

	_, err = cmd.OutOrStdout().Write(res.Formatted)
	return err
}

func runFmtPaths(cmd *cobra.Command, args []string, base driver.FormatOptions, check, quiet bool, outputFormat string, timer *observ.Timer) error {
	end := timer.Begin("format")
	results, err := formatArgs(cmd, args, base)
	end(fmt.Sprintf("%d files", len(results)))
	if err != nil {
		return err
	}

	var hasErrors bool
	var hasChanges bool

	switch outputFormat {
	case "text":
		if base.Stdout {
			renderFmtStdout(results, quiet, &hasErrors)
			if hasErrors {
				return fmt.Errorf("fmt: failed to format some files")
			}
			return nil
		}
		renderFmtText(results, check, quiet, &hasErrors, &hasChanges)
	case "json":
		if err := renderFmtJSON(cmd.OutOrStdout(), results, check, &hasErrors, &hasChanges); err != nil {
			return err
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

// formatArgs formats each input path under the configuration that governs
// it: pumlfmt.toml ищется вверх от каждого аргумента отдельно, поэтому пути
// из разных проектов в одном вызове получают каждый свои настройки.
func formatArgs(cmd *cobra.Command, args []string, base driver.FormatOptions) ([]driver.FormatResult, error) {
	var results []driver.FormatResult
	seen := make(map[string]struct{})

	for _, arg := range args {
		opts := base
		engineOpts, extensions, err := resolveFormatOptions(cmd, argBaseDir(arg))
		if err != nil {
			return results, err
		}
		opts.Options = engineOpts
		opts.Extensions = extensions

		argResults, err := driver.FormatPaths(cmd.Context(), []string{arg}, opts)
		if err != nil {
			// Пустой аргумент не фатален, пока хоть где-то есть файлы.
			if errors.Is(err, driver.ErrNoInputs) {
				continue
			}
			return results, err
		}
		for _, res := range argResults {
			if _, ok := seen[res.Path]; ok {
				continue
			}
			seen[res.Path] = struct{}{}
			results = append(results, res)
		}
	}

	if len(results) == 0 {
		return nil, driver.ErrNoInputs
	}
	return results, nil
}

func fromStdin(args []string) bool {
	return len(args) == 0 || (len(args) == 1 && args[0] == "-")
}

// resolveFormatOptions merges the pumlfmt.toml governing dir with explicit
// flags. Флаги, заданные пользователем, всегда сильнее файла конфигурации.
func resolveFormatOptions(cmd *cobra.Command, dir string) (format.Options, []string, error) {
	indent, err := cmd.Flags().GetInt("indent")
	if err != nil {
		return format.Options{}, nil, err
	}
	tabs, err := cmd.Flags().GetBool("tabs")
	if err != nil {
		return format.Options{}, nil, err
	}

	opts := format.Options{IndentWidth: indent, UseTabs: tabs}

	cfg, err := project.LoadConfigFor(dir)
	if err != nil {
		return format.Options{}, nil, fmt.Errorf("fmt: %w", err)
	}

	var extensions []string
	if cfg != nil {
		if cfg.Format.Indent != nil && !cmd.Flags().Changed("indent") {
			opts.IndentWidth = *cfg.Format.Indent
		}
		if cfg.Format.Tabs != nil && !cmd.Flags().Changed("tabs") {
			opts.UseTabs = *cfg.Format.Tabs
		}
		extensions = cfg.Files.Extensions
	}
	if opts.IndentWidth < 0 {
		return format.Options{}, nil, fmt.Errorf("fmt: %w", format.ErrInvalidIndentWidth)
	}
	return opts, extensions, nil
}

func argBaseDir(arg string) string {
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return arg
	}
	return filepath.Dir(arg)
}

var warnLabel = color.New(color.FgYellow, color.Bold)

func printWarnings(out io.Writer, path string, warnings []diag.Diagnostic) {
	for _, w := range warnings {
		fmt.Fprintf(out, "%s:%d: %s %s: %s\n",
			path, w.Line, warnLabel.Sprint("warning"), w.Code, w.Message)
	}
}

func renderFmtStdout(results []driver.FormatResult, quiet bool, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if !quiet {
			printWarnings(os.Stderr, res.Path, res.Warnings)
		}
		_, _ = os.Stdout.Write(res.Formatted)
	}
}

func renderFmtText(results []driver.FormatResult, check, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}

		if !quiet {
			printWarnings(os.Stderr, res.Path, res.Warnings)
		}

		if check {
			if res.Changed {
				*hasChanges = true
				if !quiet {
					fmt.Fprintln(os.Stdout, res.Path)
				}
			}
			continue
		}

		if res.Changed && !quiet {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool, hasErrors, hasChanges *bool) error {
	type jsonWarning struct {
		Line    int    `json:"line"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	type jsonResult struct {
		Path     string        `json:"path"`
		Changed  bool          `json:"changed"`
		Error    string        `json:"error,omitempty"`
		CheckRun bool          `json:"check"`
		Warnings []jsonWarning `json:"warnings,omitempty"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
			*hasErrors = true
		}
		if res.Changed {
			*hasChanges = true
		}
		for _, w := range res.Warnings {
			jr.Warnings = append(jr.Warnings, jsonWarning{Line: w.Line, Code: w.Code.String(), Message: w.Message})
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
