package format

import (
	"errors"
	"fmt"
	"strings"

	"pumlfmt/internal/diag"
	"pumlfmt/internal/lexer"
	"pumlfmt/internal/source"
	"pumlfmt/internal/token"
)

// Options control how a document is reindented.
type Options struct {
	// IndentWidth is the number of spaces per nesting level. Zero is legal
	// and renders everything flush left while depth is still tracked.
	// Defaulting (to 4) belongs to the CLI/config layer, not here.
	IndentWidth int
	// UseTabs renders one tab per nesting level instead of spaces.
	UseTabs bool
}

// ErrInvalidIndentWidth is the only configuration error the engine owns.
var ErrInvalidIndentWidth = errors.New("format: indent width must not be negative")

// engine держит состояние одного прохода. Каждый вызов FormatLines получает
// свежий engine, поэтому форматирование реентерабельно.
type engine struct {
	opt      Options
	reporter diag.Reporter

	depth     int
	lastBlank bool
	openAt    []int // номера строк ещё не закрытых блоков
	out       []string
}

// FormatLines reindents a document given as individual lines (no
// terminators) and returns the rewritten lines. The transform is a pure
// single pass: block openers indent the lines that follow, closers outdent
// themselves first, branch keywords stay at the body depth, blank runs
// collapse to a single blank line and never lead or trail the output.
//
// Malformed nesting is never an error: an unmatched closer clamps depth at
// zero and an unclosed opener leaves the tail indented. Both are reported to
// reporter as warnings when one is supplied.
func FormatLines(lines []string, opt Options, reporter diag.Reporter) ([]string, error) {
	if opt.IndentWidth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIndentWidth, opt.IndentWidth)
	}
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	e := engine{
		opt:      opt,
		reporter: reporter,
		out:      make([]string, 0, len(lines)),
	}
	for i, raw := range lines {
		e.feed(i+1, raw)
	}
	return e.finish(), nil
}

// FormatFile reindents a whole document and returns newline-terminated
// bytes. Empty documents (and documents that are nothing but blank lines)
// come back empty.
func FormatFile(sf *source.File, opt Options, reporter diag.Reporter) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	lines, err := FormatLines(sf.Lines(), opt, reporter)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []byte{}, nil
	}
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

func (e *engine) feed(lineNo int, raw string) {
	ln := lexer.Classify(raw)

	switch ln.Kind {
	case token.Blank:
		// Схлопываем серии пустых строк и не даём документу начаться с пустой.
		if e.lastBlank || len(e.out) == 0 {
			return
		}
		e.out = append(e.out, "")
		e.lastBlank = true

	case token.BlockClose:
		if e.depth == 0 {
			e.reporter.Report(diag.FmtUnmatchedClose, diag.SevWarning, lineNo,
				fmt.Sprintf("unmatched %q: no open block, keeping depth at zero", ln.Content))
		} else {
			e.depth--
			e.openAt = e.openAt[:len(e.openAt)-1]
		}
		e.emit(ln.Content)

	case token.BlockContinuation:
		// Ветка рисуется на глубине тела блока, на уровень глубже его границ.
		e.emit(ln.Content)

	case token.BlockOpen:
		e.emit(ln.Content)
		e.depth++
		e.openAt = append(e.openAt, lineNo)

	default:
		e.emit(ln.Content)
	}
}

func (e *engine) finish() []string {
	for i := len(e.openAt) - 1; i >= 0; i-- {
		e.reporter.Report(diag.FmtUnclosedBlock, diag.SevWarning, e.openAt[i],
			"block opened here is never closed")
	}
	// Хвостовая пустая строка не выводится.
	if n := len(e.out); n > 0 && e.out[n-1] == "" {
		e.out = e.out[:n-1]
	}
	return e.out
}

func (e *engine) emit(content string) {
	e.out = append(e.out, e.indent()+content)
	e.lastBlank = false
}

func (e *engine) indent() string {
	if e.depth == 0 {
		return ""
	}
	if e.opt.UseTabs {
		return strings.Repeat("\t", e.depth)
	}
	return strings.Repeat(" ", e.depth*e.opt.IndentWidth)
}
