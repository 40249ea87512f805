package lexer

import (
	"strings"
	"unicode"

	"pumlfmt/internal/token"
)

// Line is the classification of one raw input line.
type Line struct {
	Kind    token.LineKind
	Content string
}

// Classify inspects one raw line and returns its kind along with the
// whitespace-normalized content. It never fails: anything unrecognized is
// Plain and passes through untouched apart from outer trimming.
func Classify(raw string) Line {
	stripped := strings.TrimSpace(raw)
	if stripped == "" {
		return Line{Kind: token.Blank, Content: ""}
	}

	// Комментарии не трогаем: ни классификации, ни нормализации символов.
	if isComment(stripped) {
		return Line{Kind: token.Plain, Content: stripped}
	}

	content := NormalizeSymbols(stripped)
	return Line{Kind: classifyContent(content), Content: content}
}

func classifyContent(content string) token.LineKind {
	// Маркеры документа (@startuml/@enduml и родственные) остаются на
	// нулевой глубине и не считаются блоками.
	if content[0] == '@' {
		return token.Plain
	}

	word, rest := firstWord(content)
	lower := strings.ToLower(word)

	// Двухсловные формы, которые ломают общее правило "первого слова".
	switch lower {
	case "fork":
		// "fork again" — ветка внутри fork-блока, а не новый блок.
		if nextWordIs(rest, "again") {
			return token.BlockContinuation
		}
	case "repeat":
		// "repeat while (...)" закрывает repeat-блок activity-диаграммы.
		if nextWordIs(rest, "while") {
			return token.BlockClose
		}
	case "note":
		// Однострочный "note left: text" блоком не является; блочная форма
		// "note left" закрывается через "end note".
		if strings.ContainsRune(rest, ':') {
			return token.Plain
		}
	}

	if kind, ok := token.LookupKeyword(lower); ok {
		return kind
	}

	// Скобочные блоки: "class Foo {" ... "}".
	if strings.HasSuffix(content, "{") {
		return token.BlockOpen
	}
	if strings.HasSuffix(content, "}") {
		return token.BlockClose
	}

	return token.Plain
}

// isComment reports whether the trimmed line is a PlantUML comment:
// a single-quote line comment or the /' ... '/ block comment delimiters.
func isComment(stripped string) bool {
	if stripped[0] == '\'' {
		return true
	}
	return strings.HasPrefix(stripped, "/'") || strings.HasSuffix(stripped, "'/")
}

// firstWord splits the trimmed line into its leading run of letters and the
// remainder. Cutting at the first non-letter keeps forms like "if(x)" or
// "else:" classifiable by keyword.
func firstWord(s string) (word, rest string) {
	cut := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if cut < 0 {
		return s, ""
	}
	return s[:cut], strings.TrimLeftFunc(s[cut:], unicode.IsSpace)
}

func nextWordIs(rest, want string) bool {
	word, _ := firstWord(rest)
	return strings.EqualFold(word, want)
}
