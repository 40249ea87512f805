package lexer

import (
	"strings"
)

// arrowBytes are the characters arrow operators are built from.
const arrowBytes = "-.<>"

// NormalizeSymbols collapses the whitespace around arrow operators and around
// the label-separator colon to exactly one space on each side. Quoted text is
// left untouched, as is everything else about the line: only spacing adjacent
// to the recognized symbols changes.
//
// An arrow is a maximal run of '-', '.', '<', '>' of length two or more that
// contains at least one '-' or '.'. The length rule keeps "<<Interface>>"
// stereotypes out; the dash/dot rule keeps them out even when adjacent to
// other symbols. Only the first unquoted colon is treated as the label
// separator — later colons (URLs, "::" scoping) stay as written.
func NormalizeSymbols(s string) string {
	out := make([]byte, 0, len(s)+8)
	inQuote := false
	colonSeen := false

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '"':
			inQuote = !inQuote
			out = append(out, c)
			i++

		case !inQuote && isArrowByte(c):
			j := i
			for j < len(s) && isArrowByte(s[j]) {
				j++
			}
			run := s[i:j]
			if len(run) >= 2 && strings.ContainsAny(run, "-.") {
				out, i = appendSpaced(out, run, s, j)
			} else {
				out = append(out, run...)
				i = j
			}

		case !inQuote && c == ':' && !colonSeen:
			if i+1 < len(s) && s[i+1] == ':' {
				// "::" — разделитель областей видимости, не метка.
				out = append(out, ':', ':')
				i += 2
				continue
			}
			colonSeen = true
			out, i = appendSpaced(out, ":", s, i+1)

		default:
			out = append(out, c)
			i++
		}
	}

	return string(out)
}

// appendSpaced writes tok preceded by exactly one space (unless at the start
// of the line) and consumes any whitespace that follows it in the input,
// leaving exactly one space if more content remains.
func appendSpaced(out []byte, tok string, s string, j int) ([]byte, int) {
	for len(out) > 0 && isLineSpace(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	if len(out) > 0 {
		out = append(out, ' ')
	}
	out = append(out, tok...)

	for j < len(s) && isLineSpace(s[j]) {
		j++
	}
	if j < len(s) {
		out = append(out, ' ')
	}
	return out, j
}

func isArrowByte(c byte) bool {
	return strings.IndexByte(arrowBytes, c) >= 0
}

func isLineSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
