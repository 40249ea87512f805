package token

var keywords = map[string]LineKind{
	// Block openers (sequence and activity diagrams, grouping constructs).
	"alt":       BlockOpen,
	"opt":       BlockOpen,
	"loop":      BlockOpen,
	"par":       BlockOpen,
	"group":     BlockOpen,
	"box":       BlockOpen,
	"critical":  BlockOpen,
	"if":        BlockOpen,
	"while":     BlockOpen,
	"fork":      BlockOpen,
	"repeat":    BlockOpen,
	"package":   BlockOpen,
	"namespace": BlockOpen,
	"note":      BlockOpen,

	// Block closers.
	"end":          BlockClose,
	"endif":        BlockClose,
	"endwhile":     BlockClose,
	"endfork":      BlockClose,
	"endgroup":     BlockClose,
	"endrepeat":    BlockClose,
	"endpackage":   BlockClose,
	"endnamespace": BlockClose,

	// Branches within an open block.
	"else":   BlockContinuation,
	"elseif": BlockContinuation,
}

// LookupKeyword возвращает вид строки и bool если первое слово — ключевое.
// Слово должно быть уже приведено к lowercase.
func LookupKeyword(word string) (LineKind, bool) {
	k, ok := keywords[word]
	return k, ok
}
