package token

// LineKind is the category of a single source line.
type LineKind uint8

const (
	// Plain is any line that does not affect block nesting.
	Plain LineKind = iota
	// Blank is a line that is empty after trimming.
	Blank
	// BlockOpen starts a nested block (alt, loop, group, trailing '{', ...).
	BlockOpen
	// BlockClose ends a nested block (end, endif, trailing '}', ...).
	BlockClose
	// BlockContinuation marks a branch inside the current block (else, elseif).
	BlockContinuation
)

func (k LineKind) String() string {
	switch k {
	case Plain:
		return "Plain"
	case Blank:
		return "Blank"
	case BlockOpen:
		return "BlockOpen"
	case BlockClose:
		return "BlockClose"
	case BlockContinuation:
		return "BlockContinuation"
	}
	return "Unknown"
}
