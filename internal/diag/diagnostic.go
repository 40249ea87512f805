package diag

// Diagnostic describes one formatter finding, anchored to a source line.
type Diagnostic struct {
	Severity Severity
	Code     Code
	// Line is 1-based; 0 means the whole document.
	Line    int
	Message string
}
