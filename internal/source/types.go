package source

import "strings"

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
// Content is normalized to LF line endings with no BOM.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags
}

// Lines splits the normalized content into individual lines without
// terminators. A trailing newline does not produce an extra empty line;
// empty content yields no lines at all.
func (f *File) Lines() []string {
	if len(f.Content) == 0 {
		return nil
	}
	s := string(f.Content)
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
