package source

// FileID is an opaque handle into a FileSet, assigned in load order.
type FileID uint32

// FileFlags records how a file's bytes were obtained or normalized.
type FileFlags uint8

const (
	// FileVirtual marks a file that was added from memory rather than
	// read from disk (a CLI's stdin input, a test fixture).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks a file whose leading UTF-8 byte-order mark was
	// stripped on load.
	FileHadBOM
	// FileNormalizedCRLF marks a file whose line endings were rewritten
	// from CRLF to LF on load.
	FileNormalizedCRLF
)

// File is the content and metadata of one source file tracked by a
// FileSet: its path, its normalized bytes, a byte-offset line index for
// Span-to-LineCol resolution, and a content hash for cache keys.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based human-readable position, the form diagnostics are
// rendered at even though Span tracks raw byte offsets internally.
type LineCol struct {
	Line uint32
	Col  uint32
}
