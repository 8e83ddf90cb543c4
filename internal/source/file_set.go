package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// FileSet owns every source file loaded during one compilation and
// resolves Spans back to line/column positions for diagnostics.
type FileSet struct {
	files []File
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{files: make([]File, 0)}
}

// BaseDir returns the directory relative paths are rendered against:
// the process's working directory.
func (fileSet *FileSet) BaseDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

// Add registers content under path and returns its FileID. Every call
// allocates a fresh ID, even for a path already present in the set.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	id, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("source: file set overflow: %w", err))
	}
	fileSet.files = append(fileSet.files, File{
		ID:      FileID(id),
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return FileID(id)
}

// Load reads path from disk, strips a leading BOM, normalizes CRLF line
// endings, NFC-normalizes the text, and adds the result.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	content = norm.NFC.Bytes(content)

	var flags FileFlags
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds content under name without touching disk, the path a
// CLI's stdin input or a test fixture takes.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file registered under id. id must have come from this
// FileSet; the pipeline never hands out a FileID it didn't mint.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Resolve converts span's start and end offsets to line/column
// positions within its file.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// GetLine returns the 1-based line lineNum of f's content, or "" if the
// file has fewer lines than that.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("source: line index overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("source: content length overflow: %w", err))
	}

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}
	return string(f.Content[start:end])
}

// FormatPath renders f's path per mode ("absolute", "relative",
// "basename", or "auto", which keeps short/relative paths as-is and
// shortens long absolute ones to their basename). baseDir is only
// consulted for "relative".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path

	case "basename":
		return BaseName(f.Path)

	case "auto":
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return BaseName(f.Path)

	default:
		return f.Path
	}
}
