package source

import (
	"path/filepath"
	"slices"
	"sort"
)

// normalizeCRLF rewrites every "\r\n" to "\n", leaving lone "\r" bytes
// untouched. It reports whether any replacement happened so FileSet.Load
// can record FileNormalizedCRLF.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	for i := 0; i < len(content); {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
			continue
		}
		out = append(out, content[i])
		i++
	}
	return out, changed
}

// removeBOM strips a leading UTF-8 byte-order mark, if present.
func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

// buildLineIndex records the byte offset of every '\n' in content. Line 1
// always starts at offset 0; line k (k > 1) starts at LineIdx[k-2] + 1.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol resolves a byte offset to a 1-based line and column using a
// line index built by buildLineIndex, binary-searching for the newline
// that opens the offset's line.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// i is the index of the first newline strictly after off.
	i := sort.Search(len(lineIdx), func(k int) bool { return lineIdx[k] > off })
	if i == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	last := lineIdx[i-1]
	if off == last {
		// off sits on the newline itself: treat it as the end of the
		// preceding line rather than the start of the next one.
		var start uint32
		if i-1 == 0 {
			start = 0
		} else {
			start = lineIdx[i-2] + 1
		}
		return LineCol{Line: uint32(i), Col: last - start + 1}
	}

	start := last + 1
	return LineCol{Line: uint32(i + 1), Col: off - start + 1}
}

// normalizePath gives paths a single canonical form so the same file
// always indexes and compares the same way across platforms.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath resolves path to an absolute, normalized form.
func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, err
	}
	return normalizePath(abs), nil
}

// RelativePath resolves path relative to base, falling back to the
// normalized absolute path if either cannot be resolved.
func RelativePath(path, base string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, err
	}

	absBase, err := filepath.Abs(base)
	if err != nil {
		return normalizePath(absPath), nil
	}

	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns path's final component, normalized.
func BaseName(path string) string {
	return normalizePath(filepath.Base(path))
}
