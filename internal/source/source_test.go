package source_test

import (
	"testing"

	"lotl/internal/source"
)

func TestSpanCoverWidensToBothSpans(t *testing.T) {
	a := source.Span{File: 0, Start: 10, End: 20}
	b := source.Span{File: 0, Start: 5, End: 15}
	got := a.Cover(b)
	if got.Start != 5 || got.End != 20 {
		t.Fatalf("expected [5,20), got [%d,%d)", got.Start, got.End)
	}
}

func TestSpanCoverIgnoresOtherFiles(t *testing.T) {
	a := source.Span{File: 0, Start: 10, End: 20}
	b := source.Span{File: 1, Start: 0, End: 100}
	got := a.Cover(b)
	if got != a {
		t.Fatalf("cover across files should return the receiver unchanged, got %+v", got)
	}
}

func TestSpanEmptyAndLen(t *testing.T) {
	s := source.Span{Start: 3, End: 3}
	if !s.Empty() {
		t.Fatal("expected zero-width span to be Empty")
	}
	s.End = 8
	if s.Empty() {
		t.Fatal("did not expect a widened span to be Empty")
	}
	if s.Len() != 5 {
		t.Fatalf("expected length 5, got %d", s.Len())
	}
}

func TestFileSetAddVirtualResolvesLineCol(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lotl", []byte("abc\ndef\nghi"))

	// offset 5 is the 'e' on the second line (1-based line 2, col 2).
	start, end := fs.Resolve(source.Span{File: id, Start: 5, End: 6})
	if start.Line != 2 || start.Col != 2 {
		t.Fatalf("expected line 2 col 2, got line %d col %d", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 3 {
		t.Fatalf("expected end line 2 col 3, got line %d col %d", end.Line, end.Col)
	}
}

func TestFileSetGetLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lotl", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(2); got != "second" {
		t.Fatalf("expected %q, got %q", "second", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("expected %q, got %q", "third", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("expected empty string past the last line, got %q", got)
	}
}

func TestFileFormatPathModes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("pkg/main.lotl", []byte(""))
	f := fs.Get(id)

	if got := f.FormatPath("basename", ""); got != "main.lotl" {
		t.Fatalf("expected basename main.lotl, got %q", got)
	}
	// A short, already-relative path passes through unchanged under "auto".
	if got := f.FormatPath("auto", ""); got != "pkg/main.lotl" {
		t.Fatalf("expected pkg/main.lotl under auto mode, got %q", got)
	}
}

func TestFileSetAddAlwaysMintsAFreshID(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.AddVirtual("same.lotl", []byte("1"))
	b := fs.AddVirtual("same.lotl", []byte("2"))
	if a == b {
		t.Fatal("expected distinct FileIDs for two Add calls on the same path")
	}
	if string(fs.Get(b).Content) != "2" {
		t.Fatalf("expected the second file's content to be tracked independently")
	}
}
