package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"lotl/internal/diag"
	"lotl/internal/diagfmt"
	"lotl/internal/lexer"
	"lotl/internal/parser"
	"lotl/internal/source"
)

func TestPrettyRendersPathAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.lotl", []byte("1 @ 2"))

	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexInvalidChar,
		Message:  "unexpected character",
		Primary:  source.Span{File: id, Start: 2, End: 3},
	}
	bag := diag.NewBag(4)
	bag.Add(&d)
	bag.Sort()

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Color: false, Context: 1, ShowNotes: true})

	out := buf.String()
	if !strings.Contains(out, "bad.lotl:1:3") {
		t.Errorf("expected path:line:col prefix, got %q", out)
	}
	if !strings.Contains(out, "LEX1001") {
		t.Errorf("expected diagnostic code, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected a caret underline, got %q", out)
	}
}

func TestPrettyRendersNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.lotl", []byte("x"))
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpectedKind,
		Message:  "expected a semicolon",
		Primary:  source.Span{File: id, Start: 0, End: 1},
	}
	d = d.WithHelp(source.Span{File: id, Start: 0, End: 1}, "insert a `;` here")
	bag := diag.NewBag(4)
	bag.Add(&d)
	bag.Sort()

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})
	if !strings.Contains(buf.String(), "help:") {
		t.Errorf("expected a help note, got %q", buf.String())
	}
}

func TestFormatTokensPrettyIndentsNestedGroups(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lotl", []byte("foo(1)"))
	lexed := lexer.Lex(fs.Get(id))
	if len(lexed.Diagnostics) != 0 {
		t.Fatalf("unexpected lex diagnostics: %v", lexed.Diagnostics)
	}

	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, lexed.Value, fs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "identifier") {
		t.Errorf("expected an identifier token line, got %q", out)
	}
	if !strings.Contains(out, "  1:") {
		t.Errorf("expected an indented nested token, got %q", out)
	}
}

func TestFormatTokensJSONFlattensGroups(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lotl", []byte("foo(1)"))
	lexed := lexer.Lex(fs.Get(id))

	var buf bytes.Buffer
	if err := diagfmt.FormatTokensJSON(&buf, lexed.Value); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"kind"`) {
		t.Errorf("expected JSON token fields, got %q", buf.String())
	}
}

func TestFormatASTPrintsFunctionSignatureAndBody(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lotl", []byte("func start() -> i64 { return 1 + 2; }"))
	lexed := lexer.Lex(fs.Get(id))
	if len(lexed.Diagnostics) != 0 {
		t.Fatalf("unexpected lex diagnostics: %v", lexed.Diagnostics)
	}
	parsed := parser.Parse(lexed.Value)
	if len(parsed.Diagnostics) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", parsed.Diagnostics)
	}

	var buf bytes.Buffer
	if err := diagfmt.FormatAST(&buf, parsed.Value.Definitions, parsed.Value.Exprs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "func start() -> int64") {
		t.Errorf("expected function signature line, got %q", out)
	}
	if !strings.Contains(out, "Binary") {
		t.Errorf("expected a Binary node for the return expression, got %q", out)
	}
}
