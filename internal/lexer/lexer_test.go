package lexer_test

import (
	"testing"

	"lotl/internal/diag"
	"lotl/internal/lexer"
	"lotl/internal/source"
	"lotl/internal/token"
)

func lexString(t *testing.T, content string) (*token.Stream, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lotl", []byte(content))
	res := lexer.Lex(fs.Get(id))
	return res.Value, res.Diagnostics
}

// S1: "1+ 2 -3 *4/ 5" lexes to Numeric/Plus/Numeric/Minus/Numeric/Star/
// Numeric/Slash/Numeric with no diagnostics.
func TestScenarioArithmeticRun(t *testing.T) {
	stream, diags := lexString(t, "1+ 2 -3 *4/ 5")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}

	want := []token.Kind{
		token.Numeric, token.Plus, token.Numeric, token.Minus,
		token.Numeric, token.Star, token.Numeric, token.Slash,
		token.Numeric, token.EndOfStream,
	}
	if stream.Len() != len(want) {
		t.Fatalf("expected %d trees, got %d", len(want), stream.Len())
	}
	for i, k := range want {
		if got := stream.At(i).Kind; got != k {
			t.Errorf("tree %d: expected kind %v, got %v", i, k, got)
		}
	}

	wantText := []string{"1", "", "2", "", "3", "", "4", "", "5", ""}
	for i, text := range wantText {
		if text == "" {
			continue
		}
		if got := stream.At(i).Text; got != text {
			t.Errorf("tree %d: expected text %q, got %q", i, text, got)
		}
	}
}

// S2: "{ hello" never finds its closing brace: the outer stream holds
// exactly the Braces tree and the terminating EndOfStream, and exactly one
// diagnostic reports the unclosed delimiter.
func TestScenarioUnclosedBrace(t *testing.T) {
	stream, diags := lexString(t, "{ hello")

	if stream.Len() != 2 {
		t.Fatalf("expected outer stream of length 2, got %d", stream.Len())
	}
	if stream.At(0).Kind != token.Braces {
		t.Fatalf("expected first tree to be Braces, got %v", stream.At(0).Kind)
	}
	if stream.At(1).Kind != token.EndOfStream {
		t.Fatalf("expected second tree to be EndOfStream, got %v", stream.At(1).Kind)
	}

	errCount := 0
	for _, d := range diags {
		if d.Severity == diag.SevError {
			errCount++
		}
		if d.Code != diag.LexUnexpectedEOF {
			t.Errorf("expected LexUnexpectedEOF, got %v", d.Code)
		}
	}
	if errCount != 1 {
		t.Fatalf("expected exactly 1 error diagnostic, got %d", errCount)
	}

	inner := stream.At(0).Group
	if inner == nil {
		t.Fatal("expected the unclosed brace to still carry its (partial) group")
	}
	if inner.Len() != 2 {
		t.Fatalf("expected inner stream [Ident, EndOfStream], got len %d", inner.Len())
	}
	if inner.At(0).Kind != token.Ident || inner.At(0).Text != "hello" {
		t.Errorf("expected inner tree 0 to be Ident(\"hello\"), got %v %q", inner.At(0).Kind, inner.At(0).Text)
	}
}

// Invariant 1: lexing always terminates and every stream (outer and
// nested) ends with exactly one EndOfStream tree.
func TestInvariantExactlyOneEndOfStreamPerLevel(t *testing.T) {
	stream, _ := lexString(t, "func main() { let x = (1 + 2) }")

	var walk func(s *token.Stream)
	walk = func(s *token.Stream) {
		if s.Len() == 0 {
			t.Fatal("stream must not be empty, EndOfStream is always appended")
		}
		count := 0
		for i := 0; i < s.Len(); i++ {
			tr := s.At(i)
			if tr.Kind == token.EndOfStream {
				count++
				if i != s.Len()-1 {
					t.Errorf("EndOfStream must be the final tree, found at index %d of %d", i, s.Len())
				}
			}
			if tr.Group != nil {
				walk(tr.Group)
			}
		}
		if count != 1 {
			t.Errorf("expected exactly one EndOfStream, found %d", count)
		}
	}
	walk(stream)
}

// Invariant 2: every span satisfies 0 <= start <= end <= len(contents).
func TestInvariantSpanBounds(t *testing.T) {
	content := "func main() { let x = (1 + 2) }"
	stream, _ := lexString(t, content)

	var walk func(s *token.Stream)
	walk = func(s *token.Stream) {
		for i := 0; i < s.Len(); i++ {
			tr := s.At(i)
			if tr.Span.Start > tr.Span.End {
				t.Errorf("tree %d: span start %d > end %d", i, tr.Span.Start, tr.Span.End)
			}
			if int(tr.Span.End) > len(content) {
				t.Errorf("tree %d: span end %d exceeds content length %d", i, tr.Span.End, len(content))
			}
			if tr.Group != nil {
				walk(tr.Group)
			}
		}
	}
	walk(stream)
}

func TestArrowVersusMinus(t *testing.T) {
	stream, diags := lexString(t, "a -> b - c")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	want := []token.Kind{token.Ident, token.Arrow, token.Ident, token.Minus, token.Ident, token.EndOfStream}
	if stream.Len() != len(want) {
		t.Fatalf("expected %d trees, got %d", len(want), stream.Len())
	}
	for i, k := range want {
		if got := stream.At(i).Kind; got != k {
			t.Errorf("tree %d: expected %v, got %v", i, k, got)
		}
	}
}

func TestInvalidCharacterIsSkippedAndDiagnosed(t *testing.T) {
	stream, diags := lexString(t, "a ` b")
	if stream.Len() != 3 {
		t.Fatalf("expected [Ident, Ident, EndOfStream], got len %d", stream.Len())
	}
	if stream.At(0).Kind != token.Ident || stream.At(1).Kind != token.Ident {
		t.Fatalf("expected the backtick to be skipped rather than emitted as a tree")
	}
	if len(diags) != 1 || diags[0].Code != diag.LexInvalidChar {
		t.Fatalf("expected exactly one LexInvalidChar diagnostic, got %v", diags)
	}
}

func TestNestedGroupsLexRecursively(t *testing.T) {
	stream, diags := lexString(t, "[(1)]")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if stream.Len() != 2 || stream.At(0).Kind != token.Brackets {
		t.Fatalf("expected a single Brackets tree, got %+v", stream)
	}
	paren := stream.At(0).Group.At(0)
	if paren.Kind != token.Parenthesis {
		t.Fatalf("expected nested Parenthesis tree, got %v", paren.Kind)
	}
	num := paren.Group.At(0)
	if num.Kind != token.Numeric || num.Text != "1" {
		t.Fatalf("expected innermost Numeric(\"1\"), got %v %q", num.Kind, num.Text)
	}
}
