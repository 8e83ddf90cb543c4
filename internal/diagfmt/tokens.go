package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"lotl/internal/source"
	"lotl/internal/token"
)

// TokenOutput is the JSON-serializable shape of a single token.Tree,
// flattened: nested groups print their trailing EndOfStream like every
// other stream but carry no recursive payload of their own in this form.
type TokenOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
}

// FormatTokensPretty walks stream depth-first, printing one line per
// token tree with its kind, text (if any), and resolved line:col range.
// Group trees recurse one indent level deeper.
func FormatTokensPretty(w io.Writer, stream *token.Stream, fs *source.FileSet) error {
	return formatTreesPretty(w, stream, fs, 0)
}

func formatTreesPretty(w io.Writer, stream *token.Stream, fs *source.FileSet, depth int) error {
	indent := ""
	for range depth {
		indent += "  "
	}
	for i, tok := range stream.Trees {
		start, end := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%s%3d: %-12s", indent, i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			if _, err := fmt.Fprintf(w, " %q", tok.Text); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, " at %d:%d-%d:%d\n", start.Line, start.Col, end.Line, end.Col); err != nil {
			return err
		}
		if tok.Group != nil {
			if err := formatTreesPretty(w, tok.Group, fs, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// TokenOutputsJSON flattens stream (including nested groups, inline, in
// stream order) to a slice suitable for json.Marshal.
func TokenOutputsJSON(stream *token.Stream) []TokenOutput {
	var out []TokenOutput
	var walk func(*token.Stream)
	walk = func(s *token.Stream) {
		for _, tok := range s.Trees {
			out = append(out, TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span})
			if tok.Group != nil {
				walk(tok.Group)
			}
		}
	}
	walk(stream)
	return out
}

// FormatTokensJSON writes stream as an indented JSON array to w.
func FormatTokensJSON(w io.Writer, stream *token.Stream) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(TokenOutputsJSON(stream))
}
