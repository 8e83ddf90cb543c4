// Package diagfmt renders diagnostics, tokens, and the parsed AST to
// human-readable and JSON text for cmd/lotl.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lotl/internal/diag"
	"lotl/internal/source"
)

// visualWidthUpTo returns the on-screen column width of s up to byteCol
// (1-based), accounting for tabs and wide Unicode runes.
func visualWidthUpTo(s string, byteCol uint32, tabWidth int) int {
	if byteCol <= 1 {
		return 0
	}
	bytePos, visualPos := 0, 0
	for _, r := range s {
		if bytePos >= int(byteCol-1) {
			break
		}
		if r == '\t' {
			visualPos = (visualPos + tabWidth) / tabWidth * tabWidth
		} else {
			visualPos += runewidth.RuneWidth(r)
		}
		bytePos += len(string(r))
	}
	return visualPos
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// Pretty writes bag's diagnostics (expected pre-sorted via bag.Sort()) as
// `path:line:col: SEVERITY CODE: message`, followed by a source snippet
// with a caret/tilde underline under the primary span, and any notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow, color.Bold)
	infoColor := color.New(color.FgCyan, color.Bold)
	pathColor := color.New(color.FgWhite, color.Bold)
	codeColor := color.New(color.FgMagenta)
	lineNumColor := color.New(color.FgBlue)
	underlineColor := color.New(color.FgRed, color.Bold)

	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !opts.Color

	context := opts.Context
	if context <= 0 {
		context = 1
	}

	for idx, d := range bag.Items() {
		if idx > 0 {
			fmt.Fprintln(w) //nolint:errcheck
		}

		lineColStart, lineColEnd := fs.Resolve(d.Primary)
		f := fs.Get(d.Primary.File)
		displayPath := formatPath(f, fs, opts.PathMode)

		var sevColored string
		switch d.Severity {
		case diag.SevError:
			sevColored = errorColor.Sprint(d.Severity.String())
		case diag.SevWarning:
			sevColored = warningColor.Sprint(d.Severity.String())
		default:
			sevColored = infoColor.Sprint(d.Severity.String())
		}

		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", //nolint:errcheck
			pathColor.Sprint(displayPath), lineColStart.Line, lineColStart.Col,
			sevColored, codeColor.Sprint(d.Code.ID()), d.Message)

		totalLines, err := safecast.Conv[uint32](len(f.LineIdx))
		if err != nil {
			panic(fmt.Errorf("total lines overflow: %w", err))
		}
		totalLines++

		startLine := uint32(1)
		if lineColStart.Line > uint32(context) {
			startLine = lineColStart.Line - uint32(context)
		}
		endLine := lineColStart.Line + uint32(context)
		if endLine > totalLines {
			endLine = totalLines
		}
		if startLine > 1 {
			fmt.Fprintln(w, "...") //nolint:errcheck
		}

		const tabWidth = 8
		lineNumWidth := max(len(fmt.Sprintf("%d", endLine)), 3)

		for lineNum := startLine; lineNum <= endLine; lineNum++ {
			lineText := f.GetLine(lineNum)
			gutter := fmt.Sprintf("%s | ", lineNumColor.Sprint(fmt.Sprintf("%*d", lineNumWidth, lineNum)))
			gutterLen := lineNumWidth + 3
			fmt.Fprintf(w, "%s%s\n", gutter, lineText) //nolint:errcheck

			if lineNum != lineColStart.Line {
				continue
			}
			startCol, endCol := lineColStart.Col, lineColEnd.Col
			if lineColEnd.Line > lineColStart.Line {
				lenLineText, convErr := safecast.Conv[uint32](len(lineText))
				if convErr != nil {
					panic(fmt.Errorf("line length overflow: %w", convErr))
				}
				endCol = lenLineText + 1
			}
			visualStart := visualWidthUpTo(lineText, startCol, tabWidth)
			visualEnd := visualWidthUpTo(lineText, endCol, tabWidth)

			var underline strings.Builder
			for range gutterLen {
				underline.WriteByte(' ')
			}
			for range visualStart {
				underline.WriteByte(' ')
			}
			spanLen := visualEnd - visualStart
			if spanLen <= 0 {
				underline.WriteByte('^')
			} else {
				for i := range spanLen {
					if i == spanLen-1 {
						underline.WriteByte('^')
					} else {
						underline.WriteByte('~')
					}
				}
			}
			fmt.Fprintln(w, underlineColor.Sprint(underline.String())) //nolint:errcheck
		}
		if endLine < totalLines {
			fmt.Fprintln(w, "...") //nolint:errcheck
		}

		if opts.ShowNotes {
			for _, note := range d.Notes {
				nf := fs.Get(note.Span.File)
				notePath := formatPath(nf, fs, opts.PathMode)
				noteStart, _ := fs.Resolve(note.Span)
				label := "note"
				if note.Kind == diag.NoteKindHelp {
					label = "help"
				}
				fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", //nolint:errcheck
					infoColor.Sprint(label), pathColor.Sprint(notePath), noteStart.Line, noteStart.Col, note.Msg)
			}
		}
	}
}
