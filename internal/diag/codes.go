package diag

import "fmt"

// Code identifies the kind of a diagnostic, namespaced by pipeline stage.
type Code uint16

const (
	// UnknownCode is the zero value, used only for unconstructed diagnostics.
	UnknownCode Code = 0

	// Lexical diagnostics.
	LexInvalidChar   Code = 1001
	LexUnexpectedEOF Code = 1002

	// Syntax diagnostics.
	SynExpectedKind        Code = 2001
	SynDuplicateDefinition Code = 2002
	SynUnclosedDelimiter   Code = 2003
	SynUnexpectedEOF       Code = 2004

	// Type inference diagnostics.
	TypeVariableNotFound Code = 3001
	TypeMismatch         Code = 3002

	// Codegen diagnostics.
	CodegenUnsupportedType     Code = 4001
	CodegenBadBinaryOperand    Code = 4002
	CodegenUnsupportedLowering Code = 4003

	// Project / IO diagnostics.
	ProjMissingFile     Code = 5001
	ProjInvalidManifest Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:                "unknown diagnostic",
	LexInvalidChar:             "invalid character in source",
	LexUnexpectedEOF:           "unexpected end of file while scanning a token",
	SynExpectedKind:            "expected a different token kind",
	SynDuplicateDefinition:     "duplicate top-level definition name",
	SynUnclosedDelimiter:       "unclosed delimiter",
	SynUnexpectedEOF:           "unexpected end of token stream",
	TypeVariableNotFound:       "identifier is not bound in any enclosing scope",
	TypeMismatch:               "operand types are not compatible",
	CodegenUnsupportedType:     "type cannot be lowered to an LLVM type",
	CodegenBadBinaryOperand:    "binary operator applied to an unsupported operand type",
	CodegenUnsupportedLowering: "expression cannot be lowered in this position",
	ProjMissingFile:            "referenced source file does not exist",
	ProjInvalidManifest:        "project manifest failed validation",
}

// ID returns the stage-prefixed identifier of the code, e.g. "LEX1001".
func (c Code) ID() string {
	switch n := int(c); {
	case n >= 1000 && n < 2000:
		return fmt.Sprintf("LEX%04d", n)
	case n >= 2000 && n < 3000:
		return fmt.Sprintf("SYN%04d", n)
	case n >= 3000 && n < 4000:
		return fmt.Sprintf("TYP%04d", n)
	case n >= 4000 && n < 5000:
		return fmt.Sprintf("GEN%04d", n)
	case n >= 5000 && n < 6000:
		return fmt.Sprintf("PRJ%04d", n)
	default:
		return "E0000"
	}
}

// Title returns the human-readable description of the code.
func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
