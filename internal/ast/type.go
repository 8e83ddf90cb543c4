package ast

// TypeKind discriminates the variants of AstType.
type TypeKind uint8

const (
	Int32 TypeKind = iota
	Int64
	Float32
	Float64
	Void
	// TypeVar names one of the function's generic type parameters;
	// inference carries it through without solving it.
	TypeVar
	// Unresolved names a type the parser saw spelled out in source but
	// could not itself resolve to a builtin (an unknown type name).
	Unresolved
)

func (k TypeKind) String() string {
	switch k {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Void:
		return "void"
	case TypeVar:
		return "typevar"
	case Unresolved:
		return "unresolved"
	default:
		return "invalid"
	}
}

// AstType is a type as written (or inferred) in source. Name is only
// meaningful for TypeVar and Unresolved.
type AstType struct {
	Kind TypeKind
	Name string
}

// IsNumeric reports whether the type participates in arithmetic.
func (t AstType) IsNumeric() bool {
	switch t.Kind {
	case Int32, Int64, Float32, Float64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the type is one of the floating-point kinds.
func (t AstType) IsFloat() bool {
	return t.Kind == Float32 || t.Kind == Float64
}

func (t AstType) String() string {
	if t.Kind == TypeVar || t.Kind == Unresolved {
		return t.Name
	}
	return t.Kind.String()
}
