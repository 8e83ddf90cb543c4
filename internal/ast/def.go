package ast

// DefinitionKind discriminates the two shapes an AstDefinition can take.
type DefinitionKind uint8

const (
	DefFunction DefinitionKind = iota
	DefNamespace
)

// FunctionDef is the Function variant of AstDefinition. Parameters holds
// plain AstType values — a dedicated AstParameter shape was considered
// and dropped, see the design notes; the parser skips the parameter
// group's contents and always leaves Parameters empty. HasBody
// distinguishes a declaration (signature only, no body) from a function
// with an empty body; Statements is nil in both of those cases.
type FunctionDef struct {
	Parameters []AstType
	Generics   []string
	Returns    AstType
	Statements []ExprID
	HasBody    bool
}

// NamespaceDef is the Namespace variant of AstDefinition: a named
// grouping of further definitions.
type NamespaceDef struct {
	Members []AstDefinition
}

// AstDefinition is a top-level item: a function or a namespace. Its ID
// is seeded from Name (see NewDefinitionID), so two definitions sharing
// a name collide on ID and the parser reports that as
// SynDuplicateDefinition rather than silently shadowing one.
type AstDefinition struct {
	ID          DefinitionID
	Name        string
	Kind        DefinitionKind
	Annotations []string

	Function  *FunctionDef
	Namespace *NamespaceDef
}

func (d AstDefinition) NodeID() ID { return ID(d.ID) }
