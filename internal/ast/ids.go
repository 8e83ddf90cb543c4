package ast

import "github.com/google/uuid"

// ID is the common representation behind every opaque AST identifier.
// Expressions and statements get a fresh ID on every creation; top-level
// definitions get one deterministically derived from their name, so two
// modules referring to the same definition by name agree on its ID
// without having to communicate.
type ID = uuid.UUID

// ExprID identifies an AstExpr. Always a pure (fresh) tag.
type ExprID ID

// DefinitionID identifies an AstDefinition. Always a seeded tag, derived
// from the definition's name.
type DefinitionID ID

// definitionNamespace seeds DefinitionID generation; reusing an RFC 4122
// namespace constant rather than inventing one keeps the derivation
// reproducible across runs and across processes.
var definitionNamespace = uuid.NameSpaceOID

// NewExprID mints a fresh, universally-unique expression/statement ID.
func NewExprID() ExprID {
	return ExprID(uuid.New())
}

// NewDefinitionID derives a stable ID for a top-level definition from its
// name. Two definitions with the same name collide on this ID; the
// parser diagnoses that collision rather than silently shadowing.
func NewDefinitionID(name string) DefinitionID {
	return DefinitionID(uuid.NewSHA1(definitionNamespace, []byte(name)))
}

// HasID is implemented by every value an IdGraph can hold: its ID must
// match the key it is registered under.
type HasID interface {
	NodeID() ID
}

// IdGraph is a map-keyed arena: unlike a slice arena indexed by position,
// nodes reference each other by opaque ID, so the graph can hold
// definitions seeded from names alongside expressions minted fresh,
// under one addressing scheme. Invariant: for every id, graph[id].NodeID()
// == id.
type IdGraph[T HasID] struct {
	nodes map[ID]T
	order []ID
}

// NewIdGraph creates an empty graph with capHint as a size hint.
func NewIdGraph[T HasID](capHint int) *IdGraph[T] {
	return &IdGraph[T]{
		nodes: make(map[ID]T, capHint),
		order: make([]ID, 0, capHint),
	}
}

// Register mints a fresh ID via uuid.New, builds the node from it with
// factory, and stores it.
func Register[T HasID](g *IdGraph[T], factory func(ID) T) ID {
	id := ID(uuid.New())
	return g.insert(id, factory)
}

// RegisterWith derives a seeded ID from input and stores the node built
// from it. Re-registering the same input returns the same ID every time,
// so callers can detect the collision themselves (see DefinitionID).
func RegisterWith[T HasID](g *IdGraph[T], input string, factory func(ID) T) ID {
	id := ID(uuid.NewSHA1(definitionNamespace, []byte(input)))
	return g.insert(id, factory)
}

func (g *IdGraph[T]) insert(id ID, factory func(ID) T) ID {
	node := factory(id)
	if _, exists := g.nodes[id]; !exists {
		g.order = append(g.order, id)
	}
	g.nodes[id] = node
	return id
}

// Get looks up the node stored under id.
func (g *IdGraph[T]) Get(id ID) (T, bool) {
	v, ok := g.nodes[id]
	return v, ok
}

// Extend merges another graph's nodes into g, preserving the other
// graph's relative insertion order after g's own.
func (g *IdGraph[T]) Extend(other *IdGraph[T]) {
	for _, id := range other.order {
		g.insert(id, func(ID) T { return other.nodes[id] })
	}
}

// Keys returns the registered IDs in insertion order.
func (g *IdGraph[T]) Keys() []ID {
	return append([]ID(nil), g.order...)
}

// Values returns the registered nodes in insertion order.
func (g *IdGraph[T]) Values() []T {
	out := make([]T, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Len returns the number of registered nodes.
func (g *IdGraph[T]) Len() int {
	return len(g.order)
}

// All iterates the graph's (ID, node) pairs in insertion order.
func (g *IdGraph[T]) All(yield func(ID, T) bool) {
	for _, id := range g.order {
		if !yield(id, g.nodes[id]) {
			return
		}
	}
}
