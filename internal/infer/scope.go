package infer

import "lotl/internal/ast"

// scopeStack is a lexical stack of bindings, searched innermost-first.
// Blocks, if-branches, for- and while-bodies each get their own pushed
// scope so a binding introduced inside one does not leak to a sibling.
type scopeStack struct {
	scopes []map[string]ast.AstType
}

func newScopeStack() *scopeStack {
	s := &scopeStack{}
	s.push()
	return s
}

func (s *scopeStack) push() {
	s.scopes = append(s.scopes, make(map[string]ast.AstType))
}

func (s *scopeStack) pop() {
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// define binds name in the current (innermost) scope, shadowing any
// binding of the same name further out.
func (s *scopeStack) define(name string, t ast.AstType) {
	s.scopes[len(s.scopes)-1][name] = t
}

// lookup searches innermost scope first.
func (s *scopeStack) lookup(name string) (ast.AstType, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if t, ok := s.scopes[i][name]; ok {
			return t, true
		}
	}
	return ast.AstType{}, false
}
