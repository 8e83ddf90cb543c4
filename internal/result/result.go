// Package result implements the generic diagnostic-carrying monad every
// pipeline stage returns: a value paired with the diagnostics produced
// while computing it.
package result

import "lotl/internal/diag"

// Results pairs a computed value with the diagnostics accumulated while
// producing it. It is the uniform return type of every pipeline stage
// (lex, parse, infer, codegen).
type Results[T any] struct {
	Value       T
	Diagnostics []diag.Diagnostic
}

// Pure lifts a bare value into Results with no diagnostics.
func Pure[T any](value T) Results[T] {
	return Results[T]{Value: value}
}

// New constructs a Results from a value and an explicit diagnostic slice.
func New[T any](value T, diags []diag.Diagnostic) Results[T] {
	return Results[T]{Value: value, Diagnostics: diags}
}

// HasErrors reports whether any accumulated diagnostic is at SevError.
func (r Results[T]) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// Map transforms the value, carrying the diagnostics through unchanged.
func Map[A, B any](r Results[A], f func(A) B) Results[B] {
	return Results[B]{Value: f(r.Value), Diagnostics: r.Diagnostics}
}

// Bind threads the value through a function that itself returns Results,
// concatenating diagnostics from both stages. Bind is the monad's core
// sequencing operation: bind(pure(x), f) == f(x), and bind is associative.
func Bind[A, B any](r Results[A], f func(A) Results[B]) Results[B] {
	next := f(r.Value)
	merged := make([]diag.Diagnostic, 0, len(r.Diagnostics)+len(next.Diagnostics))
	merged = append(merged, r.Diagnostics...)
	merged = append(merged, next.Diagnostics...)
	return Results[B]{Value: next.Value, Diagnostics: merged}
}

// Forked pairs the original value of a Bind with the value produced by f,
// so a caller that needs both the input and the transformed output does
// not have to re-run the earlier stage.
type Forked[A, B any] struct {
	Input  A
	Output B
}

// Fork behaves like Bind but retains the original value alongside the
// result of f, returned together as a Forked tuple.
func Fork[A, B any](r Results[A], f func(A) Results[B]) Results[Forked[A, B]] {
	next := f(r.Value)
	merged := make([]diag.Diagnostic, 0, len(r.Diagnostics)+len(next.Diagnostics))
	merged = append(merged, r.Diagnostics...)
	merged = append(merged, next.Diagnostics...)
	return Results[Forked[A, B]]{
		Value:       Forked[A, B]{Input: r.Value, Output: next.Value},
		Diagnostics: merged,
	}
}
