// Package state holds the three-part environment interp mutates while
// walking the AST: simple variables, array variables, and function
// definitions. Jerboa has no scoping and no closures — every name
// lives in one flat, global namespace per kind, so there is no
// outer-environment chain to maintain.
package state

import "jerboa/ast"

// State is the (v, a, f) triple backing a running program. It is owned
// by the caller: a fresh interp.Run call mutates it in place and hands
// the same pointer back.
type State struct {
	V map[string]int64            // simple variables
	A map[string]map[int64]int64  // array variables
	F map[string]*ast.StmtList    // function bodies
}

// New returns an empty State, ready to be interpreted against.
func New() *State {
	return &State{
		V: make(map[string]int64),
		A: make(map[string]map[int64]int64),
		F: make(map[string]*ast.StmtList),
	}
}

// GetVar reads a simple variable, defaulting to 0 when it was never
// assigned.
func (s *State) GetVar(name string) int64 {
	return s.V[name]
}

// SetVar stores a simple variable.
func (s *State) SetVar(name string, val int64) {
	s.V[name] = val
}

// GetArray reads one slot of an array variable, defaulting to 0 when
// either the array or the slot has never been assigned.
func (s *State) GetArray(name string, index int64) int64 {
	slots, ok := s.A[name]
	if !ok {
		return 0
	}
	return slots[index]
}

// SetArray stores one slot of an array variable, creating the array
// on first use.
func (s *State) SetArray(name string, index, val int64) {
	slots, ok := s.A[name]
	if !ok {
		slots = make(map[int64]int64)
		s.A[name] = slots
	}
	slots[index] = val
}

// DefineFunc binds name to body, overwriting any previous binding.
func (s *State) DefineFunc(name string, body *ast.StmtList) {
	s.F[name] = body
}

// LookupFunc reports the body bound to name, if any.
func (s *State) LookupFunc(name string) (*ast.StmtList, bool) {
	body, ok := s.F[name]
	return body, ok
}
