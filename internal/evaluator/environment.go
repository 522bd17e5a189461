package evaluator

import (
	"maps"
	"slices"
)

// Environment is one scope in a chain of name bindings.
//
// Parents are always snapshots: NewChild and Snapshot copy the local map of
// the scope they are called on, and nothing ever writes to a parent. A
// snapshot can therefore share its own parent chain without copying it, and
// later writes to the original scope stay invisible to closures.
type Environment struct {
	store  map[string]Object
	parent *Environment
}

// NewEnvironment returns an empty root scope.
func NewEnvironment() *Environment {
	return &Environment{store: map[string]Object{}}
}

// Snapshot copies the current state of e.
func (e *Environment) Snapshot() *Environment {
	return &Environment{store: maps.Clone(e.store), parent: e.parent}
}

// NewChild returns an empty scope whose parent is a snapshot of e.
func (e *Environment) NewChild() *Environment {
	return &Environment{store: map[string]Object{}, parent: e.Snapshot()}
}

// Get resolves name locally first, then through the parent chain.
func (e *Environment) Get(name string) (Object, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name in this scope only; outer scopes are never written.
func (e *Environment) Set(name string, val Object) {
	e.store[name] = val
}

// Names lists the locally bound names in sorted order.
func (e *Environment) Names() []string {
	return slices.Sorted(maps.Keys(e.store))
}
