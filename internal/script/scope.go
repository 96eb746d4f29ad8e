package script

import "sync"

// file scope.go implements the two-layer Locals/Globals lookup described in
// the data model: a per-call Locals mapping and a process-wide Globals
// mapping, with lookup order Locals -> Globals -> built-ins inside a user
// function body, and Locals absent outside any user function. Scope is
// guarded by a mutex because the async evaluator gathers function-call
// arguments concurrently (C6), and Globals is shared across every goroutine
// that gather spins up.

// Scope is a single mutable name->Value mapping, used for both Globals and
// a call's Locals.
type Scope struct {
	mu   sync.RWMutex
	vars map[string]Value
}

// NewScope returns an empty Scope, optionally seeded from initial.
func NewScope(initial map[string]Value) *Scope {
	s := &Scope{vars: make(map[string]Value)}
	for k, v := range initial {
		s.vars[k] = v
	}
	return s
}

// Get returns the value bound to name and whether it was found.
func (s *Scope) Get(name string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[name]
	return v, ok
}

// Set binds name to v.
func (s *Scope) Set(name string, v Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = v
}

// Delete removes a binding, if present.
func (s *Scope) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vars, name)
}

// lookupVar resolves an identifier per the Locals -> Globals order; ok is
// false only if name is bound in neither.
func lookupVar(locals, globals *Scope, name string) (Value, bool) {
	if locals != nil {
		if v, ok := locals.Get(name); ok {
			return v, true
		}
	}
	if globals != nil {
		if v, ok := globals.Get(name); ok {
			return v, true
		}
	}
	return Value{}, false
}

// assignVar writes name into Locals if present, else Globals, per the data
// model's assignment rule.
func assignVar(locals, globals *Scope, name string, v Value) {
	if locals != nil {
		locals.Set(name, v)
		return
	}
	globals.Set(name, v)
}
