package mildew

import "fmt"

// binding pairs a stored value with whether reassignment is permitted.
type binding struct {
	value   ScriptAny
	isConst bool
}

// Environment is the lexical-scope handle a Function value carries as
// its closure: a chained name-to-binding table. The parser and lexer
// never invoke it; it exists for the later interpreter stages.
type Environment struct {
	Parent *Environment
	Name   string
	table  map[string]*binding
}

// NewEnvironment creates a child scope of parent (nil for the global
// scope) labeled name, used only for diagnostics.
func NewEnvironment(parent *Environment, name string) *Environment {
	return &Environment{Parent: parent, Name: name, table: make(map[string]*binding)}
}

// Declare introduces name in this scope's own table, shadowing any
// binding of the same name in an enclosing scope.
func (e *Environment) Declare(name string, value ScriptAny, isConst bool) {
	e.table[name] = &binding{value: value, isConst: isConst}
}

// Lookup walks the parent chain outward and returns the first binding
// found, or ok=false if name is undeclared anywhere in the chain.
func (e *Environment) Lookup(name string) (ScriptAny, bool) {
	for env := e; env != nil; env = env.Parent {
		if b, ok := env.table[name]; ok {
			return b.value, true
		}
	}
	return Undefined(), false
}

// Reassign walks the parent chain and overwrites the first binding found,
// refusing to write through a const binding.
func (e *Environment) Reassign(name string, value ScriptAny) error {
	for env := e; env != nil; env = env.Parent {
		if b, ok := env.table[name]; ok {
			if b.isConst {
				return fmt.Errorf("cannot assign to const variable %q", name)
			}
			b.value = value
			return nil
		}
	}
	return fmt.Errorf("undefined variable %q", name)
}

// ForceSet writes name in this exact scope's own table, bypassing the
// const check and the parent-chain walk — used by the interpreter when it
// must install a binding regardless of an existing declaration.
func (e *Environment) ForceSet(name string, value ScriptAny, isConst bool) {
	e.table[name] = &binding{value: value, isConst: isConst}
}

// ForceRemove deletes name from this exact scope's own table, a no-op if
// absent.
func (e *Environment) ForceRemove(name string) {
	delete(e.table, name)
}
