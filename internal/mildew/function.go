package mildew

import "fmt"

// NativeFunc is the shape a host-provided builtin fills in; it is never
// called by this package, only carried.
type NativeFunc func(this ScriptAny, args []ScriptAny) (ScriptAny, error)

// ScriptFunction is the reference-kind referent backing an Any tagged
// Function. It carries what a later bytecode pass needs without
// implementing calling semantics: Body is the parsed FunctionLiteral,
// Closure the lexical Environment it captured, and Native is set
// instead of Body/Closure for a host builtin.
type ScriptFunction struct {
	Name    string
	Body    *FunctionLiteral
	Closure *Environment
	Native  NativeFunc
}

func NewScriptFunction(name string, body *FunctionLiteral, closure *Environment) *ScriptFunction {
	return &ScriptFunction{Name: name, Body: body, Closure: closure}
}

func NewNativeFunction(name string, fn NativeFunc) *ScriptFunction {
	return &ScriptFunction{Name: name, Native: fn}
}

// Equals compares by parsed-body identity for a script function and by
// referent identity for a native one.
func (f *ScriptFunction) Equals(other *ScriptFunction) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.Native != nil || other.Native != nil {
		return f == other
	}
	return f.Body == other.Body
}

// Hash is keyed on the same identity Equals uses.
func (f *ScriptFunction) Hash() uint64 {
	if f == nil {
		return 0
	}
	if f.Native != nil {
		return uintptr64(f)
	}
	return uintptr64(f.Body)
}

func (f *ScriptFunction) String() string {
	if f == nil {
		return "<fn>"
	}
	name := f.Name
	if name == "" {
		name = "<anonymous>"
	}
	if f.Native != nil {
		return fmt.Sprintf("<native fn %s>", name)
	}
	return fmt.Sprintf("<fn %s>", name)
}
