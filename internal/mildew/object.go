package mildew

import (
	"sort"
	"strings"
)

// ScriptObject is the reference-kind referent backing an Any tagged
// Object: a field map plus an optional prototype chain. The lexer and
// parser treat it as opaque.
type ScriptObject struct {
	Fields    map[string]ScriptAny
	Prototype *ScriptObject
}

func NewScriptObject(prototype *ScriptObject) *ScriptObject {
	return &ScriptObject{Fields: make(map[string]ScriptAny), Prototype: prototype}
}

func (o *ScriptObject) Get(name string) (ScriptAny, bool) {
	v, ok := o.Fields[name]
	if !ok && o.Prototype != nil {
		return o.Prototype.Get(name)
	}
	return v, ok
}

func (o *ScriptObject) Set(name string, value ScriptAny) {
	o.Fields[name] = value
}

// Equals compares two objects by their field maps plus prototype
// identity.
func (o *ScriptObject) Equals(other *ScriptObject) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.Prototype != other.Prototype {
		return false
	}
	if len(o.Fields) != len(other.Fields) {
		return false
	}
	for k, v := range o.Fields {
		ov, ok := other.Fields[k]
		if !ok || !v.Equals(ov) {
			return false
		}
	}
	return true
}

// Hash combines every field's name and value hash in sorted order so
// equal objects hash equal.
func (o *ScriptObject) Hash() uint64 {
	if o == nil {
		return 0
	}
	keys := make([]string, 0, len(o.Fields))
	for k := range o.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var h uint64
	for _, k := range keys {
		h ^= stringHash(k) ^ o.Fields[k].Hash()
	}
	return h
}

func (o *ScriptObject) String() string {
	if o == nil {
		return "{}"
	}
	keys := make([]string, 0, len(o.Fields))
	for k := range o.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ":" + o.Fields[k].ToUTF8String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}
