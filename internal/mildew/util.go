package mildew

import "unsafe"

// uintptr64 hashes a pointer by its identity, for ScriptFunction's
// referent-identity equality.
func uintptr64(p interface{}) uint64 {
	switch v := p.(type) {
	case *ScriptFunction:
		return uint64(uintptr(unsafe.Pointer(v)))
	case *FunctionLiteral:
		return uint64(uintptr(unsafe.Pointer(v)))
	default:
		return 0
	}
}
