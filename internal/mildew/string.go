package mildew

// ScriptString is the reference-kind wrapper around a UTF-8 text
// payload. Strings are shared handles like Object/Array/Function even
// though the payload is immutable, so a ScriptAny holding a string can
// alias another without copying the text.
type ScriptString struct {
	value string
}

// NewScriptString allocates a new string referent.
func NewScriptString(value string) *ScriptString {
	return &ScriptString{value: value}
}

func (s *ScriptString) Value() string { return s.value }

func (s *ScriptString) String() string { return s.value }

// Equals compares two string referents by their textual content.
func (s *ScriptString) Equals(other *ScriptString) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.value == other.value
}
