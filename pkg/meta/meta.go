package meta

import "encoding/json"

// Tree is an in-memory hierarchical document: a JSON object whose
// values may themselves be scalars, slices, or nested Trees. It is
// the concrete type behind a node's private "data" subtree in the
// persisted document.
type Tree map[string]any

// New returns an empty Tree.
func New() Tree {
	return Tree{}
}

// Get returns the raw value stored under key, and whether it was
// present.
func (t Tree) Get(key string) (any, bool) {
	v, ok := t[key]
	return v, ok
}

// Set stores value under key, creating the map if it is nil. Callers
// should reassign the result: t = t.Set(...).
func (t Tree) Set(key string, value any) Tree {
	if t == nil {
		t = New()
	}
	t[key] = value
	return t
}

// Sub returns the nested Tree stored under key. It reports false if
// the key is absent or its value is not a map-shaped value.
func (t Tree) Sub(key string) (Tree, bool) {
	v, ok := t[key]
	if !ok {
		return nil, false
	}
	switch sub := v.(type) {
	case Tree:
		return sub, true
	case map[string]any:
		return Tree(sub), true
	default:
		return nil, false
	}
}

// String returns the string stored under key, or "" if absent or of
// the wrong type.
func (t Tree) String(key string) string {
	v, ok := t[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Clone returns a shallow copy of t. Nested Trees and slices are not
// deep-copied; callers that mutate nested structures should Clone
// those explicitly.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// MarshalJSON renders the tree as a plain JSON object.
func (t Tree) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]any(t))
}

// UnmarshalJSON decodes a JSON object into the tree, preserving
// unknown keys verbatim since the map has no fixed schema.
func (t *Tree) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Tree(raw)
	return nil
}
