// env.go: the flat binding store.
//
// One namespace holds scalars, anchors, and relational values alike;
// re-binding overwrites silently and keeps the name's original position so
// `list anchors` stays in first-declaration order. There are no nested
// scopes: nothing in the language introduces one.
package giant

import "github.com/emirpasic/gods/maps/linkedhashmap"

// Env is a flat, insertion-ordered mapping from name to binding.
type Env struct {
	table *linkedhashmap.Map
}

func NewEnv() *Env {
	return &Env{table: linkedhashmap.New()}
}

// Bind binds name to v, replacing any previous binding.
func (e *Env) Bind(name string, v Value) {
	e.table.Put(name, v)
}

// Lookup retrieves the binding for name.
func (e *Env) Lookup(name string) (Value, bool) {
	if v, ok := e.table.Get(name); ok {
		return v.(Value), true
	}
	return Value{}, false
}

// Anchors returns every anchor binding in insertion order.
func (e *Env) Anchors() []*Anchor {
	var out []*Anchor
	for _, k := range e.table.Keys() {
		v, _ := e.table.Get(k)
		if val := v.(Value); val.Tag == VTAnchor {
			out = append(out, val.Data.(*Anchor))
		}
	}
	return out
}

// Len reports the number of bindings.
func (e *Env) Len() int { return e.table.Size() }
