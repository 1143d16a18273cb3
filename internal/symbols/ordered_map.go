// Package symbols provides the insertion-ordered, duplicate-rejecting name
// table used everywhere a scope needs deterministic iteration order for
// diagnostics: module-level signatures, class/interface/extend fields,
// function arguments, and import aliases.
package symbols

import (
	"github.com/erhanbaris/timu-sub002/internal/diagnostics"
	"github.com/erhanbaris/timu-sub002/internal/source"
)

// entry pairs a stored value with the span of the statement that defined
// it, so a later duplicate can point back at the original.
type entry[V any] struct {
	name  string
	value V
	span  source.Span
}

// Map is a name -> V map that remembers insertion order and the defining
// span of each entry. The zero value is ready to use.
type Map[V any] struct {
	index   map[string]int
	entries []entry[V]
}

func (m *Map[V]) ensure() {
	if m.index == nil {
		m.index = make(map[string]int)
	}
}

// Insert unconditionally stores value under name, overwriting any previous
// entry, and returns the previous value if one existed.
func (m *Map[V]) Insert(name string, value V, span source.Span) (old V, hadOld bool) {
	m.ensure()
	if i, ok := m.index[name]; ok {
		old, hadOld = m.entries[i].value, true
		m.entries[i] = entry[V]{name: name, value: value, span: span}
		return
	}
	m.index[name] = len(m.entries)
	m.entries = append(m.entries, entry[V]{name: name, value: value, span: span})
	return
}

// ValidateInsert stores value under name, but rejects (without storing) a
// name that is already present, returning an already_defined diagnostic
// carrying both the existing and the rejected span.
func (m *Map[V]) ValidateInsert(name string, value V, span source.Span) *diagnostics.Diagnostic {
	m.ensure()
	if i, ok := m.index[name]; ok {
		return diagnostics.AlreadyDefined(name, m.entries[i].span, span)
	}
	m.index[name] = len(m.entries)
	m.entries = append(m.entries, entry[V]{name: name, value: value, span: span})
	return nil
}

// Get looks up name, reporting whether it was present.
func (m *Map[V]) Get(name string) (V, bool) {
	var zero V
	if m.index == nil {
		return zero, false
	}
	i, ok := m.index[name]
	if !ok {
		return zero, false
	}
	return m.entries[i].value, true
}

// Span returns the defining span of name, if present.
func (m *Map[V]) Span(name string) (source.Span, bool) {
	if m.index == nil {
		return source.Span{}, false
	}
	i, ok := m.index[name]
	if !ok {
		return source.Span{}, false
	}
	return m.entries[i].span, true
}

// Remove deletes name if present. The remaining entries keep their
// relative insertion order; no gap is left behind.
func (m *Map[V]) Remove(name string) {
	if m.index == nil {
		return
	}
	i, ok := m.index[name]
	if !ok {
		return
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, name)
	for n, idx := range m.index {
		if idx > i {
			m.index[n] = idx - 1
		}
	}
}

// Keys returns every name in insertion order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.name
	}
	return keys
}

// Values returns every value in insertion order.
func (m *Map[V]) Values() []V {
	values := make([]V, len(m.entries))
	for i, e := range m.entries {
		values[i] = e.value
	}
	return values
}

// Iter calls fn for every (name, value) pair in insertion order.
func (m *Map[V]) Iter(fn func(name string, value V)) {
	for _, e := range m.entries {
		fn(e.name, e.value)
	}
}

// Len reports how many entries are stored.
func (m *Map[V]) Len() int {
	return len(m.entries)
}
