// Package registry provides explicit, hierarchical implementation
// registries. A registry maps names to implementations plus a documentation
// string, and registries form a tree: lookups can resolve through ancestors
// in order, children can be enumerated transitively, and entries missing
// documentation can inherit it from the nearest ancestor entry of the same
// name. This replaces runtime type introspection with bookkeeping populated
// at startup.
//
// Example:
//
//	base := registry.New[Charger]("chargers")
//	base.MustRegister("am1bcc", am1bcc{}, "AM1-BCC partial charges")
//
//	gpu := base.NewChild("chargers/gpu")
//	gpu.MustRegister("am1bcc", am1bccGPU{}, "") // doc inherited on demand
//	gpu.InheritDocs()
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Entry is one registered implementation with its documentation.
type Entry[T any] struct {
	Name string
	Impl T
	Doc  string
}

// Registry is a named, concurrency-safe map of implementations.
// Registries form a tree via NewChild.
type Registry[T any] struct {
	name string

	mu       sync.RWMutex
	entries  map[string]Entry[T]
	parent   *Registry[T]
	children []*Registry[T]
}

// New creates an empty root registry.
func New[T any](name string) *Registry[T] {
	return &Registry[T]{
		name:    name,
		entries: make(map[string]Entry[T]),
	}
}

// Name returns the registry's name.
func (r *Registry[T]) Name() string {
	return r.name
}

// NewChild creates a registry whose lookups fall back to r.
func (r *Registry[T]) NewChild(name string) *Registry[T] {
	child := New[T](name)
	child.parent = r

	r.mu.Lock()
	defer r.mu.Unlock()
	r.children = append(r.children, child)
	return child
}

// Register adds an implementation under name. Registering a name twice in
// the same registry is an error; shadowing an ancestor's entry is not.
func (r *Registry[T]) Register(name string, impl T, doc string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("registry %q: %q is already registered", r.name, name)
	}
	r.entries[name] = Entry[T]{Name: name, Impl: impl, Doc: doc}
	return nil
}

// MustRegister is Register, panicking on error. Intended for package init.
func (r *Registry[T]) MustRegister(name string, impl T, doc string) {
	if err := r.Register(name, impl, doc); err != nil {
		panic(err)
	}
}

// Lookup returns the entry registered locally under name.
func (r *Registry[T]) Lookup(name string) (Entry[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// Resolve returns the entry for name, searching this registry first and then
// each ancestor in order. The nearest entry wins.
func (r *Registry[T]) Resolve(name string) (Entry[T], bool) {
	for cur := r; cur != nil; cur = cur.parent {
		if e, ok := cur.Lookup(name); ok {
			return e, true
		}
	}
	var zero Entry[T]
	return zero, false
}

// Names returns the locally registered names, sorted.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descendants returns every registry transitively reachable below r,
// depth-first, not including r itself.
func (r *Registry[T]) Descendants() []*Registry[T] {
	r.mu.RLock()
	children := append([]*Registry[T](nil), r.children...)
	r.mu.RUnlock()

	var out []*Registry[T]
	for _, child := range children {
		out = append(out, child)
		out = append(out, child.Descendants()...)
	}
	return out
}

// Implementations collects every entry registered in r and all of its
// descendants. Entries are returned in registry order (self first, then
// depth-first children), sorted by name within each registry.
func (r *Registry[T]) Implementations() []Entry[T] {
	var out []Entry[T]
	for _, reg := range append([]*Registry[T]{r}, r.Descendants()...) {
		for _, name := range reg.Names() {
			e, _ := reg.Lookup(name)
			out = append(out, e)
		}
	}
	return out
}

// InheritDocs fills in the documentation of every local entry whose doc is
// empty with the doc of the nearest ancestor entry of the same name.
// Returns the number of entries updated.
func (r *Registry[T]) InheritDocs() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	filled := 0
	for name, e := range r.entries {
		if e.Doc != "" {
			continue
		}
		for cur := r.parent; cur != nil; cur = cur.parent {
			if pe, ok := cur.Lookup(name); ok && pe.Doc != "" {
				e.Doc = pe.Doc
				r.entries[name] = e
				filled++
				break
			}
		}
	}
	return filled
}
