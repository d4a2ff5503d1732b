package sigil

import (
	"errors"
	"fmt"
	"sync"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrNotCapitalized is returned when registering a Component under a
	// name that doesn't start with an uppercase letter. Capitalization is
	// what distinguishes Component tags from plain elements, so a
	// lowercase name could never be resolved.
	ErrNotCapitalized = errors.New("component names must start with an uppercase letter")

	// ErrNilComponent is returned when registering a nil Component.
	ErrNilComponent = errors.New("component must not be nil")
)

// Registry resolves capitalized tag names to Components and caches the trees
// of the templates parsed through it. Each Registry's cache is private, so
// two Registries never share a tree even for byte-identical templates; the
// same template text can legitimately parse to different trees under
// different Registries.
//
// A Registry must be instantiated through NewRegistry, its empty value is
// not usable.
type Registry struct {
	components   map[string]Component
	componentsMu sync.RWMutex

	// cache parsed trees so re-rendering a template doesn't re-parse it
	trees   map[treeKey]Node
	treesMu sync.RWMutex
}

// DefaultRegistry is the Registry used by Parse, ParseString, Render, and
// RenderString when they're passed a nil Registry. It carries only the
// built-in Components unless callers register more.
var DefaultRegistry = NewRegistry()

// treeKey identifies a template by the identity of its segments slice, not
// by its text. The first segment's address pins the backing array; the
// length tells apart subslices that share one.
type treeKey struct {
	first  *string
	length int
}

// NewRegistry returns a Registry that is ready to be used, pre-seeded with
// the built-in Fragment, Doctype, and ProcessingInstruction Components.
func NewRegistry() *Registry {
	return &Registry{
		components: map[string]Component{
			"Fragment":              Fragment,
			"Doctype":               Doctype,
			"ProcessingInstruction": ProcessingInstruction,
		},
		trees: map[treeKey]Node{},
	}
}

// Register makes a Component resolvable as a tag named name. The name must
// start with an uppercase letter. Registering a name again replaces the
// previous Component for templates parsed after the call; templates already
// parsed keep the Component their cached trees resolved.
//
// It can safely be used by multiple goroutines.
func (r *Registry) Register(name string, component Component) error {
	if component == nil {
		return fmt.Errorf("registering %q: %w", name, ErrNilComponent)
	}
	if !isCapitalized(name) {
		return fmt.Errorf("registering %q: %w", name, ErrNotCapitalized)
	}
	r.componentsMu.Lock()
	defer r.componentsMu.Unlock()
	r.components[name] = component
	return nil
}

// Component returns the Component registered under the passed name, if one
// exists.
//
// It can safely be used by multiple goroutines.
func (r *Registry) Component(name string) (Component, bool) {
	r.componentsMu.RLock()
	defer r.componentsMu.RUnlock()
	component, ok := r.components[name]
	return component, ok
}

// ClearCache drops every cached tree, forcing templates to re-parse on
// their next use. Components stay registered. Go gives us no weak
// references to tie a tree's lifetime to its segments slice, so a
// long-lived Registry fed dynamically-built templates can use this to bound
// its memory.
//
// It can safely be used by multiple goroutines.
func (r *Registry) ClearCache() {
	r.treesMu.Lock()
	defer r.treesMu.Unlock()
	r.trees = map[treeKey]Node{}
}

// cachedTree returns the tree cached for the passed key, if one exists. It
// returns nil on a miss; parse never produces a nil tree, so the sentinel
// is unambiguous.
func (r *Registry) cachedTree(key treeKey) Node {
	r.treesMu.RLock()
	defer r.treesMu.RUnlock()
	return r.trees[key]
}

// setCachedTree caches a tree for the given key. Only successful parses are
// stored, so a failed parse is retried in full on the next call.
func (r *Registry) setCachedTree(key treeKey, tree Node) {
	r.treesMu.Lock()
	defer r.treesMu.Unlock()
	r.trees[key] = tree
}

// isCapitalized reports whether the name starts with an uppercase letter,
// which is what marks a tag as a Component invocation rather than an
// element.
func isCapitalized(name string) bool {
	first, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(first)
}
