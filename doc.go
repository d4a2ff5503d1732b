// Package sigil renders markup templates whose dynamic parts are supplied as
// a slice of substitution values, in the manner of JavaScript tagged
// templates.
//
// sigil is organized around templates and Components. A template is an
// ordered list of literal markup segments; the gaps between segments are
// substitution points, filled at render time from a slice of values. A
// Component is a function that renders a capitalized tag: when a template
// contains <Greeting name="x">, rendering calls the Component registered
// under "Greeting" with the tag's resolved attributes and its
// already-rendered children.
//
// Templates are parsed once into a positional tree. The tree contains no
// substitution values, only their positions, so it can be cached and
// re-rendered against different value slices cheaply. Parsing goes through a
// Registry, which resolves capitalized tags to Components and caches the
// trees it has parsed. Most callers can pass a nil Registry and get
// DefaultRegistry, which knows the built-in Fragment, Doctype, and
// ProcessingInstruction Components; callers with their own Components create
// a Registry with NewRegistry and add them with Register.
//
// To render a template, pass its segments and values to RenderString, or to
// Render to write the output directly. Parse returns the positional tree
// without rendering it, and RenderNode renders a tree through any RenderOps
// implementation, so output targets other than text can be built; TextOps is
// the text target.
//
// Components may block. Sibling subtrees that invoke Components are rendered
// concurrently, and their outputs are always assembled in document order, no
// matter which one finishes first.
package sigil
