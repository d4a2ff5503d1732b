package sigil

// Node is one node of a positional tree, the parsed, substitution-independent
// form of a template. A Node is one of four concrete types: Text, a literal
// run of markup; Ref, a position in the substitution slice; *Element, a plain
// markup element; or *Call, a Component invocation. Trees are built by Parse
// and rendered by RenderNode, and are never modified after parsing, so one
// tree can safely be rendered by multiple goroutines with different value
// slices.
type Node interface {
	node()
}

// Text is a literal run of markup text. It renders verbatim, without going
// through the render target's Value operation.
type Text string

func (Text) node() {}

// Ref is a position in the substitution slice supplied at render time. The
// position is checked against the slice's bounds when the tree is rendered,
// not when it's parsed; the same tree can be rendered with many different
// slices, and ErrSubstitutionOutOfRange is returned for slices that are too
// short.
type Ref int

func (Ref) node() {}

// Element is a markup element with a lowercase tag name. It renders through
// the render target's Element operation.
type Element struct {
	// Tag is the element's name, as written in the template.
	Tag string

	// Attrs holds the element's attributes, in document order.
	Attrs []Attr

	// Children holds the element's child nodes, in document order.
	Children []Node
}

func (*Element) node() {}

// Call is an invocation of a Component, produced by a capitalized tag in the
// template. It renders by calling Fn with the resolved attributes and the
// already-rendered children.
type Call struct {
	// Name is the capitalized tag name the Component was resolved from.
	Name string

	// Fn is the Component that was registered under Name when the
	// template was parsed.
	Fn Component

	// Attrs holds the invocation's attributes, in document order.
	Attrs []Attr

	// Children holds the invocation's child nodes, in document order.
	Children []Node
}

func (*Call) node() {}

// Attr is a single attribute on an Element or Call.
type Attr struct {
	Name  string
	Value AttrValue
}

// AttrValue is the parsed value of one attribute: AttrText for a literal
// value, AttrRef for a value that is exactly one substitution, or AttrParts
// for a value mixing literal text and substitutions.
type AttrValue interface {
	attrValue()
}

// AttrText is a literal attribute value.
type AttrText string

func (AttrText) attrValue() {}

// AttrRef is an attribute value that is a single substitution position.
type AttrRef int

func (AttrRef) attrValue() {}

// AttrParts is an attribute value concatenated from literal text and
// substitutions, in document order. It never nests; its members are only ever
// AttrText and AttrRef.
type AttrParts []AttrValue

func (AttrParts) attrValue() {}

// hasCall reports whether the subtree rooted at the passed Node invokes any
// Component. Subtrees that don't can never block, so the renderer runs them
// inline instead of on their own goroutine.
func hasCall(node Node) bool {
	switch node := node.(type) {
	case *Call:
		return true
	case *Element:
		for _, child := range node.Children {
			if hasCall(child) {
				return true
			}
		}
	}
	return false
}
