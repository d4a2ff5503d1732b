package sigil

import (
	"context"
)

// Component is a function that renders a capitalized tag. It receives the
// tag's resolved attributes and already-rendered children as Props, and
// returns output for the render target in use, so a Component meant for the
// text target returns a string (or anything fmt can print). A Component may
// block; sibling subtrees render on separate goroutines, so slow Components
// overlap in time. An error fails the whole render.
type Component func(ctx context.Context, props Props) (any, error)

// Props is the data passed to a Component invocation.
type Props struct {
	// Attrs holds the invocation's attributes, resolved to their final
	// string values.
	Attrs map[string]string

	// Children is the already-rendered, already-combined output of the
	// invocation's children.
	Children any
}

// Fragment is the built-in Component that renders its children unchanged.
// Templates with multiple root nodes parse to a Fragment invocation wrapping
// them, and it can be used directly as <Fragment> to group nodes without
// introducing an element.
func Fragment(_ context.Context, props Props) (any, error) {
	return props.Children, nil
}

// Doctype is the built-in Component behind document type declarations. A
// <!DOCTYPE html> in a template parses to a Doctype invocation with the
// declared name in the "name" attribute.
func Doctype(_ context.Context, props Props) (any, error) {
	return "<!DOCTYPE " + props.Attrs["name"] + ">", nil
}

// ProcessingInstruction is the built-in Component behind processing
// instructions. A <?xml-stylesheet href="a.css"?> in a template parses to a
// ProcessingInstruction invocation with "xml-stylesheet" in the "target"
// attribute and the remainder in the "data" attribute.
func ProcessingInstruction(_ context.Context, props Props) (any, error) {
	if data := props.Attrs["data"]; data != "" {
		return "<?" + props.Attrs["target"] + " " + data + "?>", nil
	}
	return "<?" + props.Attrs["target"] + "?>", nil
}
