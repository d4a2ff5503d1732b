package sigil

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

var (
	// ErrUnknownComponent is returned when a template uses a capitalized
	// tag that no Component is registered under. The error names the tag.
	ErrUnknownComponent = errors.New("no component registered")
)

// transformDocument turns a template's parsed document node into a single
// positional tree. A template with one root node unwraps to that root; a
// template with several parses to a Fragment invocation wrapping them, so
// multi-root templates render as their roots in order.
func transformDocument(doc *html.Node, reg *Registry) (Node, error) {
	children, err := transformChildren(doc, reg)
	if err != nil {
		return nil, err
	}
	if len(children) == 1 {
		return children[0], nil
	}
	fragment, _ := reg.Component("Fragment")
	return &Call{Name: "Fragment", Fn: fragment, Children: children}, nil
}

// transformChildren transforms a generic node's children in document order.
// Text children decode through the marker codec and splice their parts
// directly into the result, so literals, Refs, and structured children all
// sit at the same depth, and adjacent literals merge into one Text.
func transformChildren(parent *html.Node, reg *Registry) ([]Node, error) {
	var children []Node
	appendChild := func(child Node) {
		if text, ok := child.(Text); ok && len(children) > 0 {
			if prev, ok := children[len(children)-1].(Text); ok {
				children[len(children)-1] = prev + text
				return
			}
		}
		children = append(children, child)
	}
	for child := parent.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			for _, part := range decodeText(child.Data) {
				appendChild(part)
			}
		case html.CommentNode:
			call, ok, err := transformComment(child.Data, reg)
			if err != nil {
				return nil, err
			}
			if ok {
				appendChild(call)
			}
			// plain comments carry nothing renderable
		default:
			node, err := transformNode(child, reg)
			if err != nil {
				return nil, err
			}
			appendChild(node)
		}
	}
	return children, nil
}

// transformNode transforms a single generic element or doctype node into its
// positional form.
func transformNode(node *html.Node, reg *Registry) (Node, error) {
	switch node.Type {
	case html.ElementNode:
		return transformElement(node, reg)
	case html.DoctypeNode:
		return builtinCall(reg, "Doctype", []Attr{
			{Name: "name", Value: AttrText(node.Data)},
		})
	}
	return nil, fmt.Errorf("unhandled markup node type %v", node.Type)
}

// transformElement transforms an element node. Capitalized tags resolve
// through the Registry to a Call; everything else stays an Element.
func transformElement(node *html.Node, reg *Registry) (Node, error) {
	var attrs []Attr
	for _, attr := range node.Attr {
		attrs = append(attrs, Attr{Name: attr.Key, Value: decodeAttr(attr.Val)})
	}
	children, err := transformChildren(node, reg)
	if err != nil {
		return nil, err
	}
	if isCapitalized(node.Data) {
		component, ok := reg.Component(node.Data)
		if !ok {
			return nil, fmt.Errorf("%w for tag <%s>", ErrUnknownComponent, node.Data)
		}
		return &Call{Name: node.Data, Fn: component, Attrs: attrs, Children: children}, nil
	}
	return &Element{Tag: node.Data, Attrs: attrs, Children: children}, nil
}

// transformComment maps processing instructions to the built-in
// ProcessingInstruction Component. The tokenizer surfaces <?target data?> as
// a comment whose content keeps the question marks, so that shape is
// recovered here; all other comments report false and are dropped.
func transformComment(data string, reg *Registry) (Node, bool, error) {
	if !strings.HasPrefix(data, "?") {
		return nil, false, nil
	}
	body := strings.TrimSuffix(data[1:], "?")
	target, rest, _ := strings.Cut(body, " ")
	call, err := builtinCall(reg, "ProcessingInstruction", []Attr{
		{Name: "target", Value: AttrText(target)},
		{Name: "data", Value: AttrText(rest)},
	})
	if err != nil {
		return nil, false, err
	}
	return call, true, nil
}

// builtinCall builds a Call to one of the Components every Registry is
// seeded with. Registries can only gain Components, so the lookup failing
// means the Registry wasn't built with NewRegistry.
func builtinCall(reg *Registry, name string, attrs []Attr) (Node, error) {
	component, ok := reg.Component(name)
	if !ok {
		return nil, fmt.Errorf("%w for built-in <%s>", ErrUnknownComponent, name)
	}
	return &Call{Name: name, Fn: component, Attrs: attrs}, nil
}
