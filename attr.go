package sigil

import (
	"fmt"
	"strings"
)

// RenderedAttr is an attribute resolved to its final string value, in
// document order. RenderOps implementations serialize attributes in the
// order they're passed.
type RenderedAttr struct {
	Name  string
	Value string
}

// resolveAttrs resolves every attribute of an Element or Call against the
// substitution slice. Attributes are intrinsically textual, so they resolve
// to strings regardless of the render target, and resolution never blocks;
// a substitution in attribute position renders as its immediate value, not
// through a Component.
func resolveAttrs(attrs []Attr, values []any) ([]RenderedAttr, error) {
	if len(attrs) < 1 {
		return nil, nil
	}
	resolved := make([]RenderedAttr, 0, len(attrs))
	for _, attr := range attrs {
		value, err := resolveAttrValue(attr.Value, values)
		if err != nil {
			return nil, fmt.Errorf("error resolving attribute %q: %w", attr.Name, err)
		}
		resolved = append(resolved, RenderedAttr{Name: attr.Name, Value: value})
	}
	return resolved, nil
}

// resolveAttrValue resolves one attribute value. Multi-part values resolve
// each part independently and concatenate the results in order, with no
// separators added.
func resolveAttrValue(value AttrValue, values []any) (string, error) {
	switch value := value.(type) {
	case AttrText:
		return string(value), nil
	case AttrRef:
		sub, err := substitution(values, int(value))
		if err != nil {
			return "", err
		}
		return stringify(sub), nil
	case AttrParts:
		var joined strings.Builder
		for _, part := range value {
			rendered, err := resolveAttrValue(part, values)
			if err != nil {
				return "", err
			}
			joined.WriteString(rendered)
		}
		return joined.String(), nil
	}
	return "", fmt.Errorf("unhandled attribute value type %T", value)
}

// attrMap flattens resolved attributes into the map handed to Components as
// Props.Attrs.
func attrMap(attrs []RenderedAttr) map[string]string {
	props := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		props[attr.Name] = attr.Value
	}
	return props
}
