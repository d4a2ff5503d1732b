package sigil

import (
	"fmt"
	"strings"
)

var _ RenderOps = TextOps{}

// TextOps is the RenderOps implementation that renders to markup text.
// Substitution values pass through unchanged and are coerced to text when
// their enclosing element or children group is combined, elements serialize
// as <tag attr="value">children</tag> with attributes in document order,
// and children concatenate in order with nothing between them.
//
// Nothing is escaped. Substitution values and attribute values land in the
// output exactly as given, so untrusted values need escaping before they're
// passed in.
type TextOps struct{}

// Value renders one substitution value by passing it through unchanged.
func (TextOps) Value(sub any) any {
	return sub
}

// Element renders an element as its bracketed tag syntax around its
// combined children.
func (TextOps) Element(tag string, attrs []RenderedAttr, children any) any {
	var out strings.Builder
	out.WriteString("<")
	out.WriteString(tag)
	for _, attr := range attrs {
		out.WriteString(" ")
		out.WriteString(attr.Name)
		out.WriteString(`="`)
		out.WriteString(attr.Value)
		out.WriteString(`"`)
	}
	out.WriteString(">")
	out.WriteString(stringify(children))
	out.WriteString("</")
	out.WriteString(tag)
	out.WriteString(">")
	return out.String()
}

// Children combines child outputs by concatenating their text in order.
func (TextOps) Children(outputs []any) any {
	var out strings.Builder
	for _, output := range outputs {
		out.WriteString(stringify(output))
	}
	return out.String()
}

// stringify coerces a rendered output to text. Strings pass through
// untouched, nil renders as nothing, and everything else goes through fmt.
func stringify(output any) string {
	if output == nil {
		return ""
	}
	if text, ok := output.(string); ok {
		return text
	}
	return fmt.Sprint(output)
}
