package sigil_test

import (
	"reflect"

	"impractical.co/sigil"
)

// sameNode compares two positional trees structurally. Go can't compare
// functions, so Call nodes match on Name, attributes, and children, plus
// both having a Component wired in.
func sameNode(want, got sigil.Node) bool {
	switch want := want.(type) {
	case sigil.Text:
		text, ok := got.(sigil.Text)
		return ok && text == want
	case sigil.Ref:
		ref, ok := got.(sigil.Ref)
		return ok && ref == want
	case *sigil.Element:
		element, ok := got.(*sigil.Element)
		if !ok || element.Tag != want.Tag || !sameAttrs(want.Attrs, element.Attrs) {
			return false
		}
		return sameChildren(want.Children, element.Children)
	case *sigil.Call:
		call, ok := got.(*sigil.Call)
		if !ok || call.Name != want.Name || call.Fn == nil || !sameAttrs(want.Attrs, call.Attrs) {
			return false
		}
		return sameChildren(want.Children, call.Children)
	}
	return false
}

func sameAttrs(want, got []sigil.Attr) bool {
	if len(want) != len(got) {
		return false
	}
	for pos := range want {
		if !reflect.DeepEqual(want[pos], got[pos]) {
			return false
		}
	}
	return true
}

func sameChildren(want, got []sigil.Node) bool {
	if len(want) != len(got) {
		return false
	}
	for pos := range want {
		if !sameNode(want[pos], got[pos]) {
			return false
		}
	}
	return true
}
