package sigil_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"impractical.co/sigil"
)

func TestParseCompactIndex(t *testing.T) {
	t.Parallel()

	// a template whose only content is one substitution should parse to
	// a bare Ref child, not a sequence wrapping one
	tree, err := sigil.Parse(context.Background(), nil, []string{"<div>", "</div>"})
	if err != nil {
		t.Fatalf("Unexpected error parsing template: %v", err)
	}
	want := &sigil.Element{Tag: "div", Children: []sigil.Node{sigil.Ref(0)}}
	if !sameNode(want, tree) {
		t.Errorf("Expected to get %#v, got %#v", want, tree)
	}
}

func TestParseInterspersedSubstitutions(t *testing.T) {
	t.Parallel()

	tree, err := sigil.Parse(context.Background(), nil, []string{"<div>", "foo", "</div>"})
	if err != nil {
		t.Fatalf("Unexpected error parsing template: %v", err)
	}
	want := &sigil.Element{Tag: "div", Children: []sigil.Node{
		sigil.Ref(0),
		sigil.Text("foo"),
		sigil.Ref(1),
	}}
	if !sameNode(want, tree) {
		t.Errorf("Expected to get %#v, got %#v", want, tree)
	}
}

func TestParseMergesStaticText(t *testing.T) {
	t.Parallel()

	// the comment drops out, and the text on each side of it merges into
	// a single literal child next to the structured sibling
	tree, err := sigil.Parse(context.Background(), nil, []string{"<div>foo<!-- note -->bar<span>baz</span>", "</div>"})
	if err != nil {
		t.Fatalf("Unexpected error parsing template: %v", err)
	}
	want := &sigil.Element{Tag: "div", Children: []sigil.Node{
		sigil.Text("foobar"),
		&sigil.Element{Tag: "span", Children: []sigil.Node{sigil.Text("baz")}},
		sigil.Ref(0),
	}}
	if !sameNode(want, tree) {
		t.Errorf("Expected to get %#v, got %#v", want, tree)
	}
}

func TestParseAttributes(t *testing.T) {
	t.Parallel()

	tree, err := sigil.Parse(context.Background(), nil, []string{`<a href="/user/`, `" class="profile">`, "</a>"})
	if err != nil {
		t.Fatalf("Unexpected error parsing template: %v", err)
	}
	want := &sigil.Element{
		Tag: "a",
		Attrs: []sigil.Attr{
			{Name: "href", Value: sigil.AttrParts{sigil.AttrText("/user/"), sigil.AttrRef(0)}},
			{Name: "class", Value: sigil.AttrText("profile")},
		},
		Children: []sigil.Node{sigil.Ref(1)},
	}
	if !sameNode(want, tree) {
		t.Errorf("Expected to get %#v, got %#v", want, tree)
	}
}

func TestParseSingleSubstitutionAttribute(t *testing.T) {
	t.Parallel()

	tree, err := sigil.Parse(context.Background(), nil, []string{`<input value="`, `">`})
	if err != nil {
		t.Fatalf("Unexpected error parsing template: %v", err)
	}
	want := &sigil.Element{
		Tag: "input",
		Attrs: []sigil.Attr{
			{Name: "value", Value: sigil.AttrRef(0)},
		},
	}
	if !sameNode(want, tree) {
		t.Errorf("Expected to get %#v, got %#v", want, tree)
	}
}

func TestParseMultipleRoots(t *testing.T) {
	t.Parallel()

	tree, err := sigil.Parse(context.Background(), nil, []string{"<b>one</b><i>two</i>"})
	if err != nil {
		t.Fatalf("Unexpected error parsing template: %v", err)
	}
	want := &sigil.Call{Name: "Fragment", Children: []sigil.Node{
		&sigil.Element{Tag: "b", Children: []sigil.Node{sigil.Text("one")}},
		&sigil.Element{Tag: "i", Children: []sigil.Node{sigil.Text("two")}},
	}}
	if !sameNode(want, tree) {
		t.Errorf("Expected to get %#v, got %#v", want, tree)
	}
}

func TestParseUnknownComponent(t *testing.T) {
	t.Parallel()

	_, err := sigil.Parse(context.Background(), sigil.NewRegistry(), []string{"<div><Missing></Missing></div>"})
	if !errors.Is(err, sigil.ErrUnknownComponent) {
		t.Fatalf("Expected to get ErrUnknownComponent, got %v", err)
	}
	if !strings.Contains(err.Error(), "Missing") {
		t.Errorf("Expected error to name the unresolved tag, got %q", err.Error())
	}
}

func TestParseBadMarkup(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unclosed":         "<div><span>oops</div>",
		"unexpected close": "foo</div>",
		"unclosed at end":  "<div>oops",
		"mismatched close": "<div><b>bold</i></b></div>",
		"close at top":     "</p>",
	}
	for name, markup := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := sigil.ParseString(context.Background(), nil, markup)
			if !errors.Is(err, sigil.ErrBadMarkup) {
				t.Errorf("Expected to get ErrBadMarkup for %q, got %v", markup, err)
			}
		})
	}
}

func TestParseNoSegments(t *testing.T) {
	t.Parallel()

	_, err := sigil.Parse(context.Background(), nil, nil)
	if !errors.Is(err, sigil.ErrNoSegments) {
		t.Fatalf("Expected to get ErrNoSegments, got %v", err)
	}
}

func TestParsePreservesComponentCase(t *testing.T) {
	t.Parallel()

	reg := sigil.NewRegistry()
	err := reg.Register("MyWidget", func(_ context.Context, props sigil.Props) (any, error) {
		return props.Children, nil
	})
	if err != nil {
		t.Fatalf("Unexpected error registering component: %v", err)
	}
	tree, err := sigil.Parse(context.Background(), reg, []string{"<MyWidget>hi</MyWidget>"})
	if err != nil {
		t.Fatalf("Unexpected error parsing template: %v", err)
	}
	call, ok := tree.(*sigil.Call)
	if !ok {
		t.Fatalf("Expected to get a *sigil.Call, got %#v", tree)
	}
	if call.Name != "MyWidget" {
		t.Errorf("Expected to get %q, got %q", "MyWidget", call.Name)
	}
}

func TestParseDoctype(t *testing.T) {
	t.Parallel()

	tree, err := sigil.Parse(context.Background(), nil, []string{"<!DOCTYPE html><html><body></body></html>"})
	if err != nil {
		t.Fatalf("Unexpected error parsing template: %v", err)
	}
	want := &sigil.Call{Name: "Fragment", Children: []sigil.Node{
		&sigil.Call{Name: "Doctype", Attrs: []sigil.Attr{
			{Name: "name", Value: sigil.AttrText("html")},
		}},
		&sigil.Element{Tag: "html", Children: []sigil.Node{
			&sigil.Element{Tag: "body"},
		}},
	}}
	if !sameNode(want, tree) {
		t.Errorf("Expected to get %#v, got %#v", want, tree)
	}
}

func TestParseSelfClosingTag(t *testing.T) {
	t.Parallel()

	tree, err := sigil.Parse(context.Background(), nil, []string{`<p>one<br/><img src="x.png">two</p>`})
	if err != nil {
		t.Fatalf("Unexpected error parsing template: %v", err)
	}
	want := &sigil.Element{Tag: "p", Children: []sigil.Node{
		sigil.Text("one"),
		&sigil.Element{Tag: "br"},
		&sigil.Element{Tag: "img", Attrs: []sigil.Attr{
			{Name: "src", Value: sigil.AttrText("x.png")},
		}},
		sigil.Text("two"),
	}}
	if !sameNode(want, tree) {
		t.Errorf("Expected to get %#v, got %#v", want, tree)
	}
}

func TestParseCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	tree, err := sigil.Parse(context.Background(), nil, []string{"<p>\n\t  hello  world\n</p>"})
	if err != nil {
		t.Fatalf("Unexpected error parsing template: %v", err)
	}
	want := &sigil.Element{Tag: "p", Children: []sigil.Node{
		sigil.Text(" hello  world "),
	}}
	if !sameNode(want, tree) {
		t.Errorf("Expected to get %#v, got %#v", want, tree)
	}
}
