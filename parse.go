package sigil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var (
	// ErrNoSegments is returned when a template has no literal segments
	// at all. Even an empty template is one empty segment.
	ErrNoSegments = errors.New("need at least one template segment")

	// ErrBadMarkup is returned when a template's markup is not
	// well-formed: a closing tag with no matching open element, or an
	// element left unclosed at the end of the template.
	ErrBadMarkup = errors.New("malformed markup")
)

// tracer returns the tracer spans are started from, resolved lazily so a
// TracerProvider registered after init is picked up.
func tracer() trace.Tracer {
	return otel.Tracer("impractical.co/sigil")
}

// Parse parses a template into its positional tree without rendering it,
// caching the result in the Registry. The cache is keyed by the identity of
// the segments slice, not its contents: pass the same slice (a package-level
// var, typically) and the template parses exactly once; rebuild the slice
// per call and it re-parses every time. A nil Registry means
// DefaultRegistry.
func Parse(ctx context.Context, reg *Registry, segments []string) (Node, error) {
	if len(segments) < 1 {
		return nil, ErrNoSegments
	}
	if reg == nil {
		reg = DefaultRegistry
	}
	key := treeKey{first: &segments[0], length: len(segments)}
	if tree := reg.cachedTree(key); tree != nil {
		return tree, nil
	}
	tree, err := ParseString(ctx, reg, joinSegments(segments))
	if err != nil {
		return nil, err
	}
	reg.setCachedTree(key, tree)
	return tree, nil
}

// ParseString parses a single string that already has marker tokens
// embedded in it, for callers that build their tokens themselves with
// EncodeMarker. The result is not cached; ParseString has no segment
// identity to key a cache on. A nil Registry means DefaultRegistry.
func ParseString(ctx context.Context, reg *Registry, raw string) (Node, error) {
	if reg == nil {
		reg = DefaultRegistry
	}
	_, span := tracer().Start(ctx, "sigil.parse", trace.WithAttributes(
		attribute.Int("sigil.template_bytes", len(raw)),
	))
	defer span.End()

	doc, err := parseMarkup(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	tree, err := transformDocument(doc, reg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return tree, nil
}

// voidElements are the elements that never have closing tags or children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// parseMarkup tokenizes raw markup into a generic node tree under a single
// document node. It drives the golang.org/x/net/html
// tokenizer directly rather than using html.Parse: the full HTML5 tree
// construction algorithm lowercases every tag name and moves content around
// to match browser recovery behavior, but Component tags need their
// capitalization intact and every node left where the template put it, so
// tags are recovered from the raw token bytes and nesting is tracked with a
// plain stack. Markup that doesn't nest cleanly is an ErrBadMarkup, not
// something to recover from.
func parseMarkup(raw string) (*html.Node, error) {
	tokens := html.NewTokenizer(strings.NewReader(raw))
	root := &html.Node{Type: html.DocumentNode}
	open := []*html.Node{root}
	for {
		kind := tokens.Next()
		if kind == html.ErrorToken {
			if err := tokens.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: %v", ErrBadMarkup, err)
			}
			break
		}
		// the tokenizer lowercases tag names; take them from the raw
		// bytes instead
		var name string
		switch kind {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name = rawTagName(tokens.Raw())
		}
		token := tokens.Token()
		parent := open[len(open)-1]
		switch kind {
		case html.TextToken:
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: token.Data})
		case html.StartTagToken, html.SelfClosingTagToken:
			node := &html.Node{Type: html.ElementNode, Data: name, Attr: token.Attr}
			parent.AppendChild(node)
			if kind == html.StartTagToken && !voidElements[token.Data] {
				open = append(open, node)
			}
		case html.EndTagToken:
			if len(open) < 2 || !strings.EqualFold(parent.Data, name) {
				return nil, fmt.Errorf("%w: unexpected closing tag </%s>", ErrBadMarkup, name)
			}
			open = open[:len(open)-1]
		case html.CommentToken:
			parent.AppendChild(&html.Node{Type: html.CommentNode, Data: token.Data})
		case html.DoctypeToken:
			parent.AppendChild(&html.Node{Type: html.DoctypeNode, Data: token.Data})
		}
	}
	if len(open) > 1 {
		return nil, fmt.Errorf("%w: unclosed element <%s>", ErrBadMarkup, open[len(open)-1].Data)
	}
	return root, nil
}

// rawTagName extracts a tag's name, capitalization intact, from the raw
// bytes of a start, end, or self-closing tag token.
func rawTagName(raw []byte) string {
	name := raw[1:] // drop the '<'
	if len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	for pos := 0; pos < len(name); pos++ {
		switch name[pos] {
		case ' ', '\t', '\n', '\r', '\f', '/', '>':
			return string(name[:pos])
		}
	}
	return string(name)
}
