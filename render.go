package sigil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.opentelemetry.io/otel/codes"
)

var (
	// ErrSegmentValueMismatch is returned when a template's segment and
	// value counts don't line up. A template with n substitution points
	// has n+1 literal segments, one on each side of every substitution.
	ErrSegmentValueMismatch = errors.New("template needs exactly one more segment than values")

	// ErrSubstitutionOutOfRange is returned when a tree references a
	// substitution position past the end of the value slice it's being
	// rendered with. Positions aren't checked at parse time; the tree is
	// substitution-independent and only a render call has a value slice
	// to check against.
	ErrSubstitutionOutOfRange = errors.New("substitution index out of range")
)

// RenderOps defines one render target as the three operations the renderer
// core needs: how to render a substitution value, how to combine a rendered
// element, and how to combine a list of rendered children. TextOps is the
// text target; other targets plug in the same way through RenderNode.
//
// Literal template text never goes through Value; it flows into Children
// and Element as plain strings, so every implementation must accept string
// outputs alongside its own.
type RenderOps interface {
	// Value renders one substitution value.
	Value(sub any) any

	// Element combines an element's tag name, resolved attributes, and
	// combined children output into the element's output.
	Element(tag string, attrs []RenderedAttr, children any) any

	// Children combines an ordered list of child outputs into one unit.
	// It is only called once every child in the list has settled.
	Children(outputs []any) any
}

// Render renders a template to the Writer. The template's literal segments
// and its substitution values are passed separately, one more segment than
// values. If rendering fails nothing is written; the error is logged to the
// logger in the context (see LoggingContext). A nil Registry means
// DefaultRegistry.
func Render(ctx context.Context, out io.Writer, reg *Registry, segments []string, values ...any) {
	rendered, err := RenderString(ctx, reg, segments, values...)
	if err != nil {
		logger(ctx).ErrorContext(ctx, "error rendering template", "error", err)
		return
	}
	_, err = io.WriteString(out, rendered)
	if err != nil {
		logger(ctx).ErrorContext(ctx, "error writing rendered template", "error", err)
	}
}

// RenderString renders a template to text, parsing it (or fetching its
// cached tree) and rendering against the passed values through TextOps. A
// nil Registry means DefaultRegistry.
func RenderString(ctx context.Context, reg *Registry, segments []string, values ...any) (string, error) {
	if len(segments) != len(values)+1 {
		return "", fmt.Errorf("%d segments with %d values: %w", len(segments), len(values), ErrSegmentValueMismatch)
	}
	tree, err := Parse(ctx, reg, segments)
	if err != nil {
		return "", err
	}
	out, err := RenderNode(ctx, tree, values, TextOps{})
	if err != nil {
		return "", err
	}
	return stringify(out), nil
}

// RenderNode renders a positional tree against a substitution slice through
// the passed render target. The tree is not modified and can be rendered
// again, concurrently, with other value slices.
func RenderNode(ctx context.Context, tree Node, values []any, ops RenderOps) (any, error) {
	ctx, span := tracer().Start(ctx, "sigil.render")
	defer span.End()

	out, err := renderNode(ctx, tree, values, ops)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return out, nil
}

func renderNode(ctx context.Context, node Node, values []any, ops RenderOps) (any, error) {
	switch node := node.(type) {
	case Text:
		// literals bypass Value and flow to the combiners as-is
		return string(node), nil
	case Ref:
		sub, err := substitution(values, int(node))
		if err != nil {
			return nil, err
		}
		return ops.Value(sub), nil
	case *Element:
		attrs, err := resolveAttrs(node.Attrs, values)
		if err != nil {
			return nil, fmt.Errorf("error rendering <%s>: %w", node.Tag, err)
		}
		children, err := renderChildren(ctx, node.Children, values, ops)
		if err != nil {
			return nil, err
		}
		return ops.Element(node.Tag, attrs, children), nil
	case *Call:
		attrs, err := resolveAttrs(node.Attrs, values)
		if err != nil {
			return nil, fmt.Errorf("error rendering <%s>: %w", node.Name, err)
		}
		children, err := renderChildren(ctx, node.Children, values, ops)
		if err != nil {
			return nil, err
		}
		out, err := node.Fn(ctx, Props{Attrs: attrMap(attrs), Children: children})
		if err != nil {
			return nil, fmt.Errorf("error rendering component %s: %w", node.Name, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unhandled node type %T", node)
}

// renderChildren renders a node's children and combines their outputs. Each
// child renders independently: children whose subtrees invoke Components
// may block, so each of those gets its own goroutine and siblings overlap
// in time; purely static children render inline. Outputs are buffered by
// child position and combined only after every child has settled, so the
// combined output is always in document order no matter which sibling
// finished first. If children failed, the first failure in document order
// wins. There is no early abort: a failed sibling doesn't cancel the
// others, every child runs to completion.
func renderChildren(ctx context.Context, children []Node, values []any, ops RenderOps) (any, error) {
	outputs := make([]any, len(children))
	errs := make([]error, len(children))
	var pending sync.WaitGroup
	for pos, child := range children {
		if !hasCall(child) {
			outputs[pos], errs[pos] = renderNode(ctx, child, values, ops)
			continue
		}
		pending.Add(1)
		go func() {
			defer pending.Done()
			outputs[pos], errs[pos] = renderNode(ctx, child, values, ops)
		}()
	}
	pending.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return ops.Children(outputs), nil
}

// substitution resolves a substitution position against the value slice,
// range-checking it.
func substitution(values []any, index int) (any, error) {
	if index < 0 || index >= len(values) {
		return nil, fmt.Errorf("index %d with %d values: %w", index, len(values), ErrSubstitutionOutOfRange)
	}
	return values[index], nil
}
