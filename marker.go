package sigil

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	markerPrefix = "[[["
	markerSuffix = "]]]"
)

// EncodeMarker returns the text token that stands in for the substitution at
// the passed position. The token survives markup parsing as ordinary text,
// in both text content and attribute values, and is split back out by the
// transformer. Callers assembling their own marker-embedded markup for
// ParseString should build their tokens with this function.
func EncodeMarker(index int) string {
	return markerPrefix + strconv.Itoa(index) + markerSuffix
}

// joinSegments interleaves a template's literal segments with marker tokens,
// producing the single marker-embedded string that gets parsed. Segment i is
// followed by the token for substitution i, except the last.
func joinSegments(segments []string) string {
	var joined strings.Builder
	for pos, segment := range segments {
		if pos > 0 {
			joined.WriteString(EncodeMarker(pos - 1))
		}
		joined.WriteString(segment)
	}
	return joined.String()
}

// markerPart is one piece of a marker-split string: a substitution position
// when ref is set, a literal otherwise.
type markerPart struct {
	literal string
	index   int
	ref     bool
}

// splitMarkers splits text on marker tokens, returning literals interleaved
// with substitution positions, in order. Text without tokens comes back as a
// single literal, including empty text. A bracket run that isn't a
// well-formed token stays part of the surrounding literal.
func splitMarkers(text string) []markerPart {
	var parts []markerPart
	var literal strings.Builder
	rest := text
	for {
		start := strings.Index(rest, markerPrefix)
		if start < 0 {
			break
		}
		bodyStart := start + len(markerPrefix)
		end := strings.Index(rest[bodyStart:], markerSuffix)
		if end < 0 {
			break
		}
		index, ok := markerIndex(rest[bodyStart : bodyStart+end])
		if !ok {
			literal.WriteString(rest[:bodyStart])
			rest = rest[bodyStart:]
			continue
		}
		literal.WriteString(rest[:start])
		if literal.Len() > 0 {
			parts = append(parts, markerPart{literal: literal.String()})
			literal.Reset()
		}
		parts = append(parts, markerPart{index: index, ref: true})
		rest = rest[bodyStart+end+len(markerSuffix):]
	}
	literal.WriteString(rest)
	if literal.Len() > 0 || len(parts) == 0 {
		parts = append(parts, markerPart{literal: literal.String()})
	}
	return parts
}

// markerIndex parses the decimal body of a marker token. Only plain digit
// runs count; signs, spaces, and empty bodies don't make a token.
func markerIndex(body string) (int, bool) {
	if body == "" {
		return 0, false
	}
	for _, char := range body {
		if char < '0' || char > '9' {
			return 0, false
		}
	}
	index, err := strconv.Atoi(body)
	if err != nil {
		return 0, false
	}
	return index, true
}

// collapseWhitespace reduces a leading or trailing whitespace run to a single
// space. Interior whitespace is untouched, so formatting indentation around
// text collapses without fusing adjacent words.
func collapseWhitespace(text string) string {
	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	if trimmed != text {
		text = " " + trimmed
	}
	trimmed = strings.TrimRightFunc(text, unicode.IsSpace)
	if trimmed != text {
		text = trimmed + " "
	}
	return text
}

// decodeText decodes a text node's content into positional nodes: whitespace
// is collapsed, marker tokens become Refs, and empty literals at token
// boundaries are dropped. The result is spliced into the parent's child
// list, so a text node that is exactly one token contributes a bare Ref.
func decodeText(text string) []Node {
	parts := splitMarkers(collapseWhitespace(text))
	nodes := make([]Node, 0, len(parts))
	for _, part := range parts {
		if part.ref {
			nodes = append(nodes, Ref(part.index))
			continue
		}
		if part.literal == "" {
			continue
		}
		nodes = append(nodes, Text(part.literal))
	}
	return nodes
}

// decodeAttr decodes an attribute's raw value. Unlike text content,
// attribute values keep their whitespace exactly; collapsing would corrupt
// values that mean their spacing.
func decodeAttr(value string) AttrValue {
	parts := splitMarkers(value)
	values := make(AttrParts, 0, len(parts))
	for _, part := range parts {
		if part.ref {
			values = append(values, AttrRef(part.index))
			continue
		}
		if part.literal == "" {
			continue
		}
		values = append(values, AttrText(part.literal))
	}
	switch len(values) {
	case 0:
		return AttrText("")
	case 1:
		return values[0]
	}
	return values
}
