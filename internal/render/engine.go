// Package render implements the template engine behind note bodies and
// file names: a mustache-style renderer with a pluggable escape function
// and a fixed registry of named section helpers. Helpers are consulted for
// section names before the record, so templates can invoke transformations
// without the data carrying callables.
package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"meetnote/internal/record"
)

// EscapeFunc transforms an interpolated value before it is written out.
type EscapeFunc func(string) string

// Helper renders a named template section. raw is the un-rendered section
// body as it appears in the template; renderInner renders a template
// fragment against the current context (with identity escaping, since
// helper results are typically re-parsed rather than emitted directly).
type Helper func(raw string, renderInner func(string) (string, error)) (string, error)

// Registry maps section names to helpers.
type Registry map[string]Helper

// Renderer renders templates against a Record. Escape may be nil for
// identity escaping.
type Renderer struct {
	Helpers Registry
	Escape  EscapeFunc
}

type nodeKind int

const (
	nodeText nodeKind = iota
	nodeVar
	nodeRawVar
	nodeSection
	nodeInverted
)

type node struct {
	kind     nodeKind
	text     string // literal text, or tag name
	raw      string // sections: un-rendered body, for helper invocation
	children []*node
}

// Render renders src against rec.
func (r *Renderer) Render(src string, rec *record.Record) (string, error) {
	nodes, err := parse(src)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := r.renderNodes(&sb, nodes, []*record.Record{rec}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *Renderer) renderNodes(sb *strings.Builder, nodes []*node, stack []*record.Record) error {
	for _, n := range nodes {
		switch n.kind {
		case nodeText:
			sb.WriteString(n.text)

		case nodeVar, nodeRawVar:
			s := stringify(lookup(stack, n.text))
			if n.kind == nodeVar && r.Escape != nil {
				s = r.Escape(s)
			}
			sb.WriteString(s)

		case nodeSection:
			if helper, ok := r.Helpers[n.text]; ok {
				inner := &Renderer{Helpers: r.Helpers}
				out, err := helper(n.raw, func(fragment string) (string, error) {
					return inner.renderWith(fragment, stack)
				})
				if err != nil {
					return fmt.Errorf("section %q: %w", n.text, err)
				}
				sb.WriteString(out)
				continue
			}
			v := lookup(stack, n.text)
			if list, ok := v.([]*record.Record); ok {
				for _, member := range list {
					if err := r.renderNodes(sb, n.children, append(stack, member)); err != nil {
						return err
					}
				}
				continue
			}
			if nested, ok := v.(*record.Record); ok {
				if err := r.renderNodes(sb, n.children, append(stack, nested)); err != nil {
					return err
				}
				continue
			}
			if truthy(v) {
				if err := r.renderNodes(sb, n.children, stack); err != nil {
					return err
				}
			}

		case nodeInverted:
			if _, ok := r.Helpers[n.text]; ok {
				continue
			}
			if !truthy(lookup(stack, n.text)) {
				if err := r.renderNodes(sb, n.children, stack); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (r *Renderer) renderWith(src string, stack []*record.Record) (string, error) {
	nodes, err := parse(src)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := r.renderNodes(&sb, nodes, stack); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// lookup walks the context stack innermost-first. A missing name resolves
// to nil, which renders as empty.
func lookup(stack []*record.Record, name string) any {
	for i := len(stack) - 1; i >= 0; i-- {
		if v, ok := stack[i].Get(name); ok {
			return v
		}
	}
	return nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case *record.Record, []*record.Record:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case *record.Record:
		return true
	case []*record.Record:
		return len(val) > 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}

// --- parsing ---

type tokenKind int

const (
	tokText tokenKind = iota
	tokVar
	tokRawVar
	tokSection
	tokInverted
	tokClose
	tokComment
)

type token struct {
	kind tokenKind
	text string // literal text or tag name
	// srcEnd is the offset just past the token in the source; sections use
	// it to capture their raw body.
	srcStart, srcEnd int
}

func parse(src string) ([]*node, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	stripStandalone(tokens)
	return buildTree(src, tokens)
}

func tokenize(src string) ([]token, error) {
	var tokens []token
	pos := 0
	for pos < len(src) {
		open := strings.Index(src[pos:], "{{")
		if open < 0 {
			tokens = append(tokens, token{kind: tokText, text: src[pos:], srcStart: pos, srcEnd: len(src)})
			break
		}
		open += pos
		if open > pos {
			tokens = append(tokens, token{kind: tokText, text: src[pos:open], srcStart: pos, srcEnd: open})
		}

		// Triple mustache: unescaped interpolation.
		if strings.HasPrefix(src[open:], "{{{") {
			end := strings.Index(src[open+3:], "}}}")
			if end < 0 {
				return nil, errors.New("template: unclosed {{{ tag")
			}
			name := strings.TrimSpace(src[open+3 : open+3+end])
			tokens = append(tokens, token{kind: tokRawVar, text: name, srcStart: open, srcEnd: open + 3 + end + 3})
			pos = open + 3 + end + 3
			continue
		}

		end := strings.Index(src[open+2:], "}}")
		if end < 0 {
			return nil, errors.New("template: unclosed {{ tag")
		}
		content := strings.TrimSpace(src[open+2 : open+2+end])
		tagEnd := open + 2 + end + 2

		tok := token{srcStart: open, srcEnd: tagEnd}
		switch {
		case content == "":
			return nil, errors.New("template: empty tag")
		case content[0] == '#':
			tok.kind = tokSection
			tok.text = strings.TrimSpace(content[1:])
		case content[0] == '^':
			tok.kind = tokInverted
			tok.text = strings.TrimSpace(content[1:])
		case content[0] == '/':
			tok.kind = tokClose
			tok.text = strings.TrimSpace(content[1:])
		case content[0] == '!':
			tok.kind = tokComment
		case content[0] == '&':
			tok.kind = tokRawVar
			tok.text = strings.TrimSpace(content[1:])
		case content[0] == '>':
			return nil, errors.New("template: partials are not supported")
		default:
			tok.kind = tokVar
			tok.text = content
		}
		tokens = append(tokens, tok)
		pos = tagEnd
	}
	return tokens, nil
}

// stripStandalone removes the line remnants around section, inverted,
// close, and comment tags that stand alone on a line, so block constructs
// do not leave blank lines in the output.
func stripStandalone(tokens []token) {
	for i := range tokens {
		switch tokens[i].kind {
		case tokSection, tokInverted, tokClose, tokComment:
		default:
			continue
		}

		// Text before the tag must be line-leading whitespace.
		var pre *token
		if i > 0 {
			if tokens[i-1].kind != tokText {
				continue
			}
			pre = &tokens[i-1]
		}
		preTail := ""
		preCut := 0
		if pre != nil {
			if idx := strings.LastIndexByte(pre.text, '\n'); idx >= 0 {
				preTail = pre.text[idx+1:]
				preCut = idx + 1
			} else if pre.srcStart == 0 {
				preTail = pre.text
				preCut = 0
			} else {
				continue
			}
			if strings.TrimLeft(preTail, " \t") != "" {
				continue
			}
		}

		// Text after the tag must be whitespace up to a newline or EOF.
		var post *token
		if i+1 < len(tokens) {
			if tokens[i+1].kind != tokText {
				continue
			}
			post = &tokens[i+1]
		}
		postCut := -1
		if post != nil {
			rest := post.text
			j := 0
			for j < len(rest) && (rest[j] == ' ' || rest[j] == '\t') {
				j++
			}
			switch {
			case j >= len(rest):
				// Whitespace to EOF counts only if this really is the end.
				if i+2 != len(tokens) {
					continue
				}
				postCut = len(rest)
			case rest[j] == '\n':
				postCut = j + 1
			case rest[j] == '\r' && j+1 < len(rest) && rest[j+1] == '\n':
				postCut = j + 2
			default:
				continue
			}
		}

		if pre != nil {
			pre.text = pre.text[:preCut]
		}
		if post != nil && postCut >= 0 {
			post.text = post.text[postCut:]
		}
	}
}

func buildTree(src string, tokens []token) ([]*node, error) {
	root := &node{kind: nodeSection}
	stack := []*node{root}
	// openEnds tracks where each open section's body starts in src.
	openEnds := []int{0}

	for _, tok := range tokens {
		top := stack[len(stack)-1]
		switch tok.kind {
		case tokText:
			if tok.text != "" {
				top.children = append(top.children, &node{kind: nodeText, text: tok.text})
			}
		case tokVar:
			top.children = append(top.children, &node{kind: nodeVar, text: tok.text})
		case tokRawVar:
			top.children = append(top.children, &node{kind: nodeRawVar, text: tok.text})
		case tokSection, tokInverted:
			kind := nodeSection
			if tok.kind == tokInverted {
				kind = nodeInverted
			}
			n := &node{kind: kind, text: tok.text}
			top.children = append(top.children, n)
			stack = append(stack, n)
			openEnds = append(openEnds, tok.srcEnd)
		case tokClose:
			if len(stack) == 1 {
				return nil, fmt.Errorf("template: unexpected closing tag %q", tok.text)
			}
			if top.text != tok.text {
				return nil, fmt.Errorf("template: closing tag %q does not match %q", tok.text, top.text)
			}
			top.raw = src[openEnds[len(openEnds)-1]:tok.srcStart]
			stack = stack[:len(stack)-1]
			openEnds = openEnds[:len(openEnds)-1]
		case tokComment:
			// dropped
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("template: unclosed section %q", stack[len(stack)-1].text)
	}
	return root.children, nil
}
