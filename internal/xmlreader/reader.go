// Package xmlreader builds intermediate trees from XML-like text.
//
// One tag is recognized at a time: an opening tag with an optional
// attribute list, followed either by a self-closing slash, or by content up
// to the matching close tag of the same name. Matching close tags are
// found by balancing occurrences of that one tag name, so same-named
// nesting is handled as long as the document is well formed.
package xmlreader

import (
	"regexp"
	"strings"
	"sync"

	xjerrors "github.com/soldang/go-xj/errors"
	"github.com/soldang/go-xj/node"
)

var (
	// tagPattern matches the next opening or self-closing tag: name,
	// raw attribute text, and the self-closing slash.
	tagPattern = regexp.MustCompile(`<(\w+)((?:\s[^<>]*?)?)(/?)>`)

	// attrPattern re-matches raw attribute text against the stricter
	// attribute grammar; single-quoted values are accepted and
	// normalized to double quotes by the bare Attr representation.
	attrPattern = regexp.MustCompile(`\s+(\w*)\s*=\s*("[\w.]*"|'[\w.]*')`)

	nameRes   = map[string]*regexp.Regexp{}
	nameResMu sync.Mutex
)

// Options configures a parse.
type Options struct {
	// Lenient silently skips regions that do not match the grammar
	// instead of reporting them as syntax errors.
	Lenient bool
	// MaxDepth bounds recursion into nested elements.
	MaxDepth int
}

// Parse builds a tree from XML-like text. The root node is anonymous; a
// document with one top-level element is unwrapped at render time.
func Parse(text string, opts Options) (*node.Node, error) {
	root := node.NewRoot()
	r := &reader{opts: opts}
	if err := r.parseSiblings(root, text, 0, 0); err != nil {
		return nil, err
	}
	return root, nil
}

type reader struct {
	opts Options
}

// parseSiblings consumes a sequence of sibling elements from content,
// attaching them to parent. base is the absolute offset of content in the
// document.
func (r *reader) parseSiblings(parent *node.Node, content string, depth, base int) error {
	if depth > r.opts.MaxDepth {
		return xjerrors.Syntax(xjerrors.FormatXML, base, content, "maximum nesting depth exceeded")
	}
	cursor := 0
	for {
		m := tagPattern.FindStringSubmatchIndex(content[cursor:])
		if m == nil {
			return r.checkText(content[cursor:], base+cursor)
		}
		if err := r.checkText(content[cursor:cursor+m[0]], base+cursor); err != nil {
			return err
		}

		name := content[cursor+m[2] : cursor+m[3]]
		rawAttrs := content[cursor+m[4] : cursor+m[5]]
		selfClosing := m[6] != m[7]
		openEnd := cursor + m[1]

		var elem *node.Node
		if selfClosing {
			elem = node.New(parent, name, "null", false)
			cursor = openEnd
		} else {
			inner, after, ok := matchClose(content, openEnd, name)
			if !ok {
				if !r.opts.Lenient {
					return xjerrors.Syntax(xjerrors.FormatXML, base+cursor+m[0], content[cursor+m[0]:], "missing closing tag for <"+name+">")
				}
				// Skip just the open tag; inner tags may still match
				// as siblings.
				cursor = openEnd
				continue
			}
			if strings.ContainsAny(inner, "<>") {
				elem = node.NewContainer(parent, name, false)
				if err := r.parseSiblings(elem, inner, depth+1, base+openEnd); err != nil {
					return err
				}
			} else {
				elem = node.New(parent, name, inner, false)
			}
			cursor = after
		}

		for _, am := range attrPattern.FindAllStringSubmatch(rawAttrs, -1) {
			elem.AddAttr(node.Attr{Key: am[1], Value: unquote(am[2])})
		}
		parent.AddChild(elem)
	}
}

// matchClose scans content from openEnd for the close tag matching an
// already-consumed <name> open tag, balancing same-named opens along the
// way. It returns the inner content and the offset just past the close.
func matchClose(content string, openEnd int, name string) (inner string, after int, ok bool) {
	re := nameRe(name)
	depth := 1
	pos := openEnd
	for {
		m := re.FindStringSubmatchIndex(content[pos:])
		if m == nil {
			return "", 0, false
		}
		switch {
		case m[2] != m[3]: // close tag
			depth--
			if depth == 0 {
				return content[openEnd : pos+m[0]], pos + m[1], true
			}
		case m[4] != m[5]: // self-closing, no depth change
		default: // open tag
			depth++
		}
		pos += m[1]
	}
}

// nameRe returns a pattern matching open, close, and self-closing forms of
// one specific tag name.
func nameRe(name string) *regexp.Regexp {
	nameResMu.Lock()
	defer nameResMu.Unlock()
	if re, ok := nameRes[name]; ok {
		return re
	}
	re := regexp.MustCompile(`<(/?)` + regexp.QuoteMeta(name) + `(?:\s[^<>]*?)?(/?)>`)
	nameRes[name] = re
	return re
}

// checkText validates loose text between tags. The restricted grammar has
// no mixed content, so anything but whitespace is an error in strict mode.
func (r *reader) checkText(text string, off int) error {
	if r.opts.Lenient {
		return nil
	}
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		return xjerrors.Syntax(xjerrors.FormatXML, off+strings.Index(text, trimmed[:1]), trimmed, "unexpected text outside a leaf element")
	}
	return nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
