// Package jsonreader builds intermediate trees from JSON-like text.
//
// The grammar is deliberately restricted: quoted strings over word
// characters, null/true/false, integers and decimals, objects, homogeneous
// arrays, and the @key/#key attribute convention. Parsing is driven by
// pattern matching over a cursor rather than a tokenizer; the extent of a
// nested value is found with a bracket-balance scan.
package jsonreader

import (
	"fmt"
	"regexp"
	"strings"

	xjerrors "github.com/soldang/go-xj/errors"
	"github.com/soldang/go-xj/node"
)

// Grammar fragments, composed into the patterns below.
const (
	simpleValue = `("[\w _.-]*"|null|true|false|(?:\d+\.)?\d+)`
	simpleKey   = `"((?:\w+\.)*[\w _]*)"`
	prefixedKey = `"([@#]?(?:\w+\.)*[\w _]*)"`
	prefixKey   = `[@#](?:\w+\.)*[\w _]+`
	valueKey    = `#(?:\w+\.)*[\w _]+`
	attrKey     = `@(?:\w+\.)*[\w _]+`
)

var (
	// simpleValueFull matches a document that is nothing but one scalar,
	// optionally wrapped in braces, or an empty object.
	simpleValueFull   = regexp.MustCompile(`^(?:\{\s*` + simpleValue + `\s*}|\{\s*}|` + simpleValue + `)$`)
	simpleValueSearch = regexp.MustCompile(`\{\s*` + simpleValue + `\s*}|\{\s*}|` + simpleValue)

	// simpleKeyValueFull matches an object holding exactly one scalar pair.
	simpleKeyValueFull = regexp.MustCompile(`^\{\s*` + simpleKey + `:\s?` + simpleValue + `\s*}$`)

	// nodePattern finds the next top-level "key": value pair; group 1 is
	// the key, group 2 a scalar value, group 3 the opening bracket of a
	// nested value. arrayElementPattern plays the same role inside an
	// array context and keeps groups 2 and 3 at the same indices.
	nodePattern         = regexp.MustCompile(prefixedKey + `:\s?(?:` + simpleValue + `|([{\[]))`)
	arrayElementPattern = regexp.MustCompile(`(` + simpleValue + `,?|([{\[]))`)

	prefixKeyFull     = regexp.MustCompile(`^` + prefixKey + `$`)
	valueKeyFull      = regexp.MustCompile(`^` + valueKey + `$`)
	attrKeyFull       = regexp.MustCompile(`^` + attrKey + `$`)
	bareKeyFull       = regexp.MustCompile(`^[@#][\w _]+$`)
	simpleOnlyFull    = regexp.MustCompile(`^` + simpleValue + `$`)
	emptyBracketsFull = regexp.MustCompile(`^(?:\{\s*}|\[\s*])$`)
	simpleOrEmptyFull = regexp.MustCompile(`^(?:` + simpleValue + `|\{\s*}|\[\s*])$`)
	quotedFull        = regexp.MustCompile(`^".*"$`)

	prefixStrip = strings.NewReplacer("@", "", "#", "")
)

// Options configures a parse.
type Options struct {
	// Lenient silently skips input regions that do not match the grammar
	// instead of reporting them as syntax errors.
	Lenient bool
	// MaxDepth bounds recursion into nested values.
	MaxDepth int
}

// Parse builds a tree from JSON-like text. The text is expected to be
// normalized to a single line; see the package xj entry points.
func Parse(text string, opts Options) (*node.Node, error) {
	root := node.NewRoot()
	r := &reader{opts: opts}
	if err := r.parse(root, text, strings.HasPrefix(text, "["), 0, 0); err != nil {
		return nil, err
	}
	return root, nil
}

type reader struct {
	opts Options
}

// pair is one key -> raw subcontent entry, in insertion order. off is the
// absolute offset of the subcontent in the document.
type pair struct {
	key, value string
	off        int
}

type pairList []pair

func (pl *pairList) put(key, value string, off int) {
	for i := range *pl {
		if (*pl)[i].key == key {
			(*pl)[i].value = value
			(*pl)[i].off = off
			return
		}
	}
	*pl = append(*pl, pair{key: key, value: value, off: off})
}

func (pl pairList) contains(key string) bool {
	for _, p := range pl {
		if p.key == key {
			return true
		}
	}
	return false
}

// parse consumes content into root. base is the absolute offset of content
// in the document; isArray marks an array context, where members get
// synthetic element(i) keys.
func (r *reader) parse(root *node.Node, content string, isArray bool, depth, base int) error {
	if depth > r.opts.MaxDepth {
		return xjerrors.Syntax(xjerrors.FormatJSON, base, content, "maximum nesting depth exceeded")
	}
	if isArray {
		content = content[1:]
		base++
	}
	if simpleValueFull.MatchString(content) {
		root.SetValue(simpleValue1(content))
		return nil
	}
	if m := simpleKeyValueFull.FindStringSubmatch(content); m != nil {
		root.AddChild(node.New(root, m[1], m[2], false))
		return nil
	}

	pairs, err := r.scanPairs(content, isArray, base)
	if err != nil {
		return err
	}

	pairs = correctKeys(pairs, root)
	if hasParentAttributes(pairs) {
		for _, p := range pairs {
			switch {
			case attrKeyFull.MatchString(p.key):
				root.AddAttr(formatAttr(p.key, p.value))
			case valueKeyFull.MatchString(p.key):
				if simpleOnlyFull.MatchString(p.value) {
					root.SetValue(p.value)
				} else if err := r.parse(root, p.value, strings.HasPrefix(p.value, "["), depth+1, p.off); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, p := range pairs {
		sub := strings.HasPrefix(p.value, "[")
		child := node.NewContainer(root, p.key, sub)
		if err := r.parse(child, p.value, sub, depth+1, p.off); err != nil {
			return err
		}
		root.AddChild(child)
	}
	return nil
}

// scanPairs walks content left to right collecting top-level key/value
// pairs (or successive array members), using a bracket-balance scan to
// find the extent of nested values.
func (r *reader) scanPairs(content string, isArray bool, base int) (pairList, error) {
	var pairs pairList
	pattern := nodePattern
	if isArray {
		pattern = arrayElementPattern
	}
	cursor, index := 0, 0
	for {
		m := pattern.FindStringSubmatchIndex(content[cursor:])
		if m == nil {
			break
		}
		if err := r.checkSkipped(content[cursor:cursor+m[0]], base+cursor); err != nil {
			return nil, err
		}

		var key string
		if isArray {
			key = fmt.Sprintf("element(%d)", index)
		} else {
			key = content[cursor+m[2] : cursor+m[3]]
		}

		var sub string
		var cut int
		if m[4] >= 0 { // scalar value
			sub = content[cursor+m[4] : cursor+m[5]]
			cut = cursor + m[5]
		} else { // nested value starting at the bracket
			start := cursor + m[6]
			var balanced bool
			sub, balanced = subContent(content[start:])
			if !balanced && !r.opts.Lenient {
				return nil, xjerrors.Syntax(xjerrors.FormatJSON, base+start, content[start:], "unbalanced brackets")
			}
			cut = start + len(sub)
		}
		pairs.put(key, sub, base+cut-len(sub))
		cursor = cut
		index++
	}
	if err := r.checkTrailing(content[cursor:], base+cursor); err != nil {
		return nil, err
	}
	return pairs, nil
}

// checkSkipped validates text passed over between two pairs. Only the
// enclosing brace and separators are expected there.
func (r *reader) checkSkipped(skipped string, off int) error {
	if r.opts.Lenient {
		return nil
	}
	for i := 0; i < len(skipped); i++ {
		switch skipped[i] {
		case ' ', '\t', '\n', '\r', '{', ',':
		default:
			return xjerrors.Syntax(xjerrors.FormatJSON, off+i, skipped[i:], "unexpected content")
		}
	}
	return nil
}

// checkTrailing validates whatever remains after the last pair: closing
// brackets and separators only.
func (r *reader) checkTrailing(rest string, off int) error {
	if r.opts.Lenient {
		return nil
	}
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case ' ', '\t', '\n', '\r', '}', ']', ',':
		default:
			return xjerrors.Syntax(xjerrors.FormatJSON, off+i, rest[i:], "unexpected content")
		}
	}
	return nil
}

// subContent returns the prefix of s spanning one balanced bracket group.
// It counts only the bracket family s opens with, so nested groups of the
// other family pass through. The bool is false when s never balances; the
// whole remainder is returned in that case.
func subContent(s string) (string, bool) {
	open, close := byte('{'), byte('}')
	if strings.HasPrefix(s, "[") {
		open, close = '[', ']'
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return s, false
}

// correctKeys applies the attribute/child disambiguation rules to a pair
// set. A set is kept in attribute form only when every key is prefixed, at
// least one is a #-value key naming the enclosing node, and every @-key
// holds a scalar or empty brackets. Otherwise stray prefixes are stripped
// and the pairs become ordinary children. Bare one-character keys are
// dropped, as is a prefixed key shadowed by its unprefixed sibling.
func correctKeys(pairs pairList, root *node.Node) pairList {
	attributes := len(pairs) > 0
	hasValueKey := false
	for _, p := range pairs {
		if !prefixKeyFull.MatchString(p.key) {
			attributes = false
		}
		if valueKeyFull.MatchString(p.key) {
			hasValueKey = true
		}
	}
	attributes = attributes && hasValueKey
	for _, p := range pairs {
		if strings.HasPrefix(p.key, "#") && len(p.key) > 1 && p.key != "#"+root.Name() {
			attributes = false
		}
		if strings.HasPrefix(p.key, "@") && len(p.key) > 1 && !simpleOrEmptyFull.MatchString(p.value) {
			attributes = false
		}
	}

	var corrected pairList
	for _, p := range pairs {
		if p.key == "" || p.key == "@" || p.key == "#" {
			continue
		}
		if bareKeyFull.MatchString(p.key) && pairs.contains(p.key[1:]) {
			continue
		}
		if !attributes {
			corrected.put(prefixStrip.Replace(p.key), p.value, p.off)
			continue
		}
		v := p.value
		if emptyBracketsFull.MatchString(v) {
			v = ""
		}
		corrected.put(p.key, v, p.off)
	}
	return corrected
}

// hasParentAttributes reports whether a corrected pair set describes the
// enclosing node (attributes and value) rather than children.
func hasParentAttributes(pairs pairList) bool {
	if len(pairs) == 0 {
		return false
	}
	for _, p := range pairs {
		if !prefixKeyFull.MatchString(p.key) {
			return false
		}
	}
	return true
}

// formatAttr turns an @key pair into a typed attribute. The stored value
// is bare: null collapses to the empty string and quotes are removed.
func formatAttr(key, value string) node.Attr {
	switch {
	case value == "null":
		value = ""
	case quotedFull.MatchString(value):
		value = value[1 : len(value)-1]
	}
	return node.Attr{Key: key[1:], Value: value}
}

// simpleValue1 extracts the scalar from a document matched by
// simpleValueFull and formats it into stored form.
func simpleValue1(content string) string {
	m := simpleValueSearch.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	value := m[1]
	if value == "" {
		value = m[2]
	}
	if value == "" { // empty object
		value = `""`
	}
	if value == "null" || quotedFull.MatchString(value) {
		return value
	}
	return fmt.Sprintf("%q", value)
}
