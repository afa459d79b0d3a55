// Package node defines the intermediate tree representation shared by the
// JSON and XML codecs. A Node carries a name, an optional pre-quoted scalar
// value, an ordered attribute list, and an ordered child list. Trees are
// built by the readers and only read by the serializers.
package node

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderName matches the synthetic names given to array members during
// JSON parsing; they are normalized to the bare name "element" so that
// same-named siblings are recognized as an array.
var placeholderName = regexp.MustCompile(`^element\(\d+\)$`)

// quotedOrNull reports whether a raw value is already in stored form.
var quotedOrNull = regexp.MustCompile(`^(?:".*"|null)$`)

// An Attr is a single key/value attribute of a Node. The value is stored
// bare, without surrounding quotes.
type Attr struct {
	Key   string
	Value string
}

// String renders the attribute in its canonical `key = "value"` form.
func (a Attr) String() string {
	return fmt.Sprintf("%s = %q", a.Key, a.Value)
}

// A Node is a single element of the intermediate tree.
//
// The value is kept pre-quoted: raw scalars are wrapped in double quotes at
// construction unless they already look like a quoted string or are the
// literal null. A node with children ignores its value when rendered.
type Node struct {
	name     string
	path     string
	value    string
	attrs    []Attr
	children []*Node
	isArray  bool
}

// New constructs a node under parent (which may be nil for a top-level
// node). The raw value is formatted into stored form, the path is derived
// from the parent, and array placeholder names are normalized.
func New(parent *Node, name, value string, isArray bool) *Node {
	if placeholderName.MatchString(name) {
		name = "element"
	}
	n := &Node{
		name:    name,
		value:   formatValue(value),
		isArray: isArray,
	}
	if parent == nil || parent.path == "" {
		n.path = name
	} else {
		n.path = parent.path + ", " + name
	}
	return n
}

// NewContainer constructs a node that is expected to receive children. Its
// value is the stored empty string, which is ignored once children exist.
func NewContainer(parent *Node, name string, isArray bool) *Node {
	return New(parent, name, "", isArray)
}

// NewRoot constructs the anonymous document root.
func NewRoot() *Node {
	return &Node{}
}

// Name returns the element or key name.
func (n *Node) Name() string { return n.name }

// Path returns the comma-joined ancestry of the node. It is informational
// only; neither codec consults it.
func (n *Node) Path() string { return n.path }

// Value returns the stored (pre-quoted) scalar value.
func (n *Node) Value() string { return n.value }

// Attrs returns the attributes in insertion order.
func (n *Node) Attrs() []Attr { return n.attrs }

// Children returns the child nodes in document order.
func (n *Node) Children() []*Node { return n.children }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// IsArray reports whether the node renders as an array.
func (n *Node) IsArray() bool { return n.isArray }

// AddChild appends child and recomputes the array flag: a node is an array
// iff it has more than one child and every child shares the new child's
// name.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
	n.isArray = len(n.children) > 1 && n.sameNamed(child.name)
}

func (n *Node) sameNamed(name string) bool {
	for _, c := range n.children {
		if c.name != name {
			return false
		}
	}
	return true
}

// AddAttr appends an attribute. Duplicate keys are not rejected; insertion
// order is preserved on output.
func (n *Node) AddAttr(a Attr) {
	n.attrs = append(n.attrs, a)
}

// SetValue overwrites the stored value verbatim, without reformatting. It
// is used when a value is discovered after construction, such as a JSON
// "#name" value key.
func (n *Node) SetValue(value string) {
	n.value = value
}

// Equal reports structural equality on name, value, attributes, children
// and the array flag. Paths are ignored.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.name != o.name || n.value != o.value || n.isArray != o.isArray {
		return false
	}
	if len(n.attrs) != len(o.attrs) || len(n.children) != len(o.children) {
		return false
	}
	for i, a := range n.attrs {
		if a != o.attrs[i] {
			return false
		}
	}
	for i, c := range n.children {
		if !c.Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// String returns a debug listing of the node and its descendants.
func (n *Node) String() string {
	var sb strings.Builder
	n.dump(&sb)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder) {
	if n.path != "" {
		sb.WriteString("Element:\n")
		fmt.Fprintf(sb, "path = %s\n", n.path)
		if n.IsLeaf() {
			fmt.Fprintf(sb, "value = %s\n", n.value)
		}
		if len(n.attrs) > 0 {
			sb.WriteString("attributes:\n")
			for _, a := range n.attrs {
				sb.WriteString(a.String())
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
	}
	for _, c := range n.children {
		c.dump(sb)
	}
}

// formatValue wraps a raw scalar in double quotes unless it is already a
// quoted string or the literal null.
func formatValue(value string) string {
	if quotedOrNull.MatchString(value) {
		return value
	}
	return fmt.Sprintf("%q", value)
}
