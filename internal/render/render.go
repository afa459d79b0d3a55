// Package render serializes intermediate trees to JSON-like and XML-like
// text. Both renderers are recursive, pre-order, and indent one tab per
// depth; they only read the tree.
package render

import (
	"fmt"
	"strings"

	"github.com/soldang/go-xj/node"
)

// JSON renders the tree rooted at root as JSON-like text. An anonymous
// root with exactly one child is unwrapped: the child renders at depth
// zero with its own key. With several top-level elements the wrapper stays
// and is anonymous.
func JSON(root *node.Node) string {
	if root.Name() == "" && len(root.Children()) == 1 {
		root = root.Children()[0]
	}
	var sb strings.Builder
	writeJSON(&sb, root, "", true, false)
	return sb.String()
}

func writeJSON(sb *strings.Builder, n *node.Node, tabs string, isLast, isArrayElement bool) {
	sb.WriteString(tabs)
	if !isArrayElement && n.Name() != "" {
		fmt.Fprintf(sb, "%q: ", n.Name())
	}

	switch {
	case len(n.Attrs()) == 0 && n.IsArray():
		sb.WriteString("[")
		writeChildren(sb, n, tabs, true)
	case len(n.Attrs()) == 0:
		if n.IsLeaf() {
			sb.WriteString(n.Value())
		} else {
			sb.WriteString("{")
			writeChildren(sb, n, tabs, false)
		}
	default:
		sb.WriteString("{")
		for _, a := range n.Attrs() {
			fmt.Fprintf(sb, "\n%s\t%q: %q,", tabs, "@"+a.Key, a.Value)
		}
		if n.IsLeaf() {
			fmt.Fprintf(sb, "\n%s\t%q: %s\n%s}", tabs, "#"+n.Name(), n.Value(), tabs)
		} else {
			open := "{"
			if n.IsArray() {
				open = "["
			}
			fmt.Fprintf(sb, "\n%s\t%q: %s", tabs, "#"+n.Name(), open)
			writeChildren(sb, n, tabs+"\t", n.IsArray())
			fmt.Fprintf(sb, "\n%s}", tabs)
		}
	}

	if !isLast {
		sb.WriteString(",")
	}
}

func writeChildren(sb *strings.Builder, n *node.Node, tabs string, isArray bool) {
	children := n.Children()
	for i, c := range children {
		sb.WriteString("\n")
		writeJSON(sb, c, tabs+"\t", i == len(children)-1, isArray)
	}
	if isArray {
		fmt.Fprintf(sb, "\n%s]", tabs)
	} else {
		fmt.Fprintf(sb, "\n%s}", tabs)
	}
}

// XML renders the tree rooted at root as XML-like text. An anonymous root
// with one child is unwrapped; with several children it is named root.
func XML(root *node.Node) string {
	var sb strings.Builder
	writeXML(&sb, root, "")
	return sb.String()
}

func writeXML(sb *strings.Builder, n *node.Node, tabs string) {
	name := n.Name()
	// Quote characters are stripped from stored values for display.
	value := strings.ReplaceAll(n.Value(), `"`, "")

	var attrs strings.Builder
	for _, a := range n.Attrs() {
		fmt.Fprintf(&attrs, " %s=%q", a.Key, a.Value)
	}

	if name == "" {
		switch len(n.Children()) {
		case 0:
			return
		case 1:
			writeXML(sb, n.Children()[0], tabs)
			return
		default:
			name = "root"
		}
	}

	if n.IsLeaf() {
		if value == "null" {
			fmt.Fprintf(sb, "%s<%s%s/>", tabs, name, attrs.String())
		} else {
			fmt.Fprintf(sb, "%s<%s%s>%s</%s>", tabs, name, attrs.String(), value, name)
		}
		return
	}
	fmt.Fprintf(sb, "%s<%s%s>", tabs, name, attrs.String())
	for _, c := range n.Children() {
		sb.WriteString("\n")
		writeXML(sb, c, tabs+"\t")
	}
	fmt.Fprintf(sb, "\n%s</%s>", tabs, name)
}
