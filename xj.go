package xj

import (
	"strings"

	"github.com/soldang/go-xj/internal/jsonreader"
	"github.com/soldang/go-xj/internal/render"
	"github.com/soldang/go-xj/internal/xmlreader"
	"github.com/soldang/go-xj/node"
)

// Format identifies one of the two supported document formats.
type Format int

const (
	FormatJSON Format = iota + 1
	FormatXML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

// Opposite returns the other format.
func (f Format) Opposite() Format {
	if f == FormatJSON {
		return FormatXML
	}
	return FormatJSON
}

// DetectFormat sniffs the document format from the first non-space
// character: '{', '[' or '"' means JSON, '<' means XML. A leading quote is
// accepted because ToJSON unwraps a single-element document to a bare
// "key": value form. Empty input is reported as ErrEmptyInput, anything
// else as ErrUnknownFormat.
func DetectFormat(data []byte) (Format, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return 0, ErrEmptyInput
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return FormatJSON, nil
	case '<':
		return FormatXML, nil
	default:
		return 0, ErrUnknownFormat
	}
}

// Parse builds the intermediate tree from a document in the given format.
// Input may span multiple lines; each line is trimmed and the lines are
// concatenated before parsing, so pretty-printed output from ToJSON and
// ToXML parses back directly.
func Parse(data []byte, f Format, opts ...Option) (*node.Node, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	text := normalize(data)
	switch f {
	case FormatXML:
		return xmlreader.Parse(text, xmlreader.Options{Lenient: o.lenient, MaxDepth: o.maxDepth})
	default:
		return jsonreader.Parse(text, jsonreader.Options{Lenient: o.lenient, MaxDepth: o.maxDepth})
	}
}

// ParseJSON builds the intermediate tree from JSON-like text.
func ParseJSON(data []byte, opts ...Option) (*node.Node, error) {
	return Parse(data, FormatJSON, opts...)
}

// ParseXML builds the intermediate tree from XML-like text.
func ParseXML(data []byte, opts ...Option) (*node.Node, error) {
	return Parse(data, FormatXML, opts...)
}

// ToJSON renders the tree as JSON-like text.
func ToJSON(root *node.Node) []byte {
	return []byte(render.JSON(root))
}

// ToXML renders the tree as XML-like text.
func ToXML(root *node.Node) []byte {
	return []byte(render.XML(root))
}

// Convert sniffs the format of data and renders it in the opposite format.
func Convert(data []byte, opts ...Option) ([]byte, error) {
	f, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}
	root, err := Parse(data, f, opts...)
	if err != nil {
		return nil, err
	}
	if f == FormatJSON {
		return ToXML(root), nil
	}
	return ToJSON(root), nil
}

// normalize strips per-line whitespace and joins the lines so that
// pretty-printed documents parse the same as single-line ones.
func normalize(data []byte) string {
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "")
}
