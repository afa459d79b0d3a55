package xj

import (
	"fmt"
	"io"

	"github.com/soldang/go-xj/node"
)

// Decoder reads a document from an input stream and builds the
// intermediate tree, sniffing the format from the first character.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a decoder that reads from r.
//
// Note: this is a non-streaming implementation. Decode reads the entire
// reader into memory before parsing.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the document, detects its format, and returns the parsed
// tree along with the detected format.
func (d *Decoder) Decode() (*node.Node, Format, error) {
	if d.r == nil {
		return nil, 0, fmt.Errorf("xj: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return nil, 0, err
	}
	f, err := DetectFormat(data)
	if err != nil {
		return nil, 0, err
	}
	root, err := Parse(data, f, d.opts...)
	if err != nil {
		return nil, f, err
	}
	return root, f, nil
}
