package xj

import (
	"fmt"
	"io"

	"github.com/soldang/go-xj/node"
)

// Encoder writes rendered trees to an output stream.
type Encoder struct {
	w      io.Writer
	format Format
}

// NewEncoder returns an encoder that renders trees in format f and writes
// them to w.
func NewEncoder(w io.Writer, f Format) *Encoder {
	return &Encoder{w: w, format: f}
}

// Encode renders root and writes it to the stream, followed by a newline.
func (e *Encoder) Encode(root *node.Node) error {
	var out []byte
	switch e.format {
	case FormatJSON:
		out = ToJSON(root)
	case FormatXML:
		out = ToXML(root)
	default:
		return fmt.Errorf("xj: unknown output format %d", int(e.format))
	}
	if _, err := e.w.Write(out); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, "\n")
	return err
}
