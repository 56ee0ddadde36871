package mdhtml

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// ConvertRequest configures Convert.
type ConvertRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []Option
}

// Convert reads a whole Markdown document from Reader and writes its HTML
// rendering to Writer. Input that is not UTF-8 text is rejected with
// ErrInvalidUTF8 or ErrBinaryInput.
func Convert(req ConvertRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("convert: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("convert: writer is nil")
	}
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)
	if _, err := buf.ReadFrom(req.Reader); err != nil {
		return fmt.Errorf("convert: read: %w", err)
	}
	if err := ValidateInput(buf.Bytes()); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	doc, err := Parse(buf.String(), req.Options...)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if err := RenderHTML(req.Writer, doc); err != nil {
		return fmt.Errorf("convert: write: %w", err)
	}
	return nil
}
