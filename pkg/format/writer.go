package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Writer emits a single share file: an optional armored header followed by
// the raw share records written through it.
type Writer struct {
	w io.Writer
}

// NewWriter creates a new Writer around an io.Writer (usually an os.File).
// If header is non-nil it is validated and written before anything else;
// a nil header produces a raw share.
func NewWriter(w io.Writer, header *Header) (*Writer, error) {
	hw := &Writer{w: w}
	if header != nil {
		if err := hw.writeHeader(header); err != nil {
			return nil, err
		}
	}
	return hw, nil
}

func (hw *Writer) writeHeader(header *Header) error {
	if err := header.Validate(); err != nil {
		return err
	}

	// Tell the reader how many *more* shares they need, assuming they hold
	// this one.
	magicText := fmt.Sprintf(MagicHeader, header.Total, header.Index, header.Threshold-1)
	if _, err := fmt.Fprint(hw.w, magicText); err != nil {
		return errors.Wrap(err, "failed to write magic header")
	}

	if _, err := fmt.Fprintln(hw.w, HeaderMarker); err != nil {
		return errors.Wrap(err, "failed to write header marker")
	}

	headerBytes, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}
	if _, err := hw.w.Write(headerBytes); err != nil {
		return errors.Wrap(err, "failed to write json header")
	}
	if _, err := fmt.Fprintln(hw.w); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(hw.w, BodyMarker); err != nil {
		return errors.Wrap(err, "failed to write body marker")
	}
	return nil
}

// Write passes share records through to the underlying writer.
func (hw *Writer) Write(p []byte) (int, error) {
	return hw.w.Write(p)
}
