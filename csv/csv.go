package csv

import (
	"encoding/csv"
	"io"

	"golang.org/x/xerrors"
)

// Produces a list of fields making up a record.
type Recorder interface {
	Record() []string
}

// A Headerer names the fields of its records.
type Headerer interface {
	Header() []string
}

// An Encoder writes CSV records to an output stream.
type Encoder struct {
	w      *csv.Writer
	header bool
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: csv.NewWriter(w)}
}

// Encode writes a CSV record representing v to the stream followed by a
// newline character. Value given must implement the Recorder interface.
// If the first value encoded is also a Headerer with a non-empty header,
// the header is written first.
func (enc *Encoder) Encode(v interface{}) (err error) {
	defer func() {
		switch r := recover().(type) {
		case nil:
		case error:
			err = xerrors.Errorf("recovered: %w", r)
		default:
			err = xerrors.Errorf("recovered: %v", r)
		}
	}()

	if h, ok := v.(Headerer); ok && !enc.header {
		if header := h.Header(); len(header) > 0 {
			if err = enc.w.Write(header); err != nil {
				return err
			}
		}
	}
	enc.header = true

	if err = enc.w.Write(v.(Recorder).Record()); err != nil {
		return err
	}
	enc.w.Flush()

	return enc.w.Error()
}
