package jsonl

import (
	"io"

	"github.com/go-sif/etl"
	jsoniter "github.com/json-iterator/go"
)

const flushThreshold = 4096

// Encoder writes each Row as a JSON object on its own line, with fields in Row order
type Encoder struct {
	stream *jsoniter.Stream
}

// CreateEncoder returns a factory for JSONL Encoders
func CreateEncoder() etl.RowEncoderFactory {
	return func(w io.Writer) etl.RowEncoder {
		return &Encoder{stream: jsoniter.NewStream(jsoniter.ConfigCompatibleWithStandardLibrary, w, flushThreshold)}
	}
}

// Encode writes a Row as a single line of JSON
func (e *Encoder) Encode(r etl.Row) error {
	e.stream.WriteObjectStart()
	first := true
	err := r.ForEachField(func(name string, value etl.Value) error {
		if !first {
			e.stream.WriteMore()
		}
		first = false
		e.stream.WriteObjectField(name)
		e.stream.WriteVal(value.Interface())
		return nil
	})
	if err != nil {
		return err
	}
	e.stream.WriteObjectEnd()
	e.stream.WriteRaw("\n")
	if e.stream.Error != nil {
		return e.stream.Error
	}
	if e.stream.Buffered() >= flushThreshold {
		return e.stream.Flush()
	}
	return nil
}

// Flush writes any buffered lines to the underlying writer
func (e *Encoder) Flush() error {
	return e.stream.Flush()
}
