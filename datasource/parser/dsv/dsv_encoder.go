package dsv

import (
	"encoding/csv"
	"io"

	"github.com/go-sif/etl"
)

// EncoderConf configures a DSV Encoder
type EncoderConf struct {
	Delimiter rune   // The delimiter separating columns. Defaults to ,
	NilValue  string // Written in place of null values. Defaults to "" (the empty string).
	Header    bool   // If true, the field names of the first Row are written before it
}

// Encoder writes Rows as DSV records, one field per column in Row order
type Encoder struct {
	conf          *EncoderConf
	writer        *csv.Writer
	headerWritten bool
	record        []string
}

// CreateEncoder returns a factory for DSV Encoders sharing a configuration
func CreateEncoder(conf *EncoderConf) etl.RowEncoderFactory {
	if conf == nil {
		conf = &EncoderConf{}
	}
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return func(w io.Writer) etl.RowEncoder {
		writer := csv.NewWriter(w)
		writer.Comma = conf.Delimiter
		return &Encoder{conf: conf, writer: writer}
	}
}

// Encode writes a Row as a single record
func (e *Encoder) Encode(r etl.Row) error {
	if e.conf.Header && !e.headerWritten {
		if err := e.writer.Write(r.FieldNames()); err != nil {
			return err
		}
		e.headerWritten = true
	}
	e.record = e.record[:0]
	err := r.ForEachField(func(name string, value etl.Value) error {
		if value.IsNull() {
			e.record = append(e.record, e.conf.NilValue)
		} else {
			e.record = append(e.record, value.Text())
		}
		return nil
	})
	if err != nil {
		return err
	}
	return e.writer.Write(e.record)
}

// Flush writes any buffered records to the underlying writer
func (e *Encoder) Flush() error {
	e.writer.Flush()
	return e.writer.Error()
}
