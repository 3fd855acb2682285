package file

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/compress"
	"github.com/hashicorp/go-multierror"
)

// Sink encodes Rows to a file, or to an arbitrary writer
type Sink struct {
	name       string
	path       string
	w          io.Writer
	factory    etl.RowEncoderFactory
	file       *os.File
	compressor io.WriteCloser
	encoder    etl.RowEncoder
	closed     bool
}

// CreateSink is a factory for Sinks which write to a file. The file (and any missing parent
// directories) is created when the first Row is written, or on Close if no Rows are written.
// Paths ending in .lz4 or .zst are compressed.
func CreateSink(name string, path string, encoder etl.RowEncoderFactory) *Sink {
	return &Sink{name: name, path: path, factory: encoder}
}

// CreateWriterSink is a factory for Sinks which write to w. Closing the Sink flushes it, but does not close w.
func CreateWriterSink(name string, w io.Writer, encoder etl.RowEncoderFactory) *Sink {
	return &Sink{name: name, w: w, factory: encoder}
}

// Name returns the name of this Sink
func (s *Sink) Name() string {
	return s.name
}

func (s *Sink) open() error {
	if s.encoder != nil {
		return nil
	}
	if s.factory == nil {
		return errors.ConfigError{Component: s.name, Reason: "an encoder is required"}
	}
	w := s.w
	if w == nil {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return err
		}
		f, err := os.Create(s.path)
		if err != nil {
			return err
		}
		s.file = f
		compressor, err := compress.ForPath(s.path).NewWriter(f)
		if err != nil {
			return err
		}
		s.compressor = compressor
		w = compressor
	}
	s.encoder = s.factory(w)
	return nil
}

// Write encodes a Row
func (s *Sink) Write(ctx context.Context, row etl.Row) error {
	if s.closed {
		return errors.SinkIOError{Sink: s.name, Err: os.ErrClosed}
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.encoder.Encode(row)
}

// Close flushes buffered Rows and releases the file
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	var multierr *multierror.Error
	if err := s.open(); err != nil {
		multierr = multierror.Append(multierr, err)
	}
	s.closed = true
	if s.encoder != nil {
		if err := s.encoder.Flush(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	if s.compressor != nil {
		if err := s.compressor.Close(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return multierr.ErrorOrNil()
}
