// Package compress picks a compression codec from a file extension
package compress

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Codec identifies a supported compression format
type Codec int

const (
	// None leaves data as-is
	None Codec = iota
	// LZ4 uses the lz4 frame format
	LZ4
	// Zstd uses the zstandard format
	Zstd
)

// ForPath returns the Codec implied by a file's extension
func ForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		return LZ4
	case ".zst", ".zstd":
		return Zstd
	default:
		return None
	}
}

type nopReadCloser struct {
	io.Reader
}

func (nopReadCloser) Close() error {
	return nil
}

// NewReader wraps r such that it produces decompressed data. Closing the result
// releases decompression state, but never closes r.
func (c Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	switch c {
	case LZ4:
		return nopReadCloser{lz4.NewReader(r)}, nil
	case Zstd:
		decompressor, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return decompressor.IOReadCloser(), nil
	default:
		return nopReadCloser{r}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// NewWriter wraps w such that data written to the result is compressed. Closing the
// result flushes any buffered data, but never closes w.
func (c Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case LZ4:
		return lz4.NewWriter(w), nil
	case Zstd:
		compressor, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		return compressor, nil
	default:
		return nopWriteCloser{w}, nil
	}
}
