package join

import (
	"encoding/binary"
	"math"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
)

// joinKey is the projection of a Row onto the configured join fields.
// A key containing any null value never matches any other key.
type joinKey struct {
	values []etl.Value
	hash   uint64
	null   bool
}

// equals returns true iff both keys are non-null and pairwise equal
func (k *joinKey) equals(other *joinKey) bool {
	if k.null || other.null || len(k.values) != len(other.values) {
		return false
	}
	for i := range k.values {
		if !k.values[i].Equal(other.values[i]) {
			return false
		}
	}
	return true
}

// keyProjector computes joinKeys from Rows, reusing its hasher and scratch buffer between calls
type keyProjector struct {
	fields []string
	hasher *xxhash.Digest
	buf    []byte
}

func createKeyProjector(fields []string) *keyProjector {
	return &keyProjector{
		fields: fields,
		hasher: xxhash.New(),
		buf:    make([]byte, 0, 64),
	}
}

// project computes the joinKey for a Row. The returned key owns its values.
// A missing field is a JoinKeyError; a null field produces a null key.
func (p *keyProjector) project(r etl.Row) (*joinKey, error) {
	key := &joinKey{values: make([]etl.Value, len(p.fields))}
	p.hasher.Reset()
	for i, field := range p.fields {
		v, err := r.Get(field)
		if err != nil {
			return nil, errors.JoinKeyError{Field: field, Err: err}
		}
		if v.IsNull() {
			key.null = true
			continue
		}
		key.values[i] = v.Clone()
		p.buf = appendCanonical(p.buf[:0], v)
		p.hasher.Write(p.buf)
	}
	if key.null {
		key.values = nil
		return key, nil
	}
	key.hash = p.hasher.Sum64()
	return key, nil
}

// appendCanonical appends an encoding of v which is identical for Equal values,
// and which includes the Kind so that values of different Kinds rarely collide.
func appendCanonical(buf []byte, v etl.Value) []byte {
	buf = append(buf, byte(v.Kind()))
	switch v.Kind() {
	case etl.IntKind:
		i, _ := v.AsInt()
		buf = binary.LittleEndian.AppendUint64(buf, uint64(i))
	case etl.FloatKind:
		f, _ := v.AsFloat()
		if f == 0 {
			f = 0 // -0 and +0 are Equal
		}
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	case etl.BoolKind:
		b, _ := v.AsBool()
		if b {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case etl.StringKind:
		s, _ := v.AsString()
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(s)))
		buf = append(buf, s...)
	case etl.BytesKind:
		b, _ := v.AsBytes()
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(b)))
		buf = append(buf, b...)
	}
	return buf
}
