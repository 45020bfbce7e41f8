package codec

import (
	"encoding/binary"
	"io"
	"math"

	"tagwire/wire"

	"github.com/pkg/errors"
)

// DecodeAny reconstructs the next tagged value from r without a typed
// destination, returning the leading tag alongside the value. Composite
// values come back as []interface{}. A clean end of input at a value
// boundary is io.EOF.
func DecodeAny(r io.Reader) (wire.Tag, interface{}, error) {
	return defaultConfig.DecodeAny(r)
}

func (c *Config) DecodeAny(r io.Reader) (wire.Tag, interface{}, error) {
	tag, err := ReadTag(r)
	if err != nil {
		return 0, nil, err
	}
	val, err := c.decodeAnyPayload(r, tag)
	return tag, val, err
}

func (c *Config) decodeAnyPayload(r io.Reader, tag wire.Tag) (interface{}, error) {
	switch tag {
	case wire.TagVoid:
		return nil, nil
	case wire.TagFalse:
		return false, nil
	case wire.TagTrue:
		return true, nil
	case wire.TagUint8:
		p, err := rawPayload(r, 1)
		if err != nil {
			return nil, err
		}
		return p[0], nil
	case wire.TagUint16:
		p, err := rawPayload(r, 2)
		if err != nil {
			return nil, err
		}
		return binary.BigEndian.Uint16(p), nil
	case wire.TagUint32:
		p, err := rawPayload(r, 4)
		if err != nil {
			return nil, err
		}
		return binary.BigEndian.Uint32(p), nil
	case wire.TagUint64:
		p, err := rawPayload(r, 8)
		if err != nil {
			return nil, err
		}
		return binary.BigEndian.Uint64(p), nil
	case wire.TagInt8:
		p, err := rawPayload(r, 1)
		if err != nil {
			return nil, err
		}
		return int8(p[0]), nil
	case wire.TagInt16:
		p, err := rawPayload(r, 2)
		if err != nil {
			return nil, err
		}
		return int16(binary.BigEndian.Uint16(p)), nil
	case wire.TagInt32:
		p, err := rawPayload(r, 4)
		if err != nil {
			return nil, err
		}
		return int32(binary.BigEndian.Uint32(p)), nil
	case wire.TagInt64:
		p, err := rawPayload(r, 8)
		if err != nil {
			return nil, err
		}
		return int64(binary.BigEndian.Uint64(p)), nil
	case wire.TagFloat32:
		p, err := rawPayload(r, 4)
		if err != nil {
			return nil, err
		}
		return math.Float32frombits(binary.BigEndian.Uint32(p)), nil
	case wire.TagFloat64:
		p, err := rawPayload(r, 8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(p)), nil
	case wire.TagBytes:
		return c.anyBlob(r)
	case wire.TagString:
		buf, err := c.anyBlob(r)
		if err != nil {
			return nil, err
		}
		return string(buf), nil
	case wire.TagSelector:
		p, err := rawPayload(r, 2)
		if err != nil {
			return nil, err
		}
		return binary.BigEndian.Uint16(p), nil
	case wire.TagTuple:
		p, err := rawPayload(r, 1)
		if err != nil {
			return nil, err
		}
		arity := int(p[0])
		if arity > c.MaxTupleArity {
			return nil, errors.Wrapf(wire.ErrReadLimitReached, "tuple arity %d exceeds limit %d", arity, c.MaxTupleArity)
		}
		return c.anyElems(r, arity)
	case wire.TagStruct, wire.TagArray:
		n, err := readUvarint(r)
		if err != nil {
			return nil, err
		}
		if n > uint64(c.MaxArrayLen) {
			return nil, errors.Wrapf(wire.ErrReadLimitReached, "element count %d exceeds limit %d", n, c.MaxArrayLen)
		}
		return c.anyElems(r, int(n))
	case wire.TagReturn:
		_, val, err := c.DecodeAny(r)
		if err == io.EOF {
			err = errors.Wrap(wire.ErrIO, "premature end of input")
		}
		return val, err
	default:
		return nil, errors.Wrapf(wire.ErrIncompatible, "cannot decode tag %s", tag)
	}
}

func (c *Config) anyElems(r io.Reader, n int) ([]interface{}, error) {
	vals := make([]interface{}, n)
	for i := 0; i < n; i++ {
		_, val, err := c.DecodeAny(r)
		if err == io.EOF {
			err = errors.Wrap(wire.ErrIO, "premature end of input")
		}
		if err != nil {
			return nil, err
		}
		vals[i] = val
	}
	return vals, nil
}

func (c *Config) anyBlob(r io.Reader) ([]byte, error) {
	l, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	if l > c.MaxByteFieldLen {
		return nil, errors.Wrapf(wire.ErrReadLimitReached, "byte field length %d exceeds limit %d", l, c.MaxByteFieldLen)
	}
	buf := make([]byte, l)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrapf(wire.ErrIO, "premature end of input: %v", err)
	}
	return buf, nil
}

func rawPayload(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrapf(wire.ErrIO, "premature end of input: %v", err)
	}
	return buf, nil
}
