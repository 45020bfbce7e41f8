package codec

import (
	"encoding/binary"
	"io"
	"math"
	"reflect"

	"tagwire/wire"

	"github.com/pkg/errors"
)

// Decode reconstructs one tagged value from r into item using the
// default Config. Item must be a non-nil pointer.
func Decode(r io.Reader, item interface{}) error {
	return defaultConfig.Decode(r, item)
}

// DecodeFields decodes each item in order, stopping at the first
// failure.
func DecodeFields(r io.Reader, items ...interface{}) error {
	return defaultConfig.DecodeFields(r, items...)
}

func (c *Config) DecodeFields(r io.Reader, items ...interface{}) error {
	for _, item := range items {
		if err := c.Decode(r, item); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Decode(r io.Reader, item interface{}) error {
	switch it := item.(type) {
	case wire.Decoder:
		return it.Decode(r)
	case *bool:
		tag, err := requireTag(r)
		if err != nil {
			return err
		}
		switch tag {
		case wire.TagFalse:
			*it = false
		case wire.TagTrue:
			*it = true
		default:
			return mismatch(tag, "bool")
		}
		return nil
	case *uint8:
		p, err := payload(r, wire.TagUint8, 1)
		if err != nil {
			return err
		}
		*it = p[0]
		return nil
	case *uint16:
		p, err := payload(r, wire.TagUint16, 2)
		if err != nil {
			return err
		}
		*it = binary.BigEndian.Uint16(p)
		return nil
	case *uint32:
		p, err := payload(r, wire.TagUint32, 4)
		if err != nil {
			return err
		}
		*it = binary.BigEndian.Uint32(p)
		return nil
	case *uint64:
		p, err := payload(r, wire.TagUint64, 8)
		if err != nil {
			return err
		}
		*it = binary.BigEndian.Uint64(p)
		return nil
	case *int8:
		p, err := payload(r, wire.TagInt8, 1)
		if err != nil {
			return err
		}
		*it = int8(p[0])
		return nil
	case *int16:
		p, err := payload(r, wire.TagInt16, 2)
		if err != nil {
			return err
		}
		*it = int16(binary.BigEndian.Uint16(p))
		return nil
	case *int32:
		p, err := payload(r, wire.TagInt32, 4)
		if err != nil {
			return err
		}
		*it = int32(binary.BigEndian.Uint32(p))
		return nil
	case *int64:
		p, err := payload(r, wire.TagInt64, 8)
		if err != nil {
			return err
		}
		*it = int64(binary.BigEndian.Uint64(p))
		return nil
	case *float32:
		p, err := payload(r, wire.TagFloat32, 4)
		if err != nil {
			return err
		}
		*it = math.Float32frombits(binary.BigEndian.Uint32(p))
		return nil
	case *float64:
		p, err := payload(r, wire.TagFloat64, 8)
		if err != nil {
			return err
		}
		*it = math.Float64frombits(binary.BigEndian.Uint64(p))
		return nil
	case *[]byte:
		buf, err := c.readBlob(r, wire.TagBytes)
		if err != nil {
			return err
		}
		*it = buf
		return nil
	case *string:
		buf, err := c.readBlob(r, wire.TagString)
		if err != nil {
			return err
		}
		*it = string(buf)
		return nil
	default:
		return c.decodeReflect(r, item)
	}
}

func (c *Config) decodeReflect(r io.Reader, item interface{}) error {
	v := reflect.ValueOf(item)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errors.Wrapf(wire.ErrIncompatible, "destination %T must be a non-nil pointer", item)
	}

	elem := v.Elem()
	switch elem.Kind() {
	case reflect.Bool:
		var x bool
		if err := c.Decode(r, &x); err != nil {
			return err
		}
		elem.SetBool(x)
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		x, err := c.decodeUint(r, elem.Kind())
		if err != nil {
			return err
		}
		elem.SetUint(x)
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		x, err := c.decodeInt(r, elem.Kind())
		if err != nil {
			return err
		}
		elem.SetInt(x)
	case reflect.Float32:
		var x float32
		if err := c.Decode(r, &x); err != nil {
			return err
		}
		elem.SetFloat(float64(x))
	case reflect.Float64:
		var x float64
		if err := c.Decode(r, &x); err != nil {
			return err
		}
		elem.SetFloat(x)
	case reflect.String:
		var x string
		if err := c.Decode(r, &x); err != nil {
			return err
		}
		elem.SetString(x)
	case reflect.Slice:
		return c.decodeSlice(r, elem)
	case reflect.Array:
		return c.decodeArray(r, elem)
	case reflect.Struct:
		return c.decodeStruct(r, elem)
	default:
		return errors.Wrapf(wire.ErrIncompatible, "destination %T is not decodable", item)
	}
	return nil
}

func (c *Config) decodeUint(r io.Reader, k reflect.Kind) (uint64, error) {
	switch k {
	case reflect.Uint8:
		var x uint8
		err := c.Decode(r, &x)
		return uint64(x), err
	case reflect.Uint16:
		var x uint16
		err := c.Decode(r, &x)
		return uint64(x), err
	case reflect.Uint32:
		var x uint32
		err := c.Decode(r, &x)
		return uint64(x), err
	default:
		var x uint64
		err := c.Decode(r, &x)
		return x, err
	}
}

func (c *Config) decodeInt(r io.Reader, k reflect.Kind) (int64, error) {
	switch k {
	case reflect.Int8:
		var x int8
		err := c.Decode(r, &x)
		return int64(x), err
	case reflect.Int16:
		var x int16
		err := c.Decode(r, &x)
		return int64(x), err
	case reflect.Int32:
		var x int32
		err := c.Decode(r, &x)
		return int64(x), err
	default:
		var x int64
		err := c.Decode(r, &x)
		return x, err
	}
}

func (c *Config) decodeSlice(r io.Reader, elem reflect.Value) error {
	if elem.Type().Elem().Kind() == reflect.Uint8 {
		buf, err := c.readBlob(r, wire.TagBytes)
		if err != nil {
			return err
		}
		elem.SetBytes(buf)
		return nil
	}

	n, err := c.arrayHeader(r)
	if err != nil {
		return err
	}
	out := reflect.MakeSlice(elem.Type(), n, n)
	for i := 0; i < n; i++ {
		if err := c.Decode(r, out.Index(i).Addr().Interface()); err != nil {
			return err
		}
	}
	elem.Set(out)
	return nil
}

func (c *Config) decodeArray(r io.Reader, elem reflect.Value) error {
	if elem.Type().Elem().Kind() == reflect.Uint8 {
		buf, err := c.readBlob(r, wire.TagBytes)
		if err != nil {
			return err
		}
		if len(buf) != elem.Len() {
			return errors.Wrapf(wire.ErrIncompatible, "byte array length %d, wire carries %d", elem.Len(), len(buf))
		}
		reflect.Copy(elem, reflect.ValueOf(buf))
		return nil
	}

	n, err := c.arrayHeader(r)
	if err != nil {
		return err
	}
	if n != elem.Len() {
		return errors.Wrapf(wire.ErrIncompatible, "array length %d, wire carries %d", elem.Len(), n)
	}
	for i := 0; i < n; i++ {
		if err := c.Decode(r, elem.Index(i).Addr().Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) decodeStruct(r io.Reader, elem reflect.Value) error {
	if err := expectTag(r, wire.TagStruct); err != nil {
		return err
	}
	n, err := readUvarint(r)
	if err != nil {
		return err
	}
	if n != uint64(elem.NumField()) {
		return errors.Wrapf(wire.ErrIncompatible, "struct %s has %d fields, wire carries %d", elem.Type(), elem.NumField(), n)
	}
	for i := 0; i < elem.NumField(); i++ {
		f := elem.Field(i)
		if !f.CanSet() {
			return errors.Wrapf(wire.ErrIncompatible, "struct %s has unexported field %s", elem.Type(), elem.Type().Field(i).Name)
		}
		if err := c.Decode(r, f.Addr().Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) arrayHeader(r io.Reader) (int, error) {
	if err := expectTag(r, wire.TagArray); err != nil {
		return 0, err
	}
	n, err := readUvarint(r)
	if err != nil {
		return 0, err
	}
	if n > uint64(c.MaxArrayLen) {
		return 0, errors.Wrapf(wire.ErrReadLimitReached, "array length %d exceeds limit %d", n, c.MaxArrayLen)
	}
	return int(n), nil
}

func (c *Config) readBlob(r io.Reader, want wire.Tag) ([]byte, error) {
	if err := expectTag(r, want); err != nil {
		return nil, err
	}
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

func payload(r io.Reader, want wire.Tag, n int) ([]byte, error) {
	if err := expectTag(r, want); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrapf(wire.ErrIO, "premature end of input: %v", err)
	}
	return buf, nil
}

// ReadTag reads a single tag byte. A clean end of input at the tag
// boundary is reported as io.EOF so callers can distinguish it from a
// value truncated mid-payload.
func ReadTag(r io.Reader) (wire.Tag, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, errors.Wrapf(wire.ErrIO, "premature end of input: %v", err)
	}
	return wire.Tag(b[0]), nil
}

// ExpectTag reads one tag byte and fails with ErrIncompatible if it is
// not the wanted tag.
func ExpectTag(r io.Reader, want wire.Tag) error {
	return expectTag(r, want)
}

func requireTag(r io.Reader) (wire.Tag, error) {
	tag, err := ReadTag(r)
	if err == io.EOF {
		return 0, errors.Wrap(wire.ErrIO, "premature end of input")
	}
	return tag, err
}

func expectTag(r io.Reader, want wire.Tag) error {
	tag, err := requireTag(r)
	if err != nil {
		return err
	}
	if tag != want {
		return errors.Wrapf(wire.ErrIncompatible, "decoded tag %s, expected %s", tag, want)
	}
	return nil
}

func mismatch(tag wire.Tag, dest string) error {
	return errors.Wrapf(wire.ErrIncompatible, "decoded tag %s into %s destination", tag, dest)
}

type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (b *byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(b.r, b.buf[:]); err != nil {
		return 0, err
	}
	return b.buf[0], nil
}

func readUvarint(r io.Reader) (uint64, error) {
	n, err := binary.ReadUvarint(&byteReader{r: r})
	if err != nil {
		return 0, errors.Wrapf(wire.ErrIO, "premature end of input: %v", err)
	}
	return n, nil
}
