package codec

import (
	"encoding/binary"
	"math"
	"reflect"

	"tagwire/wire"

	"github.com/pkg/errors"
)

// Encode commits item to the Sink using the default Config.
func Encode(s wire.Sink, item interface{}) error {
	return defaultConfig.Encode(s, item)
}

// EncodeFields commits each item in order, stopping at the first
// failure.
func EncodeFields(s wire.Sink, items ...interface{}) error {
	return defaultConfig.EncodeFields(s, items...)
}

func (c *Config) EncodeFields(s wire.Sink, items ...interface{}) error {
	for _, item := range items {
		if err := c.Encode(s, item); err != nil {
			return err
		}
	}
	return nil
}

// Encode commits item to the Sink as one tag byte plus payload. The
// fungibility gate runs before the first byte: an unsupported type is
// rejected with ErrIncompatible and nothing is emitted.
func (c *Config) Encode(s wire.Sink, item interface{}) error {
	if item == nil {
		return s.WriteTag(wire.TagVoid)
	}

	switch it := item.(type) {
	case wire.Encoder:
		return it.Encode(s)
	case bool:
		tag := wire.TagFalse
		if it {
			tag = wire.TagTrue
		}
		if err := s.Prepare(1); err != nil {
			return err
		}
		return s.WriteTag(tag)
	case uint8:
		return scalar(s, wire.TagUint8, []byte{it})
	case uint16:
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], it)
		return scalar(s, wire.TagUint16, b[:])
	case uint32:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], it)
		return scalar(s, wire.TagUint32, b[:])
	case uint64:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], it)
		return scalar(s, wire.TagUint64, b[:])
	case int8:
		return scalar(s, wire.TagInt8, []byte{uint8(it)})
	case int16:
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(it))
		return scalar(s, wire.TagInt16, b[:])
	case int32:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(it))
		return scalar(s, wire.TagInt32, b[:])
	case int64:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(it))
		return scalar(s, wire.TagInt64, b[:])
	case float32:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], math.Float32bits(it))
		return scalar(s, wire.TagFloat32, b[:])
	case float64:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(it))
		return scalar(s, wire.TagFloat64, b[:])
	case []byte:
		return c.blob(s, wire.TagBytes, it)
	case string:
		return c.blob(s, wire.TagString, []byte(it))
	default:
		return c.encodeReflect(s, item)
	}
}

func scalar(s wire.Sink, tag wire.Tag, payload []byte) error {
	if err := s.Prepare(1 + len(payload)); err != nil {
		return err
	}
	if err := s.WriteTag(tag); err != nil {
		return err
	}
	return s.WriteRaw(payload)
}

func (c *Config) blob(s wire.Sink, tag wire.Tag, p []byte) error {
	if uint64(len(p)) > c.MaxByteFieldLen {
		return errors.Wrapf(wire.ErrWriteLimitReached, "byte field length %d exceeds limit %d", len(p), c.MaxByteFieldLen)
	}
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(p)))
	if err := s.Prepare(1 + n + len(p)); err != nil {
		return err
	}
	if err := s.WriteTag(tag); err != nil {
		return err
	}
	if err := s.WriteRaw(lenBuf[:n]); err != nil {
		return err
	}
	return s.WriteRaw(p)
}

func (c *Config) lengthPrefix(s wire.Sink, tag wire.Tag, n int) error {
	var lenBuf [binary.MaxVarintLen64]byte
	l := binary.PutUvarint(lenBuf[:], uint64(n))
	if err := s.Prepare(1 + l); err != nil {
		return err
	}
	if err := s.WriteTag(tag); err != nil {
		return err
	}
	return s.WriteRaw(lenBuf[:l])
}

func (c *Config) encodeReflect(s wire.Sink, item interface{}) error {
	if !wire.CanEncode(item) {
		return errors.Wrapf(wire.ErrIncompatible, "type %T is not encodable", item)
	}

	v := reflect.ValueOf(item)
	switch v.Kind() {
	case reflect.Bool:
		return c.Encode(s, v.Bool())
	case reflect.Uint8:
		return c.Encode(s, uint8(v.Uint()))
	case reflect.Uint16:
		return c.Encode(s, uint16(v.Uint()))
	case reflect.Uint32:
		return c.Encode(s, uint32(v.Uint()))
	case reflect.Uint64:
		return c.Encode(s, v.Uint())
	case reflect.Int8:
		return c.Encode(s, int8(v.Int()))
	case reflect.Int16:
		return c.Encode(s, int16(v.Int()))
	case reflect.Int32:
		return c.Encode(s, int32(v.Int()))
	case reflect.Int64:
		return c.Encode(s, v.Int())
	case reflect.Float32:
		return c.Encode(s, float32(v.Float()))
	case reflect.Float64:
		return c.Encode(s, v.Float())
	case reflect.String:
		return c.blob(s, wire.TagString, []byte(v.String()))
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return c.blob(s, wire.TagBytes, v.Bytes())
		}
		return c.encodeArray(s, v)
	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			buf := make([]byte, v.Len())
			reflect.Copy(reflect.ValueOf(buf), v)
			return c.blob(s, wire.TagBytes, buf)
		}
		return c.encodeArray(s, v)
	case reflect.Struct:
		return c.encodeStruct(s, v)
	case reflect.Ptr:
		if v.IsNil() {
			return s.WriteTag(wire.TagVoid)
		}
		return c.Encode(s, v.Elem().Interface())
	default:
		return errors.Wrapf(wire.ErrIncompatible, "type %T is not encodable", item)
	}
}

func (c *Config) encodeArray(s wire.Sink, v reflect.Value) error {
	if v.Len() > c.MaxArrayLen {
		return errors.Wrapf(wire.ErrWriteLimitReached, "array length %d exceeds limit %d", v.Len(), c.MaxArrayLen)
	}
	if err := c.lengthPrefix(s, wire.TagArray, v.Len()); err != nil {
		return err
	}
	for i := 0; i < v.Len(); i++ {
		if err := c.Encode(s, v.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) encodeStruct(s wire.Sink, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).PkgPath != "" {
			return errors.Wrapf(wire.ErrIncompatible, "struct %s has unexported field %s", t, t.Field(i).Name)
		}
	}
	if err := c.lengthPrefix(s, wire.TagStruct, v.NumField()); err != nil {
		return err
	}
	for i := 0; i < v.NumField(); i++ {
		if err := c.Encode(s, v.Field(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}
