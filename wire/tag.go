package wire

import "fmt"

// Tag is the one-byte marker preceding every encoded value. Tag values
// are part of the wire format and must never be renumbered.
type Tag uint8

const (
	TagVoid     Tag = 0x00
	TagFalse    Tag = 0x01
	TagTrue     Tag = 0x02
	TagUint8    Tag = 0x03
	TagUint16   Tag = 0x04
	TagUint32   Tag = 0x05
	TagUint64   Tag = 0x06
	TagInt8     Tag = 0x07
	TagInt16    Tag = 0x08
	TagInt32    Tag = 0x09
	TagInt64    Tag = 0x0a
	TagFloat32  Tag = 0x0b
	TagFloat64  Tag = 0x0c
	TagBytes    Tag = 0x0d
	TagString   Tag = 0x0e
	TagTuple    Tag = 0x0f
	TagStruct   Tag = 0x10
	TagArray    Tag = 0x11
	TagSelector Tag = 0x12
	TagReturn   Tag = 0x13
	TagError    Tag = 0xff
)

func (t Tag) String() string {
	switch t {
	case TagVoid:
		return "Void"
	case TagFalse:
		return "False"
	case TagTrue:
		return "True"
	case TagUint8:
		return "Uint8"
	case TagUint16:
		return "Uint16"
	case TagUint32:
		return "Uint32"
	case TagUint64:
		return "Uint64"
	case TagInt8:
		return "Int8"
	case TagInt16:
		return "Int16"
	case TagInt32:
		return "Int32"
	case TagInt64:
		return "Int64"
	case TagFloat32:
		return "Float32"
	case TagFloat64:
		return "Float64"
	case TagBytes:
		return "Bytes"
	case TagString:
		return "String"
	case TagTuple:
		return "Tuple"
	case TagStruct:
		return "Struct"
	case TagArray:
		return "Array"
	case TagSelector:
		return "Selector"
	case TagReturn:
		return "Return"
	case TagError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(0x%02x)", uint8(t))
	}
}

// Valid reports whether t is part of the closed tag taxonomy.
func (t Tag) Valid() bool {
	return t <= TagReturn || t == TagError
}
