package codec

import (
	"bytes"
	"io"
	"testing"

	"tagwire/wire"

	"github.com/stretchr/testify/require"
)

func TestDecode_RoundTrip(t *testing.T) {
	type point struct {
		X uint8
		Y uint8
	}
	in := []interface{}{
		true,
		uint8(7),
		uint16(300),
		uint32(1 << 20),
		uint64(1 << 40),
		int8(-5),
		int16(-300),
		int32(42),
		int64(-1),
		float32(2.5),
		float64(-2.5),
		[]byte{0xca, 0xfe},
		"hello",
	}
	raw := encodeToBytes(t, in...)
	r := bytes.NewReader(raw)

	var (
		b   bool
		u8  uint8
		u16 uint16
		u32 uint32
		u64 uint64
		i8  int8
		i16 int16
		i32 int32
		i64 int64
		f32 float32
		f64 float64
		bs  []byte
		str string
	)
	require.NoError(t, DecodeFields(r, &b, &u8, &u16, &u32, &u64, &i8, &i16, &i32, &i64, &f32, &f64, &bs, &str))
	require.True(t, b)
	require.Equal(t, uint8(7), u8)
	require.Equal(t, uint16(300), u16)
	require.Equal(t, uint32(1<<20), u32)
	require.Equal(t, uint64(1<<40), u64)
	require.Equal(t, int8(-5), i8)
	require.Equal(t, int16(-300), i16)
	require.Equal(t, int32(42), i32)
	require.Equal(t, int64(-1), i64)
	require.Equal(t, float32(2.5), f32)
	require.Equal(t, float64(-2.5), f64)
	require.Equal(t, []byte{0xca, 0xfe}, bs)
	require.Equal(t, "hello", str)
	require.Equal(t, 0, r.Len())

	raw = encodeToBytes(t, point{X: 1, Y: 2}, [3]byte{4, 5, 6}, []uint16{8, 9})
	var (
		pt  point
		arr [3]byte
		sl  []uint16
	)
	require.NoError(t, DecodeFields(bytes.NewReader(raw), &pt, &arr, &sl))
	require.Equal(t, point{X: 1, Y: 2}, pt)
	require.Equal(t, [3]byte{4, 5, 6}, arr)
	require.Equal(t, []uint16{8, 9}, sl)
}

func TestDecode_NamedTypes(t *testing.T) {
	type selector uint16
	raw := encodeToBytes(t, selector(7))
	var sel selector
	require.NoError(t, Decode(bytes.NewReader(raw), &sel))
	require.Equal(t, selector(7), sel)
}

// Fungibility on the read side: a struct decodes into any structurally
// compatible destination regardless of field names.
func TestDecode_StructurallyCompatibleDestination(t *testing.T) {
	type point struct {
		X uint32
		Y uint32
	}
	type coord struct {
		Lat uint32
		Lng uint32
	}
	raw := encodeToBytes(t, point{X: 3, Y: 4})
	var c coord
	require.NoError(t, Decode(bytes.NewReader(raw), &c))
	require.Equal(t, coord{Lat: 3, Lng: 4}, c)
}

func TestDecode_TagMismatch(t *testing.T) {
	raw := encodeToBytes(t, uint16(1))
	var u32 uint32
	err := Decode(bytes.NewReader(raw), &u32)
	require.True(t, wire.Is(err, wire.ErrIncompatible))

	raw = encodeToBytes(t, "str")
	var bs []byte
	err = Decode(bytes.NewReader(raw), &bs)
	require.True(t, wire.Is(err, wire.ErrIncompatible))
}

func TestDecode_ArityMismatch(t *testing.T) {
	type pair struct {
		A uint8
		B uint8
	}
	type triple struct {
		A uint8
		B uint8
		C uint8
	}
	raw := encodeToBytes(t, pair{A: 1, B: 2})
	var tr triple
	err := Decode(bytes.NewReader(raw), &tr)
	require.True(t, wire.Is(err, wire.ErrIncompatible))
}

func TestDecode_Truncated(t *testing.T) {
	raw := encodeToBytes(t, uint32(0x01020304))
	for cut := 1; cut < len(raw); cut++ {
		var u32 uint32
		err := Decode(bytes.NewReader(raw[:cut]), &u32)
		require.Error(t, err, "cut at %d", cut)
		require.True(t, wire.Is(err, wire.ErrIO), "cut at %d", cut)
	}

	var u32 uint32
	err := Decode(bytes.NewReader(nil), &u32)
	require.True(t, wire.Is(err, wire.ErrIO))
}

func TestDecode_ReadLimit(t *testing.T) {
	raw := encodeToBytes(t, []byte{1, 2, 3, 4, 5})
	cfg := DefaultConfig()
	cfg.MaxByteFieldLen = 4
	var bs []byte
	err := cfg.Decode(bytes.NewReader(raw), &bs)
	require.True(t, wire.Is(err, wire.ErrReadLimitReached))

	raw = encodeToBytes(t, []uint16{1, 2, 3})
	cfg = DefaultConfig()
	cfg.MaxArrayLen = 2
	var sl []uint16
	err = cfg.Decode(bytes.NewReader(raw), &sl)
	require.True(t, wire.Is(err, wire.ErrReadLimitReached))
}

func TestDecode_BadDestination(t *testing.T) {
	var u32 uint32
	err := Decode(bytes.NewReader([]byte{0x05, 0, 0, 0, 1}), u32)
	require.True(t, wire.Is(err, wire.ErrIncompatible))
}

func TestDecodeAny(t *testing.T) {
	raw := encodeToBytes(t, uint32(9), "hey", []byte{0x01}, nil, true)
	r := bytes.NewReader(raw)

	tag, val, err := DecodeAny(r)
	require.NoError(t, err)
	require.Equal(t, wire.TagUint32, tag)
	require.Equal(t, uint32(9), val)

	_, val, err = DecodeAny(r)
	require.NoError(t, err)
	require.Equal(t, "hey", val)

	_, val, err = DecodeAny(r)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, val)

	tag, val, err = DecodeAny(r)
	require.NoError(t, err)
	require.Equal(t, wire.TagVoid, tag)
	require.Nil(t, val)

	_, val, err = DecodeAny(r)
	require.NoError(t, err)
	require.Equal(t, true, val)

	_, _, err = DecodeAny(r)
	require.Equal(t, io.EOF, err)
}

func TestDecodeAny_Composite(t *testing.T) {
	type point struct {
		X uint8
		Y uint8
	}
	raw := encodeToBytes(t, point{X: 1, Y: 2})
	tag, val, err := DecodeAny(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, wire.TagStruct, tag)
	require.Equal(t, []interface{}{uint8(1), uint8(2)}, val)
}

func TestDecodeAny_TruncatedIsIO(t *testing.T) {
	raw := encodeToBytes(t, uint64(1))
	_, _, err := DecodeAny(bytes.NewReader(raw[:3]))
	require.True(t, wire.Is(err, wire.ErrIO))
}
