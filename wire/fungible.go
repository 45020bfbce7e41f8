package wire

import (
	"reflect"

	"github.com/pkg/errors"
)

// The fungibility gate decides whether a concrete value type may stand
// in for a protocol's declared type on the wire. Compatibility is
// structural: two struct types with the same field layout are fungible
// even when their field names differ. The gate must be consulted before
// the first byte of a value is committed; a rejected value emits
// nothing.

// Fungible reports whether a value of type concrete may serialize where
// the protocol declares the type declared. The predicate is reflexive
// and recurses through nested aggregates in declared field order.
func Fungible(concrete, declared reflect.Type) bool {
	return fungible(concrete, declared, nil)
}

type typePair struct {
	concrete reflect.Type
	declared reflect.Type
}

func fungible(concrete, declared reflect.Type, seen map[typePair]bool) bool {
	if concrete == nil || declared == nil {
		return false
	}
	if concrete == declared {
		return true
	}
	if concrete.Kind() != declared.Kind() {
		return false
	}

	// Recursive types reach the same pair again; treat the back edge as
	// compatible and let the first visit decide.
	pair := typePair{concrete, declared}
	if seen[pair] {
		return true
	}
	if seen == nil {
		seen = make(map[typePair]bool)
	}
	seen[pair] = true

	switch concrete.Kind() {
	case reflect.Struct:
		if concrete.NumField() != declared.NumField() {
			return false
		}
		for i := 0; i < concrete.NumField(); i++ {
			if !fungible(concrete.Field(i).Type, declared.Field(i).Type, seen) {
				return false
			}
		}
		return true
	case reflect.Array:
		if concrete.Len() != declared.Len() {
			return false
		}
		return fungible(concrete.Elem(), declared.Elem(), seen)
	case reflect.Slice, reflect.Ptr:
		return fungible(concrete.Elem(), declared.Elem(), seen)
	default:
		// Scalars of the same kind share a wire shape regardless of the
		// named type wrapping them.
		return scalarKind(concrete.Kind())
	}
}

// CheckFungible gates a call-time write: it returns ErrIncompatible if
// value's type may not serialize as declared. It has no side effects.
func CheckFungible(value interface{}, declared reflect.Type) error {
	if value == nil || declared == nil {
		return errors.Wrap(ErrIncompatible, "nil value or declared type")
	}
	concrete := reflect.TypeOf(value)
	if !Fungible(concrete, declared) {
		return errors.Wrapf(ErrIncompatible, "%s is not fungible with %s", concrete, declared)
	}
	return nil
}

// CanEncode probes whether v would resolve a write capability, without
// emitting anything: either v satisfies Encoder or its type reduces to
// the supported scalar/aggregate kinds.
func CanEncode(v interface{}) bool {
	if v == nil {
		return true
	}
	if _, ok := v.(Encoder); ok {
		return true
	}
	return canEncodeType(reflect.TypeOf(v), nil)
}

func canEncodeType(t reflect.Type, seen map[reflect.Type]bool) bool {
	if t == nil {
		return false
	}
	if t.Implements(encoderType) {
		return true
	}
	if seen[t] {
		return true
	}
	if seen == nil {
		seen = make(map[reflect.Type]bool)
	}
	seen[t] = true

	switch t.Kind() {
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !canEncodeType(t.Field(i).Type, seen) {
				return false
			}
		}
		return true
	case reflect.Array, reflect.Slice:
		return t.Elem().Kind() == reflect.Uint8 || canEncodeType(t.Elem(), seen)
	case reflect.Ptr:
		return canEncodeType(t.Elem(), seen)
	default:
		return scalarKind(t.Kind())
	}
}

func scalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

var encoderType = reflect.TypeOf((*Encoder)(nil)).Elem()
