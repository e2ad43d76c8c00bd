package core

import "reflect"

// Equaler lets a registered item define the equality used by Deregister,
// SetDefault and the disposal scan. Without it, items compare with == when
// their dynamic value is comparable.
type Equaler interface {
	Equal(other any) bool
}

// isNil reports whether v is nil or a typed nil of a nillable kind.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// sameItem reports whether a and b denote the same registered item.
//
// Uncomparable values (maps, slices, funcs, or structs holding them) never
// panic here: maps and slices match when they share backing storage, funcs
// and everything else only via Equaler.
func sameItem(a, b any) bool {
	if e, ok := a.(Equaler); ok {
		return e.Equal(b)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	switch va.Kind() {
	case reflect.Map:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		return va.UnsafePointer() == vb.UnsafePointer() && va.Len() == vb.Len()
	default:
		return false
	}
}

// comparableKey returns v as a map key when its dynamic value is comparable.
func comparableKey(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	if !reflect.ValueOf(v).Comparable() {
		return nil, false
	}
	return v, true
}
