package core

import (
	"reflect"
	"sort"
)

// Descriptor identifies a registered contract. Two descriptors are equal when
// they were built from the same Go type, so Descriptor is usable as a map key.
//
// Reflection is used only for identity, naming and assignability checks.
// Nothing is ever constructed through the reflected type.
type Descriptor struct {
	t reflect.Type
}

// DescriptorOf returns the descriptor for T. For an interface contract pass
// the interface type itself, e.g. DescriptorOf[io.Closer]().
func DescriptorOf[T any]() Descriptor {
	return Descriptor{t: reflect.TypeFor[T]()}
}

// DescriptorFor returns the descriptor for a reflected type. A nil type yields
// the zero Descriptor.
func DescriptorFor(t reflect.Type) Descriptor {
	return Descriptor{t: t}
}

// IsZero reports whether d was not built from a type.
func (d Descriptor) IsZero() bool {
	return d.t == nil
}

// Type returns the underlying reflected type.
func (d Descriptor) Type() reflect.Type {
	return d.t
}

// Name returns the fully qualified type name ("import/path.Name"). Unnamed
// types (pointers, slices, func types) use reflect's String form.
func (d Descriptor) Name() string {
	if d.t == nil {
		return ""
	}
	if d.t.Name() != "" && d.t.PkgPath() != "" {
		return d.t.PkgPath() + "." + d.t.Name()
	}
	return d.t.String()
}

// String implements fmt.Stringer.
func (d Descriptor) String() string {
	if d.t == nil {
		return "<none>"
	}
	return d.Name()
}

// Accepts reports whether v may be stored under d: its dynamic type must be
// assignable to d's type (for interface contracts, implement it).
func (d Descriptor) Accepts(v any) bool {
	if d.t == nil || v == nil {
		return false
	}
	return reflect.TypeOf(v).AssignableTo(d.t)
}

// sortDescriptors orders descriptors by name so dumps and listings are stable.
func sortDescriptors(ds []Descriptor) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].Name() < ds[j].Name() })
}
