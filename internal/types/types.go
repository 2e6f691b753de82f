// Package types implements the five-case type lattice of spec §3: Int,
// Bool, Tuple, Record, and Callable. Records are nominal and non-recursive;
// a Record's field order is part of its type.
package types

import "strings"

// Type is implemented by every case of the language's type system.
type Type interface {
	String() string
	isType()
}

func (IntType) isType()      {}
func (BoolType) isType()     {}
func (*TupleType) isType()   {}
func (*RecordType) isType()  {}
func (*CallableType) isType() {}

// IntType is the type of integer literals and arithmetic results.
type IntType struct{}

func (IntType) String() string { return "int" }

// BoolType is the type of boolean literals and comparison results.
type BoolType struct{}

func (BoolType) String() string { return "bool" }

// TupleType is an n-ary product type, produced by Prim("tuple", ...) and by
// record elimination.
type TupleType struct {
	Elements []Type
}

func (t *TupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Field is one named, ordered component of a RecordType.
type Field struct {
	Name string
	Type Type
}

// RecordType is a nominal, non-recursive "dataclass". Field order is
// declaration order and participates in type identity.
type RecordType struct {
	Name   string
	Fields []Field
}

func (r *RecordType) String() string { return r.Name }

// IndexOf returns the declaration-order index of a field, or -1 if absent.
func (r *RecordType) IndexOf(field string) int {
	for i, f := range r.Fields {
		if f.Name == field {
			return i
		}
	}
	return -1
}

// FieldType returns the declared type of a field, or nil if absent.
func (r *RecordType) FieldType(field string) Type {
	for _, f := range r.Fields {
		if f.Name == field {
			return f.Type
		}
	}
	return nil
}

// AsTuple lowers a record to the positional tuple type record elimination
// replaces it with (spec §4.3).
func (r *RecordType) AsTuple() *TupleType {
	elems := make([]Type, len(r.Fields))
	for i, f := range r.Fields {
		elems[i] = f.Type
	}
	return &TupleType{Elements: elems}
}

// CallableType is the type of a function value: an ordered argument list and
// a return type.
type CallableType struct {
	Args       []Type
	OutputType Type
}

func (c *CallableType) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + c.OutputType.String()
}

// Equals reports structural equality, following each case down to its
// leaves. Two RecordTypes are equal only if they share a name: records are
// nominal (spec §3).
func Equals(a, b Type) bool {
	switch av := a.(type) {
	case IntType:
		_, ok := b.(IntType)
		return ok
	case BoolType:
		_, ok := b.(BoolType)
		return ok
	case *TupleType:
		bv, ok := b.(*TupleType)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equals(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *RecordType:
		bv, ok := b.(*RecordType)
		return ok && av.Name == bv.Name
	case *CallableType:
		bv, ok := b.(*CallableType)
		if !ok || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Equals(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return Equals(av.OutputType, bv.OutputType)
	default:
		return false
	}
}

// IsTuple reports whether t is a TupleType, the test select-instructions
// uses to set a field's bit in a vector tag's pointer mask (spec §4.5).
func IsTuple(t Type) bool {
	_, ok := t.(*TupleType)
	return ok
}
