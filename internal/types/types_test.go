package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimitiveTypeStrings(t *testing.T) {
	assert.Equal(t, "int", IntType{}.String())
	assert.Equal(t, "bool", BoolType{}.String())
}

func TestTupleTypeString(t *testing.T) {
	tup := &TupleType{Elements: []Type{IntType{}, BoolType{}}}
	assert.Equal(t, "(int, bool)", tup.String())
}

func TestRecordTypeFieldLookup(t *testing.T) {
	rec := &RecordType{
		Name: "Point",
		Fields: []Field{
			{Name: "x", Type: IntType{}},
			{Name: "y", Type: IntType{}},
		},
	}

	assert.Equal(t, 0, rec.IndexOf("x"))
	assert.Equal(t, 1, rec.IndexOf("y"))
	assert.Equal(t, -1, rec.IndexOf("z"))
	assert.Equal(t, IntType{}, rec.FieldType("x"))
	assert.Nil(t, rec.FieldType("z"))
}

func TestRecordAsTuplePreservesFieldOrder(t *testing.T) {
	rec := &RecordType{
		Name: "Rect",
		Fields: []Field{
			{Name: "len", Type: IntType{}},
			{Name: "width", Type: IntType{}},
		},
	}

	tup := rec.AsTuple()
	assert.Equal(t, []Type{IntType{}, IntType{}}, tup.Elements)
}

func TestEqualsIsNominalForRecords(t *testing.T) {
	a := &RecordType{Name: "Point", Fields: []Field{{Name: "x", Type: IntType{}}}}
	b := &RecordType{Name: "Point", Fields: []Field{{Name: "x", Type: IntType{}}}}
	c := &RecordType{Name: "Other", Fields: []Field{{Name: "x", Type: IntType{}}}}

	assert.True(t, Equals(a, b))
	assert.False(t, Equals(a, c))
}

func TestEqualsOnCallableType(t *testing.T) {
	a := &CallableType{Args: []Type{IntType{}, IntType{}}, OutputType: BoolType{}}
	b := &CallableType{Args: []Type{IntType{}, IntType{}}, OutputType: BoolType{}}
	c := &CallableType{Args: []Type{IntType{}}, OutputType: BoolType{}}

	assert.True(t, Equals(a, b))
	assert.False(t, Equals(a, c))
}

func TestIsTuple(t *testing.T) {
	assert.True(t, IsTuple(&TupleType{}))
	assert.False(t, IsTuple(IntType{}))
	assert.False(t, IsTuple(&RecordType{}))
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()

	intT, ok := reg.Lookup("int")
	assert.True(t, ok)
	assert.Equal(t, IntType{}, intT)

	_, ok = reg.Lookup("Point")
	assert.False(t, ok)

	reg.Define(&RecordType{Name: "Point"})
	pointT, ok := reg.Lookup("Point")
	assert.True(t, ok)
	assert.Equal(t, "Point", pointT.String())
	assert.True(t, reg.IsRecordName("Point"))
	assert.False(t, reg.IsRecordName("int"))
}
