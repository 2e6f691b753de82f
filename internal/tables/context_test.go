package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGensymIsUniqueAndMonotonic(t *testing.T) {
	ctx := NewContext()

	a := ctx.Gensym("tmp")
	b := ctx.Gensym("tmp")
	c := ctx.Gensym("x")

	assert.NotEqual(t, a, b)
	assert.Equal(t, "tmp_1", a)
	assert.Equal(t, "tmp_2", b)
	assert.Equal(t, "x_3", c)
}

func TestNewContextTablesAreEmptyNotNil(t *testing.T) {
	ctx := NewContext()

	assert.NotNil(t, ctx.TupleVarTypes)
	assert.NotNil(t, ctx.RecordTypes)
	assert.NotNil(t, ctx.FunctionParams)
	assert.NotNil(t, ctx.FunctionReturnTypes)
	assert.NotNil(t, ctx.FunctionNames)
	assert.Empty(t, ctx.RecordTypes)
}
