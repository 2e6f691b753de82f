package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSourceClassAndAssign(t *testing.T) {
	prog, err := ParseSource("t.lf", `class Point:
  x: int;
  y: int;
end
p = Point(1, 2);
print(p.x);
`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 3)

	class := prog.Stmts[0].Class
	require.NotNil(t, class)
	assert.Equal(t, "Point", class.Name)
	require.Len(t, class.Fields, 2)
	assert.Equal(t, "x", class.Fields[0].Name)
	assert.Equal(t, "int", class.Fields[0].Type.Name)

	assign := prog.Stmts[1].Assign
	require.NotNil(t, assign)
	assert.Equal(t, "p", assign.Target)
}

func TestParseSourceFunctionDef(t *testing.T) {
	prog, err := ParseSource("t.lf", `def add(a: int, b: int) -> int {
  return a + b;
}
`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)

	fn := prog.Stmts[0].Func
	require.NotNil(t, fn)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "int", fn.Return.Name)
}

func TestParseSourceWhileAndComparison(t *testing.T) {
	prog, err := ParseSource("t.lf", `i = 0;
while i < 10 {
  i = i + 1;
}
`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 2)
	assert.NotNil(t, prog.Stmts[1].While)
}

func TestParseSourceRejectsSyntaxError(t *testing.T) {
	_, err := ParseSource("t.lf", "x = ;")
	assert.Error(t, err)
}

func TestParseSourceTupleLiteralAndSubscript(t *testing.T) {
	prog, err := ParseSource("t.lf", `t = [1, 2, 3];
print(t[0]);
`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 2)
}
