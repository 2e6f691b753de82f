package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"lfunc/internal/ast"
)

func node(line, col int) ast.Node {
	v := &ast.VarExpr{
		Pos:    ast.Position{Filename: "t.lf", Line: line, Column: col},
		EndPos: ast.Position{Filename: "t.lf", Line: line, Column: col + 3},
		Name:   "x",
	}
	return v
}

func TestTypeErrorMessage(t *testing.T) {
	err := NewTypeError(node(3, 5), "expected int, got bool")
	assert.Contains(t, err.Error(), "t.lf:3:5")
	assert.Contains(t, err.Error(), "expected int, got bool")

	ce := err.CompilerError()
	assert.Equal(t, Error, ce.Level)
	assert.Equal(t, 3, ce.Length)
}

func TestStructuralErrorMessage(t *testing.T) {
	err := NewStructuralError("explicate-control", node(1, 1), "unreachable terminator")
	assert.Contains(t, err.Error(), "explicate-control")
	assert.Contains(t, err.Error(), "unreachable terminator")
}

func TestIOErrorUnwraps(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewIOError("write", "out.s", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "out.s")
}
