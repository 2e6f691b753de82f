package errors

import (
	"fmt"

	"lfunc/internal/ast"
)

// The compiler recognizes exactly three error kinds (spec §7): a TypeError
// from typecheck, a StructuralError from an impossible case inside a
// lowering pass, and an IOError wrapping a failed file operation. All three
// implement error; TypeError and StructuralError also render the
// CompilerError used by ErrorReporter, while an IOError is reported by its
// Error() text alone.

// TypeError reports a well-typedness violation found by the typechecker.
type TypeError struct {
	Node    ast.Node
	Message string
}

func NewTypeError(node ast.Node, message string) *TypeError {
	return &TypeError{Node: node, Message: message}
}

func (e *TypeError) Error() string {
	pos := e.Node.NodePos()
	return fmt.Sprintf("type error at %s:%d:%d: %s", pos.Filename, pos.Line, pos.Column, e.Message)
}

func (e *TypeError) CompilerError() CompilerError {
	return CompilerError{
		Level:    Error,
		Code:     "E0200",
		Message:  e.Message,
		Position: e.Node.NodePos(),
		Length:   nodeLength(e.Node),
	}
}

// StructuralError indicates a compiler bug: a lowering pass reached an
// input shape its precondition should have ruled out (the "_ => raise"
// impossible cases of spec §7). It carries the offending IR node for
// diagnosis rather than an unadorned panic.
type StructuralError struct {
	Pass    string
	Node    ast.Node
	Message string
}

func NewStructuralError(pass string, node ast.Node, message string) *StructuralError {
	return &StructuralError{Pass: pass, Node: node, Message: message}
}

func (e *StructuralError) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("internal error in %s: %s", e.Pass, e.Message)
	}
	pos := e.Node.NodePos()
	return fmt.Sprintf("internal error in %s at %s:%d:%d: %s", e.Pass, pos.Filename, pos.Line, pos.Column, e.Message)
}

// CompilerError renders a StructuralError for display. Structural errors
// diagnosed without an IR node (most of the lowering passes, which operate
// on C/X IR that carries no source position) report at the start of the
// file rather than omitting a location.
func (e *StructuralError) CompilerError() CompilerError {
	if e.Node == nil {
		return CompilerError{
			Level:   Error,
			Code:    "E0300",
			Message: fmt.Sprintf("[%s] %s", e.Pass, e.Message),
		}
	}
	return CompilerError{
		Level:    Error,
		Code:     "E0300",
		Message:  fmt.Sprintf("[%s] %s", e.Pass, e.Message),
		Position: e.Node.NodePos(),
		Length:   nodeLength(e.Node),
	}
}

// IOError wraps a failed file read or write.
type IOError struct {
	Op    string
	Path  string
	Cause error
}

func NewIOError(op, path string, cause error) *IOError {
	return &IOError{Op: op, Path: path, Cause: cause}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *IOError) Unwrap() error { return e.Cause }

func nodeLength(n ast.Node) int {
	start, end := n.NodePos(), n.NodeEndPos()
	if end.Line != start.Line {
		return 1
	}
	if end.Column > start.Column {
		return end.Column - start.Column
	}
	return 1
}
