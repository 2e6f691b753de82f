package ast

// Expr is any L-expression (spec §3): Var, Const, Prim, Call, FieldRef, Begin.
type Expr interface {
	Node
	isExpr()
}

func (*VarExpr) isExpr()      {}
func (*ConstExpr) isExpr()    {}
func (*PrimExpr) isExpr()     {}
func (*CallExpr) isExpr()     {}
func (*FieldRefExpr) isExpr() {}
func (*BeginExpr) isExpr()    {}

// VarExpr references a bound name.
// Example: "x", "total"
type VarExpr struct {
	Pos      Position
	EndPos   Position
	Name     string
}

// ConstExpr is an integer or boolean literal.
// Example: "42", "true"
type ConstExpr struct {
	Pos      Position
	EndPos   Position
	IsBool   bool
	IntVal   int64
	BoolVal  bool
}

// PrimExpr applies a primitive operator to its (not-yet-atomized) arguments.
// Op is one of: add sub mult and or not eq gt gte lt lte tuple subscript.
// Example: "a + b" -> PrimExpr{Op: "add", Args: [a, b]}
type PrimExpr struct {
	Pos      Position
	EndPos   Position
	Op       string
	Args     []Expr
}

// CallExpr calls a function value or constructs a record.
// Example: "add_point(p1, p2)", "Point(1, 2)"
type CallExpr struct {
	Pos      Position
	EndPos   Position
	Callee   Expr
	Args     []Expr
}

// FieldRefExpr reads a named field off a record-typed expression.
// Example: "p.x"
type FieldRefExpr struct {
	Pos      Position
	EndPos   Position
	Object   Expr
	Field    string
}

// BeginExpr sequences statements before yielding a final expression value.
// It is introduced by remove-complex-operands to hoist the side effects of
// recomputing a while-loop condition (spec §4.2, §4.4).
type BeginExpr struct {
	Pos      Position
	EndPos   Position
	Stmts    []Stmt
	Result   Expr
}
