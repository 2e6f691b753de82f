package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Program is the participle entry rule: a flat sequence of top-level
// statements (SPEC_FULL.md §2).
type Program struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Stmts  []*Stmt `@@*`
}

// Stmt is the statement alternation. Order matters: ClassDef/FuncDef/If/
// While/Return/Print are keyword-led and resolve unambiguously; Assign is
// tried before ExprStmt since both can start with an identifier.
type Stmt struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Class    *ClassDef  `  @@`
	Func     *FuncDef   `| @@`
	If       *IfStmt    `| @@`
	While    *WhileStmt `| @@`
	Return   *ReturnStmt `| @@`
	Print    *PrintStmt `| @@`
	Assign   *AssignStmt `| @@`
	ExprStmt *ExprStmt  `| @@`
}

type ClassDef struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string        `"class" @Ident ":"`
	Fields []*ClassField `@@*`
	Close  string        `"end"`
}

type ClassField struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string    `@Ident ":"`
	Type   *TypeSpec `@@ ";"`
}

// TypeSpec spells a type: a bare name ("int", "bool", or a class name) or a
// parenthesized tuple of element types.
type TypeSpec struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string      `  @Ident`
	Tuple  []*TypeSpec `| "(" @@ { "," @@ } ")"`
}

type FuncDef struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string      `"def" @Ident "("`
	Params []*Param    `[ @@ { "," @@ } ] ")"`
	Return *TypeSpec   `"->" @@`
	Body   []*Stmt     `"{" @@* "}"`
}

type Param struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string    `@Ident ":"`
	Type   *TypeSpec `@@`
}

type IfStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Cond   *Expr   `"if" @@ "{"`
	Then   []*Stmt `@@* "}"`
	Else   []*Stmt `[ "else" "{" @@* "}" ]`
}

type WhileStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Cond   *Expr   `"while" @@ "{"`
	Body   []*Stmt `@@* "}"`
}

type ReturnStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  *Expr `"return" @@ ";"`
}

type PrintStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  *Expr `"print" "(" @@ ")" ";"`
}

type AssignStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Target string `@Ident "="`
	Value  *Expr  `@@ ";"`
}

type ExprStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  *Expr `@@ ";"`
}

// Expr is the precedence-climbing entry point. Each layer below binds
// tighter than the one above it: or < and < comparisons < add/sub < mult <
// unary < postfix < primary.
type Expr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Or     *OrExpr `@@`
}

type OrExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *AndExpr   `@@`
	Rest   []*AndExpr `{ "or" @@ }`
}

type AndExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *CmpExpr   `@@`
	Rest   []*CmpExpr `{ "and" @@ }`
}

// CmpExpr does not chain: spec's comparison operators take exactly two
// operands.
type CmpExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *AddExpr `@@`
	Op     *string  `[ @("==" | ">=" | ">" | "<=" | "<")`
	Right  *AddExpr `  @@ ]`
}

type AddExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *MulExpr `@@`
	Ops    []*AddOp `{ @@ }`
}

type AddOp struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Operator string   `@("+" | "-")`
	Right    *MulExpr `@@`
}

type MulExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *UnaryExpr   `@@`
	Rest   []*UnaryExpr `{ "*" @@ }`
}

type UnaryExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Not    bool         `[ @"not" ]`
	Value  *PostfixExpr `@@`
}

type PostfixExpr struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Primary *Primary   `@@`
	Suffix  []*Suffix  `{ @@ }`
}

type Suffix struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Field  *string `  "." @Ident`
	Index  *string `| "[" @Integer "]"`
}

// Primary is the leaf alternation. Call is tried before Ident since both
// start with an identifier token.
type Primary struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Call     *CallExpr `  @@`
	TupleLit *TupleLit `| @@`
	Paren    *Expr     `| "(" @@ ")"`
	True     *string   `| @"true"`
	False    *string   `| @"false"`
	Number   *string   `| @Integer`
	Ident    *string   `| @Ident`
}

// CallExpr is a function call or a record constructor; which one it is
// cannot be decided until name resolution (internal/parser distinguishes
// them no further than spec.md's own Call(fn_expr, args) node does).
type CallExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Callee string  `@Ident "("`
	Args   []*Expr `[ @@ { "," @@ } ] ")"`
}

// TupleLit is the surface spelling of Prim("tuple", args).
type TupleLit struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Elements []*Expr `"[" [ @@ { "," @@ } ] "]"`
}
