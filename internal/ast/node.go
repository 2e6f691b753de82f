package ast

// Node is implemented by every AST node: a located, printable value.
type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

func (p *Program) NodePos() Position    { return p.Pos }
func (p *Program) NodeEndPos() Position { return p.EndPos }
func (*Program) NodeType() NodeType     { return PROGRAM }

func (t *TypeName) NodePos() Position    { return t.Pos }
func (t *TypeName) NodeEndPos() Position { return t.EndPos }
func (*TypeName) NodeType() NodeType     { return TYPE_NAME }

func (t *TupleType) NodePos() Position    { return t.Pos }
func (t *TupleType) NodeEndPos() Position { return t.EndPos }
func (*TupleType) NodeType() NodeType     { return TUPLE_TYPE }

func (v *VarExpr) NodePos() Position    { return v.Pos }
func (v *VarExpr) NodeEndPos() Position { return v.EndPos }
func (*VarExpr) NodeType() NodeType     { return VAR_EXPR }

func (c *ConstExpr) NodePos() Position    { return c.Pos }
func (c *ConstExpr) NodeEndPos() Position { return c.EndPos }
func (*ConstExpr) NodeType() NodeType     { return CONST_EXPR }

func (p *PrimExpr) NodePos() Position    { return p.Pos }
func (p *PrimExpr) NodeEndPos() Position { return p.EndPos }
func (*PrimExpr) NodeType() NodeType     { return PRIM_EXPR }

func (c *CallExpr) NodePos() Position    { return c.Pos }
func (c *CallExpr) NodeEndPos() Position { return c.EndPos }
func (*CallExpr) NodeType() NodeType     { return CALL_EXPR }

func (f *FieldRefExpr) NodePos() Position    { return f.Pos }
func (f *FieldRefExpr) NodeEndPos() Position { return f.EndPos }
func (*FieldRefExpr) NodeType() NodeType     { return FIELD_REF_EXPR }

func (b *BeginExpr) NodePos() Position    { return b.Pos }
func (b *BeginExpr) NodeEndPos() Position { return b.EndPos }
func (*BeginExpr) NodeType() NodeType     { return BEGIN_EXPR }

func (a *AssignStmt) NodePos() Position    { return a.Pos }
func (a *AssignStmt) NodeEndPos() Position { return a.EndPos }
func (*AssignStmt) NodeType() NodeType     { return ASSIGN_STMT }

func (p *PrintStmt) NodePos() Position    { return p.Pos }
func (p *PrintStmt) NodeEndPos() Position { return p.EndPos }
func (*PrintStmt) NodeType() NodeType     { return PRINT_STMT }

func (i *IfStmt) NodePos() Position    { return i.Pos }
func (i *IfStmt) NodeEndPos() Position { return i.EndPos }
func (*IfStmt) NodeType() NodeType     { return IF_STMT }

func (w *WhileStmt) NodePos() Position    { return w.Pos }
func (w *WhileStmt) NodeEndPos() Position { return w.EndPos }
func (*WhileStmt) NodeType() NodeType     { return WHILE_STMT }

func (r *ReturnStmt) NodePos() Position    { return r.Pos }
func (r *ReturnStmt) NodeEndPos() Position { return r.EndPos }
func (*ReturnStmt) NodeType() NodeType     { return RETURN_STMT }

func (e *ExprStmt) NodePos() Position    { return e.Pos }
func (e *ExprStmt) NodeEndPos() Position { return e.EndPos }
func (*ExprStmt) NodeType() NodeType     { return EXPR_STMT }

func (f *FunctionDef) NodePos() Position    { return f.Pos }
func (f *FunctionDef) NodeEndPos() Position { return f.EndPos }
func (*FunctionDef) NodeType() NodeType     { return FUNCTION_DEF }

func (p *FunctionParam) NodePos() Position    { return p.Pos }
func (p *FunctionParam) NodeEndPos() Position { return p.EndPos }
func (*FunctionParam) NodeType() NodeType     { return FUNCTION_PARAM }

func (c *ClassDef) NodePos() Position    { return c.Pos }
func (c *ClassDef) NodeEndPos() Position { return c.EndPos }
func (*ClassDef) NodeType() NodeType     { return CLASS_DEF }

func (f *ClassField) NodePos() Position    { return f.Pos }
func (f *ClassField) NodeEndPos() Position { return f.EndPos }
func (*ClassField) NodeType() NodeType     { return CLASS_FIELD }
