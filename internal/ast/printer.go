package ast

import (
	"fmt"
	"strings"
)

func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Stmts {
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	return b.String()
}

func (t *TypeName) String() string { return t.Name }

func (t *TupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (v *VarExpr) String() string { return v.Name }

func (c *ConstExpr) String() string {
	if c.IsBool {
		return fmt.Sprintf("%t", c.BoolVal)
	}
	return fmt.Sprintf("%d", c.IntVal)
}

func (p *PrimExpr) String() string {
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Op, strings.Join(parts, ", "))
}

func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee.String(), strings.Join(parts, ", "))
}

func (f *FieldRefExpr) String() string {
	return fmt.Sprintf("%s.%s", f.Object.String(), f.Field)
}

func (b *BeginExpr) String() string {
	var sb strings.Builder
	sb.WriteString("begin { ")
	for _, s := range b.Stmts {
		sb.WriteString(s.String())
		sb.WriteString(" ")
	}
	sb.WriteString(b.Result.String())
	sb.WriteString(" }")
	return sb.String()
}

func (a *AssignStmt) String() string {
	return fmt.Sprintf("%s = %s;", a.Name, a.Value.String())
}

func (p *PrintStmt) String() string {
	return fmt.Sprintf("print(%s);", p.Value.String())
}

func (i *IfStmt) String() string {
	return fmt.Sprintf("if %s { ... } else { ... }", i.Cond.String())
}

func (w *WhileStmt) String() string {
	return fmt.Sprintf("while %s { ... }", w.Cond.String())
}

func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value.String())
}

func (e *ExprStmt) String() string { return e.Value.String() + ";" }

func (f *FunctionDef) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("def %s(%s) -> %s { ... }", f.Name, strings.Join(parts, ", "), f.ReturnType.String())
}

func (p *FunctionParam) String() string {
	return fmt.Sprintf("%s: %s", p.Name, p.Type.String())
}

func (c *ClassDef) String() string {
	parts := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("class %s: %s end", c.Name, strings.Join(parts, "; "))
}

func (f *ClassField) String() string {
	return fmt.Sprintf("%s: %s", f.Name, f.Type.String())
}
