package parser

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"

	"lfunc/internal/ast"
	"lfunc/grammar"
)

func pos(p lexer.Position) ast.Position {
	return ast.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func convertProgram(g *grammar.Program) *ast.Program {
	stmts := make([]ast.Stmt, 0, len(g.Stmts))
	for _, s := range g.Stmts {
		stmts = append(stmts, convertStmt(s))
	}
	return &ast.Program{Pos: pos(g.Pos), EndPos: pos(g.EndPos), Stmts: stmts}
}

func convertStmt(g *grammar.Stmt) ast.Stmt {
	switch {
	case g.Class != nil:
		return convertClassDef(g.Class)
	case g.Func != nil:
		return convertFuncDef(g.Func)
	case g.If != nil:
		return convertIfStmt(g.If)
	case g.While != nil:
		return convertWhileStmt(g.While)
	case g.Return != nil:
		return convertReturnStmt(g.Return)
	case g.Print != nil:
		return convertPrintStmt(g.Print)
	case g.Assign != nil:
		return convertAssignStmt(g.Assign)
	case g.ExprStmt != nil:
		return convertExprStmt(g.ExprStmt)
	default:
		panic("parser: empty statement alternation")
	}
}

func convertBlock(stmts []*grammar.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, convertStmt(s))
	}
	return out
}

func convertClassDef(g *grammar.ClassDef) *ast.ClassDef {
	fields := make([]*ast.ClassField, 0, len(g.Fields))
	for _, f := range g.Fields {
		fields = append(fields, &ast.ClassField{
			Pos: pos(f.Pos), EndPos: pos(f.EndPos),
			Name: f.Name,
			Type: convertType(f.Type),
		})
	}
	return &ast.ClassDef{Pos: pos(g.Pos), EndPos: pos(g.EndPos), Name: g.Name, Fields: fields}
}

func convertType(g *grammar.TypeSpec) ast.TypeExpr {
	if g.Name != "" {
		return &ast.TypeName{Pos: pos(g.Pos), EndPos: pos(g.EndPos), Name: g.Name}
	}
	elems := make([]ast.TypeExpr, 0, len(g.Tuple))
	for _, t := range g.Tuple {
		elems = append(elems, convertType(t))
	}
	return &ast.TupleType{Pos: pos(g.Pos), EndPos: pos(g.EndPos), Elements: elems}
}

func convertFuncDef(g *grammar.FuncDef) *ast.FunctionDef {
	params := make([]*ast.FunctionParam, 0, len(g.Params))
	for _, p := range g.Params {
		params = append(params, &ast.FunctionParam{
			Pos: pos(p.Pos), EndPos: pos(p.EndPos),
			Name: p.Name,
			Type: convertType(p.Type),
		})
	}
	return &ast.FunctionDef{
		Pos: pos(g.Pos), EndPos: pos(g.EndPos),
		Name:       g.Name,
		Params:     params,
		ReturnType: convertType(g.Return),
		Body:       convertBlock(g.Body),
	}
}

func convertIfStmt(g *grammar.IfStmt) *ast.IfStmt {
	return &ast.IfStmt{
		Pos: pos(g.Pos), EndPos: pos(g.EndPos),
		Cond: convertExpr(g.Cond),
		Then: convertBlock(g.Then),
		Else: convertBlock(g.Else),
	}
}

func convertWhileStmt(g *grammar.WhileStmt) *ast.WhileStmt {
	return &ast.WhileStmt{
		Pos: pos(g.Pos), EndPos: pos(g.EndPos),
		Cond: convertExpr(g.Cond),
		Body: convertBlock(g.Body),
	}
}

func convertReturnStmt(g *grammar.ReturnStmt) *ast.ReturnStmt {
	return &ast.ReturnStmt{Pos: pos(g.Pos), EndPos: pos(g.EndPos), Value: convertExpr(g.Value)}
}

func convertPrintStmt(g *grammar.PrintStmt) *ast.PrintStmt {
	return &ast.PrintStmt{Pos: pos(g.Pos), EndPos: pos(g.EndPos), Value: convertExpr(g.Value)}
}

func convertAssignStmt(g *grammar.AssignStmt) *ast.AssignStmt {
	return &ast.AssignStmt{Pos: pos(g.Pos), EndPos: pos(g.EndPos), Name: g.Target, Value: convertExpr(g.Value)}
}

func convertExprStmt(g *grammar.ExprStmt) *ast.ExprStmt {
	return &ast.ExprStmt{Pos: pos(g.Pos), EndPos: pos(g.EndPos), Value: convertExpr(g.Value)}
}

func convertExpr(g *grammar.Expr) ast.Expr {
	return convertOrExpr(g.Or)
}

func convertOrExpr(g *grammar.OrExpr) ast.Expr {
	result := convertAndExpr(g.Left)
	for _, rhs := range g.Rest {
		right := convertAndExpr(rhs)
		result = &ast.PrimExpr{Pos: result.NodePos(), EndPos: right.NodeEndPos(), Op: "or", Args: []ast.Expr{result, right}}
	}
	return result
}

func convertAndExpr(g *grammar.AndExpr) ast.Expr {
	result := convertCmpExpr(g.Left)
	for _, rhs := range g.Rest {
		right := convertCmpExpr(rhs)
		result = &ast.PrimExpr{Pos: result.NodePos(), EndPos: right.NodeEndPos(), Op: "and", Args: []ast.Expr{result, right}}
	}
	return result
}

var cmpOps = map[string]string{
	"==": "eq",
	">":  "gt",
	">=": "gte",
	"<":  "lt",
	"<=": "lte",
}

func convertCmpExpr(g *grammar.CmpExpr) ast.Expr {
	left := convertAddExpr(g.Left)
	if g.Op == nil {
		return left
	}
	right := convertAddExpr(g.Right)
	return &ast.PrimExpr{Pos: left.NodePos(), EndPos: right.NodeEndPos(), Op: cmpOps[*g.Op], Args: []ast.Expr{left, right}}
}

func convertAddExpr(g *grammar.AddExpr) ast.Expr {
	result := convertMulExpr(g.Left)
	for _, op := range g.Ops {
		right := convertMulExpr(op.Right)
		name := "add"
		if op.Operator == "-" {
			name = "sub"
		}
		result = &ast.PrimExpr{Pos: result.NodePos(), EndPos: right.NodeEndPos(), Op: name, Args: []ast.Expr{result, right}}
	}
	return result
}

func convertMulExpr(g *grammar.MulExpr) ast.Expr {
	result := convertUnaryExpr(g.Left)
	for _, rhs := range g.Rest {
		right := convertUnaryExpr(rhs)
		result = &ast.PrimExpr{Pos: result.NodePos(), EndPos: right.NodeEndPos(), Op: "mult", Args: []ast.Expr{result, right}}
	}
	return result
}

func convertUnaryExpr(g *grammar.UnaryExpr) ast.Expr {
	value := convertPostfixExpr(g.Value)
	if g.Not {
		return &ast.PrimExpr{Pos: pos(g.Pos), EndPos: value.NodeEndPos(), Op: "not", Args: []ast.Expr{value}}
	}
	return value
}

func convertPostfixExpr(g *grammar.PostfixExpr) ast.Expr {
	result := convertPrimary(g.Primary)
	for _, suf := range g.Suffix {
		switch {
		case suf.Field != nil:
			result = &ast.FieldRefExpr{Pos: result.NodePos(), EndPos: pos(suf.EndPos), Object: result, Field: *suf.Field}
		case suf.Index != nil:
			n, _ := strconv.ParseInt(*suf.Index, 10, 64)
			idx := &ast.ConstExpr{Pos: pos(suf.Pos), EndPos: pos(suf.EndPos), IntVal: n}
			result = &ast.PrimExpr{Pos: result.NodePos(), EndPos: pos(suf.EndPos), Op: "subscript", Args: []ast.Expr{result, idx}}
		}
	}
	return result
}

func convertPrimary(g *grammar.Primary) ast.Expr {
	switch {
	case g.Call != nil:
		args := make([]ast.Expr, 0, len(g.Call.Args))
		for _, a := range g.Call.Args {
			args = append(args, convertExpr(a))
		}
		callee := &ast.VarExpr{Pos: pos(g.Call.Pos), EndPos: pos(g.Call.Pos), Name: g.Call.Callee}
		return &ast.CallExpr{Pos: pos(g.Call.Pos), EndPos: pos(g.Call.EndPos), Callee: callee, Args: args}
	case g.TupleLit != nil:
		args := make([]ast.Expr, 0, len(g.TupleLit.Elements))
		for _, e := range g.TupleLit.Elements {
			args = append(args, convertExpr(e))
		}
		return &ast.PrimExpr{Pos: pos(g.TupleLit.Pos), EndPos: pos(g.TupleLit.EndPos), Op: "tuple", Args: args}
	case g.Paren != nil:
		return convertExpr(g.Paren)
	case g.True != nil:
		return &ast.ConstExpr{Pos: pos(g.Pos), EndPos: pos(g.EndPos), IsBool: true, BoolVal: true}
	case g.False != nil:
		return &ast.ConstExpr{Pos: pos(g.Pos), EndPos: pos(g.EndPos), IsBool: true, BoolVal: false}
	case g.Number != nil:
		n, _ := strconv.ParseInt(*g.Number, 10, 64)
		return &ast.ConstExpr{Pos: pos(g.Pos), EndPos: pos(g.EndPos), IntVal: n}
	case g.Ident != nil:
		return &ast.VarExpr{Pos: pos(g.Pos), EndPos: pos(g.EndPos), Name: *g.Ident}
	default:
		panic("parser: empty primary alternation")
	}
}
