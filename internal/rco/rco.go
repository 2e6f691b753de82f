// Package rco implements remove-complex-operands (spec §4.2): administrative
// normal form conversion. Every non-atomic subexpression is hoisted into a
// fresh Assign placed immediately before the statement that used it, so that
// every Prim, Call, and FieldRef downstream sees only Var/Const arguments.
package rco

import (
	"lfunc/internal/ast"
	"lfunc/internal/errors"
	"lfunc/internal/tables"
)

// Run returns a new program in ANF. It does not mutate prog.
func Run(prog *ast.Program, ctx *tables.Context) (*ast.Program, error) {
	stmts, err := rcoStmts(prog.Stmts, ctx)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Pos: prog.Pos, EndPos: prog.EndPos, Stmts: stmts}, nil
}

func isAtomic(e ast.Expr) bool {
	switch e.(type) {
	case *ast.VarExpr, *ast.ConstExpr:
		return true
	default:
		return false
	}
}

// rcoAtom fully normalizes e and, if the result is not already atomic, binds
// it to a fresh temporary appended to out, returning a reference to that
// temporary.
func rcoAtom(e ast.Expr, out *[]ast.Stmt, ctx *tables.Context) (ast.Expr, error) {
	simplified, err := rcoExpr(e, out, ctx)
	if err != nil {
		return nil, err
	}
	if isAtomic(simplified) {
		return simplified, nil
	}
	tmp := ctx.Gensym("tmp")
	*out = append(*out, &ast.AssignStmt{Pos: simplified.NodePos(), EndPos: simplified.NodeEndPos(), Name: tmp, Value: simplified})
	return &ast.VarExpr{Pos: simplified.NodePos(), EndPos: simplified.NodeEndPos(), Name: tmp}, nil
}

// rcoExpr normalizes e's subexpressions to atoms but leaves e's own shape
// intact (a Prim/Call/FieldRef may still be the statement's top-level
// value — only its arguments must be atomic).
func rcoExpr(e ast.Expr, out *[]ast.Stmt, ctx *tables.Context) (ast.Expr, error) {
	switch n := e.(type) {
	case *ast.VarExpr, *ast.ConstExpr:
		return n, nil

	case *ast.PrimExpr:
		args := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			atom, err := rcoAtom(a, out, ctx)
			if err != nil {
				return nil, err
			}
			args[i] = atom
		}
		return &ast.PrimExpr{Pos: n.Pos, EndPos: n.EndPos, Op: n.Op, Args: args}, nil

	case *ast.CallExpr:
		callee, err := rcoAtom(n.Callee, out, ctx)
		if err != nil {
			return nil, err
		}
		args := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			atom, err := rcoAtom(a, out, ctx)
			if err != nil {
				return nil, err
			}
			args[i] = atom
		}
		return &ast.CallExpr{Pos: n.Pos, EndPos: n.EndPos, Callee: callee, Args: args}, nil

	case *ast.FieldRefExpr:
		obj, err := rcoAtom(n.Object, out, ctx)
		if err != nil {
			return nil, err
		}
		return &ast.FieldRefExpr{Pos: n.Pos, EndPos: n.EndPos, Object: obj, Field: n.Field}, nil

	default:
		return nil, errors.NewStructuralError("rco", e, "unexpected expression shape before RCO")
	}
}

func rcoStmts(stmts []ast.Stmt, ctx *tables.Context) ([]ast.Stmt, error) {
	var result []ast.Stmt
	for _, s := range stmts {
		rewritten, err := rcoStmt(s, ctx)
		if err != nil {
			return nil, err
		}
		result = append(result, rewritten...)
	}
	return result, nil
}

func rcoStmt(s ast.Stmt, ctx *tables.Context) ([]ast.Stmt, error) {
	var out []ast.Stmt

	switch n := s.(type) {
	case *ast.AssignStmt:
		value, err := rcoExpr(n.Value, &out, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.AssignStmt{Pos: n.Pos, EndPos: n.EndPos, Name: n.Name, Value: value})
		return out, nil

	case *ast.PrintStmt:
		atom, err := rcoAtom(n.Value, &out, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.PrintStmt{Pos: n.Pos, EndPos: n.EndPos, Value: atom})
		return out, nil

	case *ast.ReturnStmt:
		atom, err := rcoAtom(n.Value, &out, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.ReturnStmt{Pos: n.Pos, EndPos: n.EndPos, Value: atom})
		return out, nil

	case *ast.ExprStmt:
		value, err := rcoExpr(n.Value, &out, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.ExprStmt{Pos: n.Pos, EndPos: n.EndPos, Value: value})
		return out, nil

	case *ast.IfStmt:
		cond, err := rcoAtom(n.Cond, &out, ctx)
		if err != nil {
			return nil, err
		}
		thenStmts, err := rcoStmts(n.Then, ctx)
		if err != nil {
			return nil, err
		}
		elseStmts, err := rcoStmts(n.Else, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.IfStmt{Pos: n.Pos, EndPos: n.EndPos, Cond: cond, Then: thenStmts, Else: elseStmts})
		return out, nil

	case *ast.WhileStmt:
		var condOut []ast.Stmt
		condAtom, err := rcoAtom(n.Cond, &condOut, ctx)
		if err != nil {
			return nil, err
		}
		begin := &ast.BeginExpr{Pos: n.Cond.NodePos(), EndPos: n.Cond.NodeEndPos(), Stmts: condOut, Result: condAtom}
		bodyStmts, err := rcoStmts(n.Body, ctx)
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{&ast.WhileStmt{Pos: n.Pos, EndPos: n.EndPos, Cond: begin, Body: bodyStmts}}, nil

	case *ast.FunctionDef:
		body, err := rcoStmts(n.Body, ctx)
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{&ast.FunctionDef{Pos: n.Pos, EndPos: n.EndPos, Name: n.Name, Params: n.Params, ReturnType: n.ReturnType, Body: body}}, nil

	case *ast.ClassDef:
		return []ast.Stmt{n}, nil

	default:
		return nil, errors.NewStructuralError("rco", s, "unexpected statement shape before RCO")
	}
}
