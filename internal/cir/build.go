package cir

import (
	"fmt"

	"lfunc/internal/ast"
	"lfunc/internal/errors"
	"lfunc/internal/tables"
	"lfunc/internal/types"
)

// Build runs explicate-control (spec §4.4) over a post-RCO, post-elimination
// L program, producing one labeled-block CFG per function plus an implicit
// "main" function wrapping the top-level statements.
func Build(prog *ast.Program, ctx *tables.Context) (*Program, error) {
	b := &builder{ctx: ctx}

	var fns []*FunctionDef
	var mainStmts []ast.Stmt
	for _, s := range prog.Stmts {
		if fd, ok := s.(*ast.FunctionDef); ok {
			fn, err := b.buildFunction(fd)
			if err != nil {
				return nil, err
			}
			fns = append(fns, fn)
			continue
		}
		if _, ok := s.(*ast.ClassDef); ok {
			return nil, errors.NewStructuralError("explicate-control", s, "class definition survived record elimination")
		}
		mainStmts = append(mainStmts, s)
	}

	mainFn, err := b.buildBody("main", nil, mainStmts)
	if err != nil {
		return nil, err
	}
	fns = append(fns, mainFn)

	return &Program{Functions: fns}, nil
}

type builder struct {
	ctx *tables.Context
}

func (b *builder) buildFunction(fd *ast.FunctionDef) (*FunctionDef, error) {
	params := make([]string, 0, len(fd.Params))
	for _, p := range fd.Params {
		params = append(params, p.Name)
	}
	return b.buildBody(fd.Name, params, fd.Body)
}

func (b *builder) buildBody(name string, params []string, stmts []ast.Stmt) (*FunctionDef, error) {
	retType, ok := b.ctx.FunctionReturnTypes[name]
	if !ok {
		retType = types.IntType{}
	}
	f := &FunctionDef{
		Name:       name,
		Params:     params,
		ReturnType: retType,
		Blocks:     make(map[string]*Block),
	}

	entry := name + "start"
	f.block(entry)

	cur, err := b.explicateStmts(f, entry, stmts)
	if err != nil {
		return nil, err
	}

	last := f.block(cur)
	if last.Tail == nil {
		last.Tail = &Return{Value: &Const{IntVal: 0}}
	}
	return f, nil
}

func (b *builder) explicateStmts(f *FunctionDef, cur string, stmts []ast.Stmt) (string, error) {
	for _, s := range stmts {
		var err error
		cur, err = b.explicateStmt(f, cur, s)
		if err != nil {
			return "", err
		}
	}
	return cur, nil
}

func ensureGoto(f *FunctionDef, label, target string) {
	blk := f.block(label)
	if blk.Tail == nil {
		blk.Tail = &Goto{Label: target}
	}
}

func (b *builder) explicateStmt(f *FunctionDef, cur string, s ast.Stmt) (string, error) {
	switch n := s.(type) {
	case *ast.AssignStmt:
		expr, err := b.convertExpr(n.Value)
		if err != nil {
			return "", err
		}
		blk := f.block(cur)
		blk.Stmts = append(blk.Stmts, &Assign{Name: n.Name, Expr: expr})
		return cur, nil

	case *ast.PrintStmt:
		atom, err := b.convertAtom(n.Value)
		if err != nil {
			return "", err
		}
		blk := f.block(cur)
		blk.Stmts = append(blk.Stmts, &Print{Value: atom})
		return cur, nil

	case *ast.ReturnStmt:
		atom, err := b.convertAtom(n.Value)
		if err != nil {
			return "", err
		}
		blk := f.block(cur)
		if blk.Tail == nil {
			blk.Tail = &Return{Value: atom}
			return cur, nil
		}
		// Dead code after an earlier terminator in this L block; give it a
		// fresh, unreachable block rather than silently dropping it.
		fresh := b.ctx.Gensym(f.Name + "_dead")
		f.block(fresh).Tail = &Return{Value: atom}
		return fresh, nil

	case *ast.ExprStmt:
		expr, err := b.convertExpr(n.Value)
		if err != nil {
			return "", err
		}
		blk := f.block(cur)
		blk.Stmts = append(blk.Stmts, &Assign{Name: b.ctx.Gensym("_discard"), Expr: expr})
		return cur, nil

	case *ast.IfStmt:
		return b.explicateIf(f, cur, n)

	case *ast.WhileStmt:
		return b.explicateWhile(f, cur, n)

	default:
		return "", errors.NewStructuralError("explicate-control", s, fmt.Sprintf("unexpected statement %T", s))
	}
}

func (b *builder) explicateIf(f *FunctionDef, cur string, n *ast.IfStmt) (string, error) {
	thenLabel := b.ctx.Gensym(f.Name + "_then")
	elseLabel := b.ctx.Gensym(f.Name + "_else")
	contLabel := b.ctx.Gensym(f.Name + "_cont")

	condAtom, err := b.convertAtom(n.Cond)
	if err != nil {
		return "", err
	}
	f.block(cur).Tail = &If{Cond: condAtom, Then: &Goto{Label: thenLabel}, Else: &Goto{Label: elseLabel}}

	thenEnd, err := b.explicateStmts(f, thenLabel, n.Then)
	if err != nil {
		return "", err
	}
	ensureGoto(f, thenEnd, contLabel)

	elseEnd, err := b.explicateStmts(f, elseLabel, n.Else)
	if err != nil {
		return "", err
	}
	ensureGoto(f, elseEnd, contLabel)

	return contLabel, nil
}

func (b *builder) explicateWhile(f *FunctionDef, cur string, n *ast.WhileStmt) (string, error) {
	testLabel := b.ctx.Gensym(f.Name + "_test")
	bodyLabel := b.ctx.Gensym(f.Name + "_body")
	contLabel := b.ctx.Gensym(f.Name + "_cont")

	f.block(cur).Tail = &Goto{Label: testLabel}

	bodyEnd, err := b.explicateStmts(f, bodyLabel, n.Body)
	if err != nil {
		return "", err
	}
	ensureGoto(f, bodyEnd, testLabel)

	var condStmts []ast.Stmt
	var condAtomExpr ast.Expr = n.Cond
	if begin, ok := n.Cond.(*ast.BeginExpr); ok {
		condStmts = begin.Stmts
		condAtomExpr = begin.Result
	}

	testEnd, err := b.explicateStmts(f, testLabel, condStmts)
	if err != nil {
		return "", err
	}
	condAtom, err := b.convertAtom(condAtomExpr)
	if err != nil {
		return "", err
	}
	f.block(testEnd).Tail = &If{Cond: condAtom, Then: &Goto{Label: bodyLabel}, Else: &Goto{Label: contLabel}}

	return contLabel, nil
}

func (b *builder) convertAtom(e ast.Expr) (Atom, error) {
	switch n := e.(type) {
	case *ast.VarExpr:
		return &Var{Name: n.Name}, nil
	case *ast.ConstExpr:
		return &Const{IsBool: n.IsBool, IntVal: n.IntVal, BoolVal: n.BoolVal}, nil
	default:
		return nil, errors.NewStructuralError("explicate-control", e, fmt.Sprintf("non-atomic operand %T survived RCO", e))
	}
}

func (b *builder) convertExpr(e ast.Expr) (Expr, error) {
	switch n := e.(type) {
	case *ast.VarExpr, *ast.ConstExpr:
		return b.convertAtom(e)
	case *ast.PrimExpr:
		args := make([]Atom, 0, len(n.Args))
		for _, a := range n.Args {
			atom, err := b.convertAtom(a)
			if err != nil {
				return nil, err
			}
			args = append(args, atom)
		}
		return &Prim{Op: n.Op, Args: args}, nil
	case *ast.CallExpr:
		fn, err := b.convertAtom(n.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]Atom, 0, len(n.Args))
		for _, a := range n.Args {
			atom, err := b.convertAtom(a)
			if err != nil {
				return nil, err
			}
			args = append(args, atom)
		}
		return &Call{Fn: fn, Args: args}, nil
	default:
		return nil, errors.NewStructuralError("explicate-control", e, fmt.Sprintf("unexpected expression %T survived lowering", e))
	}
}
