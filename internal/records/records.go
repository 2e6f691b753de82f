// Package records implements record elimination (spec §4.3): the nominal
// "dataclass" layer is replaced with positional tuples. Record constructors
// become Prim("tuple", ...); field reads become Prim("subscript", ...); the
// ClassDef declarations themselves are dropped from the program (their
// shape is already preserved in tables.Context.RecordTypes by the first
// typecheck pass, for the second typecheck pass and for diagnostics).
//
// Finding which record type a FieldRef's object has requires knowing that
// variable's pre-elimination type; since records are single-level and
// non-recursive (no field is itself record-typed), a variable can only
// become record-typed by direct construction, by aliasing another
// record-typed variable, by returning from a record-returning function, or
// by being a record-annotated parameter. Tracking that locally as we walk
// the program in order (post-RCO, so every FieldRef's object is already a
// bare Var) is enough — no separate type-inference pass is needed.
package records

import (
	"fmt"

	"lfunc/internal/ast"
	"lfunc/internal/errors"
	"lfunc/internal/tables"
	"lfunc/internal/types"
)

// Eliminate returns a new program with every record construction and field
// access lowered to tuple operations, and every ClassDef removed.
func Eliminate(prog *ast.Program, ctx *tables.Context) (*ast.Program, error) {
	el := &eliminator{ctx: ctx, varRecordType: map[string]*types.RecordType{}, emptyCtorVars: map[string]bool{}}

	var result []ast.Stmt
	for _, s := range prog.Stmts {
		switch n := s.(type) {
		case *ast.ClassDef:
			continue
		case *ast.FunctionDef:
			fn, err := el.eliminateFunction(n)
			if err != nil {
				return nil, err
			}
			result = append(result, fn)
		default:
			rewritten, err := el.eliminateStmt(s)
			if err != nil {
				return nil, err
			}
			result = append(result, rewritten...)
		}
	}
	return &ast.Program{Pos: prog.Pos, EndPos: prog.EndPos, Stmts: result}, nil
}

type eliminator struct {
	ctx           *tables.Context
	varRecordType map[string]*types.RecordType
	emptyCtorVars map[string]bool
}

func (el *eliminator) eliminateFunction(n *ast.FunctionDef) (*ast.FunctionDef, error) {
	outerTypes, outerEmpty := el.varRecordType, el.emptyCtorVars
	defer func() { el.varRecordType, el.emptyCtorVars = outerTypes, outerEmpty }()
	el.varRecordType = map[string]*types.RecordType{}
	el.emptyCtorVars = map[string]bool{}

	newParams := make([]*ast.FunctionParam, len(n.Params))
	for i, p := range n.Params {
		if rec := el.recordNamedByType(p.Type); rec != nil {
			el.varRecordType[p.Name] = rec
			newParams[i] = &ast.FunctionParam{Pos: p.Pos, EndPos: p.EndPos, Name: p.Name, Type: tupleTypeOf(rec)}
			continue
		}
		newParams[i] = p
	}

	returnType := n.ReturnType
	if rec := el.recordNamedByType(n.ReturnType); rec != nil {
		returnType = tupleTypeOf(rec)
	}

	body, err := el.eliminateStmts(n.Body)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDef{Pos: n.Pos, EndPos: n.EndPos, Name: n.Name, Params: newParams, ReturnType: returnType, Body: body}, nil
}

func (el *eliminator) recordNamedByType(te ast.TypeExpr) *types.RecordType {
	tn, ok := te.(*ast.TypeName)
	if !ok {
		return nil
	}
	return el.ctx.RecordTypes[tn.Name]
}

// tupleTypeOf spells out a record's tuple shadow as an ast.TypeExpr. Record
// fields are never themselves records (spec §3, "single-level"), so this
// never has to recurse into nested RecordTypes.
func tupleTypeOf(rec *types.RecordType) ast.TypeExpr {
	elems := make([]ast.TypeExpr, len(rec.Fields))
	for i, f := range rec.Fields {
		elems[i] = typeExprOf(f.Type)
	}
	return &ast.TupleType{Elements: elems}
}

func typeExprOf(t types.Type) ast.TypeExpr {
	switch tt := t.(type) {
	case types.IntType:
		return &ast.TypeName{Name: "int"}
	case types.BoolType:
		return &ast.TypeName{Name: "bool"}
	case *types.TupleType:
		elems := make([]ast.TypeExpr, len(tt.Elements))
		for i, e := range tt.Elements {
			elems[i] = typeExprOf(e)
		}
		return &ast.TupleType{Elements: elems}
	default:
		return &ast.TypeName{Name: t.String()}
	}
}

func (el *eliminator) eliminateStmts(stmts []ast.Stmt) ([]ast.Stmt, error) {
	var result []ast.Stmt
	for _, s := range stmts {
		rewritten, err := el.eliminateStmt(s)
		if err != nil {
			return nil, err
		}
		result = append(result, rewritten...)
	}
	return result, nil
}

func (el *eliminator) eliminateStmt(s ast.Stmt) ([]ast.Stmt, error) {
	switch n := s.(type) {
	case *ast.AssignStmt:
		rec, isEmptyCtor, err := el.recordTypeOf(n.Value)
		if err != nil {
			return nil, err
		}
		value, err := el.eliminateExpr(n.Value)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			el.varRecordType[n.Name] = rec
		}
		if isEmptyCtor {
			el.emptyCtorVars[n.Name] = true
		}
		return []ast.Stmt{&ast.AssignStmt{Pos: n.Pos, EndPos: n.EndPos, Name: n.Name, Value: value}}, nil

	case *ast.PrintStmt:
		value, err := el.eliminateExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{&ast.PrintStmt{Pos: n.Pos, EndPos: n.EndPos, Value: value}}, nil

	case *ast.ReturnStmt:
		value, err := el.eliminateExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{&ast.ReturnStmt{Pos: n.Pos, EndPos: n.EndPos, Value: value}}, nil

	case *ast.ExprStmt:
		value, err := el.eliminateExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{&ast.ExprStmt{Pos: n.Pos, EndPos: n.EndPos, Value: value}}, nil

	case *ast.IfStmt:
		cond, err := el.eliminateExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		thenStmts, err := el.eliminateStmts(n.Then)
		if err != nil {
			return nil, err
		}
		elseStmts, err := el.eliminateStmts(n.Else)
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{&ast.IfStmt{Pos: n.Pos, EndPos: n.EndPos, Cond: cond, Then: thenStmts, Else: elseStmts}}, nil

	case *ast.WhileStmt:
		begin, ok := n.Cond.(*ast.BeginExpr)
		if !ok {
			return nil, errors.NewStructuralError("eliminate-records", n, "while condition was not wrapped by RCO")
		}
		condStmts, err := el.eliminateStmts(begin.Stmts)
		if err != nil {
			return nil, err
		}
		condResult, err := el.eliminateExpr(begin.Result)
		if err != nil {
			return nil, err
		}
		newBegin := &ast.BeginExpr{Pos: begin.Pos, EndPos: begin.EndPos, Stmts: condStmts, Result: condResult}
		body, err := el.eliminateStmts(n.Body)
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{&ast.WhileStmt{Pos: n.Pos, EndPos: n.EndPos, Cond: newBegin, Body: body}}, nil

	default:
		return nil, errors.NewStructuralError("eliminate-records", s, fmt.Sprintf("unexpected statement %T", s))
	}
}

// recordTypeOf determines the pre-elimination record type (if any) that e
// evaluates to, and whether e is the shorthand zero-argument constructor
// call (spec §9 open question): a record constructor invoked with no
// arguments even though the record declares fields.
func (el *eliminator) recordTypeOf(e ast.Expr) (rec *types.RecordType, emptyCtor bool, err error) {
	switch n := e.(type) {
	case *ast.CallExpr:
		callee, ok := n.Callee.(*ast.VarExpr)
		if !ok {
			return nil, false, nil
		}
		if r, ok := el.ctx.RecordTypes[callee.Name]; ok {
			return r, len(n.Args) == 0 && len(r.Fields) > 0, nil
		}
		if r, ok := el.ctx.FunctionReturnTypes[callee.Name].(*types.RecordType); ok {
			return r, false, nil
		}
		return nil, false, nil
	case *ast.VarExpr:
		return el.varRecordType[n.Name], false, nil
	default:
		return nil, false, nil
	}
}

func (el *eliminator) eliminateExpr(e ast.Expr) (ast.Expr, error) {
	switch n := e.(type) {
	case *ast.VarExpr, *ast.ConstExpr:
		return n, nil

	case *ast.PrimExpr:
		args := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			arg, err := el.eliminateExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &ast.PrimExpr{Pos: n.Pos, EndPos: n.EndPos, Op: n.Op, Args: args}, nil

	case *ast.CallExpr:
		callee, ok := n.Callee.(*ast.VarExpr)
		if ok {
			if rec, ok := el.ctx.RecordTypes[callee.Name]; ok {
				args := make([]ast.Expr, len(n.Args))
				for i, a := range n.Args {
					arg, err := el.eliminateExpr(a)
					if err != nil {
						return nil, err
					}
					args[i] = arg
				}
				if len(args) != 0 && len(args) != len(rec.Fields) {
					return nil, errors.NewStructuralError("eliminate-records", n, fmt.Sprintf("%s constructor arity mismatch", rec.Name))
				}
				return &ast.PrimExpr{Pos: n.Pos, EndPos: n.EndPos, Op: "tuple", Args: args}, nil
			}
		}
		args := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			arg, err := el.eliminateExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &ast.CallExpr{Pos: n.Pos, EndPos: n.EndPos, Callee: n.Callee, Args: args}, nil

	case *ast.FieldRefExpr:
		return el.eliminateFieldRef(n)

	default:
		return nil, errors.NewStructuralError("eliminate-records", e, fmt.Sprintf("unexpected expression %T", e))
	}
}

func (el *eliminator) eliminateFieldRef(n *ast.FieldRefExpr) (ast.Expr, error) {
	v, ok := n.Object.(*ast.VarExpr)
	if !ok {
		return nil, errors.NewStructuralError("eliminate-records", n, "field access object was not a bare variable after RCO")
	}
	if el.emptyCtorVars[v.Name] {
		return nil, errors.NewStructuralError("eliminate-records", n, fmt.Sprintf("field access on zero-argument record construction %q is not supported", v.Name))
	}
	rec, ok := el.varRecordType[v.Name]
	if !ok {
		return nil, errors.NewStructuralError("eliminate-records", n, fmt.Sprintf("%q has no known record type at field access", v.Name))
	}
	idx := rec.IndexOf(n.Field)
	if idx < 0 {
		return nil, errors.NewStructuralError("eliminate-records", n, fmt.Sprintf("%s has no field %q", rec.Name, n.Field))
	}
	return &ast.PrimExpr{
		Pos: n.Pos, EndPos: n.EndPos, Op: "subscript",
		Args: []ast.Expr{v, &ast.ConstExpr{Pos: n.Pos, EndPos: n.EndPos, IntVal: int64(idx)}},
	}, nil
}
