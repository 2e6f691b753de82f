// Package typecheck implements both typechecking passes of spec §4.1: one
// before record elimination (records are still nominal) and one after
// (every record has become a tuple). Both share the same recursive
// expression/statement checker; only the record-specific branches and the
// auxiliary-table bookkeeping differ between the two calls.
package typecheck

import (
	"fmt"

	"lfunc/internal/ast"
	"lfunc/internal/errors"
	"lfunc/internal/tables"
	"lfunc/internal/types"
)

type checker struct {
	reg           *types.Registry
	ctx           *tables.Context
	functions     map[string]*types.CallableType
	recordsLive   bool // true before record elimination
	trackTuples   bool // true after record elimination
}

// CheckBeforeElimination runs the first pass (spec §4.1) over the raw
// surface AST: records are nominal, FieldRef and record construction are
// legal. It populates ctx's record and function tables for every later
// pass to read.
func CheckBeforeElimination(prog *ast.Program, ctx *tables.Context) error {
	c := &checker{reg: types.NewRegistry(), ctx: ctx, functions: map[string]*types.CallableType{}, recordsLive: true}
	return c.checkProgram(prog)
}

// CheckAfterElimination re-verifies the program once RCO and record
// elimination have run: no records remain, every former record access is a
// Prim('tuple'/'subscript'). It refreshes ctx's function tables with the
// now-tuple-ified parameter and return types, and populates
// ctx.TupleVarTypes for every tuple-typed variable (spec §3, §9).
func CheckAfterElimination(prog *ast.Program, ctx *tables.Context) error {
	c := &checker{reg: types.NewRegistry(), ctx: ctx, functions: map[string]*types.CallableType{}, recordsLive: false, trackTuples: true}
	return c.checkProgram(prog)
}

func (c *checker) checkProgram(prog *ast.Program) error {
	if c.recordsLive {
		for _, s := range prog.Stmts {
			if cd, ok := s.(*ast.ClassDef); ok {
				if err := c.declareClass(cd); err != nil {
					return err
				}
			}
		}
	}
	for _, s := range prog.Stmts {
		if fd, ok := s.(*ast.FunctionDef); ok {
			if err := c.declareFunction(fd); err != nil {
				return err
			}
		}
	}

	global := c.globalEnv()
	var mainStmts []ast.Stmt
	for _, s := range prog.Stmts {
		switch n := s.(type) {
		case *ast.ClassDef:
			continue
		case *ast.FunctionDef:
			if err := c.checkFunctionBody(n); err != nil {
				return err
			}
		default:
			mainStmts = append(mainStmts, s)
		}
	}
	// The implicit main body has no declared return type; a bare "return"
	// inside it is rejected the same way an unresolved name would be.
	return c.checkStmts(mainStmts, global, nil)
}

func (c *checker) globalEnv() map[string]types.Type {
	env := make(map[string]types.Type, len(c.functions))
	for name, fn := range c.functions {
		env[name] = fn
	}
	return env
}

func (c *checker) declareClass(n *ast.ClassDef) error {
	fields := make([]types.Field, len(n.Fields))
	for i, f := range n.Fields {
		t, err := c.resolveType(f.Type)
		if err != nil {
			return err
		}
		fields[i] = types.Field{Name: f.Name, Type: t}
	}
	rec := &types.RecordType{Name: n.Name, Fields: fields}
	c.reg.Define(rec)
	c.ctx.RecordTypes[n.Name] = rec
	return nil
}

func (c *checker) declareFunction(n *ast.FunctionDef) error {
	paramTypes := make([]types.Type, len(n.Params))
	paramNames := make([]string, len(n.Params))
	for i, p := range n.Params {
		t, err := c.resolveType(p.Type)
		if err != nil {
			return err
		}
		paramTypes[i] = t
		paramNames[i] = p.Name
	}
	retType, err := c.resolveType(n.ReturnType)
	if err != nil {
		return err
	}
	c.functions[n.Name] = &types.CallableType{Args: paramTypes, OutputType: retType}
	c.ctx.FunctionParams[n.Name] = paramNames
	c.ctx.FunctionReturnTypes[n.Name] = retType
	c.ctx.FunctionNames[n.Name] = true
	return nil
}

func (c *checker) resolveType(te ast.TypeExpr) (types.Type, error) {
	switch t := te.(type) {
	case *ast.TypeName:
		if v, ok := c.reg.Lookup(t.Name); ok {
			return v, nil
		}
		return nil, errors.NewTypeError(t, fmt.Sprintf("unknown type %q", t.Name))
	case *ast.TupleType:
		elems := make([]types.Type, len(t.Elements))
		for i, e := range t.Elements {
			et, err := c.resolveType(e)
			if err != nil {
				return nil, err
			}
			elems[i] = et
		}
		return &types.TupleType{Elements: elems}, nil
	default:
		return nil, errors.NewStructuralError("typecheck", te, fmt.Sprintf("unexpected type expression %T", te))
	}
}

func (c *checker) checkFunctionBody(n *ast.FunctionDef) error {
	fn := c.functions[n.Name]
	env := c.globalEnv()
	for i, p := range n.Params {
		env[p.Name] = fn.Args[i]
		if c.trackTuples {
			if tt, ok := fn.Args[i].(*types.TupleType); ok {
				c.ctx.TupleVarTypes[p.Name] = tt
			}
		}
	}
	return c.checkStmts(n.Body, env, fn.OutputType)
}

func (c *checker) checkStmts(stmts []ast.Stmt, env map[string]types.Type, returnType types.Type) error {
	for _, s := range stmts {
		if err := c.checkStmt(s, env, returnType); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) checkStmt(s ast.Stmt, env map[string]types.Type, returnType types.Type) error {
	switch n := s.(type) {
	case *ast.AssignStmt:
		t, err := c.checkExpr(n.Value, env)
		if err != nil {
			return err
		}
		if existing, ok := env[n.Name]; ok {
			if !types.Equals(existing, t) {
				return errors.NewTypeError(n, fmt.Sprintf("%q reassigned with type %s, previously %s", n.Name, t, existing))
			}
		} else {
			env[n.Name] = t
		}
		if c.trackTuples {
			if tt, ok := t.(*types.TupleType); ok {
				c.ctx.TupleVarTypes[n.Name] = tt
			}
		}
		return nil

	case *ast.PrintStmt:
		t, err := c.checkExpr(n.Value, env)
		if err != nil {
			return err
		}
		if !types.Equals(t, types.IntType{}) {
			return errors.NewTypeError(n, fmt.Sprintf("print expects int, got %s", t))
		}
		return nil

	case *ast.IfStmt:
		t, err := c.checkExpr(n.Cond, env)
		if err != nil {
			return err
		}
		if !types.Equals(t, types.BoolType{}) {
			return errors.NewTypeError(n.Cond, fmt.Sprintf("if condition must be bool, got %s", t))
		}
		if err := c.checkStmts(n.Then, env, returnType); err != nil {
			return err
		}
		return c.checkStmts(n.Else, env, returnType)

	case *ast.WhileStmt:
		t, err := c.checkExpr(n.Cond, env)
		if err != nil {
			return err
		}
		if !types.Equals(t, types.BoolType{}) {
			return errors.NewTypeError(n.Cond, fmt.Sprintf("while condition must be bool, got %s", t))
		}
		return c.checkStmts(n.Body, env, returnType)

	case *ast.ReturnStmt:
		t, err := c.checkExpr(n.Value, env)
		if err != nil {
			return err
		}
		if returnType == nil {
			return errors.NewTypeError(n, "return outside of a function body")
		}
		if !types.Equals(t, returnType) {
			return errors.NewTypeError(n, fmt.Sprintf("return type %s does not match declared %s", t, returnType))
		}
		return nil

	case *ast.ExprStmt:
		_, err := c.checkExpr(n.Value, env)
		return err

	case *ast.FunctionDef, *ast.ClassDef:
		return errors.NewStructuralError("typecheck", s, "nested declarations are not supported")

	default:
		return errors.NewStructuralError("typecheck", s, fmt.Sprintf("unexpected statement %T", s))
	}
}

var arithOps = map[string]bool{"add": true, "sub": true, "mult": true}
var boolOps = map[string]bool{"and": true, "or": true}
var cmpOps = map[string]bool{"gt": true, "gte": true, "lt": true, "lte": true}

func (c *checker) checkExpr(e ast.Expr, env map[string]types.Type) (types.Type, error) {
	switch n := e.(type) {
	case *ast.VarExpr:
		t, ok := env[n.Name]
		if !ok {
			return nil, errors.NewTypeError(n, fmt.Sprintf("undefined variable %q", n.Name))
		}
		return t, nil

	case *ast.ConstExpr:
		if n.IsBool {
			return types.BoolType{}, nil
		}
		return types.IntType{}, nil

	case *ast.PrimExpr:
		return c.checkPrim(n, env)

	case *ast.CallExpr:
		return c.checkCall(n, env)

	case *ast.FieldRefExpr:
		return c.checkFieldRef(n, env)

	case *ast.BeginExpr:
		for _, s := range n.Stmts {
			if err := c.checkStmt(s, env, nil); err != nil {
				return nil, err
			}
		}
		return c.checkExpr(n.Result, env)

	default:
		return nil, errors.NewStructuralError("typecheck", e, fmt.Sprintf("unexpected expression %T", e))
	}
}

func (c *checker) checkPrim(n *ast.PrimExpr, env map[string]types.Type) (types.Type, error) {
	switch {
	case arithOps[n.Op]:
		if err := c.wantArgs(n, env, 2, types.IntType{}, types.IntType{}); err != nil {
			return nil, err
		}
		return types.IntType{}, nil

	case boolOps[n.Op]:
		if err := c.wantArgs(n, env, 2, types.BoolType{}, types.BoolType{}); err != nil {
			return nil, err
		}
		return types.BoolType{}, nil

	case n.Op == "not":
		if len(n.Args) != 1 {
			return nil, errors.NewTypeError(n, "not takes exactly one argument")
		}
		t, err := c.checkExpr(n.Args[0], env)
		if err != nil {
			return nil, err
		}
		if !types.Equals(t, types.BoolType{}) {
			return nil, errors.NewTypeError(n, fmt.Sprintf("not expects bool, got %s", t))
		}
		return types.BoolType{}, nil

	case cmpOps[n.Op]:
		if err := c.wantArgs(n, env, 2, types.IntType{}, types.IntType{}); err != nil {
			return nil, err
		}
		return types.BoolType{}, nil

	case n.Op == "eq":
		if len(n.Args) != 2 {
			return nil, errors.NewTypeError(n, "eq takes exactly two arguments")
		}
		a, err := c.checkExpr(n.Args[0], env)
		if err != nil {
			return nil, err
		}
		b, err := c.checkExpr(n.Args[1], env)
		if err != nil {
			return nil, err
		}
		if !types.Equals(a, b) {
			return nil, errors.NewTypeError(n, fmt.Sprintf("eq operands have different types: %s vs %s", a, b))
		}
		return types.BoolType{}, nil

	case n.Op == "tuple":
		elems := make([]types.Type, len(n.Args))
		for i, a := range n.Args {
			t, err := c.checkExpr(a, env)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return &types.TupleType{Elements: elems}, nil

	case n.Op == "subscript":
		if len(n.Args) != 2 {
			return nil, errors.NewStructuralError("typecheck", n, "subscript takes exactly two arguments")
		}
		objType, err := c.checkExpr(n.Args[0], env)
		if err != nil {
			return nil, err
		}
		idxConst, ok := n.Args[1].(*ast.ConstExpr)
		if !ok || idxConst.IsBool {
			return nil, errors.NewStructuralError("typecheck", n, "subscript index must be an integer constant")
		}
		idx := int(idxConst.IntVal)
		switch ot := objType.(type) {
		case *types.TupleType:
			if idx < 0 || idx >= len(ot.Elements) {
				return nil, errors.NewTypeError(n, fmt.Sprintf("subscript %d out of range for %s", idx, ot))
			}
			return ot.Elements[idx], nil
		case *types.RecordType:
			if idx < 0 || idx >= len(ot.Fields) {
				return nil, errors.NewTypeError(n, fmt.Sprintf("subscript %d out of range for %s", idx, ot))
			}
			return ot.Fields[idx].Type, nil
		default:
			return nil, errors.NewTypeError(n, fmt.Sprintf("subscript requires a tuple or record, got %s", objType))
		}

	default:
		return nil, errors.NewStructuralError("typecheck", n, fmt.Sprintf("unknown primitive op %q", n.Op))
	}
}

func (c *checker) wantArgs(n *ast.PrimExpr, env map[string]types.Type, count int, want ...types.Type) error {
	if len(n.Args) != count {
		return errors.NewTypeError(n, fmt.Sprintf("%s takes exactly %d arguments", n.Op, count))
	}
	for i, a := range n.Args {
		t, err := c.checkExpr(a, env)
		if err != nil {
			return err
		}
		if !types.Equals(t, want[i]) {
			return errors.NewTypeError(a, fmt.Sprintf("%s expects %s, got %s", n.Op, want[i], t))
		}
	}
	return nil
}

func (c *checker) checkCall(n *ast.CallExpr, env map[string]types.Type) (types.Type, error) {
	callee, ok := n.Callee.(*ast.VarExpr)
	if !ok {
		return nil, errors.NewStructuralError("typecheck", n, "call target must be a bare name")
	}

	if c.recordsLive && c.reg.IsRecordName(callee.Name) {
		rec := c.reg.Record(callee.Name)
		if len(n.Args) != 0 && len(n.Args) != len(rec.Fields) {
			return nil, errors.NewTypeError(n, fmt.Sprintf("%s takes %d arguments, got %d", rec.Name, len(rec.Fields), len(n.Args)))
		}
		for i, a := range n.Args {
			t, err := c.checkExpr(a, env)
			if err != nil {
				return nil, err
			}
			if !types.Equals(t, rec.Fields[i].Type) {
				return nil, errors.NewTypeError(a, fmt.Sprintf("field %s expects %s, got %s", rec.Fields[i].Name, rec.Fields[i].Type, t))
			}
		}
		return rec, nil
	}

	fnType, ok := env[callee.Name].(*types.CallableType)
	if !ok {
		return nil, errors.NewTypeError(n, fmt.Sprintf("%q is not callable", callee.Name))
	}
	if len(n.Args) != len(fnType.Args) {
		return nil, errors.NewTypeError(n, fmt.Sprintf("%s takes %d arguments, got %d", callee.Name, len(fnType.Args), len(n.Args)))
	}
	for i, a := range n.Args {
		t, err := c.checkExpr(a, env)
		if err != nil {
			return nil, err
		}
		if !types.Equals(t, fnType.Args[i]) {
			return nil, errors.NewTypeError(a, fmt.Sprintf("argument %d to %s expects %s, got %s", i, callee.Name, fnType.Args[i], t))
		}
	}
	return fnType.OutputType, nil
}

func (c *checker) checkFieldRef(n *ast.FieldRefExpr, env map[string]types.Type) (types.Type, error) {
	objType, err := c.checkExpr(n.Object, env)
	if err != nil {
		return nil, err
	}
	rec, ok := objType.(*types.RecordType)
	if !ok {
		// spec §9 open question: the source's fallback to t_obj for an
		// unresolved record access is a bug, not a feature. Raise instead.
		return nil, errors.NewTypeError(n, fmt.Sprintf("%s is not a record, cannot access field %q", objType, n.Field))
	}
	idx := rec.IndexOf(n.Field)
	if idx < 0 {
		return nil, errors.NewTypeError(n, fmt.Sprintf("%s has no field %q", rec.Name, n.Field))
	}
	return rec.Fields[idx].Type, nil
}
