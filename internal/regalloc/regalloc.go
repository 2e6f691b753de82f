// Package regalloc implements the register allocator (spec §4.6): per
// function liveness to a fixed point, interference graph construction,
// DSATUR coloring, and the split of spilled variables across the regular
// stack and the collector-managed root stack.
package regalloc

import (
	"lfunc/internal/constants"
	"lfunc/internal/errors"
	"lfunc/internal/tables"
	"lfunc/internal/xasm"
)

// Run assigns a concrete home to every Var in prog and records each
// function's stack sizes. It mutates the instructions in place and
// returns the same program for convenience.
func Run(prog *xasm.Program, ctx *tables.Context) (*xasm.Program, error) {
	for _, fn := range prog.Functions {
		if err := allocateFunction(fn, ctx); err != nil {
			return nil, err
		}
	}
	return prog, nil
}

func allocateFunction(fn *xasm.Function, ctx *tables.Context) error {
	tupleVars, regularVars := partitionVars(fn, ctx)

	liveBefore := liveness(fn, regularVars)
	interference := buildInterference(fn, liveBefore, regularVars)
	colors := colorGraph(regularVars, interference)

	homes, usedSlots := assignHomes(colors)
	rootHomes, rootSlots := assignRootHomes(fn, tupleVars)
	for k, v := range rootHomes {
		homes[k] = v
	}
	overrideParamHomes(fn, homes, tupleVars)

	if err := resolveFunction(fn, homes); err != nil {
		return err
	}

	fn.RegularStackBytes = align16(8 * usedSlots)
	fn.RootStackSlots = rootSlots
	return nil
}

func align16(n int) int {
	if n%16 == 0 {
		return n
	}
	return n + (16 - n%16)
}

// partitionVars walks every instruction of fn and splits the variables it
// mentions into tuple-typed (root-stack bound, spec §4.6 "excluded from
// vars_arg") and ordinary register-competing variables.
func partitionVars(fn *xasm.Function, ctx *tables.Context) (tuple, regular map[string]bool) {
	tuple = map[string]bool{}
	regular = map[string]bool{}
	see := func(a xasm.Arg) {
		v, ok := a.(xasm.Var)
		if !ok {
			return
		}
		if _, isTuple := ctx.TupleVarTypes[v.Name]; isTuple {
			tuple[v.Name] = true
		} else {
			regular[v.Name] = true
		}
	}
	for _, label := range fn.BlockOrder {
		for _, instr := range fn.Blocks[label] {
			forEachArg(instr, see)
		}
	}
	return tuple, regular
}

// forEachArg visits every operand position of instr.
func forEachArg(instr xasm.Instr, visit func(xasm.Arg)) {
	switch n := instr.(type) {
	case *xasm.Movq:
		visit(n.Src)
		visit(n.Dst)
	case *xasm.Movzbq:
		visit(n.Src)
		visit(n.Dst)
	case *xasm.Leaq:
		visit(n.Src)
		visit(n.Dst)
	case *xasm.Addq:
		visit(n.Src)
		visit(n.Dst)
	case *xasm.Subq:
		visit(n.Src)
		visit(n.Dst)
	case *xasm.Imulq:
		visit(n.Src)
		visit(n.Dst)
	case *xasm.Cmpq:
		visit(n.Src)
		visit(n.Dst)
	case *xasm.Andq:
		visit(n.Src)
		visit(n.Dst)
	case *xasm.Orq:
		visit(n.Src)
		visit(n.Dst)
	case *xasm.Xorq:
		visit(n.Src)
		visit(n.Dst)
	case *xasm.Pushq:
		visit(n.Arg)
	case *xasm.Popq:
		visit(n.Arg)
	case *xasm.Set:
		visit(n.Dst)
	case *xasm.IndirectCallq:
		visit(n.Arg)
	}
}

func resolveFunction(fn *xasm.Function, homes map[string]xasm.Arg) error {
	resolve := func(a xasm.Arg) (xasm.Arg, error) {
		v, ok := a.(xasm.Var)
		if !ok {
			return a, nil
		}
		home, ok := homes[v.Name]
		if !ok {
			return nil, errors.NewStructuralError("allocate-registers", nil, "variable "+v.Name+" was never assigned a home")
		}
		return home, nil
	}

	for _, label := range fn.BlockOrder {
		for _, instr := range fn.Blocks[label] {
			if err := resolveInstr(instr, resolve); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveInstr(instr xasm.Instr, resolve func(xasm.Arg) (xasm.Arg, error)) error {
	sub := func(a *xasm.Arg) error {
		r, err := resolve(*a)
		if err != nil {
			return err
		}
		*a = r
		return nil
	}
	switch n := instr.(type) {
	case *xasm.Movq:
		return firstErr(sub(&n.Src), sub(&n.Dst))
	case *xasm.Movzbq:
		return firstErr(sub(&n.Src), sub(&n.Dst))
	case *xasm.Leaq:
		return firstErr(sub(&n.Src), sub(&n.Dst))
	case *xasm.Addq:
		return firstErr(sub(&n.Src), sub(&n.Dst))
	case *xasm.Subq:
		return firstErr(sub(&n.Src), sub(&n.Dst))
	case *xasm.Imulq:
		return firstErr(sub(&n.Src), sub(&n.Dst))
	case *xasm.Cmpq:
		return firstErr(sub(&n.Src), sub(&n.Dst))
	case *xasm.Andq:
		return firstErr(sub(&n.Src), sub(&n.Dst))
	case *xasm.Orq:
		return firstErr(sub(&n.Src), sub(&n.Dst))
	case *xasm.Xorq:
		return firstErr(sub(&n.Src), sub(&n.Dst))
	case *xasm.Pushq:
		return sub(&n.Arg)
	case *xasm.Popq:
		return sub(&n.Arg)
	case *xasm.Set:
		return sub(&n.Dst)
	case *xasm.IndirectCallq:
		return sub(&n.Arg)
	default:
		return nil
	}
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// overrideParamHomes pins every non-tuple parameter's home to its System V
// argument register, matching the positional index it was declared with
// (spec §4.6, "Parameter homes"). Tuple-typed parameters keep the root
// stack home assigned by assignRootHomes: their value is a heap pointer
// copied out of the argument register once, at function entry.
func overrideParamHomes(fn *xasm.Function, homes map[string]xasm.Arg, tupleVars map[string]bool) {
	for i, p := range fn.Params {
		if tupleVars[p] {
			continue
		}
		if i >= len(constants.ArgumentRegisters) {
			continue
		}
		homes[p] = xasm.Reg{Name: constants.ArgumentRegisters[i]}
	}
}
