// Package selectinstr implements select-instructions (spec §4.5): lowering each
// C statement into a short pseudo-x86 sequence, including the heap
// allocation sequence and vector tag construction for tuple construction.
package selectinstr

import (
	"fmt"

	"lfunc/internal/cir"
	"lfunc/internal/constants"
	"lfunc/internal/errors"
	"lfunc/internal/tables"
	"lfunc/internal/types"
	"lfunc/internal/xasm"
)

// Run lowers a C-IR program to pseudo-x86 (spec §4.5).
func Run(prog *cir.Program, ctx *tables.Context) (*xasm.Program, error) {
	out := &xasm.Program{}
	for _, fn := range prog.Functions {
		xfn, err := selectFunction(fn, ctx)
		if err != nil {
			return nil, err
		}
		out.Functions = append(out.Functions, xfn)
	}
	return out, nil
}

func selectFunction(fn *cir.FunctionDef, ctx *tables.Context) (*xasm.Function, error) {
	xfn := &xasm.Function{Name: fn.Name, Blocks: make(map[string][]xasm.Instr), Params: fn.Params}

	entry := fn.Name + "start"
	for _, label := range fn.BlockOrder {
		block := fn.Blocks[label]
		var instrs []xasm.Instr

		if label == entry {
			for i, p := range fn.Params {
				if i >= len(constants.ArgumentRegisters) {
					return nil, errors.NewStructuralError("select-instructions", nil, fmt.Sprintf("%s takes more than %d parameters", fn.Name, len(constants.ArgumentRegisters)))
				}
				instrs = append(instrs, &xasm.Movq{Src: xasm.Reg{Name: constants.ArgumentRegisters[i]}, Dst: xasm.Var{Name: p}})
			}
		}

		for _, s := range block.Stmts {
			next, err := selectStmt(s, ctx)
			if err != nil {
				return nil, err
			}
			instrs = append(instrs, next...)
		}

		tail, err := selectTail(block.Tail, fn.Name)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, tail...)

		xfn.Append(label, instrs...)
	}
	return xfn, nil
}

func selectAtom(a cir.Atom) xasm.Arg {
	switch v := a.(type) {
	case *cir.Var:
		return xasm.Var{Name: v.Name}
	case *cir.Const:
		if v.IsBool {
			if v.BoolVal {
				return xasm.Imm{Value: 1}
			}
			return xasm.Imm{Value: 0}
		}
		return xasm.Imm{Value: v.IntVal}
	default:
		return xasm.Imm{Value: 0}
	}
}

func selectStmt(s cir.Stmt, ctx *tables.Context) ([]xasm.Instr, error) {
	switch n := s.(type) {
	case *cir.Assign:
		return selectAssign(n.Name, n.Expr, ctx)
	case *cir.Print:
		return []xasm.Instr{
			&xasm.Movq{Src: selectAtom(n.Value), Dst: xasm.Reg{Name: "rdi"}},
			&xasm.Callq{Label: "print_int"},
		}, nil
	default:
		return nil, errors.NewStructuralError("select-instructions", nil, fmt.Sprintf("unexpected statement %T", s))
	}
}

func selectTail(t cir.Tail, fname string) ([]xasm.Instr, error) {
	switch n := t.(type) {
	case *cir.Goto:
		return []xasm.Instr{&xasm.Jmp{Label: n.Label}}, nil
	case *cir.If:
		return []xasm.Instr{
			&xasm.Cmpq{Src: selectAtom(n.Cond), Dst: xasm.Imm{Value: 1}},
			&xasm.JmpIf{CC: "e", Label: n.Then.Label},
			&xasm.Jmp{Label: n.Else.Label},
		}, nil
	case *cir.Return:
		return []xasm.Instr{
			&xasm.Movq{Src: selectAtom(n.Value), Dst: xasm.Reg{Name: "rax"}},
			&xasm.Jmp{Label: fname + "conclusion"},
		}, nil
	default:
		return nil, errors.NewStructuralError("select-instructions", nil, fmt.Sprintf("unexpected terminator %T", t))
	}
}

func selectAssign(x string, e cir.Expr, ctx *tables.Context) ([]xasm.Instr, error) {
	switch expr := e.(type) {
	case *cir.Var:
		if ctx.FunctionNames[expr.Name] {
			return []xasm.Instr{&xasm.Leaq{Src: xasm.GlobalVal{Name: expr.Name}, Dst: xasm.Var{Name: x}}}, nil
		}
		return []xasm.Instr{&xasm.Movq{Src: xasm.Var{Name: expr.Name}, Dst: xasm.Var{Name: x}}}, nil
	case *cir.Const:
		return []xasm.Instr{&xasm.Movq{Src: selectAtom(expr), Dst: xasm.Var{Name: x}}}, nil
	case *cir.Call:
		return selectCall(x, expr, ctx)
	case *cir.Prim:
		return selectPrim(x, expr, ctx)
	default:
		return nil, errors.NewStructuralError("select-instructions", nil, fmt.Sprintf("unexpected assigned expression %T", e))
	}
}

func selectCall(x string, call *cir.Call, ctx *tables.Context) ([]xasm.Instr, error) {
	if len(call.Args) > len(constants.ArgumentRegisters) {
		return nil, errors.NewStructuralError("select-instructions", nil, "call has more arguments than argument registers")
	}

	var instrs []xasm.Instr
	for _, r := range constants.CallerSavedRegisters {
		instrs = append(instrs, &xasm.Pushq{Arg: xasm.Reg{Name: r}})
	}
	for i, a := range call.Args {
		instrs = append(instrs, &xasm.Movq{Src: selectAtom(a), Dst: xasm.Reg{Name: constants.ArgumentRegisters[i]}})
	}
	if v, ok := call.Fn.(*cir.Var); ok && ctx.FunctionNames[v.Name] {
		instrs = append(instrs, &xasm.Callq{Label: v.Name})
	} else {
		instrs = append(instrs, &xasm.IndirectCallq{Arg: selectAtom(call.Fn)})
	}
	for i := len(constants.CallerSavedRegisters) - 1; i >= 0; i-- {
		instrs = append(instrs, &xasm.Popq{Arg: xasm.Reg{Name: constants.CallerSavedRegisters[i]}})
	}
	instrs = append(instrs, &xasm.Movq{Src: xasm.Reg{Name: "rax"}, Dst: xasm.Var{Name: x}})
	return instrs, nil
}

var binOps = map[string]func(src, dst xasm.Arg) xasm.Instr{
	"add":  func(s, d xasm.Arg) xasm.Instr { return &xasm.Addq{Src: s, Dst: d} },
	"sub":  func(s, d xasm.Arg) xasm.Instr { return &xasm.Subq{Src: s, Dst: d} },
	"mult": func(s, d xasm.Arg) xasm.Instr { return &xasm.Imulq{Src: s, Dst: d} },
	"and":  func(s, d xasm.Arg) xasm.Instr { return &xasm.Andq{Src: s, Dst: d} },
	"or":   func(s, d xasm.Arg) xasm.Instr { return &xasm.Orq{Src: s, Dst: d} },
}

var condCodes = map[string]string{"eq": "e", "gt": "g", "gte": "ge", "lt": "l", "lte": "le"}

func selectPrim(x string, p *cir.Prim, ctx *tables.Context) ([]xasm.Instr, error) {
	if op, ok := binOps[p.Op]; ok {
		a, b := selectAtom(p.Args[0]), selectAtom(p.Args[1])
		return []xasm.Instr{
			&xasm.Movq{Src: a, Dst: xasm.Reg{Name: "rax"}},
			op(b, xasm.Reg{Name: "rax"}),
			&xasm.Movq{Src: xasm.Reg{Name: "rax"}, Dst: xasm.Var{Name: x}},
		}, nil
	}
	if cc, ok := condCodes[p.Op]; ok {
		a, b := selectAtom(p.Args[0]), selectAtom(p.Args[1])
		return []xasm.Instr{
			&xasm.Cmpq{Src: b, Dst: a},
			&xasm.Set{CC: cc, Dst: xasm.ByteReg{Name: "al"}},
			&xasm.Movzbq{Src: xasm.ByteReg{Name: "al"}, Dst: xasm.Var{Name: x}},
		}, nil
	}

	switch p.Op {
	case "not":
		a := selectAtom(p.Args[0])
		return []xasm.Instr{
			&xasm.Movq{Src: a, Dst: xasm.Var{Name: x}},
			&xasm.Xorq{Src: xasm.Imm{Value: 1}, Dst: xasm.Var{Name: x}},
		}, nil

	case "tuple":
		return selectTuple(x, p.Args, ctx)

	case "subscript":
		idx, ok := p.Args[1].(*cir.Const)
		if !ok || idx.IsBool {
			return nil, errors.NewStructuralError("select-instructions", nil, "subscript index must be an integer constant")
		}
		a := selectAtom(p.Args[0])
		return []xasm.Instr{
			&xasm.Movq{Src: a, Dst: xasm.Reg{Name: "r11"}},
			&xasm.Movq{Src: xasm.Deref{Base: "r11", Offset: 8 * (int(idx.IntVal) + 1)}, Dst: xasm.Var{Name: x}},
		}, nil

	default:
		return nil, errors.NewStructuralError("select-instructions", nil, fmt.Sprintf("unknown primitive op %q", p.Op))
	}
}

func selectTuple(x string, args []cir.Atom, ctx *tables.Context) ([]xasm.Instr, error) {
	tt, ok := ctx.TupleVarTypes[x]
	if !ok {
		return nil, errors.NewStructuralError("select-instructions", nil, fmt.Sprintf("%q has no recorded tuple type", x))
	}
	tag := vectorTag(tt)

	n := len(args)
	instrs := []xasm.Instr{
		&xasm.Movq{Src: xasm.Imm{Value: int64(8 * (1 + n))}, Dst: xasm.Reg{Name: "rdi"}},
		&xasm.Callq{Label: "allocate"},
		&xasm.Movq{Src: xasm.Reg{Name: "rax"}, Dst: xasm.Reg{Name: "r11"}},
		&xasm.Movq{Src: xasm.Imm{Value: tag}, Dst: xasm.Deref{Base: "r11", Offset: 0}},
	}
	for i, a := range args {
		instrs = append(instrs, &xasm.Movq{Src: selectAtom(a), Dst: xasm.Deref{Base: "r11", Offset: 8 * (i + 1)}})
	}
	instrs = append(instrs, &xasm.Movq{Src: xasm.Reg{Name: "r11"}, Dst: xasm.Var{Name: x}})
	return instrs, nil
}

// vectorTag encodes the 64-bit tag header of spec §4.5: bit 0 is the
// forwarding bit (1 for live), bits 1..6 the field count, bits 7.. the
// per-field pointer mask.
func vectorTag(tt *types.TupleType) int64 {
	var tag int64 = 1
	tag |= int64(len(tt.Elements)) << 1
	for i, e := range tt.Elements {
		if types.IsTuple(e) {
			tag |= 1 << uint(7+i)
		}
	}
	return tag
}
