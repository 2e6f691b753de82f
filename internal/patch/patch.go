// Package patch implements patch-instructions (spec §4.7): once the
// register allocator has substituted homes for every Var, some
// instructions have operand shapes x86 forbids and must be split in two.
package patch

import "lfunc/internal/xasm"

// Run rewrites every function's instructions in place and returns prog.
func Run(prog *xasm.Program) *xasm.Program {
	for _, fn := range prog.Functions {
		for _, label := range fn.BlockOrder {
			fn.Blocks[label] = patchBlock(fn.Blocks[label])
		}
	}
	return prog
}

func isMem(a xasm.Arg) bool {
	_, ok := a.(xasm.Deref)
	return ok
}

func isImm(a xasm.Arg) bool {
	_, ok := a.(xasm.Imm)
	return ok
}

var scratch = xasm.Reg{Name: "rax"}

func patchBlock(instrs []xasm.Instr) []xasm.Instr {
	var out []xasm.Instr
	for _, instr := range instrs {
		out = append(out, patchInstr(instr)...)
	}
	return out
}

// patchInstr implements the rewrite rules of spec §4.7 (an immediate Cmpq
// destination; two memory operands in Movq/Movzbq/Addq), plus the shapes
// that spilled homes can give Cmpq, Movzbq and Leaq: two memory operands in
// Cmpq, and a memory destination for Movzbq or Leaq. Each goes through rax.
// Every other shape select-instructions can produce is already legal x86
// and passes through unchanged.
func patchInstr(instr xasm.Instr) []xasm.Instr {
	switch n := instr.(type) {
	case *xasm.Cmpq:
		if isImm(n.Dst) {
			return []xasm.Instr{
				&xasm.Movq{Src: n.Dst, Dst: scratch},
				&xasm.Cmpq{Src: n.Src, Dst: scratch},
			}
		}
		if isMem(n.Src) && isMem(n.Dst) {
			return []xasm.Instr{
				&xasm.Movq{Src: n.Src, Dst: scratch},
				&xasm.Cmpq{Src: scratch, Dst: n.Dst},
			}
		}
	case *xasm.Leaq:
		if isMem(n.Dst) {
			return []xasm.Instr{
				&xasm.Leaq{Src: n.Src, Dst: scratch},
				&xasm.Movq{Src: scratch, Dst: n.Dst},
			}
		}
	case *xasm.Movq:
		if isMem(n.Src) && isMem(n.Dst) {
			return []xasm.Instr{
				&xasm.Movq{Src: n.Src, Dst: scratch},
				&xasm.Movq{Src: scratch, Dst: n.Dst},
			}
		}
	case *xasm.Movzbq:
		if isMem(n.Dst) {
			return []xasm.Instr{
				&xasm.Movzbq{Src: n.Src, Dst: scratch},
				&xasm.Movq{Src: scratch, Dst: n.Dst},
			}
		}
	case *xasm.Addq:
		if isMem(n.Src) && isMem(n.Dst) {
			return []xasm.Instr{
				&xasm.Movq{Src: n.Src, Dst: scratch},
				&xasm.Addq{Src: scratch, Dst: n.Dst},
			}
		}
	}
	return []xasm.Instr{instr}
}
