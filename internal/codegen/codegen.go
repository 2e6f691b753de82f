// Package codegen implements prelude-and-conclusion (spec §4.8) and the
// final textual emission, including the hand-written bump-allocator stub
// appended to every compiled program.
package codegen

import (
	"lfunc/internal/constants"
	"lfunc/internal/xasm"
)

var rbp = xasm.Reg{Name: "rbp"}
var rsp = xasm.Reg{Name: "rsp"}
var r15 = xasm.Reg{Name: "r15"}
var rdi = xasm.Reg{Name: "rdi"}
var rsi = xasm.Reg{Name: "rsi"}

// AddPreludeAndConclusion synthesizes the two bookend blocks spec §4.8
// describes for every function, wiring stack setup/teardown and, for
// main, the runtime's heap and root-stack initialization.
func AddPreludeAndConclusion(prog *xasm.Program) *xasm.Program {
	for _, fn := range prog.Functions {
		addPreludeAndConclusion(fn)
	}
	return prog
}

func addPreludeAndConclusion(fn *xasm.Function) {
	prelude := []xasm.Instr{
		&xasm.Pushq{Arg: rbp},
		&xasm.Movq{Src: rsp, Dst: rbp},
	}
	for _, r := range constants.CalleeSavedRegisters {
		prelude = append(prelude, &xasm.Pushq{Arg: xasm.Reg{Name: r}})
	}
	prelude = append(prelude, &xasm.Subq{Src: xasm.Imm{Value: int64(fn.RegularStackBytes)}, Dst: rsp})

	if fn.Name == "main" {
		prelude = append(prelude,
			&xasm.Movq{Src: xasm.Imm{Value: int64(constants.RootStackSize)}, Dst: rdi},
			&xasm.Movq{Src: xasm.Imm{Value: int64(constants.HeapSize)}, Dst: rsi},
			&xasm.Callq{Label: "initialize"},
			&xasm.Movq{Src: xasm.GlobalVal{Name: "rootstack_begin"}, Dst: r15},
		)
	}
	for i := 0; i < fn.RootStackSlots; i++ {
		prelude = append(prelude,
			&xasm.Movq{Src: xasm.Imm{Value: 0}, Dst: xasm.Deref{Base: "r15", Offset: 0}},
			&xasm.Addq{Src: xasm.Imm{Value: 8}, Dst: r15},
		)
	}
	prelude = append(prelude, &xasm.Jmp{Label: fn.Name + "start"})

	conclusion := []xasm.Instr{
		&xasm.Addq{Src: xasm.Imm{Value: int64(fn.RegularStackBytes)}, Dst: rsp},
	}
	if fn.RootStackSlots > 0 {
		conclusion = append(conclusion, &xasm.Subq{Src: xasm.Imm{Value: int64(8 * fn.RootStackSlots)}, Dst: r15})
	}
	for i := len(constants.CalleeSavedRegisters) - 1; i >= 0; i-- {
		conclusion = append(conclusion, &xasm.Popq{Arg: xasm.Reg{Name: constants.CalleeSavedRegisters[i]}})
	}
	conclusion = append(conclusion, &xasm.Popq{Arg: rbp}, &xasm.Retq{})

	order := make([]string, 0, len(fn.BlockOrder)+2)
	order = append(order, fn.Name)
	order = append(order, fn.BlockOrder...)
	order = append(order, fn.Name+"conclusion")

	fn.Blocks[fn.Name] = prelude
	fn.Blocks[fn.Name+"conclusion"] = conclusion
	fn.BlockOrder = order
}

// Emit renders the complete program to assembly text, with the runtime's
// bump allocator appended (spec §6: "allocate" retries via collect on
// overflow of free_ptr + size > fromspace_end).
func Emit(prog *xasm.Program) string {
	return xasm.PrintProgram(prog) + allocateStub
}

const allocateStub = `
allocate:
	movq free_ptr(%rip), %rax
	addq %rdi, %rax
	cmpq fromspace_end(%rip), %rax
	jle allocate_alloc
	movq %rdi, %rsi
	movq %r15, %rdi
	callq collect
	movq %rsi, %rdi
allocate_alloc:
	movq free_ptr(%rip), %rax
	movq %rax, %rdx
	addq %rdi, %rdx
	movq %rdx, free_ptr(%rip)
	retq
`
