package regalloc

import (
	"sort"

	"lfunc/internal/constants"
	"lfunc/internal/xasm"
)

// assignHomes implements the color→home mapping of spec §4.6: colors are
// visited in ascending order, each claiming the next slot of the register
// pool (caller-saved first, then callee-saved) until the pool is
// exhausted, after which colors spill to successive regular-stack slots.
func assignHomes(colors map[string]int) (map[string]xasm.Arg, int) {
	distinct := map[int]bool{}
	for _, c := range colors {
		distinct[c] = true
	}
	sorted := make([]int, 0, len(distinct))
	for c := range distinct {
		sorted = append(sorted, c)
	}
	sort.Ints(sorted)

	pool := append(append([]string{}, constants.CallerSavedRegisters...), constants.CalleeSavedRegisters...)

	colorHome := make(map[int]xasm.Arg, len(sorted))
	stackSlots := 0
	for idx, c := range sorted {
		if idx < len(pool) {
			colorHome[c] = xasm.Reg{Name: pool[idx]}
			continue
		}
		stackSlots++
		colorHome[c] = xasm.Deref{Base: "rbp", Offset: -8 * stackSlots}
	}

	homes := make(map[string]xasm.Arg, len(colors))
	for v, c := range colors {
		homes[v] = colorHome[c]
	}
	return homes, stackSlots
}

// assignRootHomes gives every tuple-typed variable a slot on the root
// stack, numbered in the order each is first encountered while scanning
// the function's instructions (spec §4.6, "Tuple variables").
func assignRootHomes(fn *xasm.Function, tupleVars map[string]bool) (map[string]xasm.Arg, int) {
	homes := map[string]xasm.Arg{}
	slots := 0
	for _, label := range fn.BlockOrder {
		for _, instr := range fn.Blocks[label] {
			forEachArg(instr, func(a xasm.Arg) {
				v, ok := a.(xasm.Var)
				if !ok || !tupleVars[v.Name] {
					return
				}
				if _, seen := homes[v.Name]; seen {
					return
				}
				slots++
				homes[v.Name] = xasm.Deref{Base: "r15", Offset: -8 * slots}
			})
		}
	}
	return homes, slots
}
