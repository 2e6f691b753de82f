package regalloc

import "lfunc/internal/xasm"

type varSet map[string]bool

func (s varSet) clone() varSet {
	c := make(varSet, len(s))
	for k := range s {
		c[k] = true
	}
	return c
}

func (s varSet) equal(other varSet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other[k] {
			return false
		}
	}
	return true
}

func varOf(a xasm.Arg, tracked map[string]bool) (string, bool) {
	v, ok := a.(xasm.Var)
	if !ok || !tracked[v.Name] {
		return "", false
	}
	return v.Name, true
}

// readsWrites implements the reads(i)/writes(i) table of spec §4.6, for
// variables in the tracked set only. Jmp/JmpIf read whatever is
// live_before their target block, looked up via liveBefore.
func readsWrites(instr xasm.Instr, tracked map[string]bool, liveBefore map[string]varSet) (reads, writes varSet) {
	reads, writes = varSet{}, varSet{}
	addRead := func(a xasm.Arg) {
		if v, ok := varOf(a, tracked); ok {
			reads[v] = true
		}
	}
	addWrite := func(a xasm.Arg) {
		if v, ok := varOf(a, tracked); ok {
			writes[v] = true
		}
	}

	switch n := instr.(type) {
	case *xasm.Movq:
		addRead(n.Src)
		addWrite(n.Dst)
	case *xasm.Movzbq:
		addRead(n.Src)
		addWrite(n.Dst)
	case *xasm.Leaq:
		addWrite(n.Dst)
	case *xasm.Addq:
		addRead(n.Src)
		addRead(n.Dst)
		addWrite(n.Dst)
	case *xasm.Subq:
		addRead(n.Src)
		addRead(n.Dst)
		addWrite(n.Dst)
	case *xasm.Imulq:
		addRead(n.Src)
		addRead(n.Dst)
		addWrite(n.Dst)
	case *xasm.Andq:
		addRead(n.Src)
		addRead(n.Dst)
		addWrite(n.Dst)
	case *xasm.Orq:
		addRead(n.Src)
		addRead(n.Dst)
		addWrite(n.Dst)
	case *xasm.Xorq:
		addRead(n.Src)
		addRead(n.Dst)
		addWrite(n.Dst)
	case *xasm.Cmpq:
		addRead(n.Src)
		addRead(n.Dst)
	case *xasm.Pushq:
		addRead(n.Arg)
	case *xasm.Popq:
		addWrite(n.Arg)
	case *xasm.Set:
		addWrite(n.Dst)
	case *xasm.IndirectCallq:
		addRead(n.Arg)
	case *xasm.Jmp:
		for v := range liveBefore[n.Label] {
			reads[v] = true
		}
	case *xasm.JmpIf:
		for v := range liveBefore[n.Label] {
			reads[v] = true
		}
	case *xasm.Callq, *xasm.Retq:
		// no variable reads or writes; only fixed registers.
	}
	return reads, writes
}

// blockLiveBefore runs one backward scan over a block's instructions given
// the live-before sets of every label (used to resolve Jmp/JmpIf reads),
// returning the block's own live_before set.
func blockLiveBefore(instrs []xasm.Instr, tracked map[string]bool, liveBefore map[string]varSet) varSet {
	after := varSet{}
	for i := len(instrs) - 1; i >= 0; i-- {
		reads, writes := readsWrites(instrs[i], tracked, liveBefore)
		before := varSet{}
		for v := range after {
			if !writes[v] {
				before[v] = true
			}
		}
		for v := range reads {
			before[v] = true
		}
		after = before
	}
	return after
}

// liveness runs the Kildall-style fixed point of spec §4.6 across fn's
// blocks plus the pseudo conclusion label, returning the converged
// live_before set for every label.
func liveness(fn *xasm.Function, tracked map[string]bool) map[string]varSet {
	liveBefore := map[string]varSet{fn.Name + "conclusion": {}}
	for _, label := range fn.BlockOrder {
		liveBefore[label] = varSet{}
	}

	for {
		changed := false
		for _, label := range fn.BlockOrder {
			next := blockLiveBefore(fn.Blocks[label], tracked, liveBefore)
			if !next.equal(liveBefore[label]) {
				liveBefore[label] = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return liveBefore
}
