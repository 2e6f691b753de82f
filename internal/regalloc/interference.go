package regalloc

import "lfunc/internal/xasm"

type graph map[string]map[string]bool

func (g graph) addNode(v string) {
	if _, ok := g[v]; !ok {
		g[v] = map[string]bool{}
	}
}

func (g graph) addEdge(a, b string) {
	if a == b {
		return
	}
	g.addNode(a)
	g.addNode(b)
	g[a][b] = true
	g[b][a] = true
}

// buildInterference adds an edge v—w whenever w is written by an
// instruction whose live_after set contains v (spec §4.6). liveBefore must
// already be the converged fixed point from liveness().
func buildInterference(fn *xasm.Function, liveBefore map[string]varSet, tracked map[string]bool) graph {
	g := graph{}
	for v := range tracked {
		g.addNode(v)
	}

	for _, label := range fn.BlockOrder {
		instrs := fn.Blocks[label]
		after := varSet{}
		for i := len(instrs) - 1; i >= 0; i-- {
			reads, writes := readsWrites(instrs[i], tracked, liveBefore)
			liveAfter := after

			for w := range writes {
				for v := range liveAfter {
					g.addEdge(v, w)
				}
			}

			before := varSet{}
			for v := range liveAfter {
				if !writes[v] {
					before[v] = true
				}
			}
			for v := range reads {
				before[v] = true
			}
			after = before
		}
	}
	return g
}
