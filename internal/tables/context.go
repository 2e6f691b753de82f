// Package tables holds the auxiliary lookup tables that lowering passes
// populate and later passes read. spec §9 (REDESIGN FLAGS) replaces the
// original compiler's process-wide globals with this explicit context,
// threaded through every pass the way the teacher threads its
// semantic.ContextRegistry through analysis and IR building.
package tables

import (
	"strconv"

	"lfunc/internal/types"
)

// Context is re-initialized once per compilation (CompileSource call) and
// is read-only from the moment the passes that populate a given field have
// finished (spec §5). The function tables are written by both typecheck
// passes: the second refreshes them with tuple-typed parameters and return
// types.
type Context struct {
	// TupleVarTypes maps a variable to its tuple type, for every variable
	// whose value is a heap-allocated tuple. Populated by the second
	// typecheck pass (the first point at which every variable's type is
	// known and records have already become tuples) and consulted by
	// select-instructions (vector tag construction) and the register
	// allocator (routing such variables to the root stack instead of the
	// register file).
	TupleVarTypes map[string]*types.TupleType

	// RecordTypes holds every class declaration, keyed by name. Populated by
	// the first typecheck pass and consulted by record elimination (which
	// also removes the ClassDef nodes from the program).
	RecordTypes map[string]*types.RecordType

	// FunctionParams maps a function name to its parameter names in
	// declaration order.
	FunctionParams map[string][]string

	// FunctionReturnTypes maps a function name to its declared return type.
	FunctionReturnTypes map[string]types.Type

	// FunctionNames is the set of every top-level function name, used to
	// distinguish a direct Callq from an IndirectCallq during
	// select-instructions (spec §4.5).
	FunctionNames map[string]bool

	gensymCounter int
}

// NewContext creates an empty, freshly initialized Context. A correct
// compilation allocates exactly one of these (spec §5).
func NewContext() *Context {
	return &Context{
		TupleVarTypes:        make(map[string]*types.TupleType),
		RecordTypes:          make(map[string]*types.RecordType),
		FunctionParams:       make(map[string][]string),
		FunctionReturnTypes:  make(map[string]types.Type),
		FunctionNames:        make(map[string]bool),
	}
}

// Gensym constructs a variable name guaranteed unique within this
// compilation, via a monotonically incrementing counter (spec §4.2).
func (c *Context) Gensym(base string) string {
	c.gensymCounter++
	return base + "_" + strconv.Itoa(c.gensymCounter)
}
