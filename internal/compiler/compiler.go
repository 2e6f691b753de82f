// Package compiler orchestrates the full lowering pipeline (spec §2):
// parse, typecheck, remove-complex-operands, eliminate-records, typecheck,
// explicate-control, select-instructions, allocate-registers,
// patch-instructions, prelude-and-conclusion, and textual emission.
package compiler

import (
	"os"

	"lfunc/internal/cir"
	"lfunc/internal/codegen"
	"lfunc/internal/errors"
	"lfunc/internal/parser"
	"lfunc/internal/patch"
	"lfunc/internal/rco"
	"lfunc/internal/records"
	"lfunc/internal/regalloc"
	selectinstr "lfunc/internal/select"
	"lfunc/internal/tables"
	"lfunc/internal/typecheck"
)

// CompileFile reads path, compiles it, and returns the generated assembly
// text. Every auxiliary table lives in a context scoped to this one call
// (spec §5: re-initialized per invocation).
func CompileFile(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIOError("read", path, err)
	}
	return CompileSource(path, string(source))
}

// CompileSource runs the pipeline over in-memory source, named filename
// for diagnostics.
func CompileSource(filename, source string) (string, error) {
	ctx := tables.NewContext()

	prog, err := parser.ParseSource(filename, source)
	if err != nil {
		return "", err
	}

	if err := typecheck.CheckBeforeElimination(prog, ctx); err != nil {
		return "", err
	}

	prog, err = rco.Run(prog, ctx)
	if err != nil {
		return "", err
	}

	prog, err = records.Eliminate(prog, ctx)
	if err != nil {
		return "", err
	}

	if err := typecheck.CheckAfterElimination(prog, ctx); err != nil {
		return "", err
	}

	cProg, err := cir.Build(prog, ctx)
	if err != nil {
		return "", err
	}

	xProg, err := selectinstr.Run(cProg, ctx)
	if err != nil {
		return "", err
	}

	xProg, err = regalloc.Run(xProg, ctx)
	if err != nil {
		return "", err
	}

	xProg = patch.Run(xProg)
	xProg = codegen.AddPreludeAndConclusion(xProg)

	return codegen.Emit(xProg), nil
}
