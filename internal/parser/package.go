// Package parser turns program source text into the L AST (internal/ast),
// by parsing it with the participle grammar (grammar package) and then
// lowering the resulting concrete syntax tree.
package parser

import (
	"lfunc/internal/ast"
	"lfunc/grammar"
)

// ParseSource parses source text and lowers it to an *ast.Program. filename
// is used only for position reporting.
func ParseSource(filename, source string) (*ast.Program, error) {
	prog, err := grammar.ParseSource(filename, source)
	if err != nil {
		return nil, err
	}
	return convertProgram(prog), nil
}
