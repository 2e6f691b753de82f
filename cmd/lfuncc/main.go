// SPDX-License-Identifier: Apache-2.0
package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"lfunc/internal/ast"
	"lfunc/internal/compiler"
	"lfunc/internal/errors"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: lfuncc <file.lf>")
		os.Exit(1)
	}

	path := os.Args[1]

	asm, err := compiler.CompileFile(path)
	if err != nil {
		reportError(path, err)
		os.Exit(1)
	}

	if err := os.WriteFile(path+".s", []byte(asm), 0o644); err != nil {
		color.Red("failed to write %s.s: %v", path, err)
		os.Exit(1)
	}

	color.Green("✅ Successfully compiled %s", path)
}

// reportError renders the offending error with the Rust-style diagnostic
// reporter for errors that carry a source position, and prints a bare
// message otherwise (spec §7: errors propagate to the CLI, which reports
// them and exits non-zero; no partial output file is written).
func reportError(path string, err error) {
	source, readErr := os.ReadFile(path)
	var reporter *errors.ErrorReporter
	if readErr == nil {
		reporter = errors.NewErrorReporter(path, string(source))
	}

	switch e := err.(type) {
	case *errors.TypeError:
		printCompilerError(reporter, e.CompilerError())
	case *errors.StructuralError:
		printCompilerError(reporter, e.CompilerError())
		fmt.Fprintln(os.Stderr, "this is a compiler bug, not a program error")
	case *errors.IOError:
		color.Red("%s", e.Error())
	default:
		var pe participle.Error
		if stderrors.As(err, &pe) {
			pos := pe.Position()
			printCompilerError(reporter, errors.CompilerError{
				Level:    errors.Error,
				Code:     "E0100",
				Message:  pe.Message(),
				Position: ast.Position{Filename: pos.Filename, Offset: pos.Offset, Line: pos.Line, Column: pos.Column},
				Length:   1,
			})
			return
		}
		color.Red("error: %s", err)
	}
}

func printCompilerError(reporter *errors.ErrorReporter, ce errors.CompilerError) {
	if reporter == nil {
		color.Red("%s: %s", ce.Code, ce.Message)
		return
	}
	fmt.Print(reporter.FormatError(ce))
}
