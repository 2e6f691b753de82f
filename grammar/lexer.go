package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// LfunLexer tokenizes the surface syntax of SPEC_FULL.md §2: a small,
// brace-delimited, line-oriented language with no significant whitespace.
var LfunLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},

		// Keywords and identifiers (order matters: keywords are recognized
		// post-lex by the parser's literal-string matches against Ident)
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Integer literals
		{"Integer", `[0-9]+`, nil},

		// Two-character operators must be tried before their one-character
		// prefixes.
		{"Operator", `(->|==|>=|<=|[-+*=<>.:,;(){}\[\]])`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
