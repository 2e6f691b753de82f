package xasm

import (
	"fmt"
	"strconv"
	"strings"
)

func (a Imm) String() string       { return "$" + strconv.FormatInt(a.Value, 10) }
func (a Reg) String() string       { return "%" + a.Name }
func (a ByteReg) String() string   { return "%" + a.Name }
func (a Var) String() string       { return "%%" + a.Name } // never reaches emission; homes replace every Var
func (a Deref) String() string     { return fmt.Sprintf("%d(%%%s)", a.Offset, a.Base) }
func (a GlobalVal) String() string { return a.Name + "(%rip)" }

// Print renders one instruction as a line of AT&T-syntax assembly.
func Print(i Instr) string {
	switch n := i.(type) {
	case *Movq:
		return fmt.Sprintf("\tmovq\t%s, %s", n.Src, n.Dst)
	case *Movzbq:
		return fmt.Sprintf("\tmovzbq\t%s, %s", n.Src, n.Dst)
	case *Leaq:
		return fmt.Sprintf("\tleaq\t%s, %s", n.Src, n.Dst)
	case *Addq:
		return fmt.Sprintf("\taddq\t%s, %s", n.Src, n.Dst)
	case *Subq:
		return fmt.Sprintf("\tsubq\t%s, %s", n.Src, n.Dst)
	case *Imulq:
		return fmt.Sprintf("\timulq\t%s, %s", n.Src, n.Dst)
	case *Cmpq:
		return fmt.Sprintf("\tcmpq\t%s, %s", n.Src, n.Dst)
	case *Andq:
		return fmt.Sprintf("\tandq\t%s, %s", n.Src, n.Dst)
	case *Orq:
		return fmt.Sprintf("\torq\t%s, %s", n.Src, n.Dst)
	case *Xorq:
		return fmt.Sprintf("\txorq\t%s, %s", n.Src, n.Dst)
	case *Pushq:
		return fmt.Sprintf("\tpushq\t%s", n.Arg)
	case *Popq:
		return fmt.Sprintf("\tpopq\t%s", n.Arg)
	case *Set:
		return fmt.Sprintf("\tset%s\t%s", n.CC, n.Dst)
	case *Callq:
		return fmt.Sprintf("\tcallq\t%s", n.Label)
	case *IndirectCallq:
		return fmt.Sprintf("\tcallq\t*%s", n.Arg)
	case *Jmp:
		return fmt.Sprintf("\tjmp\t%s", n.Label)
	case *JmpIf:
		return fmt.Sprintf("\tj%s\t%s", n.CC, n.Label)
	case *Retq:
		return "\tretq"
	default:
		return fmt.Sprintf("\t# unknown instruction %T", i)
	}
}

// PrintProgram renders every function's blocks in declaration order, one
// label per line followed by its instructions.
func PrintProgram(p *Program) string {
	var b strings.Builder
	b.WriteString("\t.text\n\t.globl main\n")
	for _, fn := range p.Functions {
		for _, label := range fn.BlockOrder {
			b.WriteString(label)
			b.WriteString(":\n")
			for _, instr := range fn.Blocks[label] {
				b.WriteString(Print(instr))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
