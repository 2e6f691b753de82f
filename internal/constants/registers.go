// Package constants exposes the System V register conventions and runtime
// sizing knobs that select-instructions, the register allocator, and
// prelude/conclusion all need to agree on (spec §6).
package constants

// ArgumentRegisters is the System V argument-passing order used both to
// move call arguments into place and to give parameters their homes.
var ArgumentRegisters = []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// CallerSavedRegisters are pushed/popped around a call to preserve
// caller-visible state, and are the allocator's first color pool (spec
// §4.6: "caller-saved first, then callee-saved"). rax and r11 are excluded:
// select-instructions uses both as fixed scratch registers (comparison
// results, tuple-pointer staging), so they are never available as a
// variable's home.
var CallerSavedRegisters = []string{"rcx", "rdx", "rsi", "rdi", "r8", "r9", "r10"}

// CalleeSavedRegisters are saved in the prelude and restored in the
// conclusion of every function, whether or not it uses them.
var CalleeSavedRegisters = []string{"rbx", "r12", "r13", "r14"}

// RootStackSize and HeapSize are passed to the runtime's initialize() call
// emitted in main's prelude.
const (
	RootStackSize = 16 * 1024
	HeapSize      = 16 * 1024
)
