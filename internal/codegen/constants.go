// Package codegen provides code generation helpers and constants.
package codegen

import "fmt"

// Variable names used in generated code
const (
	InputName        = "input"
	InputLenName     = "l"
	OffsetName       = "offset"
	CharName         = "c"
	CurrentName      = "current"
	NextName         = "next"
	AliveName        = "alive"
	StartClosureName = "startClosure"
	AcceptMaskName   = "acceptMask"
)

// StateLabel returns the comment label for an automaton state.
func StateLabel(index int) string {
	return fmt.Sprintf("State %d", index)
}

// UpperFirst converts the first character of a string to uppercase.
// Only ASCII letters are changed.
func UpperFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}
