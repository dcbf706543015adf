package ast

import (
	"fmt"
	"strings"
)

// String renders n fully parenthesized, e.g. "((a|b))*". Absent subtrees
// render as "∅".
func String(n Node) string {
	var sb strings.Builder
	write(&sb, n)
	return sb.String()
}

func write(sb *strings.Builder, n Node) {
	if isNil(n) {
		sb.WriteString("∅")
		return
	}
	switch n := n.(type) {
	case *Choice:
		sb.WriteByte('(')
		write(sb, n.Left)
		sb.WriteByte('|')
		write(sb, n.Right)
		sb.WriteByte(')')
	case *Concat:
		write(sb, n.Left)
		write(sb, n.Right)
	case *Star:
		writeQuantified(sb, n.Child, '*')
	case *Plus:
		writeQuantified(sb, n.Child, '+')
	case *Optional:
		writeQuantified(sb, n.Child, '?')
	case *Group:
		sb.WriteByte('(')
		write(sb, n.Child)
		sb.WriteByte(')')
	case *Leaf:
		if n.Desc == "" {
			sb.WriteString("<pred>")
			return
		}
		sb.WriteString(n.Desc)
	default:
		sb.WriteString("∅")
	}
}

// isNil reports whether n is absent, either as a nil interface or as a nil
// pointer of one of the node types.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Choice:
		return n == nil
	case *Concat:
		return n == nil
	case *Star:
		return n == nil
	case *Plus:
		return n == nil
	case *Optional:
		return n == nil
	case *Group:
		return n == nil
	case *Leaf:
		return n == nil
	}
	return false
}

func writeQuantified(sb *strings.Builder, child Node, op byte) {
	if _, ok := child.(*Leaf); ok {
		write(sb, child)
	} else {
		sb.WriteByte('(')
		write(sb, child)
		sb.WriteByte(')')
	}
	sb.WriteByte(op)
}

// quoteByte renders c for display, escaping metacharacters.
func quoteByte(c byte) string {
	switch {
	case strings.IndexByte(`\.[]()|*+?`, c) >= 0:
		return `\` + string(c)
	case c < 0x20 || c >= 0x7f:
		return fmt.Sprintf(`\x%02x`, c)
	default:
		return string(c)
	}
}
