package ast

import (
	"bytes"
	"strings"
)

// Formatter walks the AST and writes it back out as source text.
type Formatter struct {
	output []byte
	// Indent, when set, puts every loop body on its own lines indented by
	// this string per nesting level. Empty means compact single-line output.
	Indent string
	depth  int
}

// NewFormatter creates a compact formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Output returns the formatted source.
func (f *Formatter) Output() string { return string(f.output) }

// Format formats one or more nodes and returns the accumulated output.
func (f *Formatter) Format(nodes ...Node) string {
	for _, n := range nodes {
		_ = n.Accept(f)
	}
	return string(f.output)
}

func (f *Formatter) VisitIncrNode(n *IncrNode) error             { return f.leaf(n) }
func (f *Formatter) VisitDecrNode(n *DecrNode) error             { return f.leaf(n) }
func (f *Formatter) VisitShiftLeftNode(n *ShiftLeftNode) error   { return f.leaf(n) }
func (f *Formatter) VisitShiftRightNode(n *ShiftRightNode) error { return f.leaf(n) }
func (f *Formatter) VisitOutputNode(n *OutputNode) error         { return f.leaf(n) }
func (f *Formatter) VisitInputNode(n *InputNode) error           { return f.leaf(n) }

// VisitLoopNode renders a loop and its body.
func (f *Formatter) VisitLoopNode(n *LoopNode) error {
	if f.Indent == "" {
		f.write(Symbol(n))
		f.Format(n.Body...)
		f.write(']')
		return nil
	}

	f.newline()
	f.write(Symbol(n))
	f.depth++
	if len(n.Body) > 0 {
		f.newline()
		f.Format(n.Body...)
	}
	f.depth--
	f.newline()
	f.write(']')
	f.newline()
	return nil
}

func (f *Formatter) leaf(n Node) error {
	f.write(Symbol(n))
	return nil
}

func (f *Formatter) write(b byte) {
	f.output = append(f.output, b)
}

// newline starts a fresh line indented to the current depth. A line holding
// nothing but indentation is reused.
func (f *Formatter) newline() {
	start := bytes.LastIndexByte(f.output, '\n') + 1
	if len(bytes.TrimSpace(f.output[start:])) == 0 {
		f.output = f.output[:start]
	} else {
		f.write('\n')
	}
	f.output = append(f.output, strings.Repeat(f.Indent, f.depth)...)
}

// Format renders nodes as compact canonical source with comments stripped.
func Format(nodes []Node) string {
	return NewFormatter().Format(nodes...)
}

// Dump renders nodes as an indented outline, one instruction per line.
func Dump(nodes []Node) string {
	var b strings.Builder
	dump(&b, nodes, 0)
	return b.String()
}

func dump(b *strings.Builder, nodes []Node, depth int) {
	for _, n := range nodes {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Name())
		b.WriteByte('\n')
		if loop, ok := n.(*LoopNode); ok {
			dump(b, loop.Body, depth+1)
		}
	}
}

// FormatIndented renders nodes with each loop body on its own indented lines.
func FormatIndented(nodes []Node, indent string) string {
	f := &Formatter{Indent: indent}
	return f.Format(nodes...)
}
