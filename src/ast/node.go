package ast

import "github.com/seuros/gopher-tape/src/lexer"

// Node is one parsed instruction. It participates in the visitor pattern
// used by the formatter and the evaluator.
type Node interface {
	// Accept allows a visitor to process the node.
	Accept(v Visitor) error
	// Position returns where the instruction appears in the source.
	Position() lexer.Position
	// Name returns the lowercase instruction name.
	Name() string
}

// Visitor is implemented by types that can handle specific AST nodes.
// A visitor only needs the Visit methods for the nodes it cares about.
type Visitor interface{}

// IncrNode adds one to the current cell.
type IncrNode struct {
	Pos lexer.Position
}

func (n *IncrNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitIncrNode(*IncrNode) error }); ok {
		return vv.VisitIncrNode(n)
	}
	return nil
}

func (n *IncrNode) Position() lexer.Position { return n.Pos }
func (n *IncrNode) Name() string             { return "incr" }

// DecrNode subtracts one from the current cell.
type DecrNode struct {
	Pos lexer.Position
}

func (n *DecrNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitDecrNode(*DecrNode) error }); ok {
		return vv.VisitDecrNode(n)
	}
	return nil
}

func (n *DecrNode) Position() lexer.Position { return n.Pos }
func (n *DecrNode) Name() string             { return "decr" }

// ShiftLeftNode moves the pointer one cell left.
type ShiftLeftNode struct {
	Pos lexer.Position
}

func (n *ShiftLeftNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitShiftLeftNode(*ShiftLeftNode) error }); ok {
		return vv.VisitShiftLeftNode(n)
	}
	return nil
}

func (n *ShiftLeftNode) Position() lexer.Position { return n.Pos }
func (n *ShiftLeftNode) Name() string             { return "left" }

// ShiftRightNode moves the pointer one cell right.
type ShiftRightNode struct {
	Pos lexer.Position
}

func (n *ShiftRightNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitShiftRightNode(*ShiftRightNode) error }); ok {
		return vv.VisitShiftRightNode(n)
	}
	return nil
}

func (n *ShiftRightNode) Position() lexer.Position { return n.Pos }
func (n *ShiftRightNode) Name() string             { return "right" }

// OutputNode writes the current cell as one byte.
type OutputNode struct {
	Pos lexer.Position
}

func (n *OutputNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitOutputNode(*OutputNode) error }); ok {
		return vv.VisitOutputNode(n)
	}
	return nil
}

func (n *OutputNode) Position() lexer.Position { return n.Pos }
func (n *OutputNode) Name() string             { return "output" }

// InputNode reads one byte into the current cell.
type InputNode struct {
	Pos lexer.Position
}

func (n *InputNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitInputNode(*InputNode) error }); ok {
		return vv.VisitInputNode(n)
	}
	return nil
}

func (n *InputNode) Position() lexer.Position { return n.Pos }
func (n *InputNode) Name() string             { return "input" }

// LoopNode repeats Body while the current cell is nonzero. The body is owned
// exclusively by the loop.
type LoopNode struct {
	Pos  lexer.Position
	Body []Node
}

func (n *LoopNode) Accept(v Visitor) error {
	if vv, ok := v.(interface{ VisitLoopNode(*LoopNode) error }); ok {
		return vv.VisitLoopNode(n)
	}
	return nil
}

func (n *LoopNode) Position() lexer.Position { return n.Pos }
func (n *LoopNode) Name() string             { return "loop" }

// Symbol returns the source character that produces n.
func Symbol(n Node) byte {
	switch n.(type) {
	case *IncrNode:
		return '+'
	case *DecrNode:
		return '-'
	case *ShiftLeftNode:
		return '<'
	case *ShiftRightNode:
		return '>'
	case *OutputNode:
		return '.'
	case *InputNode:
		return ','
	case *LoopNode:
		return '['
	}
	return 0
}
