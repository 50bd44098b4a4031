package ast

import (
	"gopkg.in/yaml.v3"
)

// Program is a parsed source file: the top-level instruction sequence.
type Program struct {
	// Name is the source name the program was parsed from, if any.
	Name string
	Body []Node
}

// NewProgram wraps a parsed top-level sequence.
func NewProgram(name string, body []Node) *Program {
	if body == nil {
		body = []Node{}
	}
	return &Program{Name: name, Body: body}
}

// Len returns the number of instructions in the program, loop nodes included.
func (p *Program) Len() int {
	return countNodes(p.Body)
}

// Depth returns the deepest loop nesting level; zero means no loops.
func (p *Program) Depth() int {
	return maxDepth(p.Body)
}

// Loops returns the number of loop nodes in the program.
func (p *Program) Loops() int {
	total := 0
	Walk(p.Body, func(n Node) {
		if _, ok := n.(*LoopNode); ok {
			total++
		}
	})
	return total
}

// String renders the program as canonical source.
func (p *Program) String() string {
	return Format(p.Body)
}

// MarshalYAML renders the instruction tree: leaves as names, loops as a
// single-key mapping holding their body.
func (p *Program) MarshalYAML() (interface{}, error) {
	return yamlSequence(p.Body), nil
}

// YAML encodes the instruction tree as a YAML document.
func (p *Program) YAML() ([]byte, error) {
	return yaml.Marshal(p)
}

func yamlSequence(nodes []Node) []interface{} {
	seq := make([]interface{}, 0, len(nodes))
	for _, n := range nodes {
		if loop, ok := n.(*LoopNode); ok {
			seq = append(seq, map[string]interface{}{"loop": yamlSequence(loop.Body)})
			continue
		}
		seq = append(seq, n.Name())
	}
	return seq
}

// Walk calls fn for every node in depth-first, source order.
func Walk(nodes []Node, fn func(Node)) {
	for _, n := range nodes {
		fn(n)
		if loop, ok := n.(*LoopNode); ok {
			Walk(loop.Body, fn)
		}
	}
}

func countNodes(nodes []Node) int {
	total := 0
	Walk(nodes, func(Node) { total++ })
	return total
}

func maxDepth(nodes []Node) int {
	deepest := 0
	for _, n := range nodes {
		if loop, ok := n.(*LoopNode); ok {
			if d := 1 + maxDepth(loop.Body); d > deepest {
				deepest = d
			}
		}
	}
	return deepest
}
