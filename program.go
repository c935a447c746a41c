package convlayout

import (
	"fmt"
	"io"
	"slices"

	"github.com/gomlx/convlayout/types/layout"
)

// Program is the result of Builder.Build: a snapshot of the layouts of all nodes.
type Program struct {
	Name string

	nodes   []*Node
	layouts map[string]layout.Layout
}

func newProgram(name string, nodes []*Node) *Program {
	p := &Program{
		Name:    name,
		nodes:   slices.Clone(nodes),
		layouts: make(map[string]layout.Layout, len(nodes)),
	}
	for _, node := range nodes {
		p.layouts[node.id] = node.output.Clone()
	}
	return p
}

// Layout returns the output layout of the node with the given id.
func (p *Program) Layout(id string) (l layout.Layout, found bool) {
	l, found = p.layouts[id]
	return
}

// Nodes returns the nodes of the program, in topological order.
func (p *Program) Nodes() []*Node {
	return slices.Clone(p.nodes)
}

// Write the layouts of the program, one node per line, to the given writer.
func (p *Program) Write(writer io.Writer) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	w("graph %s\n", NormalizeIdentifier(p.Name))
	for _, node := range p.nodes {
		w("  %s %s = %s\n", node.opType.Name(), node.id, p.layouts[node.id])
	}
	return err
}
