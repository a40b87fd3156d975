package morfo

import (
	"fmt"
	"io"
	"strings"

	"shanhu.io/misc/jsonutil"
)

// WriteDOT writes the dependency graph in Graphviz DOT format. Edges that
// close an include cycle are dashed.
func (g *Graph) WriteDOT(w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph morfo {\n")
	b.WriteString("  rankdir = LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for i, n := range g.nodes {
		if i == 0 {
			fmt.Fprintf(&b, "  %q [style=\"rounded,bold\"];\n", n.name)
		} else {
			fmt.Fprintf(&b, "  %q;\n", n.name)
		}
	}
	b.WriteString("\n")
	for _, n := range g.nodes {
		for _, d := range n.deps {
			dep := g.nodes[d].name
			if n.back[d] {
				fmt.Fprintf(&b, "  %q -> %q [style=dashed];\n", n.name, dep)
			} else {
				fmt.Fprintf(&b, "  %q -> %q;\n", n.name, dep)
			}
		}
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// GraphUnit is a build unit in the JSON form of a graph.
type GraphUnit struct {
	Name  string
	Deps  []string `json:",omitempty"`
	Cycle []string `json:",omitempty"` // deps that close an include cycle
}

// GraphFiles is the JSON form of a dependency graph, with the files found
// under the project root.
type GraphFiles struct {
	Root    string
	Main    string
	Units   []*GraphUnit
	Headers []string `json:",omitempty"`
	Sources []string `json:",omitempty"`
}

// Files returns the JSON form of the graph.
func (g *Graph) Files() *GraphFiles {
	gf := &GraphFiles{
		Root: g.root,
		Main: g.Main(),
	}
	for _, n := range g.nodes {
		u := &GraphUnit{Name: n.name}
		for _, d := range n.deps {
			if n.back[d] {
				u.Cycle = append(u.Cycle, g.nodes[d].name)
			} else {
				u.Deps = append(u.Deps, g.nodes[d].name)
			}
		}
		gf.Units = append(gf.Units, u)
	}
	if g.index != nil {
		gf.Headers, gf.Sources = g.index.list()
	}
	return gf
}

// SaveJSON saves the JSON form of the graph into file f.
func (g *Graph) SaveJSON(f string) error {
	return jsonutil.WriteFile(f, g.Files())
}
