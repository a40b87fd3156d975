package morfo

import (
	"shanhu.io/text/lexing"
)

// buildNode is one build unit: a source file that is compiled by one
// compiler invocation.
type buildNode struct {
	name string // path as given or relative to the project root
	file string // canonical path
	deps []int  // indices into Graph.nodes, discovery order
	pos  *lexing.Pos

	// back holds the deps that close an include cycle. They are linked,
	// but do not order the compilation.
	back map[int]bool
}

func (n *buildNode) addDep(i int, back bool) {
	for _, d := range n.deps {
		if d == i {
			return
		}
	}
	n.deps = append(n.deps, i)
	if back {
		if n.back == nil {
			n.back = make(map[int]bool)
		}
		n.back[i] = true
	}
}

// forwardDeps returns the deps that must be built before n.
func (n *buildNode) forwardDeps() []int {
	if len(n.back) == 0 {
		return n.deps
	}
	var deps []int
	for _, d := range n.deps {
		if !n.back[d] {
			deps = append(deps, d)
		}
	}
	return deps
}

// Graph is the dependency graph of the build units reachable from a main
// file. Node 0 is the main file.
type Graph struct {
	root  string // project root, canonical
	nodes []*buildNode
	index *dirIndex
}

// Main returns the path of the main file.
func (g *Graph) Main() string { return g.nodes[0].name }

// Units returns the names of all build units, main file first, in
// discovery order.
func (g *Graph) Units() []string {
	var names []string
	for _, n := range g.nodes {
		names = append(names, n.name)
	}
	return names
}

// Deps returns the names of the direct dependencies of the given unit.
func (g *Graph) Deps(unit string) []string {
	for _, n := range g.nodes {
		if n.name != unit {
			continue
		}
		var names []string
		for _, d := range n.deps {
			names = append(names, g.nodes[d].name)
		}
		return names
	}
	return nil
}

// postOrder returns the node indices in depth-first post-order from the
// root, each node once. Back edges are not followed.
func (g *Graph) postOrder() []int {
	visited := make([]bool, len(g.nodes))
	var order []int
	var visit func(i int)
	visit = func(i int) {
		visited[i] = true
		for _, d := range g.nodes[i].forwardDeps() {
			if !visited[d] {
				visit(d)
			}
		}
		order = append(order, i)
	}
	visit(0)
	return order
}

// levels groups the non-root nodes by height: a node's forward deps are
// all in earlier levels.
func (g *Graph) levels() [][]int {
	height := make([]int, len(g.nodes))
	maxHeight := 0
	for _, i := range g.postOrder() {
		h := 0
		for _, d := range g.nodes[i].forwardDeps() {
			if height[d]+1 > h {
				h = height[d] + 1
			}
		}
		height[i] = h
		if i != 0 && h > maxHeight {
			maxHeight = h
		}
	}

	levels := make([][]int, maxHeight+1)
	for _, i := range g.postOrder() {
		if i == 0 {
			continue
		}
		levels[height[i]] = append(levels[height[i]], i)
	}
	for len(levels) > 0 && len(levels[len(levels)-1]) == 0 {
		levels = levels[:len(levels)-1]
	}
	return levels
}
