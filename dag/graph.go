package dag

import (
	"fmt"
	"slices"
)

// Graph declares nodes and edges (dependency relationships). Node order is
// significant: levels list their members in declaration order.
type Graph struct {
	Nodes []string
	Edges []Edge
}

// Edge represents a dependency: To depends on From.
type Edge struct {
	From string
	To   string
}

// AddNode appends a node.
func (g *Graph) AddNode(name string) {
	g.Nodes = append(g.Nodes, name)
}

// AddEdge records that to depends on from.
func (g *Graph) AddEdge(from, to string) {
	g.Edges = append(g.Edges, Edge{From: from, To: to})
}

// BuildLevels groups nodes by dependency level. Level 0 holds the nodes
// without dependencies; every node appears in the level after its deepest
// dependency. It fails on duplicate nodes, edges to unknown nodes, and cycles.
func BuildLevels(g *Graph) ([][]string, error) {
	index := make(map[string]int, len(g.Nodes))
	for i, name := range g.Nodes {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("dag: duplicate node %q", name)
		}
		index[name] = i
	}

	inDegree := make([]int, len(g.Nodes))
	dependents := make([][]int, len(g.Nodes))
	for _, e := range g.Edges {
		from, ok := index[e.From]
		if !ok {
			return nil, fmt.Errorf("dag: edge references unknown node %q", e.From)
		}
		to, ok := index[e.To]
		if !ok {
			return nil, fmt.Errorf("dag: edge references unknown node %q", e.To)
		}
		inDegree[to]++
		dependents[from] = append(dependents[from], to)
	}

	var queue []int
	for i, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, i)
		}
	}

	var levels [][]string
	visited := 0
	for len(queue) > 0 {
		level := make([]string, len(queue))
		for i, n := range queue {
			level[i] = g.Nodes[n]
		}
		levels = append(levels, level)
		visited += len(queue)

		var next []int
		for _, n := range queue {
			for _, dep := range dependents[n] {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		slices.Sort(next)
		queue = next
	}

	if visited != len(g.Nodes) {
		return nil, fmt.Errorf("dag: cycle detected, processed %d of %d nodes", visited, len(g.Nodes))
	}
	return levels, nil
}

// IsChain reports whether levels describe a single linear chain: one node
// per level.
func IsChain(levels [][]string) bool {
	for _, l := range levels {
		if len(l) != 1 {
			return false
		}
	}
	return true
}
