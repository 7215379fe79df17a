// Package layergraph builds and serves the typed, directed multigraph
// backing a single knowledge layer.
package layergraph

import (
	"sort"

	"github.com/soundprediction/strata/pkg/types"
)

// Graph is a directed multigraph over typed nodes. It is written only
// during a build pass; once handed to a snapshot it is read-only.
type Graph struct {
	layer types.LayerID

	nodes map[string]*types.Node
	// order preserves node insertion order so iteration is deterministic.
	order []string

	edges    []*types.Edge
	outgoing map[string][]*types.Edge
	incoming map[string][]*types.Edge
}

// NewGraph creates an empty graph for the given layer.
func NewGraph(layer types.LayerID) *Graph {
	return &Graph{
		layer:    layer,
		nodes:    make(map[string]*types.Node),
		outgoing: make(map[string][]*types.Edge),
		incoming: make(map[string][]*types.Edge),
	}
}

// Layer returns the layer this graph belongs to.
func (g *Graph) Layer() types.LayerID { return g.layer }

// AddNode inserts a node. The first node with a given id wins; later
// duplicates are ignored so rebuilds from the same records stay
// deterministic. Returns true if the node was inserted.
func (g *Graph) AddNode(n *types.Node) bool {
	if _, exists := g.nodes[n.ID]; exists {
		return false
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	return true
}

// AddEdge inserts an edge if and only if both endpoints already exist
// in this graph. A dangling edge is dropped and reported as false,
// never an error.
func (g *Graph) AddEdge(e *types.Edge) bool {
	if _, ok := g.nodes[e.Source]; !ok {
		return false
	}
	if _, ok := g.nodes[e.Target]; !ok {
		return false
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.Source] = append(g.outgoing[e.Source], e)
	g.incoming[e.Target] = append(g.incoming[e.Target], e)
	return true
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *types.Node { return g.nodes[id] }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// NodeIDs returns all node ids in insertion order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*types.Node {
	nodes := make([]*types.Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Neighbors returns the distinct ids of nodes directly adjacent to id,
// in either direction, sorted lexicographically.
func (g *Graph) Neighbors(id string) []string {
	seen := make(map[string]struct{})
	for _, e := range g.outgoing[id] {
		if e.Target != id {
			seen[e.Target] = struct{}{}
		}
	}
	for _, e := range g.incoming[id] {
		if e.Source != id {
			seen[e.Source] = struct{}{}
		}
	}
	neighbors := make([]string, 0, len(seen))
	for n := range seen {
		neighbors = append(neighbors, n)
	}
	sort.Strings(neighbors)
	return neighbors
}

// DegreeCentrality returns the fraction of all other nodes directly
// adjacent to id. Zero for graphs with fewer than two nodes.
func (g *Graph) DegreeCentrality(id string) float64 {
	n := len(g.nodes)
	if n < 2 {
		return 0
	}
	return float64(len(g.Neighbors(id))) / float64(n-1)
}

// ConnectionTypes returns the distinct edge-type labels on edges
// touching id, sorted lexicographically.
func (g *Graph) ConnectionTypes(id string) []string {
	seen := make(map[string]struct{})
	for _, e := range g.outgoing[id] {
		seen[string(e.Type)] = struct{}{}
	}
	for _, e := range g.incoming[id] {
		seen[string(e.Type)] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// NodesByType counts nodes per node type.
func (g *Graph) NodesByType() map[types.NodeType]int {
	counts := make(map[types.NodeType]int)
	for _, n := range g.nodes {
		counts[n.Type]++
	}
	return counts
}

// EdgesByType counts edges per edge type.
func (g *Graph) EdgesByType() map[types.EdgeType]int {
	counts := make(map[types.EdgeType]int)
	for _, e := range g.edges {
		counts[e.Type]++
	}
	return counts
}
