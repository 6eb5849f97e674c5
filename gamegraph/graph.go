/*
	gamegraph package implements the bipartite interaction graph at the
	center of the recommendation engine: users and games as vertices,
	synthesized interaction strengths as symmetric edge weights.
*/

package gamegraph

import "sync"

// Kind describes the two vertex families of the bipartite graph.
type Kind uint8

const (
	// KindUser marks a vertex that represents a user.
	KindUser Kind = iota

	// KindGame marks a vertex that represents a game.
	KindGame
)

// String implements the fmt.Stringer interface for the Kind type.
func (k Kind) String() string {
	if k == KindUser {
		return "user"
	}

	return "game"
}

// Vertex represents a single user or game in the interaction graph.
// Vertex data is read-only once graph construction completes; the
// accessors below may therefore be called concurrently by any number
// of readers.
type Vertex struct {
	name      string
	kind      Kind
	neighbors map[*Vertex]float64
}

// Name returns the vertex identity key.
func (v *Vertex) Name() string { return v.name }

// Kind returns the vertex kind.
func (v *Vertex) Kind() Kind { return v.kind }

// Degree returns the number of neighbors attached to the vertex.
func (v *Vertex) Degree() int { return len(v.neighbors) }

// NeighborsOfKind returns every neighbor vertex of the requested kind.
// Since edges only ever connect vertices of differing kinds, asking for
// the opposite kind returns every neighbor.
func (v *Vertex) NeighborsOfKind(kind Kind) []*Vertex {
	list := make([]*Vertex, 0, len(v.neighbors))
	for neighbor := range v.neighbors {
		if neighbor.kind == kind {
			list = append(list, neighbor)
		}
	}

	return list
}

// EdgeWeight returns the weight of the edge connecting v to other and
// whether such an edge exists.
func (v *Vertex) EdgeWeight(other *Vertex) (float64, bool) {
	weight, exists := v.neighbors[other]

	return weight, exists
}

// Graph implements an in-memory bipartite user-game graph that can be
// concurrently accessed by multiple clients. It is populated through a
// single construction pass and treated as immutable afterwards; source
// data changes are handled by building a replacement graph wholesale
// rather than patching a live one.
type Graph struct {
	mu       sync.RWMutex
	vertices map[string]*Vertex
}

// NewGraph creates a new empty interaction graph.
func NewGraph() *Graph {
	return &Graph{
		vertices: make(map[string]*Vertex),
	}
}

// AddVertex adds a new vertex to the graph if one with the same name
// does not already exist. The call is idempotent: re-adding an existing
// name is a no-op and the first kind assignment wins.
func (g *Graph) AddVertex(name string, kind Kind) {
	if name == "" {
		return
	}

	// Acquire a general lock to avoid data races while mutating graph data.
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.vertices[name]; exists {
		return
	}

	g.vertices[name] = &Vertex{
		name:      name,
		kind:      kind,
		neighbors: make(map[*Vertex]float64),
	}
}

// AddEdge sets the weight of the edge between the two named vertices,
// updating both directions atomically so the edge stays symmetric.
// The call is a no-op unless both vertices exist and their kinds differ
// (the graph is strictly bipartite). Setting an edge that already
// exists overwrites its weight: the last write wins.
func (g *Graph) AddEdge(name1, name2 string, weight float64) {
	if weight < 0 {
		weight = 0
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	v1, exists1 := g.vertices[name1]
	v2, exists2 := g.vertices[name2]
	if !exists1 || !exists2 || v1.kind == v2.kind {
		return
	}

	v1.neighbors[v2] = weight
	v2.neighbors[v1] = weight
}

// Vertex performs a vertex lookup by name.
func (g *Graph) Vertex(name string) (*Vertex, bool) {
	// Read lock allows other processes or goroutines to perform reads by
	// concurrently acquiring other read locks.
	g.mu.RLock()
	defer g.mu.RUnlock()

	v, exists := g.vertices[name]

	return v, exists
}

// VerticesOfKind returns every vertex of the requested kind.
func (g *Graph) VerticesOfKind(kind Kind) []*Vertex {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var list []*Vertex
	for _, v := range g.vertices {
		if v.kind == kind {
			list = append(list, v)
		}
	}

	return list
}

// VertexCount returns the total number of vertices in the graph.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.vertices)
}
