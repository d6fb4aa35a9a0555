// Package adjacency implements the undirected province adjacency multigraph
// (spec §3.5), built once from the province-ID texture, and the BFS
// traversal it exists to support: pathfinding, AI distance tiers, and
// border-pipeline neighbor lookups.
//
// Grounded on the teacher's psmap.Map warpgate-connectivity walk
// (psmap/map.go), which drives a depth-first walk over facility adjacency
// with a generic Stack to compute which territories are "cutoff" from a
// warpgate. Graph.BFS follows the same push/pop-until-empty shape using
// internal/container.Queue instead, since distance tiers need shortest hop
// count rather than simple reachability.
package adjacency

import (
	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/internal/container"
)

// Graph is an undirected multi-map ProvinceId -> {ProvinceId} (spec §3.5).
// Edges are stored once per direction for O(1) neighbor iteration; Connect
// is symmetric so the caller never manages both directions themselves.
type Graph struct {
	neighbors map[archon.ProvinceId][]archon.ProvinceId
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{neighbors: make(map[archon.ProvinceId][]archon.ProvinceId)}
}

// Connect adds an undirected edge between a and b. Duplicate edges are
// permitted (spec §3.5 "multi-map") since two provinces can legitimately
// share more than one border segment; callers that need a simple-graph
// view should dedupe via Neighbors themselves.
func (g *Graph) Connect(a, b archon.ProvinceId) {
	g.neighbors[a] = append(g.neighbors[a], b)
	g.neighbors[b] = append(g.neighbors[b], a)
}

// Neighbors returns every province adjacent to id, possibly with
// duplicates (see Connect).
func (g *Graph) Neighbors(id archon.ProvinceId) []archon.ProvinceId {
	return g.neighbors[id]
}

// NeighborSet returns the deduplicated set of provinces adjacent to id.
func (g *Graph) NeighborSet(id archon.ProvinceId) map[archon.ProvinceId]struct{} {
	set := make(map[archon.ProvinceId]struct{}, len(g.neighbors[id]))
	for _, n := range g.neighbors[id] {
		set[n] = struct{}{}
	}
	return set
}

// AreAdjacent reports whether a and b share at least one border.
func (g *Graph) AreAdjacent(a, b archon.ProvinceId) bool {
	for _, n := range g.neighbors[a] {
		if n == b {
			return true
		}
	}
	return false
}

// BFS performs a breadth-first traversal from start, calling visit with
// each reached province and its hop distance from start (0 for start
// itself) in non-decreasing distance order. Traversal stops early if visit
// returns false.
func (g *Graph) BFS(start archon.ProvinceId, visit func(id archon.ProvinceId, distance int) bool) {
	visited := map[archon.ProvinceId]bool{start: true}
	var q container.Queue[bfsNode]
	q.Push(bfsNode{id: start, dist: 0})

	for q.Len() > 0 {
		n, _ := q.Pop()
		if !visit(n.id, n.dist) {
			return
		}
		for _, next := range g.neighbors[n.id] {
			if visited[next] {
				continue
			}
			visited[next] = true
			q.Push(bfsNode{id: next, dist: n.dist + 1})
		}
	}
}

type bfsNode struct {
	id   archon.ProvinceId
	dist int
}

// Distances runs a full BFS from start and returns every reached
// province's hop distance, used by the AI distance-tier scheduler (spec
// §4.14).
func (g *Graph) Distances(start archon.ProvinceId) map[archon.ProvinceId]int {
	out := make(map[archon.ProvinceId]int)
	g.BFS(start, func(id archon.ProvinceId, distance int) bool {
		out[id] = distance
		return true
	})
	return out
}

// ShortestPath returns the sequence of provinces from start to goal
// (inclusive of both ends), or nil if goal is unreachable from start.
func (g *Graph) ShortestPath(start, goal archon.ProvinceId) []archon.ProvinceId {
	if start == goal {
		return []archon.ProvinceId{start}
	}
	prev := map[archon.ProvinceId]archon.ProvinceId{start: start}
	found := false
	g.BFS(start, func(id archon.ProvinceId, distance int) bool {
		if id == goal {
			found = true
			return false
		}
		for _, next := range g.neighbors[id] {
			if _, seen := prev[next]; !seen {
				prev[next] = id
			}
		}
		return true
	})
	if !found {
		return nil
	}
	path := []archon.ProvinceId{goal}
	for cur := goal; cur != start; {
		parent, ok := prev[cur]
		if !ok {
			return nil
		}
		path = append(path, parent)
		cur = parent
	}
	// reverse into start->goal order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
