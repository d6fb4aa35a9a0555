package adjacency

import (
	"testing"

	"github.com/forgottenhistory/archon-engine"
)

func line(n int) *Graph {
	g := New()
	for i := 1; i < n; i++ {
		g.Connect(archon.ProvinceId(i), archon.ProvinceId(i+1))
	}
	return g
}

func TestConnectIsSymmetric(t *testing.T) {
	g := New()
	g.Connect(1, 2)
	if !g.AreAdjacent(1, 2) || !g.AreAdjacent(2, 1) {
		t.Fatal("expected adjacency to hold in both directions")
	}
}

func TestDistancesOnLineGraph(t *testing.T) {
	g := line(5) // 1-2-3-4-5
	d := g.Distances(1)
	want := map[archon.ProvinceId]int{1: 0, 2: 1, 3: 2, 4: 3, 5: 4}
	for id, exp := range want {
		if d[id] != exp {
			t.Fatalf("province %d: got distance %d, want %d", id, d[id], exp)
		}
	}
}

func TestShortestPathOnLineGraph(t *testing.T) {
	g := line(5)
	path := g.ShortestPath(1, 5)
	want := []archon.ProvinceId{1, 2, 3, 4, 5}
	if len(path) != len(want) {
		t.Fatalf("got %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("got %v, want %v", path, want)
		}
	}
}

func TestShortestPathUnreachableReturnsNil(t *testing.T) {
	g := New()
	g.Connect(1, 2)
	g.Connect(3, 4)
	if path := g.ShortestPath(1, 4); path != nil {
		t.Fatalf("got %v, want nil for unreachable target", path)
	}
}

func TestShortestPathSameNode(t *testing.T) {
	g := New()
	if path := g.ShortestPath(1, 1); len(path) != 1 || path[0] != 1 {
		t.Fatalf("got %v, want [1]", path)
	}
}
