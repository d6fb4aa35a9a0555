package ai

import (
	"testing"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/adjacency"
)

type fakeOwners map[archon.ProvinceId]archon.CountryId

func (f fakeOwners) Owner(p archon.ProvinceId) archon.CountryId { return f[p] }

// line builds a 1..n chain graph: 1-2-3-...-n.
func line(n int) *adjacency.Graph {
	g := adjacency.New()
	for i := archon.ProvinceId(1); i < archon.ProvinceId(n); i++ {
		g.Connect(i, i+1)
	}
	return g
}

func TestTierForHopsMatchesSpecThresholds(t *testing.T) {
	cases := map[int]Tier{0: TierNear, 1: TierNear, 2: TierMedium, 4: TierMedium, 5: TierFar, 8: TierFar, 9: TierVeryFar}
	for hops, want := range cases {
		if got := tierForHops(hops); got != want {
			t.Fatalf("tierForHops(%d) = %v, want %v", hops, got, want)
		}
	}
}

func TestRecomputeAssignsNearestHopTierPerCountry(t *testing.T) {
	// Chain 1..10, human owns province 1. Country 2 owns province 2 (1 hop,
	// Near), country 3 owns province 9 (8 hops, Far).
	g := line(10)
	owners := fakeOwners{2: 2, 9: 3}
	s := NewScheduler(g, owners, nil)
	s.Recompute([]archon.ProvinceId{1})

	if got := s.TierOf(2); got != TierNear {
		t.Fatalf("got %v, want TierNear", got)
	}
	if got := s.TierOf(3); got != TierFar {
		t.Fatalf("got %v, want TierFar", got)
	}
}

func TestTierOfDefaultsToVeryFarForUnreachedCountry(t *testing.T) {
	s := NewScheduler(adjacency.New(), fakeOwners{}, nil)
	if got := s.TierOf(99); got != TierVeryFar {
		t.Fatalf("got %v, want TierVeryFar for an unreached country", got)
	}
}

func TestShouldThinkOnMonthCadence(t *testing.T) {
	if !TierNear.ShouldThinkOnMonth(1) {
		t.Fatal("expected Near to think every month")
	}
	if TierMedium.ShouldThinkOnMonth(1) {
		t.Fatal("expected Medium to skip a non-multiple-of-3 month")
	}
	if !TierMedium.ShouldThinkOnMonth(3) {
		t.Fatal("expected Medium to think on month 3")
	}
	if TierVeryFar.ShouldThinkOnMonth(12) {
		t.Fatal("expected VeryFar never to think on a monthly tick")
	}
	if !TierVeryFar.ShouldThinkOnYear() {
		t.Fatal("expected VeryFar to think on the yearly tick")
	}
}
