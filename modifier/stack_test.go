package modifier

import (
	"testing"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/fixedpoint"
)

func TestCurrentValueDecaysLinearly(t *testing.T) {
	m := Modifier[string]{
		Source:    "war",
		Value:     fixedpoint.FromInt(100),
		AppliedAt: 0,
		DecayTo:   100,
	}
	tt := map[string]struct {
		now  archon.Tick
		want fixedpoint.Fixed
	}{
		"at application":   {now: 0, want: fixedpoint.FromInt(100)},
		"halfway":          {now: 50, want: fixedpoint.FromInt(50)},
		"fully decayed":    {now: 100, want: fixedpoint.Zero},
		"past decay point": {now: 200, want: fixedpoint.Zero},
	}
	for name, tc := range tt {
		t.Run(name, func(t *testing.T) {
			got := m.CurrentValue(tc.now)
			if got.Cmp(tc.want) != 0 {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestPermanentModifierNeverDecays(t *testing.T) {
	m := Modifier[string]{Source: "treaty", Value: fixedpoint.FromInt(10)}
	if got := m.CurrentValue(1_000_000); got.Cmp(fixedpoint.FromInt(10)) != 0 {
		t.Fatalf("got %s, want 10 (no decay configured)", got)
	}
}

func TestApplyRefreshesSameSource(t *testing.T) {
	var s Stack[string]
	s.Apply(Modifier[string]{Source: "rebellion", Value: fixedpoint.FromInt(5), AppliedAt: 0, DecayTo: 10})
	s.Apply(Modifier[string]{Source: "rebellion", Value: fixedpoint.FromInt(9), AppliedAt: 5, DecayTo: 15})

	if s.Len() != 1 {
		t.Fatalf("got Len()=%d, want 1 (reapplying the same source should refresh, not stack)", s.Len())
	}
	if got := s.Total(5); got.Cmp(fixedpoint.FromInt(9)) != 0 {
		t.Fatalf("got %s, want the refreshed value 9", got)
	}
}

func TestPruneRemovesExpired(t *testing.T) {
	var s Stack[string]
	s.Apply(Modifier[string]{Source: "a", Value: fixedpoint.FromInt(1), AppliedAt: 0, DecayTo: 10})
	s.Apply(Modifier[string]{Source: "b", Value: fixedpoint.FromInt(1), AppliedAt: 0, DecayTo: 1000})

	s.Prune(50)
	if s.Len() != 1 {
		t.Fatalf("got Len()=%d, want 1 after pruning the expired entry", s.Len())
	}
}

func TestTotalSumsLiveEntries(t *testing.T) {
	var s Stack[string]
	s.Apply(Modifier[string]{Source: "a", Value: fixedpoint.FromInt(10), AppliedAt: 0, DecayTo: 0})
	s.Apply(Modifier[string]{Source: "b", Value: fixedpoint.FromInt(20), AppliedAt: 0, DecayTo: 0})

	if got := s.Total(0); got.Cmp(fixedpoint.FromInt(30)) != 0 {
		t.Fatalf("got %s, want 30", got)
	}
}
