// Package modifier implements a generic decaying-value stack, generalizing
// the diplomacy opinion-modifier formula (spec §3.9) to any keyed source of
// timed effects: trade-route boosts, unrest penalties, siege attrition, and
// so on, wherever SPEC_FULL.md calls for "a temporary effect that fades
// linearly back to zero over N ticks".
//
// Grounded on the teacher's event-driven WorldState recomputation pattern
// (state/state.go): derived totals are never stored incrementally, they
// are summed fresh from the list of live sources every time a caller asks,
// so a decayed-to-zero entry simply stops contributing without needing an
// explicit removal pass on every tick.
package modifier

import (
	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/fixedpoint"
)

// Modifier is one timed effect contributed under some source key K (for
// example, a diplomacy.PairKey, or a province's "why is unrest high"
// reason enum).
type Modifier[K comparable] struct {
	Source    K
	Value     fixedpoint.Fixed
	AppliedAt archon.Tick
	DecayTo   archon.Tick // tick at which Value has decayed fully to zero
}

// CurrentValue returns Value scaled by the fraction of [AppliedAt,DecayTo]
// remaining at now: value * max(0, 1 - elapsed/decayRate). A modifier with
// DecayTo <= AppliedAt never decays (a permanent effect).
func (m Modifier[K]) CurrentValue(now archon.Tick) fixedpoint.Fixed {
	if m.DecayTo <= m.AppliedAt {
		return m.Value
	}
	if now <= m.AppliedAt {
		return m.Value
	}
	if now >= m.DecayTo {
		return fixedpoint.Zero
	}
	elapsed := fixedpoint.FromInt(int32(now - m.AppliedAt))
	total := fixedpoint.FromInt(int32(m.DecayTo - m.AppliedAt))
	remaining := fixedpoint.One.Sub(elapsed.Div(total))
	if remaining.Cmp(fixedpoint.Zero) < 0 {
		remaining = fixedpoint.Zero
	}
	return m.Value.Mul(remaining)
}

// Expired reports whether the modifier has fully decayed by now and can be
// pruned.
func (m Modifier[K]) Expired(now archon.Tick) bool {
	return m.DecayTo > m.AppliedAt && now >= m.DecayTo
}

// Stack holds every live modifier for one entity (one province, one
// diplomatic relation, ...), keyed loosely by source so the same source can
// be refreshed (replacing its prior contribution) rather than stacking
// indefinitely.
type Stack[K comparable] struct {
	entries []Modifier[K]
}

// Apply adds or refreshes the modifier contributed by source, replacing any
// existing entry with the same source key (spec §3.9's "reapplying a
// modifier from the same source refreshes it rather than stacking").
func (s *Stack[K]) Apply(m Modifier[K]) {
	for i := range s.entries {
		if s.entries[i].Source == m.Source {
			s.entries[i] = m
			return
		}
	}
	s.entries = append(s.entries, m)
}

// Remove deletes the modifier contributed by source, if any.
func (s *Stack[K]) Remove(source K) {
	for i := range s.entries {
		if s.entries[i].Source == source {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Prune removes every modifier that has fully decayed by now.
func (s *Stack[K]) Prune(now archon.Tick) {
	kept := s.entries[:0]
	for _, m := range s.entries {
		if !m.Expired(now) {
			kept = append(kept, m)
		}
	}
	s.entries = kept
}

// Total sums CurrentValue across every live entry as of now. Callers that
// tick frequently should call Prune first to bound the entry count.
func (s *Stack[K]) Total(now archon.Tick) fixedpoint.Fixed {
	total := fixedpoint.Zero
	for _, m := range s.entries {
		total = total.Add(m.CurrentValue(now))
	}
	return total
}

// Len returns the number of live (not necessarily unexpired) entries.
func (s *Stack[K]) Len() int { return len(s.entries) }

// All iterates every entry currently on the stack.
func (s *Stack[K]) All(yield func(Modifier[K]) bool) {
	for _, m := range s.entries {
		if !yield(m) {
			return
		}
	}
}
