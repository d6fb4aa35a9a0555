// Package unit implements the minimal military/civilian unit stack
// supplementing the distilled spec (SPEC_FULL.md §3.10): a province or army
// holds a Stack of unit groups, each referencing a registry.UnitType and
// carrying a live strength value separate from that type's static base
// strength.
//
// Grounded on the teacher's psmap ownership-tracking idiom (a territory
// holds a set of facility states it owns, queried by aggregate rather than
// iterated ad hoc); Stack exposes the same "aggregate queries over a small
// owned collection" shape for unit groups.
package unit

import (
	"github.com/forgottenhistory/archon-engine/fixedpoint"
	"github.com/forgottenhistory/archon-engine/registry"
)

// Group is one deployed group of a single unit type.
type Group struct {
	Type     registry.Id
	Count    int32
	Strength fixedpoint.Fixed // current strength fraction in [0,1] of full health
}

// EffectiveStrength returns Count × baseStrength scaled by Strength,
// rounded down.
func (g Group) EffectiveStrength(baseStrength int32) int32 {
	scaled := fixedpoint.FromInt(g.Count * baseStrength).Mul(g.Strength)
	return int32(scaled.Floor().Raw() >> 32)
}

// Stack holds every unit group belonging to one owner (a province garrison,
// an army). Groups of the same Type are kept distinct rather than merged,
// since two groups of the same type may carry different Strength.
type Stack struct {
	groups []Group
}

// Add appends a new group to the stack.
func (s *Stack) Add(g Group) { s.groups = append(s.groups, g) }

// RemoveAt removes the group at index i.
func (s *Stack) RemoveAt(i int) {
	if i < 0 || i >= len(s.groups) {
		return
	}
	s.groups = append(s.groups[:i], s.groups[i+1:]...)
}

// Len returns the number of groups in the stack.
func (s *Stack) Len() int { return len(s.groups) }

// At returns the group at index i.
func (s *Stack) At(i int) Group { return s.groups[i] }

// TotalCount sums Count across every group.
func (s *Stack) TotalCount() int32 {
	var total int32
	for _, g := range s.groups {
		total += g.Count
	}
	return total
}

// All iterates every group in the stack.
func (s *Stack) All(yield func(i int, g Group) bool) {
	for i, g := range s.groups {
		if !yield(i, g) {
			return
		}
	}
}

// Clone returns a deep copy of the stack.
func (s *Stack) Clone() *Stack {
	out := &Stack{groups: make([]Group, len(s.groups))}
	copy(out.groups, s.groups)
	return out
}
