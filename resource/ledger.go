// Package resource implements the per-entity resource ledger supplementing
// the distilled spec's economy model (SPEC_FULL.md §3.10): a province or
// country's stockpile of tradeable goods, keyed by registry.Id so that the
// vocabulary of resources stays entirely data-driven.
//
// Grounded on the teacher's state package, whose WorldState/ZoneState types
// hold plain maps of derived totals recomputed from authoritative
// per-entity state rather than cached incrementally; Ledger follows the
// same shape for the same reason (a province's stock is the one
// authoritative value, never re-derived).
package resource

import "github.com/forgottenhistory/archon-engine/registry"

// Ledger holds one entity's stock of every resource it currently carries.
// Resources absent from the map are implicitly zero; Amount never stores an
// explicit zero entry so that Len() reflects "resources actually held".
type Ledger struct {
	amounts map[registry.Id]int64 // hundredths of a unit, matches registry.Resource.BaseValue's scale
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{amounts: make(map[registry.Id]int64)}
}

// Amount returns the current stock of resource id.
func (l *Ledger) Amount(id registry.Id) int64 {
	return l.amounts[id]
}

// Add adds delta (which may be negative) to resource id's stock, pruning
// the entry if it returns to exactly zero. It returns the resulting
// amount.
func (l *Ledger) Add(id registry.Id, delta int64) int64 {
	next := l.amounts[id] + delta
	if next == 0 {
		delete(l.amounts, id)
	} else {
		l.amounts[id] = next
	}
	return next
}

// Set overwrites resource id's stock directly, used by save restore.
func (l *Ledger) Set(id registry.Id, amount int64) {
	if amount == 0 {
		delete(l.amounts, id)
		return
	}
	l.amounts[id] = amount
}

// CanAfford reports whether the ledger holds at least cost of resource id.
func (l *Ledger) CanAfford(id registry.Id, cost int64) bool {
	return l.amounts[id] >= cost
}

// Len returns the number of resource types with a nonzero stock.
func (l *Ledger) Len() int { return len(l.amounts) }

// All iterates every nonzero resource entry. Iteration order is
// unspecified; callers needing determinism (e.g. the save writer) must
// sort by id themselves.
func (l *Ledger) All(yield func(id registry.Id, amount int64) bool) {
	for id, amt := range l.amounts {
		if !yield(id, amt) {
			return
		}
	}
}

// Clone returns a deep copy, mirroring the teacher's WorldState.Clone()
// idiom used wherever a snapshot must be taken without aliasing the
// original's backing map.
func (l *Ledger) Clone() *Ledger {
	out := &Ledger{amounts: make(map[registry.Id]int64, len(l.amounts))}
	for id, amt := range l.amounts {
		out.amounts[id] = amt
	}
	return out
}
