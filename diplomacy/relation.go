// Package diplomacy implements the diplomatic relation system (spec §3.6):
// relations keyed by an unordered country pair, base opinion, war state,
// treaty flags, and a decaying opinion-modifier list.
//
// Grounded on the teacher's state package for the "derived totals summed
// fresh from live sources" idiom, and on modifier.Stack for the actual
// decay math, which generalizes the OpinionModifier formula given in spec
// §3.6 so that it is implemented exactly once rather than twice.
package diplomacy

import (
	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/fixedpoint"
	"github.com/forgottenhistory/archon-engine/modifier"
)

// Treaty bitmask flags.
const (
	TreatyAlliance uint8 = 1 << iota
	TreatyRoyalMarriage
	TreatyMilitaryAccess
	TreatyNonAggression
)

// PairKey packs an unordered pair of CountryId into a single u64, with the
// smaller id always in the high bits so (a,b) and (b,a) hash identically
// (spec §3.6 "unordered pair packed into a u64").
type PairKey uint64

// MakePairKey builds the canonical key for a and b.
func MakePairKey(a, b archon.CountryId) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey(uint64(a)<<32 | uint64(b))
}

// Unpack returns the pair's two members in (lower, higher) id order.
func (k PairKey) Unpack() (archon.CountryId, archon.CountryId) {
	return archon.CountryId(k >> 32), archon.CountryId(k)
}

// ModifierSource identifies what contributed an opinion modifier (war,
// royal marriage, border friction, ...), used as the decay stack's key so
// reapplying from the same source refreshes rather than stacks (spec §3.9
// Open Question resolution carried into SPEC_FULL.md).
type ModifierSource uint16

// Relation is one country pair's diplomatic state.
type Relation struct {
	BaseOpinion fixedpoint.Fixed
	AtWar       bool
	Treaties    uint8
	Modifiers   modifier.Stack[ModifierSource]
}

// Opinion returns BaseOpinion plus the sum of every live modifier's current
// (decayed) contribution as of now.
func (r *Relation) Opinion(now archon.Tick) fixedpoint.Fixed {
	return r.BaseOpinion.Add(r.Modifiers.Total(now))
}

// HasTreaty reports whether flag is set in Treaties.
func (r *Relation) HasTreaty(flag uint8) bool { return r.Treaties&flag != 0 }

// Book owns every country pair's Relation, created lazily on first access
// so that the n^2 pair space is never fully materialized up front.
type Book struct {
	relations map[PairKey]*Relation
}

// NewBook creates an empty Book.
func NewBook() *Book {
	return &Book{relations: make(map[PairKey]*Relation)}
}

// Relation returns the relation between a and b, creating a neutral one on
// first access.
func (b *Book) Relation(a, c archon.CountryId) *Relation {
	key := MakePairKey(a, c)
	r, ok := b.relations[key]
	if !ok {
		r = &Relation{}
		b.relations[key] = r
	}
	return r
}

// DeclareWar sets AtWar for the pair. It returns nothing and does not
// itself touch the event bus, keeping this package free of an event
// dependency; GameState.DeclareWar emits event.WarDeclared.
func (b *Book) DeclareWar(attacker, defender archon.CountryId) {
	b.Relation(attacker, defender).AtWar = true
}

// MakePeace clears AtWar for the pair.
func (b *Book) MakePeace(attacker, defender archon.CountryId) {
	b.Relation(attacker, defender).AtWar = false
}

// AtWar reports whether a and c are currently at war.
func (b *Book) AtWar(a, c archon.CountryId) bool {
	if r, ok := b.relations[MakePairKey(a, c)]; ok {
		return r.AtWar
	}
	return false
}

// PruneModifiers prunes every relation's expired modifiers, called once per
// day by the tick scheduler (spec §4.4's daily layer).
func (b *Book) PruneModifiers(now archon.Tick) {
	for _, r := range b.relations {
		r.Modifiers.Prune(now)
	}
}

// All iterates every relation that has been created so far.
func (b *Book) All(yield func(key PairKey, r *Relation) bool) {
	for k, r := range b.relations {
		if !yield(k, r) {
			return
		}
	}
}
