// Package province implements the province hot/cold state split, the
// structure-of-arrays owner mirror, and the front/back double buffer (spec
// §3.2).
//
// Grounded on the teacher's state package: GlobalState/WorldState/ZoneState
// hold plain struct arrays mutated in place during a tick and snapshotted
// via Clone() at safe points, the same "mutate one copy, swap readers onto
// it" idiom this package applies at the byte-array level instead of the
// whole-struct level, since the hot array here must stay a single
// contiguous allocation for cache-friendly scans.
package province

import (
	"fmt"
	"unsafe"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/resource"
	"github.com/forgottenhistory/archon-engine/unit"
)

// Flag bits for Hot.Flags.
const (
	FlagOcean uint8 = 1 << iota
	FlagCoastal
	FlagCapital
)

// Hot is the province's per-tick-mutated state: exactly 8 bytes, packed, no
// padding (spec §3.2). The field order matters; it is chosen so the Go
// compiler's natural alignment already yields zero padding (u16, u16, u8,
// u8, u8, u8), so no struct tags or manual packing are required, but the
// size is asserted below regardless since any future field addition could
// silently reintroduce padding.
type Hot struct {
	OwnerID      archon.CountryId
	ControllerID archon.CountryId
	Development  uint8
	Terrain      uint8
	FortLevel    uint8
	Flags        uint8
}

const hotSize = unsafe.Sizeof(Hot{})

// A failing assertion here is a fatal build error, as spec §3.2 requires:
// Go has no constant unsafe.Sizeof check usable in a const declaration
// directly, but an array length of a non-constant fails to compile, which
// achieves the same "fails at build, not at runtime" guarantee.
var _ [1]struct{} = [hotSize - 8 + 1]struct{}{}

func (h Hot) IsOcean() bool { return h.Flags&FlagOcean != 0 }

// Cold is lazily-populated per-province data not touched by the hot tick
// loop: display metadata, history, and detailed inventories (spec §3.2).
type Cold struct {
	Name            string
	LocalisationKey string
	History         []HistoryEntry
	Buildings       []uint16 // registry.Id of constructed buildings

	// Resources and Units back SPEC_FULL.md's resource-inventory and
	// unit-system supplements (§3.10). Both are nil until first touched;
	// Store.Cold callers that only read display metadata never pay for
	// them.
	Resources *resource.Ledger
	Units     *unit.Stack
}

// HistoryEntry records one dated change applied by the historical loader
// (spec §4.10) or accumulated during play, kept for UI/tooltip purposes.
type HistoryEntry struct {
	Tick archon.Tick
	Note string
}

// Store owns every province's hot and cold state plus the owner SoA mirror
// and the front/back double buffer (spec §3.2).
type Store struct {
	front []Hot
	back  []Hot

	// ownerFront mirrors front[i].OwnerID for cache-friendly owner-only
	// scans (renderer texture upload, neighbor-owner checks) without
	// touching the rest of Hot.
	ownerFront []archon.CountryId

	cold map[archon.ProvinceId]*Cold

	definitionOf []archon.DefinitionId // ProvinceId -> DefinitionId, for save/display
	byDefinition map[archon.DefinitionId]archon.ProvinceId
	defined      []bool

	// provinceCount is the per-country owned-province counter spec §4.2
	// requires: kept in sync on every SetOwner so GetCountryProvinceCount
	// is O(1) rather than an O(P) scan over every province (which a naive
	// "is this country destroyed" check would otherwise need on every
	// single ownership change).
	provinceCount map[archon.CountryId]int
}

// NewStore allocates a Store sized for count provinces (including index 0,
// which is never assigned to a real province). count is the maximum
// ProvinceId plus one.
func NewStore(count int) *Store {
	return &Store{
		front:         make([]Hot, count),
		back:          make([]Hot, count),
		ownerFront:    make([]archon.CountryId, count),
		cold:          make(map[archon.ProvinceId]*Cold),
		definitionOf:  make([]archon.DefinitionId, count),
		byDefinition:  make(map[archon.DefinitionId]archon.ProvinceId, count),
		defined:       make([]bool, count),
		provinceCount: make(map[archon.CountryId]int),
	}
}

// Len returns the number of province slots, including the unused index 0.
func (s *Store) Len() int { return len(s.front) }

// Define registers definition-csv row def as province id, per spec §3.2's
// "every definition-csv row produces exactly one province entry". Called
// exactly once per province during world load.
func (s *Store) Define(id archon.ProvinceId, def archon.DefinitionId, hot Hot) {
	s.front[id] = hot
	s.back[id] = hot
	s.ownerFront[id] = hot.OwnerID
	s.definitionOf[id] = def
	s.byDefinition[def] = id
	s.defined[id] = true
	if hot.OwnerID != archon.NoCountry {
		s.provinceCount[hot.OwnerID]++
	}
}

// Exists reports whether id names a defined province (spec §4.2's
// Exists(id) query), as opposed to merely being within the store's
// allocated range.
func (s *Store) Exists(id archon.ProvinceId) bool {
	return int(id) < len(s.defined) && s.defined[id]
}

// ByDefinition resolves a definition.csv sparse id to its dense ProvinceId.
func (s *Store) ByDefinition(def archon.DefinitionId) (archon.ProvinceId, bool) {
	id, ok := s.byDefinition[def]
	return id, ok
}

// DefinitionOf returns the original definition.csv id for a province, used
// by the save writer and by tooling that must cross-reference data files.
func (s *Store) DefinitionOf(id archon.ProvinceId) archon.DefinitionId {
	return s.definitionOf[id]
}

// Hot returns a copy of the current front-buffer hot state for id.
func (s *Store) Hot(id archon.ProvinceId) Hot { return s.front[id] }

// Owner returns the province's current owner via the SoA mirror, avoiding a
// full Hot read for the common "who owns this" query.
func (s *Store) Owner(id archon.ProvinceId) archon.CountryId { return s.ownerFront[id] }

// SetOwner mutates the back buffer's owner (and controller, matching
// spec §3.2's command-only mutation path) for id, validating the invariant
// "ownerID < countryCount ∨ ownerID == 0" and that ocean provinces never
// change owner. The per-country province counter is updated immediately
// (spec §4.2: "maintained on every SetOwner"), independent of when the
// owner mirror itself becomes visible via SwapBuffers.
func (s *Store) SetOwner(id archon.ProvinceId, newOwner archon.CountryId, newController archon.CountryId, countryCount int) error {
	if int(id) >= len(s.back) {
		return archon.InvalidProvinceId(id)
	}
	h := &s.back[id]
	if h.IsOcean() {
		return fmt.Errorf("province %s: ocean provinces cannot change owner", id)
	}
	if newOwner != archon.NoCountry && int(newOwner) >= countryCount {
		return fmt.Errorf("province %s: owner id %d out of range [0,%d)", id, newOwner, countryCount)
	}
	oldOwner := h.OwnerID
	h.OwnerID = newOwner
	h.ControllerID = newController
	if oldOwner != newOwner {
		if oldOwner != archon.NoCountry {
			s.provinceCount[oldOwner]--
		}
		if newOwner != archon.NoCountry {
			s.provinceCount[newOwner]++
		}
	}
	return nil
}

// GetCountryProvinceCount returns the number of provinces c currently owns
// (spec §4.2), an O(1) read of the counter SetOwner and Define maintain.
func (s *Store) GetCountryProvinceCount(c archon.CountryId) int {
	return s.provinceCount[c]
}

// GetCountryProvinces iterates every province owned by c in id order (spec
// §4.2: "O(P) but skips non-owned entries"). Use GetCountryProvinceCount
// for the common "does this country still hold anything" check instead of
// counting this iterator's yields.
func (s *Store) GetCountryProvinces(c archon.CountryId, yield func(id archon.ProvinceId) bool) {
	for i := 1; i < len(s.front); i++ {
		if s.front[i].OwnerID == c {
			if !yield(archon.ProvinceId(i)) {
				return
			}
		}
	}
}

// Mutate applies fn to the back buffer's copy of id's hot state, for
// systems that need to change fields other than ownership (development,
// fort level, flags).
func (s *Store) Mutate(id archon.ProvinceId, fn func(*Hot)) {
	fn(&s.back[id])
}

// SwapBuffers atomically publishes every back-buffer mutation accumulated
// during the tick: front and back trade places, and the owner mirror is
// refreshed from the new front (spec §3.2 "Double buffer"). This package is
// not safe for concurrent use across the swap itself; callers serialize
// ticks and reads the same way the teacher's state.Manager serializes state
// mutation through a single goroutine's channel loop.
func (s *Store) SwapBuffers() {
	s.front, s.back = s.back, s.front
	copy(s.back, s.front) // back starts the next tick identical to the new front
	for i := range s.front {
		s.ownerFront[i] = s.front[i].OwnerID
	}
}

// Cold lazily fetches (allocating if absent) the cold record for id.
func (s *Store) Cold(id archon.ProvinceId) *Cold {
	c, ok := s.cold[id]
	if !ok {
		c = &Cold{}
		s.cold[id] = c
	}
	return c
}

// Ledger returns id's resource ledger, allocating an empty one on first
// use so callers never need a nil check before crediting or debiting.
func (s *Store) Ledger(id archon.ProvinceId) *resource.Ledger {
	c := s.Cold(id)
	if c.Resources == nil {
		c.Resources = resource.NewLedger()
	}
	return c.Resources
}

// UnitStack returns id's deployed unit stack, allocating an empty one on
// first use.
func (s *Store) UnitStack(id archon.ProvinceId) *unit.Stack {
	c := s.Cold(id)
	if c.Units == nil {
		c.Units = &unit.Stack{}
	}
	return c.Units
}

// SyncBuffersAfterLoad forces front and back to be identical by copying
// back into front, used after a save-file restore or the scenario-history
// loader has written back directly without going through SetOwner. Also
// rebuilds the per-country
// province counter from scratch, since neither path keeps it in sync
// incrementally the way SetOwner does.
func (s *Store) SyncBuffersAfterLoad() {
	copy(s.front, s.back)
	for i := range s.front {
		s.ownerFront[i] = s.front[i].OwnerID
	}
	s.recomputeCountryCounts()
}

func (s *Store) recomputeCountryCounts() {
	for k := range s.provinceCount {
		delete(s.provinceCount, k)
	}
	for i := 1; i < len(s.front); i++ {
		if owner := s.front[i].OwnerID; owner != archon.NoCountry {
			s.provinceCount[owner]++
		}
	}
}

// AllCold iterates every province that has had its cold record touched at
// least once (via Cold, Ledger, or UnitStack), in unspecified order. Used
// by the save writer, which only needs to persist cold data that actually
// diverges from "freshly allocated empty record".
func (s *Store) AllCold(yield func(id archon.ProvinceId, c *Cold) bool) {
	for id, c := range s.cold {
		if !yield(id, c) {
			return
		}
	}
}

// All iterates every defined province's current front-buffer hot state in
// id order, skipping the reserved zero slot.
func (s *Store) All(yield func(id archon.ProvinceId, h Hot) bool) {
	for i := 1; i < len(s.front); i++ {
		if !yield(archon.ProvinceId(i), s.front[i]) {
			return
		}
	}
}
