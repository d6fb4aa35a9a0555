package archon

import (
	"encoding/binary"
	"io"
	"sort"

	"github.com/forgottenhistory/archon-engine/country"
	"github.com/forgottenhistory/archon-engine/diplomacy"
	"github.com/forgottenhistory/archon-engine/fixedpoint"
	"github.com/forgottenhistory/archon-engine/modifier"
	"github.com/forgottenhistory/archon-engine/province"
	"github.com/forgottenhistory/archon-engine/registry"
	"github.com/forgottenhistory/archon-engine/resource"
	"github.com/forgottenhistory/archon-engine/rng"
	"github.com/forgottenhistory/archon-engine/save"
	"github.com/forgottenhistory/archon-engine/timesys"
	"github.com/forgottenhistory/archon-engine/unit"
)

// RegisterDefaultSections binds the five save.Section adapters GameState
// owns (spec §4.12's fixed section order "time, resources, provinces,
// modifiers, countries, units, game-layer player state, game-layer
// systems") to the save manager. "resources" and "units" are folded into
// the provinces section rather than written as separate top-level
// sections, since both are per-province cold data keyed by the same
// ProvinceId the provinces section already iterates; "game_systems" covers
// the RNG registry, the only other piece of engine state that feeds
// gameplay outcomes and so must survive a save/load boundary bit-for-bit
// (spec §8 property 6's determinism guarantee). "player_state" is left
// unregistered: it names host-layer concerns (camera position, UI
// selection) GameState has no type for, matching save.Manager.Load's
// "unknown/unregistered section: ignore rather than fail the whole load"
// contract on the read side.
func (gs *GameState) RegisterDefaultSections() error {
	sections := map[string]save.Section{
		"time":         timeSection{gs.world.Time},
		"provinces":    provinceSection{gs.world.Provinces},
		"countries":    countrySection{gs.world.Countries},
		"modifiers":    modifierSection{gs},
		"game_systems": rngSection{gs.world.RNG},
	}
	for name, s := range sections {
		if err := gs.world.Saves.RegisterSection(name, s); err != nil {
			return err
		}
	}
	return nil
}

func w(buf io.Writer, v any) error { return binary.Write(buf, binary.LittleEndian, v) }
func rd(buf io.Reader, v any) error { return binary.Read(buf, binary.LittleEndian, v) }

func writeStr(buf io.Writer, s string) error {
	if err := w(buf, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(buf, s)
	return err
}

func readStr(buf io.Reader) (string, error) {
	var n uint32
	if err := rd(buf, &n); err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(buf, b); err != nil {
		return "", err
	}
	return string(b), nil
}

// timeSection persists the clock: tick, accumulator, speed, pause state,
// and calendar date (spec §4.4 "Determinism": everything needed to resume
// mid-hour with no wall-clock state crossing the save boundary).
type timeSection struct{ s *timesys.Scheduler }

func (t timeSection) OnSave(buf io.Writer) error {
	year, month, day := t.s.Date()
	paused := uint8(0)
	if t.s.Paused() {
		paused = 1
	}
	for _, v := range []any{
		uint64(t.s.Tick()), t.s.Accumulator().Raw(), uint8(t.s.Speed()), paused,
		year, month, day,
	} {
		if err := w(buf, v); err != nil {
			return err
		}
	}
	return nil
}

func (t timeSection) OnLoad(buf io.Reader) error {
	var tick uint64
	var acc int64
	var speed, paused uint8
	var year, month, day int32
	for _, v := range []any{&tick, &acc, &speed, &paused, &year, &month, &day} {
		if err := rd(buf, v); err != nil {
			return err
		}
	}
	t.s.Restore(Tick(tick), fixedpoint.FromRaw(acc), GameSpeed(speed), paused != 0, year, month, day)
	return nil
}

// provinceSection persists every province's hot state (owner, controller,
// development, terrain, fort level, flags — spec §3.2's full authoritative
// record) plus any cold record that has been touched: display metadata,
// history, constructed buildings, and the resource/unit supplements from
// SPEC_FULL.md §3.10.
type provinceSection struct{ s *province.Store }

func (p provinceSection) OnSave(buf io.Writer) error {
	n := p.s.Len()
	if err := w(buf, uint32(n)); err != nil {
		return err
	}
	for i := 1; i < n; i++ {
		id := ProvinceId(i)
		h := p.s.Hot(id)
		for _, v := range []any{uint16(h.OwnerID), uint16(h.ControllerID), h.Development, h.Terrain, h.FortLevel, h.Flags} {
			if err := w(buf, v); err != nil {
				return err
			}
		}
	}

	var cold []ProvinceId
	p.s.AllCold(func(id ProvinceId, _ *province.Cold) bool {
		cold = append(cold, id)
		return true
	})
	// AllCold's order is a map iteration and thus randomized per process;
	// sort so identical state always serializes to identical bytes.
	sort.Slice(cold, func(i, j int) bool { return cold[i] < cold[j] })
	if err := w(buf, uint32(len(cold))); err != nil {
		return err
	}
	for _, id := range cold {
		c := p.s.Cold(id)
		if err := w(buf, uint32(id)); err != nil {
			return err
		}
		if err := writeStr(buf, c.Name); err != nil {
			return err
		}
		if err := writeStr(buf, c.LocalisationKey); err != nil {
			return err
		}
		if err := w(buf, uint32(len(c.History))); err != nil {
			return err
		}
		for _, h := range c.History {
			if err := w(buf, uint64(h.Tick)); err != nil {
				return err
			}
			if err := writeStr(buf, h.Note); err != nil {
				return err
			}
		}
		if err := w(buf, uint32(len(c.Buildings))); err != nil {
			return err
		}
		for _, b := range c.Buildings {
			if err := w(buf, b); err != nil {
				return err
			}
		}
		if err := writeLedger(buf, c.Resources); err != nil {
			return err
		}
		if err := writeUnits(buf, c.Units); err != nil {
			return err
		}
	}
	return nil
}

func (p provinceSection) OnLoad(buf io.Reader) error {
	var n uint32
	if err := rd(buf, &n); err != nil {
		return err
	}
	for i := uint32(1); i < n; i++ {
		var ownerID, controllerID uint16
		var development, terrain, fortLevel, flags uint8
		for _, v := range []any{&ownerID, &controllerID, &development, &terrain, &fortLevel, &flags} {
			if err := rd(buf, v); err != nil {
				return err
			}
		}
		p.s.Mutate(ProvinceId(i), func(h *province.Hot) {
			h.OwnerID = CountryId(ownerID)
			h.ControllerID = CountryId(controllerID)
			h.Development = development
			h.Terrain = terrain
			h.FortLevel = fortLevel
			h.Flags = flags
		})
	}
	p.s.SyncBuffersAfterLoad()

	var coldCount uint32
	if err := rd(buf, &coldCount); err != nil {
		return err
	}
	for i := uint32(0); i < coldCount; i++ {
		var rawID uint32
		if err := rd(buf, &rawID); err != nil {
			return err
		}
		id := ProvinceId(rawID)
		c := p.s.Cold(id)
		name, err := readStr(buf)
		if err != nil {
			return err
		}
		c.Name = name
		locKey, err := readStr(buf)
		if err != nil {
			return err
		}
		c.LocalisationKey = locKey

		var historyCount uint32
		if err := rd(buf, &historyCount); err != nil {
			return err
		}
		c.History = make([]province.HistoryEntry, historyCount)
		for j := range c.History {
			var tick uint64
			if err := rd(buf, &tick); err != nil {
				return err
			}
			note, err := readStr(buf)
			if err != nil {
				return err
			}
			c.History[j] = province.HistoryEntry{Tick: Tick(tick), Note: note}
		}

		var buildingCount uint32
		if err := rd(buf, &buildingCount); err != nil {
			return err
		}
		c.Buildings = make([]uint16, buildingCount)
		for j := range c.Buildings {
			if err := rd(buf, &c.Buildings[j]); err != nil {
				return err
			}
		}

		ledger, err := readLedger(buf)
		if err != nil {
			return err
		}
		c.Resources = ledger

		units, err := readUnits(buf)
		if err != nil {
			return err
		}
		c.Units = units
	}
	return nil
}

func writeLedger(buf io.Writer, l *resource.Ledger) error {
	if l == nil {
		return w(buf, uint32(0))
	}
	if err := w(buf, uint32(l.Len())); err != nil {
		return err
	}
	var err error
	l.All(func(id registry.Id, amount int64) bool {
		if err = w(buf, uint32(id)); err != nil {
			return false
		}
		if err = w(buf, amount); err != nil {
			return false
		}
		return true
	})
	return err
}

func readLedger(buf io.Reader) (*resource.Ledger, error) {
	var n uint32
	if err := rd(buf, &n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	l := resource.NewLedger()
	for i := uint32(0); i < n; i++ {
		var id uint32
		var amount int64
		if err := rd(buf, &id); err != nil {
			return nil, err
		}
		if err := rd(buf, &amount); err != nil {
			return nil, err
		}
		l.Set(registry.Id(id), amount)
	}
	return l, nil
}

func writeUnits(buf io.Writer, s *unit.Stack) error {
	if s == nil {
		return w(buf, uint32(0))
	}
	if err := w(buf, uint32(s.Len())); err != nil {
		return err
	}
	var err error
	s.All(func(_ int, g unit.Group) bool {
		if err = w(buf, uint32(g.Type)); err != nil {
			return false
		}
		if err = w(buf, g.Count); err != nil {
			return false
		}
		if err = w(buf, g.Strength.Raw()); err != nil {
			return false
		}
		return true
	})
	return err
}

func readUnits(buf io.Reader) (*unit.Stack, error) {
	var n uint32
	if err := rd(buf, &n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	s := &unit.Stack{}
	for i := uint32(0); i < n; i++ {
		var typ uint32
		var count int32
		var strength int64
		if err := rd(buf, &typ); err != nil {
			return nil, err
		}
		if err := rd(buf, &count); err != nil {
			return nil, err
		}
		if err := rd(buf, &strength); err != nil {
			return nil, err
		}
		s.Add(unit.Group{Type: registry.Id(typ), Count: count, Strength: fixedpoint.FromRaw(strength)})
	}
	return s, nil
}

// countrySection persists every defined country's hot state. Cold records
// (tag, display name, religion) are display data re-derived from the
// original tag<->id bijection and the localisation loader on the next
// load, not authoritative simulation state, so they are intentionally not
// part of this section.
type countrySection struct{ s *country.Store }

func (cs countrySection) OnSave(buf io.Writer) error {
	var ids []CountryId
	cs.s.All(func(id CountryId, _ country.Hot) bool {
		ids = append(ids, id)
		return true
	})
	if err := w(buf, uint32(len(ids))); err != nil {
		return err
	}
	for _, id := range ids {
		h := cs.s.Hot(id)
		if err := w(buf, uint16(id)); err != nil {
			return err
		}
		for _, v := range []any{h.ColorRGB, h.TagHash, h.GraphicalCultureId, h.Flags} {
			if err := w(buf, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (cs countrySection) OnLoad(buf io.Reader) error {
	var n uint32
	if err := rd(buf, &n); err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		var id uint16
		if err := rd(buf, &id); err != nil {
			return err
		}
		var h country.Hot
		for _, v := range []any{&h.ColorRGB, &h.TagHash, &h.GraphicalCultureId, &h.Flags} {
			if err := rd(buf, v); err != nil {
				return err
			}
		}
		cs.s.Mutate(CountryId(id), func(dst *country.Hot) { *dst = h })
	}
	return nil
}

// modifierSection persists the diplomacy book's relations (base opinion,
// war state, treaties, and opinion modifiers) and GameState's country-level
// modifier stacks.
type modifierSection struct{ gs *GameState }

func (ms modifierSection) OnSave(buf io.Writer) error {
	type pair struct {
		key diplomacy.PairKey
		r   *diplomacy.Relation
	}
	var relations []pair
	ms.gs.world.Diplomacy.All(func(key diplomacy.PairKey, r *diplomacy.Relation) bool {
		relations = append(relations, pair{key, r})
		return true
	})
	// Map iteration order is randomized per process; sort by key so two
	// saves of identical state always serialize to identical bytes, which
	// is what lets a replayed checksum ever match (spec §8 property 6).
	sort.Slice(relations, func(i, j int) bool { return relations[i].key < relations[j].key })
	if err := w(buf, uint32(len(relations))); err != nil {
		return err
	}
	for _, p := range relations {
		if err := w(buf, uint64(p.key)); err != nil {
			return err
		}
		if err := w(buf, p.r.BaseOpinion.Raw()); err != nil {
			return err
		}
		atWar := uint8(0)
		if p.r.AtWar {
			atWar = 1
		}
		if err := w(buf, atWar); err != nil {
			return err
		}
		if err := w(buf, p.r.Treaties); err != nil {
			return err
		}
		if err := writeModifierStack(buf, &p.r.Modifiers); err != nil {
			return err
		}
	}

	var countryIds []CountryId
	for id := range ms.gs.countryModifiers {
		countryIds = append(countryIds, id)
	}
	sort.Slice(countryIds, func(i, j int) bool { return countryIds[i] < countryIds[j] })
	if err := w(buf, uint32(len(countryIds))); err != nil {
		return err
	}
	for _, id := range countryIds {
		if err := w(buf, uint16(id)); err != nil {
			return err
		}
		if err := writeModifierStack(buf, ms.gs.countryModifiers[id]); err != nil {
			return err
		}
	}
	return nil
}

func (ms modifierSection) OnLoad(buf io.Reader) error {
	var n uint32
	if err := rd(buf, &n); err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		var key uint64
		if err := rd(buf, &key); err != nil {
			return err
		}
		a, b := diplomacy.PairKey(key).Unpack()
		r := ms.gs.world.Diplomacy.Relation(a, b)

		var baseOpinion int64
		if err := rd(buf, &baseOpinion); err != nil {
			return err
		}
		r.BaseOpinion = fixedpoint.FromRaw(baseOpinion)
		var atWar uint8
		if err := rd(buf, &atWar); err != nil {
			return err
		}
		r.AtWar = atWar != 0
		if err := rd(buf, &r.Treaties); err != nil {
			return err
		}
		stack, err := readModifierStack[diplomacy.ModifierSource](buf)
		if err != nil {
			return err
		}
		r.Modifiers = *stack
	}

	var countryCount uint32
	if err := rd(buf, &countryCount); err != nil {
		return err
	}
	for i := uint32(0); i < countryCount; i++ {
		var id uint16
		if err := rd(buf, &id); err != nil {
			return err
		}
		stack, err := readModifierStack[uint16](buf)
		if err != nil {
			return err
		}
		ms.gs.countryModifiers[CountryId(id)] = stack
	}
	return nil
}

func writeModifierStack[K ~uint16](buf io.Writer, s *modifier.Stack[K]) error {
	if err := w(buf, uint32(s.Len())); err != nil {
		return err
	}
	var err error
	s.All(func(m modifier.Modifier[K]) bool {
		if err = w(buf, uint16(m.Source)); err != nil {
			return false
		}
		if err = w(buf, m.Value.Raw()); err != nil {
			return false
		}
		if err = w(buf, uint64(m.AppliedAt)); err != nil {
			return false
		}
		if err = w(buf, uint64(m.DecayTo)); err != nil {
			return false
		}
		return true
	})
	return err
}

func readModifierStack[K ~uint16](buf io.Reader) (*modifier.Stack[K], error) {
	var n uint32
	if err := rd(buf, &n); err != nil {
		return nil, err
	}
	stack := &modifier.Stack[K]{}
	for i := uint32(0); i < n; i++ {
		var source uint16
		var value int64
		var appliedAt, decayTo uint64
		if err := rd(buf, &source); err != nil {
			return nil, err
		}
		if err := rd(buf, &value); err != nil {
			return nil, err
		}
		if err := rd(buf, &appliedAt); err != nil {
			return nil, err
		}
		if err := rd(buf, &decayTo); err != nil {
			return nil, err
		}
		stack.Apply(modifier.Modifier[K]{
			Source:    K(source),
			Value:     fixedpoint.FromRaw(value),
			AppliedAt: Tick(appliedAt),
			DecayTo:   Tick(decayTo),
		})
	}
	return stack, nil
}

// rngSection persists every named RNG stream's current seed, the one other
// piece of engine state (besides command execution itself) that gameplay
// outcomes depend on, so it must round-trip exactly for spec §8 property
// 6's determinism guarantee to hold across a save/load boundary.
type rngSection struct{ reg *rng.Registry }

func (rs rngSection) OnSave(buf io.Writer) error {
	if err := w(buf, rs.reg.MasterSeed()); err != nil {
		return err
	}
	seeds := rs.reg.StreamSeeds()
	names := make([]string, 0, len(seeds))
	for name := range seeds {
		names = append(names, name)
	}
	sort.Strings(names)
	if err := w(buf, uint32(len(names))); err != nil {
		return err
	}
	for _, name := range names {
		if err := writeStr(buf, name); err != nil {
			return err
		}
		if err := w(buf, seeds[name]); err != nil {
			return err
		}
	}
	return nil
}

func (rs rngSection) OnLoad(buf io.Reader) error {
	var masterSeed uint64
	if err := rd(buf, &masterSeed); err != nil {
		return err
	}
	var n uint32
	if err := rd(buf, &n); err != nil {
		return err
	}
	seeds := make(map[string]uint64, n)
	for i := uint32(0); i < n; i++ {
		name, err := readStr(buf)
		if err != nil {
			return err
		}
		var seed uint64
		if err := rd(buf, &seed); err != nil {
			return err
		}
		seeds[name] = seed
	}
	rs.reg.RestoreStreamSeeds(seeds)
	return nil
}
