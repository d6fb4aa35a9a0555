// Package country implements the country hot/cold state split and the
// tag<->id bijection (spec §3.3).
//
// Grounded on province's Store (itself grounded on the teacher's
// state.WorldState), using the same hot/cold split shape; country has no
// double buffer of its own because spec §3.3 does not ask for tick-rate
// mutation of country hot state at the granularity province ownership
// needs, so a single array mutated in place is sufficient.
package country

import (
	"fmt"
	"unsafe"

	"github.com/forgottenhistory/archon-engine"
)

// Flag bits for Hot.Flags.
const (
	FlagExists uint8 = 1 << iota // distinguishes a real country slot from an unused one
	FlagRevolutionary
)

// Hot is the country's packed per-tick state, exactly 8 bytes (spec §3.3).
// The Go field order (ColorRGB before TagHash) differs from the spec's wire
// field order (tagHash then colorRGB) specifically to keep natural
// alignment padding-free: a leading uint32 needs 4-byte alignment, so it
// must come first or be preceded by another 4-byte-aligned quantity.
// MarshalBinary below restores the spec's wire order for save files.
type Hot struct {
	ColorRGB           uint32 // 0x00RRGGBB, upper byte reserved
	TagHash            uint16
	GraphicalCultureId uint8
	Flags              uint8
}

const hotSize = unsafe.Sizeof(Hot{})

var _ [1]struct{} = [hotSize - 8 + 1]struct{}{}

// MarshalBinary writes Hot in the spec's wire field order: tagHash:u16,
// colorRGB:u32, graphicalCultureId:u8, flags:u8, big-endian.
func (h Hot) MarshalBinary() []byte {
	buf := make([]byte, 8)
	buf[0] = byte(h.TagHash >> 8)
	buf[1] = byte(h.TagHash)
	buf[2] = byte(h.ColorRGB >> 24)
	buf[3] = byte(h.ColorRGB >> 16)
	buf[4] = byte(h.ColorRGB >> 8)
	buf[5] = byte(h.ColorRGB)
	buf[6] = h.GraphicalCultureId
	buf[7] = h.Flags
	return buf
}

// Cold is lazily-populated country data (spec §3.3): three-letter tag,
// display name, preferred religion and revolutionary color. It holds no
// separate full color object; the country's color is Hot.ColorRGB.
type Cold struct {
	Tag                string
	DisplayName        string
	PreferredReligion  uint16 // registry.Id
	RevolutionaryColor uint32
}

// coldCacheSize bounds the LRU-style cold cache (spec §3.3 "cached
// LRU-style").
const coldCacheSize = 256

// Store owns every country's hot state, the tag<->id bijection, and an
// LRU-bounded cold-data cache.
type Store struct {
	hot []Hot

	tagToId map[string]archon.CountryId
	idToTag []string

	coldCache    map[archon.CountryId]*Cold
	coldOrder    []archon.CountryId // most-recently-used at the back
	coldFallback func(archon.CountryId) *Cold
}

// NewStore allocates a Store sized for count countries (including index 0,
// reserved for NoCountry). loadCold supplies a country's Cold record on a
// cache miss; it is typically backed by the localisation and kv loaders.
func NewStore(count int, loadCold func(archon.CountryId) *Cold) *Store {
	return &Store{
		hot:          make([]Hot, count),
		tagToId:      make(map[string]archon.CountryId, count),
		idToTag:      make([]string, count),
		coldCache:    make(map[archon.CountryId]*Cold),
		coldFallback: loadCold,
	}
}

// Define registers country id under its three-letter tag, populated once at
// load (spec §3.3 "Populated once at load").
func (s *Store) Define(id archon.CountryId, tag string, hot Hot) error {
	if int(id) >= len(s.hot) {
		return archon.InvalidCountryId(id)
	}
	if _, exists := s.tagToId[tag]; exists {
		return fmt.Errorf("country: duplicate tag %q", tag)
	}
	hot.Flags |= FlagExists
	s.hot[id] = hot
	s.tagToId[tag] = id
	s.idToTag[id] = tag
	return nil
}

// Len returns the size of the dense id space (including the reserved zero
// slot), the bound province.Store.SetOwner needs to range-check an owner id.
func (s *Store) Len() int { return len(s.hot) }

// Exists reports whether id refers to a defined country.
func (s *Store) Exists(id archon.CountryId) bool {
	return id != archon.NoCountry && int(id) < len(s.hot) && s.hot[id].Flags&FlagExists != 0
}

// IdOf resolves a three-letter tag to its CountryId.
func (s *Store) IdOf(tag string) (archon.CountryId, bool) {
	id, ok := s.tagToId[tag]
	return id, ok
}

// TagOf resolves a CountryId to its three-letter tag.
func (s *Store) TagOf(id archon.CountryId) string {
	if int(id) >= len(s.idToTag) {
		return ""
	}
	return s.idToTag[id]
}

// Hot returns a copy of id's current hot state.
func (s *Store) Hot(id archon.CountryId) Hot { return s.hot[id] }

// Mutate applies fn to id's hot state in place.
func (s *Store) Mutate(id archon.CountryId, fn func(*Hot)) { fn(&s.hot[id]) }

// Cold fetches id's cold record, consulting the LRU cache before falling
// back to coldFallback, and evicting the least-recently-used entry once
// coldCacheSize is exceeded.
func (s *Store) Cold(id archon.CountryId) *Cold {
	if c, ok := s.coldCache[id]; ok {
		s.touch(id)
		return c
	}
	var c *Cold
	if s.coldFallback != nil {
		c = s.coldFallback(id)
	}
	if c == nil {
		c = &Cold{Tag: s.TagOf(id)}
	}
	s.coldCache[id] = c
	s.coldOrder = append(s.coldOrder, id)
	s.evictIfNeeded()
	return c
}

func (s *Store) touch(id archon.CountryId) {
	for i, v := range s.coldOrder {
		if v == id {
			s.coldOrder = append(s.coldOrder[:i], s.coldOrder[i+1:]...)
			break
		}
	}
	s.coldOrder = append(s.coldOrder, id)
}

func (s *Store) evictIfNeeded() {
	for len(s.coldOrder) > coldCacheSize {
		oldest := s.coldOrder[0]
		s.coldOrder = s.coldOrder[1:]
		delete(s.coldCache, oldest)
	}
}

// All iterates every defined country's hot state in id order.
func (s *Store) All(yield func(id archon.CountryId, h Hot) bool) {
	for i := 1; i < len(s.hot); i++ {
		if s.hot[i].Flags&FlagExists == 0 {
			continue
		}
		if !yield(archon.CountryId(i), s.hot[i]) {
			return
		}
	}
}
