// Package archon is the simulation and rendering core of a grand-strategy
// map game. It exposes a GameState hub through which an embedding
// application drives ticks, submits commands, and subscribes to events.
package archon

import "fmt"

// ProvinceId is a dense runtime index assigned at world load. 0 is reserved
// to mean "no province".
type ProvinceId uint16

// NoProvince is the reserved zero value of ProvinceId.
const NoProvince ProvinceId = 0

func (id ProvinceId) String() string {
	if id == NoProvince {
		return "Province(none)"
	}
	return fmt.Sprintf("Province(%d)", uint16(id))
}

// CountryId is a dense runtime index assigned at world load. 0 is reserved
// to mean "no country" (unowned).
type CountryId uint16

// NoCountry is the reserved zero value of CountryId.
const NoCountry CountryId = 0

func (id CountryId) String() string {
	if id == NoCountry {
		return "Country(none)"
	}
	return fmt.Sprintf("Country(%d)", uint16(id))
}

// DefinitionId is the sparse integer identifier a province carries in
// definition.csv, as opposed to its dense runtime ProvinceId.
type DefinitionId uint32

// Tick is a monotonic in-game hour counter.
type Tick uint64

// PlayerId identifies the submitter of a command. It is opaque to the
// engine; multiplayer ordering is the networking layer's responsibility
// per spec §4.5.
type PlayerId uint16
