package event

import "github.com/forgottenhistory/archon-engine"

// This file catalogs the concrete event types emitted by the simulation
// core (spec §4.6's event table), the generic equivalent of the teacher's
// per-type Typer implementations in event/events.go: there, one Go type per
// wire event with a Type() ps2.Event method and a map-dispatched Raw
// decoder; here, one Go type per simulation event with no decode step,
// since these are constructed in-process rather than parsed off a
// websocket.

// ProvinceOwnerChanged is emitted whenever SetOwner succeeds, after the hot
// and cold state both reflect the new owner.
type ProvinceOwnerChanged struct {
	Province archon.ProvinceId
	OldOwner archon.CountryId
	NewOwner archon.CountryId
	Tick     archon.Tick
}

// CountryCreated is emitted once, during bootstrap, for every country
// registered from definition data.
type CountryCreated struct {
	Country archon.CountryId
	Tag     string
}

// CountryDestroyed is emitted when a country's last province changes hands
// away from it and it holds no provinces at all.
type CountryDestroyed struct {
	Country archon.CountryId
	Tick    archon.Tick
}

// WarDeclared is emitted by the diplomacy system when a relation's state
// transitions into war.
type WarDeclared struct {
	Attacker archon.CountryId
	Defender archon.CountryId
	Tick     archon.Tick
}

// PeaceMade is emitted when a relation's state transitions out of war.
type PeaceMade struct {
	Attacker archon.CountryId
	Defender archon.CountryId
	Tick     archon.Tick
}

// HourElapsed, DayElapsed, MonthElapsed, and YearElapsed are emitted by the
// tick scheduler at the end of processing each respective layer (spec
// §4.4). Systems that only care about coarse cadence subscribe to these
// instead of the raw per-tick callback.
type HourElapsed struct{ Tick archon.Tick }

type DayElapsed struct {
	Tick archon.Tick
	Day  int32
}

type MonthElapsed struct {
	Tick  archon.Tick
	Month int32
}

type YearElapsed struct {
	Tick archon.Tick
	Year int32
}

// GameSpeedChanged is emitted when the scheduler's speed state machine
// transitions, including transitions into and out of Paused.
type GameSpeedChanged struct {
	Old archon.GameSpeed
	New archon.GameSpeed
}

// CommandRejected is emitted when a queued command fails validation at
// execution time, carrying enough context for a UI layer to surface why.
type CommandRejected struct {
	Tick   archon.Tick
	Kind   uint8
	Reason string
}

// MapModeChanged is emitted by GameState.SetMapMode when the active map
// mode slot changes.
type MapModeChanged struct {
	Old string
	New string
}

// SaveCompleted is emitted after a save file's atomic rename succeeds.
type SaveCompleted struct {
	Path string
	Tick archon.Tick
}

// SaveFailed is emitted when a save attempt could not complete; the
// temporary file has already been cleaned up by the time this fires.
type SaveFailed struct {
	Path string
	Err  error
}
