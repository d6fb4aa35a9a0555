// Package timesys implements the layered tick scheduler (spec §4.4): a
// real-time-driven accumulator that consumes whole in-game hours and fires
// the hour/day/month/year layers in order.
//
// Grounded on the teacher's state.Manager, whose Run(ctx) loop drives state
// transitions off a channel-fed event source one step at a time; Scheduler
// follows the same "advance exactly one discrete unit per call, publish
// what changed" shape, but is driven by Advance(realDelta) instead of a
// channel, since the simulation core has no goroutine of its own (spec §5:
// single-threaded).
package timesys

import (
	"fmt"
	"log/slog"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/event"
	"github.com/forgottenhistory/archon-engine/fixedpoint"
)

// SecondsPerSimHour is how many real seconds of wall-clock time equal one
// in-game hour at GameSpeed.Speed1. Faster speeds divide this down via
// GameSpeed.Multiplier.
const SecondsPerSimHour = 1.0

var oneHour = fixedpoint.One

// Scheduler owns the engine's clock: tick count, calendar date, speed
// state, and the real-time accumulator.
type Scheduler struct {
	tick        archon.Tick
	accumulator fixedpoint.Fixed // in units of "hours owed", fractional

	speed  archon.GameSpeed
	paused bool

	year, month, day int32 // Gregorian, day/month 1-based

	bus *event.Bus
	log *slog.Logger

	onHour func(archon.Tick) error
}

// New creates a Scheduler starting at the given calendar date and tick 0,
// running (not paused), at Speed1.
func New(bus *event.Bus, log *slog.Logger, startYear, startMonth, startDay int32) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		speed: archon.Speed1,
		year:  startYear, month: startMonth, day: startDay,
		bus: bus, log: log,
	}
}

// Tick returns the current monotonic hour counter.
func (s *Scheduler) Tick() archon.Tick { return s.tick }

// Date returns the current Gregorian calendar date.
func (s *Scheduler) Date() (year, month, day int32) { return s.year, s.month, s.day }

// Speed returns the current game-speed setting.
func (s *Scheduler) Speed() archon.GameSpeed { return s.speed }

// Paused reports whether the clock is currently paused.
func (s *Scheduler) Paused() bool { return s.paused }

// Accumulator exposes the raw fractional-hours-owed value, saved verbatim
// (spec §4.4 "Determinism").
func (s *Scheduler) Accumulator() fixedpoint.Fixed { return s.accumulator }

// SetSpeed changes the running speed. Idempotent: setting the same speed
// twice is a no-op that still emits no event the second time.
func (s *Scheduler) SetSpeed(speed archon.GameSpeed) {
	if speed == s.speed {
		return
	}
	old := s.speed
	s.speed = speed
	if s.bus != nil {
		event.Emit(s.bus, event.GameSpeedChanged{Old: old, New: speed})
	}
}

// SetPaused pauses or resumes the clock. Idempotent. Pausing preserves the
// accumulator (spec §4.4): no special handling is needed here since Advance
// simply isn't called with effect while paused.
func (s *Scheduler) SetPaused(paused bool) {
	if paused == s.paused {
		return
	}
	s.paused = paused
}

// Restore overwrites every piece of clock state from a loaded save, per
// spec §4.4's "Determinism: ... restored verbatim; no wall-clock state
// crosses the save boundary". If the restored date and tick disagree about
// the number of elapsed hours, the date is reconstructed from tick rather
// than trusted, and a warning is logged (spec §4.4 "Failure semantics").
func (s *Scheduler) Restore(tick archon.Tick, accumulator fixedpoint.Fixed, speed archon.GameSpeed, paused bool, year, month, day int32) {
	s.tick = tick
	s.accumulator = accumulator
	s.speed = speed
	s.paused = paused
	s.year, s.month, s.day = year, month, day

	reconstructedYear, reconstructedMonth, reconstructedDay := dateFromTick(tick)
	if reconstructedYear != year || reconstructedMonth != month || reconstructedDay != day {
		s.log.Warn("loaded save has an inconsistent date/tick relationship; reconstructing date from tick",
			"subsystem", "timesys",
			"saved_date", dateString(year, month, day),
			"reconstructed_date", dateString(reconstructedYear, reconstructedMonth, reconstructedDay),
			"tick", tick,
		)
		s.year, s.month, s.day = reconstructedYear, reconstructedMonth, reconstructedDay
	}
}

func dateString(y, m, d int32) string {
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// epochYear is the calendar date assigned to tick 0 when reconstructing a
// date purely from the tick count (no other anchor is available without
// knowing the scenario's configured start date, so this is a last-resort
// fallback rather than the normal path).
const epochYear, epochMonth, epochDay = 1, 1, 1

func dateFromTick(tick archon.Tick) (year, month, day int32) {
	totalDays := int64(tick) / 24
	y, m, d := int32(epochYear), int32(epochMonth), int32(epochDay)
	for totalDays > 0 {
		dim := daysInMonth(y, m)
		if totalDays < int64(dim) {
			d += int32(totalDays)
			totalDays = 0
		} else {
			totalDays -= int64(dim)
			m++
			if m > 12 {
				m = 1
				y++
			}
		}
	}
	return y, m, d
}

func isLeapYear(y int32) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func daysInMonth(y, m int32) int32 {
	switch m {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(y) {
			return 29
		}
		return 28
	default:
		return 30
	}
}

// SetHourCallback installs the function called once per consumed in-game
// hour, before that hour's HourElapsed event is emitted. This is how the
// command bus gets a chance to execute every command scheduled for the new
// tick ahead of any listener observing it (spec §5: "command.Execute
// happens before any emitted event"). A callback error aborts Advance
// immediately, matching command.Bus.ProcessTick's own "execution failure
// is fatal" contract.
func (s *Scheduler) SetHourCallback(fn func(archon.Tick) error) {
	s.onHour = fn
}

// Advance adds realDeltaSeconds of wall-clock time (scaled by the current
// speed) to the accumulator and consumes as many whole in-game hours as
// that buys, firing the hour/day/month/year layers in order for each one
// (spec §4.4). A no-op while paused or at Speed paused-equivalent.
func (s *Scheduler) Advance(realDeltaSeconds float64) error {
	if s.paused || s.speed == archon.Paused {
		return nil
	}
	hoursPerSecond := fixedpoint.FromFloat64(float64(s.speed.Multiplier()) / SecondsPerSimHour)
	delta := fixedpoint.FromFloat64(realDeltaSeconds).Mul(hoursPerSecond)
	s.accumulator = s.accumulator.Add(delta)

	for s.accumulator.Cmp(oneHour) >= 0 {
		s.accumulator = s.accumulator.Sub(oneHour)
		if err := s.consumeHour(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) consumeHour() error {
	s.tick++
	if s.onHour != nil {
		if err := s.onHour(s.tick); err != nil {
			return err
		}
	}
	if s.bus != nil {
		event.Emit(s.bus, event.HourElapsed{Tick: s.tick})
	}

	if s.tick%24 != 0 {
		return nil
	}
	s.advanceCalendarDay()
	return nil
}

func (s *Scheduler) advanceCalendarDay() {
	newMonth := false
	newYear := false

	s.day++
	if s.day > daysInMonth(s.year, s.month) {
		s.day = 1
		s.month++
		newMonth = true
		if s.month > 12 {
			s.month = 1
			s.year++
			newYear = true
		}
	}

	if s.bus != nil {
		event.Emit(s.bus, event.DayElapsed{Tick: s.tick, Day: s.day})
		if newMonth {
			event.Emit(s.bus, event.MonthElapsed{Tick: s.tick, Month: s.month})
		}
		if newYear {
			event.Emit(s.bus, event.YearElapsed{Tick: s.tick, Year: s.year})
		}
	}
}
