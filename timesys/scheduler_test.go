package timesys

import (
	"fmt"
	"testing"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/event"
	"github.com/forgottenhistory/archon-engine/fixedpoint"
)

func TestAdvanceConsumesWholeHoursOnly(t *testing.T) {
	s := New(nil, nil, 1444, 11, 11)
	s.SetSpeed(archon.Speed1)
	s.SetPaused(false)

	_ = s.Advance(0.5)
	if s.Tick() != 0 {
		t.Fatalf("got tick=%d, want 0 before a full hour accumulates", s.Tick())
	}
	_ = s.Advance(0.5)
	if s.Tick() != 1 {
		t.Fatalf("got tick=%d, want 1 after a full hour accumulates", s.Tick())
	}
}

func TestPausedDoesNotAdvance(t *testing.T) {
	s := New(nil, nil, 1444, 11, 11)
	s.SetPaused(true)
	_ = s.Advance(100)
	if s.Tick() != 0 {
		t.Fatalf("got tick=%d, want 0 while paused", s.Tick())
	}
}

func TestDailyAndMonthlyRollover(t *testing.T) {
	bus := event.New(nil)
	var days, months, years int
	event.Subscribe(bus, func(e event.DayElapsed) { days++ })
	event.Subscribe(bus, func(e event.MonthElapsed) { months++ })
	event.Subscribe(bus, func(e event.YearElapsed) { years++ })

	s := New(bus, nil, 1443, 12, 31)
	s.SetSpeed(archon.Speed1)
	for i := 0; i < 24; i++ {
		_ = s.Advance(1)
		bus.ProcessEvents()
	}

	y, m, d := s.Date()
	if y != 1444 || m != 1 || d != 1 {
		t.Fatalf("got date=%04d-%02d-%02d, want 1444-01-01", y, m, d)
	}
	if days != 1 || months != 1 || years != 1 {
		t.Fatalf("got days=%d months=%d years=%d, want 1,1,1", days, months, years)
	}
}

func TestSetSpeedIsIdempotentAndEmitsOnce(t *testing.T) {
	bus := event.New(nil)
	var changes int
	event.Subscribe(bus, func(e event.GameSpeedChanged) { changes++ })

	s := New(bus, nil, 1444, 1, 1)
	s.SetSpeed(archon.Speed2)
	s.SetSpeed(archon.Speed2)
	bus.ProcessEvents()

	if changes != 1 {
		t.Fatalf("got %d GameSpeedChanged events, want exactly 1", changes)
	}
}

func TestHourCallbackRunsBeforeHourElapsedEvent(t *testing.T) {
	bus := event.New(nil)
	var order []string
	event.Subscribe(bus, func(e event.HourElapsed) { order = append(order, "event") })

	s := New(bus, nil, 1444, 1, 1)
	s.SetSpeed(archon.Speed1)
	s.SetHourCallback(func(tick archon.Tick) error {
		order = append(order, "callback")
		return nil
	})

	if err := s.Advance(1); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	bus.ProcessEvents()

	if len(order) != 2 || order[0] != "callback" || order[1] != "event" {
		t.Fatalf("got order=%v, want [callback event]", order)
	}
}

func TestHourCallbackErrorAbortsAdvance(t *testing.T) {
	s := New(nil, nil, 1444, 1, 1)
	s.SetSpeed(archon.Speed1)
	wantErr := fmt.Errorf("boom")
	s.SetHourCallback(func(tick archon.Tick) error { return wantErr })

	if err := s.Advance(1); err != wantErr {
		t.Fatalf("got err=%v, want %v", err, wantErr)
	}
	if s.Tick() != 1 {
		t.Fatalf("got tick=%d, want 1 (tick increments before the callback runs)", s.Tick())
	}
}

func TestRestoreReconstructsInconsistentDate(t *testing.T) {
	s := New(nil, nil, 1, 1, 1)
	// tick=48 implies day 0001-01-03 from epoch, but we supply a wildly
	// different saved date to trigger reconstruction.
	s.Restore(48, fixedpoint.Zero, archon.Speed1, false, 9999, 9, 9)
	y, m, d := s.Date()
	if y == 9999 {
		t.Fatalf("got date=%04d-%02d-%02d, want the inconsistent saved date to be discarded", y, m, d)
	}
}
