package devstream

import "github.com/forgottenhistory/archon-engine/event"

// Attach subscribes to every emission of event type E on bus and rebroadcasts
// it to devstream clients under the given kind label. The returned
// unsubscribe func detaches the subscription, matching event.Subscribe's
// own contract.
func Attach[E any](bus *event.Bus, b *Broadcaster, kind string) (unsubscribe func()) {
	return event.Subscribe(bus, func(ev E) {
		b.Broadcast(kind, ev)
	})
}

// AttachAll wires the event kinds a dev-tools UI typically cares about
// (ownership changes, diplomacy, tick layers, save outcomes) in one call,
// returning a single combined unsubscribe func.
func AttachAll(bus *event.Bus, b *Broadcaster) (unsubscribe func()) {
	unsubs := []func(){
		Attach[event.ProvinceOwnerChanged](bus, b, "ProvinceOwnerChanged"),
		Attach[event.CountryCreated](bus, b, "CountryCreated"),
		Attach[event.CountryDestroyed](bus, b, "CountryDestroyed"),
		Attach[event.WarDeclared](bus, b, "WarDeclared"),
		Attach[event.PeaceMade](bus, b, "PeaceMade"),
		Attach[event.HourElapsed](bus, b, "HourElapsed"),
		Attach[event.DayElapsed](bus, b, "DayElapsed"),
		Attach[event.MonthElapsed](bus, b, "MonthElapsed"),
		Attach[event.YearElapsed](bus, b, "YearElapsed"),
		Attach[event.GameSpeedChanged](bus, b, "GameSpeedChanged"),
		Attach[event.CommandRejected](bus, b, "CommandRejected"),
		Attach[event.MapModeChanged](bus, b, "MapModeChanged"),
		Attach[event.SaveCompleted](bus, b, "SaveCompleted"),
		Attach[event.SaveFailed](bus, b, "SaveFailed"),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
