// Package mapmode implements the map-mode framework (spec §4.11): a named
// texture-population strategy selected by a shader-visible integer slot,
// with dirty-flag tracking driven by the event bus so steady-state frames
// only re-upload changed provinces.
//
// Grounded on the teacher's event-subscription idiom (event.Subscribe
// callbacks wired at startup, matching how the teacher's own census/honu
// clients register long-lived callbacks once and let the event bus drive
// them) combined with the province double-buffer's "mutate once, read
// many" discipline for the dirty-province set.
package mapmode

import (
	"fmt"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/event"
)

// Handler is one map mode's texture-population strategy. OnEnter/OnExit
// fire on activation/deactivation; OnTextureUpdateRequested fires once per
// frame with the set of provinces that changed since the last call (spec
// §4.11's "dirty-tracking" contract) — empty on a frame where nothing
// changed.
type Handler interface {
	OnEnter()
	OnExit()
	OnTextureUpdateRequested(dirty []archon.ProvinceId)
}

// Framework owns every registered map-mode slot, the active slot, and the
// accumulated per-province dirty set.
type Framework struct {
	bus      *event.Bus
	handlers map[int]Handler
	names    map[int]string
	active   int
	dirty    map[archon.ProvinceId]bool
}

// New creates an empty Framework subscribed to bus's ProvinceOwnerChanged
// events, which is how the Political default mode (and any game-defined
// mode) learns which provinces need a texture refresh.
func New(bus *event.Bus) *Framework {
	f := &Framework{
		bus:      bus,
		handlers: make(map[int]Handler),
		names:    make(map[int]string),
		dirty:    make(map[archon.ProvinceId]bool),
	}
	event.Subscribe(bus, func(ev event.ProvinceOwnerChanged) {
		f.dirty[ev.Province] = true
	})
	return f
}

// Register assigns handler to slot, rejecting a slot that is already
// occupied (recorded in DESIGN.md as an Open Question resolution: a
// duplicate registration is a load-time programmer error, not a silent
// overwrite).
func (f *Framework) Register(slot int, name string, handler Handler) error {
	if _, exists := f.handlers[slot]; exists {
		return fmt.Errorf("mapmode: slot %d already registered to %q", slot, f.names[slot])
	}
	f.handlers[slot] = handler
	f.names[slot] = name
	return nil
}

// SetMode activates slot, calling the previous handler's OnExit and the
// new handler's OnEnter (spec §6's `set_mode(index)`).
func (f *Framework) SetMode(slot int) error {
	h, ok := f.handlers[slot]
	if !ok {
		return fmt.Errorf("mapmode: no handler registered for slot %d", slot)
	}
	if prev, ok := f.handlers[f.active]; ok && f.active != slot {
		prev.OnExit()
	}
	f.active = slot
	h.OnEnter()
	return nil
}

// ActiveSlot returns the currently active map-mode slot.
func (f *Framework) ActiveSlot() int { return f.active }

// NameOf returns the registered name for slot, if any.
func (f *Framework) NameOf(slot int) (string, bool) {
	name, ok := f.names[slot]
	return name, ok
}

// Update delivers the accumulated dirty-province set to the active
// handler's OnTextureUpdateRequested and clears it, matching §4.11's
// "full texture regeneration is forbidden in steady state" invariant: a
// frame with nothing dirty calls through with an empty slice rather than
// the whole province list.
func (f *Framework) Update() {
	h, ok := f.handlers[f.active]
	if !ok {
		return
	}
	dirty := make([]archon.ProvinceId, 0, len(f.dirty))
	for p := range f.dirty {
		dirty = append(dirty, p)
	}
	for p := range f.dirty {
		delete(f.dirty, p)
	}
	h.OnTextureUpdateRequested(dirty)
}
