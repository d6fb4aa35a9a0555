// Package command implements the command bus (spec §4.5): the sole mutator
// of simulation state during gameplay, driven by fixed-size binary command
// frames scheduled for a specific execution tick.
//
// Grounded on the teacher's state.Manager, whose Run(ctx) loop drains a
// channel of incoming state-changing messages and applies them one at a
// time in arrival order; Bus applies the same "one mutator, FIFO, in
// order" discipline but keyed by executionTick instead of channel arrival,
// since commands here are scheduled ahead of time rather than applied
// immediately.
package command

import (
	"log/slog"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/event"
)

// Kind identifies a command's wire type, the first byte convention used by
// Decode to dispatch to the right Deserialize.
type Kind uint8

const (
	KindChangeOwner Kind = iota + 1
)

// Command is the per-command contract (spec §4.5): validate against
// current simulation state, execute by mutating the back buffer and
// emitting events, and serialize to/from the fixed-size wire format.
type Command interface {
	Kind() Kind
	ExecutionTick() archon.Tick
	PlayerId() archon.PlayerId
	// Validate reports whether the command can legally execute against the
	// current simulation state. sim is passed as `any` so this package does
	// not import the root package's concrete GameState and create an
	// import cycle; concrete commands type-assert to whatever interface
	// they need.
	Validate(sim any) error
	// Execute applies the command's effect. Called only after Validate has
	// succeeded for this command on this tick.
	Execute(sim any) error
	// Serialize appends this command's wire bytes (header inclusive) to buf
	// and returns the result.
	Serialize(buf []byte) []byte
}

// Decoder parses a command's full wire body (everything after the leading
// Kind byte, including that command's own executionTick and playerID
// fields per spec §3.8) into a Command.
type Decoder func(body []byte) (Command, error)

// Bus is the FIFO command scheduler and dispatcher.
type Bus struct {
	byTick map[archon.Tick][]Command
	log    *slog.Logger
	events *event.Bus

	decoders map[Kind]Decoder

	// commandLog accumulates every successfully submitted command's wire
	// bytes in submission order, feeding save.Manager.Save's commandLog
	// parameter (spec §4.12) and, on replay, GameState.Replay.
	commandLog [][]byte
}

// New creates an empty Bus.
func New(log *slog.Logger) *Bus {
	if log == nil {
		log = slog.Default()
	}
	return &Bus{
		byTick:   make(map[archon.Tick][]Command),
		log:      log,
		decoders: make(map[Kind]Decoder),
	}
}

// SetEventBus wires bus as the destination for event.CommandRejected
// notifications. Optional: with no bus set, rejections are still logged,
// just never published as an event for UI subscribers.
func (b *Bus) SetEventBus(bus *event.Bus) {
	b.events = bus
}

// RegisterDecoder makes Decode able to reconstruct commands of kind k, used
// when replaying a command log from a save file.
func (b *Bus) RegisterDecoder(k Kind, d Decoder) {
	b.decoders[k] = d
}

// Submit enqueues cmd for execution on its ExecutionTick, preserving
// submission order within that tick (spec §4.5 "insertion order"), and
// appends its wire bytes to the replayable command log.
func (b *Bus) Submit(cmd Command) {
	t := cmd.ExecutionTick()
	b.byTick[t] = append(b.byTick[t], cmd)
	b.commandLog = append(b.commandLog, cmd.Serialize(nil))
}

// CommandLog returns every command submitted so far, in submission order,
// as wire-encoded frames ready for save.Manager.Save or GameState.Replay.
func (b *Bus) CommandLog() [][]byte {
	return b.commandLog
}

// ResetCommandLog clears the accumulated command log, used after a
// successful save to start accumulating the next save interval's log from
// empty rather than growing it unbounded for the life of the process.
func (b *Bus) ResetCommandLog() {
	b.commandLog = nil
}

// Pending returns the number of commands queued for tick.
func (b *Bus) Pending(tick archon.Tick) int {
	return len(b.byTick[tick])
}

// ProcessTick validates and executes every command scheduled for tick, in
// submission order, against sim. A validation failure discards that
// command and logs the reason (spec §4.5); an execution failure is treated
// as fatal and returned immediately so the caller can trigger a diagnostic
// save, per spec §4.5's "Failure semantics".
func (b *Bus) ProcessTick(tick archon.Tick, sim any) error {
	cmds := b.byTick[tick]
	if len(cmds) == 0 {
		return nil
	}
	delete(b.byTick, tick)

	for _, cmd := range cmds {
		if err := cmd.Validate(sim); err != nil {
			b.log.Warn("command rejected",
				"subsystem", "command_bus",
				"kind", cmd.Kind(),
				"tick", tick,
				"player", cmd.PlayerId(),
				"reason", err.Error(),
			)
			if b.events != nil {
				event.Emit(b.events, event.CommandRejected{Tick: tick, Kind: uint8(cmd.Kind()), Reason: err.Error()})
			}
			continue
		}
		if err := cmd.Execute(sim); err != nil {
			return err
		}
	}
	return nil
}

// Decode reconstructs a command from wire bytes, used to replay a save
// file's command log (spec §3.9). The leading byte is a Kind discriminator
// (a generalization over spec §3.8's single-command example, needed once a
// log can hold more than one command type); everything after it is that
// command's own fixed-size frame, unchanged from the spec's field layout.
func (b *Bus) Decode(wire []byte) (Command, error) {
	if len(wire) < 1 {
		return nil, archon.ErrSchema
	}
	dec, ok := b.decoders[Kind(wire[0])]
	if !ok {
		return nil, archon.ErrSchema
	}
	return dec(wire[1:])
}
