package save

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/forgottenhistory/archon-engine"
)

// SectionOrder is the fixed subsystem write/read order spec §4.12
// mandates: time, resources, provinces, modifiers, countries, units, then
// the two game-layer sections.
var SectionOrder = []string{
	"time",
	"resources",
	"provinces",
	"modifiers",
	"countries",
	"units",
	"player_state",
	"game_systems",
}

// Section is one subsystem's opaque save/restore contract. Sections never
// see each other's bytes; the outer file treats every section as a length-
// prefixed blob.
type Section interface {
	OnSave(w io.Writer) error
	OnLoad(r io.Reader) error
}

// Metadata is the save file's header: engine version, format version,
// display name, timing, and scenario identity (spec §4.12's header field
// list). ScenarioID uses uuid.New() exactly as the teacher's census client
// correlates requests with a generated id (SPEC_FULL.md §2's domain stack
// wiring for github.com/google/uuid).
type Metadata struct {
	// GameVersion is the engine/build version string (spec's "game version
	// string"). Defaults to EngineVersion when left blank.
	GameVersion string
	Version     uint32
	// DisplayName is the human-facing save name shown in a load menu (spec's
	// "display name" / "saveName"), distinct from ScenarioName which
	// identifies the scenario the save was started from.
	DisplayName  string
	TimestampUTC int64
	Tick         archon.Tick
	Speed        uint8
	ScenarioName string
	ScenarioID   uuid.UUID
}

// Migration transforms a prior version's raw section bytes into the
// current version's expected shape before OnLoad dispatch. Registered
// per-fromVersion; a save at CurrentVersion needs none.
type Migration func(sections map[string][]byte) (map[string][]byte, error)

// Manager owns the registered sections and any version migrations.
type Manager struct {
	sections   map[string]Section
	migrations map[uint32]Migration
	log        *slog.Logger
}

// NewManager creates an empty Manager. log receives structured lines for
// every save/load event, tagged "core_data_loading" per spec §7.
func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		sections:   make(map[string]Section),
		migrations: make(map[uint32]Migration),
		log:        log,
	}
}

// RegisterSection binds a Section implementation to one of SectionOrder's
// fixed names.
func (m *Manager) RegisterSection(name string, s Section) error {
	if !isKnownSection(name) {
		return fmt.Errorf("save: RegisterSection: %q is not one of SectionOrder", name)
	}
	m.sections[name] = s
	return nil
}

// RegisterMigration installs the upgrade hook applied to a save written at
// fromVersion before its sections are dispatched to OnLoad.
func (m *Manager) RegisterMigration(fromVersion uint32, fn Migration) {
	m.migrations[fromVersion] = fn
}

func isKnownSection(name string) bool {
	for _, n := range SectionOrder {
		if n == name {
			return true
		}
	}
	return false
}

// Save captures meta and every registered section, in SectionOrder, plus
// commandLog (each entry a command.Bus-serialized frame), and writes the
// result atomically to path: a ".tmp" sibling is written and fsynced, then
// renamed over path (spec §4.12 write path steps 3-4).
func (m *Manager) Save(path string, meta Metadata, commandLog [][]byte) error {
	meta.Version = CurrentVersion
	if meta.GameVersion == "" {
		meta.GameVersion = EngineVersion
	}

	sectionsBuf, present, err := m.serializeSections()
	if err != nil {
		return fmt.Errorf("save.Save: %w", err)
	}
	// The checksum covers only the serialized sections, not the header or
	// command log: the header carries a fresh timestamp and scenario id on
	// every save, and the command log is an input to replay rather than
	// its output, so neither belongs in a value meant to verify that
	// replaying commandLog reproduces this exact simulation state.
	checksum := computeChecksum(sectionsBuf)

	var buf bytes.Buffer
	if err := writeHeader(&buf, meta); err != nil {
		return wrapFileErr("Save", err)
	}
	if err := binWrite(&buf, uint32(len(present))); err != nil {
		return wrapFileErr("Save", err)
	}
	if _, err := buf.Write(sectionsBuf); err != nil {
		return wrapFileErr("Save", err)
	}

	if err := binWrite(&buf, uint32(len(commandLog))); err != nil {
		return wrapFileErr("Save", err)
	}
	for _, cmd := range commandLog {
		if err := writeBytes(&buf, cmd); err != nil {
			return wrapFileErr("Save", err)
		}
	}

	if err := binWrite(&buf, checksum); err != nil {
		return wrapFileErr("Save", err)
	}

	if err := atomicWrite(path, buf.Bytes()); err != nil {
		return wrapFileErr("Save", err)
	}
	m.log.Info("save written", "subsystem", "core_data_loading", "path", path, "sections", len(present), "commands", len(commandLog))
	return nil
}

// serializeSections runs OnSave for every registered section in
// SectionOrder and returns the concatenated name+length-prefixed-data
// wire bytes alongside the list of section names actually present.
func (m *Manager) serializeSections() ([]byte, []string, error) {
	var present []string
	for _, name := range SectionOrder {
		if _, ok := m.sections[name]; ok {
			present = append(present, name)
		}
	}

	var buf bytes.Buffer
	for _, name := range present {
		var sectionBuf bytes.Buffer
		if err := m.sections[name].OnSave(&sectionBuf); err != nil {
			return nil, nil, fmt.Errorf("section %q: %w", name, err)
		}
		if err := writeString(&buf, name); err != nil {
			return nil, nil, err
		}
		if err := writeBytes(&buf, sectionBuf.Bytes()); err != nil {
			return nil, nil, err
		}
	}
	return buf.Bytes(), present, nil
}

// ChecksumSections re-serializes every registered section's current state
// and hashes it exactly as Save does, letting a save.Replayer reproduce
// the same checksum after replaying a command log (spec §8 property 6's
// determinism check).
func (m *Manager) ChecksumSections() (uint32, error) {
	sectionsBuf, _, err := m.serializeSections()
	if err != nil {
		return 0, fmt.Errorf("save.ChecksumSections: %w", err)
	}
	return computeChecksum(sectionsBuf), nil
}

// writeHeader writes the header fields in spec §4.12's order: magic, game
// version string, format version, display name, timestamp, game tick,
// game speed, scenario name, scenario id.
func writeHeader(w io.Writer, meta Metadata) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	if err := writeString(w, meta.GameVersion); err != nil {
		return err
	}
	if err := binWrite(w, meta.Version); err != nil {
		return err
	}
	if err := writeString(w, meta.DisplayName); err != nil {
		return err
	}
	for _, v := range []any{meta.TimestampUTC, uint64(meta.Tick), meta.Speed} {
		if err := binWrite(w, v); err != nil {
			return err
		}
	}
	if err := writeString(w, meta.ScenarioName); err != nil {
		return err
	}
	idBytes, err := meta.ScenarioID.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(idBytes)
	return err
}

// LoadResult holds everything a Load call recovers from a save file before
// determinism verification and post-load callbacks run.
type LoadResult struct {
	Metadata         Metadata
	CommandLog       [][]byte
	ExpectedChecksum uint32
	VersionMismatch  bool
}

// Load reads path, verifies the magic and version (warn-and-continue on a
// mismatch with no registered migration, per spec §4.12 read step 1),
// applies any registered migration, and dispatches each section's bytes to
// its registered OnLoad in file order.
func (m *Manager) Load(path string) (LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadResult{}, wrapFileErr("Load", err)
	}
	r := bytes.NewReader(data)

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return LoadResult{}, wrapFileErr("Load", err)
	}
	if magic != Magic {
		return LoadResult{}, fmt.Errorf("save.Load: %w: bad magic %q", archon.ErrParse, magic)
	}

	var meta Metadata
	meta.GameVersion, err = readString(r)
	if err != nil {
		return LoadResult{}, wrapFileErr("Load", err)
	}
	if err := binRead(r, &meta.Version); err != nil {
		return LoadResult{}, wrapFileErr("Load", err)
	}
	meta.DisplayName, err = readString(r)
	if err != nil {
		return LoadResult{}, wrapFileErr("Load", err)
	}
	if err := binRead(r, &meta.TimestampUTC); err != nil {
		return LoadResult{}, wrapFileErr("Load", err)
	}
	var tick uint64
	if err := binRead(r, &tick); err != nil {
		return LoadResult{}, wrapFileErr("Load", err)
	}
	meta.Tick = archon.Tick(tick)
	if err := binRead(r, &meta.Speed); err != nil {
		return LoadResult{}, wrapFileErr("Load", err)
	}
	meta.ScenarioName, err = readString(r)
	if err != nil {
		return LoadResult{}, wrapFileErr("Load", err)
	}
	var idBytes [16]byte
	if _, err := io.ReadFull(r, idBytes[:]); err != nil {
		return LoadResult{}, wrapFileErr("Load", err)
	}
	if err := meta.ScenarioID.UnmarshalBinary(idBytes[:]); err != nil {
		return LoadResult{}, fmt.Errorf("save.Load: %w: bad scenario id: %v", archon.ErrParse, err)
	}

	versionMismatch := meta.Version != CurrentVersion
	if versionMismatch {
		m.log.Warn("save version mismatch", "subsystem", "core_data_loading", "fileVersion", meta.Version, "currentVersion", CurrentVersion)
	}

	var sectionCount uint32
	if err := binRead(r, &sectionCount); err != nil {
		return LoadResult{}, wrapFileErr("Load", err)
	}
	rawSections := make(map[string][]byte, sectionCount)
	order := make([]string, 0, sectionCount)
	for i := uint32(0); i < sectionCount; i++ {
		name, err := readString(r)
		if err != nil {
			return LoadResult{}, wrapFileErr("Load", err)
		}
		data, err := readBytes(r)
		if err != nil {
			return LoadResult{}, wrapFileErr("Load", err)
		}
		rawSections[name] = data
		order = append(order, name)
	}

	if versionMismatch {
		if migrate, ok := m.migrations[meta.Version]; ok {
			rawSections, err = migrate(rawSections)
			if err != nil {
				return LoadResult{}, fmt.Errorf("save.Load: migration from v%d failed: %w", meta.Version, err)
			}
		} else {
			m.log.Warn("no migration registered, attempting load as-is", "subsystem", "core_data_loading", "fileVersion", meta.Version)
		}
	}

	for _, name := range order {
		section, ok := m.sections[name]
		if !ok {
			continue // unknown/unregistered section: ignore rather than fail the whole load
		}
		if err := section.OnLoad(bytes.NewReader(rawSections[name])); err != nil {
			return LoadResult{}, fmt.Errorf("save.Load: section %q: %w", name, err)
		}
	}

	var commandCount uint32
	if err := binRead(r, &commandCount); err != nil {
		return LoadResult{}, wrapFileErr("Load", err)
	}
	commandLog := make([][]byte, commandCount)
	for i := range commandLog {
		cmd, err := readBytes(r)
		if err != nil {
			return LoadResult{}, wrapFileErr("Load", err)
		}
		commandLog[i] = cmd
	}

	var expectedChecksum uint32
	if err := binRead(r, &expectedChecksum); err != nil {
		return LoadResult{}, wrapFileErr("Load", err)
	}

	return LoadResult{
		Metadata:         meta,
		CommandLog:       commandLog,
		ExpectedChecksum: expectedChecksum,
		VersionMismatch:  versionMismatch,
	}, nil
}

// atomicWrite writes data to a ".tmp" sibling of path, fsyncs it, then
// renames it over path (spec §4.12 write step 4).
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
