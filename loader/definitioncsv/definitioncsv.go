// Package definitioncsv implements the definition.csv loader (spec
// §4.7.2): the authoritative province roster. Every province that exists
// in the world comes from this file, even provinces no history file ever
// mentions.
//
// Grounded on the teacher's cmd/mapgen flag-and-file-driven CLI tooling
// style (plain stdlib os/bufio/strconv, no CSV library, since encoding/csv
// itself is already the idiomatic stdlib tool for this format and none of
// the example repos reach for a third-party CSV library instead).
package definitioncsv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/forgottenhistory/archon-engine"
)

// Row is one parsed definition.csv record: `ID;R;G;B;name[;x]`.
type Row struct {
	DefinitionId archon.DefinitionId
	R, G, B      uint8
	Name         string
	IsWater      bool
}

// PackRGB returns the 0x00RRGGBB packed color for this row, used to key
// the definitionId-by-color lookup.
func (r Row) PackRGB() uint32 {
	return uint32(r.R)<<16 | uint32(r.G)<<8 | uint32(r.B)
}

// Table is the loaded roster: every row plus lookup indices by id and by
// packed color.
type Table struct {
	Rows    []Row
	byId    map[archon.DefinitionId]int
	byColor map[uint32]int
}

// ById returns the row for a definition id.
func (t *Table) ById(id archon.DefinitionId) (Row, bool) {
	i, ok := t.byId[id]
	if !ok {
		return Row{}, false
	}
	return t.Rows[i], true
}

// ByColor returns the row whose packed RGB color matches.
func (t *Table) ByColor(packedRGB uint32) (Row, bool) {
	i, ok := t.byColor[packedRGB]
	if !ok {
		return Row{}, false
	}
	return t.Rows[i], true
}

// Load reads and parses a definition.csv file at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", archon.ErrFileIO, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse streams rows from r. The first line is auto-detected as a header
// (and skipped) when its first semicolon-delimited field fails to parse as
// a non-negative integer (spec §4.7.2 "numericity test").
func Parse(r io.Reader) (*Table, error) {
	t := &Table{byId: make(map[archon.DefinitionId]int), byColor: make(map[uint32]int)}
	scanner := bufio.NewScanner(r)
	first := true

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) < 5 {
			if first {
				first = false
				continue // malformed/short header line, skip
			}
			continue
		}
		if first {
			first = false
			if !isNumeric(fields[0]) {
				continue // genuine header row
			}
		}

		row, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: definition.csv: %v", archon.ErrParse, err)
		}
		idx := len(t.Rows)
		t.Rows = append(t.Rows, row)
		t.byId[row.DefinitionId] = idx
		t.byColor[row.PackRGB()] = idx
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", archon.ErrFileIO, err)
	}
	return t, nil
}

func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 32)
	return err == nil
}

func parseRow(fields []string) (Row, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 32)
	if err != nil {
		return Row{}, fmt.Errorf("bad id %q: %w", fields[0], err)
	}
	r, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 8)
	if err != nil {
		return Row{}, fmt.Errorf("bad R %q: %w", fields[1], err)
	}
	g, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 8)
	if err != nil {
		return Row{}, fmt.Errorf("bad G %q: %w", fields[2], err)
	}
	b, err := strconv.ParseUint(strings.TrimSpace(fields[3]), 10, 8)
	if err != nil {
		return Row{}, fmt.Errorf("bad B %q: %w", fields[3], err)
	}
	row := Row{
		DefinitionId: archon.DefinitionId(id),
		R:            uint8(r),
		G:            uint8(g),
		B:            uint8(b),
		Name:         strings.TrimSpace(fields[4]),
	}
	if len(fields) >= 6 && strings.EqualFold(strings.TrimSpace(fields[5]), "x") {
		row.IsWater = true
	}
	return row, nil
}
