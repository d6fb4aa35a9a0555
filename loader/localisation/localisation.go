// Package localisation implements the Paradox-style localisation loader
// (SPEC_FULL.md §4.15): an `l_<lang>` preamble followed by `KEY:0 "Value"`
// lines, parsed per language into a flat key->string table.
//
// Grounded on the same hand-rolled-tokenizer family as loader/kv, since
// the line format (bareword preamble, `KEY:0 "quoted value"`) is simple
// enough that reusing kv's full block tokenizer would be more
// indirection than the format warrants; this loader instead does a
// direct line scan in the same style cmd/mapgen uses for its own
// lightweight text processing.
package localisation

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/forgottenhistory/archon-engine"
)

// Table holds every loaded language's key->value strings.
type Table struct {
	langs map[string]map[string]string
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{langs: make(map[string]map[string]string)}
}

// Get looks up key under lang.
func (t *Table) Get(lang, key string) (string, bool) {
	m, ok := t.langs[lang]
	if !ok {
		return "", false
	}
	v, ok := m[key]
	return v, ok
}

// LoadFile parses one localisation/<lang>/*.yml file and merges its
// entries into the table. A missing or malformed file is the caller's
// concern to skip (spec §4.15 "optional phase"); LoadFile itself still
// returns an error so the caller can choose to log-and-continue.
func (t *Table) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", archon.ErrFileIO, err)
	}
	defer f.Close()
	return t.LoadReader(f)
}

// LoadReader parses a localisation stream into the table.
func (t *Table) LoadReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var lang string

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "l_") {
			lang = strings.TrimSuffix(strings.TrimPrefix(trimmed, "l_"), ":")
			if _, ok := t.langs[lang]; !ok {
				t.langs[lang] = make(map[string]string)
			}
			continue
		}
		if lang == "" {
			continue // no preamble seen yet; ignore stray content
		}
		key, value, ok := parseEntry(trimmed)
		if !ok {
			continue
		}
		t.langs[lang][key] = value
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", archon.ErrFileIO, err)
	}
	return nil
}

// parseEntry parses `KEY:0 "Value"` (the numeric suffix is an encoding
// version marker the engine does not interpret).
func parseEntry(line string) (key, value string, ok bool) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:colon])
	rest := strings.TrimSpace(line[colon+1:])

	// skip the numeric version marker up to the opening quote
	q := strings.IndexByte(rest, '"')
	if q < 0 {
		return "", "", false
	}
	rest = rest[q+1:]
	end := strings.LastIndexByte(rest, '"')
	if end < 0 {
		return "", "", false
	}
	return key, rest[:end], true
}

// Languages returns every language code with at least one loaded entry.
func (t *Table) Languages() []string {
	out := make([]string, 0, len(t.langs))
	for lang := range t.langs {
		out = append(out, lang)
	}
	return out
}
