package bootstrap

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/forgottenhistory/archon-engine/loader/kv"
)

// readKVFile reads and parses path, returning (nil, false) and a log line
// when the file is missing or malformed — the "optional per-file" error
// propagation policy spec §5 describes for non-required data, as opposed
// to a required phase's all-or-nothing rollback.
func readKVFile(log *slog.Logger, path string) ([]kv.Pair, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("bootstrap: optional data file unavailable, skipping", "subsystem", "core_data_loading", "path", path, "error", err)
		return nil, false
	}
	pairs, err := kv.Parse(string(data))
	if err != nil {
		log.Warn("bootstrap: malformed data file, skipping", "subsystem", "core_data_loading", "path", path, "error", err)
		return nil, false
	}
	return pairs, true
}

// scalarOf is a convenience wrapper over kv.Get for a block's string field.
func scalarOf(pairs []kv.Pair, key string) (string, bool) {
	v, ok := kv.Get(pairs, key)
	if !ok {
		return "", false
	}
	return v.Scalar, true
}

func intOf(pairs []kv.Pair, key string, fallback int64) int64 {
	s, ok := scalarOf(pairs, key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func boolOf(pairs []kv.Pair, key string, fallback bool) bool {
	s, ok := scalarOf(pairs, key)
	if !ok {
		return fallback
	}
	return kv.Bool(s)
}

// hashTag folds a three-letter country tag into the uint16 TagHash field
// country.Hot stores, using stdlib hash/fnv's 32-bit FNV-1a (FNV-1a is
// already the engine's checksum algorithm of choice, per save/format.go's
// fnv1a32) folded down to 16 bits, rather than reaching for a new
// dependency to hash an always-three-character string.
func hashTag(tag string) uint16 {
	h := fnv.New32a()
	h.Write([]byte(tag))
	sum := h.Sum32()
	return uint16(sum ^ (sum >> 16))
}

// leadingDefinitionId parses the numeric prefix of a Paradox-style history
// filename, e.g. "1 - Stockholm.txt" -> 1. Returns false if the filename
// does not start with digits, so non-matching files are skipped rather
// than aborting the whole directory scan.
func leadingDefinitionId(filename string) (uint32, bool) {
	i := 0
	for i < len(filename) && filename[i] >= '0' && filename[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(filename[:i], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// tagFromFilename strips a ".txt" suffix from a history/countries file
// name, e.g. "SWE.txt" -> "SWE".
func tagFromFilename(filename string) string {
	return strings.TrimSuffix(filename, ".txt")
}

// deriveMasterSeed folds the scenario's name and start date into a 64-bit
// RNG master seed via FNV-1a64, so that an unconfigured Config.MasterSeed
// still produces a fully reproducible scenario instead of an arbitrary one
// (spec §4.13 requires every stream's seed be deterministic and part of
// save state; this only governs the very first seed before any save
// exists).
func deriveMasterSeed(cfg Config) uint64 {
	if cfg.MasterSeed != 0 {
		return cfg.MasterSeed
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%04d-%02d-%02d", cfg.ScenarioName, cfg.ScenarioStart.Year, cfg.ScenarioStart.Month, cfg.ScenarioStart.Day)
	return h.Sum64()
}
