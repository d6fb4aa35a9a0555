package save

import "log/slog"

// Replayer re-executes a command log against a freshly loaded simulation
// and reports the resulting checksum, satisfied by the game-layer
// GameState hub (it alone knows how to re-run commands against live
// subsystem state).
type Replayer interface {
	Replay(commandLog [][]byte) (checksum uint32, err error)
}

// VerifyDeterminism replays result.CommandLog through replayer and
// compares the outcome to result.ExpectedChecksum (spec §4.12's
// determinism check / spec §8 property 6). A mismatch is logged and
// returned as false, but is never treated as fatal by the caller, matching
// the DeterminismMismatch taxonomy entry's "logged, not fatal" policy.
func VerifyDeterminism(log *slog.Logger, result LoadResult, replayer Replayer) (ok bool, err error) {
	if log == nil {
		log = slog.Default()
	}
	checksum, err := replayer.Replay(result.CommandLog)
	if err != nil {
		return false, err
	}
	if checksum != result.ExpectedChecksum {
		log.Warn("determinism mismatch on load",
			"subsystem", "core_data_loading",
			"expectedChecksum", result.ExpectedChecksum,
			"actualChecksum", checksum,
		)
		return false, nil
	}
	return true, nil
}
