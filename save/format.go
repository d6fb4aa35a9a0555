// Package save implements the "HGSV" save/load format (spec §4.12): a
// section-ordered binary file with little-endian integers, length-prefixed
// UTF-8 strings, atomic tmp-then-rename writes, and an explicit
// version-migration hook point.
//
// Grounded on the teacher's binary-wire-framing idiom already established
// in the command package (fixed-layout frames, explicit byte order) and on
// rng's FNV-1a hashing for the determinism checksum, since no third-party
// checksum library appears anywhere in the example pack to ground a CRC
// library choice on instead.
package save

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/forgottenhistory/archon-engine"
)

// Magic is the fixed 4-byte file signature every save begins with.
var Magic = [4]byte{'H', 'G', 'S', 'V'}

// CurrentVersion is the save-format version this build writes. Any change
// to a section's wire layout or to this file's outer framing bumps it.
const CurrentVersion uint32 = 1

// EngineVersion is the game version string written into every save header
// (spec §4.12). Metadata.GameVersion defaults to this when left blank.
const EngineVersion = "0.1.0"

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeBytes(w io.Writer, b []byte) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readBytes(r io.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// fnv1a32 hashes data with the 32-bit FNV-1a algorithm, the same family
// rng.hashStreamName uses at 64 bits; save's checksum stays at 32 bits to
// match the spec's expectedChecksum:u32 wire field.
func fnv1a32(seed uint32, data []byte) uint32 {
	const prime32 = 16777619
	h := seed
	for _, b := range data {
		h ^= uint32(b)
		h *= prime32
	}
	return h
}

func binWrite(w io.Writer, v any) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func binRead(r io.Reader, v any) error {
	return binary.Read(r, binary.LittleEndian, v)
}

// checksumOffsetBasis is the FNV-1a 32-bit offset basis.
const checksumOffsetBasis uint32 = 2166136261

// computeChecksum hashes the serialized state sections (not the header,
// metadata or command log), used both when writing and when
// replaying the command log for a determinism check (spec §8 property 6).
func computeChecksum(data []byte) uint32 {
	return fnv1a32(checksumOffsetBasis, data)
}

func wrapFileErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("save.%s: %w: %v", op, archon.ErrFileIO, err)
}
