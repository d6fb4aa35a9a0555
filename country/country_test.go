package country

import (
	"testing"
	"unsafe"

	"github.com/forgottenhistory/archon-engine"
)

func TestHotStructIsExactlyEightBytes(t *testing.T) {
	if got := unsafe.Sizeof(Hot{}); got != 8 {
		t.Fatalf("got sizeof(Hot)=%d, want 8", got)
	}
}

func TestMarshalBinaryUsesSpecWireOrder(t *testing.T) {
	h := Hot{TagHash: 0x1234, ColorRGB: 0x00AABBCC, GraphicalCultureId: 7, Flags: 1}
	buf := h.MarshalBinary()
	want := []byte{0x12, 0x34, 0x00, 0xAA, 0xBB, 0xCC, 7, 1}
	if len(buf) != len(want) {
		t.Fatalf("got length %d, want %d", len(buf), len(want))
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d: got 0x%02x, want 0x%02x", i, buf[i], want[i])
		}
	}
}

func TestDefineRejectsDuplicateTag(t *testing.T) {
	s := NewStore(3, nil)
	if err := s.Define(1, "SWE", Hot{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Define(2, "SWE", Hot{}); err == nil {
		t.Fatal("expected an error registering a duplicate tag")
	}
}

func TestTagIdBijection(t *testing.T) {
	s := NewStore(3, nil)
	s.Define(1, "ENG", Hot{})

	id, ok := s.IdOf("ENG")
	if !ok || id != 1 {
		t.Fatalf("got id=%d ok=%v, want 1,true", id, ok)
	}
	if got := s.TagOf(1); got != "ENG" {
		t.Fatalf("got %q, want ENG", got)
	}
}

func TestColdCacheEvictsOldest(t *testing.T) {
	loads := 0
	s := NewStore(coldCacheSize+2, func(id archon.CountryId) *Cold {
		loads++
		return &Cold{DisplayName: "x"}
	})
	for i := 1; i <= coldCacheSize+1; i++ {
		s.Cold(archon.CountryId(i))
	}
	if loads != coldCacheSize+1 {
		t.Fatalf("got %d loads populating the cache, want %d", loads, coldCacheSize+1)
	}

	// The first entry should have been evicted; re-fetching it must load again.
	s.Cold(archon.CountryId(1))
	if loads != coldCacheSize+2 {
		t.Fatalf("got %d loads, want a reload of the evicted first entry", loads)
	}
}
