package province

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

func TestDefineAndLookupByDefinition(t *testing.T) {
	s := NewStore(3)
	s.Define(1, 1299, Hot{OwnerID: 2, Terrain: 1})
	s.Define(2, 1300, Hot{Flags: FlagOcean})

	id, ok := s.ByDefinition(1299)
	if !ok || id != 1 {
		t.Fatalf("got id=%d ok=%v, want 1,true", id, ok)
	}
	if s.DefinitionOf(2) != 1300 {
		t.Fatalf("got %d, want 1300", s.DefinitionOf(2))
	}
}

func TestSetOwnerRejectsOceanProvince(t *testing.T) {
	s := NewStore(2)
	s.Define(1, 1, Hot{Flags: FlagOcean})
	if err := s.SetOwner(1, 3, 3, 10); err == nil {
		t.Fatal("expected an error setting owner on an ocean province")
	}
}

func TestSetOwnerRejectsOutOfRangeOwner(t *testing.T) {
	s := NewStore(2)
	s.Define(1, 1, Hot{})
	if err := s.SetOwner(1, 99, 99, 5); err == nil {
		t.Fatal("expected an error for owner id out of range")
	}
}

func TestSetOwnerIsInvisibleUntilSwap(t *testing.T) {
	s := NewStore(2)
	s.Define(1, 1, Hot{OwnerID: archon.NoCountry})

	if err := s.SetOwner(1, 5, 5, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Owner(1); got != archon.NoCountry {
		t.Fatalf("got owner=%d before SwapBuffers, want unchanged NoCountry", got)
	}

	s.SwapBuffers()
	if got := s.Owner(1); got != 5 {
		t.Fatalf("got owner=%d after SwapBuffers, want 5", got)
	}
}

func TestSwapBuffersRefreshesOwnerMirror(t *testing.T) {
	s := NewStore(2)
	s.Define(1, 1, Hot{OwnerID: 1})
	s.SetOwner(1, 2, 2, 10)
	s.SwapBuffers()
	if s.ownerFront[1] != 2 {
		t.Fatalf("got ownerFront=%d, want 2", s.ownerFront[1])
	}
}

func TestExistsDistinguishesDefinedFromAllocated(t *testing.T) {
	s := NewStore(3)
	s.Define(1, 100, Hot{})
	if !s.Exists(1) {
		t.Fatal("expected province 1 to exist after Define")
	}
	if s.Exists(2) {
		t.Fatal("expected province 2 to not exist: allocated but never Defined")
	}
	if s.Exists(99) {
		t.Fatal("expected an out-of-range id to not exist")
	}
}

func TestGetCountryProvinceCountTracksOwnershipChanges(t *testing.T) {
	s := NewStore(3)
	s.Define(1, 1, Hot{OwnerID: 5})
	s.Define(2, 2, Hot{OwnerID: 5})
	if got := s.GetCountryProvinceCount(5); got != 2 {
		t.Fatalf("got %d, want 2 after Define", got)
	}

	if err := s.SetOwner(1, 9, 9, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.GetCountryProvinceCount(5); got != 1 {
		t.Fatalf("got %d, want 1 after losing province 1", got)
	}
	if got := s.GetCountryProvinceCount(9); got != 1 {
		t.Fatalf("got %d, want 1 after gaining province 1", got)
	}
}

func TestSyncBuffersAfterLoadRecomputesCountryCounts(t *testing.T) {
	s := NewStore(3)
	s.Define(1, 1, Hot{OwnerID: 5})
	s.Define(2, 2, Hot{OwnerID: 5})
	s.Mutate(1, func(h *Hot) { h.OwnerID = 7 })
	s.SyncBuffersAfterLoad()
	if got := s.GetCountryProvinceCount(5); got != 1 {
		t.Fatalf("got %d, want 1 after a direct Mutate bypassing SetOwner", got)
	}
	if got := s.GetCountryProvinceCount(7); got != 1 {
		t.Fatalf("got %d, want 1 after a direct Mutate bypassing SetOwner", got)
	}
}

func TestGetCountryProvincesYieldsOnlyOwnedProvinces(t *testing.T) {
	s := NewStore(3)
	s.Define(1, 1, Hot{OwnerID: 5})
	s.Define(2, 2, Hot{OwnerID: 9})

	var got []archon.ProvinceId
	s.GetCountryProvinces(5, func(id archon.ProvinceId) bool {
		got = append(got, id)
		return true
	})
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("got %v, want [1]", got)
	}
}

func TestColdIsLazilyAllocatedAndStable(t *testing.T) {
	s := NewStore(2)
	s.Define(1, 1, Hot{})
	c1 := s.Cold(1)
	c1.Name = "Test"
	c2 := s.Cold(1)
	if c2.Name != "Test" {
		t.Fatalf("got %q, want the same Cold record on repeated access", c2.Name)
	}
}
