package texture

import (
	"testing"

	"github.com/forgottenhistory/archon-engine"
)

func TestEstimatedBytesUnderBudgetForReferenceMapSize(t *testing.T) {
	m := NewManager(5632, 2048, 4)
	const budget = 100 * 1024 * 1024
	if got := m.EstimatedBytes(); got > budget {
		t.Fatalf("got %d bytes, want <= %d (spec §4.8 memory target)", got, budget)
	}
}

func TestLoadProvinceIDRejectsWrongPixelCount(t *testing.T) {
	m := NewManager(4, 4, 0)
	if err := m.LoadProvinceID(make([]archon.ProvinceId, 3)); err == nil {
		t.Fatal("expected an error for a mismatched pixel count")
	}
}

func TestProvinceIDAtOutOfBoundsReturnsNoProvince(t *testing.T) {
	m := NewManager(2, 2, 0)
	if got := m.ProvinceIDAt(-1, 0); got != archon.NoProvince {
		t.Fatalf("got %v, want NoProvince", got)
	}
}

type fakeOwners map[archon.ProvinceId]archon.CountryId

func (f fakeOwners) Owner(p archon.ProvinceId) archon.CountryId { return f[p] }

func TestDispatchOwnerTexturePopulatesFromLookup(t *testing.T) {
	m := NewManager(2, 1, 0)
	m.LoadProvinceID([]archon.ProvinceId{1, 2})
	m.DispatchOwnerTexture(fakeOwners{1: 5, 2: 7})

	if got := m.ProvinceOwnerAt(0, 0); got != 5 {
		t.Fatalf("got owner %v at (0,0), want 5", got)
	}
	if got := m.ProvinceOwnerAt(1, 0); got != 7 {
		t.Fatalf("got owner %v at (1,0), want 7", got)
	}
}

func TestDispatchBorderDetectionMarksOwnerAndProvinceBoundaries(t *testing.T) {
	// 3x1 strip: provinces 1,2,3 all different, owners 5,5,7.
	m := NewManager(3, 1, 0)
	m.LoadProvinceID([]archon.ProvinceId{1, 2, 3})
	m.DispatchOwnerTexture(fakeOwners{1: 5, 2: 5, 3: 7})
	m.DispatchBorderDetection()

	country, province := m.BorderMaskAt(0, 0)
	if province == 0 {
		t.Fatal("expected province border at (0,0): neighbor has a different province id, same owner")
	}
	if country != 0 {
		t.Fatal("did not expect country border at (0,0): same owner as neighbor")
	}

	country2, _ := m.BorderMaskAt(1, 0)
	if country2 == 0 {
		t.Fatal("expected country border at (1,0): adjacent to a different owner")
	}
}

func TestBindTexturesToMaterialWritesEveryWellKnownSlot(t *testing.T) {
	m := NewManager(2, 2, 1)
	seen := map[string]Slot{}
	m.BindTexturesToMaterial(materialFunc(func(name string, slot Slot) {
		seen[name] = slot
	}))
	if len(seen) != int(slotCount) {
		t.Fatalf("got %d bound properties, want %d", len(seen), slotCount)
	}
}

type materialFunc func(propertyName string, slot Slot)

func (f materialFunc) SetTexture(propertyName string, slot Slot) { f(propertyName, slot) }
