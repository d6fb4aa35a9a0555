package border

import "github.com/forgottenhistory/archon-engine"

// PairKey canonically identifies an unordered pair of adjacent provinces,
// mirroring diplomacy.PairKey's packing scheme but over ProvinceId instead
// of CountryId, since border chains are keyed by province pair rather than
// country pair.
type PairKey uint32

// MakePairKey packs a and b into a canonical PairKey, ordering the smaller
// id first so (a,b) and (b,a) produce the same key.
func MakePairKey(a, b archon.ProvinceId) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey(uint32(a)<<16 | uint32(b))
}

// Unpack returns the two province ids composing key, smaller first.
func (k PairKey) Unpack() (a, b archon.ProvinceId) {
	return archon.ProvinceId(k >> 16), archon.ProvinceId(k & 0xFFFF)
}
