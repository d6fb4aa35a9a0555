package registry

// Terrain is a static terrain-type record (spec §3.4). Province.Terrain
// hot-state bytes index into a TerrainRegistry by dense Id.
type Terrain struct {
	Key               string
	MovementCost      int16 // percent modifier, 100 = no change
	DefenceBonus      int16 // percent modifier
	AllowsAgriculture bool
}

// Building is a static building-type record available for construction in a
// province.
type Building struct {
	Key            string
	Cost           map[string]int64 // resource key -> base cost
	ConstructTicks uint32
	RequiresCoast  bool
}

// UnitType is a static military/civilian unit-type record referenced by the
// unit system (spec §3.10 supplement).
type UnitType struct {
	Key           string
	UpkeepPerHour int64 // in hundredths of a resource unit, avoids floats
	BaseStrength  int32
}

// Culture is a static culture record.
type Culture struct {
	Key             string
	DisplayName     string
	GraphicalGroup  string
}

// Religion is a static religion record.
type Religion struct {
	Key         string
	DisplayName string
	Group       string
}

// Resource is a static resource-type record (spec §3.10 supplement),
// providing the vocabulary for resource.Ledger entries.
type Resource struct {
	Key         string
	DisplayName string
	BaseValue   int64 // relative trade value, in hundredths
}

// Set bundles every static registry populated during loader bootstrap
// (spec §4.7's "static registries" phase). A GameState holds exactly one
// Set, built once at load and never mutated afterward.
type Set struct {
	Terrains  *Registry[Terrain]
	Buildings *Registry[Building]
	Units     *Registry[UnitType]
	Cultures  *Registry[Culture]
	Religions *Registry[Religion]
	Resources *Registry[Resource]
}

// NewSet creates an empty, still-mutable Set of registries.
func NewSet() *Set {
	return &Set{
		Terrains:  New[Terrain](),
		Buildings: New[Building](),
		Units:     New[UnitType](),
		Cultures:  New[Culture](),
		Religions: New[Religion](),
		Resources: New[Resource](),
	}
}

// Build freezes every registry in the set against further registration.
func (s *Set) Build() {
	s.Terrains.Build()
	s.Buildings.Build()
	s.Units.Build()
	s.Cultures.Build()
	s.Religions.Build()
	s.Resources.Build()
}
