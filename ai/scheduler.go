// Package ai implements the AI distance-tier scheduler (spec §4.14): a
// single BFS from every human-owned province assigns each AI country a
// tier, which determines how often that country's AI "thinks".
//
// Grounded on adjacency.Graph's BFS shape, generalized here to a
// multi-source frontier (seeded from every human province at once, the
// textbook multi-source-BFS trick for "nearest of several sources") using
// the same internal/container.Queue the teacher's stack/queue idiom was
// re-grounded into (see DESIGN.md's internal/container note).
package ai

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/adjacency"
	"github.com/forgottenhistory/archon-engine/internal/container"
)

// Tier is an AI country's distance-based thinking-frequency bucket (spec
// §4.14).
type Tier uint8

const (
	TierNear Tier = iota
	TierMedium
	TierFar
	TierVeryFar
)

// Hop-count thresholds from spec §4.14: Near ≤ 1, Medium ≤ 4, Far ≤ 8,
// VeryFar otherwise.
const (
	NearMaxHops   = 1
	MediumMaxHops = 4
	FarMaxHops    = 8
)

func tierForHops(hops int) Tier {
	switch {
	case hops <= NearMaxHops:
		return TierNear
	case hops <= MediumMaxHops:
		return TierMedium
	case hops <= FarMaxHops:
		return TierFar
	default:
		return TierVeryFar
	}
}

func (t Tier) String() string {
	switch t {
	case TierNear:
		return "Near"
	case TierMedium:
		return "Medium"
	case TierFar:
		return "Far"
	case TierVeryFar:
		return "VeryFar"
	default:
		return "Tier(?)"
	}
}

// ShouldThinkOnMonth reports whether a country at this tier thinks on the
// given 1-based month-of-game counter. Near thinks every month (spec
// §4.14's explicit example); Medium and Far are unspecified by spec, so
// this resolves them to every 3rd and every 6th month respectively,
// recorded as an Open Question resolution in DESIGN.md. VeryFar never
// thinks on a monthly tick — it thinks only on the yearly tick, via
// ShouldThinkOnYear.
func (t Tier) ShouldThinkOnMonth(monthsSinceEpoch int) bool {
	switch t {
	case TierNear:
		return true
	case TierMedium:
		return monthsSinceEpoch%3 == 0
	case TierFar:
		return monthsSinceEpoch%6 == 0
	default:
		return false
	}
}

// ShouldThinkOnYear reports whether a country at this tier thinks on the
// yearly tick. Only VeryFar is yearly-cadenced (spec §4.14's other
// explicit example); every other tier already thinks more often via
// ShouldThinkOnMonth.
func (t Tier) ShouldThinkOnYear() bool { return t == TierVeryFar }

// OwnerLookup resolves a province's current owner, satisfied by
// province.Store.Owner; declared locally to avoid an ai→province import
// cycle, the same pattern texture.OwnerLookup and mapmode.OwnerLookup use.
type OwnerLookup interface {
	Owner(archon.ProvinceId) archon.CountryId
}

// Scheduler computes and holds the current tier assignment for every AI
// country.
type Scheduler struct {
	graph  *adjacency.Graph
	owners OwnerLookup
	log    *slog.Logger
	tiers  map[archon.CountryId]Tier
}

// NewScheduler creates a Scheduler over graph, resolving province
// ownership through owners.
func NewScheduler(graph *adjacency.Graph, owners OwnerLookup, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{graph: graph, owners: owners, log: log, tiers: make(map[archon.CountryId]Tier)}
}

// Recompute runs the single multi-source BFS spec §4.14 specifies, seeded
// from humanProvinces, and reassigns every touched country's tier to the
// minimum hop count among its provinces. Called at world load and again on
// major border changes (e.g. a war's territorial outcome), never every
// tick — this is the engine's only expensive AI computation per spec
// §4.14's closing note. runID is a uuid.New() diagnostic correlation id
// (SPEC_FULL.md §2's domain-stack wiring for github.com/google/uuid),
// logged alongside the result so a slow recompute can be traced back to
// the triggering event.
func (s *Scheduler) Recompute(humanProvinces []archon.ProvinceId) uuid.UUID {
	runID := uuid.New()
	dist := s.multiSourceBFS(humanProvinces)

	countryDist := make(map[archon.CountryId]int)
	for p, d := range dist {
		c := s.owners.Owner(p)
		if c == archon.NoCountry {
			continue
		}
		if cur, ok := countryDist[c]; !ok || d < cur {
			countryDist[c] = d
		}
	}

	tiers := make(map[archon.CountryId]Tier, len(countryDist))
	for c, d := range countryDist {
		tiers[c] = tierForHops(d)
	}
	s.tiers = tiers

	s.log.Info("ai distance tiers recomputed",
		"subsystem", "core_ai",
		"runId", runID.String(),
		"countries", len(tiers),
		"humanProvinces", len(humanProvinces),
	)
	return runID
}

// multiSourceBFS computes, for every province reachable from any of
// sources, its minimum hop distance to the nearest source province.
func (s *Scheduler) multiSourceBFS(sources []archon.ProvinceId) map[archon.ProvinceId]int {
	dist := make(map[archon.ProvinceId]int, len(sources))
	var q container.Queue[archon.ProvinceId]
	for _, p := range sources {
		if _, seen := dist[p]; seen {
			continue
		}
		dist[p] = 0
		q.Push(p)
	}
	for q.Len() > 0 {
		cur, _ := q.Pop()
		for _, next := range s.graph.Neighbors(cur) {
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			q.Push(next)
		}
	}
	return dist
}

// TierOf returns the last-computed tier for country, defaulting to
// TierVeryFar if the country was never reached (e.g. an isolated island
// with no land route to any human province).
func (s *Scheduler) TierOf(country archon.CountryId) Tier {
	t, ok := s.tiers[country]
	if !ok {
		return TierVeryFar
	}
	return t
}
