package bootstrap

// DefaultPhases returns the fixed bootstrap order spec §4.7 specifies:
// static registries -> bitmap + definition -> province registry ->
// country registry -> scenario history -> adjacency scan -> map textures
// -> event "everything ready". Percent ranges are chosen by relative
// expected cost (bitmap decode and the per-pixel adjacency scan are the
// two heaviest phases on a large map).
func DefaultPhases() []Phase {
	return []Phase{
		{Name: "static_registries", StartPct: 0, EndPct: 10, Run: loadStaticRegistries, Rollback: rollbackStaticRegistries},
		{Name: "bitmap_definition", StartPct: 10, EndPct: 30, Run: loadBitmapDefinition, Rollback: rollbackBitmapDefinition},
		{Name: "province_registry", StartPct: 30, EndPct: 45, Run: buildProvinceRegistry, Rollback: rollbackProvinceRegistry},
		{Name: "country_registry", StartPct: 45, EndPct: 60, Run: buildCountryRegistry, Rollback: rollbackCountryRegistry},
		{Name: "scenario_history", StartPct: 60, EndPct: 75, Run: applyScenarioHistory, Rollback: rollbackScenarioHistory},
		{Name: "adjacency_scan", StartPct: 75, EndPct: 90, Run: runAdjacencyScan, Rollback: rollbackAdjacencyScan},
		{Name: "map_textures", StartPct: 90, EndPct: 98, Run: buildMapTextures, Rollback: rollbackMapTextures},
		{Name: "everything_ready", StartPct: 98, EndPct: 100, Run: emitWorldReady, Rollback: rollbackWorldReady},
	}
}

// Run is the common case: drive DefaultPhases to completion with no
// cancellation support and a progress callback that may be nil.
func Run(cfg Config, onProgress func(ProgressReport)) (*World, error) {
	runner := NewRunner(cfg.logger(), DefaultPhases())
	return runner.Execute(cfg, nil, onProgress)
}
