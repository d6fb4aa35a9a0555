package bootstrap

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/forgottenhistory/archon-engine/loader/kv"
)

// writeFixtureWorld lays out a minimal 2x2-pixel, 3-province data directory
// (definition.csv + provinces.bmp, no history/common files) under dir, the
// smallest input buildProvinceRegistry/buildMapTextures can operate on.
func writeFixtureWorld(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mapDir := filepath.Join(dir, "map")
	if err := os.MkdirAll(mapDir, 0o755); err != nil {
		t.Fatal(err)
	}

	csv := "1;255;0;0;Land1;\n2;0;255;0;Land2;\n3;0;0;255;Ocean;\n"
	if err := os.WriteFile(filepath.Join(mapDir, "definition.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})

	f, err := os.Create(filepath.Join(mapDir, "provinces.bmp"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := bmp.Encode(f, img); err != nil {
		t.Fatal(err)
	}

	return dir
}

func TestRunBuildsWorldFromMinimalDataDir(t *testing.T) {
	dir := writeFixtureWorld(t)
	cfg := Config{DataDir: dir, ScenarioStart: kv.Date{Year: 1444, Month: 11, Day: 11}}

	var reports []ProgressReport
	w, err := Run(cfg, func(r ProgressReport) { reports = append(reports, r) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Provinces.Len() != 4 {
		t.Fatalf("got %d province slots, want 4 (reserved + 3 rows)", w.Provinces.Len())
	}
	if got := w.Textures.ProvinceIDAt(0, 0); got != 1 {
		t.Fatalf("got province %v at (0,0), want 1", got)
	}
	if got := w.Textures.ProvinceIDAt(1, 1); got != 1 {
		t.Fatalf("got province %v at (1,1), want 1 (same red color)", got)
	}
	if len(reports) != len(DefaultPhases()) {
		t.Fatalf("got %d progress reports, want %d", len(reports), len(DefaultPhases()))
	}
	if reports[len(reports)-1].Percent != 100 {
		t.Fatalf("got final percent %d, want 100", reports[len(reports)-1].Percent)
	}
}

func TestRunFailsAndRollsBackOnMissingRequiredFile(t *testing.T) {
	dir := t.TempDir() // no map/ subdirectory at all
	_, err := Run(Config{DataDir: dir}, nil)
	if err == nil {
		t.Fatal("expected an error for a missing definition.csv")
	}
}

func TestExecuteReturnsCancelledBeforeNextPhase(t *testing.T) {
	dir := writeFixtureWorld(t)
	runner := NewRunner(nil, DefaultPhases())
	calls := 0
	cancelled := func() bool {
		calls++
		return calls > 1 // let the first phase run, then cancel
	}
	_, err := runner.Execute(Config{DataDir: dir}, cancelled, nil)
	if err != ErrCancelled {
		t.Fatalf("got %v, want ErrCancelled", err)
	}
}
