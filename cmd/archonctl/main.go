// Command archonctl drives a GameState from the command line: load a
// scenario data directory, advance the clock some number of simulated
// hours, optionally submit a ChangeOwner command and save the result,
// exercising the full spec §6 GameState surface end to end.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/forgottenhistory/archon-engine"
	"github.com/forgottenhistory/archon-engine/bootstrap"
	"github.com/forgottenhistory/archon-engine/command"
	"github.com/forgottenhistory/archon-engine/loader/kv"
	"github.com/forgottenhistory/archon-engine/save"
)

var config = struct {
	DataDir       string
	ScenarioName  string
	StartYear     int
	StartMonth    int
	StartDay      int
	Hours         int
	ChangeOwner   string // "provinceId:newOwnerId", empty to skip
	SavePath      string
	LoadPath      string
	Verbose       bool
}{
	ScenarioName: "archonctl-session",
	StartYear:    1444,
	StartMonth:   11,
	StartDay:     11,
	Hours:        24,
}

func init() {
	flag.StringVar(&config.DataDir, "data", "", "path to the scenario data directory (required)")
	flag.StringVar(&config.ScenarioName, "scenario", config.ScenarioName, "scenario name recorded in save metadata")
	flag.IntVar(&config.StartYear, "year", config.StartYear, "scenario start year")
	flag.IntVar(&config.StartMonth, "month", config.StartMonth, "scenario start month")
	flag.IntVar(&config.StartDay, "day", config.StartDay, "scenario start day")
	flag.IntVar(&config.Hours, "hours", config.Hours, "simulated hours to advance")
	flag.StringVar(&config.ChangeOwner, "change-owner", "", "submit a ChangeOwner command, format province:owner")
	flag.StringVar(&config.SavePath, "save", "", "write a save file to this path after ticking")
	flag.StringVar(&config.LoadPath, "load", "", "load a save file from this path before ticking")
	flag.BoolVar(&config.Verbose, "v", false, "enable verbose log output")
	flag.Parse()

	if config.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
}

// interrupted is set once an interrupt arrives; the tick loop in run checks
// it before every hour.
var interrupted atomic.Bool

func main() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	go func() {
		<-stop
		slog.Info("received interrupt, finishing current tick before exit")
		interrupted.Store(true)
	}()

	if err := run(); err != nil {
		log.Fatalf("archonctl: %v", err)
	}
}

func run() error {
	if config.DataDir == "" {
		return errors.New("-data is required")
	}

	cfg := bootstrap.Config{
		DataDir:      config.DataDir,
		ScenarioName: config.ScenarioName,
		ScenarioStart: kv.Date{
			Year:  int32(config.StartYear),
			Month: int32(config.StartMonth),
			Day:   int32(config.StartDay),
		},
	}

	gs, err := archon.New(cfg, func(r bootstrap.ProgressReport) {
		slog.Info("bootstrap progress", "phase", r.Phase, "percent", r.Percent, "status", r.Status)
	})
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	if config.LoadPath != "" {
		result, err := gs.Load(config.LoadPath)
		if err != nil {
			return fmt.Errorf("load: %w", err)
		}
		ok, err := save.VerifyDeterminism(nil, result, gs)
		if err != nil {
			return fmt.Errorf("determinism check: %w", err)
		}
		slog.Info("loaded save", "path", config.LoadPath, "tick", result.Metadata.Tick, "deterministic", ok)
	}

	if config.ChangeOwner != "" {
		var provinceID, ownerID uint16
		if _, err := fmt.Sscanf(config.ChangeOwner, "%d:%d", &provinceID, &ownerID); err != nil {
			return fmt.Errorf("-change-owner must be province:owner, got %q", config.ChangeOwner)
		}
		tick := gs.Time().Tick() + 1
		gs.Commands().Submit(command.ChangeOwner{
			Tick:          tick,
			Province:      archon.ProvinceId(provinceID),
			NewOwner:      archon.CountryId(ownerID),
			NewController: archon.CountryId(ownerID),
		})
		slog.Info("submitted ChangeOwner", "province", provinceID, "newOwner", ownerID, "tick", tick)
	}

	for h := 0; h < config.Hours; h++ {
		if interrupted.Load() {
			break
		}
		if err := gs.Tick(1.0); err != nil {
			return fmt.Errorf("tick %d: %w", h, err)
		}
		gs.ProcessFrame()
	}
	year, month, day := gs.Time().Date()
	slog.Info("advanced simulation", "tick", gs.Time().Tick(), "date", fmt.Sprintf("%04d-%02d-%02d", year, month, day))

	if config.SavePath != "" {
		if err := gs.Save(config.SavePath, config.ScenarioName); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		slog.Info("wrote save", "path", config.SavePath)
	}

	return nil
}
