package controller

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"leoroute/internal/config"
	"leoroute/internal/domain"
	"leoroute/internal/graphprovider"
	"leoroute/internal/logger"
)

// varyingLineSnapshots builds a sequence of 2-satellite, 1-ground-station
// snapshots whose ISL length changes at t=2, so both FreeGS and NaiveLMSR
// controllers exercise prime/advance across a real topology change.
func varyingLineSnapshots(t *testing.T, n int) []*domain.Snapshot {
	t.Helper()
	out := make([]*domain.Snapshot, n)
	for i := 0; i < n; i++ {
		isl := int64(1000)
		if i >= 2 {
			isl = 50
		}
		isls := []domain.ISLEdge{{A: 0, B: 1, DistanceM: isl}}
		gsInRange := [][]domain.GSLCandidate{
			{{SatID: 0, DistanceM: 500}},
		}
		snap, err := domain.BuildSnapshot(int64(i), 2, 1, isls, gsInRange)
		if err != nil {
			t.Fatalf("BuildSnapshot(%d): %v", i, err)
		}
		out[i] = snap
	}
	return out
}

func baseCfg(outputDir, algorithm string) *config.Config {
	return &config.Config{
		Logger:        config.LoggerConfig{Level: "info", Encoding: "console", Mode: "stdout"},
		Telemetry:     config.TelemetryConfig{},
		Constellation: config.ConstellationConfig{NumOrbits: 1, NumSatsPerOrbit: 2, NumGroundStations: 1, MaxISLLengthM: 5000, MaxGSLLengthM: 2000},
		GraphProvider: config.GraphProviderConfig{Kind: "static"},
		Router: config.RouterConfig{
			Algorithm:      algorithm,
			TimeStepNs:     1000000000,
			DurationS:      10,
			LookaheadSteps: 3,
			OutputDir:      outputDir,
		},
	}
}

func TestControllerFreeGSStepsWriteDeltaFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := baseCfg(dir, "free_gs")
	provider := graphprovider.NewStatic(varyingLineSnapshots(t, 5))

	ctrl, err := New(cfg, provider, &logger.NopLogger{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for step := int64(0); step < 3; step++ {
		if err := ctrl.Step(context.Background(), step); err != nil {
			t.Fatalf("Step(%d): %v", step, err)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "fstate_0.txt")); err != nil {
		t.Fatalf("fstate_0.txt not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "gsl_if_bandwidth_0.txt")); err != nil {
		t.Fatalf("gsl_if_bandwidth_0.txt not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "fstate_2000000000.txt")); err != nil {
		t.Fatalf("fstate at t=2 not written: %v", err)
	}
}

func TestControllerNaiveLMSRPrimeThenAdvance(t *testing.T) {
	dir := t.TempDir()
	cfg := baseCfg(dir, "naive_lmsr")
	provider := graphprovider.NewStatic(varyingLineSnapshots(t, 6))

	ctrl, err := New(cfg, provider, &logger.NopLogger{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for step := int64(0); step < 3; step++ {
		if err := ctrl.Step(context.Background(), step); err != nil {
			t.Fatalf("Step(%d): %v", step, err)
		}
	}
	if ctrl.state != statePrimed {
		t.Fatal("controller should be in the Primed state after its first Step")
	}
}

func TestControllerRejectsNodeCountMismatch(t *testing.T) {
	dir := t.TempDir()
	cfg := baseCfg(dir, "free_gs")
	cfg.Constellation.NumOrbits = 1
	cfg.Constellation.NumSatsPerOrbit = 5 // disagrees with the 2-satellite fixtures
	provider := graphprovider.NewStatic(varyingLineSnapshots(t, 2))

	ctrl, err := New(cfg, provider, &logger.NopLogger{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ctrl.Step(context.Background(), 0); err == nil {
		t.Fatal("expected a topology error for satellite-count mismatch")
	}
}
