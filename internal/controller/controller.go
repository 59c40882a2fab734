// Package controller drives one routing run: it owns the look-ahead
// window, runs the configured distance kernel, builds each timestep's
// forwarding table, and hands it to the delta writer. It is the single
// sequential driver described by spec.md's Uninitialized -> Primed state
// machine.
package controller

import (
	"context"
	"fmt"

	"leoroute/internal/config"
	"leoroute/internal/deltawriter"
	"leoroute/internal/distkernel"
	"leoroute/internal/domain"
	"leoroute/internal/forwarding"
	"leoroute/internal/graphprovider"
	"leoroute/internal/logger"
	"leoroute/internal/routeerr"
	"leoroute/internal/telemetry/steptrace"
	"leoroute/internal/window"
)

type state int

const (
	stateUninitialized state = iota
	statePrimed
)

// RouterController sequences window advancement, distance-kernel
// evaluation, forwarding-table construction, and delta output for one
// routing run.
type RouterController struct {
	log logger.Logger

	algorithm      domain.Algorithm
	numSats        int64
	numGS          int64
	lookaheadSteps int
	anchors        []domain.NodeID
	emitSatToSat   bool

	win    *window.Window
	writer *deltawriter.Writer
	state  state

	freeGSMatrix *distkernel.DistanceMatrix
	naiveWin     distkernel.WindowMatrices
	anchorWin    distkernel.AnchorWindow
}

// New builds a RouterController from a validated Config and a Graph
// Provider. numSats/numGS come from cfg.Constellation.
func New(cfg *config.Config, provider graphprovider.Provider, log logger.Logger) (*RouterController, error) {
	numSats := int64(cfg.Constellation.NumOrbits) * int64(cfg.Constellation.NumSatsPerOrbit)
	numGS := int64(cfg.Constellation.NumGroundStations)
	algorithm := domain.Algorithm(cfg.Router.Algorithm)

	k := cfg.Router.LookaheadSteps
	if algorithm == domain.FreeGS {
		k = 1
	}

	anchors := make([]domain.NodeID, len(cfg.Router.AnchorLMSR.AnchorSet))
	for i, a := range cfg.Router.AnchorLMSR.AnchorSet {
		anchors[i] = domain.NodeID(a)
	}

	return &RouterController{
		log:            log,
		algorithm:      algorithm,
		numSats:        numSats,
		numGS:          numGS,
		lookaheadSteps: k,
		anchors:        anchors,
		emitSatToSat:   cfg.Router.AnchorLMSR.EmitSatToSat,
		win:            window.New(provider, k, window.WithLogger(log)),
		writer:         deltawriter.New(cfg.Router.OutputDir, cfg.Router.TimeStepNs, numSats, numGS, algorithm),
	}, nil
}

// Step advances the controller to timestep t and writes its delta file.
// The first call primes the window and distance kernel over all K
// snapshots; every subsequent call advances by one snapshot and
// recomputes the kernel only for the newest one.
func (c *RouterController) Step(ctx context.Context, t int64) error {
	ctx, span := steptrace.StartStep(ctx, t, string(c.algorithm), c.lookaheadSteps)
	defer span.End()

	var err error
	switch c.state {
	case stateUninitialized:
		err = c.prime(ctx, t)
	case statePrimed:
		err = c.advance(ctx, t)
	}
	if err != nil {
		return err
	}

	snap := c.win.Current()
	if err := c.validateInterfaces(snap); err != nil {
		return err
	}

	table, err := c.buildTable(snap)
	if err != nil {
		return err
	}

	if err := c.writer.WriteFstate(t, table); err != nil {
		return err
	}
	steptrace.SetEntriesWritten(span, len(table))

	if t == 0 {
		if err := c.writer.WriteBandwidth(snap); err != nil {
			return err
		}
	}

	c.log.Info("step complete", logger.FStep(t), logger.F("algorithm", string(c.algorithm)), logger.F("entries", len(table)))
	return nil
}

func (c *RouterController) prime(ctx context.Context, t0 int64) error {
	if err := c.win.Init(ctx, t0); err != nil {
		return fmt.Errorf("controller: prime: %w", err)
	}
	snapshots := c.win.All()

	switch c.algorithm {
	case domain.FreeGS:
		m, err := distkernel.FreeGS(snapshots[0])
		if err != nil {
			return fmt.Errorf("controller: prime FreeGS: %w", err)
		}
		c.freeGSMatrix = m
	case domain.NaiveLMSR:
		win, err := distkernel.NaiveLMSR(snapshots)
		if err != nil {
			return fmt.Errorf("controller: prime NaiveLMSR: %w", err)
		}
		c.naiveWin = win
	case domain.AnchorLMSR:
		win, err := distkernel.AnchorLMSRWindow(snapshots, c.anchors)
		if err != nil {
			return fmt.Errorf("controller: prime AnchorLMSR: %w", err)
		}
		c.anchorWin = win
	default:
		return &routeerr.ConfigError{Reason: fmt.Sprintf("unknown algorithm %q", c.algorithm)}
	}

	c.state = statePrimed
	return nil
}

func (c *RouterController) advance(ctx context.Context, t int64) error {
	if err := c.win.Advance(ctx, t); err != nil {
		return fmt.Errorf("controller: advance: %w", err)
	}
	snapshots := c.win.All()
	newest := snapshots[len(snapshots)-1]

	switch c.algorithm {
	case domain.FreeGS:
		m, err := distkernel.FreeGS(c.win.Current())
		if err != nil {
			return fmt.Errorf("controller: advance FreeGS: %w", err)
		}
		c.freeGSMatrix = m
	case domain.NaiveLMSR:
		win, err := distkernel.AdvanceWindow(c.naiveWin, newest)
		if err != nil {
			return fmt.Errorf("controller: advance NaiveLMSR: %w", err)
		}
		c.naiveWin = win
	case domain.AnchorLMSR:
		win, err := distkernel.AdvanceAnchorWindow(c.anchorWin, newest, c.anchors)
		if err != nil {
			return fmt.Errorf("controller: advance AnchorLMSR: %w", err)
		}
		c.anchorWin = win
	}
	return nil
}

func (c *RouterController) buildTable(snap *domain.Snapshot) (domain.ForwardingTable, error) {
	switch c.algorithm {
	case domain.FreeGS:
		return forwarding.BuildFreeGS(snap, c.numSats, c.numGS, c.freeGSMatrix, c.log), nil
	case domain.NaiveLMSR:
		return forwarding.BuildNaiveLMSR(snap, c.numSats, c.numGS, c.naiveWin, c.log), nil
	case domain.AnchorLMSR:
		return forwarding.BuildAnchorLMSR(snap, c.numSats, c.numGS, c.anchors, c.anchorWin, c.emitSatToSat, c.log), nil
	default:
		return nil, &routeerr.ConfigError{Reason: fmt.Sprintf("unknown algorithm %q", c.algorithm)}
	}
}

// validateInterfaces enforces spec.md §4.5's per-step check, generalized
// to every algorithm (the original only ran it for LMSR). Every satellite
// is reserved exactly numGS GSL interface slots (numISLs..numISLs+numGS-1)
// by construction of the interface numbering in §6, each carrying
// bandwidth 1.0 for an aggregate of numGS; every ground station carries
// exactly one interface at aggregate 1.0 (deltawriter.WriteBandwidth
// derives both from numGS, never from per-snapshot data, so the only
// divergence a snapshot can introduce is a node-count mismatch against
// the configured constellation).
func (c *RouterController) validateInterfaces(snap *domain.Snapshot) error {
	if snap.NumSats != c.numSats {
		return &routeerr.TopologyError{Timestep: snap.Timestep, Reason: fmt.Sprintf("snapshot has %d satellites, constellation is configured for %d", snap.NumSats, c.numSats)}
	}
	if snap.NumGS != c.numGS {
		return &routeerr.TopologyError{Timestep: snap.Timestep, Reason: fmt.Sprintf("snapshot has %d ground stations, constellation is configured for %d", snap.NumGS, c.numGS)}
	}
	return nil
}
