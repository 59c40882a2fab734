// Package deltawriter persists one timestep's forwarding table as a
// delta against the previous one, plus the one-time interface-bandwidth
// file, in the exact key order and line format the runner's consumers
// expect.
package deltawriter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"leoroute/internal/domain"
	"leoroute/internal/routeerr"
)

// Writer owns the previous timestep's table for delta comparison and the
// fixed geometry needed to enumerate keys in order.
type Writer struct {
	outputDir  string
	timeStepNs int64
	numSats    int64
	numGS      int64
	algorithm  domain.Algorithm
	prev       domain.ForwardingTable
}

// New creates a Writer. algorithm controls whether sat->sat keys are
// enumerated (ANCHOR-LMSR only).
func New(outputDir string, timeStepNs, numSats, numGS int64, algorithm domain.Algorithm) *Writer {
	return &Writer{
		outputDir:  outputDir,
		timeStepNs: timeStepNs,
		numSats:    numSats,
		numGS:      numGS,
		algorithm:  algorithm,
	}
}

// orderedKeys returns every key this algorithm's table carries, in the
// fixed order: sat->gs, then gs->gs, then (anchor_lmsr only) sat->sat.
func (w *Writer) orderedKeys() []domain.ForwardingKey {
	keys := make([]domain.ForwardingKey, 0, int(w.numSats)*int(w.numGS)*2)

	for s := int64(0); s < w.numSats; s++ {
		src := domain.NodeID(s)
		for g := int64(0); g < w.numGS; g++ {
			dst := domain.NodeID(w.numSats + g)
			keys = append(keys, domain.ForwardingKey{Src: src, Dst: dst})
		}
	}

	for sg := int64(0); sg < w.numGS; sg++ {
		src := domain.NodeID(w.numSats + sg)
		for dg := int64(0); dg < w.numGS; dg++ {
			if sg == dg {
				continue
			}
			dst := domain.NodeID(w.numSats + dg)
			keys = append(keys, domain.ForwardingKey{Src: src, Dst: dst})
		}
	}

	if w.algorithm == domain.AnchorLMSR {
		for s := int64(0); s < w.numSats; s++ {
			src := domain.NodeID(s)
			for d := int64(0); d < w.numSats; d++ {
				if s == d {
					continue
				}
				dst := domain.NodeID(d)
				keys = append(keys, domain.ForwardingKey{Src: src, Dst: dst})
			}
		}
	}

	return keys
}

// WriteFstate writes fstate_<t*timeStepNs>.txt containing only the entries
// whose triple differs from the previous timestep's table for the same
// key (every entry, if there was no previous table), then adopts table as
// the new previous table.
func (w *Writer) WriteFstate(t int64, table domain.ForwardingTable) error {
	ns := t * w.timeStepNs
	path := filepath.Join(w.outputDir, fmt.Sprintf("fstate_%d.txt", ns))

	var buf bytes.Buffer
	for _, key := range w.orderedKeys() {
		entry := table[key]
		if w.prev != nil {
			if prevEntry, ok := w.prev[key]; ok && prevEntry == entry {
				continue
			}
		}
		fmt.Fprintf(&buf, "%d,%d,%d,%d,%d\n", key.Src, key.Dst, entry.NextHop, entry.OutIface, entry.InIface)
	}

	if err := writeFile(path, buf.Bytes()); err != nil {
		return &routeerr.IOError{Path: path, Timestep: t, Err: err}
	}

	w.prev = table
	return nil
}

// WriteBandwidth writes gsl_if_bandwidth_0.txt. Per spec §4.5's interface
// invariant, every satellite's GSL interfaces carry an aggregate max
// bandwidth equal to numGS, split evenly across its numGS GSL interfaces
// (1.0 each); every ground station carries a single interface with
// aggregate max bandwidth 1.0. Called once, at t=0. snap supplies each
// satellite's ISL interface count so the GSL interface ids line up with
// the absolute numbering fstate files use.
func (w *Writer) WriteBandwidth(snap *domain.Snapshot) error {
	path := filepath.Join(w.outputDir, "gsl_if_bandwidth_0.txt")
	satAggregate := float64(w.numGS)
	perGSLIface := satAggregate / float64(w.numGS)
	const gsAggregate = 1.0

	var buf bytes.Buffer
	for s := int64(0); s < w.numSats; s++ {
		base := snap.NumISLs(domain.NodeID(s))
		for g := int64(0); g < w.numGS; g++ {
			iface := base + int(g)
			fmt.Fprintf(&buf, "%d,%d,%g\n", s, iface, perGSLIface)
		}
	}
	for g := int64(0); g < w.numGS; g++ {
		gid := w.numSats + g
		fmt.Fprintf(&buf, "%d,%d,%g\n", gid, 0, gsAggregate)
	}

	if err := writeFile(path, buf.Bytes()); err != nil {
		return &routeerr.IOError{Path: path, Timestep: 0, Err: err}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create directory %q: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write file: %w", err)
	}
	return nil
}
