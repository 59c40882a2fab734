// Package fstate reconstructs a forwarding table at a given timestep by
// replaying delta files ("last write wins" per key), the query-side
// counterpart to internal/deltawriter.
package fstate

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"leoroute/internal/domain"
)

// Store indexes every fstate_<ns>.txt file found in dir by the timestep
// number embedded in its name (ns / timeStepNs) and lazily replays deltas
// up to a requested timestep.
type Store struct {
	dir        string
	timeStepNs int64
	steps      []int64 // sorted ascending, the t values that have a file on disk
}

// Open scans dir for fstate_<ns>.txt files and indexes the timesteps they
// cover.
func Open(dir string, timeStepNs int64) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fstate: read dir %q: %w", dir, err)
	}

	var steps []int64
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, "fstate_") || !strings.HasSuffix(name, ".txt") {
			continue
		}
		nsStr := strings.TrimSuffix(strings.TrimPrefix(name, "fstate_"), ".txt")
		ns, err := strconv.ParseInt(nsStr, 10, 64)
		if err != nil {
			continue
		}
		steps = append(steps, ns/timeStepNs)
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i] < steps[j] })

	return &Store{dir: dir, timeStepNs: timeStepNs, steps: steps}, nil
}

// TableAt replays every fstate file from the earliest available timestep
// up to and including t, last-write-wins per key, and returns the
// resulting forwarding table.
func (s *Store) TableAt(t int64) (domain.ForwardingTable, error) {
	table := make(domain.ForwardingTable)
	for _, step := range s.steps {
		if step > t {
			break
		}
		path := filepath.Join(s.dir, fmt.Sprintf("fstate_%d.txt", step*s.timeStepNs))
		if err := applyFile(path, table); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func applyFile(path string, table domain.ForwardingTable) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("fstate: open %q: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 5 {
			return fmt.Errorf("fstate: %q: malformed line %q", path, line)
		}
		vals := make([]int64, 5)
		for i, p := range parts {
			v, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				return fmt.Errorf("fstate: %q: malformed field %q: %w", path, p, err)
			}
			vals[i] = v
		}
		key := domain.ForwardingKey{Src: domain.NodeID(vals[0]), Dst: domain.NodeID(vals[1])}
		table[key] = domain.ForwardingEntry{
			NextHop:  domain.NodeID(vals[2]),
			OutIface: int32(vals[3]),
			InIface:  int32(vals[4]),
		}
	}
	return scanner.Err()
}
