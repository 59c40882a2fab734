// Package routeerr defines the fatal error kinds raised by the routing
// engine. NoRouteCondition (spec: missing-route-for-one-entry) is
// deliberately NOT a type here: it is recovered locally by the forwarding
// builder as the drop sentinel and never surfaces as a Go error.
package routeerr

import "fmt"

// ConfigError reports a fatal configuration problem: unknown algorithm,
// empty anchor set when anchor_lmsr is selected, interface-count or
// bandwidth mismatch discovered during controller validation.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return fmt.Sprintf("config error: %s", e.Reason) }

// TopologyError reports a fatal inconsistency in a graph snapshot: a
// satellite-to-ground-station edge found inside the satellite-only graph,
// or a node-count mismatch against the configured constellation size.
type TopologyError struct {
	Timestep int64
	Reason   string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("topology error at t=%d: %s", e.Timestep, e.Reason)
}

// IOError wraps a failure to open or write an output file, identifying the
// path and timestep involved.
type IOError struct {
	Path     string
	Timestep int64
	Err      error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error at t=%d writing %s: %v", e.Timestep, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
