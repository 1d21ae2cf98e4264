// Package metrics exposes prometheus counters for serialization passes.
//
// A nil *Metrics is valid and records nothing, so the engine can call it
// unconditionally.
package metrics
