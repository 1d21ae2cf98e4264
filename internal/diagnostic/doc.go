// Package diagnostic collects the non-fatal findings of a serialization pass.
//
// Conditions that the engine tolerates by policy, such as an unregistered
// type, a missing optional node, or a deprecated member that was read, are
// recorded here instead of failing the pass.
package diagnostic
