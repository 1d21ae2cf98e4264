// Package tracker keeps pointer identity bookkeeping for one pass.
//
// Serial is used while writing: it maps an instance to a sequential identity
// and counts owning and non-owning sightings. Resolver is used while reading:
// it maps identities back to materialized instances and patches references
// that were read before their owner.
//
// A tracker belongs to exactly one pass and is not safe for concurrent use.
//
// Per identity the resolver moves through
//
//	Unseen -> Pending (reference first) -> Resolved
//	Unseen -> Resolved (owner first)
//
// Resolved is terminal; a second owner claim is an ownership violation.
package tracker
