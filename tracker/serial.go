package tracker

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

var (
	ErrOwnershipViolation = errors.New("instance has more than one owner")
	ErrDanglingReference  = errors.New("reference to an instance never materialized")
	ErrTypeConflict       = errors.New("identity referenced with conflicting type names")
	ErrZeroSize           = errors.New("zero-size instance has no identity to link or share")
)

// Key is the identity of an instance while writing: its address and type.
// Two fields at the same address but of different types stay distinct.
// Zero-size types have no usable address, see Serial.Track.
type Key struct {
	Addr uintptr
	Type reflect.Type
}

// KeyOf returns the identity of the value pointed to by the non-nil pointer p.
func KeyOf(p reflect.Value) Key {
	return Key{Addr: p.Pointer(), Type: p.Type().Elem()}
}

// Record is the bookkeeping of one identity.
type Record struct {
	ID     uint64
	Links  uint32
	Owners uint32
	Shared bool
}

// Serial tracks identities while writing one pass.
type Serial struct {
	records map[Key]*Record
	order   []Key
	next    uint64
}

func NewSerial() *Serial {
	return &Serial{records: make(map[Key]*Record)}
}

// Track records one sighting of key. Every sighting counts as a link; owner
// sightings also count as owners. A second owner of a unique instance, or
// mixing unique and shared owners, is ErrOwnershipViolation. The returned
// record reflects the state after this sighting.
//
// Distinct allocations of a zero-size type may share one address, so each
// unique owner sighting of one gets a fresh identity. Linking or sharing such
// an instance is ErrZeroSize.
func (s *Serial) Track(key Key, owner, shared bool) (Record, error) {
	if key.Type.Size() == 0 {
		if !owner || shared {
			return Record{}, errors.Wrapf(ErrZeroSize, "%s", key.Type)
		}

		s.next++
		return Record{ID: s.next, Links: 1, Owners: 1}, nil
	}

	rec, ok := s.records[key]
	if !ok {
		s.next++
		rec = &Record{ID: s.next}
		s.records[key] = rec
		s.order = append(s.order, key)
	}

	rec.Links++
	if !owner {
		return *rec, nil
	}

	if rec.Owners > 0 && (!shared || !rec.Shared) {
		return *rec, errors.Wrapf(ErrOwnershipViolation, "instance %d of %s", rec.ID, key.Type)
	}

	rec.Owners++
	rec.Shared = shared

	return *rec, nil
}

// Lookup returns the record of key, if seen.
func (s *Serial) Lookup(key Key) (Record, bool) {
	rec, ok := s.records[key]
	if !ok {
		return Record{}, false
	}

	return *rec, true
}

// Unowned lists the identities that were only referenced, in first-seen order.
// Reading such output back ends with dangling references.
func (s *Serial) Unowned() []Record {
	var out []Record
	for _, key := range s.order {
		if rec := s.records[key]; rec.Owners == 0 {
			out = append(out, *rec)
		}
	}

	return out
}

// Len returns the number of identities handed out.
func (s *Serial) Len() int { return int(s.next) }
