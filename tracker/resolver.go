package tracker

import (
	"cmp"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Patch writes a resolved instance into one reference site.
type Patch func(instance reflect.Value) error

// Link is the reading side record of one identity.
type Link struct {
	ID       uint64
	TypeName string
	Shared   bool
	Instance reflect.Value // invalid until the owner is read
	Pending  []Patch
}

func (l *Link) Resolved() bool { return l.Instance.IsValid() }

// Resolver tracks identities while reading one pass.
type Resolver struct {
	links    map[uint64]*Link
	deferred uint64
}

func NewResolver() *Resolver {
	return &Resolver{links: make(map[uint64]*Link)}
}

func (r *Resolver) link(id uint64, typeName string) (*Link, error) {
	l, ok := r.links[id]
	if !ok {
		l = &Link{ID: id, TypeName: typeName}
		r.links[id] = l
		return l, nil
	}

	switch {
	case typeName == "":
	case l.TypeName == "":
		l.TypeName = typeName
	case l.TypeName != typeName:
		return nil, errors.Wrapf(ErrTypeConflict, "instance %d is %q and %q", id, l.TypeName, typeName)
	}

	return l, nil
}

// Refer registers a reference to id. The patch runs now when the owner was
// already read, otherwise when it is.
func (r *Resolver) Refer(id uint64, typeName string, patch Patch) error {
	l, err := r.link(id, typeName)
	if err != nil {
		return err
	}

	if l.Resolved() {
		return patch(l.Instance)
	}

	l.Pending = append(l.Pending, patch)
	r.deferred++

	return nil
}

// Resolve records instance as the owner of id and runs every pending patch.
func (r *Resolver) Resolve(id uint64, typeName string, instance reflect.Value, shared bool) error {
	l, err := r.link(id, typeName)
	if err != nil {
		return err
	}

	if l.Resolved() {
		return errors.Wrapf(ErrOwnershipViolation, "instance %d read twice", id)
	}

	l.Instance = instance
	l.Shared = shared

	pending := l.Pending
	l.Pending = nil

	for _, patch := range pending {
		if err := patch(instance); err != nil {
			return err
		}
	}

	return nil
}

// Instance returns the materialized instance of id.
func (r *Resolver) Instance(id uint64) (reflect.Value, bool) {
	l, ok := r.links[id]
	if !ok || !l.Resolved() {
		return reflect.Value{}, false
	}

	return l.Instance, true
}

// Deferred counts patches ever queued. It never decreases, so a caller can
// compare two readings to learn whether a subtree left pending references.
func (r *Resolver) Deferred() uint64 { return r.deferred }

// Dangling lists identities that still have pending references, sorted.
func (r *Resolver) Dangling() []*Link {
	out := lo.Filter(lo.Values(r.links), func(l *Link, _ int) bool {
		return !l.Resolved() && len(l.Pending) > 0
	})

	slices.SortFunc(out, func(a, b *Link) int { return cmp.Compare(a.ID, b.ID) })

	return out
}

// Close ends the pass. Every dangling identity is reported in one error.
func (r *Resolver) Close() error {
	dangling := r.Dangling()
	if len(dangling) == 0 {
		return nil
	}

	ids := lo.Map(dangling, func(l *Link, _ int) string {
		s := strconv.FormatUint(l.ID, 10)
		if l.TypeName != "" {
			s += " (" + l.TypeName + ")"
		}

		return s
	})

	return errors.Wrapf(ErrDanglingReference, "instances %s", strings.Join(ids, ", "))
}
