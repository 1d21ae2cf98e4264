package caster

import (
	"reflect"
	"sort"

	"github.com/puzpuzpuz/xsync/v3"
)

type TypePair struct{ Base, Derived reflect.Type }

type NamePair struct{ Base, Derived string }

// Registry holds casters by type pair and by name pair. Entries are never
// removed; registering the same pair again keeps the first caster.
type Registry struct {
	byType *xsync.MapOf[TypePair, *Caster]
	byName *xsync.MapOf[NamePair, *Caster]
}

func NewRegistry() *Registry {
	return &Registry{
		byType: xsync.NewMapOf[TypePair, *Caster](),
		byName: xsync.NewMapOf[NamePair, *Caster](),
	}
}

// Add registers c and returns the caster now held for its type pair.
func (r *Registry) Add(c *Caster) *Caster {
	actual, loaded := r.byType.LoadOrStore(TypePair{Base: c.Base, Derived: c.Derived}, c)
	if !loaded {
		r.byName.LoadOrStore(NamePair{Base: c.BaseName, Derived: c.DerivedName}, c)
	}

	return actual
}

func (r *Registry) Get(base, derived reflect.Type) (*Caster, bool) {
	return r.byType.Load(TypePair{Base: base, Derived: derived})
}

func (r *Registry) GetByName(base, derived string) (*Caster, bool) {
	return r.byName.Load(NamePair{Base: base, Derived: derived})
}

// DerivedNames lists the derived names registered for base, sorted.
func (r *Registry) DerivedNames(base string) []string {
	var out []string
	r.byName.Range(func(k NamePair, _ *Caster) bool {
		if k.Base == base {
			out = append(out, k.Derived)
		}

		return true
	})

	sort.Strings(out)
	return out
}

func (r *Registry) Len() int { return r.byType.Size() }
