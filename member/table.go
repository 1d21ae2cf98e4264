package member

import (
	"github.com/samber/lo"
)

// Table is the ordered member list of one type.
//
// An empty TypeName marks an anonymous table: members are still visited but
// the type is not named on the wire and cannot take part in polymorphism.
type Table struct {
	TypeName string
	Version  uint32
	Members  []Member
}

func (t *Table) Anonymous() bool { return t.TypeName == "" }

func (t *Table) Names() []string {
	return lo.Map(t.Members, func(m Member, _ int) string { return m.Name })
}

// Lookup returns the first member called name.
func (t *Table) Lookup(name string) (Member, bool) {
	return lo.Find(t.Members, func(m Member) bool { return m.Name == name })
}

// Compose builds the table of a derived type: members of every base in order,
// then own. Bases must already be rooted on the derived type, see Through.
func Compose(typeName string, version uint32, bases [][]Member, own ...Member) Table {
	return Table{
		TypeName: typeName,
		Version:  version,
		Members:  append(lo.Flatten(bases), own...),
	}
}
