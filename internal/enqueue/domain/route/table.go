package route

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Table is an immutable mapping from service name to Entry.
// The zero value is an empty table.
type Table struct {
	entries map[string]Entry
}

func NewTable(entries map[string]Entry) (Table, error) {
	copied := make(map[string]Entry, len(entries))

	for name, e := range entries {
		name = strings.TrimSpace(name)
		if name == "" {
			return Table{}, ErrServiceNameRequired
		}

		if _, dup := copied[name]; dup {
			return Table{}, fmt.Errorf("%w: %q", ErrServiceNameConflict, name)
		}

		if err := e.Validate(); err != nil {
			return Table{}, fmt.Errorf("service %q: %w", name, err)
		}

		copied[name] = e
	}

	return Table{entries: copied}, nil
}

func (t Table) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[name]

	return e, ok
}

func (t Table) Len() int {
	return len(t.entries)
}

func (t Table) IsEmpty() bool {
	return len(t.entries) == 0
}

// Names returns the service names in lexical order.
func (t Table) Names() []string {
	return slices.Sorted(maps.Keys(t.entries))
}
