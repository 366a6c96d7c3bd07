package peers

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrTableUnknown is returned when a record type has no table mapping.
	ErrTableUnknown = errors.New("peers: no table registered for record type")
	// ErrIdentifierInvalid guards column and table names against injection.
	ErrIdentifierInvalid = errors.New("peers: invalid identifier")
)

// Table maps a record type onto the table its slugs are stored in.
type Table struct {
	Name string
	// Key is the primary key column. Defaults to "id".
	Key string
	// SoftDelete is the nullable column marking trashed rows. Empty means
	// the table does not soft delete.
	SoftDelete string
	// Columns maps slug attributes to column names when they differ.
	Columns map[string]string
}

func (t Table) keyColumn() string {
	if t.Key == "" {
		return "id"
	}
	return t.Key
}

func (t Table) column(attribute string) string {
	if col, ok := t.Columns[attribute]; ok && col != "" {
		return col
	}
	return attribute
}

func (t Table) validate(attribute string, constraints map[string]any) error {
	names := []string{t.Name, t.keyColumn(), t.column(attribute)}
	if t.SoftDelete != "" {
		names = append(names, t.SoftDelete)
	}
	for col := range constraints {
		names = append(names, col)
	}
	for _, name := range names {
		if !validIdentifier(name) {
			return errors.Join(ErrIdentifierInvalid, errors.New(name))
		}
	}
	return nil
}

func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// registry is the shared type -> table lookup used by the finders.
type registry struct {
	mu     sync.RWMutex
	tables map[string]Table
}

func (r *registry) register(typeName string, table Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tables == nil {
		r.tables = make(map[string]Table)
	}
	table.Columns = maps.Clone(table.Columns)
	r.tables[typeName] = table
}

func (r *registry) lookup(typeName string) (Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	table, ok := r.tables[typeName]
	return table, ok
}

// escapeLike escapes LIKE wildcards so a slug prefix is matched literally.
func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

func sortedColumns(constraints map[string]any) []string {
	return slices.Sorted(maps.Keys(constraints))
}
