package symbols

import (
	"sort"
	"sync"
)

// globalRegistry holds every registered table, keyed by name.
var globalRegistry = &Registry{
	tables: make(map[string]Table),
}

// Registry stores named tables.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]Table
}

// Register adds or replaces a table in the global registry.
// Call this from init() functions.
func Register(t Table) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.tables[t.Name] = t
}

// Get returns a registered table by name.
func Get(name string) (Table, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	t, ok := globalRegistry.tables[name]
	return t, ok
}

// MustGet is like Get but panics when the table is missing.
func MustGet(name string) Table {
	t, ok := Get(name)
	if !ok {
		panic("symbols: table not registered: " + name)
	}
	return t
}

// All returns every registered table sorted by name.
func All() []Table {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	tables := make([]Table, 0, len(globalRegistry.tables))
	for _, t := range globalRegistry.tables {
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool {
		return tables[i].Name < tables[j].Name
	})
	return tables
}

// Find returns every entry, across all tables, whose symbol is symbol.
// Each result carries its table name in Category when the entry has none.
func Find(symbol string) []Entry {
	var found []Entry
	for _, t := range All() {
		for _, e := range t.Entries {
			if e.Symbol != symbol {
				continue
			}
			if e.Category == "" {
				e.Category = t.Name
			}
			found = append(found, e)
		}
	}
	return found
}
