// Package symbols holds the GaiaScript symbol dictionaries.
//
// A Table is an ordered list of symbol → meaning entries. Order matters:
// Apply replaces entries one after another, so an earlier replacement can
// produce text that a later entry matches. Built-in tables are registered at
// init time and can be looked up by name.
package symbols

import (
	"sort"
	"strings"
)

// Entry maps one GaiaScript symbol to its expanded meaning.
type Entry struct {
	Symbol   string `json:"symbol"`
	Meaning  string `json:"meaning"`
	Category string `json:"category,omitempty"`
}

// Table is a named, ordered dictionary.
type Table struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Entries     []Entry `json:"entries"`
}

// Len returns the number of entries.
func (t Table) Len() int { return len(t.Entries) }

// Lookup returns the meaning of symbol.
func (t Table) Lookup(symbol string) (string, bool) {
	for _, e := range t.Entries {
		if e.Symbol == symbol {
			return e.Meaning, true
		}
	}
	return "", false
}

// With returns a copy of t with extra applied. An entry whose symbol already
// exists replaces the meaning in place; new symbols are appended.
func (t Table) With(extra []Entry) Table {
	out := Table{
		Name:        t.Name,
		Description: t.Description,
		Entries:     make([]Entry, len(t.Entries), len(t.Entries)+len(extra)),
	}
	copy(out.Entries, t.Entries)

	index := make(map[string]int, len(out.Entries))
	for i, e := range out.Entries {
		index[e.Symbol] = i
	}
	for _, e := range extra {
		if e.Symbol == "" {
			continue
		}
		if i, ok := index[e.Symbol]; ok {
			out.Entries[i].Meaning = e.Meaning
			continue
		}
		index[e.Symbol] = len(out.Entries)
		out.Entries = append(out.Entries, e)
	}
	return out
}

// Merge concatenates tables into one under name, keeping entry order.
func Merge(name string, tables ...Table) Table {
	merged := Table{Name: name}
	for _, t := range tables {
		merged = merged.With(t.Entries)
	}
	return merged
}

// Apply replaces every entry's symbol with its meaning, in order.
func Apply(text string, entries []Entry) string {
	for _, e := range entries {
		if e.Symbol == "" {
			continue
		}
		text = strings.ReplaceAll(text, e.Symbol, e.Meaning)
	}
	return text
}

// EntriesFromMap converts a symbol → meaning map into entries sorted by
// symbol, so the result is deterministic.
func EntriesFromMap(m map[string]string, category string) []Entry {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Symbol: k, Meaning: m[k], Category: category})
	}
	return entries
}
