package ingest

import "strings"

// LookupTable resolves display names to 1-based codes and back for one
// open-ended enumeration (mentor roster, topic roster). Tables are
// immutable: load one per batch so every record in the batch resolves
// against the same roster.
type LookupTable struct {
	names    []string
	fallback int
}

// NewLookupTable builds a table over names with the given fallback code,
// returned by CodeForName when a name is not in the roster.
func NewLookupTable(names []string, fallback int) LookupTable {
	clean := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	return LookupTable{names: clean, fallback: fallback}
}

// NewMentorTable falls back to the last roster entry, conventionally "Other"
func NewMentorTable(names []string) LookupTable {
	t := NewLookupTable(names, 0)
	t.fallback = len(t.names)
	return t
}

// NewTopicTable falls back to the first roster entry
func NewTopicTable(names []string) LookupTable {
	return NewLookupTable(names, 1)
}

// CodeForName returns the 1-based code of name, or the fallback code when
// the name is not in the roster. It never fails.
func (t LookupTable) CodeForName(name string) int {
	name = strings.TrimSpace(name)
	for i, n := range t.names {
		if n == name {
			return i + 1
		}
	}
	return t.fallback
}

// NameForCode returns the name at a 1-based code, or "" when out of range
func (t LookupTable) NameForCode(code int) string {
	if code < 1 || code > len(t.names) {
		return ""
	}
	return t.names[code-1]
}

func (t LookupTable) Len() int {
	return len(t.names)
}

// Lookups bundles the tables a record build needs
type Lookups struct {
	Mentors LookupTable
	Topics  LookupTable
}
