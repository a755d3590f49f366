// Where: internal/domain/assemble/modules.go
// What: Ordered unique set of module names.
// Why: The linker receives a deterministic --add-modules list.
package assemble

import (
	"sort"
	"strings"
)

// ModuleSet is a lexicographically ordered set of module names.
type ModuleSet struct {
	names map[string]struct{}
}

// NewModuleSet returns a set holding the non-blank, trimmed names.
func NewModuleSet(names ...string) ModuleSet {
	s := ModuleSet{names: map[string]struct{}{}}
	s.Add(names...)
	return s
}

// Add inserts the non-blank, trimmed names.
func (s *ModuleSet) Add(names ...string) {
	if s.names == nil {
		s.names = map[string]struct{}{}
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s.names[name] = struct{}{}
	}
}

// Len returns the number of names.
func (s ModuleSet) Len() int { return len(s.names) }

// IsEmpty reports whether the set has no names.
func (s ModuleSet) IsEmpty() bool { return len(s.names) == 0 }

// Contains reports whether name is in the set.
func (s ModuleSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Names returns the sorted names.
func (s ModuleSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Join returns the names joined by ",".
func (s ModuleSet) Join() string {
	return strings.Join(s.Names(), ",")
}

// String implements fmt.Stringer.
func (s ModuleSet) String() string {
	return "[" + strings.Join(s.Names(), ", ") + "]"
}
