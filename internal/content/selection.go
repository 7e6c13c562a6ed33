package content

import (
	"medquiz/internal/domain/models/catalog"
)

// Selection is a multi-select set keyed by composite item key, so a
// folder and a quiz that happen to share an id never collide. Insertion
// order is preserved; Items returns members in the order they were
// toggled in, which is the order a batch move applies them in.
// Selection is not safe for concurrent use; the orchestrator owns it
// behind its own lock.
type Selection struct {
	members map[string]catalog.ItemRef
	order   []string
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{members: make(map[string]catalog.ItemRef)}
}

// Toggle adds the item if absent and removes it if present.
func (s *Selection) Toggle(item catalog.ItemRef) {
	key := item.Key()
	if _, ok := s.members[key]; ok {
		delete(s.members, key)
		for i, k := range s.order {
			if k == key {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.members[key] = item
	s.order = append(s.order, key)
}

// Contains reports membership by composite key.
func (s *Selection) Contains(item catalog.ItemRef) bool {
	_, ok := s.members[item.Key()]
	return ok
}

// Len returns the number of selected items.
func (s *Selection) Len() int {
	return len(s.members)
}

// Items returns the selected items in insertion order.
func (s *Selection) Items() []catalog.ItemRef {
	items := make([]catalog.ItemRef, 0, len(s.order))
	for _, key := range s.order {
		items = append(items, s.members[key])
	}
	return items
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.members = make(map[string]catalog.ItemRef)
	s.order = s.order[:0]
}

// ExpansionSet tracks which containers are open in the tree view,
// keyed by composite key like Selection so types never collide.
type ExpansionSet struct {
	open map[string]bool
}

// NewExpansionSet returns a set with nothing expanded.
func NewExpansionSet() *ExpansionSet {
	return &ExpansionSet{open: make(map[string]bool)}
}

// Toggle flips the expanded state of a container.
func (e *ExpansionSet) Toggle(item catalog.ItemRef) {
	key := item.Key()
	if e.open[key] {
		delete(e.open, key)
		return
	}
	e.open[key] = true
}

// IsExpanded reports whether a container is open.
func (e *ExpansionSet) IsExpanded(item catalog.ItemRef) bool {
	return e.open[item.Key()]
}
