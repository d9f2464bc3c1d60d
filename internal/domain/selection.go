package domain

import "slices"

// Selection is the set of task IDs currently checked in the list.
// The zero value is an empty selection ready to use.
type Selection struct {
	ids map[int]struct{}
}

// Toggle adds id when selected is true and removes it otherwise.
func (s *Selection) Toggle(id int, selected bool) {
	if selected {
		if s.ids == nil {
			s.ids = make(map[int]struct{})
		}
		s.ids[id] = struct{}{}
		return
	}
	delete(s.ids, id)
}

// IsEmpty reports whether nothing is selected.
// The action bar is shown exactly when this is false.
func (s *Selection) IsEmpty() bool {
	return len(s.ids) == 0
}

// Len returns the number of selected IDs.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Clear empties the selection.
func (s *Selection) Clear() {
	clear(s.ids)
}

// IDs returns the selected IDs in ascending order.
func (s *Selection) IDs() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Single returns the selected ID when exactly one task is selected.
func (s *Selection) Single() (int, bool) {
	if len(s.ids) != 1 {
		return 0, false
	}
	for id := range s.ids {
		return id, true
	}
	return 0, false
}
