package emails

import (
	"slices"
	"strings"

	"mailchips/internal/model"
)

// Window is a possibly truncated view of a partition.
type Window struct {
	Entries []model.Address `json:"entries"`
	// Indexes holds the list position of each entry in Entries.
	Indexes []int           `json:"-"`
	Label   string          `json:"label"`
	// Total is the size of the untruncated partition.
	Total int `json:"total"`
	// ShowMore is true iff Total exceeds the display limit, whether or not
	// the window is expanded.
	ShowMore bool `json:"showMore"`
	Expanded bool `json:"expanded"`
}

// Hidden is the number of entries left out of the window.
func (w Window) Hidden() int { return w.Total - len(w.Entries) }

// Labels names the three containers.
type Labels struct {
	All     string `json:"all" yaml:"all"`
	Valid   string `json:"valid" yaml:"valid"`
	Invalid string `json:"invalid" yaml:"invalid"`
}

func DefaultLabels() Labels {
	return Labels{All: "", Valid: "Valid Email Addresses", Invalid: "Invalid Email Addresses"}
}

// Expanded selects which windows ignore the display limit.
type Expanded struct {
	All     bool
	Valid   bool
	Invalid bool
}

// Partitions holds every derived window.
type Partitions struct {
	All     Window `json:"all"`
	Valid   Window `json:"valid"`
	Invalid Window `json:"invalid"`
}

// Sorted returns a copy of list ordered by cmp. A nil cmp keeps insertion
// order. Entries that compare equal may end up in any relative order.
func Sorted(list []model.Address, cmp model.Comparator) []model.Address {
	order := sortedIndexes(list, cmp)
	out := make([]model.Address, len(order))
	for i, j := range order {
		out[i] = list[j]
	}
	return out
}

// sortedIndexes returns the list positions in display order.
func sortedIndexes(list []model.Address, cmp model.Comparator) []int {
	order := make([]int, len(list))
	for i := range order {
		order[i] = i
	}
	if cmp != nil {
		slices.SortFunc(order, func(a, b int) int { return cmp(list[a], list[b]) })
	}
	return order
}

// Partition filters list by validity and truncates each side to limit
// entries unless expanded. A limit <= 0 disables truncation.
func Partition(list []model.Address, limit int, exp Expanded, labels Labels, cmp model.Comparator) Partitions {
	all := sortedIndexes(list, cmp)
	var valid, invalid []int
	for _, i := range all {
		if list[i].Invalid {
			invalid = append(invalid, i)
		} else {
			valid = append(valid, i)
		}
	}
	return Partitions{
		All:     window(list, all, limit, exp.All, labels.All),
		Valid:   window(list, valid, limit, exp.Valid, labels.Valid),
		Invalid: window(list, invalid, limit, exp.Invalid, labels.Invalid),
	}
}

func window(list []model.Address, idx []int, limit int, expanded bool, label string) Window {
	w := Window{
		Label:    label,
		Total:    len(idx),
		ShowMore: limit > 0 && len(idx) > limit,
		Expanded: expanded,
	}
	if w.ShowMore && !expanded {
		idx = idx[:limit]
	}
	w.Entries = make([]model.Address, len(idx))
	w.Indexes = make([]int, len(idx))
	for i, j := range idx {
		w.Entries[i] = list[j]
		w.Indexes[i] = j
	}
	return w
}

// Named comparators selectable from configuration.
var comparators = map[string]model.Comparator{
	"asc": func(a, b model.Address) int {
		return strings.Compare(strings.ToLower(a.Email), strings.ToLower(b.Email))
	},
	"desc": func(a, b model.Address) int {
		return strings.Compare(strings.ToLower(b.Email), strings.ToLower(a.Email))
	},
	"domain": func(a, b model.Address) int {
		if c := strings.Compare(a.Domain(), b.Domain()); c != 0 {
			return c
		}
		return strings.Compare(strings.ToLower(a.Email), strings.ToLower(b.Email))
	},
}

// ComparatorByName resolves a sort name. "" and "none" mean insertion order.
func ComparatorByName(name string) (model.Comparator, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, true
	}
	c, ok := comparators[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
