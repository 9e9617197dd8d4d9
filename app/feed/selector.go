package feed

import (
	"sort"

	"github.com/sitecast/sitecast/app/content"
)

type Selector struct{}

func NewSelector() *Selector {
	return &Selector{}
}

// Run filters out items matching the exclusion predicate and sorts the
// remainder by descending creation date. The sort is stable, so items
// sharing a date keep their input order.
func (s *Selector) Run(items []content.Item, exclude Predicate) []content.Item {
	selected := make([]content.Item, 0, len(items))
	for _, item := range items {
		if exclude != nil && exclude(item) {
			continue
		}
		selected = append(selected, item)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Date.After(selected[j].Date)
	})

	return selected
}
