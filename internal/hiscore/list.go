// Package hiscore keeps the ranked hiscore list: merging a new entry,
// persisting the list to a flat text file and editing the player's name.
package hiscore

import (
	"cmp"
	"slices"
	"strings"
)

// MaxItems is the number of entries kept in the persisted list.
const MaxItems = 20

// AnonymousName is stored for entries submitted with an empty name.
const AnonymousName = "Anonymous"

// Item is a single hiscore record.
type Item struct {
	Name  string
	Score int
}

// List is a ranked hiscore list, highest score first.
type List []Item

// Merge appends item to list, sorts descending by score and truncates to
// MaxItems. Ties keep their input order, so an entry never overtakes an
// existing one with the same score. The input list is not modified.
// The returned rank is the new item's index, or -1 if it was cut.
func Merge(list List, item Item) (List, int) {
	merged := make(List, 0, len(list)+1)
	merged = append(merged, list...)
	merged = append(merged, item)
	newIdx := len(merged) - 1

	order := make([]int, len(merged))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(merged[b].Score, merged[a].Score)
	})

	sorted := make(List, 0, min(len(merged), MaxItems))
	rank := -1
	for pos, idx := range order {
		if pos >= MaxItems {
			break
		}
		if idx == newIdx {
			rank = pos
		}
		sorted = append(sorted, merged[idx])
	}
	return sorted, rank
}

// Qualifies reports whether score would make it onto list.
func (l List) Qualifies(score int) bool {
	if len(l) < MaxItems {
		return true
	}
	return score > l[len(l)-1].Score
}

// normalizeName trims surrounding whitespace and replaces inner whitespace so
// the name stays a single field in the file format.
func normalizeName(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		return AnonymousName
	}
	return name
}
