package posts

import (
	"cmp"
	"slices"
)

// SortedByName returns a copy of ps ordered by output filename.
func SortedByName(ps []Post) []Post {
	out := slices.Clone(ps)
	slices.SortStableFunc(out, func(a, b Post) int {
		return cmp.Compare(a.filename, b.filename)
	})
	return out
}

// SortedByDate returns a copy of ps with the most recently modified post first.
// Posts with equal times keep their relative order.
func SortedByDate(ps []Post) []Post {
	out := slices.Clone(ps)
	slices.SortStableFunc(out, func(a, b Post) int {
		return b.modified.Compare(a.modified)
	})
	return out
}
