package dataset

import (
	"sort"
	"strconv"
	"strings"
)

// CompareYears orders year labels. Two integer labels compare numerically,
// integers sort before anything else, and the rest compare lexically.
func CompareYears(a, b string) int {
	ai, aErr := strconv.Atoi(strings.TrimSpace(a))
	bi, bErr := strconv.Atoi(strings.TrimSpace(b))
	switch {
	case aErr == nil && bErr == nil:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return strings.Compare(a, b)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// SortYears sorts year labels in place using CompareYears.
func SortYears(years []string) {
	sort.Slice(years, func(i, j int) bool {
		return CompareYears(years[i], years[j]) < 0
	})
}
