package domain

import "strings"

// SortOrder selects the direction of timestamp ordering in list views.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// ParseSortOrder maps a client-provided string to a SortOrder,
// defaulting to newest-first.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortOldest)) {
		return SortOldest
	}
	return SortNewest
}

// ListFilter contains filtering/sorting parameters for list projections.
type ListFilter struct {
	Search string
	Sort   SortOrder
}
