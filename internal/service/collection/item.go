package collection

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// Item is one entry of a user-owned listable collection.
type Item interface {
	ItemID() uuid.UUID
	// Matches reports whether the item satisfies a case-insensitive
	// substring filter. q is already lowercased and non-empty.
	Matches(q string) bool
	Timestamp() time.Time
}

// HistoryItem adapts a history entry to the list controller. Filtering
// matches on topic only.
type HistoryItem struct {
	domain.HistoryEntry
}

func (h HistoryItem) ItemID() uuid.UUID { return h.ID }

func (h HistoryItem) Matches(q string) bool {
	return strings.Contains(strings.ToLower(h.Topic), q)
}

func (h HistoryItem) Timestamp() time.Time { return h.CreatedAt }

// SavedCardItem adapts a saved card to the list controller. Filtering
// matches on topic, title and content.
type SavedCardItem struct {
	domain.SavedCard
}

func (c SavedCardItem) ItemID() uuid.UUID { return c.ID }

func (c SavedCardItem) Matches(q string) bool {
	return strings.Contains(strings.ToLower(c.Topic), q) ||
		strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Content), q)
}

func (c SavedCardItem) Timestamp() time.Time { return c.SavedAt }

// Project applies filter and sort to items and returns a new slice. It is a
// pure function of its inputs: the input slice is never mutated, and equal
// inputs always produce equal projections. The sort is stable so items with
// identical timestamps keep their load order.
func Project[T Item](items []T, filter domain.ListFilter) []T {
	out := make([]T, 0, len(items))

	q := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, it := range items {
		if q == "" || it.Matches(q) {
			out = append(out, it)
		}
	}

	sortStable(out, filter.Sort)
	return out
}

func sortStable[T Item](items []T, order domain.SortOrder) {
	sort.SliceStable(items, func(i, j int) bool {
		if order == domain.SortOldest {
			return items[i].Timestamp().Before(items[j].Timestamp())
		}
		return items[i].Timestamp().After(items[j].Timestamp())
	})
}
