package collection

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// Store is the remote side of a controller: a user-scoped listable
// collection supporting atomic multi-item deletion.
type Store[T Item] interface {
	List(ctx context.Context) ([]T, error)
	// DeleteByIDs removes exactly the given ids or nothing at all.
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
}

// Controller maintains an in-memory projection of one remote collection:
// filter and sort state, toggled multi-selection, and all-or-nothing batch
// deletion with local-state reconciliation. The same machine backs the
// history and saved-cards views. Not safe for concurrent use; each screen
// owns one controller.
type Controller[T Item] struct {
	store Store[T]
	log   *slog.Logger

	items         []T
	filter        domain.ListFilter
	selectionMode bool
	selected      map[uuid.UUID]struct{}
}

// NewController creates a controller over store with an empty projection and
// newest-first ordering.
func NewController[T Item](log *slog.Logger, store Store[T]) *Controller[T] {
	return &Controller[T]{
		store:    store,
		log:      log.With("service", "collection"),
		filter:   domain.ListFilter{Sort: domain.SortNewest},
		selected: make(map[uuid.UUID]struct{}),
	}
}

// Load fetches the full collection and resets selection state. Filter and
// sort settings survive a reload.
func (c *Controller[T]) Load(ctx context.Context) error {
	items, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}

	c.items = items
	c.selectionMode = false
	clear(c.selected)
	return nil
}

// SetFilter replaces the substring filter.
func (c *Controller[T]) SetFilter(search string) {
	c.filter.Search = search
}

// SetSort replaces the sort direction.
func (c *Controller[T]) SetSort(order domain.SortOrder) {
	c.filter.Sort = order
}

// Projection returns the items passing the current filter in the current
// sort order. Pure with respect to controller state: calling it any number
// of times yields the same result and mutates nothing.
func (c *Controller[T]) Projection() []T {
	return Project(c.items, c.filter)
}

// SetSelectionMode enters or leaves selection mode. Leaving clears the
// selected set.
func (c *Controller[T]) SetSelectionMode(on bool) {
	c.selectionMode = on
	if !on {
		clear(c.selected)
	}
}

// SelectionMode reports whether selection mode is active.
func (c *Controller[T]) SelectionMode() bool {
	return c.selectionMode
}

// ToggleSelection flips membership of id in the selected set. No-op outside
// selection mode.
func (c *Controller[T]) ToggleSelection(id uuid.UUID) {
	if !c.selectionMode {
		return
	}
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
}

// SelectAll selects every item of the current projection. Items hidden by
// the filter are not touched, so what "all" means follows the filter.
func (c *Controller[T]) SelectAll() {
	if !c.selectionMode {
		return
	}
	for _, it := range c.Projection() {
		c.selected[it.ItemID()] = struct{}{}
	}
}

// DeselectAll removes every projected item from the selected set.
func (c *Controller[T]) DeselectAll() {
	if !c.selectionMode {
		return
	}
	for _, it := range c.Projection() {
		delete(c.selected, it.ItemID())
	}
}

// SelectedIDs returns the selected ids in a stable order.
func (c *Controller[T]) SelectedIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// DeleteSelected removes the selected items remotely and, only after the
// store confirms, locally. On any store failure local state is left exactly
// as it was: no partial removal, selection intact.
func (c *Controller[T]) DeleteSelected(ctx context.Context) error {
	ids := c.SelectedIDs()
	if len(ids) == 0 {
		return nil
	}

	if err := c.store.DeleteByIDs(ctx, ids); err != nil {
		return fmt.Errorf("batch delete %d items: %w", len(ids), err)
	}

	removed := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		removed[id] = struct{}{}
	}

	kept := c.items[:0]
	for _, it := range c.items {
		if _, gone := removed[it.ItemID()]; !gone {
			kept = append(kept, it)
		}
	}
	c.items = kept

	c.selectionMode = false
	clear(c.selected)

	c.log.Info("batch delete applied", "count", len(ids))
	return nil
}
