package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"delivery-map-service/internal/ports"
)

// PlacementController tracks which record, if any, awaits a manually placed
// coordinate. At most one record is pending at a time; a new request
// silently replaces the previous target. The pending target is session
// state only; it is never persisted and a restart returns to idle.
type PlacementController struct {
	store ports.RecordStore
	log   *zap.Logger

	mu      sync.Mutex
	pending *string
}

func NewPlacementController(store ports.RecordStore, log *zap.Logger) *PlacementController {
	return &PlacementController{store: store, log: log}
}

// Enable marks the record as awaiting placement. The last request wins;
// there is no queueing.
func (c *PlacementController) Enable(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil && *c.pending != id {
		c.log.Debug("replacing pending placement target",
			zap.String("old", *c.pending),
			zap.String("new", id),
		)
	}
	c.pending = &id
}

// Pending returns the id awaiting placement, or nil when idle.
func (c *PlacementController) Pending() *string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return nil
	}
	id := *c.pending
	return &id
}

// Cancel returns to idle without applying a coordinate.
func (c *PlacementController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// MapClicked consumes one map click. While a record is pending, the clicked
// coordinate is applied to it; a target that vanished from the store is
// absorbed by the store's no-op semantics. Clicks outside placement mode are
// ignored. The controller returns to idle on every click, regardless of
// outcome, so it can never get stuck.
func (c *PlacementController) MapClicked(ctx context.Context, lat float64, lon float64) (*string, error) {
	c.mu.Lock()
	target := c.pending
	c.pending = nil
	c.mu.Unlock()

	if target == nil {
		return nil, nil
	}

	if err := c.store.SetCoordinates(ctx, *target, lat, lon); err != nil {
		return nil, fmt.Errorf("apply placement for %q: %w", *target, err)
	}

	c.log.Info("placement applied",
		zap.String("id", *target),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
	)

	return target, nil
}
