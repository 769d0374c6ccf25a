package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/metrics"
	"github.com/maanvikp20/promosite/internal/models"
)

// Collection serializes every load-mutate-save sequence on one backend, so
// concurrent writers cannot overwrite each other's changes.
type Collection struct {
	name    string
	backend Backend
	log     *zap.Logger
	mu      sync.Mutex
}

func NewCollection(name string, backend Backend, log *zap.Logger) *Collection {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collection{name: name, backend: backend, log: log.With(zap.String("store", name))}
}

func (c *Collection) Name() string { return c.name }

// View hands fn a copy of the current snapshot. Corrupt data is served as
// an empty collection.
func (c *Collection) View(ctx context.Context, fn func(records []models.Record) error) error {
	c.mu.Lock()
	records, err := c.load(ctx)
	c.mu.Unlock()

	if errors.Is(err, ErrCorrupt) {
		c.log.Warn("store is corrupt, serving empty collection", zap.Error(err))
		records = []models.Record{}
	} else if err != nil {
		return err
	}
	return fn(records)
}

// Update loads the store, lets fn compute the next snapshot and saves it.
// Nothing is written when fn fails. Corrupt data fails the update instead
// of being replaced.
func (c *Collection) Update(ctx context.Context, fn func(records []models.Record) ([]models.Record, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	return c.save(ctx, next)
}

// MoveFunc receives both snapshots and returns both replacements.
type MoveFunc func(src, dst []models.Record) (nextSrc, nextDst []models.Record, err error)

// Move runs fn against this store and dst under both locks. The destination
// is written first; if the source write then fails the destination is put
// back, so a record is never lost and never left in both stores.
func (c *Collection) Move(ctx context.Context, dst *Collection, fn MoveFunc) error {
	if c == dst {
		return fmt.Errorf("move within store %s", c.name)
	}
	defer lockPair(c, dst)()

	src, err := c.load(ctx)
	if err != nil {
		return err
	}
	prevDst, err := dst.load(ctx)
	if err != nil {
		return err
	}
	nextSrc, nextDst, err := fn(src, models.CloneAll(prevDst))
	if err != nil {
		return err
	}

	if err := dst.save(ctx, nextDst); err != nil {
		return err
	}
	if err := c.save(ctx, nextSrc); err != nil {
		if rerr := dst.save(ctx, prevDst); rerr != nil {
			c.log.Error("rollback of destination store failed",
				zap.String("destination", dst.name), zap.Error(rerr))
		}
		return err
	}
	return nil
}

// UpdateWith is Update with a read-only snapshot of other held stable for
// the duration of fn. Only this store is written. Corrupt data in other is
// read as empty, as in View.
func (c *Collection) UpdateWith(ctx context.Context, other *Collection, fn func(records, others []models.Record) ([]models.Record, error)) error {
	if c == other {
		return fmt.Errorf("update of store %s against itself", c.name)
	}
	defer lockPair(c, other)()

	others, err := other.load(ctx)
	if errors.Is(err, ErrCorrupt) {
		other.log.Warn("store is corrupt, serving empty collection", zap.Error(err))
		others = []models.Record{}
	} else if err != nil {
		return err
	}
	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(records, others)
	if err != nil {
		return err
	}
	return c.save(ctx, next)
}

// lockPair locks both stores in name order so two-store operations cannot
// deadlock, and returns the unlock.
func lockPair(a, b *Collection) func() {
	if b.name < a.name {
		a, b = b, a
	}
	a.mu.Lock()
	b.mu.Lock()
	return func() {
		b.mu.Unlock()
		a.mu.Unlock()
	}
}

func (c *Collection) load(ctx context.Context) ([]models.Record, error) {
	start := time.Now()
	records, err := c.backend.Load(ctx)
	metrics.StoreOperationDuration.WithLabelValues(c.name, "load").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreOperationErrors.WithLabelValues(c.name, "load").Inc()
		return nil, fmt.Errorf("load %s: %w", c.name, err)
	}
	metrics.StoreRecords.WithLabelValues(c.name).Set(float64(len(records)))
	return records, nil
}

func (c *Collection) save(ctx context.Context, records []models.Record) error {
	start := time.Now()
	err := c.backend.Save(ctx, records)
	metrics.StoreOperationDuration.WithLabelValues(c.name, "save").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreOperationErrors.WithLabelValues(c.name, "save").Inc()
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	metrics.StoreRecords.WithLabelValues(c.name).Set(float64(len(records)))
	c.log.Debug("store saved", zap.Int("records", len(records)))
	return nil
}
