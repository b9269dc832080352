package dash

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/midbel/barchart"
	"github.com/midbel/barchart/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Board keeps one chart per panel and re-renders all of them each time a new
// snapshot is pulled from its source.
type Board struct {
	source Source
	panels []Panel

	refresh sync.Mutex

	mu       sync.RWMutex
	charts   map[string]*barchart.Chart
	snapshot *Snapshot
	updated  time.Time
	err      error
}

func NewBoard(src Source, panels []Panel) (*Board, error) {
	b := Board{
		source: src,
		panels: panels,
		charts: make(map[string]*barchart.Chart),
	}
	for _, p := range panels {
		c, err := barchart.NewChart(p.Config)
		if err != nil {
			return nil, fmt.Errorf("panel %s: %w", p.Name, err)
		}
		b.charts[p.Name] = c
	}
	return &b, nil
}

func (b *Board) Panels() []Panel {
	return b.panels
}

// Mount performs the initial render of every panel. Panels that already hold
// a rendered scene are left untouched.
func (b *Board) Mount(ctx context.Context) error {
	return b.update(ctx, "mount", func(c *barchart.Chart, data []barchart.Datum) {
		c.Mount(data)
	})
}

func (b *Board) Refresh(ctx context.Context) error {
	return b.update(ctx, "refresh", func(c *barchart.Chart, data []barchart.Datum) {
		c.Render(data)
	})
}

func (b *Board) update(ctx context.Context, op string, draw func(*barchart.Chart, []barchart.Datum)) error {
	b.refresh.Lock()
	defer b.refresh.Unlock()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "board."+op)
	defer span.End()

	start := time.Now()
	snap, err := b.source.Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		b.mu.Lock()
		b.err = err
		b.mu.Unlock()
		logging.Error().With(logging.ErrorField(err), logging.Duration(time.Since(start))).Msg("snapshot fetch failed")
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.panels {
		var (
			data  = p.Data(snap)
			chart = b.charts[p.Name]
		)
		draw(chart, data)
		logging.Debug().With(logging.Panel(p.Name), logging.Bars(len(chart.Scene().Bars))).Msg("panel rendered")
	}
	b.snapshot = snap
	b.updated = time.Now()
	b.err = nil

	span.SetAttributes(attribute.Int("panels", len(b.panels)))
	logging.Info().With(logging.Duration(time.Since(start))).Msg("dashboard " + op)
	return nil
}

// Run refreshes the board at the given interval until the context is done.
func (b *Board) Run(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	tick := time.NewTicker(every)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			b.Refresh(ctx)
		}
	}
}

func (b *Board) Scene(name string) (barchart.Scene, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.charts[name]
	if !ok {
		return barchart.Scene{}, fmt.Errorf("%w: %s", ErrUnknownPanel, name)
	}
	return c.Scene(), nil
}

func (b *Board) State(name string) (barchart.State, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.charts[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPanel, name)
	}
	return c.State(), nil
}

func (b *Board) Snapshot() (*Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	return b.snapshot, nil
}

func (b *Board) Updated() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updated
}

func (b *Board) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.err
}
