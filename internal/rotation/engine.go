// Package rotation cycles the displayed denomination through USD, ETH
// and BTC on its own tick.
package rotation

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kjannette/sidebar-pricebot/internal/display"
	"github.com/kjannette/sidebar-pricebot/internal/metrics"
	"github.com/kjannette/sidebar-pricebot/internal/models"
)

// Outcome of one tick.
type Outcome string

const (
	// Idle means there was no usable snapshot; the cursor did not move.
	Idle Outcome = "idle"
	// Published means a display went out.
	Published Outcome = "published"
	// SelfReference means the cursor pointed at the primary ticker itself.
	SelfReference Outcome = "self_reference"
	// Unavailable means the snapshot had no payload for the cursor.
	Unavailable Outcome = "unavailable"
)

// SnapshotFunc returns the live snapshot, or nil before the first refresh.
type SnapshotFunc func() *models.Snapshot

// Engine owns the rotation cursor. Tick must only be called from one
// goroutine.
type Engine struct {
	snapshot SnapshotFunc
	pub      display.Publisher
	log      zerolog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	cursor  models.Denomination
	started bool
}

func NewEngine(snapshot SnapshotFunc, pub display.Publisher, log zerolog.Logger, m *metrics.Metrics) *Engine {
	return &Engine{
		snapshot: snapshot,
		pub:      pub,
		log:      log,
		metrics:  m,
		now:      time.Now,
		cursor:   models.Native,
	}
}

// Cursor is the denomination chosen by the last tick.
func (e *Engine) Cursor() models.Denomination { return e.cursor }

// Tick advances the cursor and publishes the snapshot's payload for it.
// The first tick with data shows Native without advancing.
func (e *Engine) Tick(ctx context.Context) (models.Denomination, Outcome) {
	snap := e.snapshot()
	if snap.Empty() {
		e.metrics.ObserveRotation(e.cursor.String(), string(Idle))
		return e.cursor, Idle
	}

	if e.started {
		e.cursor = e.cursor.Next()
	} else {
		e.started = true
	}
	d := e.cursor

	outcome := e.show(ctx, snap, d)
	e.metrics.ObserveRotation(d.String(), string(outcome))
	return d, outcome
}

func (e *Engine) show(ctx context.Context, snap *models.Snapshot, d models.Denomination) Outcome {
	if ref := d.RefSymbol(); ref != "" && ref == snap.Ticker {
		e.log.Debug().Str("denomination", d.String()).Msg("skipping self-referencing denomination")
		return SelfReference
	}
	disp, ok := display.Resolve(snap, d, e.now())
	if !ok {
		e.log.Debug().
			Str("denomination", d.String()).
			Str("cycle", snap.CycleID.String()).
			Msg("no quote for denomination")
		return Unavailable
	}
	e.pub.Publish(ctx, disp)
	return Published
}
