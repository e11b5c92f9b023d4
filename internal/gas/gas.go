// Package gas replaces the price pipeline with a gas fee display when the
// ticker is one of the gas sentinels.
package gas

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/kjannette/sidebar-pricebot/internal/display"
	"github.com/kjannette/sidebar-pricebot/internal/external"
	"github.com/kjannette/sidebar-pricebot/internal/metrics"
	"github.com/kjannette/sidebar-pricebot/internal/models"
)

// Tickers that switch the bot into gas mode.
const (
	SentinelCode  = "ETHEREUMGASTICKER"
	SentinelEmoji = "⛽"
)

func IsSentinel(ticker string) bool {
	t := strings.TrimSpace(ticker)
	return strings.EqualFold(t, SentinelCode) || t == SentinelEmoji
}

// Oracle returns one fee reading.
type Oracle interface {
	Name() string
	GasReading(ctx context.Context) (models.GasReading, error)
}

// Adapter reads an oracle and publishes the result. A failed reading
// leaves the previous display in place.
type Adapter struct {
	oracle  Oracle
	pub     display.Publisher
	log     zerolog.Logger
	metrics *metrics.Metrics
	ticker  string
	now     func() time.Time

	last atomic.Pointer[models.GasReading]
}

func NewAdapter(ticker string, oracle Oracle, pub display.Publisher, log zerolog.Logger, m *metrics.Metrics) *Adapter {
	return &Adapter{
		oracle:  oracle,
		pub:     pub,
		log:     log,
		metrics: m,
		ticker:  ticker,
		now:     time.Now,
	}
}

// Last returns the most recent successful reading, or nil.
func (a *Adapter) Last() *models.GasReading { return a.last.Load() }

// Refresh performs one reading. Failures are logged here; the returned
// error is for callers that want to inspect it.
func (a *Adapter) Refresh(ctx context.Context) error {
	r, err := a.oracle.GasReading(ctx)
	if err != nil {
		var pe *external.ParseError
		if errors.As(err, &pe) {
			a.metrics.ObserveGas(a.oracle.Name(), metrics.ResultParseError, 0, 0, 0)
			a.log.Error().Err(err).Str("oracle", a.oracle.Name()).Str("field", pe.Field).Msg("gas oracle response incomplete")
			return err
		}
		a.metrics.ObserveGas(a.oracle.Name(), metrics.ResultFetchError, 0, 0, 0)
		a.log.Error().Err(err).Str("oracle", a.oracle.Name()).Msg("gas oracle request failed")
		return err
	}

	a.last.Store(&r)
	a.metrics.ObserveGas(a.oracle.Name(), metrics.ResultOK,
		r.Fast.InexactFloat64(), r.Standard.InexactFloat64(), r.Slow.InexactFloat64())
	a.log.Debug().
		Str("oracle", r.Source).
		Stringer("fast", r.Fast).
		Stringer("standard", r.Standard).
		Stringer("slow", r.Slow).
		Msg("gas reading")

	a.pub.Publish(ctx, display.Gas(a.ticker, r, a.now()))
	return nil
}

// Fallback asks each oracle in order and returns the first success.
type Fallback []Oracle

func (f Fallback) Name() string {
	names := make([]string, len(f))
	for i, o := range f {
		names[i] = o.Name()
	}
	return strings.Join(names, "+")
}

func (f Fallback) GasReading(ctx context.Context) (models.GasReading, error) {
	var errs []error
	for _, o := range f {
		r, err := o.GasReading(ctx)
		if err == nil {
			return r, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return models.GasReading{}, errors.New("no gas oracle configured")
	}
	return models.GasReading{}, errors.Join(errs...)
}
