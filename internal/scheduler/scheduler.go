package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kjannette/sidebar-pricebot/internal/display"
	"github.com/kjannette/sidebar-pricebot/internal/external"
	"github.com/kjannette/sidebar-pricebot/internal/gas"
	"github.com/kjannette/sidebar-pricebot/internal/metrics"
	"github.com/kjannette/sidebar-pricebot/internal/models"
	"github.com/kjannette/sidebar-pricebot/internal/pricing"
	"github.com/kjannette/sidebar-pricebot/internal/rotation"
)

// Modes reported by Scheduler.Mode.
const (
	ModePrice  = "price"
	ModeRotate = "rotate"
	ModeGas    = "gas"
)

// PriceFetcher returns raw quotes for the symbols the source recognizes.
type PriceFetcher interface {
	GetPrices(ctx context.Context, symbols []string) (map[string]models.RawQuote, error)
}

type Config struct {
	Ticker          string
	RefreshInterval time.Duration // e.g. 60*time.Second
	RotateInterval  time.Duration // e.g. 10*time.Second
	Rotate          bool

	Fetcher PriceFetcher
	// Gas, when set, replaces the price pipeline entirely.
	Gas       *gas.Adapter
	Publisher display.Publisher
	Metrics   *metrics.Metrics

	OnSnapshot func(snap *models.Snapshot)
}

// Scheduler runs the refresh job and, with rotation on, the rotation job.
// The two only share the snapshot pointer. A newer snapshot replaces the
// old one whole, and whichever cycle finishes last wins, so rotation may
// show a value one tick stale.
type Scheduler struct {
	cfg    Config
	log    zerolog.Logger
	engine *rotation.Engine
	now    func() time.Time

	snapshot    atomic.Pointer[models.Snapshot]
	lastRefresh atomic.Int64

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func New(cfg Config, log zerolog.Logger) *Scheduler {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 60 * time.Second
	}
	if cfg.RotateInterval <= 0 {
		cfg.RotateInterval = 10 * time.Second
	}
	if cfg.Publisher == nil {
		cfg.Publisher = display.Multi{}
	}
	s := &Scheduler{
		cfg: cfg,
		log: log,
		now: time.Now,
	}
	s.engine = rotation.NewEngine(s.Snapshot, cfg.Publisher, log.With().Str("component", "rotation").Logger(), cfg.Metrics)
	return s
}

// Mode reports which pipeline the scheduler drives.
func (s *Scheduler) Mode() string {
	switch {
	case s.cfg.Gas != nil:
		return ModeGas
	case s.cfg.Rotate:
		return ModeRotate
	default:
		return ModePrice
	}
}

// Snapshot returns the live snapshot, or nil before the first refresh.
func (s *Scheduler) Snapshot() *models.Snapshot { return s.snapshot.Load() }

// LastRefresh is the time of the last successful refresh, zero if none.
func (s *Scheduler) LastRefresh() time.Time {
	n := s.lastRefresh.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

// Start fires one refresh right away and then one per interval. Every
// cycle runs on its own goroutine so a hung fetch never holds up the
// next tick or the rotation job.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Warn().Msg("scheduler already running")
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	ctx, s.cancel = context.WithCancel(ctx)
	stopCh := s.stopCh
	s.mu.Unlock()

	s.spawnCycle(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.spawnCycle(ctx)
			}
		}
	}()

	if s.Mode() == ModeRotate {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			ticker := time.NewTicker(s.cfg.RotateInterval)
			defer ticker.Stop()
			for {
				select {
				case <-stopCh:
					return
				case <-ctx.Done():
					return
				case <-ticker.C:
					s.Rotate(ctx)
				}
			}
		}()
	}

	s.log.Info().
		Str("mode", s.Mode()).
		Str("ticker", s.cfg.Ticker).
		Dur("refresh_interval", s.cfg.RefreshInterval).
		Dur("rotate_interval", s.cfg.RotateInterval).
		Msg("scheduler started")
}

// Stop ends both jobs, cancels in-flight cycles and waits for them.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	s.cancel()
	s.running = false
	s.mu.Unlock()

	s.wg.Wait()
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) spawnCycle(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = s.RefreshNow(ctx)
	}()
}

// RefreshNow runs one refresh cycle outside the normal schedule. Errors
// are logged and also returned.
func (s *Scheduler) RefreshNow(ctx context.Context) error {
	if s.cfg.Gas != nil {
		if err := s.cfg.Gas.Refresh(ctx); err != nil {
			return err
		}
		s.lastRefresh.Store(s.now().UnixNano())
		return nil
	}
	return s.refreshPrices(ctx)
}

// Rotate runs one rotation tick. It is what the rotation job calls.
func (s *Scheduler) Rotate(ctx context.Context) (models.Denomination, rotation.Outcome) {
	return s.engine.Tick(ctx)
}

func (s *Scheduler) refreshPrices(ctx context.Context) error {
	start := s.now()
	id := uuid.New()
	log := s.log.With().Str("cycle", id.String()).Logger()

	symbols := pricing.Symbols(s.cfg.Ticker, s.cfg.Rotate)
	raw, err := s.cfg.Fetcher.GetPrices(ctx, symbols)
	if err != nil {
		result := metrics.ResultFetchError
		var pe *external.ParseError
		if errors.As(err, &pe) {
			result = metrics.ResultParseError
		}
		s.cfg.Metrics.ObserveRefresh(result, s.now().Sub(start), start)
		log.Error().Err(err).Strs("symbols", symbols).Msg("price fetch failed")
		return err
	}

	snap := pricing.BuildSnapshot(id, s.cfg.Ticker, raw, s.cfg.Rotate, start)
	s.snapshot.Store(snap)
	for sym, q := range snap.Quotes {
		s.cfg.Metrics.SetPrice(sym, q.CurrentPrice)
	}

	if snap.Empty() {
		s.cfg.Metrics.ObserveRefresh(metrics.ResultEmpty, s.now().Sub(start), start)
		log.Warn().Strs("requested", symbols).Strs("found", foundSymbols(raw)).Msg("ticker not returned by price source")
		return nil
	}

	s.lastRefresh.Store(start.UnixNano())
	s.cfg.Metrics.ObserveRefresh(metrics.ResultOK, s.now().Sub(start), start)
	log.Debug().
		Float64("price", snap.Native.CurrentPrice).
		Float64("change_24h", snap.Native.Change24h).
		Int("cross", len(snap.Cross)).
		Msg("snapshot refreshed")

	if s.cfg.OnSnapshot != nil {
		s.cfg.OnSnapshot(snap)
	}

	if !s.cfg.Rotate {
		s.cfg.Publisher.Publish(ctx, display.Native(snap.Ticker, *snap.Native, s.now()))
	}
	return nil
}

func foundSymbols(raw map[string]models.RawQuote) []string {
	out := make([]string, 0, len(raw))
	for sym := range raw {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
