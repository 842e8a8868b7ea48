package feed

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/gtfsrt-feed-monitor/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfsrt-feed-monitor/metrics"
)

// Fetcher retrieves one raw feed payload. *gtfsrt.Client satisfies it; tests
// substitute a fake.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Scheduler drives the periodic fetch-decode-normalize-publish cycle. It is
// the sole writer to the Store and the sole catcher of transport and decode
// errors: a failed cycle is logged and recorded, the previously published
// snapshot stays visible, and the next attempt waits for the next tick.
type Scheduler struct {
	fetcher  Fetcher
	store    *Store
	interval time.Duration
	metrics  *metrics.Collector

	inFlight atomic.Bool

	mu      sync.Mutex
	lastErr error
}

// NewScheduler creates a scheduler. collector may be nil to disable metrics.
func NewScheduler(fetcher Fetcher, store *Store, interval time.Duration, collector *metrics.Collector) *Scheduler {
	return &Scheduler{
		fetcher:  fetcher,
		store:    store,
		interval: interval,
		metrics:  collector,
	}
}

// Run refreshes once immediately, then on every tick until ctx is
// cancelled. A tick that fires while the previous cycle is still running is
// skipped, so at most one refresh is in flight.
func (s *Scheduler) Run(ctx context.Context) {
	log.Info().Dur("interval", s.interval).Msg("Starting feed refresh scheduler")
	s.tryRefresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Feed refresh scheduler stopped")
			return
		case <-ticker.C:
			s.tryRefresh(ctx)
		}
	}
}

// LastError returns the error recorded by the most recent cycle, or nil
// after a successful one.
func (s *Scheduler) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Scheduler) tryRefresh(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		log.Warn().Msg("Previous refresh cycle still running, skipping tick")
		if s.metrics != nil {
			s.metrics.RefreshTotal.WithLabelValues(metrics.ResultSkipped).Inc()
		}
		return
	}
	go func() {
		defer s.inFlight.Store(false)
		s.refresh(ctx)
	}()
}

// refresh runs one full cycle. The whole cycle is bounded by the refresh
// interval so an overrunning fetch is abandoned instead of delaying the
// next tick indefinitely.
func (s *Scheduler) refresh(ctx context.Context) {
	start := time.Now()
	cctx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	data, err := s.fetcher.Fetch(cctx)
	if err != nil {
		s.fail(metrics.ResultTransportError, start, err)
		return
	}

	entities, err := gtfsrt.Decode(data)
	if err != nil {
		s.fail(metrics.ResultDecodeError, start, err)
		return
	}

	snap := Normalize(entities, time.Now().UTC())
	s.store.Publish(snap)
	s.setLastError(nil)

	if s.metrics != nil {
		s.metrics.ObserveRefresh(metrics.ResultSuccess, time.Since(start))
		s.metrics.SetSnapshot(len(snap.TripUpdates), len(snap.VehiclePositions), snap.FetchedAt)
	}
	log.Info().
		Int("tripUpdates", len(snap.TripUpdates)).
		Int("vehiclePositions", len(snap.VehiclePositions)).
		Dur("took", time.Since(start)).
		Msg("Feed snapshot refreshed")
}

func (s *Scheduler) fail(result string, start time.Time, err error) {
	s.setLastError(err)
	if s.metrics != nil {
		s.metrics.ObserveRefresh(result, time.Since(start))
	}
	log.Error().Err(err).Msg("Refresh cycle failed, keeping previous snapshot")
}

func (s *Scheduler) setLastError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}
