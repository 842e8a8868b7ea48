package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh cycle outcomes used as the result label on RefreshTotal.
const (
	ResultSuccess        = "success"
	ResultTransportError = "transport_error"
	ResultDecodeError    = "decode_error"
	ResultSkipped        = "skipped"
)

// Collector owns a private prometheus registry with the feed monitor's
// metrics. A private registry keeps the default Go collectors out of the
// scrape output.
type Collector struct {
	reg *prometheus.Registry

	RefreshTotal    *prometheus.CounterVec
	RefreshDuration prometheus.Histogram

	TripUpdates      prometheus.Gauge
	VehiclePositions prometheus.Gauge
	LastRefreshEpoch prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedmonitor_refresh_total",
			Help: "Refresh cycles by outcome.",
		}, []string{"result"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feedmonitor_refresh_duration_seconds",
			Help:    "Duration of successful and failed refresh cycles.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		TripUpdates: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "feedmonitor_trip_updates",
			Help: "Trip updates in the current snapshot.",
		}),
		VehiclePositions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "feedmonitor_vehicle_positions",
			Help: "Vehicle positions in the current snapshot.",
		}),
		LastRefreshEpoch: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "feedmonitor_last_refresh_timestamp_seconds",
			Help: "Unix time of the last successful refresh.",
		}),
	}

	reg.MustRegister(
		c.RefreshTotal,
		c.RefreshDuration,
		c.TripUpdates,
		c.VehiclePositions,
		c.LastRefreshEpoch,
	)
	return c
}

// ObserveRefresh records one finished cycle.
func (c *Collector) ObserveRefresh(result string, took time.Duration) {
	c.RefreshTotal.WithLabelValues(result).Inc()
	c.RefreshDuration.Observe(took.Seconds())
}

// SetSnapshot records the size and time of the currently published snapshot.
func (c *Collector) SetSnapshot(tripUpdates, vehiclePositions int, fetchedAt time.Time) {
	c.TripUpdates.Set(float64(tripUpdates))
	c.VehiclePositions.Set(float64(vehiclePositions))
	c.LastRefreshEpoch.Set(float64(fetchedAt.Unix()))
}

// Handler serves the registry in the prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
