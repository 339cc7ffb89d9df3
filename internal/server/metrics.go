package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "legible",
		Subsystem: "server",
		Name:      "requests_total",
		Help:      "Total API requests, by route and status.",
	}, []string{"route", "status"})

	requestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "legible",
		Subsystem: "server",
		Name:      "request_duration_seconds",
		Help:      "API request duration in seconds, by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	paletteSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "legible",
		Subsystem: "filter",
		Name:      "palette_size",
		Help:      "Number of entries in filtered palettes, by kind (text or background).",
		Buckets:   prometheus.LinearBuckets(0, 4, 10),
	}, []string{"kind"})

	editorEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "legible",
		Subsystem: "editor",
		Name:      "events_total",
		Help:      "Total picker refresh events dispatched, by format.",
	}, []string{"format"})

	storeReady = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "legible",
		Subsystem: "store",
		Name:      "ready",
		Help:      "1 once the original palettes have been captured.",
	})
)
