package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	forestsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tablemerge_forests_created_total",
		Help: "Total number of forests created",
	})

	forestsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tablemerge_forests_active",
		Help: "Number of forests currently held in memory",
	})

	mergesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tablemerge_merges_total",
		Help: "Total number of merge requests applied",
	}, []string{"result"}) // merged, redundant

	mergeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tablemerge_merge_duration_seconds",
		Help:    "Duration of a single merge",
		Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to ~260ms
	})
)
