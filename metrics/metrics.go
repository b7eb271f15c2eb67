package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "link_tracker_clicks_total",
		Help: "Total number of track requests by result (new or returning visitor).",
	}, []string{"result"})
	UniqueVisitors = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "link_tracker_unique_visitors",
		Help: "Number of records in the click log as of the last load.",
	})
	StoreErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "link_tracker_store_errors_total",
		Help: "Total number of failed click log writes.",
	})
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "link_tracker_http_request_duration_seconds",
		Help:    "Duration of HTTP requests by route and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "status"})
)

const (
	ResultNew       = "new"
	ResultReturning = "returning"
)
