package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/danmuck/ednsctl/internal/protocol/edns"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeDecoded = "decoded"
	OutcomeEncoded = "encoded"
	OutcomeFailed  = "failed"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ednsctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ednsctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
	httpCodecRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ednsctl",
			Subsystem: "http",
			Name:      "codec_requests_total",
			Help:      "Decode and encode requests, by route and codec outcome.",
		},
		[]string{"service", "path", "outcome"},
	)
	ednsOptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ednsctl",
			Subsystem: "edns",
			Name:      "options_total",
			Help:      "EDNS options handled, by option mnemonic and outcome.",
		},
		[]string{"option", "outcome"},
	)
	edeInfoCodes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ednsctl",
			Subsystem: "ede",
			Name:      "info_codes_total",
			Help:      "Extended DNS Error info codes seen, by numeric code.",
		},
		[]string{"info_code", "known"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, httpCodecRequests, ednsOptions, edeInfoCodes)
	})
}

func RecordHTTPRequest(service, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(service, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(service, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordCodecRequest counts one /decode or /encode request by outcome.
func RecordCodecRequest(service, path, outcome string) {
	RegisterMetrics()
	httpCodecRequests.WithLabelValues(service, path, outcome).Inc()
}

// RecordOptions counts every option in opts under outcome, and every EDE
// info code seen among them.
func RecordOptions(opts []edns.Option, outcome string) {
	RegisterMetrics()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		ednsOptions.WithLabelValues(opt.Code().String(), outcome).Inc()
		if ede, ok := opt.(*edns.ExtendedError); ok {
			edeInfoCodes.WithLabelValues(
				strconv.Itoa(int(ede.InfoCode)),
				strconv.FormatBool(ede.InfoCode.Known()),
			).Inc()
		}
	}
}

// RecordOptionFailure counts a decode or encode failure for one option code.
func RecordOptionFailure(code edns.OptionCode) {
	RegisterMetrics()
	ednsOptions.WithLabelValues(code.String(), OutcomeFailed).Inc()
}
