package observability

import (
	"net/http"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// Tool invocation rate by tool name and outcome. Watch for: error ratio per tool.
	ToolCallsTotal *prometheus.CounterVec

	// Tool invocation latency. Includes geocoding plus the data call.
	ToolCallDuration *prometheus.HistogramVec

	// Open-Meteo call rate by endpoint (geocoding, forecast, air_quality). Watch for: error vs success ratio.
	OpenMeteoCallsTotal *prometheus.CounterVec

	// Open-Meteo latency per request. Watch for: p95 > 2s (upstream degradation), p99 approaching the request timeout.
	OpenMeteoDuration *prometheus.HistogramVec

	// HTTP transport request rate. Watch for: sudden drops (service down) or spikes (traffic surge).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP transport latency per request.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent HTTP requests in flight. Watch for: saturation, capacity limits.
	HTTPRequestsInFlight prometheus.Gauge

	// Rate limit denials on the HTTP transport. Watch for: overload, capacity exceeded.
	RateLimitDeniedTotal prometheus.Counter

	// Total weather lookups across all tools. rate() for QPS.
	WeatherQueriesTotal prometheus.Counter

	// Per-city query count (allow-list; others go to "other"). Watch for: top cities, traffic distribution.
	WeatherQueriesByCityTotal *prometheus.CounterVec

	// trackedCities is built from config; used to resolve the city label.
	trackedCitiesMu sync.RWMutex
	trackedCities   map[string]struct{}
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolCallsTotal",
			Help: "Total number of MCP tool invocations",
		},
		[]string{"tool", "status"},
	)
	ToolCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toolCallDurationSeconds",
			Help:    "MCP tool invocation latency in seconds (per call)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)
	OpenMeteoCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openMeteoCallsTotal",
			Help: "Total number of Open-Meteo API calls",
		},
		[]string{"endpoint", "status"},
	)
	OpenMeteoDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "openMeteoDurationSeconds",
			Help:    "Open-Meteo API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "status"},
	)
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rateLimitDeniedTotal",
			Help: "Total number of requests denied by rate limiter (429)",
		},
	)
	WeatherQueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "weatherQueriesTotal",
			Help: "Total number of weather lookups",
		},
	)
	WeatherQueriesByCityTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherQueriesByCityTotal",
			Help: "Weather queries by city (allow-list; others use city=other)",
		},
		[]string{"city"},
	)

	registry.MustRegister(
		ToolCallsTotal, ToolCallDuration,
		OpenMeteoCallsTotal, OpenMeteoDuration,
		HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight,
		RateLimitDeniedTotal,
		WeatherQueriesTotal, WeatherQueriesByCityTotal,
	)
}

// SetTrackedCities sets the allow-list for city metrics. Non-tracked cities increment "other".
func SetTrackedCities(cities []string) {
	trackedCitiesMu.Lock()
	defer trackedCitiesMu.Unlock()
	trackedCities = make(map[string]struct{}, len(cities))
	for _, c := range cities {
		trackedCities[normalizeCityForMetrics(c)] = struct{}{}
	}
}

// RecordWeatherQuery records a weather lookup for the given city.
func RecordWeatherQuery(city string) {
	WeatherQueriesTotal.Inc()
	c := normalizeCityForMetrics(city)
	trackedCitiesMu.RLock()
	_, ok := trackedCities[c] // nil map read is safe in Go
	trackedCitiesMu.RUnlock()
	if ok {
		WeatherQueriesByCityTotal.WithLabelValues(c).Inc()
	} else {
		WeatherQueriesByCityTotal.WithLabelValues("other").Inc()
	}
}

func normalizeCityForMetrics(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return s
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
