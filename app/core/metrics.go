package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/corpora-ai/corpora/pkg/metrics"
)

type Metrics struct {
	apiResponseTime      *prometheus.HistogramVec
	apiErrorCounter      *prometheus.CounterVec
	embeddingRequestTime *prometheus.HistogramVec
	embeddingError       *prometheus.CounterVec
	ingestedChunks       *prometheus.CounterVec
	searchTime           *prometheus.HistogramVec
}

func NewMetrics(ns, system string) *Metrics {
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	m := &Metrics{
		apiResponseTime:      metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter:      metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		embeddingRequestTime: metrics.NewHistogramVec("embedding_request_time", []string{"target"}),
		embeddingError:       metrics.NewCounterVec("embedding_error", []string{"type"}),
		ingestedChunks:       metrics.NewCounterVec("ingested_chunks", []string{"tenant"}),
		searchTime:           metrics.NewHistogramVec("search_time", nil),
	}

	return m
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) EmbeddingRequestTimer(target string) *prometheus.Timer {
	return prometheus.NewTimer(m.embeddingRequestTime.WithLabelValues(target))
}

func (m *Metrics) EmbeddingErrorInc(kind string) {
	m.embeddingError.WithLabelValues(kind).Inc()
}

func (m *Metrics) IngestedChunksAdd(tenant string, n int) {
	m.ingestedChunks.WithLabelValues(tenant).Add(float64(n))
}

func (m *Metrics) SearchTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.searchTime.WithLabelValues())
}
