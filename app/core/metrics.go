package core

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/study-manager/study-manager/pkg/metrics"
)

type Metrics struct {
	manager         *metrics.Manager
	apiResponseTime *prometheus.HistogramVec
	apiErrorCounter *prometheus.CounterVec
	storeErrorCount *prometheus.CounterVec
}

func NewMetrics(ns, system string) *Metrics {
	manager := metrics.NewManager(ns, system)

	m := &Metrics{
		manager:         manager,
		apiResponseTime: manager.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter: manager.NewCounterVec("api_error", []string{"method", "api", "status"}),
		storeErrorCount: manager.NewCounterVec("store_error", []string{"operation"}),
	}

	return m
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) StoreErrorInc(operation string) {
	m.storeErrorCount.WithLabelValues(operation).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.manager.Registry()
}

func (m *Metrics) ExportHandler() gin.HandlerFunc {
	return m.manager.ExportHandler()
}
