package metrics

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns a registry and names every vector it creates as namespace_system_name.
type Manager struct {
	namespace string
	system    string
	registry  *prometheus.Registry
}

func NewManager(ns, system string) *Manager {
	m := &Manager{
		namespace: ns,
		system:    system,
		registry:  prometheus.NewRegistry(),
	}
	m.registry.MustRegister(collectors.NewGoCollector())
	return m
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func initLabelValues(labels []string) []string {
	return make([]string, len(labels))
}

func (m *Manager) NewCounterVec(name string, labels []string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: FmtFixer(m.namespace),
			Subsystem: FmtFixer(m.system),
			Name:      FmtFixer(name),
			Help:      fmt.Sprintf("%s count of /%s/%s", name, m.namespace, m.system),
		},
		labels,
	)
	vec.WithLabelValues(initLabelValues(labels)...).Add(0)

	m.registry.MustRegister(vec)
	return vec
}

func (m *Manager) NewHistogramVec(name string, labels []string) *prometheus.HistogramVec {
	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: FmtFixer(m.namespace),
			Subsystem: FmtFixer(m.system),
			Name:      FmtFixer(name),
			Help:      fmt.Sprintf("%s duration of /%s/%s", name, m.namespace, m.system),
		},
		labels,
	)
	vec.WithLabelValues(initLabelValues(labels)...).Observe(0)

	m.registry.MustRegister(vec)
	return vec
}

func (m *Manager) ExportHandler() gin.HandlerFunc {
	h := promhttp.InstrumentMetricHandler(
		m.registry, promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}),
	)
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func FmtFixer(in string) string {
	return strings.Replace(strings.Replace(in, ".", "_", -1), "-", "_", -1)
}
