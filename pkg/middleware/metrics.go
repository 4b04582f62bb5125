package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total de requisições HTTP",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duração das requisições HTTP em segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Requisições HTTP em andamento",
		},
	)

	leadsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_created_total",
			Help: "Leads criados pela API",
		},
	)

	leadsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_imported_total",
			Help: "Linhas processadas na importação de CSV",
		},
		[]string{"result"},
	)

	leadsExported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_exports_total",
			Help: "Exportações de leads geradas",
		},
		[]string{"format"},
	)

	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Tentativas de login por resultado",
		},
		[]string{"result"},
	)
)

type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Rótulo das requisições que não casam com nenhuma rota registrada
const unmatchedRoute = "unmatched"

// MetricsMiddleware registra contagem e duração por método, padrão de rota e status.
// routePattern resolve o padrão registrado; sem ele, ou sem rota, o rótulo é "unmatched".
func MetricsMiddleware(routePattern func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			activeConnections.Inc()
			defer activeConnections.Dec()

			rw := &metricsResponseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			path := routeLabel(routePattern, r)
			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.statusCode)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

func routeLabel(routePattern func(*http.Request) string, r *http.Request) string {
	if routePattern == nil {
		return unmatchedRoute
	}
	if pattern := routePattern(r); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}

func RecordLeadCreated() {
	leadsCreated.Inc()
}

func RecordImport(imported, failed int) {
	leadsImported.WithLabelValues("imported").Add(float64(imported))
	leadsImported.WithLabelValues("failed").Add(float64(failed))
}

func RecordExport(format string) {
	leadsExported.WithLabelValues(format).Inc()
}

func RecordLoginAttempt(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}
