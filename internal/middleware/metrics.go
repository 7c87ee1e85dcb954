package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carnetvoyage_http_requests_total",
		Help: "Nombre de requêtes HTTP par route, méthode et statut.",
	}, []string{"route", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "carnetvoyage_http_request_duration_seconds",
		Help:    "Durée des requêtes HTTP.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
)

// Metrics alimente le compteur et l'histogramme de latence. Le label route
// utilise le template mux pour garder une cardinalité bornée.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(lrw.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
