package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// repositories
	RepoOpDuration  *prometheus.HistogramVec
	RepoErrorsTotal *prometheus.CounterVec

	// bookings
	BookingsTotal *prometheus.CounterVec
	SeatsReserved prometheus.Counter
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "evently",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "evently",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				// Sane initial defaults
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "evently",
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		RepoOpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "evently",
				Subsystem: "repo",
				Name:      "op_duration_seconds",
				Help:      "Repository operation latency (logical op, not raw SQL)",
				Buckets:   []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.35, 0.5, 1, 2, 5},
			},
			[]string{"op", "status"},
		),
		RepoErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "evently",
				Subsystem: "repo",
				Name:      "errors_total",
				Help:      "Repository errors by logical op.",
			},
			[]string{"op"},
		),
		BookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "evently",
				Subsystem: "bookings",
				Name:      "total",
				Help:      "Booking attempts by result.",
			},
			[]string{"result"}, // result=confirmed|insufficient_seats|not_found|error
		),
		SeatsReserved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "evently",
				Subsystem: "bookings",
				Name:      "seats_reserved_total",
				Help:      "Seats successfully reserved across all events.",
			},
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight, p.RepoOpDuration, p.RepoErrorsTotal, p.BookingsTotal, p.SeatsReserved)

	return p
}

// ObserveRepo times a logical repository operation and records its outcome.
func (p *Prom) ObserveRepo(op string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "ok"
	if err != nil {
		status = "error"
		p.RepoErrorsTotal.WithLabelValues(op).Inc()
	}

	p.RepoOpDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
	return err
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// route template is only available after routing; best effort:
		route := ctx.FullPath()

		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}
