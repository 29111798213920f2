package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Enrollments counts per-course enrollment attempts by outcome.
	Enrollments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coursehub",
		Subsystem: "enrollment",
		Name:      "courses_total",
		Help:      "Per-course enrollment attempts.",
	}, []string{"outcome"})

	// Emails counts delivery attempts by kind (ENROLLMENT, PAYMENT) and outcome.
	Emails = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coursehub",
		Subsystem: "mail",
		Name:      "deliveries_total",
		Help:      "Email delivery attempts.",
	}, []string{"kind", "outcome"})

	// PaymentTotal observes the mocked payment amount per capture request.
	PaymentTotal = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "coursehub",
		Subsystem: "payment",
		Name:      "capture_amount",
		Help:      "Total amount authorized per capture request, in major units.",
		Buckets:   []float64{0, 100, 500, 1000, 2500, 5000, 10000, 50000},
	})
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeQueued  = "queued"
)

func init() {
	prometheus.MustRegister(Enrollments, Emails, PaymentTotal)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
