package metrics

import (
	"time"

	"homestay-booking/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "homestay"

// Recorder exports booking engine events. It implements shared.Metrics.
type Recorder struct {
	bookingsCreated     prometheus.Counter
	bookingsRejected    *prometheus.CounterVec
	bookingTransitions  *prometheus.CounterVec
	couponRejections    *prometheus.CounterVec
	paymentResults      *prometheus.CounterVec
	sweepRuns           *prometheus.CounterVec
	sweepExpired        prometheus.Counter
	sweepDuration       prometheus.Histogram
	httpRequestDuration *prometheus.HistogramVec
}

// NewRecorder registers every collector on reg. Tests pass a fresh prometheus.NewRegistry().
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		bookingsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Bookings created in Pending state",
		}),
		bookingsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_create_failures_total",
			Help:      "Booking creations that failed, by reason",
		}, []string{"reason"}),
		bookingTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Booking state transitions, by target status",
		}, []string{"to"}),
		couponRejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coupon_rejections_total",
			Help:      "Coupon evaluations that did not apply, by reason",
		}, []string{"reason"}),
		paymentResults: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_results_total",
			Help:      "Payment gateway results, by outcome",
		}, []string{"outcome"}),
		sweepRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeper_runs_total",
			Help:      "Expiration sweeper runs, by result",
		}, []string{"result"}),
		sweepExpired: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeper_expired_bookings_total",
			Help:      "Bookings cancelled by the expiration sweeper",
		}),
		sweepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweeper_run_duration_seconds",
			Help:      "Duration of expiration sweeper runs in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		httpRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
			},
		}, []string{"method", "route", "status"}),
	}
}

var _ shared.Metrics = (*Recorder)(nil)

func (r *Recorder) BookingCreated() {
	r.bookingsCreated.Inc()
}

func (r *Recorder) BookingRejected(reason string) {
	r.bookingsRejected.WithLabelValues(reason).Inc()
}

func (r *Recorder) BookingTransitioned(to string) {
	r.bookingTransitions.WithLabelValues(to).Inc()
}

func (r *Recorder) CouponRejected(reason string) {
	r.couponRejections.WithLabelValues(reason).Inc()
}

func (r *Recorder) PaymentRecorded(outcome string) {
	r.paymentResults.WithLabelValues(outcome).Inc()
}

func (r *Recorder) SweepFinished(expired int, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.sweepRuns.WithLabelValues(result).Inc()
	r.sweepExpired.Add(float64(expired))
	r.sweepDuration.Observe(d.Seconds())
}

// ObserveHTTP is called by the request logging middleware.
func (r *Recorder) ObserveHTTP(method, route, status string, d time.Duration) {
	r.httpRequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}
