package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess         = "success"
	OutcomeInvalidRequest  = "invalid_request"
	OutcomeValidationError = "validation_error"
	OutcomePredictionError = "prediction_error"
)

var (
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laptopgenius_predictions_total",
		Help: "Total number of prediction requests by outcome.",
	}, []string{"outcome"})

	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "laptopgenius_prediction_duration_seconds",
		Help:    "Duration of the configuration-to-price pipeline.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})

	predictedPrice = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "laptopgenius_predicted_price_inr",
		Help:    "Distribution of predicted prices in rupees.",
		Buckets: prometheus.ExponentialBuckets(10000, 2, 10),
	})

	optionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laptopgenius_options_served_total",
		Help: "Total number of option catalog responses.",
	})

	eventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laptopgenius_events_published_total",
		Help: "Total number of prediction events published to Redis.",
	})

	eventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laptopgenius_events_failed_total",
		Help: "Total number of prediction events that failed to publish.",
	})

	liveSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "laptopgenius_live_subscribers",
		Help: "Number of open live prediction feed connections.",
	})
)

func ObservePrediction(outcome string, took time.Duration) {
	predictionsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess || outcome == OutcomePredictionError {
		predictionDuration.Observe(took.Seconds())
	}
}

func ObservePrice(price int64) {
	predictedPrice.Observe(float64(price))
}

func OptionsServed() { optionsServed.Inc() }

func EventPublished(err error) {
	if err != nil {
		eventsFailed.Inc()
		return
	}
	eventsPublished.Inc()
}

func SubscriberConnected()    { liveSubscribers.Inc() }
func SubscriberDisconnected() { liveSubscribers.Dec() }
