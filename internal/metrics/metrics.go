package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics for audio generation
type Metrics struct {
	GenerationsStarted  prometheus.Counter
	GenerationsFailed   *prometheus.CounterVec
	GenerationsRejected prometheus.Counter
	GenerationDuration  prometheus.Histogram
	AudioBytes          prometheus.Histogram
	InputCharacters     prometheus.Histogram
	GenerationsByVoice  *prometheus.CounterVec
}

// NewMetrics creates the metrics and registers them with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GenerationsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "ttsstudio_generations_started_total",
			Help: "Total number of generation requests that reached the synthesizer",
		}),
		GenerationsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ttsstudio_generations_failed_total",
			Help: "Total number of failed generations by stage",
		}, []string{"stage"}),
		GenerationsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "ttsstudio_generations_rejected_total",
			Help: "Total number of requests rejected before synthesis (empty text or invalid selections)",
		}),
		GenerationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ttsstudio_generation_duration_seconds",
			Help:    "Time from synthesis request to saved file",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}),
		AudioBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ttsstudio_audio_bytes",
			Help:    "Size of saved audio artifacts in bytes",
			Buckets: prometheus.ExponentialBuckets(16*1024, 2, 10),
		}),
		InputCharacters: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ttsstudio_input_characters",
			Help:    "Length of the transformed input text",
			Buckets: []float64{100, 250, 500, 1000, 2000, 4096},
		}),
		GenerationsByVoice: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ttsstudio_generations_completed_total",
			Help: "Total number of completed generations by voice",
		}, []string{"voice"}),
	}
}

// Failure stages
const (
	StageSynthesis = "synthesis"
	StageStorage   = "storage"
)
