package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jdoc"

var sizeBuckets = prometheus.ExponentialBuckets(64, 4, 10)

// Prometheus records document events as Prometheus metrics.
type Prometheus struct {
	parses            *prometheus.CounterVec
	parseDuration     prometheus.Histogram
	parseBytes        prometheus.Histogram
	arenaBlocks       prometheus.Gauge
	serializations    prometheus.Counter
	serializeBytes    prometheus.Histogram
	serializeDuration prometheus.Histogram
}

// NewPrometheus registers the document metrics with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		parses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parses_total",
			Help:      "Number of parses by result.",
		}, []string{"result"}),
		parseDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "Time spent tokenizing and building document trees.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		parseBytes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_input_bytes",
			Help:      "Size of parsed input text.",
			Buckets:   sizeBuckets,
		}),
		arenaBlocks: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "arena_blocks",
			Help:      "Arena blocks owned by the most recently parsed document.",
		}),
		serializations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "serializations_total",
			Help:      "Number of documents rendered to text.",
		}),
		serializeBytes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "serialize_output_bytes",
			Help:      "Size of rendered output.",
			Buckets:   sizeBuckets,
		}),
		serializeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "serialize_duration_seconds",
			Help:      "Time spent sizing and rendering documents.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
}

func (p *Prometheus) OnParse(e ParseEvent) {
	result := "ok"
	if e.Err != nil {
		result = e.Err.Error()
	}
	p.parses.WithLabelValues(result).Inc()
	p.parseDuration.Observe(e.Duration.Seconds())
	p.parseBytes.Observe(float64(e.Bytes))
	p.arenaBlocks.Set(float64(e.ArenaBlocks))
}

func (p *Prometheus) OnSerialize(e SerializeEvent) {
	p.serializations.Inc()
	p.serializeBytes.Observe(float64(e.Bytes))
	p.serializeDuration.Observe(e.Duration.Seconds())
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format, for collection by a node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
