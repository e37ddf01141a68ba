package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pilot_docs"

// Delivery outcomes recorded by [Domain.Delivery].
const (
	OutcomeDelivered      = "delivered"
	OutcomeFallback       = "fallback"
	OutcomeFallbackFailed = "fallback_failed"
	OutcomeFailed         = "failed"
)

// Domain holds the business counters. A nil *Domain is valid and records
// nothing, so services can be built without a registry in tests.
type Domain struct {
	uploadsStored   prometheus.Counter
	uploadBytes     prometheus.Counter
	deliveries      *prometheus.CounterVec
	sweepDeleted    prometheus.Counter
	sweepFreedBytes prometheus.Counter
	sweepFailures   prometheus.Counter
}

// NewDomain registers the domain counters on registry.
func NewDomain(registry prometheus.Registerer) *Domain {
	factory := promauto.With(registry)

	return &Domain{
		uploadsStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_stored_total",
			Help:      "Number of documents written to the blob store.",
		}),
		uploadBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_bytes_total",
			Help:      "Decoded bytes written to the blob store.",
		}),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Submission notifications by delivery outcome.",
		}, []string{"outcome"}),
		sweepDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_deleted_files_total",
			Help:      "Expired uploads removed by the sweeper.",
		}),
		sweepFreedBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_freed_bytes_total",
			Help:      "Bytes released by the sweeper.",
		}),
		sweepFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_delete_failures_total",
			Help:      "Expired uploads the sweeper failed to delete.",
		}),
	}
}

func (d *Domain) UploadStored(size int64) {
	if d == nil {
		return
	}
	d.uploadsStored.Inc()
	d.uploadBytes.Add(float64(size))
}

func (d *Domain) Delivery(outcome string) {
	if d == nil {
		return
	}
	d.deliveries.WithLabelValues(outcome).Inc()
}

// Sweep records the summary of one sweep.
func (d *Domain) Sweep(deleted int, freedBytes int64, failures int) {
	if d == nil {
		return
	}
	d.sweepDeleted.Add(float64(deleted))
	d.sweepFreedBytes.Add(float64(freedBytes))
	d.sweepFailures.Add(float64(failures))
}
