package usecases

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transfers_payments_total",
		Help: "Payment attempts by direction and outcome",
	}, []string{"direction", "outcome"})

	reconciliationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transfers_reconciliations_total",
		Help: "Reconciliation runs by result",
	}, []string{"result"})

	providerCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "transfers_provider_call_duration_seconds",
		Help:    "Latency distribution of calls to the ACH provider",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation"})
)

const (
	outcomeProcessed          = "processed"
	outcomeDeclined           = "declined"
	outcomeUserActionRequired = "user_action_required"
	outcomeError              = "error"

	reconcileResultUpdated   = "updated"
	reconcileResultUnchanged = "unchanged"
	reconcileResultSkipped   = "skipped"
)
