package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeFetched    = "fetched"
	OutcomeCached     = "cached"
	OutcomeMiss       = "miss"
	OutcomeSuperseded = "superseded"

	DeliveryDelivered = "delivered"
	DeliveryFailed    = "failed"
	DeliveryQueued    = "queued"
)

var (
	// FetchOutcomes считает результаты выборок списка инцидентов
	FetchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "citizen_report",
		Name:      "incident_fetch_total",
		Help:      "Incident list fetches by outcome.",
	}, []string{"outcome"})

	// NotifyDeliveries считает отправку уведомлений о новых инцидентах
	NotifyDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "citizen_report",
		Name:      "notify_deliveries_total",
		Help:      "New incident notifications by delivery result.",
	}, []string{"result"})
)
