package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "squadup",
		Name:      "events_created_total",
		Help:      "Events created, counting every occurrence of a series.",
	})

	InvitesAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "squadup",
		Name:      "invites_accepted_total",
		Help:      "Accepted invites by kind (team or trainer).",
	}, []string{"kind"})

	ResponsesUpserted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "squadup",
		Name:      "responses_upserted_total",
		Help:      "Event responses written by status.",
	}, []string{"status"})
)
