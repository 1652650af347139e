package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Inbound Telegram updates by kind.",
	}, []string{"kind"})

	GuidesDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_guides_delivered_total",
		Help: "Catalog items delivered to users.",
	})

	ConsultationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_consultations_total",
		Help: "Confirmed consultation requests.",
	})

	PendingReviews = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bot_pending_reviews",
		Help: "Claims waiting for manual review.",
	})

	PollRestarts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_poll_restarts_total",
		Help: "Long-poll restarts after a conflict.",
	})
)
