// Package metrics exposes the relay's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "huddle_rooms_active",
		Help: "Rooms currently held in the in-memory registry.",
	})

	MembersActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "huddle_members_active",
		Help: "Connections currently joined to any room.",
	})

	EventsRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "huddle_events_relayed_total",
		Help: "Outbound signaling events accepted for delivery, by event.",
	}, []string{"event"})

	SendsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "huddle_sends_dropped_total",
		Help: "Outbound sends dropped on full client buffers or gone peers.",
	})
)

// Handler exposes Prometheus metrics, mounted at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
