// Package metrics defines the Prometheus instruments for the authorization
// flow. Standalone package to keep the oauth core free of an HTTP dependency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FlowsStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "oauth_flows_started_total",
		Help: "Authorization flows initiated, per provider",
	}, []string{"provider"})

	FlowsCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "oauth_flows_completed_total",
		Help: "Authorization flows that produced a normalized identity",
	}, []string{"provider"})

	FlowsFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "oauth_flows_failed_total",
		Help: "Authorization flows that ended in error, per provider and stage",
	}, []string{"provider", "stage"})

	ExchangeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "oauth_token_exchange_duration_seconds",
		Help:    "Latency of the code-for-token exchange",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})
)

// Register registers the flow metrics on the given registry (or the default
// if nil). AlreadyRegistered is tolerated so tests can call it repeatedly.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		FlowsStarted, FlowsCompleted, FlowsFailed, ExchangeDuration,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
