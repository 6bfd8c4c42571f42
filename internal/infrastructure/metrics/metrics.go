// Package metrics exposes Prometheus collectors for HTTP traffic, admissions, the wallet
// ledger and payment gateway calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "thriftwise"

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	admissions     *prometheus.CounterVec
	slotsGenerated prometheus.Counter

	verifications  *prometheus.CounterVec
	creditedAmount prometheus.Counter
	payouts        *prometheus.CounterVec
	payoutAmount   prometheus.Counter

	gatewayCalls    *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec
}

// New registers every collector with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		admissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "admissions_total",
				Help:      "Membership admissions by path and outcome",
			},
			[]string{"path", "outcome"},
		),
		slotsGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "slots_generated_total",
				Help:      "Rotation slots written by slot generation",
			},
		),
		verifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_verifications_total",
				Help:      "Contribution payment verifications by outcome",
			},
			[]string{"outcome"},
		),
		creditedAmount: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wallet_credited_amount_total",
				Help:      "Sum of amounts credited to wallets, in major units",
			},
		),
		payouts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payouts_total",
				Help:      "Payout attempts by outcome",
			},
			[]string{"outcome"},
		),
		payoutAmount: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wallet_debited_amount_total",
				Help:      "Sum of successful payout amounts, in major units",
			},
		),
		gatewayCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gateway_calls_total",
				Help:      "Payment gateway calls by operation and result",
			},
			[]string{"op", "result"},
		),
		gatewayDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "gateway_call_duration_seconds",
				Help:      "Duration of payment gateway calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
}

func (m *Metrics) RecordAdmission(path, outcome string) {
	m.admissions.WithLabelValues(path, outcome).Inc()
}

func (m *Metrics) RecordSlotsGenerated(count int) {
	m.slotsGenerated.Add(float64(count))
}

func (m *Metrics) RecordVerification(outcome string) {
	m.verifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordCredit(amount decimal.Decimal) {
	m.creditedAmount.Add(amount.InexactFloat64())
}

func (m *Metrics) RecordPayout(outcome string, amount decimal.Decimal) {
	m.payouts.WithLabelValues(outcome).Inc()
	if outcome == "initiated" {
		m.payoutAmount.Add(amount.InexactFloat64())
	}
}

func (m *Metrics) ObserveGatewayCall(op string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.gatewayCalls.WithLabelValues(op, result).Inc()
	m.gatewayDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveHTTPRequest(method, path, status string, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}
