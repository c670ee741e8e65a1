// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// Licensed under the Apache License, Version 2.0

package ledger_eth

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts device exchanges. A nil *Metrics records nothing.
type Metrics struct {
	exchanges      *prometheus.CounterVec
	errors         *prometheus.CounterVec
	transferFrames prometheus.Histogram
}

// NewMetrics registers the session metrics with reg, or with the default
// registerer when reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		exchanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger_eth",
			Subsystem: "session",
			Name:      "exchanges_total",
			Help:      "Frames sent to the device, by command",
		}, []string{"command"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger_eth",
			Subsystem: "session",
			Name:      "errors_total",
			Help:      "Failed device operations, by error kind",
		}, []string{"kind"}),
		transferFrames: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ledger_eth",
			Subsystem: "session",
			Name:      "transfer_frames",
			Help:      "Frames per chunked transfer",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 16, 32, 64},
		}),
	}
	reg.MustRegister(m.exchanges, m.errors, m.transferFrames)
	return m
}

func (m *Metrics) incExchange(command string) {
	if m == nil {
		return
	}
	m.exchanges.WithLabelValues(labelOrUnknown(command)).Inc()
}

func (m *Metrics) incError(kind string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(labelOrUnknown(kind)).Inc()
}

func (m *Metrics) observeTransfer(frames int) {
	if m == nil {
		return
	}
	m.transferFrames.Observe(float64(frames))
}

func labelOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
