// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package apiclient

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "wellnesshub/internal/apiclient"

type clientMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
}

func newClientMetrics(mp metric.MeterProvider) *clientMetrics {
	meter := mp.Meter(instrumentationName)
	m := &clientMetrics{}

	var err error
	m.requestCount, err = meter.Int64Counter(
		"wellnesshub.api.request.count",
		metric.WithDescription("Total number of backend API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		m.requestCount, _ = meter.Int64Counter("wellnesshub.api.request.count")
	}

	m.requestDuration, err = meter.Float64Histogram(
		"wellnesshub.api.request.duration",
		metric.WithDescription("Duration of backend API requests in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.requestDuration, _ = meter.Float64Histogram("wellnesshub.api.request.duration")
	}

	return m
}

func (m *clientMetrics) record(ctx context.Context, method string, status int, d time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.Int("http.response.status_code", status),
	)
	m.requestCount.Add(ctx, 1, attrs)
	m.requestDuration.Record(ctx, float64(d.Microseconds())/1000, attrs)
}

type requestIDKey struct{}

// WithRequestID returns a context whose API calls carry id in the
// X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
