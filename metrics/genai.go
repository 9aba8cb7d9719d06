/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics provides OpenTelemetry counters for the inference stage.
// Without a configured exporter the otel API no-ops, so recording is
// always safe in the single-shot CLI.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// GenAI records token usage and inference calls, with the model name as a
// dimension. If a counter fails to initialize it degrades to a no-op
// instead of failing the run.
type GenAI struct {
	meter            metric.Meter
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	inferenceCalls   metric.Int64Counter
}

// NewGenAI creates a GenAI metrics instance. The meterName should be
// shared across all executors so model name remains the only dimension
// differentiating providers.
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	inferenceCalls, err := meter.Int64Counter("genai.inference.calls",
		metric.WithDescription("The number of inference calls made"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create inference calls counter, metrics will be disabled", "error", err, "meter", meterName)
		inferenceCalls = noop.Int64Counter{}
	}

	return &GenAI{
		meter:            meter,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		inferenceCalls:   inferenceCalls,
	}
}

// RecordTokens records prompt and completion token usage for one call.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64, attrs ...attribute.KeyValue) {
	baseAttrs := append([]attribute.KeyValue{
		attribute.String("model", model),
	}, attrs...)

	m.promptTokens.Add(ctx, promptTokens, metric.WithAttributes(baseAttrs...))
	m.completionTokens.Add(ctx, completionTokens, metric.WithAttributes(baseAttrs...))
}

// RecordInference counts one inference call and its outcome.
func (m *GenAI) RecordInference(ctx context.Context, model string, success bool, attrs ...attribute.KeyValue) {
	baseAttrs := append([]attribute.KeyValue{
		attribute.String("model", model),
		attribute.Bool("success", success),
	}, attrs...)

	m.inferenceCalls.Add(ctx, 1, metric.WithAttributes(baseAttrs...))
}
