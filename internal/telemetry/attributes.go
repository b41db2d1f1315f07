// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	// HTTP attributes
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"

	// Schedule attributes
	ScheduleDateKey    = "schedule.date"
	ScheduleSlotKey    = "schedule.slot"
	ScheduleTimeKey    = "schedule.time"
	ScheduleChannelKey = "schedule.channel"
	ScheduleTunerKey   = "schedule.tuner"
	ScheduleOutcomeKey = "schedule.outcome"
	ScheduleMatchesKey = "schedule.matches"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// HTTPAttributes creates common HTTP span attributes.
func HTTPAttributes(method, route string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// BookingAttributes describes the booking a span operates on. Empty values are skipped.
func BookingAttributes(date, slot, channel string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if date != "" {
		attrs = append(attrs, attribute.String(ScheduleDateKey, date))
	}
	if slot != "" {
		attrs = append(attrs, attribute.String(ScheduleSlotKey, slot))
	}
	if channel != "" {
		attrs = append(attrs, attribute.String(ScheduleChannelKey, channel))
	}
	return attrs
}

// OutcomeAttributes records how a schedule operation ended.
func OutcomeAttributes(outcome string, tuner int) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String(ScheduleOutcomeKey, outcome)}
	if tuner > 0 {
		attrs = append(attrs, attribute.Int(ScheduleTunerKey, tuner))
	}
	return attrs
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(_ error, errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
