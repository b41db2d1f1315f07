// SPDX-License-Identifier: MIT
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tunersConfigured = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dvrsched_tuners",
		Help: "Number of tuners the schedule was created with",
	})

	bookingsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dvrsched_bookings_active",
		Help: "Bookings currently held across all tuners and dates",
	})

	bookingsAdded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dvrsched_bookings_added_total",
		Help: "Bookings placed, by tuner",
	}, []string{"tuner"})

	bookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dvrsched_booking_conflicts_total",
		Help: "Booking requests rejected because every tuner was busy",
	})

	bookingRemovals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dvrsched_booking_removals_total",
		Help: "Booking removal attempts by outcome",
	}, []string{"outcome"}) // outcome=removed|not_found

	recordingQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dvrsched_recording_queries_total",
		Help: "Point-in-time recording queries by outcome",
	}, []string{"outcome"}) // outcome=hit|miss

	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dvrsched_listing_exports_total",
		Help: "Listing export attempts by outcome",
	}, []string{"outcome"}) // outcome=success|failure
)

// SetTuners records the configured tuner count.
func SetTuners(n int) { tunersConfigured.Set(float64(n)) }

// SetActiveBookings records the current booking total.
func SetActiveBookings(n int) { bookingsActive.Set(float64(n)) }

// RecordBookingAdded counts a placement on tuner.
func RecordBookingAdded(tuner int) {
	bookingsAdded.WithLabelValues(strconv.Itoa(tuner)).Inc()
}

// RecordBookingConflict counts a request no tuner could host.
func RecordBookingConflict() { bookingConflicts.Inc() }

// RecordBookingRemoval counts a removal attempt.
func RecordBookingRemoval(found bool) {
	outcome := "removed"
	if !found {
		outcome = "not_found"
	}
	bookingRemovals.WithLabelValues(outcome).Inc()
}

// RecordRecordingQuery counts a point query.
func RecordRecordingQuery(hit bool) {
	outcome := "hit"
	if !hit {
		outcome = "miss"
	}
	recordingQueries.WithLabelValues(outcome).Inc()
}

// RecordExport counts a listing export.
func RecordExport(err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	exportsTotal.WithLabelValues(outcome).Inc()
}
