// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package schedule

import (
	"fmt"
	"iter"
	"slices"
)

// Allocator assigns bookings to tuners first-fit.
type Allocator struct {
	// tuners[i] holds tuner i+1's bookings per date, each slice sorted by Start.
	tuners []map[Date][]Booking
	// dates counts bookings per date across all tuners; a date is present iff count > 0.
	dates map[Date]int
}

// New creates an empty schedule for k tuners.
func New(k int) (*Allocator, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDeviceCount, k)
	}
	tuners := make([]map[Date][]Booking, k)
	for i := range tuners {
		tuners[i] = make(map[Date][]Booking)
	}
	return &Allocator{
		tuners: tuners,
		dates:  make(map[Date]int),
	}, nil
}

// Devices returns the number of tuners.
func (a *Allocator) Devices() int { return len(a.tuners) }

// Len returns the total number of bookings held.
func (a *Allocator) Len() int {
	n := 0
	for _, c := range a.dates {
		n += c
	}
	return n
}

// Add places the booking on the lowest-indexed tuner whose bookings for date
// leave room for iv, and returns that tuner. When every tuner is busy it
// returns ErrConflict and the schedule is unchanged.
func (a *Allocator) Add(date Date, iv Interval, channel string) (DeviceID, error) {
	if err := iv.validate(); err != nil {
		return 0, err
	}
	b := Booking{Interval: iv, Channel: channel}
	for i, byDate := range a.tuners {
		seq := byDate[date]
		at, ok := insertionIndex(seq, iv)
		if !ok {
			continue
		}
		byDate[date] = slices.Insert(seq, at, b)
		a.dates[date]++
		return DeviceID(i + 1), nil
	}
	return 0, fmt.Errorf("%w: %s %s", ErrConflict, date, iv)
}

// insertionIndex returns where iv fits in seq without overlapping a
// neighbour. Candidates are tried front, gaps between neighbours, then back.
func insertionIndex(seq []Booking, iv Interval) (int, bool) {
	if len(seq) == 0 {
		return 0, true
	}
	if iv.End <= seq[0].Start {
		return 0, true
	}
	for i := 0; i+1 < len(seq); i++ {
		if iv.Start >= seq[i].End && iv.End <= seq[i+1].Start {
			return i + 1, true
		}
	}
	if iv.Start >= seq[len(seq)-1].End {
		return len(seq), true
	}
	return 0, false
}

// QueryAt returns the channels recording at t on date, in tuner order.
// Both interval bounds count as recording. A nil result means nothing is
// scheduled at that instant.
func (a *Allocator) QueryAt(date Date, t TimeCode) []string {
	var channels []string
	for _, byDate := range a.tuners {
		for _, b := range byDate[date] {
			if b.Start > t {
				break
			}
			if b.Contains(t) {
				channels = append(channels, b.Channel)
			}
		}
	}
	return channels
}

// Busy returns the tuners holding a booking that contains t on date, in
// tuner order. Each tuner appears once, even when back-to-back bookings both
// contain t.
func (a *Allocator) Busy(date Date, t TimeCode) []DeviceID {
	var busy []DeviceID
	for i, byDate := range a.tuners {
		for _, b := range byDate[date] {
			if b.Start > t {
				break
			}
			if b.Contains(t) {
				busy = append(busy, DeviceID(i+1))
				break
			}
		}
	}
	return busy
}

// Remove deletes the first booking, in tuner order, whose interval and
// channel both match exactly. It returns ErrNotFound if there is none.
func (a *Allocator) Remove(date Date, iv Interval, channel string) error {
	for _, byDate := range a.tuners {
		seq, ok := byDate[date]
		if !ok {
			continue
		}
		idx := slices.IndexFunc(seq, func(b Booking) bool {
			return b.Interval == iv && b.Channel == channel
		})
		if idx < 0 {
			continue
		}
		seq = slices.Delete(seq, idx, idx+1)
		if len(seq) == 0 {
			delete(byDate, date)
		} else {
			byDate[date] = seq
		}
		a.dates[date]--
		if a.dates[date] == 0 {
			delete(a.dates, date)
		}
		return nil
	}
	return fmt.Errorf("%w: %s %s %s", ErrNotFound, date, iv, channel)
}

// Dates returns every date holding at least one booking, ascending.
func (a *Allocator) Dates() []Date {
	dates := make([]Date, 0, len(a.dates))
	for d := range a.dates {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, Date.Compare)
	return dates
}

// Bookings returns a copy of one tuner's bookings for date.
func (a *Allocator) Bookings(device DeviceID, date Date) []Booking {
	if device < 1 || int(device) > len(a.tuners) {
		return nil
	}
	return slices.Clone(a.tuners[device-1][date])
}

// ListAll yields every booking grouped by date (ascending) and, within a
// date, ordered by start time across all tuners. The sequence reads a
// snapshot taken when iteration begins, so it may be ranged over again and
// is unaffected by later mutations.
func (a *Allocator) ListAll() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range a.snapshot() {
			if !yield(e) {
				return
			}
		}
	}
}

func (a *Allocator) snapshot() []Entry {
	entries := make([]Entry, 0, a.Len())
	for _, date := range a.Dates() {
		first := len(entries)
		for i, byDate := range a.tuners {
			for _, b := range byDate[date] {
				entries = append(entries, Entry{Date: date, Device: DeviceID(i + 1), Booking: b})
			}
		}
		slices.SortStableFunc(entries[first:], func(x, y Entry) int {
			return int(x.Start) - int(y.Start)
		})
	}
	return entries
}
