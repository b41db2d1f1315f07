// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package input turns operator-entered text into schedule values and back.
//
// Dates are mm/dd/yyyy. Times are 12-hour clock readings, h:mm or hh:mm
// immediately followed by am or pm in any case ("9:30pm", "09:30PM").
package input

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ManuGH/dvrsched/internal/schedule"
)

// ErrMalformedInput wraps every parse failure in this package.
var ErrMalformedInput = errors.New("malformed input")

const (
	dateLayout = "1/2/2006"
	timeLayout = "3:04PM"
)

// Request is a parsed "<date> <slot> <channel>" line.
type Request struct {
	Date     schedule.Date
	Interval schedule.Interval
	Channel  string
}

// Query is a parsed "<date> <time>" line.
type Query struct {
	Date schedule.Date
	Time schedule.TimeCode
}

// ParseTime parses a 12-hour clock reading into a time code.
func ParseTime(s string) (schedule.TimeCode, error) {
	t, err := time.Parse(timeLayout, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return 0, fmt.Errorf("%w: time %q", ErrMalformedInput, s)
	}
	return schedule.NewTimeCode(t.Hour(), t.Minute())
}

// FormatTime renders a time code as hh:mmam / hh:mmpm.
func FormatTime(c schedule.TimeCode) string {
	t := time.Date(0, 1, 1, c.Hour(), c.Minute(), 0, 0, time.UTC)
	return t.Format("03:04pm")
}

// ParseDate parses mm/dd/yyyy.
func ParseDate(s string) (schedule.Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return schedule.Date{}, fmt.Errorf("%w: date %q", ErrMalformedInput, s)
	}
	return schedule.DateOf(t), nil
}

// FormatDate renders a date as mm/dd/yyyy.
func FormatDate(d schedule.Date) string {
	return d.String()
}

// ParseSlot parses "<start>-<end>". The start must be strictly before the end.
func ParseSlot(s string) (schedule.Interval, error) {
	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok {
		return schedule.Interval{}, fmt.Errorf("%w: slot %q has no '-'", ErrMalformedInput, s)
	}
	return ParseInterval(startStr, endStr)
}

// ParseInterval parses separate start and end readings.
func ParseInterval(startStr, endStr string) (schedule.Interval, error) {
	start, err := ParseTime(startStr)
	if err != nil {
		return schedule.Interval{}, err
	}
	end, err := ParseTime(endStr)
	if err != nil {
		return schedule.Interval{}, err
	}
	iv, err := schedule.NewInterval(start, end)
	if err != nil {
		return schedule.Interval{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return iv, nil
}

// FormatSlot renders an interval as "hh:mmam-hh:mmpm".
func FormatSlot(iv schedule.Interval) string {
	return FormatTime(iv.Start) + "-" + FormatTime(iv.End)
}

// ParseSchedule parses "<date> <slot> <channel>", separated by single spaces.
func ParseSchedule(line string) (Request, error) {
	fields := strings.Split(line, " ")
	if len(fields) != 3 {
		return Request{}, fmt.Errorf("%w: expected '<date> <start>-<end> <channel>', got %q", ErrMalformedInput, line)
	}
	date, err := ParseDate(fields[0])
	if err != nil {
		return Request{}, err
	}
	iv, err := ParseSlot(fields[1])
	if err != nil {
		return Request{}, err
	}
	if fields[2] == "" {
		return Request{}, fmt.Errorf("%w: empty channel", ErrMalformedInput)
	}
	return Request{Date: date, Interval: iv, Channel: fields[2]}, nil
}

// ParseQuery parses "<date> <time>", separated by a single space.
func ParseQuery(line string) (Query, error) {
	fields := strings.Split(line, " ")
	if len(fields) != 2 {
		return Query{}, fmt.Errorf("%w: expected '<date> <time>', got %q", ErrMalformedInput, line)
	}
	date, err := ParseDate(fields[0])
	if err != nil {
		return Query{}, err
	}
	t, err := ParseTime(fields[1])
	if err != nil {
		return Query{}, err
	}
	return Query{Date: date, Time: t}, nil
}
