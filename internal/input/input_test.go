// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package input

import (
	"testing"
	"time"

	"github.com/ManuGH/dvrsched/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want schedule.TimeCode
	}{
		{"9:00am", 900},
		{"09:00AM", 900},
		{"12:00am", 0},
		{"12:30AM", 30},
		{"12:00pm", 1200},
		{"1:15pm", 1315},
		{"11:59Pm", 2359},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTime_Malformed(t *testing.T) {
	for _, in := range []string{"", "9am", "9:00", "13:00pm", "9:60am", "9:5am", "noon", "9:00xm"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTime(in)
			require.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestFormatTime_RoundTrip(t *testing.T) {
	assert.Equal(t, "12:00am", FormatTime(0))
	assert.Equal(t, "09:05am", FormatTime(905))
	assert.Equal(t, "12:00pm", FormatTime(1200))
	assert.Equal(t, "11:59pm", FormatTime(2359))

	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			c, err := schedule.NewTimeCode(h, m)
			require.NoError(t, err)
			back, err := ParseTime(FormatTime(c))
			require.NoError(t, err)
			require.Equal(t, c, back)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("03/01/2024")
	require.NoError(t, err)
	assert.Equal(t, schedule.Date{Year: 2024, Month: time.March, Day: 1}, d)
	assert.Equal(t, "03/01/2024", FormatDate(d))

	d, err = ParseDate("3/1/2024")
	require.NoError(t, err)
	assert.Equal(t, schedule.Date{Year: 2024, Month: time.March, Day: 1}, d)

	for _, in := range []string{"2024-03-01", "13/01/2024", "02/30/2024", "03/01/24", ""} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, ErrMalformedInput, in)
	}
}

func TestParseSlot(t *testing.T) {
	iv, err := ParseSlot("9:00am-10:30am")
	require.NoError(t, err)
	assert.Equal(t, schedule.Interval{Start: 900, End: 1030}, iv)
	assert.Equal(t, "09:00am-10:30am", FormatSlot(iv))

	for _, in := range []string{"9:00am", "10:00am-9:00am", "9:00am-9:00am", "9:00am-"} {
		_, err := ParseSlot(in)
		assert.ErrorIs(t, err, ErrMalformedInput, in)
	}
}

func TestParseSchedule(t *testing.T) {
	req, err := ParseSchedule("03/01/2024 9:00am-10:00am CNN")
	require.NoError(t, err)
	assert.Equal(t, Request{
		Date:     schedule.Date{Year: 2024, Month: time.March, Day: 1},
		Interval: schedule.Interval{Start: 900, End: 1000},
		Channel:  "CNN",
	}, req)

	for _, in := range []string{
		"03/01/2024 9:00am-10:00am",
		"03/01/2024 9:00am-10:00am CNN extra",
		"03/01/2024  9:00am-10:00am CNN",
		"03/01/2024 9:00am 10:00am",
		"03/01/2024 9:00am-10:00am ",
	} {
		_, err := ParseSchedule(in)
		assert.ErrorIs(t, err, ErrMalformedInput, in)
	}
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("03/01/2024 9:30am")
	require.NoError(t, err)
	assert.Equal(t, schedule.TimeCode(930), q.Time)

	_, err = ParseQuery("03/01/2024")
	require.ErrorIs(t, err, ErrMalformedInput)
	_, err = ParseQuery("03/01/2024 9:30")
	require.ErrorIs(t, err, ErrMalformedInput)
}
