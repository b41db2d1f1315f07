// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/ManuGH/dvrsched/internal/dvr"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, tuners int) *dvr.Manager {
	t.Helper()
	m, err := dvr.NewManager(tuners, dvr.WithLogger(zerolog.New(io.Discard)))
	require.NoError(t, err)
	return m
}

func run(t *testing.T, sched Scheduler, in string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, New(sched, strings.NewReader(in), &out).Run(context.Background()))
	return out.String()
}

func TestConsole_Transcript(t *testing.T) {
	in := strings.Join([]string{
		"s", "3/1/2024 9:00am-10:00am CNN",
		"S", "3/1/2024 9:30AM-10:30AM BBC",
		"S", "3/1/2024 9:45am-10:00am HBO",
		"Q", "3/1/2024 9:45am",
		"V",
		"R", "3/1/2024 9:00am-10:00am ABC",
		"R", "3/1/2024 9:00am-10:00am CNN",
		"Q", "3/1/2024 9:15am",
		"Z",
		"X",
		"S", "ignored after quit",
	}, "\n") + "\n"

	want := menu +
		"\nCommand - Enter schedule: Scheduled '3/1/2024 9:00am-10:00am CNN' on tuner 1 !\n" +
		"\nCommand - Enter schedule: Scheduled '3/1/2024 9:30AM-10:30AM BBC' on tuner 2 !\n" +
		"\nCommand - Enter schedule: " + msgBusy + "\n" +
		"\nCommand - Enter query: The channel(s) being recorded is / are - CNN, BBC\n" +
		"\nCommand - 03/01/2024\n" +
		"  09:00am-10:00am  CNN (tuner 1)\n" +
		"  09:30am-10:30am  BBC (tuner 2)\n" +
		"\nCommand - Enter schedule to remove: Could not find '3/1/2024 9:00am-10:00am ABC' !\n" +
		"\nCommand - Enter schedule to remove: Removed '3/1/2024 9:00am-10:00am CNN' !\n" +
		"\nCommand - Enter query: " + msgNoChannel + "\n" +
		"\nCommand - Unknown command 'Z' !\n" +
		"\nCommand - "

	if diff := cmp.Diff(want, run(t, newManager(t, 2), in)); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestConsole_MalformedInput(t *testing.T) {
	cases := []string{
		"13/01/2024 9:00am-10:00am CNN",
		"3/1/2024 9:00-10:00 CNN",
		"3/1/2024 10:00am-9:00am CNN",
		"3/1/2024 9:00am-9:00am CNN",
		"3/1/2024  9:00am-10:00am CNN",
		"3/1/2024 9:00am-10:00am",
	}
	for _, line := range cases {
		t.Run(line, func(t *testing.T) {
			out := run(t, newManager(t, 1), "S\n"+line+"\nX\n")
			require.Contains(t, out, msgMalformed)
		})
	}
}

func TestConsole_ViewEmpty(t *testing.T) {
	out := run(t, newManager(t, 1), "V\n")
	require.Contains(t, out, msgEmpty)
}

func TestConsole_EOFQuits(t *testing.T) {
	m := newManager(t, 1)

	out := run(t, m, "S\n")
	require.True(t, strings.HasSuffix(out, "Enter schedule: "), "output: %q", out)

	out = run(t, m, "")
	require.Equal(t, menu+"\nCommand - ", out)
}

func TestConsole_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(newManager(t, 1), strings.NewReader("S\n3/1/2024 9:00am-10:00am CNN\n"), &out).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, menu, out.String())
}
