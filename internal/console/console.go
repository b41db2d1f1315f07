// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package console runs the interactive, line-oriented scheduling prompt.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ManuGH/dvrsched/internal/dvr"
	"github.com/ManuGH/dvrsched/internal/input"
	"github.com/ManuGH/dvrsched/internal/schedule"
	"github.com/charmbracelet/lipgloss"
)

// Scheduler is the subset of dvr.Manager the console drives.
type Scheduler interface {
	Schedule(ctx context.Context, date schedule.Date, iv schedule.Interval, channel string) (schedule.DeviceID, error)
	Cancel(ctx context.Context, date schedule.Date, iv schedule.Interval, channel string) error
	Recording(ctx context.Context, date schedule.Date, t schedule.TimeCode) []string
	Listing(ctx context.Context) []schedule.Entry
}

const (
	msgMalformed = "The time-slot has to be entered in H:MM[AM|PM] format and / or the date has to be entered in MM/DD/YYYY format !"
	msgBusy      = "All the tuners are busy! This request cannot be completed."
	msgNoChannel = "No channel has been scheduled at the time specified !"
	msgEmpty     = "Nothing has been scheduled yet !"
)

const menu = `
Enter -
S : to enter a schedule
Q : to query using time
R : to remove a schedule
V : to view all schedules
X : to quit
`

// Console reads commands from in and writes results to out.
type Console struct {
	sched   Scheduler
	scanner *bufio.Scanner
	out     io.Writer
	heading lipgloss.Style
}

// New creates a console over the given streams.
func New(sched Scheduler, in io.Reader, out io.Writer) *Console {
	return &Console{
		sched:   sched,
		scanner: bufio.NewScanner(in),
		out:     out,
		heading: lipgloss.NewRenderer(out).NewStyle().Bold(true),
	}
}

// Run prints the menu and processes commands until X, end of input, or ctx
// is cancelled.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprint(c.out, menu)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		cmd, ok := c.prompt("\nCommand - ")
		if !ok {
			return c.scanner.Err()
		}
		switch strings.ToUpper(cmd) {
		case "":
			continue
		case "X":
			return nil
		case "S":
			line, ok := c.prompt("Enter schedule: ")
			if !ok {
				return c.scanner.Err()
			}
			c.add(ctx, line)
		case "Q":
			line, ok := c.prompt("Enter query: ")
			if !ok {
				return c.scanner.Err()
			}
			c.query(ctx, line)
		case "R":
			line, ok := c.prompt("Enter schedule to remove: ")
			if !ok {
				return c.scanner.Err()
			}
			c.remove(ctx, line)
		case "V":
			c.view(ctx)
		default:
			c.println(fmt.Sprintf("Unknown command '%s' !", cmd))
		}
	}
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

func (c *Console) println(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *Console) add(ctx context.Context, line string) {
	req, err := input.ParseSchedule(line)
	if err != nil {
		c.println(msgMalformed)
		return
	}
	dev, err := c.sched.Schedule(ctx, req.Date, req.Interval, req.Channel)
	switch {
	case errors.Is(err, schedule.ErrConflict):
		c.println(msgBusy)
	case err != nil:
		c.println(msgMalformed)
	default:
		c.println(fmt.Sprintf("Scheduled '%s' on tuner %d !", line, dev))
	}
}

func (c *Console) query(ctx context.Context, line string) {
	q, err := input.ParseQuery(line)
	if err != nil {
		c.println(msgMalformed)
		return
	}
	channels := c.sched.Recording(ctx, q.Date, q.Time)
	if len(channels) == 0 {
		c.println(msgNoChannel)
		return
	}
	c.println("The channel(s) being recorded is / are - " + strings.Join(channels, ", "))
}

func (c *Console) remove(ctx context.Context, line string) {
	req, err := input.ParseSchedule(line)
	if err != nil {
		c.println(msgMalformed)
		return
	}
	if err := c.sched.Cancel(ctx, req.Date, req.Interval, req.Channel); err != nil {
		c.println(fmt.Sprintf("Could not find '%s' !", line))
		return
	}
	c.println(fmt.Sprintf("Removed '%s' !", line))
}

func (c *Console) view(ctx context.Context) {
	days := dvr.GroupByDate(c.sched.Listing(ctx))
	if len(days) == 0 {
		c.println(msgEmpty)
		return
	}
	for _, day := range days {
		c.println(c.heading.Render(day.Date))
		for _, b := range day.Bookings {
			c.println(fmt.Sprintf("  %s-%s  %s (tuner %d)", b.Start, b.End, b.Channel, b.Tuner))
		}
	}
}
