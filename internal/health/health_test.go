// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ManuGH/dvrsched/internal/config"
	"github.com/ManuGH/dvrsched/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChecker struct {
	name   string
	status Status
}

func (m *mockChecker) Name() string { return m.name }

func (m *mockChecker) Check(context.Context) CheckResult {
	return CheckResult{Status: m.status}
}

func TestManager_Ready_NoCheckers(t *testing.T) {
	resp := NewManager("v1.0.0").Ready(context.Background())
	assert.True(t, resp.Ready)
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Equal(t, "v1.0.0", resp.Version)
	assert.Nil(t, resp.Checks)
}

func TestManager_Ready_Aggregation(t *testing.T) {
	m := NewManager("v1.0.0")
	m.RegisterChecker(&mockChecker{name: "a", status: StatusHealthy})
	m.RegisterChecker(&mockChecker{name: "b", status: StatusDegraded})

	resp := m.Ready(context.Background())
	assert.True(t, resp.Ready)
	assert.Equal(t, StatusDegraded, resp.Status)
	assert.Len(t, resp.Checks, 2)

	m.RegisterChecker(&mockChecker{name: "c", status: StatusUnhealthy})
	resp = m.Ready(context.Background())
	assert.False(t, resp.Ready)
	assert.Equal(t, StatusUnhealthy, resp.Status)
}

func TestManager_ServeReady(t *testing.T) {
	m := NewManager("v1.0.0")
	m.RegisterChecker(&mockChecker{name: "down", status: StatusUnhealthy})

	rec := httptest.NewRecorder()
	m.ServeReady(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Ready)
	assert.Equal(t, StatusUnhealthy, resp.Checks["down"].Status)
}

type fakeTuners struct {
	tuners  int
	busy    []schedule.DeviceID
	gotDate schedule.Date
	gotTime schedule.TimeCode
}

func (f *fakeTuners) Tuners() int { return f.tuners }

func (f *fakeTuners) Busy(_ context.Context, date schedule.Date, t schedule.TimeCode) []schedule.DeviceID {
	f.gotDate, f.gotTime = date, t
	return f.busy
}

// allocTuners serves a real allocator.
type allocTuners struct{ a *schedule.Allocator }

func (s allocTuners) Tuners() int { return s.a.Devices() }

func (s allocTuners) Busy(_ context.Context, date schedule.Date, t schedule.TimeCode) []schedule.DeviceID {
	return s.a.Busy(date, t)
}

func TestTunerChecker(t *testing.T) {
	fixed := time.Date(2024, time.March, 1, 21, 45, 0, 0, time.Local)

	src := &fakeTuners{tuners: 2, busy: []schedule.DeviceID{1}}
	c := NewTunerChecker(src)
	c.now = func() time.Time { return fixed }

	res := c.Check(context.Background())
	assert.Equal(t, StatusHealthy, res.Status)
	assert.Equal(t, "1 of 2 tuners recording", res.Message)
	assert.Equal(t, schedule.Date{Year: 2024, Month: time.March, Day: 1}, src.gotDate)
	assert.Equal(t, schedule.TimeCode(2145), src.gotTime)

	src.busy = []schedule.DeviceID{1, 2}
	assert.Equal(t, StatusDegraded, c.Check(context.Background()).Status)

	src.tuners = 0
	assert.Equal(t, StatusUnhealthy, c.Check(context.Background()).Status)
}

func TestTunerChecker_AdjacentBookingsOnOneTuner(t *testing.T) {
	a, err := schedule.New(2)
	require.NoError(t, err)
	date := schedule.Date{Year: 2024, Month: time.March, Day: 1}
	for _, b := range []struct {
		start, end schedule.TimeCode
		channel    string
	}{{900, 1000, "CNN"}, {1000, 1100, "BBC"}} {
		iv, err := schedule.NewInterval(b.start, b.end)
		require.NoError(t, err)
		dev, err := a.Add(date, iv, b.channel)
		require.NoError(t, err)
		require.Equal(t, schedule.DeviceID(1), dev)
	}

	c := NewTunerChecker(allocTuners{a})
	c.now = func() time.Time { return time.Date(2024, time.March, 1, 10, 0, 0, 0, time.Local) }

	res := c.Check(context.Background())
	assert.Equal(t, StatusHealthy, res.Status)
	assert.Equal(t, "1 of 2 tuners recording", res.Message)
}

func TestPerformStartupChecks(t *testing.T) {
	cfg := config.Defaults()
	require.NoError(t, PerformStartupChecks(cfg))

	dir := t.TempDir()
	cfg.ExportPath = filepath.Join(dir, "listing.json")
	require.NoError(t, PerformStartupChecks(cfg))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file is removed")

	cfg.ExportPath = filepath.Join(dir, "missing", "listing.json")
	assert.Error(t, PerformStartupChecks(cfg))
}
