// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package dvr

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ManuGH/dvrsched/internal/log"
	"github.com/ManuGH/dvrsched/internal/metrics"
	"github.com/google/renameio/v2"
)

// Report is the document written by Export. It is a one-way report and is
// never read back into the schedule.
type Report struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Tuners      int          `json:"tuners"`
	Dates       []DayListing `json:"dates"`
}

// Export writes the current listing to path as indented JSON, replacing any
// previous file atomically.
func (m *Manager) Export(ctx context.Context, path string) (err error) {
	defer func() { metrics.RecordExport(err) }()

	report := Report{
		GeneratedAt: time.Now().UTC(),
		Tuners:      m.Tuners(),
		Dates:       GroupByDate(m.Listing(ctx)),
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal listing: %w", err)
	}

	logger := log.WithContext(ctx, m.logger)
	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending listing file: %w", err)
	}
	defer func() {
		if cerr := pendingFile.Cleanup(); cerr != nil {
			logger.Debug().Err(cerr).Msg("cleanup pending listing file")
		}
	}()

	if _, err := pendingFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace listing: %w", err)
	}

	logger.Info().
		Str(log.FieldEvent, "listing.exported").
		Str(log.FieldPath, path).
		Int("dates", len(report.Dates)).
		Msg("listing exported")
	return nil
}
