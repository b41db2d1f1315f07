// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ManuGH/dvrsched/internal/dvr"
	"github.com/ManuGH/dvrsched/internal/input"
	"github.com/ManuGH/dvrsched/internal/log"
	"github.com/ManuGH/dvrsched/internal/schedule"
)

const maxBodyBytes = 1 << 16

type bookingRequest struct {
	Date    string `json:"date"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Channel string `json:"channel"`
}

type bookingResponse struct {
	Tuner int `json:"tuner"`
}

type recordingsResponse struct {
	Channels []string `json:"channels"`
}

type listingResponse struct {
	Dates []dvr.DayListing `json:"dates"`
}

type healthResponse struct {
	Status string `json:"status"`
	Tuners int    `json:"tuners"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Tuners: s.sched.Tuners()})
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBooking(w, r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	dev, err := s.sched.Schedule(r.Context(), req.Date, req.Interval, req.Channel)
	switch {
	case errors.Is(err, schedule.ErrConflict):
		writeConflict(w, schedule.ErrConflict.Error())
	case err != nil:
		writeBadRequest(w, err)
	default:
		writeJSON(w, http.StatusCreated, bookingResponse{Tuner: int(dev)})
	}
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBooking(w, r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	err = s.sched.Cancel(r.Context(), req.Date, req.Interval, req.Channel)
	switch {
	case errors.Is(err, schedule.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "booking not found"})
	case err != nil:
		writeBadRequest(w, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleRecordings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := input.ParseDate(q.Get("date"))
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	t, err := input.ParseTime(q.Get("time"))
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	channels := s.sched.Recording(r.Context(), date, t)
	if channels == nil {
		channels = []string{}
	}
	writeJSON(w, http.StatusOK, recordingsResponse{Channels: channels})
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listingResponse{Dates: dvr.GroupByDate(s.sched.Listing(r.Context()))})
}

// decodeBooking reads and validates a booking body.
func decodeBooking(w http.ResponseWriter, r *http.Request) (input.Request, error) {
	var body bookingRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		log.FromContext(r.Context()).Debug().Err(err).Str(log.FieldEvent, "request.decode_failed").Msg("invalid booking body")
		return input.Request{}, fmt.Errorf("%w: invalid JSON body", input.ErrMalformedInput)
	}

	date, err := input.ParseDate(body.Date)
	if err != nil {
		return input.Request{}, err
	}
	iv, err := input.ParseInterval(body.Start, body.End)
	if err != nil {
		return input.Request{}, err
	}
	channel := strings.TrimSpace(body.Channel)
	if channel == "" {
		return input.Request{}, fmt.Errorf("%w: empty channel", input.ErrMalformedInput)
	}
	return input.Request{Date: date, Interval: iv, Channel: channel}, nil
}
