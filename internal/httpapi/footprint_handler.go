package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	sharederrors "github.com/carboloom/carboloom/shared/errors"

	"github.com/carboloom/carboloom/internal/footprint"
	"github.com/carboloom/carboloom/internal/gamification"
	"github.com/carboloom/carboloom/internal/habits"
)

type submitLogRequest struct {
	Date   string             `json:"date"`
	Habits habits.DailyHabits `json:"habits"`
}

type submitLogResponse struct {
	Logs         []habits.LogEntry      `json:"logs"`
	Footprint    *footprint.Data        `json:"footprint"`
	Gamification *gamification.Data     `json:"gamification"`
	Award        *gamification.LogAward `json:"award"`
}

type footprintResponse struct {
	Period    habits.Period   `json:"period"`
	Footprint *footprint.Data `json:"footprint"`
}

type historyResponse struct {
	Range  string                 `json:"range"`
	Points []footprint.ChartPoint `json:"points"`
}

type dashboardResponse struct {
	Today        string                            `json:"today"`
	Footprints   map[habits.Period]*footprint.Data `json:"footprints"`
	Weekly       []footprint.ChartPoint            `json:"weekly"`
	Monthly      []footprint.ChartPoint            `json:"monthly"`
	Gamification *gamification.Data                `json:"gamification"`
	LogCount     int                               `json:"logCount"`
}

type exportResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *handler) listLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	logs, err := h.Logs.ListLogs(ctx, userID)
	if err != nil {
		h.respondServiceError(w, r, "failed to list logs", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}

func (h *handler) getLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	entry, err := h.Logs.GetLog(ctx, userID, chi.URLParam(r, "date"))
	if err != nil {
		h.respondServiceError(w, r, "failed to load log", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *handler) submitLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var body submitLogRequest
	if !h.decode(w, r, &body, false) {
		return
	}
	date := strings.TrimSpace(body.Date)
	if date == "" {
		date = h.today()
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	logs, err := h.Logs.SubmitLog(ctx, userID, date, body.Habits)
	if err != nil {
		h.respondServiceError(w, r, "failed to submit log", err, userID)
		return
	}

	var saved habits.LogEntry
	for _, entry := range logs {
		if entry.Date == date {
			saved = entry
			break
		}
	}

	data, award, err := h.Gamification.ProcessLogAndAward(ctx, userID, saved, logs)
	if err != nil {
		h.respondServiceError(w, r, "failed to award log", err, userID)
		return
	}

	writeJSON(w, http.StatusCreated, submitLogResponse{
		Logs:         logs,
		Footprint:    h.Calculator.Calculate(&saved.Habits, h.GridFactor),
		Gamification: data,
		Award:        award,
	})
}

func parsePeriod(raw string) (habits.Period, bool) {
	switch habits.Period(strings.ToUpper(strings.TrimSpace(raw))) {
	case "", habits.PeriodDaily:
		return habits.PeriodDaily, true
	case habits.PeriodWeekly:
		return habits.PeriodWeekly, true
	case habits.PeriodMonthly:
		return habits.PeriodMonthly, true
	default:
		return "", false
	}
}

func (h *handler) getFootprint(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	period, ok := parsePeriod(r.URL.Query().Get("period"))
	if !ok {
		writeError(w, r, sharederrors.CodeBadRequest, "period must be daily, weekly or monthly")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	logs, err := h.Logs.ListLogs(ctx, userID)
	if err != nil {
		h.respondServiceError(w, r, "failed to load footprint", err, userID)
		return
	}

	aggregated := footprint.AggregateHabitsForPeriod(logs, period, h.today())
	writeJSON(w, http.StatusOK, footprintResponse{
		Period:    period,
		Footprint: h.Calculator.Calculate(aggregated, h.GridFactor),
	})
}

func (h *handler) getHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	rng := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("range")))
	if rng == "" {
		rng = "week"
	}
	if rng != "week" && rng != "month" {
		writeError(w, r, sharederrors.CodeBadRequest, "range must be week or month")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	logs, err := h.Logs.ListLogs(ctx, userID)
	if err != nil {
		h.respondServiceError(w, r, "failed to load history", err, userID)
		return
	}

	var points []footprint.ChartPoint
	if rng == "week" {
		points, err = h.Calculator.WeeklyDaywise(logs, h.GridFactor, h.today())
	} else {
		points, err = h.Calculator.MonthlyWeekwise(logs, h.GridFactor, h.today())
	}
	if err != nil {
		h.respondServiceError(w, r, "failed to build history", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Range: rng, Points: points})
}

func (h *handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	var (
		logs []habits.LogEntry
		data *gamification.Data
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		logs, err = h.Logs.ListLogs(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		data, err = h.Gamification.Get(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		h.respondServiceError(w, r, "failed to load dashboard", err, userID)
		return
	}

	today := h.today()
	resp := dashboardResponse{
		Today:        today,
		Footprints:   make(map[habits.Period]*footprint.Data, 3),
		Gamification: data,
		LogCount:     len(logs),
	}
	for _, period := range []habits.Period{habits.PeriodDaily, habits.PeriodWeekly, habits.PeriodMonthly} {
		resp.Footprints[period] = h.Calculator.Calculate(footprint.AggregateHabitsForPeriod(logs, period, today), h.GridFactor)
	}

	var err error
	if resp.Weekly, err = h.Calculator.WeeklyDaywise(logs, h.GridFactor, today); err != nil {
		h.respondServiceError(w, r, "failed to build dashboard", err, userID)
		return
	}
	if resp.Monthly, err = h.Calculator.MonthlyWeekwise(logs, h.GridFactor, today); err != nil {
		h.respondServiceError(w, r, "failed to build dashboard", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) getGridFactor(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]float64{"gridFactor": h.GridFactor})
}

func (h *handler) createExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	if h.Exporter == nil {
		writeError(w, r, sharederrors.CodeServiceUnavailable, "exports are not enabled")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	res, err := h.Exporter.Export(ctx, userID)
	if err != nil {
		h.respondServiceError(w, r, "failed to export data", err, userID)
		return
	}
	writeJSON(w, http.StatusCreated, exportResponse{URL: res.URL, ExpiresAt: res.ExpiresAt})
}
