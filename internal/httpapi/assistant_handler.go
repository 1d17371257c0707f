package httpapi

import (
	"context"
	"net/http"
	"strings"

	sharederrors "github.com/carboloom/carboloom/shared/errors"

	"github.com/carboloom/carboloom/internal/assistant"
	"github.com/carboloom/carboloom/internal/footprint"
	"github.com/carboloom/carboloom/internal/habits"
)

type savingsRequest struct {
	Footprint   float64              `json:"footprint" validate:"gte=0"`
	Swap        assistant.Suggestion `json:"swap"`
	MonthlyGoal *float64             `json:"monthlyGoal" validate:"omitempty,gt=0"`
}

type foodSwapRequest struct {
	WeeklyServings float64 `json:"weeklyServings" validate:"gt=0,lte=100"`
}

type travelRequest struct {
	From string `json:"from" validate:"required,max=120"`
	To   string `json:"to" validate:"required,max=120"`
}

type chatRequest struct {
	History []assistant.ChatMessage `json:"history" validate:"dive"`
	Message string                  `json:"message" validate:"required,max=2000"`
}

// suggestions reads the user's last week of habits; it never writes.
func (h *handler) suggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), assistantTimeout)
	defer cancel()

	logs, err := h.Logs.ListLogs(ctx, userID)
	if err != nil {
		h.respondServiceError(w, r, "failed to load logs for suggestions", err, userID)
		return
	}
	recent := habits.Empty()
	if weekly := footprint.AggregateHabitsForPeriod(logs, habits.PeriodWeekly, h.today()); weekly != nil {
		recent = *weekly
	}

	out, err := h.Assistant.Suggestions(ctx, recent)
	if err != nil {
		h.respondServiceError(w, r, "failed to generate suggestions", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": out})
}

func (h *handler) savingsPrediction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var body savingsRequest
	if !h.decode(w, r, &body, false) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), assistantTimeout)
	defer cancel()

	prediction, err := h.Assistant.SavingsPrediction(ctx, body.Footprint, body.Swap, body.MonthlyGoal)
	if err != nil {
		h.respondServiceError(w, r, "failed to predict savings", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prediction": prediction})
}

func (h *handler) news(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), assistantTimeout)
	defer cancel()

	resp, err := h.Assistant.News(ctx)
	if err != nil {
		h.respondServiceError(w, r, "failed to load news", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) stateReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	state := strings.TrimSpace(r.URL.Query().Get("state"))
	if state == "" || len(state) > 60 {
		writeError(w, r, sharederrors.CodeBadRequest, "state is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), assistantTimeout)
	defer cancel()

	resp, err := h.Assistant.StateReport(ctx, state)
	if err != nil {
		h.respondServiceError(w, r, "failed to load state report", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) foodSwap(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var body foodSwapRequest
	if !h.decode(w, r, &body, false) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), assistantTimeout)
	defer cancel()

	swap, err := h.Assistant.FoodSwap(ctx, body.WeeklyServings)
	if err != nil {
		h.respondServiceError(w, r, "failed to suggest food swap", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"swap": swap})
}

func (h *handler) discoverHabits(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var body assistant.HabitQuery
	if !h.decode(w, r, &body, false) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), assistantTimeout)
	defer cancel()

	out, err := h.Assistant.DiscoverHabits(ctx, body)
	if err != nil {
		h.respondServiceError(w, r, "failed to discover habits", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"habits": out})
}

func (h *handler) travelCO2e(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var body travelRequest
	if !h.decode(w, r, &body, false) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), assistantTimeout)
	defer cancel()

	co2e, err := h.Assistant.TravelCO2e(ctx, body.From, body.To)
	if err != nil {
		h.respondServiceError(w, r, "failed to estimate travel emissions", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"co2e": footprint.Round2(co2e)})
}

func (h *handler) chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var body chatRequest
	if !h.decode(w, r, &body, false) {
		return
	}
	history := body.History
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}

	ctx, cancel := context.WithTimeout(r.Context(), assistantTimeout)
	defer cancel()

	reply, err := h.Assistant.Chat(ctx, history, body.Message)
	if err != nil {
		h.respondServiceError(w, r, "failed to chat", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
