package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	sharederrors "github.com/carboloom/carboloom/shared/errors"

	"github.com/carboloom/carboloom/internal/content"
	"github.com/carboloom/carboloom/internal/gamification"
)

type customProgressRequest struct {
	Value *float64 `json:"value" validate:"required,gte=0"`
	Date  string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type quizCompleteRequest struct {
	Score *int `json:"score" validate:"required,gte=0"`
}

func (h *handler) getGamification(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	data, err := h.Gamification.Get(ctx, userID)
	if err != nil {
		h.respondServiceError(w, r, "failed to load gamification", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *handler) initGamification(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	data, err := h.Gamification.Init(ctx, userID)
	if err != nil {
		h.respondServiceError(w, r, "failed to init gamification", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *handler) listBadges(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"badges": h.Gamification.Badges()})
}

func (h *handler) listChallenges(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"challenges": h.Gamification.Challenges()})
}

func (h *handler) listCustomChallenges(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	list, err := h.Gamification.ListCustomChallenges(ctx, userID)
	if err != nil {
		h.respondServiceError(w, r, "failed to list custom challenges", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"challenges": list})
}

func (h *handler) createCustomChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var input gamification.CustomChallengeInput
	if !h.decode(w, r, &input, false) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	created, err := h.Gamification.CreateCustomChallenge(ctx, userID, input)
	if err != nil {
		h.respondServiceError(w, r, "failed to create custom challenge", err, userID)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) updateCustomChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var input gamification.CustomChallengeInput
	if !h.decode(w, r, &input, false) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	updated, err := h.Gamification.UpdateCustomChallenge(ctx, userID, chi.URLParam(r, "id"), input)
	if err != nil {
		h.respondServiceError(w, r, "failed to update custom challenge", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *handler) deleteCustomChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	if err := h.Gamification.DeleteCustomChallenge(ctx, userID, chi.URLParam(r, "id")); err != nil {
		h.respondServiceError(w, r, "failed to delete custom challenge", err, userID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) recordCustomProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var body customProgressRequest
	if !h.decode(w, r, &body, false) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	data, err := h.Gamification.RecordCustomProgress(ctx, userID, chi.URLParam(r, "id"), strings.TrimSpace(body.Date), *body.Value)
	if err != nil {
		h.respondServiceError(w, r, "failed to record custom progress", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *handler) listQuizzes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"quizzes": content.Quizzes()})
}

func (h *handler) quizFromPath(w http.ResponseWriter, r *http.Request) (content.Quiz, bool) {
	quiz, ok := content.QuizByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, sharederrors.CodeNotFound, "quiz not found")
	}
	return quiz, ok
}

func (h *handler) completeQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	quiz, ok := h.quizFromPath(w, r)
	if !ok {
		return
	}

	var body quizCompleteRequest
	if !h.decode(w, r, &body, false) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	data, err := h.Gamification.ProcessQuizCompletion(ctx, userID, quiz, *body.Score)
	if err != nil {
		h.respondServiceError(w, r, "failed to complete quiz", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *handler) saveQuizProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	quiz, ok := h.quizFromPath(w, r)
	if !ok {
		return
	}

	var progress gamification.QuizProgress
	if !h.decode(w, r, &progress, false) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	data, err := h.Gamification.SaveQuizProgress(ctx, userID, quiz.ID, progress)
	if err != nil {
		h.respondServiceError(w, r, "failed to save quiz progress", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *handler) clearQuizProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	quiz, ok := h.quizFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
	defer cancel()

	data, err := h.Gamification.ClearQuizProgressAndRestart(ctx, userID, quiz.ID)
	if err != nil {
		h.respondServiceError(w, r, "failed to clear quiz progress", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *handler) listResources(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"resources": content.Resources()})
}
