package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	sharedauth "github.com/carboloom/carboloom/shared/auth"
	sharederrors "github.com/carboloom/carboloom/shared/errors"

	"github.com/carboloom/carboloom/internal/activity"
	"github.com/carboloom/carboloom/internal/assistant"
	"github.com/carboloom/carboloom/internal/export"
	"github.com/carboloom/carboloom/internal/footprint"
	"github.com/carboloom/carboloom/internal/gamification"
	"github.com/carboloom/carboloom/internal/habits"
)

const (
	serviceTimeout   = 8 * time.Second
	assistantTimeout = 45 * time.Second
	maxBodyBytes     = 64 * 1024
	maxChatHistory   = 32
)

// Dependencies are the services the HTTP layer routes to.
type Dependencies struct {
	Logs         activity.Service
	Gamification gamification.Service
	Calculator   *footprint.Calculator
	Assistant    assistant.Assistant
	Exporter     export.Service
	GridFactor   float64
	Location     *time.Location
	Now          func() time.Time
	Logger       *slog.Logger
}

type handler struct {
	Dependencies
	validate *validator.Validate
}

// RegisterRoutes wires every CarboLoom route onto r.
func RegisterRoutes(r chi.Router, deps Dependencies) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Assistant == nil {
		deps.Assistant = assistant.NewTemplateAssistant()
	}
	h := &handler{Dependencies: deps, validate: validator.New()}

	r.Route("/v1/logs", func(r chi.Router) {
		r.Get("/", h.listLogs)
		r.Post("/", h.submitLog)
		r.Get("/{date}", h.getLog)
	})

	r.Route("/v1/footprint", func(r chi.Router) {
		r.Get("/", h.getFootprint)
		r.Get("/history", h.getHistory)
	})
	r.Get("/v1/dashboard", h.getDashboard)
	r.Get("/v1/emission/grid-factor", h.getGridFactor)

	r.Route("/v1/gamification/me", func(r chi.Router) {
		r.Get("/", h.getGamification)
		r.Post("/init", h.initGamification)
	})
	r.Get("/v1/badges", h.listBadges)

	r.Route("/v1/challenges", func(r chi.Router) {
		r.Get("/", h.listChallenges)
		r.Route("/custom", func(r chi.Router) {
			r.Get("/", h.listCustomChallenges)
			r.Post("/", h.createCustomChallenge)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", h.updateCustomChallenge)
				r.Delete("/", h.deleteCustomChallenge)
				r.Post("/progress", h.recordCustomProgress)
			})
		})
	})

	r.Route("/v1/quizzes", func(r chi.Router) {
		r.Get("/", h.listQuizzes)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/complete", h.completeQuiz)
			r.Put("/progress", h.saveQuizProgress)
			r.Delete("/progress", h.clearQuizProgress)
		})
	})
	r.Get("/v1/resources", h.listResources)

	r.Route("/v1/assistant", func(r chi.Router) {
		r.Post("/suggestions", h.suggestions)
		r.Post("/savings", h.savingsPrediction)
		r.Get("/news", h.news)
		r.Get("/state-report", h.stateReport)
		r.Post("/food-swap", h.foodSwap)
		r.Post("/habits", h.discoverHabits)
		r.Post("/travel", h.travelCO2e)
		r.Post("/chat", h.chat)
	})

	r.Post("/v1/exports", h.createExport)
}

func (h *handler) today() string {
	return habits.Today(h.Now(), h.Location)
}

// requestUserID prefers the verified subject and falls back to X-User-ID.
func requestUserID(r *http.Request) string {
	if user, ok := sharedauth.UserFromContext(r.Context()); ok && user.UserID != "" {
		return user.UserID
	}
	return strings.TrimSpace(r.Header.Get("X-User-ID"))
}

func (h *handler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, r, sharederrors.CodeUnauthorized, "missing user ID")
		return "", false
	}
	return userID, true
}

var errInvalidPayload = errors.New("invalid request body")

// decodeBody reads one JSON document into dst. An empty body is allowed when
// optional is set.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, optional bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return errInvalidPayload
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errInvalidPayload
	}
	return nil
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	if err := decodeBody(w, r, dst, optional); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, sharederrors.CodePayloadTooLarge, "payload too large")
			return false
		}
		writeError(w, r, sharederrors.CodeBadRequest, err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if !errors.As(err, &invalid) {
			writeError(w, r, sharederrors.CodeBadRequest, err.Error())
			return false
		}
	}
	return true
}

// respondServiceError maps domain errors onto the error envelope.
func (h *handler) respondServiceError(w http.ResponseWriter, r *http.Request, message string, err error, userID string) {
	switch {
	case errors.Is(err, activity.ErrInvalidInput), errors.Is(err, gamification.ErrInvalidInput):
		writeError(w, r, sharederrors.CodeBadRequest, err.Error())
	case errors.Is(err, activity.ErrNotFound), errors.Is(err, gamification.ErrNotFound):
		writeError(w, r, sharederrors.CodeNotFound, err.Error())
	case errors.Is(err, gamification.ErrOutdated):
		writeError(w, r, sharederrors.CodeConflict, err.Error())
	case errors.Is(err, assistant.ErrUnavailable):
		logRequestError(r.Context(), h.Logger, message, err, userID)
		writeError(w, r, sharederrors.CodeServiceUnavailable, "the assistant is unavailable right now, please try again")
	case errors.Is(err, export.ErrDisabled):
		writeError(w, r, sharederrors.CodeServiceUnavailable, "exports are not enabled")
	case errors.Is(err, context.DeadlineExceeded):
		logRequestError(r.Context(), h.Logger, message, err, userID)
		writeError(w, r, sharederrors.CodeServiceUnavailable, "request timed out, please try again")
	default:
		logRequestError(r.Context(), h.Logger, message, err, userID)
		writeError(w, r, sharederrors.CodeInternal, message)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, code, message string) {
	sharederrors.Write(w, sharederrors.New(code, message, middleware.GetReqID(r.Context())))
}

func logRequestError(ctx context.Context, logger *slog.Logger, message string, err error, userID string) {
	if logger == nil || err == nil {
		return
	}
	attrs := []any{
		slog.String("userId", userID),
		slog.Any("error", err),
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		attrs = append(attrs, slog.String("requestId", reqID))
	}
	logger.Error(message, attrs...)
}
