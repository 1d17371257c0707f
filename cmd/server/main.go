package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"

	sharedauth "github.com/carboloom/carboloom/shared/auth"
	"github.com/carboloom/carboloom/shared/logging"
	sharedserver "github.com/carboloom/carboloom/shared/server"

	"github.com/carboloom/carboloom/internal/activity"
	"github.com/carboloom/carboloom/internal/assistant"
	"github.com/carboloom/carboloom/internal/config"
	"github.com/carboloom/carboloom/internal/emission"
	"github.com/carboloom/carboloom/internal/export"
	"github.com/carboloom/carboloom/internal/footprint"
	"github.com/carboloom/carboloom/internal/gamification"
	"github.com/carboloom/carboloom/internal/httpapi"
)

const serviceName = "carboloom"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type repositories struct {
	logs    activity.Repository
	records gamification.Repository
	customs gamification.CustomChallengeRepository
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config error: %w", err))
	}

	logger := logging.NewLogger(serviceName)

	factors, err := emission.LoadFactors(cfg.Emission.FactorsPath, os.LookupEnv)
	if err != nil {
		panic(fmt.Errorf("emission factors error: %w", err))
	}
	model := emission.NewModel(factors, logger)
	calc := footprint.NewCalculator(model)

	repos, cleanup, err := newRepositories(ctx, cfg)
	if err != nil {
		panic(fmt.Errorf("repository init error: %w", err))
	}
	defer cleanup()

	logs := activity.NewService(repos.logs, model)
	game := gamification.NewService(
		repos.records,
		repos.customs,
		gamification.NewEngine(calc, cfg.Emission.GridFactor, logger),
		gamification.NewBadgeEvaluator(calc, cfg.Emission.GridFactor),
		gamification.WithClock(gamification.NewSystemClock()),
		gamification.WithIDGenerator(gamification.NewUUIDGenerator()),
		gamification.WithLocation(cfg.Location()),
		gamification.WithLogger(logger),
	)

	asst := newAssistant(ctx, cfg, logger)
	defer asst.Close()

	exporter, closeExport := newExporter(ctx, cfg, logs, game, logger)
	defer closeExport()

	verifier, err := sharedauth.NewVerifier(sharedauth.Config{
		Mode:     cfg.Auth.Mode,
		JWKSURL:  cfg.Auth.JWKSURL,
		Audience: cfg.Auth.Audience,
		Issuer:   cfg.Auth.Issuer,
	})
	if err != nil {
		panic(fmt.Errorf("auth verifier error: %w", err))
	}

	router := sharedserver.NewRouter(serviceName, version, func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(sharedauth.Middleware(verifier))
			httpapi.RegisterRoutes(r, httpapi.Dependencies{
				Logs:         logs,
				Gamification: game,
				Calculator:   calc,
				Assistant:    asst,
				Exporter:     exporter,
				GridFactor:   cfg.Emission.GridFactor,
				Location:     cfg.Location(),
				Logger:       logger,
			})
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := sharedserver.Run(ctx, srv, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}

func newRepositories(ctx context.Context, cfg config.Config) (repositories, func(), error) {
	switch cfg.DataStore {
	case config.DataStoreFirestore:
		if cfg.Firestore.EmulatorHost != "" {
			if err := os.Setenv("FIRESTORE_EMULATOR_HOST", cfg.Firestore.EmulatorHost); err != nil {
				return repositories{}, nil, fmt.Errorf("set FIRESTORE_EMULATOR_HOST: %w", err)
			}
		}

		var (
			client *firestore.Client
			err    error
		)
		if cfg.Firestore.DatabaseID != "" {
			client, err = firestore.NewClientWithDatabase(ctx, cfg.GCPProjectID, cfg.Firestore.DatabaseID)
		} else {
			client, err = firestore.NewClient(ctx, cfg.GCPProjectID)
		}
		if err != nil {
			return repositories{}, nil, fmt.Errorf("firestore client: %w", err)
		}

		repos := repositories{
			logs:    activity.NewFirestoreRepository(client),
			records: gamification.NewFirestoreRepository(client),
			customs: gamification.NewFirestoreCustomChallengeRepository(client),
		}
		cleanup := func() {
			_ = client.Close()
		}
		return repos, cleanup, nil
	default:
		records := gamification.NewMemoryRepository()
		repos := repositories{
			logs:    activity.NewMemoryRepository(),
			records: records,
			customs: records.Customs(),
		}
		return repos, func() {}, nil
	}
}

func newAssistant(ctx context.Context, cfg config.Config, logger *slog.Logger) assistant.Assistant {
	if !cfg.LLM.Enabled() {
		logger.Warn("assistant not configured, AI features will report unavailable")
		return assistant.NewTemplateAssistant()
	}

	gemini, err := assistant.NewGeminiAssistant(ctx, assistant.Config{
		APIKey:          cfg.LLM.APIKey,
		Model:           cfg.LLM.Model,
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		UseVertex:       cfg.LLM.UseVertex,
		Project:         cfg.GCPProjectID,
		Location:        cfg.LLM.Location,
	})
	if err != nil {
		logger.Error("failed to initialize gemini assistant, falling back to template", slog.Any("error", err))
		return assistant.NewTemplateAssistant()
	}
	return gemini
}

func newExporter(ctx context.Context, cfg config.Config, logs activity.Service, game gamification.Service, logger *slog.Logger) (export.Service, func()) {
	if cfg.Export.Bucket == "" {
		return export.NewService(logs, game, nil), func() {}
	}

	store, err := export.NewBucketStore(ctx, cfg.Export.Bucket)
	if err != nil {
		logger.Error("failed to initialize export bucket, exports disabled", slog.Any("error", err))
		return export.NewService(logs, game, nil), func() {}
	}
	return export.NewService(logs, game, store), func() { _ = store.Close() }
}
