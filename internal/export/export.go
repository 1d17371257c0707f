package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/carboloom/carboloom/internal/gamification"
	"github.com/carboloom/carboloom/internal/habits"
)

// ErrDisabled is returned when no export bucket is configured.
var ErrDisabled = errors.New("export disabled")

// DefaultURLTTL is how long a download link stays valid.
const DefaultURLTTL = 24 * time.Hour

// Snapshot is the document written for one export.
type Snapshot struct {
	UserID       string             `json:"userId"`
	ExportedAt   time.Time          `json:"exportedAt"`
	Logs         []habits.LogEntry  `json:"logs"`
	Gamification *gamification.Data `json:"gamification"`
}

// Result points at an uploaded snapshot.
type Result struct {
	ObjectPath string    `json:"-"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ObjectStore writes objects and signs download links.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, data io.Reader) error
	SignedURL(objectPath string, expires time.Time) (string, error)
}

// LogSource lists a user's logs.
type LogSource interface {
	ListLogs(ctx context.Context, userID string) ([]habits.LogEntry, error)
}

// GamificationSource loads a user's gamification record.
type GamificationSource interface {
	Get(ctx context.Context, userID string) (*gamification.Data, error)
}

// Service exports user data.
type Service interface {
	Export(ctx context.Context, userID string) (*Result, error)
}

type service struct {
	logs  LogSource
	game  GamificationSource
	store ObjectStore
	now   func() time.Time
	newID func() string
	ttl   time.Duration
}

// NewService builds an exporter. A nil store disables exports.
func NewService(logs LogSource, game GamificationSource, store ObjectStore) Service {
	return &service{
		logs:  logs,
		game:  game,
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
		ttl:   DefaultURLTTL,
	}
}

func (s *service) Export(ctx context.Context, userID string) (*Result, error) {
	if s.store == nil {
		return nil, ErrDisabled
	}
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is required")
	}

	snapshot := Snapshot{UserID: userID, ExportedAt: s.now().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logs, err := s.logs.ListLogs(gctx, userID)
		if err != nil {
			return fmt.Errorf("list logs: %w", err)
		}
		snapshot.Logs = logs
		return nil
	})
	g.Go(func() error {
		data, err := s.game.Get(gctx, userID)
		if err != nil {
			return fmt.Errorf("load gamification: %w", err)
		}
		snapshot.Gamification = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if snapshot.Logs == nil {
		snapshot.Logs = []habits.LogEntry{}
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	objectPath := fmt.Sprintf("exports/%s/%s.json", userID, s.newID())
	if err := s.store.Upload(ctx, objectPath, "application/json", bytes.NewReader(payload)); err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	expires := s.now().Add(s.ttl)
	url, err := s.store.SignedURL(objectPath, expires)
	if err != nil {
		return nil, fmt.Errorf("sign snapshot url: %w", err)
	}

	return &Result{ObjectPath: objectPath, URL: url, ExpiresAt: expires.UTC()}, nil
}
