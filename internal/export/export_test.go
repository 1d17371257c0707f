package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/carboloom/carboloom/internal/gamification"
	"github.com/carboloom/carboloom/internal/habits"
)

type fakeLogs struct {
	listFn func(ctx context.Context, userID string) ([]habits.LogEntry, error)
}

func (f fakeLogs) ListLogs(ctx context.Context, userID string) ([]habits.LogEntry, error) {
	return f.listFn(ctx, userID)
}

type fakeGame struct {
	getFn func(ctx context.Context, userID string) (*gamification.Data, error)
}

func (f fakeGame) Get(ctx context.Context, userID string) (*gamification.Data, error) {
	return f.getFn(ctx, userID)
}

type fakeStore struct {
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeStore) Upload(_ context.Context, objectPath, contentType string, data io.Reader) error {
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.objects[objectPath] = raw
	f.types[objectPath] = contentType
	return nil
}

func (f *fakeStore) SignedURL(objectPath string, expires time.Time) (string, error) {
	return "https://storage.example/" + objectPath + "?exp=" + expires.UTC().Format(time.RFC3339), nil
}

func newTestService(logs LogSource, game GamificationSource, store ObjectStore) *service {
	svc := NewService(logs, game, store).(*service)
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	svc.newID = func() string { return "snap-1" }
	return svc
}

func TestExportUploadsSnapshot(t *testing.T) {
	store := &fakeStore{objects: map[string][]byte{}, types: map[string]string{}}
	data := gamification.NewData()
	data.Points = 40

	svc := newTestService(
		fakeLogs{listFn: func(_ context.Context, userID string) ([]habits.LogEntry, error) {
			return []habits.LogEntry{{Date: "2024-06-10"}}, nil
		}},
		fakeGame{getFn: func(context.Context, string) (*gamification.Data, error) { return data, nil }},
		store,
	)

	res, err := svc.Export(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if res.ObjectPath != "exports/user_1/snap-1.json" {
		t.Fatalf("unexpected path %q", res.ObjectPath)
	}
	if !strings.Contains(res.URL, "exports/user_1/snap-1.json") {
		t.Fatalf("unexpected url %q", res.URL)
	}
	if want := time.Date(2024, 6, 11, 8, 0, 0, 0, time.UTC); !res.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, res.ExpiresAt)
	}
	if store.types[res.ObjectPath] != "application/json" {
		t.Fatalf("unexpected content type %q", store.types[res.ObjectPath])
	}

	var snap Snapshot
	if err := json.Unmarshal(store.objects[res.ObjectPath], &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.UserID != "user_1" || len(snap.Logs) != 1 || snap.Gamification.Points != 40 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestExportDisabled(t *testing.T) {
	svc := NewService(nil, nil, nil)
	if _, err := svc.Export(context.Background(), "user_1"); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestExportPropagatesLoadFailure(t *testing.T) {
	store := &fakeStore{objects: map[string][]byte{}, types: map[string]string{}}
	svc := newTestService(
		fakeLogs{listFn: func(context.Context, string) ([]habits.LogEntry, error) { return nil, errors.New("boom") }},
		fakeGame{getFn: func(context.Context, string) (*gamification.Data, error) { return gamification.NewData(), nil }},
		store,
	)

	if _, err := svc.Export(context.Background(), "user_1"); err == nil {
		t.Fatalf("expected error")
	}
	if len(store.objects) != 0 {
		t.Fatalf("nothing should be uploaded on failure")
	}
}
