package activity

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/carboloom/carboloom/internal/habits"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository stores logs at users/{userID}/logs/{date}.
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) logs(userID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID).Collection("logs")
}

func (r *firestoreRepository) List(ctx context.Context, userID string) ([]habits.LogEntry, error) {
	iter := r.logs(userID).OrderBy("date", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	out := make([]habits.LogEntry, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var entry habits.LogEntry
		if err := doc.DataTo(&entry); err != nil {
			return nil, fmt.Errorf("decode log %s: %w", doc.Ref.ID, err)
		}
		entry.Date = doc.Ref.ID
		entry.Habits = entry.Habits.Clone()
		out = append(out, entry)
	}
	return out, nil
}

func (r *firestoreRepository) Get(ctx context.Context, userID, date string) (habits.LogEntry, error) {
	doc, err := r.logs(userID).Doc(date).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return habits.LogEntry{}, ErrNotFound
	}
	if err != nil {
		return habits.LogEntry{}, err
	}
	var entry habits.LogEntry
	if err := doc.DataTo(&entry); err != nil {
		return habits.LogEntry{}, fmt.Errorf("decode log: %w", err)
	}
	entry.Date = date
	entry.Habits = entry.Habits.Clone()
	return entry, nil
}

// Upsert keys the document by date, so a resubmitted day replaces the old one wholesale.
func (r *firestoreRepository) Upsert(ctx context.Context, userID string, entry habits.LogEntry) error {
	_, err := r.logs(userID).Doc(entry.Date).Set(ctx, entry)
	return err
}
