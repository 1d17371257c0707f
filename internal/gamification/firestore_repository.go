package gamification

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	recordsCollection = "gamification"
	usersCollection   = "users"
	customsCollection = "custom_challenges"
)

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository stores records at gamification/{userID}.
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) Get(ctx context.Context, userID string) (*Data, error) {
	doc, err := r.client.Collection(recordsCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var data Data
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("decode gamification record: %w", err)
	}
	return data.normalize(), nil
}

// Put overwrites the whole document; concurrent writers resolve last-write-wins.
func (r *firestoreRepository) Put(ctx context.Context, userID string, data *Data) error {
	_, err := r.client.Collection(recordsCollection).Doc(userID).Set(ctx, data)
	return err
}

type firestoreCustoms struct {
	client *firestore.Client
}

// NewFirestoreCustomChallengeRepository stores challenges at users/{userID}/custom_challenges/{id}.
func NewFirestoreCustomChallengeRepository(client *firestore.Client) CustomChallengeRepository {
	return &firestoreCustoms{client: client}
}

func (r *firestoreCustoms) collection(userID string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(userID).Collection(customsCollection)
}

func (r *firestoreCustoms) List(ctx context.Context, userID string) ([]Challenge, error) {
	iter := r.collection(userID).Documents(ctx)
	defer iter.Stop()

	out := make([]Challenge, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var ch Challenge
		if err := doc.DataTo(&ch); err != nil {
			return nil, fmt.Errorf("decode custom challenge %s: %w", doc.Ref.ID, err)
		}
		ch.ID = doc.Ref.ID
		out = append(out, ch)
	}
	return out, nil
}

func (r *firestoreCustoms) Get(ctx context.Context, userID, challengeID string) (Challenge, error) {
	doc, err := r.collection(userID).Doc(challengeID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Challenge{}, ErrNotFound
	}
	if err != nil {
		return Challenge{}, err
	}
	var ch Challenge
	if err := doc.DataTo(&ch); err != nil {
		return Challenge{}, fmt.Errorf("decode custom challenge: %w", err)
	}
	ch.ID = challengeID
	return ch, nil
}

func (r *firestoreCustoms) Put(ctx context.Context, userID string, challenge Challenge) error {
	_, err := r.collection(userID).Doc(challenge.ID).Set(ctx, challenge)
	return err
}

func (r *firestoreCustoms) Delete(ctx context.Context, userID, challengeID string) error {
	ref := r.collection(userID).Doc(challengeID)
	// Exists precondition turns a missing document into NotFound.
	_, err := ref.Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}
