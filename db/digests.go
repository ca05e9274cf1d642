package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-newsdigest/apperr"
	"go-newsdigest/types"
)

const (
	DigestCollection = "digests"
	MaxListLimit     = 50
)

// DigestStore persists the output of the scheduled summarization job.
type DigestStore interface {
	Save(ctx context.Context, d *types.Digest) error
	Get(ctx context.Context, id string) (types.Digest, error)
	List(ctx context.Context, keyword string, limit int) ([]types.Digest, error)
}

// DigestID derives a stable document id for one digest run.
func DigestID(keyword, language string, createdAt time.Time) string {
	return HashString(strings.ToLower(keyword) + "|" + language + "|" + createdAt.UTC().Format(time.RFC3339Nano))
}

type FirestoreDigestStore struct {
	client *firestore.Client
}

func NewFirestoreDigestStore(client *firestore.Client) *FirestoreDigestStore {
	return &FirestoreDigestStore{client: client}
}

// Save writes d, filling in CreatedAt and ID when they are unset.
func (s *FirestoreDigestStore) Save(ctx context.Context, d *types.Digest) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if d.ID == "" {
		d.ID = DigestID(d.Keyword, d.Language, d.CreatedAt)
	}

	if _, err := s.client.Collection(DigestCollection).Doc(d.ID).Set(ctx, d); err != nil {
		return fmt.Errorf("error saving digest %s: %w", d.ID, err)
	}
	return nil
}

func (s *FirestoreDigestStore) Get(ctx context.Context, id string) (types.Digest, error) {
	var d types.Digest

	doc, err := s.client.Collection(DigestCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return d, apperr.NotFound("digest not found")
		}
		return d, fmt.Errorf("error getting digest %s: %w", id, err)
	}

	if err := doc.DataTo(&d); err != nil {
		return d, fmt.Errorf("error decoding digest %s: %w", id, err)
	}
	d.ID = doc.Ref.ID
	return d, nil
}

// List returns the newest digests first, optionally only for one keyword.
func (s *FirestoreDigestStore) List(ctx context.Context, keyword string, limit int) ([]types.Digest, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	q := s.client.Collection(DigestCollection).Query
	if keyword != "" {
		q = q.Where("keyword", "==", keyword)
	}
	iter := q.OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	digests := []types.Digest{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error listing digests: %w", err)
		}

		var d types.Digest
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("error decoding digest %s: %w", doc.Ref.ID, err)
		}
		d.ID = doc.Ref.ID
		digests = append(digests, d)
	}
	return digests, nil
}
