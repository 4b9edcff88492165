package db

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

// RecordVisitorLogin appends a login event. Best effort from the caller's
// point of view; a failed write must not block the login itself.
func RecordVisitorLogin(ctx context.Context, client *firestore.Client, identity string) error {
	data := map[string]interface{}{
		"identity":  identity,
		"timestamp": firestore.ServerTimestamp,
	}
	_, _, err := client.Collection(visitorsCollection).Add(ctx, data)
	if err != nil {
		return &WriteError{Collection: visitorsCollection, Err: errors.Wrap(err, "add document")}
	}
	return nil
}

// CountVisitorLoginsSince counts login events at or after the given time.
// Used by the nightly rollup job.
func CountVisitorLoginsSince(ctx context.Context, client *firestore.Client, since time.Time) (int, error) {
	docs, err := client.Collection(visitorsCollection).
		Where("timestamp", ">=", since).
		Documents(ctx).
		GetAll()
	if err != nil {
		return 0, &ReadError{Collection: visitorsCollection, Err: errors.Wrap(err, "query documents")}
	}
	return len(docs), nil
}
