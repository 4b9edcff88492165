package db

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"go-aware/types"
)

// Store bundles the Firestore client behind the report-store operations the
// dashboard depends on.
type Store struct {
	Client *firestore.Client
}

func NewStore(client *firestore.Client) *Store {
	return &Store{Client: client}
}

func (s *Store) CreateFieldReport(ctx context.Context, report types.FieldReport) (string, error) {
	return CreateFieldReport(ctx, s.Client, report)
}

func (s *Store) CreateEmergencyReport(ctx context.Context, report types.EmergencyReport) (string, error) {
	return CreateEmergencyReport(ctx, s.Client, report)
}

func (s *Store) ListFieldReports(ctx context.Context) ([]types.FieldReport, error) {
	return ListFieldReports(ctx, s.Client)
}

func (s *Store) ListEmergencyReports(ctx context.Context) ([]types.EmergencyReport, error) {
	return ListEmergencyReports(ctx, s.Client)
}

func (s *Store) DeleteFieldReport(ctx context.Context, id string) error {
	return DeleteFieldReport(ctx, s.Client, id)
}

func (s *Store) DeleteEmergencyReport(ctx context.Context, id string) error {
	return DeleteEmergencyReport(ctx, s.Client, id)
}

func (s *Store) RecordVisitorLogin(ctx context.Context, identity string) error {
	return RecordVisitorLogin(ctx, s.Client, identity)
}

func (s *Store) CountVisitorLoginsSince(ctx context.Context, since time.Time) (int, error) {
	return CountVisitorLoginsSince(ctx, s.Client, since)
}
