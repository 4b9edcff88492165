package db

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"go-aware/types"
)

// CreateEmergencyReport persists a new emergency request with a
// server-assigned timestamp and returns the document ID.
func CreateEmergencyReport(ctx context.Context, client *firestore.Client, report types.EmergencyReport) (string, error) {
	data := map[string]interface{}{
		"reporterId": report.ReporterID,
		"waterBody":  report.WaterBody,
		"location":   report.Location,
		"concern":    report.Concern,
		"timestamp":  firestore.ServerTimestamp,
	}

	docRef, _, err := client.Collection(emergenciesCollection).Add(ctx, data)
	if err != nil {
		return "", &WriteError{Collection: emergenciesCollection, Err: errors.Wrap(err, "add document")}
	}

	log.Printf("Created emergency report %s for water body %s", docRef.ID, report.WaterBody)
	return docRef.ID, nil
}

// ListEmergencyReports returns all emergency requests, newest first.
func ListEmergencyReports(ctx context.Context, client *firestore.Client) ([]types.EmergencyReport, error) {
	var reports []types.EmergencyReport

	iter := client.Collection(emergenciesCollection).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &ReadError{Collection: emergenciesCollection, Err: errors.Wrap(err, "iterate documents")}
		}

		var report types.EmergencyReport
		if err := doc.DataTo(&report); err != nil {
			log.Printf("Warning: skipping malformed emergency report %s: %v", doc.Ref.ID, err)
			continue
		}
		report.ID = doc.Ref.ID
		reports = append(reports, report)
	}

	return reports, nil
}

// DeleteEmergencyReport removes an emergency request document.
func DeleteEmergencyReport(ctx context.Context, client *firestore.Client, id string) error {
	_, err := client.Collection(emergenciesCollection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		return &WriteError{Collection: emergenciesCollection, DocID: id, Err: errors.Wrap(err, "delete document")}
	}
	log.Printf("Deleted emergency report %s", id)
	return nil
}
