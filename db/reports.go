package db

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"go-aware/types"
)

// CreateFieldReport persists a new field report. The creation timestamp is
// assigned by Firestore at write time, never by the caller, so ordering does
// not depend on client clocks. Returns the server-assigned document ID.
func CreateFieldReport(ctx context.Context, client *firestore.Client, report types.FieldReport) (string, error) {
	data := map[string]interface{}{
		"reporterName":   report.ReporterName,
		"village":        report.Village,
		"peopleCount":    report.PeopleCount,
		"daysSinceOnset": report.DaysSince,
		"ageGroup":       report.AgeGroup,
		"waterSource":    report.WaterSource,
		"waterDirty":     report.WaterDirty,
		"flooding":       report.Flooding,
		"notes":          report.Notes,
		"symptoms":       types.NormalizeSymptoms(report.Symptoms),
		"latitude":       report.Latitude,
		"longitude":      report.Longitude,
		"submittedBy":    report.SubmittedBy,
		"timestamp":      firestore.ServerTimestamp,
	}

	docRef, _, err := client.Collection(reportsCollection).Add(ctx, data)
	if err != nil {
		return "", &WriteError{Collection: reportsCollection, Err: errors.Wrap(err, "add document")}
	}

	log.Printf("Created field report %s for village %s", docRef.ID, report.Village)
	return docRef.ID, nil
}

// ListFieldReports returns all field reports, newest first.
func ListFieldReports(ctx context.Context, client *firestore.Client) ([]types.FieldReport, error) {
	var reports []types.FieldReport

	iter := client.Collection(reportsCollection).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &ReadError{Collection: reportsCollection, Err: errors.Wrap(err, "iterate documents")}
		}

		var report types.FieldReport
		if err := doc.DataTo(&report); err != nil {
			log.Printf("Warning: skipping malformed field report %s: %v", doc.Ref.ID, err)
			continue
		}
		report.ID = doc.Ref.ID
		report.SyncStatus = types.SyncDone
		reports = append(reports, report)
	}

	return reports, nil
}

// DeleteFieldReport removes a report document. The caller must keep the
// report visible in local state until this returns nil.
func DeleteFieldReport(ctx context.Context, client *firestore.Client, id string) error {
	_, err := client.Collection(reportsCollection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		return &WriteError{Collection: reportsCollection, DocID: id, Err: errors.Wrap(err, "delete document")}
	}
	log.Printf("Deleted field report %s", id)
	return nil
}
