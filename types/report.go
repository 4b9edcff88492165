package types

import "time"

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// SyncStatus tracks whether a locally created report has reached Firestore.
type SyncStatus string

const (
	SyncPending SyncStatus = "Pending sync"
	SyncDone    SyncStatus = "Synced"
	SyncFailed  SyncStatus = "Failed"
)

type AgeGroup string

const (
	AgeChild  AgeGroup = "0-12"
	AgeTeen   AgeGroup = "13-18"
	AgeAdult  AgeGroup = "19-59"
	AgeSenior AgeGroup = "60+"
	AgeMixed  AgeGroup = "Mixed"
)

type WaterSource string

const (
	SourceHandpump WaterSource = "Handpump"
	SourceWell     WaterSource = "Well"
	SourcePond     WaterSource = "Pond"
	SourceRiver    WaterSource = "River"
	SourcePiped    WaterSource = "Piped supply"
	SourceOther    WaterSource = "Other"
)

// SymptomNotSpecified is stored when a reporter selects no symptoms.
const SymptomNotSpecified = "Not specified"

// FieldReport is a single health-worker submission tied to a village.
// Timestamp is assigned by Firestore at write time; ID is the document ID
// once synced, or a locally generated UUID while the report is pending.
type FieldReport struct {
	ID           string      `firestore:"-" json:"id"`
	ReporterName string      `firestore:"reporterName" json:"reporterName"`
	Village      string      `firestore:"village" json:"village"`
	PeopleCount  int         `firestore:"peopleCount" json:"peopleCount"`
	DaysSince    int         `firestore:"daysSinceOnset" json:"daysSinceOnset"`
	AgeGroup     AgeGroup    `firestore:"ageGroup" json:"ageGroup"`
	WaterSource  WaterSource `firestore:"waterSource" json:"waterSource"`
	WaterDirty   bool        `firestore:"waterDirty" json:"waterDirty"`
	Flooding     bool        `firestore:"flooding" json:"flooding"`
	Notes        string      `firestore:"notes" json:"notes"`
	Symptoms     []string    `firestore:"symptoms" json:"symptoms"`
	Latitude     string      `firestore:"latitude" json:"latitude"`
	Longitude    string      `firestore:"longitude" json:"longitude"`
	SubmittedBy  string      `firestore:"submittedBy" json:"submittedBy"`
	Timestamp    time.Time   `firestore:"timestamp,serverTimestamp" json:"timestamp"`
	SyncStatus   SyncStatus  `firestore:"-" json:"syncStatus"`
}

// EmergencyReport flags a concerning water body outside the symptom flow.
type EmergencyReport struct {
	ID         string    `firestore:"-" json:"id"`
	ReporterID string    `firestore:"reporterId" json:"reporterId"`
	WaterBody  string    `firestore:"waterBody" json:"waterBody"`
	Location   string    `firestore:"location" json:"location"`
	Concern    string    `firestore:"concern" json:"concern"`
	Timestamp  time.Time `firestore:"timestamp,serverTimestamp" json:"timestamp"`
}

// AnnotatedReport is a FieldReport plus its derived risk label. Held only in
// memory; recomputed on every load and never written back to the store.
type AnnotatedReport struct {
	FieldReport
	Risk RiskLevel `json:"risk"`
}

// NormalizeSymptoms returns the symptom set with the sentinel applied when
// the reporter selected nothing.
func NormalizeSymptoms(symptoms []string) []string {
	if len(symptoms) == 0 {
		return []string{SymptomNotSpecified}
	}
	return symptoms
}
