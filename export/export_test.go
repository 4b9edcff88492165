package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-aware/types"
)

func sampleReport() types.AnnotatedReport {
	return types.AnnotatedReport{
		FieldReport: types.FieldReport{
			ID:           "abc123",
			ReporterName: "Rina Das",
			Village:      "Majuli",
			PeopleCount:  14,
			DaysSince:    3,
			AgeGroup:     types.AgeMixed,
			WaterSource:  types.SourceHandpump,
			WaterDirty:   true,
			Symptoms:     []string{"Diarrhoea", "Fever"},
			Notes:        "Several households using the same handpump.",
			Latitude:     "26.95",
			Longitude:    "94.17",
			SubmittedBy:  "asha01@example.org",
			Timestamp:    time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
			SyncStatus:   types.SyncDone,
		},
		Risk: types.RiskHigh,
	}
}

func pageCount(data []byte) int {
	// Each rendered page carries its own /Type /Page object; the page tree
	// node is /Type /Pages and must not be counted.
	return bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
}

func TestRenderProducesPDF(t *testing.T) {
	data, err := Render(sampleReport())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestRenderDeterministic(t *testing.T) {
	report := sampleReport()
	first, err := Render(report)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := Render(report)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("same input rendered different bytes")
	}
}

func TestFileSinkMatchesPreviewSink(t *testing.T) {
	report := sampleReport()
	dir := t.TempDir()

	path, err := SaveToFile(dir, report)
	if err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}
	if filepath.Base(path) != "field-report-abc123.pdf" {
		t.Errorf("file name = %s", filepath.Base(path))
	}

	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	preview, err := Render(report)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(saved, preview) {
		t.Error("file sink and preview sink produced different bytes")
	}
}

func TestRenderPaginatesLongNotes(t *testing.T) {
	report := sampleReport()
	report.Notes = strings.Repeat("Households report turbidity after every rainfall event. ", 400)

	data, err := Render(report)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := pageCount(data); got < 2 {
		t.Errorf("page count = %d, want at least 2 for oversized notes", got)
	}
}

func TestFileNames(t *testing.T) {
	testCases := []struct {
		id   string
		want string
	}{
		{"abc", "field-report-abc.pdf"},
		{"", "field-report.pdf"},
	}
	for _, tc := range testCases {
		if got := FileName(tc.id); got != tc.want {
			t.Errorf("FileName(%q) = %s, want %s", tc.id, got, tc.want)
		}
	}
	if got := EmergencyFileName(""); got != "emergency-report.pdf" {
		t.Errorf("EmergencyFileName fallback = %s", got)
	}
	if got := EmergencyFileName("x1"); got != "emergency-report-x1.pdf" {
		t.Errorf("EmergencyFileName = %s", got)
	}
}

func TestRenderEmergency(t *testing.T) {
	data, err := RenderEmergency(types.EmergencyReport{
		ID:         "em1",
		ReporterID: "asha01",
		WaterBody:  "Kolong river",
		Location:   "Near the east ghat",
		Concern:    "Dead fish along the bank since yesterday.",
		Timestamp:  time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("RenderEmergency failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}
