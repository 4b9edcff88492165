package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"go-aware/types"
)

// Fixed creation date so the same report always renders to identical bytes,
// whichever sink delivers it.
var pdfEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	pageMargin     = 15.0
	bottomMargin   = 20.0
	labelWidth     = 55.0
	lineHeight     = 7.0
	sectionSpacing = 4.0
)

// Render produces the printable document for a field report: reporter
// details, health snapshot, water/environment, location, then free-text
// notes last, wrapped to the page width. Content past the bottom margin
// flows onto a new page.
func Render(report types.AnnotatedReport) ([]byte, error) {
	pdf := newDocument("Field Report")

	writeSection(pdf, "Reporter Details", [][2]string{
		{"Reporter", report.ReporterName},
		{"Submitted by", report.SubmittedBy},
		{"Report ID", orLabel(report.ID, "unsynced")},
		{"Submitted", formatTimestamp(report.Timestamp)},
		{"Sync status", string(report.SyncStatus)},
	})

	writeSection(pdf, "Health Snapshot", [][2]string{
		{"Risk level", string(report.Risk)},
		{"Symptoms", strings.Join(types.NormalizeSymptoms(report.Symptoms), ", ")},
		{"People affected", fmt.Sprintf("%d", report.PeopleCount)},
		{"Days since onset", fmt.Sprintf("%d", report.DaysSince)},
		{"Age group", string(report.AgeGroup)},
	})

	writeSection(pdf, "Water & Environment", [][2]string{
		{"Water source", string(report.WaterSource)},
		{"Water visibly dirty", yesNo(report.WaterDirty)},
		{"Recent flooding", yesNo(report.Flooding)},
	})

	writeSection(pdf, "Location", [][2]string{
		{"Village / locality", orLabel(report.Village, "Not specified")},
		{"Latitude", orLabel(report.Latitude, "-")},
		{"Longitude", orLabel(report.Longitude, "-")},
	})

	writeNotes(pdf, report.Notes)

	return output(pdf)
}

// RenderEmergency produces the printable document for an emergency request.
func RenderEmergency(report types.EmergencyReport) ([]byte, error) {
	pdf := newDocument("Emergency Water Body Report")

	writeSection(pdf, "Reporter Details", [][2]string{
		{"Reporter", report.ReporterID},
		{"Report ID", orLabel(report.ID, "unsynced")},
		{"Submitted", formatTimestamp(report.Timestamp)},
	})

	writeSection(pdf, "Water Body", [][2]string{
		{"Name", report.WaterBody},
		{"Location", report.Location},
	})

	writeNotes(pdf, report.Concern)

	return output(pdf)
}

// FileName names the saved document deterministically from the report ID,
// falling back to a fixed label for unsynced reports.
func FileName(reportID string) string {
	if reportID == "" {
		return "field-report.pdf"
	}
	return fmt.Sprintf("field-report-%s.pdf", reportID)
}

func EmergencyFileName(reportID string) string {
	if reportID == "" {
		return "emergency-report.pdf"
	}
	return fmt.Sprintf("emergency-report-%s.pdf", reportID)
}

// SaveToFile renders a field report into dir. The file sink and the preview
// sink deliver the same bytes; only the delivery differs.
func SaveToFile(dir string, report types.AnnotatedReport) (string, error) {
	data, err := Render(report)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(report.ID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report pdf: %w", err)
	}
	return path, nil
}

func newDocument(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 5, "AWARE community water-risk reporting", "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(sectionSpacing)
	return pdf
}

func writeSection(pdf *gofpdf.Fpdf, heading string, rows [][2]string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, heading, "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelWidth, lineHeight, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, lineHeight, row[1], "", "L", false)
	}
	pdf.Ln(sectionSpacing)
}

// Notes always come last and wrap to the page width.
func writeNotes(pdf *gofpdf.Fpdf, notes string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Notes", "B", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, lineHeight, orLabel(notes, "No additional notes."), "", "L", false)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006 15:04")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func orLabel(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
