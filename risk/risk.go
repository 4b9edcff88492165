package risk

import (
	"strings"

	"go-aware/types"
)

// Fixed point scale. Not configurable.
const (
	gastroPoints   = 2 // diarrhoea or vomiting present
	feverPoints    = 1
	dirtyPoints    = 2
	floodingPoints = 1

	largeOutbreakCount  = 20
	mediumOutbreakCount = 10

	highThreshold   = 5
	mediumThreshold = 3
)

// Score computes the total risk points for a report. Missing or zeroed
// fields contribute nothing; the function is total and never fails.
func Score(symptoms []string, waterDirty, flooding bool, peopleCount int) int {
	score := 0

	hasGastro := false
	hasFever := false
	for _, s := range symptoms {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "diarrhoea", "diarrhea", "vomiting":
			hasGastro = true
		case "fever":
			hasFever = true
		}
	}
	if hasGastro {
		score += gastroPoints
	}
	if hasFever {
		score += feverPoints
	}

	if waterDirty {
		score += dirtyPoints
	}
	if flooding {
		score += floodingPoints
	}

	if peopleCount >= largeOutbreakCount {
		score += 2
	} else if peopleCount >= mediumOutbreakCount {
		score += 1
	}

	return score
}

// Level maps a total score to the qualitative label.
func Level(score int) types.RiskLevel {
	switch {
	case score >= highThreshold:
		return types.RiskHigh
	case score >= mediumThreshold:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}

// Annotate attaches a derived risk label to a field report.
func Annotate(r types.FieldReport) types.AnnotatedReport {
	score := Score(r.Symptoms, r.WaterDirty, r.Flooding, r.PeopleCount)
	return types.AnnotatedReport{FieldReport: r, Risk: Level(score)}
}

// AnnotateAll scores a whole report set, preserving order.
func AnnotateAll(reports []types.FieldReport) []types.AnnotatedReport {
	annotated := make([]types.AnnotatedReport, 0, len(reports))
	for _, r := range reports {
		annotated = append(annotated, Annotate(r))
	}
	return annotated
}
