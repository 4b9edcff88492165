package aggregate

import (
	"time"

	"go-aware/types"
)

// Summarize derives the dashboard summary from the current in-memory report
// set. "Today" is the caller's local calendar day, midnight to midnight.
// Pure; callers re-run it after every load or mutation.
func Summarize(reports []types.AnnotatedReport, emergencies []types.EmergencyReport, now time.Time) types.DashboardSummary {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	summary := types.DashboardSummary{
		EmergencyCount:  len(emergencies),
		TopAffectedArea: "None",
	}

	affected := make(map[string]int)
	for _, r := range reports {
		if !r.Timestamp.Before(midnight) {
			summary.NewReportsToday++
		}
		if r.Risk == types.RiskHigh {
			summary.HighRiskCount++
		}
		if r.Village != "" {
			affected[r.Village] += r.PeopleCount
		}
	}

	// Highest summed people-count wins; equal sums break lexicographically
	// so the label is stable across reloads.
	best := ""
	bestCount := -1
	for village, count := range affected {
		if count > bestCount || (count == bestCount && village < best) {
			best = village
			bestCount = count
		}
	}
	if best != "" {
		summary.TopAffectedArea = best
	}

	return summary
}
