package types

// DashboardSummary is derived from the in-memory report set on every load or
// mutation. It has no identity and is never persisted.
type DashboardSummary struct {
	NewReportsToday int    `json:"newReportsToday"`
	HighRiskCount   int    `json:"highRiskCount"`
	EmergencyCount  int    `json:"emergencyCount"`
	TopAffectedArea string `json:"topAffectedArea"`
}

// MapMarker is one plotted report. Only reports with both coordinates parse
// into markers.
type MapMarker struct {
	ReportID string    `json:"reportId"`
	Village  string    `json:"village"`
	Lat      float64   `json:"lat"`
	Long     float64   `json:"long"`
	Risk     RiskLevel `json:"risk"`
	Color    string    `json:"color"`
}

// MapBounds is the box fitted around the current marker set.
type MapBounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}
