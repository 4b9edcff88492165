package mapview

import (
	"strconv"

	"go-aware/types"
)

// Default viewport when no report carries coordinates (Guwahati, Assam).
const (
	DefaultCenterLat  = 26.1445
	DefaultCenterLong = 91.7362
)

var riskColors = map[types.RiskLevel]string{
	types.RiskLow:    "green",
	types.RiskMedium: "yellow",
	types.RiskHigh:   "red",
}

// View is the full recomputed marker set. Markers are discarded and rebuilt
// on every report-set change; no incremental diffing, report counts are
// small.
type View struct {
	Markers   []types.MapMarker `json:"markers"`
	Bounds    *types.MapBounds  `json:"bounds,omitempty"`
	CenterLat float64           `json:"centerLat"`
	CenterLon float64           `json:"centerLon"`
}

// Build projects the annotated report set onto map markers. A report is
// plotted only when both latitude and longitude parse; anything else is
// skipped silently. With at least one marker the bounds box fits all of
// them, otherwise the view stays at the default center.
func Build(reports []types.AnnotatedReport) View {
	view := View{
		Markers:   []types.MapMarker{},
		CenterLat: DefaultCenterLat,
		CenterLon: DefaultCenterLong,
	}

	for _, r := range reports {
		lat, err := strconv.ParseFloat(r.Latitude, 64)
		if err != nil {
			continue
		}
		long, err := strconv.ParseFloat(r.Longitude, 64)
		if err != nil {
			continue
		}

		view.Markers = append(view.Markers, types.MapMarker{
			ReportID: r.ID,
			Village:  r.Village,
			Lat:      lat,
			Long:     long,
			Risk:     r.Risk,
			Color:    ColorFor(r.Risk),
		})
	}

	if len(view.Markers) > 0 {
		bounds := types.MapBounds{
			MinLat: view.Markers[0].Lat, MaxLat: view.Markers[0].Lat,
			MinLon: view.Markers[0].Long, MaxLon: view.Markers[0].Long,
		}
		for _, m := range view.Markers[1:] {
			if m.Lat < bounds.MinLat {
				bounds.MinLat = m.Lat
			}
			if m.Lat > bounds.MaxLat {
				bounds.MaxLat = m.Lat
			}
			if m.Long < bounds.MinLon {
				bounds.MinLon = m.Long
			}
			if m.Long > bounds.MaxLon {
				bounds.MaxLon = m.Long
			}
		}
		view.Bounds = &bounds
		view.CenterLat = (bounds.MinLat + bounds.MaxLat) / 2
		view.CenterLon = (bounds.MinLon + bounds.MaxLon) / 2
	}

	return view
}

// ColorFor maps a risk label to its marker color. Unknown labels render
// green rather than dropping the marker.
func ColorFor(risk types.RiskLevel) string {
	if c, ok := riskColors[risk]; ok {
		return c
	}
	return "green"
}
