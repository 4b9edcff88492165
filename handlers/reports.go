package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-aware/dashboard"
	"go-aware/db"
	"go-aware/geocode"
	"go-aware/types"
)

type submitReportRequest struct {
	ReporterName string   `json:"reporterName" binding:"required"`
	Village      string   `json:"village" binding:"required"`
	PeopleCount  int      `json:"peopleCount" binding:"required,gt=0"`
	DaysSince    int      `json:"daysSinceOnset" binding:"gte=0"`
	AgeGroup     string   `json:"ageGroup"`
	WaterSource  string   `json:"waterSource"`
	WaterDirty   bool     `json:"waterDirty"`
	Flooding     bool     `json:"flooding"`
	Notes        string   `json:"notes"`
	Symptoms     []string `json:"symptoms"`
	Latitude     string   `json:"latitude"`
	Longitude    string   `json:"longitude"`
	SubmittedBy  string   `json:"submittedBy"`
}

// SubmitReport creates a field report. Missing coordinates get one bounded
// geocoding attempt on the village name; if that fails the report goes in
// without coordinates, matching manual-entry behavior.
func SubmitReport(c *gin.Context, ctrl *dashboard.Controller) {
	var req submitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	report := types.FieldReport{
		ReporterName: req.ReporterName,
		Village:      req.Village,
		PeopleCount:  req.PeopleCount,
		DaysSince:    req.DaysSince,
		AgeGroup:     types.AgeGroup(req.AgeGroup),
		WaterSource:  types.WaterSource(req.WaterSource),
		WaterDirty:   req.WaterDirty,
		Flooding:     req.Flooding,
		Notes:        req.Notes,
		Symptoms:     req.Symptoms,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		SubmittedBy:  req.SubmittedBy,
	}

	if report.Latitude == "" || report.Longitude == "" {
		lat, long, err := geocode.LocateVillage(c.Request.Context(), report.Village)
		if err != nil {
			log.Printf("Geolocation fallback for %s: %v", report.Village, err)
		} else {
			report.Latitude = strconv.FormatFloat(lat, 'f', 6, 64)
			report.Longitude = strconv.FormatFloat(long, 'f', 6, 64)
		}
	}

	saved, err := ctrl.Submit(c.Request.Context(), report)
	if err != nil {
		// The report is retained locally as Failed; tell the caller both.
		c.JSON(http.StatusBadGateway, gin.H{
			"detail": "report saved locally but the store rejected the write",
			"report": saved,
		})
		return
	}

	status := http.StatusCreated
	if saved.SyncStatus == types.SyncPending {
		status = http.StatusAccepted
	}
	c.JSON(status, gin.H{"report": saved})
}

// ListReports serves the controller's cached annotated report array.
func ListReports(c *gin.Context, ctrl *dashboard.Controller) {
	snap := ctrl.Snapshot()
	if snap.State != dashboard.StateReady {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "log in first"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": snap.Reports, "count": len(snap.Reports)})
}

// DeleteReport removes a report. The item stays visible until the store
// confirms; duplicate concurrent deletes of one ID are rejected.
func DeleteReport(c *gin.Context, ctrl *dashboard.Controller) {
	id := c.Param("id")
	err := ctrl.DeleteReport(c.Request.Context(), id)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"deleted": id, "summary": ctrl.Snapshot().Summary})
		return
	}

	switch {
	case errors.Is(err, dashboard.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
	case errors.Is(err, dashboard.ErrDeleteInFlight):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	default:
		c.JSON(storeErrorStatus(err), gin.H{"detail": err.Error()})
	}
}

// History returns the reporter's local submission cache, newest first.
func History(c *gin.Context, ctrl *dashboard.Controller) {
	entries := ctrl.History()
	c.JSON(http.StatusOK, gin.H{"history": entries, "count": len(entries)})
}

type submitEmergencyRequest struct {
	ReporterID string `json:"reporterId" binding:"required"`
	WaterBody  string `json:"waterBody" binding:"required"`
	Location   string `json:"location"`
	Concern    string `json:"concern" binding:"required"`
}

func SubmitEmergency(c *gin.Context, ctrl *dashboard.Controller) {
	var req submitEmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	id, err := ctrl.SubmitEmergency(c.Request.Context(), types.EmergencyReport{
		ReporterID: req.ReporterID,
		WaterBody:  req.WaterBody,
		Location:   req.Location,
		Concern:    req.Concern,
	})
	if err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func ListEmergencies(c *gin.Context, ctrl *dashboard.Controller) {
	snap := ctrl.Snapshot()
	if snap.State != dashboard.StateReady {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "log in first"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"emergencies": snap.Emergencies, "count": len(snap.Emergencies)})
}

func DeleteEmergency(c *gin.Context, ctrl *dashboard.Controller) {
	id := c.Param("id")
	err := ctrl.DeleteEmergency(c.Request.Context(), id)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"deleted": id, "summary": ctrl.Snapshot().Summary})
		return
	}

	switch {
	case errors.Is(err, dashboard.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
	case errors.Is(err, dashboard.ErrDeleteInFlight):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	default:
		c.JSON(storeErrorStatus(err), gin.H{"detail": err.Error()})
	}
}

// storeErrorStatus maps a store failure onto an HTTP status.
func storeErrorStatus(err error) int {
	switch {
	case db.IsNotFound(err):
		return http.StatusNotFound
	case db.IsPermissionDenied(err):
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}
