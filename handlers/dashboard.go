package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-aware/dashboard"
)

// Dashboard serves the full derived view state in one shot.
func Dashboard(c *gin.Context, ctrl *dashboard.Controller) {
	snap := ctrl.Snapshot()
	if snap.State != dashboard.StateReady {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "log in first"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func Summary(c *gin.Context, ctrl *dashboard.Controller) {
	snap := ctrl.Snapshot()
	if snap.State != dashboard.StateReady {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "log in first"})
		return
	}
	c.JSON(http.StatusOK, snap.Summary)
}

// MapView serves the recomputed marker set and bounds.
func MapView(c *gin.Context, ctrl *dashboard.Controller) {
	snap := ctrl.Snapshot()
	if snap.State != dashboard.StateReady {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "log in first"})
		return
	}
	c.JSON(http.StatusOK, snap.Map)
}

func ArchiveNext(c *gin.Context, ctrl *dashboard.Controller) {
	c.JSON(http.StatusOK, gin.H{"archiveIndex": ctrl.ArchiveNext()})
}

func ArchivePrev(c *gin.Context, ctrl *dashboard.Controller) {
	c.JSON(http.StatusOK, gin.H{"archiveIndex": ctrl.ArchivePrev()})
}

type visibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// SetTableVisible toggles the report table independently of the other views.
func SetTableVisible(c *gin.Context, ctrl *dashboard.Controller) {
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	ctrl.SetTableVisible(*req.Visible)
	c.JSON(http.StatusOK, gin.H{"views": ctrl.Snapshot().Views})
}

// SetArchiveVisible toggles the archive browser; its index is kept as-is.
func SetArchiveVisible(c *gin.Context, ctrl *dashboard.Controller) {
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	ctrl.SetArchiveVisible(*req.Visible)
	c.JSON(http.StatusOK, gin.H{"views": ctrl.Snapshot().Views})
}

// ShowDetail opens a report's detail view; the report must be cached.
func ShowDetail(c *gin.Context, ctrl *dashboard.Controller) {
	id := c.Param("id")
	report, ok := ctrl.Report(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "unknown report"})
		return
	}
	ctrl.ShowDetail(id)
	c.JSON(http.StatusOK, gin.H{"report": report})
}

func HideDetail(c *gin.Context, ctrl *dashboard.Controller) {
	ctrl.HideDetail()
	c.JSON(http.StatusOK, gin.H{"views": ctrl.Snapshot().Views})
}

func ShowEmergencyDetail(c *gin.Context, ctrl *dashboard.Controller) {
	id := c.Param("id")
	report, ok := ctrl.Emergency(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "unknown emergency report"})
		return
	}
	ctrl.ShowEmergencyDetail(id)
	c.JSON(http.StatusOK, gin.H{"emergency": report})
}

func HideEmergencyDetail(c *gin.Context, ctrl *dashboard.Controller) {
	ctrl.HideEmergencyDetail()
	c.JSON(http.StatusOK, gin.H{"views": ctrl.Snapshot().Views})
}

// DismissError clears the error banner without retrying the failed load.
func DismissError(c *gin.Context, ctrl *dashboard.Controller) {
	ctrl.DismissError()
	c.JSON(http.StatusOK, gin.H{"lastError": ""})
}
