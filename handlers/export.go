package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-aware/dashboard"
	"go-aware/export"
)

// ReportPDF renders a report's printable document. ?mode=preview serves it
// inline; the default is a download. Both paths deliver identical bytes.
func ReportPDF(c *gin.Context, ctrl *dashboard.Controller) {
	id := c.Param("id")
	report, ok := ctrl.Report(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "unknown report"})
		return
	}

	data, err := export.Render(report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if c.Query("mode") == "preview" {
		c.Header("Content-Disposition", "inline")
	} else {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(report.ID)))
	}
	c.Data(http.StatusOK, "application/pdf", data)
}

// EmergencyPDF is the same document flow for emergency requests.
func EmergencyPDF(c *gin.Context, ctrl *dashboard.Controller) {
	id := c.Param("id")
	report, ok := ctrl.Emergency(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "unknown emergency report"})
		return
	}

	data, err := export.RenderEmergency(report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if c.Query("mode") == "preview" {
		c.Header("Content-Disposition", "inline")
	} else {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.EmergencyFileName(report.ID)))
	}
	c.Data(http.StatusOK, "application/pdf", data)
}
