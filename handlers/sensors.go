package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"go-aware/sensors"
)

func StartSensors(c *gin.Context, sim *sensors.Simulator) {
	if err := sim.Start(); err != nil {
		if errors.Is(err, sensors.ErrAlreadyRunning) {
			c.JSON(http.StatusOK, gin.H{"status": "already_running", "message": "Sensors are already running"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to start sensors: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "started", "message": "Synthetic sensors started successfully"})
}

func StopSensors(c *gin.Context, sim *sensors.Simulator) {
	if err := sim.Stop(); err != nil {
		if errors.Is(err, sensors.ErrNotRunning) {
			c.JSON(http.StatusOK, gin.H{"status": "not_running", "message": "Sensors are not running"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to stop sensors: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "stopped", "message": "Synthetic sensors stopped successfully"})
}

func SensorStatus(c *gin.Context, sim *sensors.Simulator) {
	c.JSON(http.StatusOK, gin.H{"running": sim.Running()})
}

// SensorData serves the latest readings, oldest first.
func SensorData(c *gin.Context, sim *sensors.Simulator) {
	readings := sim.Latest(sensors.LatestReadings)
	if len(readings) == 0 {
		c.JSON(http.StatusOK, gin.H{"data": readings, "message": "No sensor data available yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": readings, "count": len(readings)})
}

func StartGraph(c *gin.Context, grapher *sensors.Grapher) {
	if err := grapher.Start(); err != nil {
		if errors.Is(err, sensors.ErrGraphAlreadyRunning) {
			c.JSON(http.StatusOK, gin.H{"status": "already_running", "message": "Live graph is already running"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to start live graph: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "started", "message": "Live graph started successfully"})
}

func StopGraph(c *gin.Context, grapher *sensors.Grapher) {
	if err := grapher.Stop(); err != nil {
		if errors.Is(err, sensors.ErrGraphNotRunning) {
			c.JSON(http.StatusOK, gin.H{"status": "not_running", "message": "Live graph is not running"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to stop live graph: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "stopped", "message": "Live graph stopped successfully"})
}

func GraphStatus(c *gin.Context, grapher *sensors.Grapher) {
	c.JSON(http.StatusOK, gin.H{"running": grapher.Running()})
}

// GraphImage serves the current PNG. Clients poll with a cache-busting query
// parameter; the no-store headers keep intermediaries honest too.
func GraphImage(c *gin.Context, grapher *sensors.Grapher) {
	if _, err := os.Stat(grapher.ImagePath()); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Graph image not found. Make sure the live graph is running."})
		return
	}
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.File(grapher.ImagePath())
}
