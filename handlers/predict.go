package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-aware/predict"
)

// Root is the service banner, including whether the model service answers.
func Root(c *gin.Context, client *predict.Client) {
	c.JSON(http.StatusOK, gin.H{
		"message":       "AWARE reporting and prediction API",
		"status":        "running",
		"model_service": client.Healthy(c.Request.Context()),
		"endpoints": gin.H{
			"predict": "/api/predict",
			"reports": "/api/reports",
			"health":  "/health",
		},
	})
}

// Health reports service liveness and model-service reachability.
func Health(c *gin.Context, client *predict.Client) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"model_service": client.Healthy(c.Request.Context()),
	})
}

// Predict validates the eight water-quality parameters and forwards them to
// the model service. Validation and upstream failures both answer with a
// detail field describing the problem.
func Predict(c *gin.Context, client *predict.Client) {
	var input predict.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	resp, err := client.Predict(c.Request.Context(), input)
	if err != nil {
		var predErr *predict.Error
		if errors.As(err, &predErr) && predErr.StatusCode != 0 {
			c.JSON(predErr.StatusCode, gin.H{"detail": predErr.Detail})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
