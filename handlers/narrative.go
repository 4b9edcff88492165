package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"go-aware/narrative"
	"go-aware/predict"
)

type narrativeRequest struct {
	predict.Input
	RiskLevel string   `json:"riskLevel" binding:"required"`
	RiskScore *float64 `json:"riskScore"`
}

// Narrative asks the completion service for a disease/recommendation
// advisory. Parse and API failures degrade to the fixed fallback payload;
// the endpoint never answers with an error for those.
func Narrative(c *gin.Context, client *openai.Client) {
	var req narrativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	advisory, err := narrative.Generate(c.Request.Context(), client, req.Input, predict.Response{
		RiskLevel: req.RiskLevel,
		RiskScore: req.RiskScore,
	})
	if err != nil {
		log.Printf("Narrative degraded to fallback: %v", err)
	}
	c.JSON(http.StatusOK, advisory)
}
