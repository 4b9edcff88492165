package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-aware/dashboard"
	"go-aware/db"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the shared credential pair and loads the dashboard. The
// response never distinguishes an unknown user from a wrong password.
func Login(c *gin.Context, ctrl *dashboard.Controller, store *db.Store) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return
	}

	if err := ctrl.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, dashboard.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	// Best effort: a failed visitor-log write must not block the login.
	if store != nil {
		if err := store.RecordVisitorLogin(c.Request.Context(), req.Username); err != nil {
			log.Printf("Warning: could not record visitor login: %v", err)
		}
	}

	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// Logout tears the dashboard session down.
func Logout(c *gin.Context, ctrl *dashboard.Controller) {
	ctrl.Logout()
	c.JSON(http.StatusOK, gin.H{"state": string(dashboard.StateUnauthenticated)})
}
