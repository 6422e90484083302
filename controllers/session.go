package controllers

import (
	"net/http"

	"shapekeeper/middleware"

	"github.com/gin-gonic/gin"
)

// @Summary Creates or returns the caller's anonymous session
// @Description There are no accounts: the cookie session is the identity. Also returns a signed token for the socket handshake.
// @Tags session
// @Produce json
// @Success 200 {object} object{session_id=string,socket_token=string}
// @Failure 500 {object} object{error=string}
// @Router /session [post]
func CreateSession(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No session assigned"})
		return
	}

	token, err := middleware.MintSocketToken(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not mint socket token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":   sessionID,
		"socket_token": token,
	})
}
