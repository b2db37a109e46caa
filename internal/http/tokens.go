package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notehive/notehive/internal/auth"
)

// TokenController manages API tokens for the authenticated user.
type TokenController struct {
	Service *auth.Service
}

// NewTokenController creates a new TokenController.
func NewTokenController(service *auth.Service) *TokenController {
	return &TokenController{Service: service}
}

// Generate handles POST /api/auth/token. The plaintext token is returned
// once and never stored.
func (controller *TokenController) Generate(c *gin.Context) {
	userID := auth.GetUserID(c)

	token, err := controller.Service.GenerateToken(userID)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"token": token})
}

// Revoke handles DELETE /api/auth/token.
func (controller *TokenController) Revoke(c *gin.Context) {
	userID := auth.GetUserID(c)

	if err := controller.Service.RevokeToken(userID); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"message": "token revoked"})
}
