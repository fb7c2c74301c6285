package utils

import (
	"net/http"

	"github.com/osa911/glassesrelay/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a success response with data
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// AbortWithError writes {"error": message} and stops the handler chain
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, common.NewErrorResponse(message))
}
