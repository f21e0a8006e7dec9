package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"icard-api/config"
	"icard-api/services"
)

// GetUserApplications lists a submitter's applications from both categories.
func GetUserApplications(c *gin.Context) {
	data, err := services.NewLookupService(config.DB).ByUser(c.Param("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
