package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"icard-api/config"
	"icard-api/services"
)

// CheckStatus is the public self-service lookup: application id or business
// key plus exact date of birth. A miss is a 404, never an error.
func CheckStatus(c *gin.Context) {
	v := variantFromParam(c)
	if v == nil {
		return
	}

	var req struct {
		ApplicationID string `json:"applicationId"`
		Dob           string `json:"dob"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ApplicationID == "" || req.Dob == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Application ID and Date of Birth are required",
		})
		return
	}

	rec, err := services.NewLookupService(config.DB).StatusCheck(v, req.ApplicationID, req.Dob)
	if err != nil {
		if err == services.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "No application found with the provided details",
			})
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": services.Annotate(rec, v)})
}

// GetStatusByID serves direct links from the status page.
func GetStatusByID(c *gin.Context) {
	v := variantFromParam(c)
	if v == nil {
		return
	}

	rec, foundVariant, err := services.NewLookupService(config.DB).GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if foundVariant.Key != v.Key {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Application not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": services.Annotate(rec, v)})
}
