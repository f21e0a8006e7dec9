package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"icard-api/models"
	"icard-api/services"
)

// variantFromParam resolves the :type route segment, responding 400 itself
// when the segment is not a known category.
func variantFromParam(c *gin.Context) *models.Variant {
	v, ok := models.VariantByKey(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid application type",
		})
		return nil
	}
	return v
}

// respondServiceError translates a service failure into the JSON failure
// envelope with the matching status code.
func respondServiceError(c *gin.Context, err error) {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": validation.Fields,
		})
		return
	}

	var invalidDate *services.InvalidDateError
	if errors.As(err, &invalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid date of birth format. Please use DD-MM-YYYY or any standard date format",
		})
		return
	}

	var duplicate *services.DuplicateKeyError
	if errors.As(err, &duplicate) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Duplicate value",
			"message": duplicate.Field + " already exists",
		})
		return
	}

	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Application not found",
		})
		return
	}

	if errors.Is(err, services.ErrMissingReason) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Rejection reason is required",
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Internal server error",
	})
}
