package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"icard-api/config"
	"icard-api/services"
)

// GenerateIDCard renders the two-sided printable card for an application and
// streams it as a PDF attachment.
func GenerateIDCard(c *gin.Context) {
	rec, v, err := services.NewLookupService(config.DB).GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	card := services.NewCardService(config.UploadPath(), config.FontPath())
	pdf, err := card.Render(rec, v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to generate ID card",
		})
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=ECoR_ID_%s.pdf", rec.Base().ApplicationNo))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
