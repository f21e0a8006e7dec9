package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"icard-api/config"
	"icard-api/models"
	"icard-api/services"
)

// GetApplications returns applications from both categories with optional
// status/type/search filters. Each variant is sorted independently, then the
// results are concatenated.
func GetApplications(c *gin.Context) {
	filter := services.ListFilter{
		Status:    c.Query("status"),
		Type:      c.Query("type"),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}

	data, err := services.NewLookupService(config.DB).List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// GetApplication returns a single application by id, trying gazetted first.
func GetApplication(c *gin.Context) {
	rec, v, err := services.NewLookupService(config.DB).GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": services.Annotate(rec, v)})
}

// GetApplicationByNo returns a single application by its application number.
func GetApplicationByNo(c *gin.Context) {
	rec, v, err := services.NewLookupService(config.DB).GetByApplicationNo(c.Param("appNo"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": services.Annotate(rec, v)})
}

// GetPendingQueue returns the pending applications of one category, newest
// first.
func GetPendingQueue(c *gin.Context) {
	v := variantFromParam(c)
	if v == nil {
		return
	}

	data, err := services.NewLookupService(config.DB).List(services.ListFilter{
		Status:    models.StatusPending,
		Type:      v.Key,
		SortBy:    "createdAt",
		SortOrder: "desc",
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// GetApproved returns approved applications from both categories ordered by
// approval time.
func GetApproved(c *gin.Context) {
	listByStatus(c, models.StatusApproved, "approvedAt")
}

// GetRejected returns rejected applications from both categories ordered by
// rejection time.
func GetRejected(c *gin.Context) {
	listByStatus(c, models.StatusRejected, "rejectedAt")
}

func listByStatus(c *gin.Context, status, sortBy string) {
	data, err := services.NewLookupService(config.DB).List(services.ListFilter{
		Status:    status,
		SortBy:    sortBy,
		SortOrder: "desc",
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// GetCounts returns the dashboard counters.
func GetCounts(c *gin.Context) {
	data, err := services.NewLookupService(config.DB).Counts()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// ApproveApplication marks an application Approved.
func ApproveApplication(c *gin.Context) {
	v := variantFromParam(c)
	if v == nil {
		return
	}

	rec, err := services.NewStatusService(config.DB).Approve(v, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": v.Label + " application approved",
		"data":    services.Annotate(rec, v),
	})
}

// RejectApplication marks an application Rejected; the reason is mandatory.
func RejectApplication(c *gin.Context) {
	v := variantFromParam(c)
	if v == nil {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// Body may be absent entirely; the service rejects the empty reason.
	_ = c.ShouldBindJSON(&req)

	rec, err := services.NewStatusService(config.DB).Reject(v, c.Param("id"), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": v.Label + " application rejected",
		"data":    services.Annotate(rec, v),
	})
}

// SetPendingApplication reverts an application to Pending.
func SetPendingApplication(c *gin.Context) {
	v := variantFromParam(c)
	if v == nil {
		return
	}

	rec, err := services.NewStatusService(config.DB).ResetToPending(v, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": v.Label + " application set to pending",
		"data":    services.Annotate(rec, v),
	})
}
