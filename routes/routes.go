package routes

import (
	"icard-api/controllers"
	"icard-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "ID Card API is running",
			})
		})

		// Application forms (public, multipart)
		forms := api.Group("/forms")
		{
			forms.POST("/gazetted", controllers.SubmitGazetted)
			forms.POST("/non-gazetted", controllers.SubmitNonGazetted)
		}

		// Public status check: id or business key + date of birth
		status := api.Group("/status")
		{
			status.POST("/:type", controllers.CheckStatus)
			status.GET("/:type/:id", controllers.GetStatusByID)
		}

		// Applicant's own submissions
		api.GET("/user/applications/:userId", controllers.GetUserApplications)

		// Admin console
		admin := api.Group("/admin")
		{
			admin.POST("/login", controllers.AdminLogin)

			protected := admin.Group("")
			protected.Use(middleware.AuthMiddleware())
			{
				protected.POST("/change-password", controllers.ChangePassword)

				protected.GET("/applications", controllers.GetApplications)
				protected.GET("/applications/:id", controllers.GetApplication)
				protected.GET("/application-by-no/:appNo", controllers.GetApplicationByNo)

				protected.GET("/approved", controllers.GetApproved)
				protected.GET("/rejected", controllers.GetRejected)
				protected.GET("/counts", controllers.GetCounts)

				// Per-variant pending queues and status transitions
				protected.GET("/queue/:type", controllers.GetPendingQueue)
				protected.POST("/:type/:id/approve", controllers.ApproveApplication)
				protected.POST("/:type/:id/reject", controllers.RejectApplication)
				protected.POST("/:type/:id/pending", controllers.SetPendingApplication)

				protected.GET("/generate-id-card/:id", controllers.GenerateIDCard)
			}
		}
	}
}
