package routes

import (
	"ims-api/controllers"
	"ims-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)
			public.POST("/refresh", controllers.RefreshToken)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Department IMS API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Member administration (staff only). 1 = student, 2 = faculty, 3 = staff
			users := protected.Group("/users", middleware.RequireRole(3))
			{
				users.GET("", controllers.ListUsers)
				users.POST("", controllers.CreateUser)
				users.PUT("/:id", controllers.UpdateUser)
				users.DELETE("/:id", controllers.DeactivateUser)
			}

			// PhD requests and the proposal workflow
			phd := protected.Group("/phd")
			{
				phd.POST("/requests", middleware.RequireRole(1), controllers.CreateRequest)
				phd.GET("/requests", controllers.ListRequests)
				phd.GET("/requests/:id", controllers.GetRequest)
				phd.POST("/requests/:id/submit", middleware.RequireRole(1), controllers.SubmitRequest)
				phd.GET("/requests/:id/documents", controllers.GetRequestDocuments)
				phd.POST("/requests/:id/documents", controllers.UploadDocument)

				phd.POST("/proposal/supervisor/review/:id", middleware.RequireRole(2), controllers.SupervisorReview)
				phd.POST("/proposal/drc/review/:id", middleware.RequireRole(2), controllers.DrcReview)
				phd.POST("/proposal/dac/review/:id", controllers.DacReview)
				phd.POST("/proposal/drc/seminar/:id", middleware.RequireRole(2), controllers.SetSeminarDetails)
				phd.POST("/proposal/drc/confirm-seminar/:id", middleware.RequireRole(2), controllers.ConfirmSeminar)
				phd.POST("/proposal/finalize/:id", middleware.RequireRole(3), controllers.FinalizeRequest)
			}
			// The simpler thesis-flow request types share the same handlers;
			// the transition graph is resolved from the request's own type.
			phdRequest := protected.Group("/phd-request")
			{
				phdRequest.POST("/supervisor/review/:id", middleware.RequireRole(2), controllers.SupervisorReview)
				phdRequest.POST("/drc/review/:id", middleware.RequireRole(2), controllers.DrcReview)
				phdRequest.GET("/history/:studentEmail", controllers.GetStudentHistory)
			}

			// Files
			protected.GET("/f/:file_id", controllers.DownloadFile)
			protected.GET("/document-types", controllers.GetDocumentTypes)

			// Semesters (staff manage, everyone reads)
			protected.GET("/semesters", controllers.ListSemesters)
			semesters := protected.Group("/semesters", middleware.RequireRole(3))
			{
				semesters.POST("", controllers.CreateSemester)
				semesters.PUT("/:id", controllers.UpdateSemester)
			}

			// Task inbox + notifications
			protected.GET("/todos", controllers.GetMyTodos)
			protected.POST("/todos/:id/complete", controllers.CompleteTodo)
			protected.GET("/notifications", controllers.GetMyNotifications)
			protected.POST("/notifications/:id/read", controllers.MarkNotificationRead)

			// Conference travel
			conference := protected.Group("/conference")
			{
				conference.POST("", controllers.CreateConferenceApplication)
				conference.GET("", controllers.ListConferenceApplications)
				conference.POST("/:id/decision", controllers.ConferenceDecision)
			}

			// Course handouts
			handouts := protected.Group("/handouts")
			{
				handouts.POST("", middleware.RequireRole(2), controllers.SubmitHandout)
				handouts.GET("", controllers.ListHandouts)
				handouts.POST("/:id/review", middleware.RequireRole(2, 3), controllers.ReviewHandout)
				handouts.POST("/:id/resubmit", middleware.RequireRole(2), controllers.ResubmitHandout)
			}

			// Document e-signatures
			signatures := protected.Group("/signatures")
			{
				signatures.POST("", controllers.CreateSignatureRequest)
				signatures.GET("", controllers.ListSignatureRequests)
				signatures.POST("/:id/decide", controllers.DecideSignature)
			}

			// Inventory (staff only)
			inventory := protected.Group("/inventory", middleware.RequireRole(3))
			{
				inventory.GET("", controllers.ListInventoryItems)
				inventory.POST("", controllers.CreateInventoryItem)
				inventory.POST("/:id/borrow", controllers.BorrowInventoryItem)
				inventory.POST("/:id/return", controllers.ReturnInventoryItem)
				inventory.DELETE("/:id", controllers.DeleteInventoryItem)
			}

			// Publications
			publications := protected.Group("/publications")
			{
				publications.GET("", controllers.ListMyPublications)
				publications.POST("", middleware.RequireRole(2), controllers.CreatePublication)
				publications.GET("/summary", controllers.GetPublicationSummary)
			}

			// Qualifying-exam timetable (staff only)
			timetable := protected.Group("/timetable", middleware.RequireRole(3))
			{
				timetable.POST("/exams", controllers.CreateQualifyingExam)
				timetable.GET("/:semester_id", controllers.GetTimetable)
				timetable.POST("/assign", controllers.AssignTimetable)
			}

			// Dashboard
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)
		}
	}
}
