package main

import (
	"log"
	"net/http"
	"os"

	"sop-manager/config"
	"sop-manager/handlers"
	"sop-manager/middleware"
	"sop-manager/models"
	"sop-manager/repositories"
	"sop-manager/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	sopRepo := repositories.NewSOPRepository(db)
	versionRepo := repositories.NewSOPVersionRepository(db)
	approvalRepo := repositories.NewSOPApprovalRepository(db)
	settingRepo := repositories.NewSettingRepository(db)
	workflowRepo := repositories.NewWorkflowRepository(db)
	questionnaireRepo := repositories.NewQuestionnaireRepository(db)
	shadowingRepo := repositories.NewShadowingRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	diffService := services.NewDiffService(versionRepo)
	sopService := services.NewSOPService(sopRepo, questionnaireRepo, shadowingRepo, workflowRepo, userRepo)
	versionService := services.NewVersionService(versionRepo, sopRepo, diffService)
	approvalService := services.NewApprovalService(approvalRepo, sopRepo, versionRepo, settingRepo, diffService)
	settingService := services.NewSettingService(settingRepo)
	workflowService := services.NewWorkflowService(workflowRepo, sopRepo)
	questionnaireService := services.NewQuestionnaireService(questionnaireRepo, sopRepo)
	shadowingService := services.NewShadowingService(shadowingRepo, sopRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	sopHandler := handlers.NewSOPHandler(sopService)
	versionHandler := handlers.NewVersionHandler(versionService)
	approvalHandler := handlers.NewApprovalHandler(approvalService)
	settingHandler := handlers.NewSettingHandler(settingService)
	workflowHandler := handlers.NewWorkflowHandler(workflowService)
	questionnaireHandler := handlers.NewQuestionnaireHandler(questionnaireService)
	shadowingHandler := handlers.NewShadowingHandler(shadowingService)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Profile
			protected.GET("/profile", authHandler.GetProfile)
			protected.POST("/auth/change-password", authHandler.ChangePassword)

			// SOPs
			sops := protected.Group("/sops")
			{
				sops.GET("", sopHandler.GetSOPs)
				sops.POST("", sopHandler.CreateSOP)
				sops.GET("/:id", sopHandler.GetSOP)
				sops.PUT("/:id", sopHandler.UpdateSOP)
				sops.DELETE("/:id", sopHandler.DeleteSOP)
				sops.PATCH("/:id/status", sopHandler.PatchStatus)
				sops.PATCH("/:id/assign", sopHandler.AssignSOP)

				sops.POST("/:id/steps", sopHandler.AddStep)
				sops.PUT("/:id/steps/:stepId", sopHandler.UpdateStep)
				sops.DELETE("/:id/steps/:stepId", sopHandler.DeleteStep)

				sops.POST("/:id/responsibilities", sopHandler.AddResponsibility)
				sops.PUT("/:id/responsibilities/:respId", sopHandler.UpdateResponsibility)
				sops.DELETE("/:id/responsibilities/:respId", sopHandler.DeleteResponsibility)

				sops.POST("/:id/troubleshooting", sopHandler.AddTroubleshootingItem)
				sops.DELETE("/:id/troubleshooting/:itemId", sopHandler.DeleteTroubleshootingItem)
				sops.POST("/:id/revisions", sopHandler.AddRevision)

				sops.GET("/:id/versions", versionHandler.GetVersions)
				sops.POST("/:id/versions", versionHandler.CreateVersion)
				sops.GET("/:id/versions/:versionNumber", versionHandler.GetVersion)
				sops.GET("/:id/versions/:versionNumber/changes", versionHandler.GetVersionChanges)
				sops.POST("/:id/versions/:versionNumber/restore", versionHandler.RestoreVersion)

				sops.POST("/:id/submit-for-approval", approvalHandler.Submit)
				sops.GET("/:id/approvals", approvalHandler.GetHistory)
			}

			// Approvals (admin review queue)
			approvals := protected.Group("/approvals")
			approvals.Use(middleware.RequireRole(string(models.RoleAdmin)))
			{
				approvals.GET("", approvalHandler.GetPending)
				approvals.GET("/count", approvalHandler.CountPending)
				approvals.GET("/:id", approvalHandler.GetPendingDetail)
				approvals.GET("/:id/changes", approvalHandler.GetChanges)
				approvals.POST("/:id/approve", approvalHandler.Approve)
				approvals.POST("/:id/reject", approvalHandler.Reject)
			}

			// Users (admin)
			users := protected.Group("/users")
			users.Use(middleware.RequireRole(string(models.RoleAdmin)))
			{
				users.GET("", userHandler.GetUsers)
				users.POST("", userHandler.CreateUser)
				users.GET("/:id", userHandler.GetUser)
				users.PUT("/:id", userHandler.UpdateUser)
				users.POST("/:id/reset-password", userHandler.ResetPassword)
				users.DELETE("/:id", userHandler.DeactivateUser)
			}

			// Settings (admin)
			settings := protected.Group("/settings")
			settings.Use(middleware.RequireRole(string(models.RoleAdmin)))
			{
				settings.GET("", settingHandler.GetSettings)
				settings.PUT("", settingHandler.UpdateSettings)
			}

			// Workflow board configuration
			workflow := protected.Group("/workflow")
			{
				workflow.GET("/steps", workflowHandler.GetSteps)
				workflow.GET("/transitions", workflowHandler.GetTransitions)
				workflow.GET("/can-transition", workflowHandler.CanTransition)

				admin := workflow.Group("/")
				admin.Use(middleware.RequireRole(string(models.RoleAdmin)))
				{
					admin.POST("/steps", workflowHandler.CreateStep)
					admin.PUT("/steps/:id", workflowHandler.UpdateStep)
					admin.DELETE("/steps/:id", workflowHandler.DeleteStep)
					admin.POST("/steps/reorder", workflowHandler.ReorderSteps)
					admin.PUT("/transitions", workflowHandler.ReplaceTransitions)
				}
			}

			// Questionnaires
			questionnaires := protected.Group("/questionnaires")
			{
				questionnaires.GET("", questionnaireHandler.GetQuestionnaires)
				questionnaires.POST("", questionnaireHandler.CreateQuestionnaire)
				questionnaires.GET("/:id", questionnaireHandler.GetQuestionnaire)
				questionnaires.PUT("/:id", questionnaireHandler.UpdateQuestionnaire)
				questionnaires.DELETE("/:id", questionnaireHandler.DeleteQuestionnaire)
			}

			// Shadowing observations
			shadowing := protected.Group("/shadowing")
			{
				shadowing.GET("", shadowingHandler.GetObservations)
				shadowing.POST("", shadowingHandler.CreateObservation)
				shadowing.GET("/:id", shadowingHandler.GetObservation)
				shadowing.PUT("/:id", shadowingHandler.UpdateObservation)
				shadowing.DELETE("/:id", shadowingHandler.DeleteObservation)
			}
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
