package api

import (
	"net/http"

	"fitvalle/coaching-api/internal/domain"
	"fitvalle/coaching-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler onto the /api/v1 surface.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	routineService service.RoutineService,
	templateService service.TemplateService,
	trainingService service.TrainingService,
	customerService service.CustomerService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	routineHandler := NewRoutineHandler(routineService)
	templateHandler := NewTemplateHandler(templateService)
	trainingHandler := NewTrainingHandler(trainingService)
	customerHandler := NewCustomerHandler(customerService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "role": role})
		})

		// --- Exercise Catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", RoleMiddleware(domain.RoleCoach), exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.GetCatalog)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
		}

		// --- Routines (customer view) ---
		routineGroup := protected.Group("/routines")
		routineGroup.Use(RoleMiddleware(domain.RoleCustomer))
		{
			routineGroup.GET("", routineHandler.GetAssignedRoutines)
			routineGroup.GET("/:id/sessions", routineHandler.GetSessionsByRoutine)
		}

		// --- Self-Authored Templates ---
		templateGroup := protected.Group("/templates")
		templateGroup.Use(RoleMiddleware(domain.RoleCustomer))
		{
			templateGroup.POST("", templateHandler.CreateTemplate)
			templateGroup.GET("", templateHandler.GetMyTemplates)
			templateGroup.GET("/:id", templateHandler.GetTemplate)
			templateGroup.DELETE("/:id", templateHandler.DeleteTemplate)
		}

		// --- Coach Browsing ---
		protected.GET("/coaches", RoleMiddleware(domain.RoleCustomer), authHandler.GetCoaches)

		// --- Coach Routes ---
		coachGroup := protected.Group("/coach")
		coachGroup.Use(RoleMiddleware(domain.RoleCoach))
		{
			coachGroup.POST("/routines", routineHandler.CreateRoutine)
		}

		// --- Live Training ---
		trainingGroup := protected.Group("/training")
		trainingGroup.Use(RoleMiddleware(domain.RoleCustomer))
		{
			trainingGroup.POST("/sessions/:sessionId/start", trainingHandler.StartSession)
			trainingGroup.POST("/templates/:templateId/start", trainingHandler.StartTemplateSession)
			trainingGroup.GET("/session", trainingHandler.CurrentState)
			trainingGroup.PUT("/session/exercises/:exerciseId", trainingHandler.PublishEdit)
			trainingGroup.PUT("/session/handback", trainingHandler.HandBack)
			trainingGroup.POST("/session/exercises/:exerciseId/completed", trainingHandler.SetCompleted)
			trainingGroup.POST("/session/finish", trainingHandler.FinishSession)
			trainingGroup.DELETE("/session", trainingHandler.CancelSession)
		}

		// --- History & Progress ---
		protected.GET("/history", RoleMiddleware(domain.RoleCustomer), trainingHandler.GetHistory)
		protected.GET("/history/:id", RoleMiddleware(domain.RoleCustomer), trainingHandler.GetCompletedSession)
		protected.GET("/progress", RoleMiddleware(domain.RoleCustomer), trainingHandler.GetProgress)

		// --- Customer Profile & Requests ---
		customerGroup := protected.Group("/customers/me")
		customerGroup.Use(RoleMiddleware(domain.RoleCustomer))
		{
			customerGroup.PUT("/profile", customerHandler.SaveProfile)
			customerGroup.GET("/profile", customerHandler.GetProfile)
			customerGroup.POST("/requests", customerHandler.SubmitRequest)
			customerGroup.GET("/requests", customerHandler.GetRequests)
			customerGroup.POST("/avatar/upload-url", customerHandler.RequestAvatarUploadURL)
			customerGroup.POST("/avatar/confirm", customerHandler.ConfirmAvatarUpload)
			customerGroup.GET("/avatar", customerHandler.GetAvatarDownloadURL)
		}
	}
}
