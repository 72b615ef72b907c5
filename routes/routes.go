package routes

import (
	"github.com/dhaval-dalia/personal-diet-tracker/controllers"
	"github.com/dhaval-dalia/personal-diet-tracker/middlewares"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything SetupRouter wires up.
type Controllers struct {
	Auth       *controllers.AuthController
	Profile    *controllers.ProfileController
	Goals      *controllers.GoalController
	Meals      *controllers.MealController
	Activity   *controllers.ActivityController
	Dashboard  *controllers.DashboardController
	Chat       *controllers.ChatController
	Onboarding *controllers.OnboardingController
	Workflow   *controllers.WorkflowController
	Realtime   *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true // proxy routes are POST only; anything else is a 405

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/forgot-password", ctrl.Auth.ForgotPassword)
		auth.POST("/reset-password", ctrl.Auth.ResetPassword)
	}

	// Workflow proxy routes (the chat widget posts here directly)
	api := r.Group("/api")
	{
		api.POST("/n8n/onboarding", ctrl.Workflow.ProxyOnboarding)
		api.POST("/n8n/meal-log", ctrl.Workflow.ProxyMealLog)
		api.POST("/n8n/chat", ctrl.Workflow.ProxyChat)
		api.POST("/n8n/chat-process", ctrl.Workflow.ProxyChatProcess)
		api.POST("/n8n/recommendations", ctrl.Workflow.ProxyRecommendations)
		api.POST("/save-chat-data", ctrl.Workflow.SaveChatData)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", ctrl.Profile.GetProfile)
		user.PUT("/profile", ctrl.Profile.UpdateProfile)

		user.GET("/goals", ctrl.Goals.GetGoals)
		user.PUT("/goals", ctrl.Goals.UpdateGoals)

		user.POST("/meals", ctrl.Meals.LogMeal)
		user.GET("/meals", ctrl.Meals.ListMeals)

		user.PUT("/activity", ctrl.Activity.UpdateDailyActivity)

		user.GET("/dashboard/summary", ctrl.Dashboard.GetDailySummary)
		user.GET("/dashboard/weekly", ctrl.Dashboard.GetWeeklyOverview)

		user.GET("/chat/history", ctrl.Chat.GetHistory)

		user.GET("/onboarding", ctrl.Onboarding.GetDraft)
		user.PUT("/onboarding", ctrl.Onboarding.SaveDraft)
		user.POST("/onboarding/submit", ctrl.Onboarding.Submit)
	}

	// Realtime change feed
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/changes", ctrl.Realtime.ChangesWS)
	}

	return r
}
