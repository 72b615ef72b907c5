package main

import (
	"github.com/dhaval-dalia/personal-diet-tracker/config"
	"github.com/dhaval-dalia/personal-diet-tracker/controllers"
	"github.com/dhaval-dalia/personal-diet-tracker/routes"
	"github.com/dhaval-dalia/personal-diet-tracker/services"
	"github.com/dhaval-dalia/personal-diet-tracker/utils"
)

func main() {
	utils.InitLogger()
	config.InitEnv()
	config.InitDB()

	if err := utils.InitMailer(); err != nil {
		utils.Log.WithError(err).Warn("mailer unavailable, password reset emails disabled")
	}
	if err := utils.InitS3(); err != nil {
		utils.Log.WithError(err).Warn("S3 unavailable, profile picture uploads disabled")
	}

	db := config.DB

	feed := services.NewChangeFeed()
	services.InitChangeFeed(feed)

	users := services.NewUserService(db)
	profiles := services.NewProfileService(db)
	goals := services.NewGoalService(db)
	meals := services.NewMealService(db)
	activity := services.NewActivityService(db)
	chat := services.NewChatService(db)
	dashboard := services.NewDashboardService(db, meals, activity)
	wf := services.NewWorkflowService(config.AppEnv)
	onboarding := services.NewOnboardingService(db, profiles, goals, wf)

	r := routes.SetupRouter(routes.Controllers{
		Auth:       controllers.NewAuthController(users),
		Profile:    controllers.NewProfileController(profiles),
		Goals:      controllers.NewGoalController(goals),
		Meals:      controllers.NewMealController(meals),
		Activity:   controllers.NewActivityController(activity),
		Dashboard:  controllers.NewDashboardController(dashboard),
		Chat:       controllers.NewChatController(chat),
		Onboarding: controllers.NewOnboardingController(onboarding),
		Workflow:   controllers.NewWorkflowController(wf, chat, meals),
		Realtime:   controllers.NewRealtimeController(feed),
	})

	if err := r.Run(":" + config.AppEnv.Server.Port); err != nil {
		utils.Log.WithError(err).Fatal("server exited")
	}
}
