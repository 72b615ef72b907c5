package controllers

import (
	"net/http"

	"github.com/dhaval-dalia/personal-diet-tracker/services"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Activity *services.ActivityService
}

func NewActivityController(activity *services.ActivityService) *ActivityController {
	return &ActivityController{Activity: activity}
}

// UpdateDailyActivity handles manual updates of the day's water, workout
// and sleep actuals.
func (ac *ActivityController) UpdateDailyActivity(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		WaterGlasses   float64 `json:"water_glasses" binding:"gte=0"`
		WorkoutMinutes float64 `json:"workout_minutes" binding:"gte=0"`
		SleepHours     float64 `json:"sleep_hours" binding:"gte=0,lte=24"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ac.Activity.UpsertToday(userID, body.WaterGlasses, body.WorkoutMinutes, body.SleepHours); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
