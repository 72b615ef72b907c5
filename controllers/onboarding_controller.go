package controllers

import (
	"net/http"

	"github.com/dhaval-dalia/personal-diet-tracker/services"

	"github.com/gin-gonic/gin"
)

type OnboardingController struct {
	Onboarding *services.OnboardingService
}

func NewOnboardingController(onboarding *services.OnboardingService) *OnboardingController {
	return &OnboardingController{Onboarding: onboarding}
}

// GetDraft restores the stored snapshot so a page reload does not lose
// in-progress answers.
func (oc *OnboardingController) GetDraft(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	state, err := oc.Onboarding.LoadDraft(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

type draftUpdate struct {
	Action  string                     `json:"action" binding:"required,oneof=save next prev"`
	Answers services.OnboardingAnswers `json:"answers"`
}

// SaveDraft applies a transition to the state machine and persists the
// resulting snapshot. "save" keeps the current step (mirror-on-change),
// "next" advances only when the current step validates, "prev" is
// unconditional.
func (oc *OnboardingController) SaveDraft(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body draftUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := oc.Onboarding.LoadDraft(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	state.Answers = body.Answers

	switch body.Action {
	case "next":
		next, fieldErrs := state.Next()
		if len(fieldErrs) > 0 {
			// report per-field, keep the draft where it is
			if err := oc.Onboarding.SaveDraft(userID, state); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs, "state": state})
			return
		}
		state = next
	case "prev":
		state = state.Prev()
	}

	if err := oc.Onboarding.SaveDraft(userID, state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// Submit runs the final pipeline: validate everything, write the profile
// (and goals when given), notify the workflow engine, clear the draft.
// On failure the draft is preserved and a single error is surfaced.
func (oc *OnboardingController) Submit(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	state, err := oc.Onboarding.LoadDraft(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// the request body may carry the freshest answers
	var body struct {
		Answers *services.OnboardingAnswers `json:"answers"`
	}
	if err := c.ShouldBindJSON(&body); err == nil && body.Answers != nil {
		state.Answers = *body.Answers
	}

	fieldErrs, err := oc.Onboarding.Submit(c.Request.Context(), userID, state)
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not complete onboarding. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "onboarding complete"})
}
