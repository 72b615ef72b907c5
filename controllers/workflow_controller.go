package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/dhaval-dalia/personal-diet-tracker/services"
	"github.com/dhaval-dalia/personal-diet-tracker/utils"

	"github.com/gin-gonic/gin"
)

// WorkflowController hosts the stateless proxy routes: validate presence
// of required fields, optionally persist a row, forward the payload to
// the configured n8n webhook, relay its response. No retry, no queueing;
// each call is independent and at-most-once from this layer.
type WorkflowController struct {
	WF    *services.WorkflowService
	Chat  *services.ChatService
	Meals *services.MealService
}

func NewWorkflowController(wf *services.WorkflowService, chat *services.ChatService, meals *services.MealService) *WorkflowController {
	return &WorkflowController{WF: wf, Chat: chat, Meals: meals}
}

// requireFields reports the subset of required keys that are missing or
// empty in the body. A 400 with a details object is the contract for a
// failed check.
func requireFields(body map[string]any, required ...string) []string {
	var missing []string
	for _, k := range required {
		v, ok := body[k]
		if !ok || v == nil || v == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

func bindBody(c *gin.Context) (map[string]any, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid JSON body"})
		return nil, false
	}
	return body, true
}

func userIDFromBody(body map[string]any) uint {
	if v, ok := body["userId"].(float64); ok {
		return uint(v)
	}
	return 0
}

// relay passes the downstream response through: 2xx becomes a
// {success, data} envelope, any other status is relayed with the
// downstream body, and a transport failure is a generic 500.
func (wc *WorkflowController) relay(c *gin.Context, res *services.WorkflowResult, err error) {
	if err != nil {
		utils.Log.WithError(err).Error("workflow forward failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "workflow request failed"})
		return
	}
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		var data any
		if len(res.Body) > 0 && json.Unmarshal(res.Body, &data) == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": string(res.Body)})
		return
	}
	c.Data(res.StatusCode, res.ContentType, res.Body)
}

// POST /api/n8n/onboarding
func (wc *WorkflowController) ProxyOnboarding(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	if missing := requireFields(body, "userId"); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing required fields", "details": gin.H{"missing": missing}})
		return
	}

	res, err := wc.WF.Forward(c.Request.Context(), wc.WF.OnboardingURL, body)
	wc.relay(c, res, err)
}

// POST /api/n8n/meal-log — persists the meal first, then notifies the
// workflow engine with the stored row attached.
func (wc *WorkflowController) ProxyMealLog(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	if missing := requireFields(body, "userId", "meal"); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing required fields", "details": gin.H{"missing": missing}})
		return
	}

	var req services.MealLogRequest
	raw, _ := json.Marshal(body["meal"])
	if err := json.Unmarshal(raw, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid meal payload"})
		return
	}

	meal, err := wc.Meals.LogMeal(userIDFromBody(body), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	body["meal"] = meal
	res, err := wc.WF.Forward(c.Request.Context(), wc.WF.MealLogURL, body)
	wc.relay(c, res, err)
}

// POST /api/n8n/chat — logs the user's turn, forwards, and best-effort
// logs the bot's reply out of the workflow response.
func (wc *WorkflowController) ProxyChat(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	if missing := requireFields(body, "userId", "message"); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing required fields", "details": gin.H{"missing": missing}})
		return
	}

	userID := userIDFromBody(body)
	message, _ := body["message"].(string)
	if _, err := wc.Chat.Append(userID, message, false, ""); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save chat message"})
		return
	}

	res, err := wc.WF.Forward(c.Request.Context(), wc.WF.ChatURL, body)
	if err == nil && res.StatusCode >= 200 && res.StatusCode < 300 {
		var parsed struct {
			Response string `json:"response"`
		}
		if json.Unmarshal(res.Body, &parsed) == nil && parsed.Response != "" {
			if _, aerr := wc.Chat.Append(userID, parsed.Response, true, string(res.Body)); aerr != nil {
				utils.Log.WithError(aerr).Warn("failed to log bot reply")
			}
		}
	}
	wc.relay(c, res, err)
}

// POST /api/n8n/chat-process — forward only, nothing is persisted here.
func (wc *WorkflowController) ProxyChatProcess(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	if missing := requireFields(body, "userId", "message"); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing required fields", "details": gin.H{"missing": missing}})
		return
	}

	res, err := wc.WF.Forward(c.Request.Context(), wc.WF.ChatProcessURL, body)
	wc.relay(c, res, err)
}

// POST /api/n8n/recommendations
func (wc *WorkflowController) ProxyRecommendations(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	if missing := requireFields(body, "userId"); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing required fields", "details": gin.H{"missing": missing}})
		return
	}

	res, err := wc.WF.Forward(c.Request.Context(), wc.WF.RecommendationURL, body)
	wc.relay(c, res, err)
}

// POST /api/save-chat-data — persist only, no forward.
func (wc *WorkflowController) SaveChatData(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	if missing := requireFields(body, "userId", "message"); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing required fields", "details": gin.H{"missing": missing}})
		return
	}

	message, _ := body["message"].(string)
	isBot, _ := body["isBot"].(bool)
	metadata := ""
	if m, mok := body["metadata"]; mok {
		if b, merr := json.Marshal(m); merr == nil {
			metadata = string(b)
		}
	}

	row, err := wc.Chat.Append(userIDFromBody(body), message, isBot, metadata)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save chat message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": row})
}
