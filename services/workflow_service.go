package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dhaval-dalia/personal-diet-tracker/config"
)

// WorkflowService is the single HTTP client for the external workflow
// engine (n8n). Each call is independent and at-most-once: no retry, no
// queueing, no idempotency key.
type WorkflowService struct {
	client *http.Client

	OnboardingURL     string
	MealLogURL        string
	ChatURL           string
	ChatProcessURL    string
	RecommendationURL string
}

func NewWorkflowService(env *config.Env) *WorkflowService {
	timeout := 15 * time.Second
	if env.Workflow.TimeoutSeconds > 0 {
		timeout = time.Duration(env.Workflow.TimeoutSeconds) * time.Second
	}
	return &WorkflowService{
		client:            &http.Client{Timeout: timeout},
		OnboardingURL:     env.Workflow.OnboardingURL,
		MealLogURL:        env.Workflow.MealLogURL,
		ChatURL:           env.Workflow.ChatURL,
		ChatProcessURL:    env.Workflow.ChatProcessURL,
		RecommendationURL: env.Workflow.RecommendationURL,
	}
}

// WorkflowResult carries the downstream response so callers can relay
// status and body verbatim.
type WorkflowResult struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Forward posts the payload as JSON and returns whatever the workflow
// responded with. A transport failure returns an error; any HTTP status
// comes back as a result for the caller to interpret.
func (s *WorkflowService) Forward(ctx context.Context, url string, payload any) (*WorkflowResult, error) {
	if url == "" {
		return nil, fmt.Errorf("workflow URL not configured")
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal workflow payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build workflow request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("workflow request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read workflow response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	return &WorkflowResult{StatusCode: resp.StatusCode, ContentType: contentType, Body: body}, nil
}

// TriggerOnboarding notifies the workflow engine that a user finished
// onboarding. Non-2xx counts as failure so the caller never reports a
// partial success.
func (s *WorkflowService) TriggerOnboarding(ctx context.Context, payload any) error {
	res, err := s.Forward(ctx, s.OnboardingURL, payload)
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("onboarding workflow returned %d: %s", res.StatusCode, string(res.Body))
	}
	return nil
}
