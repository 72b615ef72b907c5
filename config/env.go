package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Env holds the non-database settings: the n8n workflow webhook URLs the
// proxy routes forward to (server-side only, never exposed to clients),
// plus server and AWS metadata.
type Env struct {
	Server struct {
		Port    string
		AppName string
	}
	Workflow struct {
		OnboardingURL     string
		MealLogURL        string
		ChatURL           string
		ChatProcessURL    string
		RecommendationURL string
		TimeoutSeconds    int
	}
	AWS struct {
		Region    string
		SESSender string
		S3Bucket  string
	}
}

var AppEnv *Env

// InitEnv reads config.yml when present, otherwise falls back to
// environment variables (N8N_ONBOARDING_WEBHOOK_URL and friends).
func InitEnv() {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error reading config file: %w", err))
		}
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.app_name", "personal-diet-tracker")
	viper.SetDefault("workflow.timeout_seconds", 15)

	var env Env
	env.Server.Port = viper.GetString("server.port")
	env.Server.AppName = viper.GetString("server.app_name")
	env.Workflow.OnboardingURL = firstSet("workflow.onboarding_url", "N8N_ONBOARDING_WEBHOOK_URL")
	env.Workflow.MealLogURL = firstSet("workflow.meal_log_url", "N8N_MEAL_LOG_WEBHOOK_URL")
	env.Workflow.ChatURL = firstSet("workflow.chat_url", "N8N_CHAT_WEBHOOK_URL")
	env.Workflow.ChatProcessURL = firstSet("workflow.chat_process_url", "N8N_CHAT_PROCESS_WEBHOOK_URL")
	env.Workflow.RecommendationURL = firstSet("workflow.recommendation_url", "N8N_RECOMMENDATION_WEBHOOK_URL")
	env.Workflow.TimeoutSeconds = viper.GetInt("workflow.timeout_seconds")
	env.AWS.Region = firstSet("aws.region", "AWS_REGION")
	env.AWS.SESSender = firstSet("aws.ses_sender", "SES_EMAIL")
	env.AWS.S3Bucket = firstSet("aws.s3_bucket", "S3_BUCKET")

	AppEnv = &env
}

func firstSet(keys ...string) string {
	for _, k := range keys {
		if v := viper.GetString(k); v != "" {
			return v
		}
	}
	return ""
}
