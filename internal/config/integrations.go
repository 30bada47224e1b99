package config

import "time"

// UberConfig holds the third-party fleet API credentials. ServerToken and
// OrgID are the two required secrets; without both the client stays
// unconfigured and refuses network calls.
type UberConfig struct {
	BaseURL     string        `yaml:"base_url"`
	ServerToken string        `yaml:"server_token"`
	OrgID       string        `yaml:"org_id"`
	Timeout     time.Duration `yaml:"timeout"`
	SyncDays    int           `yaml:"sync_days"`
}

type AIConfig struct {
	BaseURL       string        `yaml:"base_url"`
	APIKey        string        `yaml:"api_key"`
	Model         string        `yaml:"model"`
	MaxTokens     int           `yaml:"max_tokens"`
	StreamTimeout time.Duration `yaml:"stream_timeout"`
}

type NotifyConfig struct {
	Provider         string `yaml:"provider"` // twilio, sns
	TwilioAccountSID string `yaml:"twilio_account_sid"`
	TwilioAuthToken  string `yaml:"twilio_auth_token"`
	TwilioFromNumber string `yaml:"twilio_from_number"`
	AWSRegion        string `yaml:"aws_region"`
	TemplatesPath    string `yaml:"templates_path"`
}

func loadUberConfig() *UberConfig {
	return &UberConfig{
		BaseURL:     getEnv("UBER_API_BASE_URL", "https://api.uber.com"),
		ServerToken: getEnv("UBER_SERVER_TOKEN", ""),
		OrgID:       getEnv("UBER_ORG_ID", ""),
		Timeout:     getEnvAsDuration("UBER_API_TIMEOUT", 30*time.Second),
		SyncDays:    getEnvAsInt("UBER_SYNC_DAYS", 7),
	}
}

func loadAIConfig() *AIConfig {
	return &AIConfig{
		BaseURL:       getEnv("AI_API_BASE_URL", "https://api.openai.com/v1"),
		APIKey:        getEnv("AI_API_KEY", ""),
		Model:         getEnv("AI_MODEL", "gpt-4o-mini"),
		MaxTokens:     getEnvAsInt("AI_MAX_TOKENS", 1024),
		StreamTimeout: getEnvAsDuration("AI_STREAM_TIMEOUT", 30*time.Second),
	}
}

func loadNotifyConfig() *NotifyConfig {
	return &NotifyConfig{
		Provider:         getEnv("NOTIFY_PROVIDER", "twilio"),
		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		TemplatesPath:    getEnv("ALERT_TEMPLATES_PATH", "configs/alert_templates.json"),
	}
}
