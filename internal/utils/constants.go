package utils

import "time"

// Application Constants
const (
	AppName    = "FleetPulse"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage = "en"
	DefaultTone     = "neutral"
	DefaultCurrency = "USD"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128

	// Sync
	DefaultSyncWindowDays = 7

	// Chat
	MaxMessageLength  = 4000
	MaxChatMessages   = 50
	ChatStreamTimeout = 30 * time.Second

	// Fleet summary cache
	FleetSummaryCacheKey = "fleet:summary"
	FleetSummaryCacheTTL = 60 * time.Second
)
