package config

import "time"

// Application constants
const (
	// Application metadata
	AppName        = "yo"
	AppDescription = "yo - turn a natural-language request into a terminal command"

	// Directory and file paths
	DefaultConfigDir       = ".config/yo"
	DefaultLogDir          = "logs"
	DefaultConfigFileName  = "config.json"
	DefaultHistoryFileName = "history.json"
	DefaultLogFileName     = "yo.log"

	// History management
	DefaultMaxHistorySize = 100

	// Timeouts and retries
	DefaultHTTPTimeout = 60 * time.Second
	MaxRetryAttempts   = 3
	RetryBaseDelay     = 250 * time.Millisecond

	// API endpoints
	GeminiAPIEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	OpenAIAPIEndpoint = "https://api.openai.com/v1"

	// Default model. The docs and the script header disagreed on this one;
	// we pin the stable release rather than the preview snapshot.
	DefaultModel = "gemini-2.5-flash"

	// Log levels
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	// Log formats
	LogFormatJSON = "json"
	LogFormatText = "text"

	// Environment variables
	EnvYoConfigDir = "YO_CONFIG_DIR"
	EnvYoDebug     = "YO_DEBUG"
)
