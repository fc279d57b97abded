package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	App     AppConfig     `mapstructure:"app" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
	Speech  SpeechConfig  `mapstructure:"speech" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
}

// AppConfig contains general application settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains settings for the chat-completion collaborator
// used for translation, grammar exercise and passage generation.
type LLMConfig struct {
	APIKey  string `mapstructure:"api_key"  validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Model   string `mapstructure:"model"    validate:"required"`

	// MaxRetries caps how often a transient failure is retried.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0,lte=10"`

	// RetryDelaySeconds is the base delay for exponential backoff.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=30"`

	// RequestTimeoutSeconds bounds a single request to the endpoint.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gte=1,lte=300"`

	// GeminiAPIKey enables the strict structured-output generator
	// instead of the chat-completion one when set.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	// GeminiModel is the model name used with the Gemini backend.
	GeminiModel string `mapstructure:"gemini_model"`
}

// SpeechConfig contains settings for the text-to-speech collaborator.
type SpeechConfig struct {
	APIKey  string `mapstructure:"api_key"  validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Voice   string `mapstructure:"voice"    validate:"required"`

	// StyleInstructions are passed verbatim to the synthesis request.
	StyleInstructions string `mapstructure:"style_instructions"`

	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gte=1,lte=600"`
}

// StorageConfig contains settings for local persistence.
type StorageConfig struct {
	// Path is the location of the key-value database file.
	Path string `mapstructure:"path" validate:"required"`

	// AudioDir is where synthesized passage audio files are written.
	AudioDir string `mapstructure:"audio_dir" validate:"required"`
}
