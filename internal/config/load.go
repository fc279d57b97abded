package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and, optionally, a
// config.yaml file in the current directory. Environment variables use the
// LINGAI_ prefix with underscores for nesting (e.g. LINGAI_LLM_API_KEY) and
// take precedence over file values.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LINGAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment can carry
		// everything. Any other read error is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// AutomaticEnv does not cooperate with Unmarshal for keys that never
	// appear in a file, so bind every known key explicitly.
	for _, key := range configKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %q: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.log_level", "info")
	v.SetDefault("llm.base_url", "https://api.mistral.ai/v1")
	v.SetDefault("llm.model", "mistral-large-latest")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("llm.request_timeout_seconds", 60)
	v.SetDefault("llm.gemini_model", "gemini-2.0-flash")
	v.SetDefault("speech.request_timeout_seconds", 120)
	v.SetDefault("storage.path", "lingai.db")
	v.SetDefault("storage.audio_dir", "audio")
}

func configKeys() []string {
	return []string{
		"app.log_level",
		"llm.api_key",
		"llm.base_url",
		"llm.model",
		"llm.max_retries",
		"llm.retry_delay_seconds",
		"llm.request_timeout_seconds",
		"llm.gemini_api_key",
		"llm.gemini_model",
		"speech.api_key",
		"speech.base_url",
		"speech.voice",
		"speech.style_instructions",
		"speech.request_timeout_seconds",
		"storage.path",
		"storage.audio_dir",
	}
}
