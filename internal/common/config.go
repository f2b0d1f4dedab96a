package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string            `toml:"environment"` // "development" or "production"
	Server      ServerConfig      `toml:"server"`
	Logging     LoggingConfig     `toml:"logging"`
	Claude      ClaudeConfig      `toml:"claude"`
	Gemini      GeminiConfig      `toml:"gemini"`
	LLM         LLMConfig         `toml:"llm"`
	Validation  ValidationConfig  `toml:"validation"`
	Analysis    AnalysisConfig    `toml:"analysis"`
	Export      ExportConfig      `toml:"export"`
	Maintenance MaintenanceConfig `toml:"maintenance"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"required,gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key (ANTHROPIC_API_KEY overrides)
	Model       string  `toml:"model"`       // Model name (default: "claude-haiku-3-5-20241022")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 4096)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between requests (default: "1s")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0, near-deterministic)
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google API key (GEMINI_API_KEY overrides)
	Model       string  `toml:"model"`       // Model name (default: "gemini-2.0-flash")
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between requests (default: "4s")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0)
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
)

// LLMConfig selects the default AI provider
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider" validate:"oneof=claude gemini"`
}

// ValidationConfig controls the bill-likeness validator
type ValidationConfig struct {
	MinLength     int  `toml:"min_length" validate:"gt=0"`     // Minimum trimmed text length (default: 300)
	PreviewLength int  `toml:"preview_length" validate:"gt=0"` // Chars of text scored (default: 15000)
	Strict        bool `toml:"strict"`                         // Require identity/institution/action co-occurrence
}

// AnalysisConfig controls prompt assembly for analysis and Q&A
type AnalysisConfig struct {
	PromptBudget       int    `toml:"prompt_budget" validate:"gt=0"`   // Max bill-text chars interpolated into the analysis prompt
	QuestionBudget     int    `toml:"question_budget" validate:"gt=0"` // Max bill-text chars supplied with a follow-up question
	Audience           string `toml:"audience"`                        // Reader framing used in the prompt
	PromptTemplateFile string `toml:"prompt_template_file"`            // Optional override of the embedded analysis template
}

// ExportConfig controls the summary PDF download
type ExportConfig struct {
	MaxLineChars int    `toml:"max_line_chars" validate:"gt=0"` // Max characters per rendered line (default: 100)
	Filename     string `toml:"filename"`                       // Download filename (default: "Bill_Summary.pdf")
}

// MaintenanceConfig controls background housekeeping
type MaintenanceConfig struct {
	TempSweepSchedule string `toml:"temp_sweep_schedule"` // Cron schedule for orphaned temp file cleanup
	TempMaxAge        string `toml:"temp_max_age"`        // Age before a temp file is considered orphaned
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		Claude: ClaudeConfig{
			APIKey:      "",
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   4096,
			Timeout:     "2m",
			RateLimit:   "1s",
			Temperature: 0, // Near-deterministic output keeps section headers stable
		},
		Gemini: GeminiConfig{
			APIKey:      "",
			Model:       "gemini-2.0-flash",
			Timeout:     "2m",
			RateLimit:   "4s",
			Temperature: 0,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderClaude,
		},
		Validation: ValidationConfig{
			MinLength:     300,
			PreviewLength: 15000,
			Strict:        false,
		},
		Analysis: AnalysisConfig{
			PromptBudget:   12000,
			QuestionBudget: 12000,
			Audience:       "8th grade school students and common citizens",
		},
		Export: ExportConfig{
			MaxLineChars: 100,
			Filename:     "Bill_Summary.pdf",
		},
		Maintenance: MaintenanceConfig{
			TempSweepSchedule: "0 */30 * * * *", // Every 30 minutes
			TempMaxAge:        "1h",
		},
	}
}

// LoadFromFiles loads configuration from defaults, then merges each config
// file in order (later files override earlier ones), then applies environment
// variable overrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the loaded configuration against its struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// HasAPIKey reports whether a credential is available for the given provider.
// A missing key is a configuration error surfaced to the user before any
// analysis state changes.
func (c *Config) HasAPIKey(provider LLMProvider) bool {
	switch provider {
	case LLMProviderClaude:
		return c.Claude.APIKey != ""
	case LLMProviderGemini:
		return c.Gemini.APIKey != ""
	}
	return false
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("BILLAUDITOR_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("BILLAUDITOR_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("BILLAUDITOR_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("BILLAUDITOR_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("BILLAUDITOR_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Credentials (env takes priority over config file values)
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	} else if key := os.Getenv("BILLAUDITOR_CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	} else if key := os.Getenv("BILLAUDITOR_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}

	// Provider selection
	if provider := os.Getenv("BILLAUDITOR_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(strings.ToLower(provider))
	}

	// Validator tuning
	if minLength := os.Getenv("BILLAUDITOR_VALIDATION_MIN_LENGTH"); minLength != "" {
		if ml, err := strconv.Atoi(minLength); err == nil {
			config.Validation.MinLength = ml
		}
	}
	if strict := os.Getenv("BILLAUDITOR_VALIDATION_STRICT"); strict != "" {
		if s, err := strconv.ParseBool(strict); err == nil {
			config.Validation.Strict = s
		}
	}

	// Prompt budgets
	if budget := os.Getenv("BILLAUDITOR_ANALYSIS_PROMPT_BUDGET"); budget != "" {
		if b, err := strconv.Atoi(budget); err == nil {
			config.Analysis.PromptBudget = b
		}
	}
	if budget := os.Getenv("BILLAUDITOR_ANALYSIS_QUESTION_BUDGET"); budget != "" {
		if b, err := strconv.Atoi(budget); err == nil {
			config.Analysis.QuestionBudget = b
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
