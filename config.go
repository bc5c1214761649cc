package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`

	Model           string  `yaml:"model"`
	EmbedModel      string  `yaml:"embed_model"`
	TranscribeModel string  `yaml:"transcribe_model"`
	Temperature     float64 `yaml:"temperature"`
	MaxTokens       int     `yaml:"max_tokens"`

	DBPath      string `yaml:"db_path"`
	DataDir     string `yaml:"data_dir"`
	AspectsPath string `yaml:"aspects_path"`

	TargetLang      string `yaml:"target_lang"`
	SimilarityProbe string `yaml:"similarity_probe"`

	RefreshSchedule string `yaml:"refresh_schedule"`

	SlackBotToken  string `yaml:"slack_bot_token"`
	SlackChannelID string `yaml:"slack_channel_id"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	envOverride(&cfg.Model, "MODEL")
	envOverride(&cfg.EmbedModel, "EMBED_MODEL")
	envOverride(&cfg.TranscribeModel, "TRANSCRIBE_MODEL")
	envOverrideFloat(&cfg.Temperature, "TEMPERATURE")
	envOverrideInt(&cfg.MaxTokens, "MAX_TOKENS")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.DataDir, "DATA_DIR")
	envOverride(&cfg.AspectsPath, "ASPECTS_PATH")
	envOverride(&cfg.TargetLang, "TARGET_LANG")
	envOverride(&cfg.SimilarityProbe, "SIMILARITY_PROBE")
	envOverride(&cfg.RefreshSchedule, "REFRESH_SCHEDULE")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackChannelID, "SLACK_CHANNEL_ID")

	// Defaults
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-5-20250929"
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = "text-embedding-3-small"
	}
	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = "whisper-1"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./aisqlkit.db"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.TargetLang == "" {
		cfg.TargetLang = "en"
	}
	if cfg.SimilarityProbe == "" {
		cfg.SimilarityProbe = "delivery was late or the package arrived damaged"
	}

	// Validate required fields
	if cfg.AnthropicAPIKey == "" {
		log.Fatalf("Required config 'anthropic_api_key' is not set (via config.yaml or env var)")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Printf("openai_api_key not set: embed, similarity, and transcribe demos will fail")
	}

	if cfg.Temperature < 0 || cfg.Temperature > 1 {
		log.Fatalf("invalid temperature '%f': must be between 0 and 1", cfg.Temperature)
	}
	if cfg.MaxTokens < 1 {
		log.Fatalf("invalid max_tokens '%d': must be >= 1", cfg.MaxTokens)
	}
	if cfg.RefreshSchedule != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(cfg.RefreshSchedule); err != nil {
			log.Fatalf("invalid refresh_schedule '%s': %v", cfg.RefreshSchedule, err)
		}
	}
	if cfg.AspectsPath != "" {
		if _, err := LoadAspectConfig(cfg.AspectsPath); err != nil {
			log.Fatalf("invalid aspects_path '%s': %v", cfg.AspectsPath, err)
		}
	}
	if cfg.SlackChannelID != "" && cfg.SlackBotToken == "" {
		log.Fatalf("slack_channel_id is set but slack_bot_token is not")
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

func envOverrideFloat(field *float64, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

// NotifierConfigured reports whether run summaries should be posted to
// Slack.
func (c Config) NotifierConfigured() bool {
	return strings.TrimSpace(c.SlackBotToken) != "" && strings.TrimSpace(c.SlackChannelID) != ""
}
