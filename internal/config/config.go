package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars  `json:"env"`
	Prompts *Prompts `json:"-"`

	adminIDs map[int64]struct{}
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port             string `env:"PORT" envDefault:"8080"`
	DatabaseUrl      string `env:"DATABASE_URL"`
	BotToken         string `env:"BOT_TOKEN"`
	WebhookSecret    string `env:"WEBHOOK_SECRET"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY" optional:"true"`
	FeedbackProvider string `env:"FEEDBACK_PROVIDER" envDefault:"openai"`
	AdminIDs         string `env:"ADMIN_IDS"`

	QuestionsPerPage int `env:"QUESTIONS_PER_PAGE" envDefault:"5"`
	MaxVoiceDuration int `env:"MAX_VOICE_DURATION_SECONDS" envDefault:"180"`

	BroadcastDelay    time.Duration `env:"BROADCAST_DELAY" envDefault:"100ms"`
	SendTimeout       time.Duration `env:"SEND_TIMEOUT" envDefault:"10s"`
	DownloadTimeout   time.Duration `env:"DOWNLOAD_TIMEOUT" envDefault:"30s"`
	TranscribeTimeout time.Duration `env:"TRANSCRIBE_TIMEOUT" envDefault:"60s"`
	FeedbackTimeout   time.Duration `env:"FEEDBACK_TIMEOUT" envDefault:"90s"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	if err := config.parseAdminIDs(); err != nil {
		return nil, err
	}
	return &config, nil
}

// parseAdminIDs splits the comma-separated ADMIN_IDS value into the
// privileged-user set. Blank entries are skipped.
func (c *Config) parseAdminIDs() error {
	c.adminIDs = make(map[int64]struct{})
	for _, part := range strings.Split(c.EnvVars.AdminIDs, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid admin id %q: %w", part, err)
		}
		c.adminIDs[id] = struct{}{}
	}
	return nil
}

// AdminIDs returns the configured privileged-user set.
func (c *Config) AdminIDs() map[int64]struct{} {
	return c.adminIDs
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if isZeroValue(field) {
			return fmt.Errorf("$%s must be set", fieldType.Name)
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}

func isZeroValue(v reflect.Value) bool {
	return v.Interface() == reflect.Zero(v.Type()).Interface()
}
