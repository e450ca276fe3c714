package config

import (
	"testing"
	"time"
)

func TestParseAdminIDs(t *testing.T) {
	cfg := &Config{}
	cfg.EnvVars.AdminIDs = "123, 456,789"

	if err := cfg.parseAdminIDs(); err != nil {
		t.Fatalf("parseAdminIDs error: %v", err)
	}

	admins := cfg.AdminIDs()
	if len(admins) != 3 {
		t.Fatalf("got %d admin ids, want 3", len(admins))
	}
	for _, id := range []int64{123, 456, 789} {
		if _, ok := admins[id]; !ok {
			t.Errorf("admin id %d missing", id)
		}
	}
}

func TestParseAdminIDs_BlankEntriesSkipped(t *testing.T) {
	cfg := &Config{}
	cfg.EnvVars.AdminIDs = " , 42,,"

	if err := cfg.parseAdminIDs(); err != nil {
		t.Fatalf("parseAdminIDs error: %v", err)
	}
	if len(cfg.AdminIDs()) != 1 {
		t.Errorf("got %d admin ids, want 1", len(cfg.AdminIDs()))
	}
}

func TestParseAdminIDs_Invalid(t *testing.T) {
	cfg := &Config{}
	cfg.EnvVars.AdminIDs = "123,notanumber"

	if err := cfg.parseAdminIDs(); err == nil {
		t.Error("parseAdminIDs accepted a non-numeric id")
	}
}

func TestCheckConfigEnvFields(t *testing.T) {
	cfg := &Config{}
	cfg.EnvVars = EnvVars{
		Port:             "8080",
		DatabaseUrl:      "postgres://localhost/speakify",
		BotToken:         "token",
		WebhookSecret:    "secret",
		OpenAIAPIKey:     "sk-test",
		FeedbackProvider: "openai",
		AdminIDs:         "1",

		QuestionsPerPage: 5,
		MaxVoiceDuration: 180,

		BroadcastDelay:    100 * time.Millisecond,
		SendTimeout:       10 * time.Second,
		DownloadTimeout:   30 * time.Second,
		TranscribeTimeout: time.Minute,
		FeedbackTimeout:   90 * time.Second,
	}

	if err := cfg.CheckConfigEnvFields(); err != nil {
		t.Errorf("CheckConfigEnvFields error: %v", err)
	}

	// AnthropicAPIKey is optional and may stay empty.
	cfg.EnvVars.AnthropicAPIKey = ""
	if err := cfg.CheckConfigEnvFields(); err != nil {
		t.Errorf("CheckConfigEnvFields with empty optional field: %v", err)
	}

	cfg.EnvVars.BotToken = ""
	if err := cfg.CheckConfigEnvFields(); err == nil {
		t.Error("CheckConfigEnvFields accepted a missing BotToken")
	}
}

func TestRenderPrompt(t *testing.T) {
	out, err := RenderPrompt("Question: {{.Question}}\nAnswer: {{.Transcript}}", map[string]interface{}{
		"Question":   "Describe your hometown.",
		"Transcript": "I live by the sea.",
	})
	if err != nil {
		t.Fatalf("RenderPrompt error: %v", err)
	}
	want := "Question: Describe your hometown.\nAnswer: I live by the sea."
	if out != want {
		t.Errorf("rendered = %q, want %q", out, want)
	}
}

func TestRenderPrompt_BadTemplate(t *testing.T) {
	if _, err := RenderPrompt("{{.Unclosed", nil); err == nil {
		t.Error("RenderPrompt accepted a malformed template")
	}
}
