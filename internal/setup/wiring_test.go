package setup

import (
	"context"
	"fmt"
	"testing"

	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/config"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/credentials"
	"github.com/rs/zerolog"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"LOG_LEVEL", "GUARDRAILS_ALLOW_REGION_FALLBACK", "GUARDRAILS_FALLBACK_REGION",
		"GUARDRAILS_USE_DEFAULT_CREDENTIALS", "GUARDRAILS_EVENTS_REDIS_ADDR", "GUARDRAILS_API_PORT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.LogLevel != "info" || cfg.APIPort != "18082" || cfg.EventsRedisRetries != 3 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.AllowRegionFallback || cfg.UseDefaultCredentials {
		t.Error("Expected strict credential handling by default")
	}
	if opts := cfg.CredentialOptions(); opts.FallbackRegion != "" || opts.AllowDefaultChain {
		t.Errorf("Expected strict options, got %+v", opts)
	}
}

func TestConfig_CredentialOptions(t *testing.T) {
	t.Setenv("GUARDRAILS_ALLOW_REGION_FALLBACK", "true")
	t.Setenv("GUARDRAILS_FALLBACK_REGION", "eu-west-1")
	t.Setenv("GUARDRAILS_USE_DEFAULT_CREDENTIALS", "1")

	opts := LoadConfig().CredentialOptions()

	if opts.FallbackRegion != "eu-west-1" || !opts.AllowDefaultChain {
		t.Errorf("Unexpected options: %+v", opts)
	}
}

func TestConfig_EventsStreamName(t *testing.T) {
	serverCfg := &config.ServerConfig{}
	serverCfg.Events.Stream = "audit"

	if got := (&Config{}).EventsStreamName(serverCfg); got != "audit" {
		t.Errorf("Expected stream from server config, got %s", got)
	}
	if got := (&Config{EventsStream: "override"}).EventsStreamName(serverCfg); got != "override" {
		t.Errorf("Expected env stream to win, got %s", got)
	}
}

func TestWire_MissingCredentials(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GUARDRAILS_CONFIG_PATH", "")
	for _, key := range []string{
		credentials.EnvAccessKeyID, credentials.EnvSecretAccessKey, credentials.EnvSessionToken, credentials.EnvRegion,
	} {
		t.Setenv(key, "")
	}

	logger := zerolog.Nop()
	_, err := Wire(context.Background(), &Config{}, &logger)

	if !IsMissingCredentials(err) {
		t.Fatalf("Expected missing credentials error, got %v", err)
	}
	if !IsMissingCredentials(fmt.Errorf("wrapped: %w", err)) {
		t.Error("Expected wrapped error to still be classified")
	}
}
