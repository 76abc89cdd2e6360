package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/bedrock"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/config"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/credentials"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/events"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/guardrail"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/terraform"
	"github.com/rs/zerolog"
)

const defaultFallbackRegion = "us-east-1"

type Config struct {
	LogLevel              string
	AllowRegionFallback   bool
	FallbackRegion        string
	UseDefaultCredentials bool
	EventsRedisAddr       string
	EventsRedisPassword   string
	EventsStream          string
	EventsRedisRetries    int
	APIPort               string
}

type Dependencies struct {
	Service *guardrail.Service
	Server  *config.ServerConfig
	Region  string
	Logger  *zerolog.Logger

	publisher events.Publisher
}

func LoadConfig() *Config {
	return &Config{
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		AllowRegionFallback:   getEnvBool("GUARDRAILS_ALLOW_REGION_FALLBACK", false),
		FallbackRegion:        getEnv("GUARDRAILS_FALLBACK_REGION", defaultFallbackRegion),
		UseDefaultCredentials: getEnvBool("GUARDRAILS_USE_DEFAULT_CREDENTIALS", false),
		EventsRedisAddr:       getEnv("GUARDRAILS_EVENTS_REDIS_ADDR", ""),
		EventsRedisPassword:   getEnv("GUARDRAILS_EVENTS_REDIS_PASSWORD", ""),
		EventsStream:          getEnv("GUARDRAILS_EVENTS_STREAM", ""),
		EventsRedisRetries:    getEnvInt("GUARDRAILS_EVENTS_REDIS_RETRIES", 3),
		APIPort:               getEnv("GUARDRAILS_API_PORT", "18082"),
	}
}

// CredentialOptions maps the operational switches onto the resolver options.
func (c *Config) CredentialOptions() credentials.Options {
	opts := credentials.Options{AllowDefaultChain: c.UseDefaultCredentials}
	if c.AllowRegionFallback {
		opts.FallbackRegion = c.FallbackRegion
	}
	return opts
}

// EventsStreamName is the stream change events go to: GUARDRAILS_EVENTS_STREAM when set,
// otherwise events.stream from the server config.
func (c *Config) EventsStreamName(serverCfg *config.ServerConfig) string {
	if c.EventsStream != "" {
		return c.EventsStream
	}
	return serverCfg.Events.Stream
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	creds, err := credentials.FromEnvironment(cfg.CredentialOptions())
	if err != nil {
		return nil, err
	}
	logger.Info().Str("credentials", creds.String()).Msg("resolved AWS credentials")

	client, err := bedrock.NewClient(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
	}

	publisher, err := newPublisher(ctx, cfg, serverCfg, logger)
	if err != nil {
		return nil, err
	}

	exporter := terraform.NewExporter(serverCfg.Terraform.DefaultResourceName)
	service := guardrail.NewService(client.Guardrails, client.Runtime, exporter, publisher, serverCfg.List.PageSize, logger)

	return &Dependencies{
		Service:   service,
		Server:    serverCfg,
		Region:    client.Region,
		Logger:    logger,
		publisher: publisher,
	}, nil
}

// Close releases the event publisher connection.
func (d *Dependencies) Close() error {
	if d.publisher == nil {
		return nil
	}
	return d.publisher.Close()
}

// IsMissingCredentials reports whether Wire failed because AWS credentials are absent.
func IsMissingCredentials(err error) bool {
	var missing *credentials.MissingCredentialError
	return errors.As(err, &missing)
}

func newPublisher(ctx context.Context, cfg *Config, serverCfg *config.ServerConfig, logger *zerolog.Logger) (events.Publisher, error) {
	if cfg.EventsRedisAddr == "" {
		logger.Debug().Msg("change events disabled")
		return events.NopPublisher{}, nil
	}

	stream := cfg.EventsStreamName(serverCfg)

	client, err := events.Connect(ctx, events.RedisConfig{
		Addr:       cfg.EventsRedisAddr,
		Password:   cfg.EventsRedisPassword,
		Stream:     stream,
		MaxLen:     serverCfg.Events.MaxLen,
		MaxRetries: cfg.EventsRedisRetries,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect change-event stream: %w", err)
	}

	logger.Info().Str("stream", stream).Msg("publishing change events to Redis")
	return events.NewRedisPublisher(client, stream, serverCfg.Events.MaxLen, logger), nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		value = defaultValue
	}

	return value
}
