package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/config"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/events"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/setup"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/setup/logger"
	"github.com/spf13/cobra"
)

func newEventsCommand(opts *options) *cobra.Command {
	var (
		addr     string
		password string
		stream   string
		group    string
		fromNew  bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Follow the guardrail change-event stream and print each event as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				return errors.New("redis address required: set --redis-addr or GUARDRAILS_EVENTS_REDIS_ADDR")
			}
			if !cmd.Flags().Changed("stream") {
				resolved, err := defaultStream()
				if err != nil {
					return err
				}
				stream = resolved
			}

			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			log := logger.New(level, true)

			client, err := events.Connect(cmd.Context(), events.RedisConfig{Addr: addr, Password: password, MaxRetries: 1}, &log)
			if err != nil {
				return err
			}

			host, _ := os.Hostname()
			consumer := events.NewConsumer(client, stream, group, host, &log)
			defer consumer.Close()
			if fromNew {
				consumer.StartID = "$"
			}

			if err := consumer.Setup(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			err = consumer.Start(cmd.Context(), func(_ context.Context, id string, event events.Event) error {
				return writeJSONLine(out, id, event)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "redis-addr", os.Getenv("GUARDRAILS_EVENTS_REDIS_ADDR"), "Redis address")
	cmd.Flags().StringVar(&password, "redis-password", os.Getenv("GUARDRAILS_EVENTS_REDIS_PASSWORD"), "Redis password")
	cmd.Flags().StringVar(&stream, "stream", "", "stream name (default: GUARDRAILS_EVENTS_STREAM, then events.stream in the server config)")
	cmd.Flags().StringVar(&group, "group", "guardrailctl", "consumer group")
	cmd.Flags().BoolVar(&fromNew, "new-only", false, "skip history when the group is created")
	return cmd
}

// defaultStream follows the stream the servers publish to.
func defaultStream() (string, error) {
	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		return "", err
	}
	return setup.LoadConfig().EventsStreamName(serverCfg), nil
}

type eventLine struct {
	MessageID string `json:"message_id"`
	events.Event
}

func writeJSONLine(w io.Writer, id string, event events.Event) error {
	if err := writeCompactJSON(w, eventLine{MessageID: id, Event: event}); err != nil {
		return fmt.Errorf("failed to print event %s: %w", id, err)
	}
	return nil
}
