// Package cli implements the guardrailctl operator commands.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/guardrail"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/setup"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/setup/logger"
	"github.com/spf13/cobra"
)

// ServiceFactory builds the service a command talks to. The returned func releases it.
type ServiceFactory func(ctx context.Context, verbose bool) (guardrail.Manager, func() error, error)

type options struct {
	verbose bool
	version string
}

// NewRootCommand builds the command tree around factory.
func NewRootCommand(factory ServiceFactory) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "guardrailctl",
		Short:         "Manage Amazon Bedrock guardrails from the terminal",
		Long:          "guardrailctl lists, inspects, deletes and exports Amazon Bedrock guardrails using the same service as the MCP server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")
	root.PersistentFlags().StringVar(&opts.version, "version-id", "", "guardrail version, defaults to DRAFT")

	root.AddCommand(newListCommand(factory, opts))
	root.AddCommand(newGetCommand(factory, opts))
	root.AddCommand(newExportCommand(factory, opts))
	root.AddCommand(newDeleteCommand(factory, opts))
	root.AddCommand(newEventsCommand(opts))

	return root
}

// Execute runs the CLI against the real Bedrock service.
func Execute() {
	root := NewRootCommand(DefaultFactory)
	if err := root.ExecuteContext(context.Background()); err != nil {
		printError(root.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// DefaultFactory wires the service from the environment, like the servers do.
func DefaultFactory(ctx context.Context, verbose bool) (guardrail.Manager, func() error, error) {
	_ = godotenv.Load()

	cfg := setup.LoadConfig()
	level := cfg.LogLevel
	if !verbose {
		level = "warn"
	}
	log := logger.New(level, true)

	deps, err := setup.Wire(ctx, cfg, &log)
	if err != nil {
		return nil, nil, err
	}
	return deps.Service, deps.Close, nil
}

func withService(cmd *cobra.Command, factory ServiceFactory, opts *options, run func(svc guardrail.Manager) error) error {
	svc, release, err := factory(cmd.Context(), opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = release() }()
	return run(svc)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCompactJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
