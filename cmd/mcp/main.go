package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/mcpadapter"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/setup"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/setup/logger"
)

func main() {
	// Load env
	_ = godotenv.Load()

	cfg := setup.LoadConfig()

	// stdout carries the protocol, so logs go to stderr
	log := logger.New(cfg.LogLevel, true)

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.Wire(ctx, cfg, &log)
	if err != nil {
		if setup.IsMissingCredentials(err) {
			log.Error().Err(err).Msg("AWS credentials are not configured")
		} else {
			log.Error().Err(err).Msg("Unable to load dependencies")
		}
		os.Exit(1)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close dependencies")
		}
	}()

	server := createMCPServer(deps)

	log.Info().
		Str("region", deps.Region).
		Bool("readOnly", deps.Server.Server.ReadOnly).
		Msg("Bedrock guardrails MCP server listening on stdio")

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when the client closes stdin
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			log.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		log.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    deps.Server.Server.Name,
			Version: deps.Server.Server.Version,
		}, nil,
	)

	handlers := mcpadapter.NewHandlers(deps.Service, deps.Logger)
	mcpadapter.Register(server, handlers, deps.Server.Server.ReadOnly)
	return server
}
