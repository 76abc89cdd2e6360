package main

import "github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/cli"

func main() {
	cli.Execute()
}
