package bedrock

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/credentials"
)

func isolateSharedConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
}

func TestLoadConfig_StaticCredentials(t *testing.T) {
	isolateSharedConfig(t)

	cfg, err := LoadConfig(context.Background(), credentials.Credentials{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		SessionToken:    "token",
		Region:          "eu-central-1",
	})
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Region != "eu-central-1" {
		t.Errorf("Expected region eu-central-1, got %s", cfg.Region)
	}

	got, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if got.AccessKeyID != "AKIAEXAMPLE" || got.SecretAccessKey != "secret" || got.SessionToken != "token" {
		t.Errorf("Unexpected credentials: %+v", got)
	}
}

func TestLoadConfig_RoleWrapsCredentialsCache(t *testing.T) {
	isolateSharedConfig(t)

	cfg, err := LoadConfig(context.Background(), credentials.Credentials{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		Region:          "us-east-1",
		RoleARN:         "arn:aws:iam::123456789012:role/guardrail-admin",
	})
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if _, ok := cfg.Credentials.(*aws.CredentialsCache); !ok {
		t.Errorf("Expected assume-role provider wrapped in a CredentialsCache, got %T", cfg.Credentials)
	}
}

func TestNewClient(t *testing.T) {
	isolateSharedConfig(t)

	client, err := NewClient(context.Background(), credentials.Credentials{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		Region:          "us-west-2",
	})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	if client.Guardrails == nil || client.Runtime == nil {
		t.Fatal("Expected both control plane and runtime clients")
	}
	if client.Region != "us-west-2" {
		t.Errorf("Expected region us-west-2, got %s", client.Region)
	}
}
