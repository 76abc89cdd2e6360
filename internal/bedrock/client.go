package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/credentials"
)

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks . GuardrailAPI,RuntimeAPI

// GuardrailAPI is the subset of the Bedrock control plane used to manage guardrails.
// *bedrock.Client satisfies it; tests use the generated mock.
type GuardrailAPI interface {
	CreateGuardrail(ctx context.Context, params *bedrock.CreateGuardrailInput, optFns ...func(*bedrock.Options)) (*bedrock.CreateGuardrailOutput, error)
	UpdateGuardrail(ctx context.Context, params *bedrock.UpdateGuardrailInput, optFns ...func(*bedrock.Options)) (*bedrock.UpdateGuardrailOutput, error)
	DeleteGuardrail(ctx context.Context, params *bedrock.DeleteGuardrailInput, optFns ...func(*bedrock.Options)) (*bedrock.DeleteGuardrailOutput, error)
	GetGuardrail(ctx context.Context, params *bedrock.GetGuardrailInput, optFns ...func(*bedrock.Options)) (*bedrock.GetGuardrailOutput, error)
	ListGuardrails(ctx context.Context, params *bedrock.ListGuardrailsInput, optFns ...func(*bedrock.Options)) (*bedrock.ListGuardrailsOutput, error)
	CreateGuardrailVersion(ctx context.Context, params *bedrock.CreateGuardrailVersionInput, optFns ...func(*bedrock.Options)) (*bedrock.CreateGuardrailVersionOutput, error)
	ListTagsForResource(ctx context.Context, params *bedrock.ListTagsForResourceInput, optFns ...func(*bedrock.Options)) (*bedrock.ListTagsForResourceOutput, error)
}

// RuntimeAPI evaluates content against a guardrail.
type RuntimeAPI interface {
	ApplyGuardrail(ctx context.Context, params *bedrockruntime.ApplyGuardrailInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ApplyGuardrailOutput, error)
}

// Client bundles the control plane and runtime clients built from one AWS config.
// Both SDK clients are safe for concurrent use and are shared across tool calls.
type Client struct {
	Guardrails GuardrailAPI
	Runtime    RuntimeAPI
	Region     string
}

func NewClient(ctx context.Context, creds credentials.Credentials) (*Client, error) {
	cfg, err := LoadConfig(ctx, creds)
	if err != nil {
		return nil, err
	}

	return &Client{
		Guardrails: bedrock.NewFromConfig(cfg),
		Runtime:    bedrockruntime.NewFromConfig(cfg),
		Region:     cfg.Region,
	}, nil
}

// LoadConfig builds the AWS config. Static keys win over the default chain; a role ARN
// wraps whichever base credentials were chosen in an STS AssumeRole provider.
func LoadConfig(ctx context.Context, creds credentials.Credentials) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(creds.Region),
	}
	if creds.Static() {
		opts = append(opts, config.WithCredentialsProvider(
			awscreds.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS config: %w", err)
	}

	if creds.RoleARN != "" {
		sessionName := creds.RoleSessionName
		if sessionName == "" {
			sessionName = "BedrockGuardrailsSession"
		}
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), creds.RoleARN, func(o *stscreds.AssumeRoleOptions) {
			o.RoleSessionName = sessionName
		})
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return cfg, nil
}
