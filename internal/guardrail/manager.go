package guardrail

import (
	"context"

	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/models"
)

//go:generate mockgen -destination=mocks/mock_manager.go -package=mocks . Manager

// Manager is what the transports (MCP tools, REST API, CLI) need from the service.
type Manager interface {
	Create(ctx context.Context, req models.CreateRequest) (models.CreateResult, error)
	Update(ctx context.Context, req models.UpdateRequest) (models.GuardrailConfig, error)
	Delete(ctx context.Context, id, version string) error
	List(ctx context.Context, filter models.ListFilter) ([]models.GuardrailSummary, error)
	Get(ctx context.Context, id, version string) (models.GuardrailConfig, error)
	CreateVersion(ctx context.Context, id, description string) (models.GuardrailVersion, error)
	ExportTerraform(ctx context.Context, id, version, resourceName string) (string, error)
	Apply(ctx context.Context, req models.ApplyRequest) (models.ApplyResult, error)
}

var _ Manager = (*Service)(nil)
