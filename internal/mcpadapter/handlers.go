// Package mcpadapter exposes the guardrail service as MCP tools.
package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/guardrail"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/models"
	"github.com/rs/zerolog"
)

// CreateGuardrailInput is the create_guardrail_full input schema.
type CreateGuardrailInput struct {
	Name                    string                    `json:"name,omitempty" jsonschema:"required guardrail name: letters, digits, hyphens and underscores, at most 50 characters"`
	Description             string                    `json:"description,omitempty" jsonschema:"optional description, at most 200 characters"`
	BlockedInputMessaging   string                    `json:"blocked_input_messaging,omitempty" jsonschema:"required message returned when a prompt is blocked"`
	BlockedOutputsMessaging string                    `json:"blocked_outputs_messaging,omitempty" jsonschema:"required message returned when a model response is blocked"`
	PolicyConfigs           map[string]map[string]any `json:"policy_configs,omitempty" jsonschema:"policy blocks keyed by type: content, topic, word, sensitive_information, contextual_grounding"`
	KMSKeyARN               string                    `json:"kms_key_arn,omitempty" jsonschema:"optional KMS key used to encrypt the guardrail"`
	Tags                    map[string]string         `json:"tags,omitempty" jsonschema:"optional resource tags"`
	CrossRegionProfile      string                    `json:"cross_region_profile,omitempty" jsonschema:"optional guardrail profile id or ARN for cross-region inference"`
}

// UpdateGuardrailInput is the update_guardrail_full input schema. Omitted fields keep their
// current value.
type UpdateGuardrailInput struct {
	GuardrailID             string                    `json:"guardrail_id,omitempty" jsonschema:"required guardrail id or ARN"`
	Name                    *string                   `json:"name,omitempty" jsonschema:"new name"`
	Description             *string                   `json:"description,omitempty" jsonschema:"new description"`
	BlockedInputMessaging   *string                   `json:"blocked_input_messaging,omitempty" jsonschema:"new blocked prompt message"`
	BlockedOutputsMessaging *string                   `json:"blocked_outputs_messaging,omitempty" jsonschema:"new blocked response message"`
	PolicyConfigs           map[string]map[string]any `json:"policy_configs,omitempty" jsonschema:"policy blocks to add or replace, keyed by type"`
	RemovePolicies          []string                  `json:"remove_policies,omitempty" jsonschema:"policy types to remove"`
	KMSKeyARN               *string                   `json:"kms_key_arn,omitempty" jsonschema:"new KMS key ARN"`
	CrossRegionProfile      *string                   `json:"cross_region_profile,omitempty" jsonschema:"new cross-region guardrail profile, empty string to clear"`
}

// GuardrailRefInput identifies one guardrail version.
type GuardrailRefInput struct {
	GuardrailID string `json:"guardrail_id,omitempty" jsonschema:"required guardrail id or ARN"`
	Version     string `json:"version,omitempty" jsonschema:"version number, defaults to DRAFT"`
}

type ListGuardrailsInput struct {
	GuardrailID  string `json:"guardrail_id,omitempty" jsonschema:"list the versions of this guardrail instead of all guardrails"`
	NameContains string `json:"name_contains,omitempty" jsonschema:"case-insensitive name filter"`
	Status       string `json:"status,omitempty" jsonschema:"status filter: CREATING, UPDATING, VERSIONING, READY, FAILED or DELETING"`
}

type ExportTerraformInput struct {
	GuardrailID  string `json:"guardrail_id,omitempty" jsonschema:"required guardrail id or ARN"`
	Version      string `json:"version,omitempty" jsonschema:"version number, defaults to DRAFT"`
	ResourceName string `json:"tf_resource_name,omitempty" jsonschema:"Terraform resource name, defaults to the server setting"`
}

type CreateVersionInput struct {
	GuardrailID string `json:"guardrail_id,omitempty" jsonschema:"required guardrail id or ARN"`
	Description string `json:"description,omitempty" jsonschema:"optional version description"`
}

type ApplyGuardrailInput struct {
	GuardrailID string   `json:"guardrail_id,omitempty" jsonschema:"required guardrail id or ARN"`
	Version     string   `json:"version,omitempty" jsonschema:"version number, defaults to DRAFT"`
	Source      string   `json:"source,omitempty" jsonschema:"INPUT for prompts, OUTPUT for model responses; defaults to INPUT"`
	Text        []string `json:"text,omitempty" jsonschema:"required text blocks to evaluate"`
}

type DeleteResult struct {
	Deleted     bool   `json:"deleted"`
	GuardrailID string `json:"guardrail_id"`
	Version     string `json:"version,omitempty"`
}

type ListResult struct {
	Guardrails []models.GuardrailSummary `json:"guardrails"`
	Count      int                       `json:"count"`
}

type ExportResult struct {
	GuardrailID string `json:"guardrail_id"`
	Version     string `json:"version"`
	Terraform   string `json:"terraform"`
}

type ApplyResult struct {
	models.ApplyResult
	Intervened bool `json:"intervened"`
}

// Handlers holds one method per tool. Pass the methods to mcp.AddTool.
type Handlers struct {
	svc    guardrail.Manager
	logger *zerolog.Logger
}

func NewHandlers(svc guardrail.Manager, logger *zerolog.Logger) *Handlers {
	return &Handlers{svc: svc, logger: logger}
}

func (h *Handlers) CreateGuardrail(ctx context.Context, _ *mcp.CallToolRequest, input CreateGuardrailInput) (*mcp.CallToolResult, any, error) {
	result, err := h.svc.Create(ctx, models.CreateRequest{
		Name:                    input.Name,
		Description:             input.Description,
		BlockedInputMessaging:   input.BlockedInputMessaging,
		BlockedOutputsMessaging: input.BlockedOutputsMessaging,
		PolicyConfigs:           input.PolicyConfigs,
		KMSKeyARN:               input.KMSKeyARN,
		Tags:                    input.Tags,
		CrossRegionProfile:      input.CrossRegionProfile,
	})
	if err != nil {
		return h.toolError(ToolCreateGuardrail, err)
	}
	return nil, result, nil
}

func (h *Handlers) UpdateGuardrail(ctx context.Context, _ *mcp.CallToolRequest, input UpdateGuardrailInput) (*mcp.CallToolResult, any, error) {
	cfg, err := h.svc.Update(ctx, models.UpdateRequest{
		GuardrailID:             input.GuardrailID,
		Name:                    input.Name,
		Description:             input.Description,
		BlockedInputMessaging:   input.BlockedInputMessaging,
		BlockedOutputsMessaging: input.BlockedOutputsMessaging,
		PolicyConfigs:           input.PolicyConfigs,
		RemovePolicies:          input.RemovePolicies,
		KMSKeyARN:               input.KMSKeyARN,
		CrossRegionProfile:      input.CrossRegionProfile,
	})
	if err != nil {
		return h.toolError(ToolUpdateGuardrail, err)
	}
	return nil, cfg, nil
}

func (h *Handlers) DeleteGuardrail(ctx context.Context, _ *mcp.CallToolRequest, input GuardrailRefInput) (*mcp.CallToolResult, any, error) {
	if err := h.svc.Delete(ctx, input.GuardrailID, input.Version); err != nil {
		return h.toolError(ToolDeleteGuardrail, err)
	}
	return nil, DeleteResult{Deleted: true, GuardrailID: input.GuardrailID, Version: input.Version}, nil
}

func (h *Handlers) ListGuardrails(ctx context.Context, _ *mcp.CallToolRequest, input ListGuardrailsInput) (*mcp.CallToolResult, any, error) {
	summaries, err := h.svc.List(ctx, models.ListFilter{
		GuardrailID:  input.GuardrailID,
		NameContains: input.NameContains,
		Status:       input.Status,
	})
	if err != nil {
		return h.toolError(ToolListGuardrails, err)
	}
	return nil, ListResult{Guardrails: summaries, Count: len(summaries)}, nil
}

func (h *Handlers) GetGuardrail(ctx context.Context, _ *mcp.CallToolRequest, input GuardrailRefInput) (*mcp.CallToolResult, any, error) {
	cfg, err := h.svc.Get(ctx, input.GuardrailID, input.Version)
	if err != nil {
		return h.toolError(ToolGetGuardrail, err)
	}
	return nil, cfg, nil
}

// ExportTerraform returns the HCL as the text content so clients can show it verbatim.
func (h *Handlers) ExportTerraform(ctx context.Context, _ *mcp.CallToolRequest, input ExportTerraformInput) (*mcp.CallToolResult, any, error) {
	hcl, err := h.svc.ExportTerraform(ctx, input.GuardrailID, input.Version, input.ResourceName)
	if err != nil {
		return h.toolError(ToolExportTerraform, err)
	}

	version := input.Version
	if version == "" {
		version = models.DraftVersion
	}
	res := &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: hcl}}}
	return res, ExportResult{GuardrailID: input.GuardrailID, Version: version, Terraform: hcl}, nil
}

func (h *Handlers) CreateVersion(ctx context.Context, _ *mcp.CallToolRequest, input CreateVersionInput) (*mcp.CallToolResult, any, error) {
	version, err := h.svc.CreateVersion(ctx, input.GuardrailID, input.Description)
	if err != nil {
		return h.toolError(ToolCreateVersion, err)
	}
	return nil, version, nil
}

func (h *Handlers) ApplyGuardrail(ctx context.Context, _ *mcp.CallToolRequest, input ApplyGuardrailInput) (*mcp.CallToolResult, any, error) {
	result, err := h.svc.Apply(ctx, models.ApplyRequest{
		GuardrailID: input.GuardrailID,
		Version:     input.Version,
		Source:      models.ContentSource(input.Source),
		Texts:       input.Text,
	})
	if err != nil {
		return h.toolError(ToolApplyGuardrail, err)
	}
	return nil, ApplyResult{ApplyResult: result, Intervened: result.Intervened()}, nil
}
