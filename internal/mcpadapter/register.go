package mcpadapter

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ToolCreateGuardrail = "create_guardrail_full"
	ToolUpdateGuardrail = "update_guardrail_full"
	ToolDeleteGuardrail = "delete_guardrail"
	ToolListGuardrails  = "list_guardrails"
	ToolGetGuardrail    = "get_guardrail"
	ToolExportTerraform = "export_guardrail_to_terraform"
	ToolCreateVersion   = "create_guardrail_version"
	ToolApplyGuardrail  = "apply_guardrail"
)

// Register adds the guardrail tools to server. With readOnly set the tools that change
// guardrails are left out.
func Register(server *mcp.Server, h *Handlers, readOnly bool) {
	destructive := true

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolListGuardrails,
		Description: "List Bedrock guardrails (all pages), or the versions of one guardrail. Optional name and status filters.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, h.ListGuardrails)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolGetGuardrail,
		Description: "Get the full configuration of a guardrail version, including every policy block and tags.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, h.GetGuardrail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolExportTerraform,
		Description: "Export a guardrail version as a Terraform aws_bedrock_guardrail resource block.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, h.ExportTerraform)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolApplyGuardrail,
		Description: "Evaluate text against a guardrail version without invoking a model and report which policies fired.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, h.ApplyGuardrail)

	if readOnly {
		return
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolCreateGuardrail,
		Description: "Create a guardrail with any combination of content, topic, word, sensitive_information and contextual_grounding policies.",
	}, h.CreateGuardrail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolUpdateGuardrail,
		Description: "Partially update a guardrail's DRAFT: only the fields given change; policy blocks can be replaced or removed.",
	}, h.UpdateGuardrail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolDeleteGuardrail,
		Description: "Delete a guardrail, or one numbered version of it.",
		Annotations: &mcp.ToolAnnotations{DestructiveHint: &destructive},
	}, h.DeleteGuardrail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolCreateVersion,
		Description: "Snapshot the guardrail's DRAFT as a new immutable numbered version.",
	}, h.CreateVersion)
}
