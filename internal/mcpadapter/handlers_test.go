package mcpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/failure"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/guardrail"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/guardrail/mocks"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/models"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/policy"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func newHandlers(t *testing.T) (*Handlers, *mocks.MockManager) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockManager(ctrl)
	logger := zerolog.Nop()
	return NewHandlers(svc, &logger), svc
}

func payloadOf(t *testing.T, res *mcp.CallToolResult) failure.Payload {
	t.Helper()
	if res == nil || !res.IsError {
		t.Fatalf("Expected an error result, got %+v", res)
	}
	payload, ok := res.StructuredContent.(failure.Payload)
	if !ok {
		t.Fatalf("Expected failure.Payload, got %T", res.StructuredContent)
	}

	var fromText failure.Payload
	if err := json.Unmarshal([]byte(res.Content[0].(*mcp.TextContent).Text), &fromText); err != nil {
		t.Fatalf("Expected JSON text content: %v", err)
	}
	if fromText.Kind != payload.Kind {
		t.Errorf("Text and structured content disagree: %s vs %s", fromText.Kind, payload.Kind)
	}
	return payload
}

func TestCreateGuardrail(t *testing.T) {
	h, svc := newHandlers(t)

	input := CreateGuardrailInput{
		Name:                    "finance",
		BlockedInputMessaging:   "blocked",
		BlockedOutputsMessaging: "blocked",
		PolicyConfigs: map[string]map[string]any{
			"topic": {"topicsConfig": []any{map[string]any{"name": "advice", "definition": "Investment advice"}}},
		},
		Tags: map[string]string{"team": "risk"},
	}

	svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req models.CreateRequest) (models.CreateResult, error) {
		if req.Name != "finance" || req.Tags["team"] != "risk" {
			t.Errorf("Unexpected request: %+v", req)
		}
		if _, ok := req.PolicyConfigs["topic"]; !ok {
			t.Error("Expected topic policy to be passed through")
		}
		return models.CreateResult{ID: "gr-1", ARN: "arn:gr-1", Version: "DRAFT"}, nil
	})

	res, out, err := h.CreateGuardrail(context.Background(), nil, input)
	if err != nil || res != nil {
		t.Fatalf("Expected plain output, got res=%v err=%v", res, err)
	}
	if got := out.(models.CreateResult); got.ID != "gr-1" {
		t.Errorf("Expected id gr-1, got %s", got.ID)
	}
}

func TestCreateGuardrail_SchemaError(t *testing.T) {
	h, svc := newHandlers(t)

	svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.CreateResult{}, &guardrail.ValidationError{
		Field: "policy_configs",
		Err: &policy.SchemaValidationError{
			PolicyType:    policy.TypeTopic,
			MissingFields: []string{"topicsConfig[0].definition"},
		},
	})

	res, out, err := h.CreateGuardrail(context.Background(), nil, CreateGuardrailInput{Name: "x"})
	if err != nil {
		t.Fatalf("Expected tool error, not protocol error: %v", err)
	}
	if out != nil {
		t.Errorf("Expected no output, got %v", out)
	}

	payload := payloadOf(t, res)
	if payload.Kind != failure.KindSchemaValidation {
		t.Errorf("Expected schema_validation, got %s", payload.Kind)
	}
	if !slices.Equal(payload.MissingFields, []string{"topicsConfig[0].definition"}) {
		t.Errorf("Unexpected missing fields: %v", payload.MissingFields)
	}
}

func TestUpdateGuardrail_PassesOnlyGivenFields(t *testing.T) {
	h, svc := newHandlers(t)
	description := "x"

	svc.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req models.UpdateRequest) (models.GuardrailConfig, error) {
		if req.Description == nil || *req.Description != "x" {
			t.Errorf("Expected description x, got %v", req.Description)
		}
		if req.Name != nil || req.BlockedInputMessaging != nil || req.PolicyConfigs != nil {
			t.Errorf("Expected other fields untouched: %+v", req)
		}
		return models.GuardrailConfig{ID: req.GuardrailID, Description: "x"}, nil
	})

	_, out, err := h.UpdateGuardrail(context.Background(), nil, UpdateGuardrailInput{GuardrailID: "gr-1", Description: &description})
	if err != nil {
		t.Fatalf("UpdateGuardrail() failed: %v", err)
	}
	if cfg := out.(models.GuardrailConfig); cfg.Description != "x" {
		t.Errorf("Expected updated description, got %q", cfg.Description)
	}
}

func TestDeleteGuardrail(t *testing.T) {
	h, svc := newHandlers(t)
	svc.EXPECT().Delete(gomock.Any(), "gr-1", "").Return(nil)

	_, out, err := h.DeleteGuardrail(context.Background(), nil, GuardrailRefInput{GuardrailID: "gr-1"})
	if err != nil {
		t.Fatalf("DeleteGuardrail() failed: %v", err)
	}
	if !out.(DeleteResult).Deleted {
		t.Error("Expected deleted=true")
	}
}

func TestDeleteGuardrail_NotFound(t *testing.T) {
	h, svc := newHandlers(t)
	svc.EXPECT().Delete(gomock.Any(), "missing", "").Return(&guardrail.UpstreamError{
		Operation: "DeleteGuardrail",
		Code:      guardrail.CodeNotFound,
		Message:   "guardrail not found",
	})

	res, _, err := h.DeleteGuardrail(context.Background(), nil, GuardrailRefInput{GuardrailID: "missing"})
	if err != nil {
		t.Fatalf("Expected tool error, not protocol error: %v", err)
	}

	payload := payloadOf(t, res)
	if payload.Kind != failure.KindUpstream || payload.Code != guardrail.CodeNotFound {
		t.Errorf("Expected upstream not-found, got %+v", payload)
	}
}

func TestListGuardrails(t *testing.T) {
	h, svc := newHandlers(t)
	svc.EXPECT().List(gomock.Any(), models.ListFilter{NameContains: "fin"}).Return([]models.GuardrailSummary{
		{ID: "gr-1", Name: "finance"},
		{ID: "gr-2", Name: "finops"},
	}, nil)

	_, out, err := h.ListGuardrails(context.Background(), nil, ListGuardrailsInput{NameContains: "fin"})
	if err != nil {
		t.Fatalf("ListGuardrails() failed: %v", err)
	}
	list := out.(ListResult)
	if list.Count != 2 || list.Guardrails[1].ID != "gr-2" {
		t.Errorf("Unexpected list: %+v", list)
	}
}

func TestGetGuardrail_Unexpected(t *testing.T) {
	h, svc := newHandlers(t)
	svc.EXPECT().Get(gomock.Any(), "gr-1", "2").Return(models.GuardrailConfig{}, errors.New("boom"))

	res, _, err := h.GetGuardrail(context.Background(), nil, GuardrailRefInput{GuardrailID: "gr-1", Version: "2"})
	if err != nil {
		t.Fatalf("Expected tool error, not protocol error: %v", err)
	}
	if payload := payloadOf(t, res); payload.Kind != failure.KindInternal {
		t.Errorf("Expected internal, got %s", payload.Kind)
	}
}

func TestExportTerraform(t *testing.T) {
	h, svc := newHandlers(t)
	hcl := "resource \"aws_bedrock_guardrail\" \"main\" {\n}\n"
	svc.EXPECT().ExportTerraform(gomock.Any(), "gr-1", "", "main").Return(hcl, nil)

	res, out, err := h.ExportTerraform(context.Background(), nil, ExportTerraformInput{GuardrailID: "gr-1", ResourceName: "main"})
	if err != nil {
		t.Fatalf("ExportTerraform() failed: %v", err)
	}
	if text := res.Content[0].(*mcp.TextContent).Text; text != hcl {
		t.Errorf("Expected HCL as text content, got %q", text)
	}
	if export := out.(ExportResult); export.Version != models.DraftVersion || export.Terraform != hcl {
		t.Errorf("Unexpected export result: %+v", export)
	}
}

func TestApplyGuardrail(t *testing.T) {
	h, svc := newHandlers(t)
	svc.EXPECT().Apply(gomock.Any(), models.ApplyRequest{
		GuardrailID: "gr-1",
		Source:      models.SourceOutput,
		Texts:       []string{"buy this stock"},
	}).Return(models.ApplyResult{Action: "GUARDRAIL_INTERVENED"}, nil)

	_, out, err := h.ApplyGuardrail(context.Background(), nil, ApplyGuardrailInput{
		GuardrailID: "gr-1",
		Source:      "OUTPUT",
		Text:        []string{"buy this stock"},
	})
	if err != nil {
		t.Fatalf("ApplyGuardrail() failed: %v", err)
	}
	if !out.(ApplyResult).Intervened {
		t.Error("Expected intervened=true")
	}
}

func TestCreateVersion(t *testing.T) {
	h, svc := newHandlers(t)
	svc.EXPECT().CreateVersion(gomock.Any(), "gr-1", "first").Return(models.GuardrailVersion{GuardrailID: "gr-1", Version: "1"}, nil)

	_, out, err := h.CreateVersion(context.Background(), nil, CreateVersionInput{GuardrailID: "gr-1", Description: "first"})
	if err != nil {
		t.Fatalf("CreateVersion() failed: %v", err)
	}
	if v := out.(models.GuardrailVersion); v.Version != "1" {
		t.Errorf("Expected version 1, got %s", v.Version)
	}
}

func TestToolError_MessageIsReadable(t *testing.T) {
	h, _ := newHandlers(t)

	res, _, _ := h.toolError(ToolGetGuardrail, &guardrail.ValidationError{Field: "name", Reason: "is required"})

	text := res.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, `"kind":"validation"`) || !strings.Contains(text, "name: is required") {
		t.Errorf("Unexpected text content: %s", text)
	}
}
