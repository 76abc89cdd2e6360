package guardrail

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	rtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/models"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/policy"
)

// Apply evaluates text against a guardrail version without invoking a model.
func (s *Service) Apply(ctx context.Context, req models.ApplyRequest) (models.ApplyResult, error) {
	id := strings.TrimSpace(req.GuardrailID)
	if id == "" {
		return models.ApplyResult{}, &ValidationError{Field: "guardrail_id", Reason: "is required"}
	}

	source := models.ContentSource(strings.ToUpper(strings.TrimSpace(string(req.Source))))
	switch source {
	case "":
		source = models.SourceInput
	case models.SourceInput, models.SourceOutput:
	default:
		return models.ApplyResult{}, &ValidationError{Field: "source", Reason: fmt.Sprintf("%q is not one of INPUT, OUTPUT", req.Source)}
	}

	if len(req.Texts) == 0 {
		return models.ApplyResult{}, &ValidationError{Field: "text", Reason: "is required"}
	}
	content := make([]rtypes.GuardrailContentBlock, 0, len(req.Texts))
	for i, text := range req.Texts {
		if strings.TrimSpace(text) == "" {
			return models.ApplyResult{}, &ValidationError{Field: fmt.Sprintf("text[%d]", i), Reason: "must not be empty"}
		}
		content = append(content, &rtypes.GuardrailContentBlockMemberText{
			Value: rtypes.GuardrailTextBlock{Text: aws.String(text)},
		})
	}

	version := strings.TrimSpace(req.Version)
	if version == "" {
		version = models.DraftVersion
	}

	s.logger.Debug().
		Str("guardrailID", id).
		Str("version", version).
		Str("source", string(source)).
		Int("blocks", len(content)).
		Msg("applying guardrail")

	out, err := s.runtime.ApplyGuardrail(ctx, &bedrockruntime.ApplyGuardrailInput{
		GuardrailIdentifier: aws.String(id),
		GuardrailVersion:    aws.String(version),
		Source:              rtypes.GuardrailContentSource(source),
		Content:             content,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("guardrailID", id).Msg("failed to apply guardrail")
		return models.ApplyResult{}, upstream("ApplyGuardrail", err)
	}

	result := models.ApplyResult{
		Action:       string(out.Action),
		ActionReason: aws.ToString(out.ActionReason),
	}
	for _, o := range out.Outputs {
		result.Outputs = append(result.Outputs, aws.ToString(o.Text))
	}
	for _, a := range out.Assessments {
		result.Findings = append(result.Findings, findings(a)...)
	}

	s.logger.Info().
		Str("guardrailID", id).
		Str("action", result.Action).
		Int("findings", len(result.Findings)).
		Msg("guardrail applied")

	return result, nil
}

// findings flattens one assessment into per-policy hits.
func findings(a rtypes.GuardrailAssessment) []models.Finding {
	var out []models.Finding
	if p := a.ContentPolicy; p != nil {
		for _, f := range p.Filters {
			out = append(out, models.Finding{
				PolicyType: policy.TypeContent,
				Type:       string(f.Type),
				Action:     string(f.Action),
				Detected:   aws.ToBool(f.Detected),
			})
		}
	}
	if p := a.ContextualGroundingPolicy; p != nil {
		for _, f := range p.Filters {
			out = append(out, models.Finding{
				PolicyType: policy.TypeContextualGrounding,
				Type:       string(f.Type),
				Action:     string(f.Action),
				Detected:   aws.ToBool(f.Detected),
			})
		}
	}
	if p := a.SensitiveInformationPolicy; p != nil {
		for _, e := range p.PiiEntities {
			out = append(out, models.Finding{
				PolicyType: policy.TypeSensitiveInformation,
				Type:       string(e.Type),
				Match:      aws.ToString(e.Match),
				Action:     string(e.Action),
				Detected:   aws.ToBool(e.Detected),
			})
		}
		for _, r := range p.Regexes {
			out = append(out, models.Finding{
				PolicyType: policy.TypeSensitiveInformation,
				Name:       aws.ToString(r.Name),
				Match:      aws.ToString(r.Match),
				Action:     string(r.Action),
				Detected:   aws.ToBool(r.Detected),
			})
		}
	}
	if p := a.TopicPolicy; p != nil {
		for _, t := range p.Topics {
			out = append(out, models.Finding{
				PolicyType: policy.TypeTopic,
				Name:       aws.ToString(t.Name),
				Type:       string(t.Type),
				Action:     string(t.Action),
				Detected:   aws.ToBool(t.Detected),
			})
		}
	}
	if p := a.WordPolicy; p != nil {
		for _, w := range p.CustomWords {
			out = append(out, models.Finding{
				PolicyType: policy.TypeWord,
				Match:      aws.ToString(w.Match),
				Action:     string(w.Action),
				Detected:   aws.ToBool(w.Detected),
			})
		}
		for _, w := range p.ManagedWordLists {
			out = append(out, models.Finding{
				PolicyType: policy.TypeWord,
				Type:       string(w.Type),
				Match:      aws.ToString(w.Match),
				Action:     string(w.Action),
				Detected:   aws.ToBool(w.Detected),
			})
		}
	}
	return out
}
