package guardrail

import (
	"maps"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrock/types"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/models"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/policy"
)

// policyConfigs is the request-side shape shared by CreateGuardrail and UpdateGuardrail.
type policyConfigs struct {
	content   *types.GuardrailContentPolicyConfig
	grounding *types.GuardrailContextualGroundingPolicyConfig
	sensitive *types.GuardrailSensitiveInformationPolicyConfig
	topic     *types.GuardrailTopicPolicyConfig
	word      *types.GuardrailWordPolicyConfig
}

func toPolicyConfigs(set policy.Set) policyConfigs {
	var pc policyConfigs
	if p := set.Content; p != nil {
		pc.content = &types.GuardrailContentPolicyConfig{}
		if p.Tier != "" {
			pc.content.TierConfig = &types.GuardrailContentFiltersTierConfig{
				TierName: types.GuardrailContentFiltersTierName(p.Tier),
			}
		}
		for _, f := range p.Filters {
			pc.content.FiltersConfig = append(pc.content.FiltersConfig, types.GuardrailContentFilterConfig{
				Type:             types.GuardrailContentFilterType(f.Type),
				InputStrength:    types.GuardrailFilterStrength(f.InputStrength),
				OutputStrength:   types.GuardrailFilterStrength(f.OutputStrength),
				InputModalities:  enums[types.GuardrailModality](f.InputModalities),
				OutputModalities: enums[types.GuardrailModality](f.OutputModalities),
				InputAction:      types.GuardrailContentFilterAction(f.InputAction),
				OutputAction:     types.GuardrailContentFilterAction(f.OutputAction),
				InputEnabled:     aws.Bool(f.InputEnabled),
				OutputEnabled:    aws.Bool(f.OutputEnabled),
			})
		}
	}
	if p := set.ContextualGrounding; p != nil {
		pc.grounding = &types.GuardrailContextualGroundingPolicyConfig{}
		for _, f := range p.Filters {
			pc.grounding.FiltersConfig = append(pc.grounding.FiltersConfig, types.GuardrailContextualGroundingFilterConfig{
				Type:      types.GuardrailContextualGroundingFilterType(f.Type),
				Threshold: aws.Float64(f.Threshold),
				Action:    types.GuardrailContextualGroundingAction(f.Action),
				Enabled:   aws.Bool(f.Enabled),
			})
		}
	}
	if p := set.SensitiveInformation; p != nil {
		pc.sensitive = &types.GuardrailSensitiveInformationPolicyConfig{}
		for _, e := range p.PIIEntities {
			pc.sensitive.PiiEntitiesConfig = append(pc.sensitive.PiiEntitiesConfig, types.GuardrailPiiEntityConfig{
				Type:          types.GuardrailPiiEntityType(e.Type),
				Action:        types.GuardrailSensitiveInformationAction(e.Action),
				InputAction:   types.GuardrailSensitiveInformationAction(e.InputAction),
				OutputAction:  types.GuardrailSensitiveInformationAction(e.OutputAction),
				InputEnabled:  aws.Bool(e.InputEnabled),
				OutputEnabled: aws.Bool(e.OutputEnabled),
			})
		}
		for _, r := range p.Regexes {
			pc.sensitive.RegexesConfig = append(pc.sensitive.RegexesConfig, types.GuardrailRegexConfig{
				Name:          aws.String(r.Name),
				Pattern:       aws.String(r.Pattern),
				Description:   optional(r.Description),
				Action:        types.GuardrailSensitiveInformationAction(r.Action),
				InputAction:   types.GuardrailSensitiveInformationAction(r.InputAction),
				OutputAction:  types.GuardrailSensitiveInformationAction(r.OutputAction),
				InputEnabled:  aws.Bool(r.InputEnabled),
				OutputEnabled: aws.Bool(r.OutputEnabled),
			})
		}
	}
	if p := set.Topic; p != nil {
		pc.topic = &types.GuardrailTopicPolicyConfig{}
		if p.Tier != "" {
			pc.topic.TierConfig = &types.GuardrailTopicsTierConfig{TierName: types.GuardrailTopicsTierName(p.Tier)}
		}
		for _, t := range p.Topics {
			pc.topic.TopicsConfig = append(pc.topic.TopicsConfig, types.GuardrailTopicConfig{
				Name:          aws.String(t.Name),
				Definition:    aws.String(t.Definition),
				Examples:      t.Examples,
				Type:          types.GuardrailTopicType(t.Type),
				InputAction:   types.GuardrailTopicAction(t.InputAction),
				OutputAction:  types.GuardrailTopicAction(t.OutputAction),
				InputEnabled:  aws.Bool(t.InputEnabled),
				OutputEnabled: aws.Bool(t.OutputEnabled),
			})
		}
	}
	if p := set.Word; p != nil {
		pc.word = &types.GuardrailWordPolicyConfig{}
		for _, w := range p.Words {
			pc.word.WordsConfig = append(pc.word.WordsConfig, types.GuardrailWordConfig{
				Text:          aws.String(w.Text),
				InputAction:   types.GuardrailWordAction(w.InputAction),
				OutputAction:  types.GuardrailWordAction(w.OutputAction),
				InputEnabled:  aws.Bool(w.InputEnabled),
				OutputEnabled: aws.Bool(w.OutputEnabled),
			})
		}
		for _, m := range p.ManagedWordLists {
			pc.word.ManagedWordListsConfig = append(pc.word.ManagedWordListsConfig, types.GuardrailManagedWordsConfig{
				Type:          types.GuardrailManagedWordsType(m.Type),
				InputAction:   types.GuardrailWordAction(m.InputAction),
				OutputAction:  types.GuardrailWordAction(m.OutputAction),
				InputEnabled:  aws.Bool(m.InputEnabled),
				OutputEnabled: aws.Bool(m.OutputEnabled),
			})
		}
	}
	return pc
}

// fromGetOutput converts a GetGuardrail response into the domain configuration.
// Tags are not part of the response and are filled in by the caller.
func fromGetOutput(out *bedrock.GetGuardrailOutput) models.GuardrailConfig {
	cfg := models.GuardrailConfig{
		ID:                      aws.ToString(out.GuardrailId),
		ARN:                     aws.ToString(out.GuardrailArn),
		Name:                    aws.ToString(out.Name),
		Description:             aws.ToString(out.Description),
		Version:                 aws.ToString(out.Version),
		Status:                  models.GuardrailStatus(out.Status),
		StatusReasons:           out.StatusReasons,
		FailureRecommendations:  out.FailureRecommendations,
		BlockedInputMessaging:   aws.ToString(out.BlockedInputMessaging),
		BlockedOutputsMessaging: aws.ToString(out.BlockedOutputsMessaging),
		KMSKeyARN:               aws.ToString(out.KmsKeyArn),
		CreatedAt:               aws.ToTime(out.CreatedAt),
		UpdatedAt:               aws.ToTime(out.UpdatedAt),
	}
	if out.CrossRegionDetails != nil {
		cfg.CrossRegionProfile = firstNonEmpty(aws.ToString(out.CrossRegionDetails.GuardrailProfileArn), aws.ToString(out.CrossRegionDetails.GuardrailProfileId))
	}

	if p := out.ContentPolicy; p != nil {
		block := &policy.ContentPolicy{}
		if p.Tier != nil {
			block.Tier = string(p.Tier.TierName)
		}
		for _, f := range p.Filters {
			block.Filters = append(block.Filters, policy.ContentFilter{
				Type:             string(f.Type),
				InputStrength:    string(f.InputStrength),
				OutputStrength:   string(f.OutputStrength),
				InputModalities:  strs(f.InputModalities),
				OutputModalities: strs(f.OutputModalities),
				InputAction:      string(f.InputAction),
				OutputAction:     string(f.OutputAction),
				InputEnabled:     enabled(f.InputEnabled),
				OutputEnabled:    enabled(f.OutputEnabled),
			})
		}
		cfg.Policies.Put(block)
	}
	if p := out.ContextualGroundingPolicy; p != nil {
		block := &policy.ContextualGroundingPolicy{}
		for _, f := range p.Filters {
			block.Filters = append(block.Filters, policy.GroundingFilter{
				Type:      string(f.Type),
				Threshold: aws.ToFloat64(f.Threshold),
				Action:    string(f.Action),
				Enabled:   enabled(f.Enabled),
			})
		}
		cfg.Policies.Put(block)
	}
	if p := out.SensitiveInformationPolicy; p != nil {
		block := &policy.SensitiveInformationPolicy{}
		for _, e := range p.PiiEntities {
			block.PIIEntities = append(block.PIIEntities, policy.PIIEntity{
				Type:          string(e.Type),
				Action:        string(e.Action),
				InputAction:   string(e.InputAction),
				OutputAction:  string(e.OutputAction),
				InputEnabled:  enabled(e.InputEnabled),
				OutputEnabled: enabled(e.OutputEnabled),
			})
		}
		for _, r := range p.Regexes {
			block.Regexes = append(block.Regexes, policy.Regex{
				Name:          aws.ToString(r.Name),
				Pattern:       aws.ToString(r.Pattern),
				Description:   aws.ToString(r.Description),
				Action:        string(r.Action),
				InputAction:   string(r.InputAction),
				OutputAction:  string(r.OutputAction),
				InputEnabled:  enabled(r.InputEnabled),
				OutputEnabled: enabled(r.OutputEnabled),
			})
		}
		cfg.Policies.Put(block)
	}
	if p := out.TopicPolicy; p != nil {
		block := &policy.TopicPolicy{}
		if p.Tier != nil {
			block.Tier = string(p.Tier.TierName)
		}
		for _, t := range p.Topics {
			block.Topics = append(block.Topics, policy.Topic{
				Name:          aws.ToString(t.Name),
				Definition:    aws.ToString(t.Definition),
				Examples:      nonNil(t.Examples),
				Type:          string(t.Type),
				InputAction:   string(t.InputAction),
				OutputAction:  string(t.OutputAction),
				InputEnabled:  enabled(t.InputEnabled),
				OutputEnabled: enabled(t.OutputEnabled),
			})
		}
		cfg.Policies.Put(block)
	}
	if p := out.WordPolicy; p != nil {
		block := &policy.WordPolicy{}
		for _, w := range p.Words {
			block.Words = append(block.Words, policy.Word{
				Text:          aws.ToString(w.Text),
				InputAction:   string(w.InputAction),
				OutputAction:  string(w.OutputAction),
				InputEnabled:  enabled(w.InputEnabled),
				OutputEnabled: enabled(w.OutputEnabled),
			})
		}
		for _, m := range p.ManagedWordLists {
			block.ManagedWordLists = append(block.ManagedWordLists, policy.ManagedWordList{
				Type:          string(m.Type),
				InputAction:   string(m.InputAction),
				OutputAction:  string(m.OutputAction),
				InputEnabled:  enabled(m.InputEnabled),
				OutputEnabled: enabled(m.OutputEnabled),
			})
		}
		cfg.Policies.Put(block)
	}
	if p := out.AutomatedReasoningPolicy; p != nil {
		cfg.AutomatedReasoning = &policy.AutomatedReasoningPolicy{
			Policies:            nonNil(p.Policies),
			ConfidenceThreshold: p.ConfidenceThreshold,
		}
	}
	return cfg
}

func toAutomatedReasoning(p *policy.AutomatedReasoningPolicy) *types.GuardrailAutomatedReasoningPolicyConfig {
	if p == nil {
		return nil
	}
	return &types.GuardrailAutomatedReasoningPolicyConfig{
		Policies:            p.Policies,
		ConfidenceThreshold: p.ConfidenceThreshold,
	}
}

func fromSummary(s types.GuardrailSummary) models.GuardrailSummary {
	summary := models.GuardrailSummary{
		ID:          aws.ToString(s.Id),
		ARN:         aws.ToString(s.Arn),
		Name:        aws.ToString(s.Name),
		Description: aws.ToString(s.Description),
		Status:      models.GuardrailStatus(s.Status),
		Version:     aws.ToString(s.Version),
		CreatedAt:   aws.ToTime(s.CreatedAt),
		UpdatedAt:   aws.ToTime(s.UpdatedAt),
	}
	if s.CrossRegionDetails != nil {
		summary.CrossRegionProfile = firstNonEmpty(aws.ToString(s.CrossRegionDetails.GuardrailProfileArn), aws.ToString(s.CrossRegionDetails.GuardrailProfileId))
	}
	return summary
}

// toTags sorts by key so the request body is stable.
func toTags(tags map[string]string) []types.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]types.Tag, 0, len(tags))
	for _, k := range slices.Sorted(maps.Keys(tags)) {
		out = append(out, types.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}

func fromTags(tags []types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for _, t := range tags {
		out[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return out
}

func crossRegion(profile string) *types.GuardrailCrossRegionConfig {
	if profile == "" {
		return nil
	}
	return &types.GuardrailCrossRegionConfig{GuardrailProfileIdentifier: aws.String(profile)}
}

func enums[T ~string](values []string) []T {
	if values == nil {
		return nil
	}
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}

func strs[T ~string](values []T) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// enabled treats an unset flag as on, matching the service default.
func enabled(b *bool) bool {
	return b == nil || *b
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
