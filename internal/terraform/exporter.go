// Package terraform renders guardrail configurations as aws_bedrock_guardrail resources.
package terraform

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/models"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/policy"
	"github.com/zclconf/go-cty/cty"
)

const (
	ResourceType        = "aws_bedrock_guardrail"
	DefaultResourceName = "bedrock_guardrail"
)

// ExportError means the configuration cannot be expressed as a valid resource.
type ExportError struct {
	Field  string
	Reason string
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("cannot export guardrail: %s %s", e.Field, e.Reason)
}

type Exporter struct {
	defaultName string
}

func NewExporter(defaultResourceName string) *Exporter {
	name := sanitizeName(defaultResourceName)
	if name == "" {
		name = DefaultResourceName
	}
	return &Exporter{defaultName: name}
}

// Export renders cfg as a single resource block. Output only depends on cfg and
// resourceName, so repeated exports are byte-identical.
func (e *Exporter) Export(cfg models.GuardrailConfig, resourceName string) (string, error) {
	for _, required := range []struct{ field, value string }{
		{"name", cfg.Name},
		{"blocked_input_messaging", cfg.BlockedInputMessaging},
		{"blocked_outputs_messaging", cfg.BlockedOutputsMessaging},
	} {
		if strings.TrimSpace(required.value) == "" {
			return "", &ExportError{Field: required.field, Reason: "is empty"}
		}
	}

	name := sanitizeName(resourceName)
	if name == "" {
		name = e.defaultName
	}

	file := hclwrite.NewEmptyFile()
	root := file.Body()
	if cfg.ID != "" {
		root.AppendUnstructuredTokens(comment(fmt.Sprintf("Exported from guardrail %s (version %s)", cfg.ID, versionOrDraft(cfg.Version))))
	}

	if ar := cfg.AutomatedReasoning; ar != nil && len(ar.Policies) > 0 {
		root.AppendUnstructuredTokens(comment("Automated reasoning policies are attached outside this resource: " + strings.Join(ar.Policies, ", ")))
	}

	body := root.AppendNewBlock("resource", []string{ResourceType, name}).Body()
	body.SetAttributeValue("name", cty.StringVal(cfg.Name))
	setOptionalString(body, "description", cfg.Description)
	body.SetAttributeValue("blocked_input_messaging", cty.StringVal(cfg.BlockedInputMessaging))
	body.SetAttributeValue("blocked_outputs_messaging", cty.StringVal(cfg.BlockedOutputsMessaging))
	setOptionalString(body, "kms_key_arn", cfg.KMSKeyARN)

	writeContent(body, cfg.Policies.Content)
	writeGrounding(body, cfg.Policies.ContextualGrounding)
	writeSensitive(body, cfg.Policies.SensitiveInformation)
	writeTopic(body, cfg.Policies.Topic)
	writeWord(body, cfg.Policies.Word)

	if cfg.CrossRegionProfile != "" {
		body.AppendNewline()
		cross := body.AppendNewBlock("cross_region_config", nil).Body()
		cross.SetAttributeValue("guardrail_profile_identifier", cty.StringVal(cfg.CrossRegionProfile))
	}

	if len(cfg.Tags) > 0 {
		tags := make(map[string]cty.Value, len(cfg.Tags))
		for k, v := range cfg.Tags {
			tags[k] = cty.StringVal(v)
		}
		body.AppendNewline()
		// cty map iteration is ordered by key.
		body.SetAttributeValue("tags", cty.MapVal(tags))
	}

	return string(hclwrite.Format(file.Bytes())), nil
}

func writeContent(body *hclwrite.Body, p *policy.ContentPolicy) {
	if p == nil {
		return
	}
	body.AppendNewline()
	block := body.AppendNewBlock("content_policy_config", nil).Body()
	for _, f := range p.Filters {
		filter := block.AppendNewBlock("filters_config", nil).Body()
		filter.SetAttributeValue("type", cty.StringVal(f.Type))
		filter.SetAttributeValue("input_strength", cty.StringVal(f.InputStrength))
		filter.SetAttributeValue("output_strength", cty.StringVal(f.OutputStrength))
		setStringList(filter, "input_modalities", f.InputModalities)
		setStringList(filter, "output_modalities", f.OutputModalities)
		setDetect(filter, f.InputAction, f.OutputAction, f.InputEnabled, f.OutputEnabled)
	}
	writeTier(block, p.Tier)
}

func writeGrounding(body *hclwrite.Body, p *policy.ContextualGroundingPolicy) {
	if p == nil {
		return
	}
	body.AppendNewline()
	block := body.AppendNewBlock("contextual_grounding_policy_config", nil).Body()
	for _, f := range p.Filters {
		filter := block.AppendNewBlock("filters_config", nil).Body()
		filter.SetAttributeValue("type", cty.StringVal(f.Type))
		filter.SetAttributeValue("threshold", cty.NumberFloatVal(f.Threshold))
	}
}

func writeSensitive(body *hclwrite.Body, p *policy.SensitiveInformationPolicy) {
	if p == nil {
		return
	}
	body.AppendNewline()
	block := body.AppendNewBlock("sensitive_information_policy_config", nil).Body()
	for _, e := range p.PIIEntities {
		entity := block.AppendNewBlock("pii_entities_config", nil).Body()
		entity.SetAttributeValue("type", cty.StringVal(e.Type))
		entity.SetAttributeValue("action", cty.StringVal(e.Action))
		setDetect(entity, e.InputAction, e.OutputAction, e.InputEnabled, e.OutputEnabled)
	}
	for _, r := range p.Regexes {
		regex := block.AppendNewBlock("regexes_config", nil).Body()
		regex.SetAttributeValue("name", cty.StringVal(r.Name))
		setOptionalString(regex, "description", r.Description)
		regex.SetAttributeValue("pattern", cty.StringVal(r.Pattern))
		regex.SetAttributeValue("action", cty.StringVal(r.Action))
		setDetect(regex, r.InputAction, r.OutputAction, r.InputEnabled, r.OutputEnabled)
	}
}

func writeTopic(body *hclwrite.Body, p *policy.TopicPolicy) {
	if p == nil {
		return
	}
	body.AppendNewline()
	block := body.AppendNewBlock("topic_policy_config", nil).Body()
	for _, t := range p.Topics {
		topic := block.AppendNewBlock("topics_config", nil).Body()
		topic.SetAttributeValue("name", cty.StringVal(t.Name))
		topic.SetAttributeValue("definition", cty.StringVal(t.Definition))
		topic.SetAttributeValue("examples", stringList(t.Examples))
		topic.SetAttributeValue("type", cty.StringVal(t.Type))
		setDetect(topic, t.InputAction, t.OutputAction, t.InputEnabled, t.OutputEnabled)
	}
	writeTier(block, p.Tier)
}

func writeWord(body *hclwrite.Body, p *policy.WordPolicy) {
	if p == nil {
		return
	}
	body.AppendNewline()
	block := body.AppendNewBlock("word_policy_config", nil).Body()
	for _, m := range p.ManagedWordLists {
		list := block.AppendNewBlock("managed_word_lists_config", nil).Body()
		list.SetAttributeValue("type", cty.StringVal(m.Type))
		setDetect(list, m.InputAction, m.OutputAction, m.InputEnabled, m.OutputEnabled)
	}
	for _, w := range p.Words {
		word := block.AppendNewBlock("words_config", nil).Body()
		word.SetAttributeValue("text", cty.StringVal(w.Text))
		setDetect(word, w.InputAction, w.OutputAction, w.InputEnabled, w.OutputEnabled)
	}
}

func writeTier(body *hclwrite.Body, tier string) {
	if tier == "" {
		return
	}
	body.AppendNewBlock("tier_config", nil).Body().SetAttributeValue("tier_name", cty.StringVal(tier))
}

func setDetect(body *hclwrite.Body, inputAction, outputAction string, inputEnabled, outputEnabled bool) {
	setOptionalString(body, "input_action", inputAction)
	setOptionalString(body, "output_action", outputAction)
	body.SetAttributeValue("input_enabled", cty.BoolVal(inputEnabled))
	body.SetAttributeValue("output_enabled", cty.BoolVal(outputEnabled))
}

func setOptionalString(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}

func setStringList(body *hclwrite.Body, name string, values []string) {
	if len(values) > 0 {
		body.SetAttributeValue(name, stringList(values))
	}
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	items := make([]cty.Value, len(values))
	for i, v := range values {
		items[i] = cty.StringVal(v)
	}
	return cty.ListVal(items)
}

func comment(text string) hclwrite.Tokens {
	return hclwrite.Tokens{
		{Type: hclsyntax.TokenComment, Bytes: []byte("# " + strings.ReplaceAll(text, "\n", " ") + "\n")},
	}
}

// sanitizeName maps s onto a valid Terraform resource name: letters, digits, underscores
// and hyphens, starting with a letter or underscore.
func sanitizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if c := name[0]; (c >= '0' && c <= '9') || c == '-' {
		name = "_" + name
	}
	return name
}

func versionOrDraft(v string) string {
	if v == "" {
		return models.DraftVersion
	}
	return v
}
