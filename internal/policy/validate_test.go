package policy

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func minimalFields() map[Type]func() map[string]any {
	return map[Type]func() map[string]any{
		TypeContent: func() map[string]any {
			return map[string]any{
				"filtersConfig": []any{
					map[string]any{"type": "HATE", "inputStrength": "HIGH", "outputStrength": "HIGH"},
				},
			}
		},
		TypeTopic: func() map[string]any {
			return map[string]any{
				"topicsConfig": []any{
					map[string]any{"name": "investment-advice", "definition": "Recommendations about specific investments."},
				},
			}
		},
		TypeWord: func() map[string]any {
			return map[string]any{
				"wordsConfig": []any{map[string]any{"text": "forbidden"}},
			}
		},
		TypeSensitiveInformation: func() map[string]any {
			return map[string]any{
				"piiEntitiesConfig": []any{map[string]any{"type": "EMAIL", "action": "ANONYMIZE"}},
			}
		},
		TypeContextualGrounding: func() map[string]any {
			return map[string]any{
				"filtersConfig": []any{map[string]any{"type": "GROUNDING", "threshold": 0.75}},
			}
		},
	}
}

func TestValidate_MinimalFieldSets(t *testing.T) {
	for policyType, fields := range minimalFields() {
		t.Run(string(policyType), func(t *testing.T) {
			block, err := Validate(string(policyType), fields())
			if err != nil {
				t.Fatalf("Validate() failed: %v", err)
			}
			if block.Type() != policyType {
				t.Errorf("Expected block of type %s, got %s", policyType, block.Type())
			}
		})
	}
}

func TestValidate_AppliesDefaults(t *testing.T) {
	fields := minimalFields()

	block, err := Validate("topic", fields[TypeTopic]())
	if err != nil {
		t.Fatalf("Validate(topic) failed: %v", err)
	}
	topic := block.(*TopicPolicy).Topics[0]
	if topic.Type != "DENY" {
		t.Errorf("Expected topic type DENY, got %q", topic.Type)
	}
	if topic.Examples == nil || len(topic.Examples) != 0 {
		t.Errorf("Expected empty examples list, got %#v", topic.Examples)
	}
	if topic.InputAction != "BLOCK" || !topic.InputEnabled || !topic.OutputEnabled {
		t.Errorf("Expected detect defaults, got %+v", topic)
	}

	block, err = Validate("content", fields[TypeContent]())
	if err != nil {
		t.Fatalf("Validate(content) failed: %v", err)
	}
	filter := block.(*ContentPolicy).Filters[0]
	if !reflect.DeepEqual(filter.InputModalities, []string{"TEXT"}) || !reflect.DeepEqual(filter.OutputModalities, []string{"TEXT"}) {
		t.Errorf("Expected TEXT modalities, got %v / %v", filter.InputModalities, filter.OutputModalities)
	}

	block, err = Validate("sensitive_information", fields[TypeSensitiveInformation]())
	if err != nil {
		t.Fatalf("Validate(sensitive_information) failed: %v", err)
	}
	pii := block.(*SensitiveInformationPolicy).PIIEntities[0]
	if pii.InputAction != "ANONYMIZE" || pii.OutputAction != "ANONYMIZE" {
		t.Errorf("Expected detect actions to follow the entity action, got %q / %q", pii.InputAction, pii.OutputAction)
	}

	block, err = Validate("contextual_grounding", fields[TypeContextualGrounding]())
	if err != nil {
		t.Fatalf("Validate(contextual_grounding) failed: %v", err)
	}
	grounding := block.(*ContextualGroundingPolicy).Filters[0]
	if grounding.Action != "BLOCK" || !grounding.Enabled || grounding.Threshold != 0.75 {
		t.Errorf("Unexpected grounding filter: %+v", grounding)
	}
}

func TestValidate_MissingRequiredField(t *testing.T) {
	tests := []struct {
		name       string
		policyType Type
		mutate     func(map[string]any)
		missing    string
	}{
		{
			name:       "content filtersConfig",
			policyType: TypeContent,
			mutate:     func(m map[string]any) { delete(m, "filtersConfig") },
			missing:    "filtersConfig",
		},
		{
			name:       "content filter inputStrength",
			policyType: TypeContent,
			mutate:     func(m map[string]any) { delete(firstElem(m, "filtersConfig"), "inputStrength") },
			missing:    "filtersConfig[0].inputStrength",
		},
		{
			name:       "topic definition",
			policyType: TypeTopic,
			mutate:     func(m map[string]any) { delete(firstElem(m, "topicsConfig"), "definition") },
			missing:    "topicsConfig[0].definition",
		},
		{
			name:       "topic name blank",
			policyType: TypeTopic,
			mutate:     func(m map[string]any) { firstElem(m, "topicsConfig")["name"] = "  " },
			missing:    "topicsConfig[0].name",
		},
		{
			name:       "word lists",
			policyType: TypeWord,
			mutate:     func(m map[string]any) { delete(m, "wordsConfig") },
			missing:    "wordsConfig",
		},
		{
			name:       "word text",
			policyType: TypeWord,
			mutate:     func(m map[string]any) { delete(firstElem(m, "wordsConfig"), "text") },
			missing:    "wordsConfig[0].text",
		},
		{
			name:       "pii lists",
			policyType: TypeSensitiveInformation,
			mutate:     func(m map[string]any) { m["piiEntitiesConfig"] = []any{} },
			missing:    "piiEntitiesConfig",
		},
		{
			name:       "pii action",
			policyType: TypeSensitiveInformation,
			mutate:     func(m map[string]any) { delete(firstElem(m, "piiEntitiesConfig"), "action") },
			missing:    "piiEntitiesConfig[0].action",
		},
		{
			name:       "grounding threshold",
			policyType: TypeContextualGrounding,
			mutate:     func(m map[string]any) { delete(firstElem(m, "filtersConfig"), "threshold") },
			missing:    "filtersConfig[0].threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := minimalFields()[tt.policyType]()
			tt.mutate(fields)

			_, err := Validate(string(tt.policyType), fields)

			var verr *SchemaValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *SchemaValidationError, got %T (%v)", err, err)
			}
			if !reflect.DeepEqual(verr.MissingFields, []string{tt.missing}) {
				t.Errorf("Expected missing %q, got %v", tt.missing, verr.MissingFields)
			}
			if verr.PolicyType != tt.policyType {
				t.Errorf("Expected policy type %s, got %s", tt.policyType, verr.PolicyType)
			}
		})
	}
}

func TestValidate_UnsupportedTypeIsDistinct(t *testing.T) {
	_, err := Validate("image_moderation", map[string]any{})

	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("Expected ErrUnsupportedType, got %v", err)
	}
	if errors.Is(err, ErrSchemaValidation) {
		t.Error("Unsupported type must not be reported as a schema validation failure")
	}

	var uerr *UnsupportedTypeError
	if !errors.As(err, &uerr) || uerr.PolicyType != "image_moderation" {
		t.Errorf("Expected UnsupportedTypeError naming the type, got %v", err)
	}
}

func TestValidate_UnknownFieldsRejected(t *testing.T) {
	fields := minimalFields()[TypeTopic]()
	fields["zeta"] = true
	firstElem(fields, "topicsConfig")["alpha"] = "x"

	_, err := Validate("topic", fields)

	var verr *SchemaValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *SchemaValidationError, got %v", err)
	}
	want := []string{"zeta", "topicsConfig[0].alpha"}
	if !reflect.DeepEqual(verr.UnknownFields, want) {
		t.Errorf("Expected unknown fields %v, got %v", want, verr.UnknownFields)
	}
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name       string
		policyType Type
		mutate     func(map[string]any)
		contains   string
	}{
		{
			name:       "strength outside enum",
			policyType: TypeContent,
			mutate:     func(m map[string]any) { firstElem(m, "filtersConfig")["inputStrength"] = "EXTREME" },
			contains:   "filtersConfig[0].inputStrength",
		},
		{
			name:       "prompt attack output strength",
			policyType: TypeContent,
			mutate: func(m map[string]any) {
				f := firstElem(m, "filtersConfig")
				f["type"] = "PROMPT_ATTACK"
				f["outputStrength"] = "HIGH"
			},
			contains: "outputStrength: must be NONE for PROMPT_ATTACK filters",
		},
		{
			name:       "threshold above range",
			policyType: TypeContextualGrounding,
			mutate:     func(m map[string]any) { firstElem(m, "filtersConfig")["threshold"] = 1.5 },
			contains:   "filtersConfig[0].threshold: must be between 0 and 0.99",
		},
		{
			name:       "boolean as string",
			policyType: TypeWord,
			mutate:     func(m map[string]any) { firstElem(m, "wordsConfig")["inputEnabled"] = "yes" },
			contains:   "wordsConfig[0].inputEnabled: must be a boolean",
		},
		{
			name:       "unknown tier",
			policyType: TypeContent,
			mutate:     func(m map[string]any) { m["tierName"] = "PREMIUM" },
			contains:   `tierName: "PREMIUM" is not one of CLASSIC, STANDARD`,
		},
		{
			name:       "list element not an object",
			policyType: TypeTopic,
			mutate:     func(m map[string]any) { m["topicsConfig"] = []any{"investment"} },
			contains:   "topicsConfig[0]: must be an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := minimalFields()[tt.policyType]()
			tt.mutate(fields)

			_, err := Validate(string(tt.policyType), fields)

			var verr *SchemaValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *SchemaValidationError, got %v", err)
			}
			if !strings.Contains(strings.Join(verr.InvalidFields, "\n"), tt.contains) {
				t.Errorf("Expected invalid entry containing %q, got %v", tt.contains, verr.InvalidFields)
			}
		})
	}
}

func TestValidate_EnumValuesNormalized(t *testing.T) {
	block, err := Validate("Content", map[string]any{
		"filtersConfig": []any{
			map[string]any{"type": "prompt_attack", "inputStrength": "high", "outputStrength": "none"},
		},
	})
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	filter := block.(*ContentPolicy).Filters[0]
	if filter.Type != "PROMPT_ATTACK" || filter.InputStrength != "HIGH" || filter.OutputStrength != "NONE" {
		t.Errorf("Expected upper-cased enum values, got %+v", filter)
	}
}

func TestValidate_Tier(t *testing.T) {
	fields := minimalFields()[TypeTopic]()
	fields["tierName"] = "standard"

	block, err := Validate("topic", fields)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if tier := block.(*TopicPolicy).Tier; tier != "STANDARD" {
		t.Errorf("Expected STANDARD tier, got %q", tier)
	}

	block, err = Validate("content", minimalFields()[TypeContent]())
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if tier := block.(*ContentPolicy).Tier; tier != "" {
		t.Errorf("Expected no tier when omitted, got %q", tier)
	}
}

func TestSchemaValidationError_ReportsEverythingMissingFirst(t *testing.T) {
	_, err := Validate("topic", map[string]any{
		"topicsConfig": []any{
			map[string]any{"name": "x", "type": "ALLOW", "extra": 1},
		},
	})

	var verr *SchemaValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *SchemaValidationError, got %v", err)
	}
	if len(verr.MissingFields) != 1 || len(verr.UnknownFields) != 1 || len(verr.InvalidFields) != 1 {
		t.Fatalf("Expected one entry of each kind, got %+v", verr)
	}

	msg := verr.Error()
	missing := strings.Index(msg, "missing required fields")
	unknown := strings.Index(msg, "unknown fields")
	invalid := strings.Index(msg, "invalid fields")
	if missing < 0 || missing > unknown || unknown > invalid {
		t.Errorf("Expected missing, unknown, invalid order in %q", msg)
	}
}

func TestValidateAll(t *testing.T) {
	fields := minimalFields()

	t.Run("builds set", func(t *testing.T) {
		set, err := ValidateAll(map[string]map[string]any{
			"topicPolicyConfig": fields[TypeTopic](),
			"word":              fields[TypeWord](),
		})
		if err != nil {
			t.Fatalf("ValidateAll() failed: %v", err)
		}
		if !reflect.DeepEqual(set.Present(), []Type{TypeTopic, TypeWord}) {
			t.Errorf("Expected topic and word, got %v", set.Present())
		}
	})

	t.Run("joins failures", func(t *testing.T) {
		_, err := ValidateAll(map[string]map[string]any{
			"topic":   {},
			"unknown": {},
		})
		if !errors.Is(err, ErrSchemaValidation) || !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("Expected both failure kinds joined, got %v", err)
		}
	})

	t.Run("duplicate type", func(t *testing.T) {
		_, err := ValidateAll(map[string]map[string]any{
			"topic":             fields[TypeTopic](),
			"topicPolicyConfig": fields[TypeTopic](),
		})
		if !errors.Is(err, ErrDuplicateType) {
			t.Errorf("Expected ErrDuplicateType, got %v", err)
		}
	})
}

func TestParseType(t *testing.T) {
	tests := map[string]Type{
		"content":                         TypeContent,
		"TOPIC":                           TypeTopic,
		"words":                           TypeWord,
		"sensitiveInformation":            TypeSensitiveInformation,
		"sensitive-information":           TypeSensitiveInformation,
		"contextualGroundingPolicyConfig": TypeContextualGrounding,
		"word_policy":                     TypeWord,
	}
	for raw, want := range tests {
		got, err := ParseType(raw)
		if err != nil {
			t.Errorf("ParseType(%q) failed: %v", raw, err)
			continue
		}
		if got != want {
			t.Errorf("ParseType(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestSet(t *testing.T) {
	var set Set
	set.Put(&WordPolicy{})
	set.Put(&ContentPolicy{})

	if !reflect.DeepEqual(set.Present(), []Type{TypeContent, TypeWord}) {
		t.Errorf("Expected canonical order, got %v", set.Present())
	}

	set.Remove(TypeContent)
	if set.Get(TypeContent) != nil || set.Len() != 1 {
		t.Errorf("Expected only word after removal, got %v", set.Present())
	}
}

func TestSet_InheritTiers(t *testing.T) {
	current := Set{Content: &ContentPolicy{Tier: "STANDARD"}, Topic: &TopicPolicy{Tier: "STANDARD"}}
	incoming := Set{Content: &ContentPolicy{}, Topic: &TopicPolicy{Tier: "CLASSIC"}}

	incoming.InheritTiers(current)

	if incoming.Content.Tier != "STANDARD" {
		t.Errorf("Expected content tier inherited, got %q", incoming.Content.Tier)
	}
	if incoming.Topic.Tier != "CLASSIC" {
		t.Errorf("Expected explicit topic tier kept, got %q", incoming.Topic.Tier)
	}
}

func TestSet_JSONKeys(t *testing.T) {
	raw, err := json.Marshal(Set{
		ContextualGrounding:  &ContextualGroundingPolicy{},
		SensitiveInformation: &SensitiveInformationPolicy{},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"contextual_grounding"`, `"sensitive_information"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("Expected key %s in %s", key, raw)
		}
	}
}

func firstElem(m map[string]any, key string) map[string]any {
	return m[key].([]any)[0].(map[string]any)
}
