// Package policy holds the guardrail policy variants and the schema table that
// turns loosely typed tool arguments into them.
package policy

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeContent              Type = "content"
	TypeContextualGrounding  Type = "contextual_grounding"
	TypeSensitiveInformation Type = "sensitive_information"
	TypeTopic                Type = "topic"
	TypeWord                 Type = "word"
)

// Types lists every supported policy type in canonical (output) order.
var Types = []Type{
	TypeContent,
	TypeContextualGrounding,
	TypeSensitiveInformation,
	TypeTopic,
	TypeWord,
}

// ParseType accepts the canonical names plus the spellings callers copy from the
// Bedrock API ("topicPolicyConfig", "sensitiveInformation", "contextual-grounding").
func ParseType(raw string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.ReplaceAll(name, "-", "_")
	for _, suffix := range []string{"_policy_config", "policyconfig", "_policy", "policy"} {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok && trimmed != "" {
			name = trimmed
			break
		}
	}
	name = strings.TrimSuffix(name, "_")

	switch name {
	case "content":
		return TypeContent, nil
	case "topic", "topics":
		return TypeTopic, nil
	case "word", "words":
		return TypeWord, nil
	case "sensitive_information", "sensitiveinformation":
		return TypeSensitiveInformation, nil
	case "contextual_grounding", "contextualgrounding":
		return TypeContextualGrounding, nil
	}
	return "", &UnsupportedTypeError{PolicyType: raw}
}

// Block is one policy sub-configuration of a guardrail.
type Block interface {
	Type() Type
}

type ContentPolicy struct {
	Filters []ContentFilter `mapstructure:"filtersConfig" json:"filtersConfig"`

	// Tier is CLASSIC or STANDARD. Empty leaves the choice to Bedrock.
	Tier string `mapstructure:"tierName" json:"tierName,omitempty"`
}

type ContentFilter struct {
	Type             string   `mapstructure:"type" json:"type"`
	InputStrength    string   `mapstructure:"inputStrength" json:"inputStrength"`
	OutputStrength   string   `mapstructure:"outputStrength" json:"outputStrength"`
	InputModalities  []string `mapstructure:"inputModalities" json:"inputModalities,omitempty"`
	OutputModalities []string `mapstructure:"outputModalities" json:"outputModalities,omitempty"`
	InputAction      string   `mapstructure:"inputAction" json:"inputAction,omitempty"`
	OutputAction     string   `mapstructure:"outputAction" json:"outputAction,omitempty"`
	InputEnabled     bool     `mapstructure:"inputEnabled" json:"inputEnabled"`
	OutputEnabled    bool     `mapstructure:"outputEnabled" json:"outputEnabled"`
}

func (*ContentPolicy) Type() Type { return TypeContent }

type TopicPolicy struct {
	Topics []Topic `mapstructure:"topicsConfig" json:"topicsConfig"`
	Tier   string  `mapstructure:"tierName" json:"tierName,omitempty"`
}

type Topic struct {
	Name          string   `mapstructure:"name" json:"name"`
	Definition    string   `mapstructure:"definition" json:"definition"`
	Examples      []string `mapstructure:"examples" json:"examples"`
	Type          string   `mapstructure:"type" json:"type"`
	InputAction   string   `mapstructure:"inputAction" json:"inputAction,omitempty"`
	OutputAction  string   `mapstructure:"outputAction" json:"outputAction,omitempty"`
	InputEnabled  bool     `mapstructure:"inputEnabled" json:"inputEnabled"`
	OutputEnabled bool     `mapstructure:"outputEnabled" json:"outputEnabled"`
}

func (*TopicPolicy) Type() Type { return TypeTopic }

type WordPolicy struct {
	Words            []Word            `mapstructure:"wordsConfig" json:"wordsConfig,omitempty"`
	ManagedWordLists []ManagedWordList `mapstructure:"managedWordListsConfig" json:"managedWordListsConfig,omitempty"`
}

type Word struct {
	Text          string `mapstructure:"text" json:"text"`
	InputAction   string `mapstructure:"inputAction" json:"inputAction,omitempty"`
	OutputAction  string `mapstructure:"outputAction" json:"outputAction,omitempty"`
	InputEnabled  bool   `mapstructure:"inputEnabled" json:"inputEnabled"`
	OutputEnabled bool   `mapstructure:"outputEnabled" json:"outputEnabled"`
}

type ManagedWordList struct {
	Type          string `mapstructure:"type" json:"type"`
	InputAction   string `mapstructure:"inputAction" json:"inputAction,omitempty"`
	OutputAction  string `mapstructure:"outputAction" json:"outputAction,omitempty"`
	InputEnabled  bool   `mapstructure:"inputEnabled" json:"inputEnabled"`
	OutputEnabled bool   `mapstructure:"outputEnabled" json:"outputEnabled"`
}

func (*WordPolicy) Type() Type { return TypeWord }

type SensitiveInformationPolicy struct {
	PIIEntities []PIIEntity `mapstructure:"piiEntitiesConfig" json:"piiEntitiesConfig,omitempty"`
	Regexes     []Regex     `mapstructure:"regexesConfig" json:"regexesConfig,omitempty"`
}

type PIIEntity struct {
	Type          string `mapstructure:"type" json:"type"`
	Action        string `mapstructure:"action" json:"action"`
	InputAction   string `mapstructure:"inputAction" json:"inputAction,omitempty"`
	OutputAction  string `mapstructure:"outputAction" json:"outputAction,omitempty"`
	InputEnabled  bool   `mapstructure:"inputEnabled" json:"inputEnabled"`
	OutputEnabled bool   `mapstructure:"outputEnabled" json:"outputEnabled"`
}

type Regex struct {
	Name          string `mapstructure:"name" json:"name"`
	Pattern       string `mapstructure:"pattern" json:"pattern"`
	Description   string `mapstructure:"description" json:"description,omitempty"`
	Action        string `mapstructure:"action" json:"action"`
	InputAction   string `mapstructure:"inputAction" json:"inputAction,omitempty"`
	OutputAction  string `mapstructure:"outputAction" json:"outputAction,omitempty"`
	InputEnabled  bool   `mapstructure:"inputEnabled" json:"inputEnabled"`
	OutputEnabled bool   `mapstructure:"outputEnabled" json:"outputEnabled"`
}

func (*SensitiveInformationPolicy) Type() Type { return TypeSensitiveInformation }

type ContextualGroundingPolicy struct {
	Filters []GroundingFilter `mapstructure:"filtersConfig" json:"filtersConfig"`
}

type GroundingFilter struct {
	Type      string  `mapstructure:"type" json:"type"`
	Threshold float64 `mapstructure:"threshold" json:"threshold"`
	Action    string  `mapstructure:"action" json:"action,omitempty"`
	Enabled   bool    `mapstructure:"enabled" json:"enabled"`
}

func (*ContextualGroundingPolicy) Type() Type { return TypeContextualGrounding }

// AutomatedReasoningPolicy attaches automated reasoning policies built outside this server.
// It is carried through reads and updates but cannot be configured through policy_configs.
type AutomatedReasoningPolicy struct {
	Policies            []string `json:"policies"`
	ConfidenceThreshold *float64 `json:"confidenceThreshold,omitempty"`
}

// InheritTiers copies the tier of current content and topic blocks onto the blocks in s
// that do not name one.
func (s *Set) InheritTiers(current Set) {
	if s.Content != nil && s.Content.Tier == "" && current.Content != nil {
		s.Content.Tier = current.Content.Tier
	}
	if s.Topic != nil && s.Topic.Tier == "" && current.Topic != nil {
		s.Topic.Tier = current.Topic.Tier
	}
}

// Set holds at most one block per policy type. JSON keys are the canonical type names,
// the same keys policy_configs accepts.
type Set struct {
	Content              *ContentPolicy              `json:"content,omitempty"`
	ContextualGrounding  *ContextualGroundingPolicy  `json:"contextual_grounding,omitempty"`
	SensitiveInformation *SensitiveInformationPolicy `json:"sensitive_information,omitempty"`
	Topic                *TopicPolicy                `json:"topic,omitempty"`
	Word                 *WordPolicy                 `json:"word,omitempty"`
}

// Get returns the block for t, or nil when absent.
func (s Set) Get(t Type) Block {
	switch t {
	case TypeContent:
		if s.Content != nil {
			return s.Content
		}
	case TypeContextualGrounding:
		if s.ContextualGrounding != nil {
			return s.ContextualGrounding
		}
	case TypeSensitiveInformation:
		if s.SensitiveInformation != nil {
			return s.SensitiveInformation
		}
	case TypeTopic:
		if s.Topic != nil {
			return s.Topic
		}
	case TypeWord:
		if s.Word != nil {
			return s.Word
		}
	}
	return nil
}

// Put stores b, replacing any existing block of the same type.
func (s *Set) Put(b Block) {
	switch v := b.(type) {
	case *ContentPolicy:
		s.Content = v
	case *ContextualGroundingPolicy:
		s.ContextualGrounding = v
	case *SensitiveInformationPolicy:
		s.SensitiveInformation = v
	case *TopicPolicy:
		s.Topic = v
	case *WordPolicy:
		s.Word = v
	default:
		panic(fmt.Sprintf("policy: unknown block %T", b))
	}
}

func (s *Set) Remove(t Type) {
	switch t {
	case TypeContent:
		s.Content = nil
	case TypeContextualGrounding:
		s.ContextualGrounding = nil
	case TypeSensitiveInformation:
		s.SensitiveInformation = nil
	case TypeTopic:
		s.Topic = nil
	case TypeWord:
		s.Word = nil
	}
}

// Blocks returns the present blocks in canonical order.
func (s Set) Blocks() []Block {
	var blocks []Block
	for _, t := range Types {
		if b := s.Get(t); b != nil {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Present lists the types that have a block.
func (s Set) Present() []Type {
	var types []Type
	for _, b := range s.Blocks() {
		types = append(types, b.Type())
	}
	return types
}

func (s Set) Len() int {
	return len(s.Blocks())
}
