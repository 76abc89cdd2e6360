package models

import (
	"time"

	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/policy"
)

// DraftVersion is the mutable working copy of every guardrail.
const DraftVersion = "DRAFT"

type GuardrailStatus string

const (
	StatusCreating   GuardrailStatus = "CREATING"
	StatusUpdating   GuardrailStatus = "UPDATING"
	StatusVersioning GuardrailStatus = "VERSIONING"
	StatusReady      GuardrailStatus = "READY"
	StatusFailed     GuardrailStatus = "FAILED"
	StatusDeleting   GuardrailStatus = "DELETING"
)

// Full configuration of one guardrail version
type GuardrailConfig struct {
	ID                      string            `json:"guardrail_id"`
	ARN                     string            `json:"guardrail_arn"`
	Name                    string            `json:"name"`
	Description             string            `json:"description,omitempty"`
	Version                 string            `json:"version"`
	Status                  GuardrailStatus   `json:"status"`
	StatusReasons           []string          `json:"status_reasons,omitempty"`
	FailureRecommendations  []string          `json:"failure_recommendations,omitempty"`
	BlockedInputMessaging   string            `json:"blocked_input_messaging"`
	BlockedOutputsMessaging string            `json:"blocked_outputs_messaging"`
	KMSKeyARN               string            `json:"kms_key_arn,omitempty"`
	CrossRegionProfile      string            `json:"cross_region_profile,omitempty"`
	Tags                    map[string]string `json:"tags,omitempty"`
	CreatedAt               time.Time         `json:"created_at"`
	UpdatedAt               time.Time         `json:"updated_at"`
	Policies                policy.Set        `json:"policies"`

	// AutomatedReasoning is read back from Bedrock and preserved on update.
	AutomatedReasoning *policy.AutomatedReasoningPolicy `json:"automated_reasoning,omitempty"`
}

// List view projection
type GuardrailSummary struct {
	ID                 string          `json:"guardrail_id"`
	ARN                string          `json:"guardrail_arn"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Status             GuardrailStatus `json:"status"`
	Version            string          `json:"version"`
	CrossRegionProfile string          `json:"cross_region_profile,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Immutable snapshot reference returned by create-version
type GuardrailVersion struct {
	GuardrailID string `json:"guardrail_id"`
	Version     string `json:"version"`
}

// PolicyConfigs maps a policy type name to its loosely typed field set, as received on the wire.
type PolicyConfigs map[string]map[string]any

type CreateRequest struct {
	Name                    string            `json:"name"`
	Description             string            `json:"description,omitempty"`
	BlockedInputMessaging   string            `json:"blocked_input_messaging"`
	BlockedOutputsMessaging string            `json:"blocked_outputs_messaging"`
	PolicyConfigs           PolicyConfigs     `json:"policy_configs"`
	KMSKeyARN               string            `json:"kms_key_arn,omitempty"`
	Tags                    map[string]string `json:"tags,omitempty"`
	CrossRegionProfile      string            `json:"cross_region_profile,omitempty"`
}

type CreateResult struct {
	ID        string    `json:"guardrail_id"`
	ARN       string    `json:"guardrail_arn"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateRequest carries only the fields the caller wants changed. Nil pointers and a nil
// PolicyConfigs leave the current value untouched.
type UpdateRequest struct {
	GuardrailID             string        `json:"guardrail_id"`
	Name                    *string       `json:"name,omitempty"`
	Description             *string       `json:"description,omitempty"`
	BlockedInputMessaging   *string       `json:"blocked_input_messaging,omitempty"`
	BlockedOutputsMessaging *string       `json:"blocked_outputs_messaging,omitempty"`
	PolicyConfigs           PolicyConfigs `json:"policy_configs,omitempty"`
	RemovePolicies          []string      `json:"remove_policies,omitempty"`
	KMSKeyARN               *string       `json:"kms_key_arn,omitempty"`
	CrossRegionProfile      *string       `json:"cross_region_profile,omitempty"`
}

// Empty reports whether the request changes nothing.
func (r UpdateRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.BlockedInputMessaging == nil &&
		r.BlockedOutputsMessaging == nil && len(r.PolicyConfigs) == 0 && len(r.RemovePolicies) == 0 &&
		r.KMSKeyARN == nil && r.CrossRegionProfile == nil
}

type ListFilter struct {
	// GuardrailID lists the versions of one guardrail instead of all guardrails.
	GuardrailID  string `json:"guardrail_id,omitempty"`
	NameContains string `json:"name_contains,omitempty"`
	Status       string `json:"status,omitempty"`
	PageSize     int32  `json:"page_size,omitempty"`
}

type ContentSource string

const (
	SourceInput  ContentSource = "INPUT"
	SourceOutput ContentSource = "OUTPUT"
)

type ApplyRequest struct {
	GuardrailID string        `json:"guardrail_id"`
	Version     string        `json:"version,omitempty"`
	Source      ContentSource `json:"source"`
	Texts       []string      `json:"texts"`
}

// One policy hit reported by a runtime assessment
type Finding struct {
	PolicyType policy.Type `json:"policy_type"`
	Name       string      `json:"name,omitempty"`
	Type       string      `json:"type,omitempty"`
	Match      string      `json:"match,omitempty"`
	Action     string      `json:"action"`
	Detected   bool        `json:"detected"`
}

type ApplyResult struct {
	Action       string    `json:"action"`
	ActionReason string    `json:"action_reason,omitempty"`
	Outputs      []string  `json:"outputs,omitempty"`
	Findings     []Finding `json:"findings,omitempty"`
}

// Intervened reports whether the guardrail blocked or masked the content.
func (r ApplyResult) Intervened() bool {
	return r.Action == "GUARDRAIL_INTERVENED"
}
