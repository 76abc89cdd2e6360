package guardrail

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/models"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/policy"
)

func validateCreate(req models.CreateRequest) (policy.Set, error) {
	if err := validateName(req.Name); err != nil {
		return policy.Set{}, err
	}
	if err := validateText("blocked_input_messaging", req.BlockedInputMessaging, maxMessagingLength, true); err != nil {
		return policy.Set{}, err
	}
	if err := validateText("blocked_outputs_messaging", req.BlockedOutputsMessaging, maxMessagingLength, true); err != nil {
		return policy.Set{}, err
	}
	if err := validateText("description", req.Description, maxDescriptionLength, false); err != nil {
		return policy.Set{}, err
	}
	for key := range req.Tags {
		if strings.TrimSpace(key) == "" {
			return policy.Set{}, &ValidationError{Field: "tags", Reason: "tag keys must not be empty"}
		}
	}

	set, err := policy.ValidateAll(req.PolicyConfigs)
	if err != nil {
		return policy.Set{}, &ValidationError{Field: "policy_configs", Err: err}
	}
	return set, nil
}

// validateUpdate checks every field present in req and returns the incoming policy blocks
// plus the policy types to drop.
func validateUpdate(req models.UpdateRequest) (policy.Set, []policy.Type, error) {
	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return policy.Set{}, nil, err
		}
	}
	if req.BlockedInputMessaging != nil {
		if err := validateText("blocked_input_messaging", *req.BlockedInputMessaging, maxMessagingLength, true); err != nil {
			return policy.Set{}, nil, err
		}
	}
	if req.BlockedOutputsMessaging != nil {
		if err := validateText("blocked_outputs_messaging", *req.BlockedOutputsMessaging, maxMessagingLength, true); err != nil {
			return policy.Set{}, nil, err
		}
	}
	if req.Description != nil {
		if err := validateText("description", *req.Description, maxDescriptionLength, false); err != nil {
			return policy.Set{}, nil, err
		}
	}

	incoming, err := policy.ValidateAll(req.PolicyConfigs)
	if err != nil {
		return policy.Set{}, nil, &ValidationError{Field: "policy_configs", Err: err}
	}

	var removals []policy.Type
	for _, raw := range req.RemovePolicies {
		t, err := policy.ParseType(raw)
		if err != nil {
			return policy.Set{}, nil, &ValidationError{Field: "remove_policies", Err: err}
		}
		if incoming.Get(t) != nil {
			return policy.Set{}, nil, &ValidationError{
				Field:  "remove_policies",
				Reason: fmt.Sprintf("%s is both configured and removed", t),
			}
		}
		if !slices.Contains(removals, t) {
			removals = append(removals, t)
		}
	}
	return incoming, removals, nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return &ValidationError{Field: "name", Reason: "is required"}
	case utf8.RuneCountInString(name) > maxNameLength:
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", maxNameLength)}
	case !namePattern.MatchString(name):
		return &ValidationError{Field: "name", Reason: "may only contain letters, digits, hyphens and underscores"}
	}
	return nil
}

func validateText(field, value string, maxLen int, required bool) error {
	if required && strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	if utf8.RuneCountInString(value) > maxLen {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be at most %d characters", maxLen)}
	}
	return nil
}
