// Package failure turns service errors into the structured payload returned to tool and
// HTTP callers.
package failure

import (
	"context"
	"errors"
	"net/http"

	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/credentials"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/guardrail"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/policy"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/terraform"
)

type Kind string

const (
	KindMissingCredentials    Kind = "missing_credentials"
	KindSchemaValidation      Kind = "schema_validation"
	KindUnsupportedPolicyType Kind = "unsupported_policy_type"
	KindValidation            Kind = "validation"
	KindUpstream              Kind = "upstream"
	KindExport                Kind = "export"
	KindCanceled              Kind = "canceled"
	KindInternal              Kind = "internal"
)

type Payload struct {
	Kind          Kind     `json:"kind"`
	Message       string   `json:"message"`
	Field         string   `json:"field,omitempty"`
	Code          string   `json:"code,omitempty"`
	Operation     string   `json:"operation,omitempty"`
	RequestID     string   `json:"request_id,omitempty"`
	PolicyType    string   `json:"policy_type,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
	UnknownFields []string `json:"unknown_fields,omitempty"`
	InvalidFields []string `json:"invalid_fields,omitempty"`
}

// From classifies err. The most specific error in the chain wins, so a schema failure
// wrapped in a request validation error is still reported as schema_validation.
func From(err error) Payload {
	p := Payload{Kind: KindInternal, Message: err.Error()}

	var (
		missing     *credentials.MissingCredentialError
		unsupported *policy.UnsupportedTypeError
		schema      *policy.SchemaValidationError
		validation  *guardrail.ValidationError
		up          *guardrail.UpstreamError
		export      *terraform.ExportError
	)

	switch {
	case errors.As(err, &missing):
		p.Kind = KindMissingCredentials
		p.MissingFields = missing.Missing
	case errors.As(err, &unsupported):
		p.Kind = KindUnsupportedPolicyType
		p.PolicyType = unsupported.PolicyType
	case errors.As(err, &schema):
		p.Kind = KindSchemaValidation
		p.PolicyType = string(schema.PolicyType)
		p.MissingFields = schema.MissingFields
		p.UnknownFields = schema.UnknownFields
		p.InvalidFields = schema.InvalidFields
	case errors.As(err, &validation):
		p.Kind = KindValidation
		p.Field = validation.Field
	case errors.As(err, &up):
		p.Kind = KindUpstream
		p.Code = up.Code
		p.Operation = up.Operation
		p.RequestID = up.RequestID
	case errors.As(err, &export):
		p.Kind = KindExport
		p.Field = export.Field
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		p.Kind = KindCanceled
	}

	return p
}

// Status maps the payload onto an HTTP status code.
func (p Payload) Status() int {
	switch p.Kind {
	case KindSchemaValidation, KindUnsupportedPolicyType, KindValidation:
		return http.StatusBadRequest
	case KindExport:
		return http.StatusUnprocessableEntity
	case KindCanceled:
		return http.StatusRequestTimeout
	case KindUpstream:
		switch p.Code {
		case guardrail.CodeNotFound:
			return http.StatusNotFound
		case guardrail.CodeThrottling, guardrail.CodeQuotaExceeded:
			return http.StatusTooManyRequests
		case guardrail.CodeAccessDenied:
			return http.StatusForbidden
		case guardrail.CodeConflict:
			return http.StatusConflict
		case guardrail.CodeValidation, guardrail.CodeTooManyTags:
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
