package guardrail

import (
	"errors"
	"fmt"
	"strings"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
)

var ErrValidation = errors.New("invalid guardrail request")

// ValidationError rejects a request before any call reaches Bedrock.
type ValidationError struct {
	Field  string
	Reason string
	// Err carries policy validation failures, if any.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// UpstreamError is a failure reported by Bedrock, with the provider's error code kept verbatim.
type UpstreamError struct {
	Operation string
	Code      string
	Message   string
	RequestID string
	Err       error
}

func (e *UpstreamError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bedrock %s failed", e.Operation)
	if e.Code != "" {
		fmt.Fprintf(&b, ": %s", e.Code)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.RequestID != "" {
		fmt.Fprintf(&b, " (request id %s)", e.RequestID)
	}
	return b.String()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Provider error codes the callers branch on.
const (
	CodeNotFound        = "ResourceNotFoundException"
	CodeThrottling      = "ThrottlingException"
	CodeAccessDenied    = "AccessDeniedException"
	CodeConflict        = "ConflictException"
	CodeValidation      = "ValidationException"
	CodeQuotaExceeded   = "ServiceQuotaExceededException"
	CodeTooManyTags     = "TooManyTagsException"
	CodeInternalFailure = "InternalServerException"
)

func upstream(operation string, err error) error {
	if err == nil {
		return nil
	}

	uerr := &UpstreamError{Operation: operation, Message: err.Error(), Err: err}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		uerr.Code = apiErr.ErrorCode()
		uerr.Message = apiErr.ErrorMessage()
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		uerr.RequestID = respErr.ServiceRequestID()
	}
	return uerr
}

func hasCode(err error, code string) bool {
	var uerr *UpstreamError
	return errors.As(err, &uerr) && uerr.Code == code
}

func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

func IsThrottled(err error) bool { return hasCode(err, CodeThrottling) }

func IsAccessDenied(err error) bool { return hasCode(err, CodeAccessDenied) }

func IsConflict(err error) bool { return hasCode(err, CodeConflict) }

func IsUpstreamValidation(err error) bool { return hasCode(err, CodeValidation) }
