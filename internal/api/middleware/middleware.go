// Package middleware holds the go-restful filters and error writers shared by the API.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/failure"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status int `json:"status"`
	failure.Payload
}

// Logger logs one line per request once the chain has run.
func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()
	chain.ProcessFilter(req, resp)

	event := log.Info()
	if resp.StatusCode() >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request")
}

func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("path", req.Request.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")
			HandleError(resp, fmt.Errorf("internal error: %v", r), http.StatusInternalServerError)
		}
	}()
	chain.ProcessFilter(req, resp)
}

// HandleError writes err with an explicit status, for failures that happen before the
// service is reached (bad JSON, bad query parameters).
func HandleError(resp *restful.Response, err error, status int) {
	kind := failure.KindInternal
	if status < http.StatusInternalServerError {
		kind = failure.KindValidation
	}
	_ = resp.WriteHeaderAndEntity(status, ErrorResponse{
		Status:  status,
		Payload: failure.Payload{Kind: kind, Message: err.Error()},
	})
}

// HandleServiceError classifies a service error and picks the status from its kind.
func HandleServiceError(resp *restful.Response, err error) {
	payload := failure.From(err)
	status := payload.Status()
	_ = resp.WriteHeaderAndEntity(status, ErrorResponse{Status: status, Payload: payload})
}
