package api

import (
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/api/middleware"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/guardrail"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/models"
	"github.com/rs/zerolog"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ListResponse struct {
	Guardrails []models.GuardrailSummary `json:"guardrails"`
	Count      int                       `json:"count"`
}

type VersionRequest struct {
	Description string `json:"description,omitempty"`
}

type Handler struct {
	svc     guardrail.Manager
	version string
	logger  *zerolog.Logger
}

func NewHandler(svc guardrail.Manager, version string, logger *zerolog.Logger) *Handler {
	return &Handler{
		svc:     svc,
		version: version,
		logger:  logger,
	}
}

// GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	_ = resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{Status: "ok", Version: h.version})
}

// GET /api/v1/guardrails
func (h *Handler) ListGuardrails(req *restful.Request, resp *restful.Response) {
	filter := models.ListFilter{
		GuardrailID:  req.QueryParameter("guardrail_id"),
		NameContains: req.QueryParameter("name_contains"),
		Status:       req.QueryParameter("status"),
	}

	summaries, err := h.svc.List(req.Request.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list guardrails")
		middleware.HandleServiceError(resp, err)
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, ListResponse{Guardrails: summaries, Count: len(summaries)})
}

// POST /api/v1/guardrails
func (h *Handler) CreateGuardrail(req *restful.Request, resp *restful.Response) {
	var createRequest models.CreateRequest
	if err := req.ReadEntity(&createRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	result, err := h.svc.Create(req.Request.Context(), createRequest)
	if err != nil {
		middleware.HandleServiceError(resp, err)
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusCreated, result)
}

// GET /api/v1/guardrails/{guardrail_id}
func (h *Handler) GetGuardrail(req *restful.Request, resp *restful.Response) {
	cfg, err := h.svc.Get(req.Request.Context(), req.PathParameter("guardrail_id"), req.QueryParameter("version"))
	if err != nil {
		middleware.HandleServiceError(resp, err)
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, cfg)
}

// PATCH /api/v1/guardrails/{guardrail_id}
// Only the fields present in the body change.
func (h *Handler) UpdateGuardrail(req *restful.Request, resp *restful.Response) {
	var updateRequest models.UpdateRequest
	if err := req.ReadEntity(&updateRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}
	updateRequest.GuardrailID = req.PathParameter("guardrail_id")

	cfg, err := h.svc.Update(req.Request.Context(), updateRequest)
	if err != nil {
		middleware.HandleServiceError(resp, err)
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, cfg)
}

// DELETE /api/v1/guardrails/{guardrail_id}
func (h *Handler) DeleteGuardrail(req *restful.Request, resp *restful.Response) {
	if err := h.svc.Delete(req.Request.Context(), req.PathParameter("guardrail_id"), req.QueryParameter("version")); err != nil {
		middleware.HandleServiceError(resp, err)
		return
	}

	resp.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/guardrails/{guardrail_id}/versions
func (h *Handler) CreateVersion(req *restful.Request, resp *restful.Response) {
	var versionRequest VersionRequest
	if req.Request.ContentLength != 0 {
		if err := req.ReadEntity(&versionRequest); err != nil {
			middleware.HandleError(resp, err, http.StatusBadRequest)
			return
		}
	}

	version, err := h.svc.CreateVersion(req.Request.Context(), req.PathParameter("guardrail_id"), versionRequest.Description)
	if err != nil {
		middleware.HandleServiceError(resp, err)
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusCreated, version)
}

// GET /api/v1/guardrails/{guardrail_id}/terraform
// Returns the HCL as text/plain.
func (h *Handler) ExportTerraform(req *restful.Request, resp *restful.Response) {
	hcl, err := h.svc.ExportTerraform(
		req.Request.Context(),
		req.PathParameter("guardrail_id"),
		req.QueryParameter("version"),
		req.QueryParameter("resource_name"),
	)
	if err != nil {
		middleware.HandleServiceError(resp, err)
		return
	}

	resp.Header().Set("Content-Type", "text/plain; charset=utf-8")
	resp.WriteHeader(http.StatusOK)
	if _, err := resp.Write([]byte(hcl)); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to write Terraform export")
	}
}

// POST /api/v1/guardrails/{guardrail_id}/apply
func (h *Handler) ApplyGuardrail(req *restful.Request, resp *restful.Response) {
	var applyRequest models.ApplyRequest
	if err := req.ReadEntity(&applyRequest); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}
	applyRequest.GuardrailID = req.PathParameter("guardrail_id")

	result, err := h.svc.Apply(req.Request.Context(), applyRequest)
	if err != nil {
		middleware.HandleServiceError(resp, err)
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, result)
}
