package api

import (
	"net/http"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/api/middleware"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/models"
)

const mimeText = "text/plain"

// RegisterRoutes adds the /api/v1 web service. readOnly leaves out the routes that change
// guardrails.
func RegisterRoutes(container *restful.Container, handler *Handler, readOnly bool) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	id := ws.PathParameter("guardrail_id", "Guardrail id or ARN").DataType("string")
	version := ws.QueryParameter("version", "Version number, defaults to DRAFT").DataType("string").Required(false)

	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.GET("/guardrails").
			To(handler.ListGuardrails).
			Doc("List guardrails, or the versions of one guardrail").
			Metadata(restfulspec.KeyOpenAPITags, []string{"guardrails"}).
			Param(ws.QueryParameter("guardrail_id", "List versions of this guardrail").DataType("string").Required(false)).
			Param(ws.QueryParameter("name_contains", "Case-insensitive name filter").DataType("string").Required(false)).
			Param(ws.QueryParameter("status", "Status filter").DataType("string").Required(false)).
			Writes(ListResponse{}).
			Returns(200, "OK", ListResponse{}).
			Returns(429, "Throttled", middleware.ErrorResponse{}).
			Returns(502, "Bedrock Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/guardrails/{guardrail_id}").
			To(handler.GetGuardrail).
			Doc("Get the full configuration of a guardrail version").
			Metadata(restfulspec.KeyOpenAPITags, []string{"guardrails"}).
			Param(id).
			Param(version).
			Writes(models.GuardrailConfig{}).
			Returns(200, "OK", models.GuardrailConfig{}).
			Returns(404, "Guardrail Not Found", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/guardrails/{guardrail_id}/terraform").
			To(handler.ExportTerraform).
			Doc("Export a guardrail version as a Terraform resource").
			Metadata(restfulspec.KeyOpenAPITags, []string{"terraform"}).
			Produces(mimeText, restful.MIME_JSON).
			Param(id).
			Param(version).
			Param(ws.QueryParameter("resource_name", "Terraform resource name").DataType("string").Required(false)).
			Returns(200, "OK", "").
			Returns(404, "Guardrail Not Found", middleware.ErrorResponse{}).
			Returns(422, "Not Exportable", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/guardrails/{guardrail_id}/apply").
			To(handler.ApplyGuardrail).
			Doc("Evaluate text against a guardrail version").
			Metadata(restfulspec.KeyOpenAPITags, []string{"runtime"}).
			Param(id).
			Reads(models.ApplyRequest{}).
			Writes(models.ApplyResult{}).
			Returns(200, "OK", models.ApplyResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	if !readOnly {
		ws.
			Route(ws.POST("/guardrails").
				To(handler.CreateGuardrail).
				Doc("Create a guardrail").
				Metadata(restfulspec.KeyOpenAPITags, []string{"guardrails"}).
				Reads(models.CreateRequest{}).
				Writes(models.CreateResult{}).
				Returns(201, "Created", models.CreateResult{}).
				Returns(400, "Bad Request", middleware.ErrorResponse{}).
				Returns(409, "Conflict", middleware.ErrorResponse{}))

		ws.
			Route(ws.PATCH("/guardrails/{guardrail_id}").
				To(handler.UpdateGuardrail).
				Doc("Partially update a guardrail's DRAFT").
				Metadata(restfulspec.KeyOpenAPITags, []string{"guardrails"}).
				Param(id).
				Reads(models.UpdateRequest{}).
				Writes(models.GuardrailConfig{}).
				Returns(200, "OK", models.GuardrailConfig{}).
				Returns(400, "Bad Request", middleware.ErrorResponse{}).
				Returns(404, "Guardrail Not Found", middleware.ErrorResponse{}))

		ws.
			Route(ws.DELETE("/guardrails/{guardrail_id}").
				To(handler.DeleteGuardrail).
				Doc("Delete a guardrail or one of its versions").
				Metadata(restfulspec.KeyOpenAPITags, []string{"guardrails"}).
				Param(id).
				Param(version).
				Returns(204, "Deleted", nil).
				Returns(404, "Guardrail Not Found", middleware.ErrorResponse{}))

		ws.
			Route(ws.POST("/guardrails/{guardrail_id}/versions").
				To(handler.CreateVersion).
				Doc("Snapshot the DRAFT as a new version").
				Metadata(restfulspec.KeyOpenAPITags, []string{"guardrails"}).
				AllowedMethodsWithoutContentType([]string{http.MethodPost}).
				Param(id).
				Reads(VersionRequest{}, "optional").
				Writes(models.GuardrailVersion{}).
				Returns(201, "Created", models.GuardrailVersion{}).
				Returns(404, "Guardrail Not Found", middleware.ErrorResponse{}))
	}

	container.Add(ws)
}
