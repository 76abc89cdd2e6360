package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/mohdhaji87/AWS-Bedrock-Guardrails-MCP/internal/api/middleware"
)

const OpenAPIPath = "/api/v1/openapi.json"

// NewContainer wires filters, routes and the OpenAPI document.
func NewContainer(handler *Handler, readOnly bool) *restful.Container {
	container := restful.NewContainer()

	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)

	RegisterRoutes(container, handler, readOnly)

	config := restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     OpenAPIPath,
		PostBuildSwaggerObjectHandler: func(swo *spec.Swagger) {
			enrichSwaggerObject(swo, handler.version)
		},
	}
	container.Add(restfulspec.NewOpenAPIService(config))

	return container
}

func enrichSwaggerObject(swo *spec.Swagger, version string) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Bedrock Guardrails API",
			Description: "Manage Amazon Bedrock guardrails and export them to Terraform",
			Version:     version,
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "guardrails", Description: "Guardrail management"}},
		{TagProps: spec.TagProps{Name: "terraform", Description: "Terraform export"}},
		{TagProps: spec.TagProps{Name: "runtime", Description: "Runtime evaluation"}},
	}
}
