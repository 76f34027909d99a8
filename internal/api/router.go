package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-pipeline-builder/docs"
	"go-pipeline-builder/internal/api/handler"
	"go-pipeline-builder/pkg/router"
)

// RegisterRoutes wires every endpoint of h onto r. Specific wildcard routes
// are registered before the generic ones they would otherwise shadow.
func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.GET("/api/v1/operators", h.ListOperators)
	r.GET("/api/v1/operators/*", h.GetOperator)

	r.POST("/api/v1/sessions", h.CreateSession)
	r.POST("/api/v1/sessions/*/commands", h.ApplyCommand)
	r.GET("/api/v1/sessions/*/steps/*/widgets", h.StepWidgets)
	r.GET("/api/v1/sessions/*/export", h.ExportSession)
	r.GET("/api/v1/sessions/*/validate", h.ValidateSession)
	r.POST("/api/v1/sessions/*/save", h.SaveSession)
	r.POST("/api/v1/sessions/*/load", h.LoadSession)
	// Generic session routes last
	r.GET("/api/v1/sessions/*", h.GetSession)
	r.DELETE("/api/v1/sessions/*", h.DeleteSession)

	r.POST("/api/v1/pipelines", h.CreatePipeline)
	r.GET("/api/v1/pipelines", h.ListPipelines)
	r.POST("/api/v1/pipelines/validate", h.ValidatePipeline)
	r.GET("/api/v1/pipelines/*", h.GetPipeline)
	r.DELETE("/api/v1/pipelines/*", h.DeletePipeline)

	r.Handle("/swagger/", httpSwagger.WrapHandler)
}

// MountMetrics exposes m on path.
func MountMetrics(r *router.Router, path string, m http.Handler) {
	if path == "" {
		path = "/metrics"
	}
	r.Handle(path, m)
}
