package handler

import (
	"net/http"

	"go-pipeline-builder/internal/model"
	"go-pipeline-builder/internal/store"
	"go-pipeline-builder/internal/validate"
	"go-pipeline-builder/pkg/utils"
)

// SavePipelineRequest is a named pipeline submitted without a session.
type SavePipelineRequest struct {
	Name     string               `json:"name"`
	Pipeline []model.PipelineStep `json:"pipeline"`
}

// ValidateRequest is a pipeline checked against the known input columns.
type ValidateRequest struct {
	Pipeline []model.PipelineStep `json:"pipeline"`
	Columns  []string             `json:"columns,omitempty"`
}

// CreatePipeline saves a pipeline document
// @Summary Save a pipeline document
// @Description Store a pipeline under a unique name
// @Tags pipelines
// @Accept json
// @Produce json
// @Param pipeline body SavePipelineRequest true "Named pipeline"
// @Success 201 {object} store.Summary
// @Failure 400 {object} utils.ErrorResponse "Invalid request payload"
// @Failure 409 {object} utils.ErrorResponse "Name already exists"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /pipelines [post]
func (h *Handler) CreatePipeline(w http.ResponseWriter, r *http.Request) {
	var req SavePipelineRequest
	if err := decodeJSON(r, &req, false); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.save(w, r, req.Name, req.Pipeline)
}

// ListPipelines lists saved pipelines
// @Summary List saved pipelines
// @Description List saved pipelines, newest first
// @Tags pipelines
// @Produce json
// @Success 200 {array} store.Summary
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /pipelines [get]
func (h *Handler) ListPipelines(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	h.metrics.StoreOperation("list", err)
	if err != nil {
		h.storeError(w, "list", err)
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// GetPipeline returns a saved pipeline document
// @Summary Get a saved pipeline
// @Tags pipelines
// @Produce json
// @Param name path string true "Pipeline name"
// @Success 200 {object} model.Document
// @Failure 404 {object} utils.ErrorResponse "Pipeline not found"
// @Router /pipelines/{name} [get]
func (h *Handler) GetPipeline(w http.ResponseWriter, r *http.Request) {
	params, ok := pathParams(r.URL.Path, "/api/v1/pipelines/*")
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid path")
		return
	}
	steps, err := h.store.Load(r.Context(), params[0])
	h.metrics.StoreOperation("load", err)
	if err != nil {
		h.storeError(w, "load", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, model.Export(steps))
}

// DeletePipeline deletes a saved pipeline
// @Summary Delete a saved pipeline
// @Tags pipelines
// @Param name path string true "Pipeline name"
// @Success 204 "Deleted"
// @Failure 404 {object} utils.ErrorResponse "Pipeline not found"
// @Router /pipelines/{name} [delete]
func (h *Handler) DeletePipeline(w http.ResponseWriter, r *http.Request) {
	params, ok := pathParams(r.URL.Path, "/api/v1/pipelines/*")
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid path")
		return
	}
	err := h.store.Delete(r.Context(), params[0])
	h.metrics.StoreOperation("delete", err)
	if err != nil {
		h.storeError(w, "delete", err)
		return
	}
	h.log.Info("pipeline deleted", "name", params[0])
	w.WriteHeader(http.StatusNoContent)
}

// ValidatePipeline checks a pipeline document without opening a session
// @Summary Validate a pipeline document
// @Tags pipelines
// @Accept json
// @Produce json
// @Param pipeline body ValidateRequest true "Pipeline and known columns"
// @Success 200 {object} ValidationResponse
// @Failure 400 {object} utils.ErrorResponse "Invalid request payload"
// @Router /pipelines/validate [post]
func (h *Handler) ValidatePipeline(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeJSON(r, &req, false); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, validationResponse(validate.Pipeline(req.Pipeline, req.Columns)))
}
