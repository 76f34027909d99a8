package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go-pipeline-builder/internal/builder"
	"go-pipeline-builder/internal/export"
	"go-pipeline-builder/internal/model"
	"go-pipeline-builder/internal/param"
	"go-pipeline-builder/internal/store"
	"go-pipeline-builder/internal/validate"
	"go-pipeline-builder/pkg/utils"
)

// CreateSessionRequest seeds a new session. Pipeline and Name are
// alternatives: Name loads a saved pipeline.
type CreateSessionRequest struct {
	Columns  []string             `json:"columns,omitempty"`
	Pipeline []model.PipelineStep `json:"pipeline,omitempty"`
	Name     string               `json:"name,omitempty"`
}

// NameRequest carries a saved pipeline name.
type NameRequest struct {
	Name string `json:"name"`
}

// ValidationResponse is the result of validating a pipeline.
type ValidationResponse struct {
	Valid  bool             `json:"valid"`
	Issues []validate.Issue `json:"issues"`
}

func validationResponse(rep validate.Report) ValidationResponse {
	issues := rep.Issues
	if issues == nil {
		issues = []validate.Issue{}
	}
	return ValidationResponse{Valid: rep.Valid(), Issues: issues}
}

// session resolves the session addressed by pattern's first wildcard and
// writes the error response when it cannot.
func (h *Handler) session(w http.ResponseWriter, r *http.Request, pattern string) (*builder.Session, bool) {
	params, ok := pathParams(r.URL.Path, pattern)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid path")
		return nil, false
	}
	s, err := h.sessions.Get(params[0])
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return s, true
}

// CreateSession opens a builder session
// @Summary Open a builder session
// @Description Open a session, optionally seeded with input columns and a pipeline or a saved pipeline name
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body CreateSessionRequest false "Initial columns and pipeline"
// @Success 201 {object} builder.Snapshot
// @Failure 400 {object} utils.ErrorResponse "Invalid request payload"
// @Failure 404 {object} utils.ErrorResponse "Saved pipeline not found"
// @Failure 503 {object} utils.ErrorResponse "Session limit reached"
// @Router /sessions [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeJSON(r, &req, true); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	steps := req.Pipeline
	if req.Name != "" {
		loaded, err := h.store.Load(r.Context(), req.Name)
		h.metrics.StoreOperation("load", err)
		if err != nil {
			h.storeError(w, "load", err)
			return
		}
		steps = loaded
	}

	s, err := h.sessions.Create()
	if err != nil {
		utils.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	h.metrics.SetActiveSessions(h.sessions.Len())

	snap := s.Snapshot()
	var seed []builder.Command
	if req.Columns != nil {
		seed = append(seed, builder.Command{Op: builder.OpColumns, Columns: req.Columns})
	}
	if len(steps) > 0 {
		seed = append(seed, builder.Command{Op: builder.OpLoad, Steps: steps})
	}
	for _, cmd := range seed {
		snap, err = s.Apply(cmd)
		h.metrics.CommandApplied(string(cmd.Op), err)
		if err != nil {
			h.sessions.Delete(s.ID())
			h.metrics.SetActiveSessions(h.sessions.Len())
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	h.log.Info("session created", "session", s.ID(), "steps", len(snap.Steps))
	utils.WriteJSON(w, http.StatusCreated, snap)
}

// GetSession returns the current snapshot of a session
// @Summary Get session snapshot
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} builder.Snapshot
// @Failure 404 {object} utils.ErrorResponse "Session not found"
// @Router /sessions/{id} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/api/v1/sessions/*")
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, s.Snapshot())
}

// DeleteSession closes a session
// @Summary Close a session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204 "Session closed"
// @Failure 404 {object} utils.ErrorResponse "Session not found"
// @Router /sessions/{id} [delete]
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	params, ok := pathParams(r.URL.Path, "/api/v1/sessions/*")
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid path")
		return
	}
	if err := h.sessions.Delete(params[0]); err != nil {
		utils.WriteError(w, http.StatusNotFound, "Session not found")
		return
	}
	h.metrics.SetActiveSessions(h.sessions.Len())
	w.WriteHeader(http.StatusNoContent)
}

// ApplyCommand applies one builder command to a session
// @Summary Apply a builder command
// @Description Insert, remove, move, reorder, select or update steps, or route a parameter event to a step's form
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param command body builder.Command true "Command"
// @Success 200 {object} builder.Snapshot
// @Failure 400 {object} utils.ErrorResponse "Rejected command"
// @Failure 404 {object} utils.ErrorResponse "Session not found"
// @Router /sessions/{id}/commands [post]
func (h *Handler) ApplyCommand(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/api/v1/sessions/*/commands")
	if !ok {
		return
	}
	var cmd builder.Command
	if err := decodeJSON(r, &cmd, false); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	snap, err := s.Apply(cmd)
	h.metrics.CommandApplied(string(cmd.Op), err)
	if err != nil {
		h.log.Debug("command rejected", "session", s.ID(), "op", cmd.Op, "error", err)
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, snap)
}

// StepWidgets renders the parameter form of one step
// @Summary Render the parameter form of a step
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param stepId path string true "Step ID"
// @Success 200 {array} param.Widget
// @Failure 404 {object} utils.ErrorResponse "Session or step not found"
// @Router /sessions/{id}/steps/{stepId}/widgets [get]
func (h *Handler) StepWidgets(w http.ResponseWriter, r *http.Request) {
	const pattern = "/api/v1/sessions/*/steps/*/widgets"
	s, ok := h.session(w, r, pattern)
	if !ok {
		return
	}
	params, _ := pathParams(r.URL.Path, pattern)
	widgets, ok := s.Widgets(params[1])
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "Step not found")
		return
	}
	if widgets == nil {
		widgets = []param.Widget{}
	}
	utils.WriteJSON(w, http.StatusOK, widgets)
}

// ExportSession renders the session pipeline as a downstream document
// @Summary Export the session pipeline
// @Description Render the pipeline without step ids as json or yaml, or run a jq query over it
// @Tags sessions
// @Produce json
// @Produce application/yaml
// @Param id path string true "Session ID"
// @Param format query string false "json or yaml"
// @Param query query string false "jq expression"
// @Success 200 {object} model.Document
// @Failure 400 {object} utils.ErrorResponse "Bad format or query"
// @Failure 404 {object} utils.ErrorResponse "Session not found"
// @Router /sessions/{id}/export [get]
func (h *Handler) ExportSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/api/v1/sessions/*/export")
	if !ok {
		return
	}
	doc := s.Document()

	if q := r.URL.Query().Get("query"); q != "" {
		results, err := export.Query(doc, q)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.WriteJSON(w, http.StatusOK, results)
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	data, err := export.Marshal(doc, format)
	if err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("export failed", "session", s.ID(), "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", export.ContentType(format))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ValidateSession checks the session pipeline
// @Summary Validate the session pipeline
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} ValidationResponse
// @Failure 404 {object} utils.ErrorResponse "Session not found"
// @Router /sessions/{id}/validate [get]
func (h *Handler) ValidateSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/api/v1/sessions/*/validate")
	if !ok {
		return
	}
	rep := validate.Pipeline(s.Steps(), s.Columns())
	utils.WriteJSON(w, http.StatusOK, validationResponse(rep))
}

// SaveSession stores the session pipeline under a name
// @Summary Save the session pipeline under a name
// @Description Names are unique; saving under an existing name fails
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param name body NameRequest true "Pipeline name"
// @Success 201 {object} store.Summary
// @Failure 400 {object} utils.ErrorResponse "Invalid name"
// @Failure 404 {object} utils.ErrorResponse "Session not found"
// @Failure 409 {object} utils.ErrorResponse "Name already exists"
// @Router /sessions/{id}/save [post]
func (h *Handler) SaveSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/api/v1/sessions/*/save")
	if !ok {
		return
	}
	var req NameRequest
	if err := decodeJSON(r, &req, false); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.save(w, r, req.Name, s.Steps())
}

// LoadSession replaces the session pipeline with a saved one
// @Summary Replace the session pipeline with a saved one
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param name body NameRequest true "Pipeline name"
// @Success 200 {object} builder.Snapshot
// @Failure 404 {object} utils.ErrorResponse "Session or pipeline not found"
// @Router /sessions/{id}/load [post]
func (h *Handler) LoadSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r, "/api/v1/sessions/*/load")
	if !ok {
		return
	}
	var req NameRequest
	if err := decodeJSON(r, &req, false); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	steps, err := h.store.Load(r.Context(), req.Name)
	h.metrics.StoreOperation("load", err)
	if err != nil {
		h.storeError(w, "load", err)
		return
	}
	snap, err := s.Apply(builder.Command{Op: builder.OpLoad, Steps: steps})
	h.metrics.CommandApplied(string(builder.OpLoad), err)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, name string, steps []model.PipelineStep) {
	clean, err := store.CleanName(name)
	if err == nil {
		err = h.store.Save(r.Context(), clean, steps)
	}
	h.metrics.StoreOperation("save", err)
	if err != nil {
		h.storeError(w, "save", err)
		return
	}
	h.log.Info("pipeline saved", "name", clean, "steps", len(steps))
	utils.WriteJSON(w, http.StatusCreated, store.Summary{Name: clean, Steps: len(steps), CreatedAt: time.Now().UTC()})
}
