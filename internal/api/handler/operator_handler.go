package handler

import (
	"net/http"

	"go-pipeline-builder/internal/meta"
	"go-pipeline-builder/pkg/utils"
)

// OperatorResponse is an operator with its parameter metadata.
type OperatorResponse struct {
	meta.OperatorMeta
	Params       []meta.ParamMeta `json:"params"`
	ActionParams []meta.ParamMeta `json:"actionParams,omitempty"`
}

func operatorResponse(m meta.OperatorMeta) OperatorResponse {
	resp := OperatorResponse{OperatorMeta: m, Params: meta.LookupParams(m.Type)}
	if m.Type == meta.Aggregate {
		resp.ActionParams = meta.AggregateActionParams()
	}
	return resp
}

// ListOperators returns the operator catalogue
// @Summary List operators
// @Description List every operator type with its parameter metadata, in catalogue order
// @Tags operators
// @Produce json
// @Success 200 {array} OperatorResponse
// @Router /operators [get]
func (h *Handler) ListOperators(w http.ResponseWriter, r *http.Request) {
	all := meta.All()
	out := make([]OperatorResponse, 0, len(all))
	for _, m := range all {
		out = append(out, operatorResponse(m))
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

// GetOperator returns one operator
// @Summary Get operator
// @Tags operators
// @Produce json
// @Param type path string true "Operator type"
// @Success 200 {object} OperatorResponse
// @Failure 404 {object} utils.ErrorResponse "Unknown operator"
// @Router /operators/{type} [get]
func (h *Handler) GetOperator(w http.ResponseWriter, r *http.Request) {
	params, ok := pathParams(r.URL.Path, "/api/v1/operators/*")
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid path")
		return
	}
	m, ok := meta.Lookup(meta.OperatorType(params[0]))
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "Unknown operator: "+params[0])
		return
	}
	utils.WriteJSON(w, http.StatusOK, operatorResponse(m))
}
