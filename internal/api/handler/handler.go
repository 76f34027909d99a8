// Package handler implements the HTTP endpoints of the pipeline builder API.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"go-pipeline-builder/internal/builder"
	"go-pipeline-builder/internal/logging"
	"go-pipeline-builder/internal/store"
	"go-pipeline-builder/pkg/utils"
)

const maxBodyBytes = 1 << 20

// Recorder receives the domain metrics of the API. *metrics.Collector
// implements it.
type Recorder interface {
	CommandApplied(op string, err error)
	StoreOperation(op string, err error)
	SetActiveSessions(n int)
}

type nopRecorder struct{}

func (nopRecorder) CommandApplied(string, error) {}
func (nopRecorder) StoreOperation(string, error) {}
func (nopRecorder) SetActiveSessions(int)        {}

// Handler holds the dependencies shared by every endpoint.
type Handler struct {
	sessions *builder.Manager
	store    store.Store
	metrics  Recorder
	log      *slog.Logger
}

// New returns a Handler. A nil rec disables metrics.
func New(sessions *builder.Manager, st store.Store, rec Recorder) *Handler {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Handler{
		sessions: sessions,
		store:    st,
		metrics:  rec,
		log:      logging.New("api"),
	}
}

// pathParams extracts the "*" segments of pattern from path. Patterns are the
// ones registered on the router, so a mismatch means a programming error.
func pathParams(path, pattern string) ([]string, bool) {
	pp := strings.Split(strings.Trim(path, "/"), "/")
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	if len(pp) != len(ps) {
		return nil, false
	}
	var out []string
	for i, seg := range ps {
		switch {
		case seg == "*":
			if pp[i] == "" {
				return nil, false
			}
			out = append(out, pp[i])
		case seg != pp[i]:
			return nil, false
		}
	}
	return out, true
}

// decodeJSON reads r's body into v. An empty body leaves v untouched when
// optional is set.
func decodeJSON(r *http.Request, v any, optional bool) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) && optional {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid JSON payload: %w", err)
	}
	return nil
}

// storeStatus maps a store error to its HTTP status.
func storeStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidName):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) storeError(w http.ResponseWriter, op string, err error) {
	status := storeStatus(err)
	if status == http.StatusInternalServerError {
		h.log.Error("store operation failed", "op", op, "error", err)
		utils.WriteError(w, status, "Internal server error")
		return
	}
	utils.WriteError(w, status, err.Error())
}
