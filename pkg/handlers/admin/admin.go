// Package admin exposes the back-office operations that drive the
// certification state machine. Routes mounting these handlers are gated on
// the admin role grant; the handlers translate workflow outcomes, they do not
// re-implement the transition rules.
package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/veridex/carbon-ledger/pkg/api"
	"github.com/veridex/carbon-ledger/pkg/lifecycle"
	"github.com/veridex/carbon-ledger/pkg/mapping"
	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
)

// AdminHandler holds the dependencies for admin certification handlers.
type AdminHandler struct {
	Workflow *lifecycle.Workflow
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(workflow *lifecycle.Workflow) *AdminHandler {
	return &AdminHandler{Workflow: workflow}
}

// AdvanceProject moves a project to the next certification stage.
func (h *AdminHandler) AdvanceProject(w http.ResponseWriter, r *http.Request, projectId string) {
	project, err := h.Workflow.Advance(r.Context(), projectId)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeProject(w, project)
}

// RejectProject transitions a project to the rejected terminal state.
func (h *AdminHandler) RejectProject(w http.ResponseWriter, r *http.Request, projectId string) {
	var body api.RejectProject
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	project, err := h.Workflow.Reject(r.Context(), projectId, body.Reason)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeProject(w, project)
}

// RetireProject transitions an active project to the retired terminal state.
func (h *AdminHandler) RetireProject(w http.ResponseWriter, r *http.Request, projectId string) {
	project, err := h.Workflow.Retire(r.Context(), projectId)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeProject(w, project)
}

// UpdateVerification patches a project's verification metadata.
func (h *AdminHandler) UpdateVerification(w http.ResponseWriter, r *http.Request, projectId string) {
	var body api.VerificationUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	project, err := h.Workflow.UpdateVerification(r.Context(), projectId, mapping.ToDomainVerificationUpdate(&body))
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeProject(w, project)
}

func (h *AdminHandler) writeWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Project not found", http.StatusNotFound)
	case errors.Is(err, lifecycle.ErrRejectionReasonRequired):
		http.Error(w, "Rejection reason is required", http.StatusBadRequest)
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, fmt.Sprintf("Failed to update project: %v", err), http.StatusInternalServerError)
	}
}

func (h *AdminHandler) writeProject(w http.ResponseWriter, project *models.Project) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiProject(project)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
