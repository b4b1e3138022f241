package projects

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/veridex/carbon-ledger/pkg/api"
	"github.com/veridex/carbon-ledger/pkg/auth"
	"github.com/veridex/carbon-ledger/pkg/mapping"
	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
)

// ProjectsHandler holds the dependencies for project-related handlers.
type ProjectsHandler struct {
	Store        storage.ProjectStore
	Transactions storage.TransactionReader
}

// NewProjectsHandler creates a new ProjectsHandler.
func NewProjectsHandler(store storage.ProjectStore, transactions storage.TransactionReader) *ProjectsHandler {
	return &ProjectsHandler{Store: store, Transactions: transactions}
}

// RegisterProject accepts a registration submission from a project owner.
// The project starts in the application stage of the certification pipeline.
func (h *ProjectsHandler) RegisterProject(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Missing identity", http.StatusUnauthorized)
		return
	}

	var newProject api.NewProject
	if err := json.NewDecoder(r.Body).Decode(&newProject); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newProject.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if !newProject.TotalCredits.IsPositive() {
		http.Error(w, "total_credits must be positive", http.StatusBadRequest)
		return
	}
	if !newProject.PricePerUnit.IsPositive() {
		http.Error(w, "price_per_unit must be positive", http.StatusBadRequest)
		return
	}

	createdProject, err := h.Store.CreateProject(r.Context(), mapping.ToDomainNewProject(&newProject, principal.UserID))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to register project: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiProject(createdProject)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListProjects retrieves all projects, or only the caller's own when the
// "mine" query flag is set.
func (h *ProjectsHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	var err error
	var domainProjects []models.Project

	if r.URL.Query().Get("mine") == "true" {
		principal, ok := auth.FromContext(r.Context())
		if !ok {
			http.Error(w, "Missing identity", http.StatusUnauthorized)
			return
		}
		domainProjects, err = h.Store.ListProjectsByOwner(r.Context(), principal.UserID)
	} else {
		domainProjects, err = h.Store.ListProjects(r.Context())
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve projects: %v", err), http.StatusInternalServerError)
		return
	}

	apiProjects := make([]*api.Project, len(domainProjects))
	for i, project := range domainProjects {
		apiProjects[i] = mapping.ToApiProject(&project)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiProjects); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetProjectById retrieves one project.
func (h *ProjectsHandler) GetProjectById(w http.ResponseWriter, r *http.Request, projectId string) {
	domainProject, err := h.Store.GetProject(r.Context(), projectId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve project: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiProject(domainProject)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetProjectSummary returns the store-owned ledger aggregate for a project.
func (h *ProjectsHandler) GetProjectSummary(w http.ResponseWriter, r *http.Request, projectId string) {
	summary, err := h.Store.SummarizeProject(r.Context(), projectId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to summarize project: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiProjectSummary(summary)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListProjectTransactions lists the audit trail of purchases against a
// project (back-office only).
func (h *ProjectsHandler) ListProjectTransactions(w http.ResponseWriter, r *http.Request, projectId string) {
	domainTxs, err := h.Transactions.ListTransactionsByProject(r.Context(), projectId)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	apiTxs := make([]*api.Transaction, len(domainTxs))
	for i, tx := range domainTxs {
		apiTxs[i] = mapping.ToApiTransaction(&tx)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiTxs); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
