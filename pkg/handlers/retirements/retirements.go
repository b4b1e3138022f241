package retirements

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/veridex/carbon-ledger/pkg/api"
	"github.com/veridex/carbon-ledger/pkg/auth"
	"github.com/veridex/carbon-ledger/pkg/ledger"
	"github.com/veridex/carbon-ledger/pkg/mapping"
	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
)

// RetirementsHandler holds the dependencies for retirement-related handlers.
type RetirementsHandler struct {
	Engine       *ledger.Engine
	Certificates storage.CertificateReader
}

// NewRetirementsHandler creates a new RetirementsHandler.
func NewRetirementsHandler(engine *ledger.Engine, certificates storage.CertificateReader) *RetirementsHandler {
	return &RetirementsHandler{Engine: engine, Certificates: certificates}
}

// CreateRetirement permanently retires credits from the caller's wallet and
// returns the minted certificate. There is no undo.
func (h *RetirementsHandler) CreateRetirement(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Missing identity", http.StatusUnauthorized)
		return
	}

	var newRetirement api.NewRetirement
	if err := json.NewDecoder(r.Body).Decode(&newRetirement); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	projectID := ""
	if newRetirement.ProjectId != nil {
		projectID = uuid.UUID(*newRetirement.ProjectId).String()
	}
	reason := ""
	if newRetirement.Reason != nil {
		reason = *newRetirement.Reason
	}

	cert, err := h.Engine.Retire(r.Context(), principal.UserID, models.NewDecimal(newRetirement.Quantity), projectID, reason)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidQuantity):
			http.Error(w, "Invalid quantity", http.StatusBadRequest)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Project or wallet not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrInsufficientCredits):
			http.Error(w, "Not enough credits held", http.StatusUnprocessableEntity)
		case errors.Is(err, storage.ErrIssuanceFailed):
			slog.Error("certificate issuance failed", "user", principal.UserID, "error", err)
			http.Error(w, "Certificate issuance failed", http.StatusServiceUnavailable)
		default:
			slog.Error("retirement failed", "user", principal.UserID, "error", err)
			http.Error(w, "Failed to retire credits", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiCertificate(cert)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListMyCertificates lists the caller's retirement certificates.
func (h *RetirementsHandler) ListMyCertificates(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Missing identity", http.StatusUnauthorized)
		return
	}

	domainCerts, err := h.Certificates.ListCertificatesByUser(r.Context(), principal.UserID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve certificates: %v", err), http.StatusInternalServerError)
		return
	}

	apiCerts := make([]*api.RetirementCertificate, len(domainCerts))
	for i, cert := range domainCerts {
		apiCerts[i] = mapping.ToApiCertificate(&cert)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiCerts); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetCertificateBySerial is the public verification lookup: anyone holding a
// serial number can confirm what was retired, by whom and when.
func (h *RetirementsHandler) GetCertificateBySerial(w http.ResponseWriter, r *http.Request, serialNumber string) {
	cert, err := h.Certificates.GetCertificate(r.Context(), serialNumber)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Certificate not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve certificate: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiCertificate(cert)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
