package purchases

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

// PurchasesHandler holds the dependencies for purchase-related handlers.
type PurchasesHandler struct {
	Engine       *ledger.Engine
	Transactions storage.TransactionReader
}

// NewPurchasesHandler creates a new PurchasesHandler.
func NewPurchasesHandler(engine *ledger.Engine, transactions storage.TransactionReader) *PurchasesHandler {
	return &PurchasesHandler{Engine: engine, Transactions: transactions}
}

// CreatePurchase buys credits of a project for the calling buyer.
func (h *PurchasesHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Missing identity", http.StatusUnauthorized)
		return
	}

	var newPurchase api.NewPurchase
	if err := json.NewDecoder(r.Body).Decode(&newPurchase); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	tx, err := h.Engine.Purchase(r.Context(), principal.UserID, uuid.UUID(newPurchase.ProjectId).String(), models.NewDecimal(newPurchase.Quantity))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidQuantity):
			http.Error(w, "Invalid quantity", http.StatusBadRequest)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Project or wallet not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrProjectNotPurchasable):
			http.Error(w, "Project is not open for purchase", http.StatusConflict)
		case errors.Is(err, storage.ErrInsufficientCredits):
			http.Error(w, "Not enough credits available", http.StatusUnprocessableEntity)
		case errors.Is(err, storage.ErrInsufficientFunds):
			http.Error(w, "Insufficient funds", http.StatusUnprocessableEntity)
		default:
			slog.Error("purchase failed", "buyer", principal.UserID, "error", err)
			http.Error(w, "Failed to execute purchase", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(mapping.ToApiTransaction(tx)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListMyPurchases lists the caller's transaction history.
func (h *PurchasesHandler) ListMyPurchases(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Missing identity", http.StatusUnauthorized)
		return
	}

	domainTxs, err := h.Transactions.ListTransactionsByBuyer(r.Context(), principal.UserID)
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

// GetTransactionById retrieves one transaction record. Buyers may read their
// own records; anything else takes the admin grant.
func (h *PurchasesHandler) GetTransactionById(w http.ResponseWriter, r *http.Request, transactionId string) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Missing identity", http.StatusUnauthorized)
		return
	}

	domainTx, err := h.Transactions.GetTransaction(r.Context(), transactionId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve transaction: %v", err), http.StatusInternalServerError)
		}
		return
	}
	if domainTx.BuyerID != principal.UserID && !principal.HasRole(models.RoleAdmin) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiTransaction(domainTx)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
