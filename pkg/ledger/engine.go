// Package ledger implements the credit transaction engine: purchases that
// move cash and credits between a project's pool and a buyer's wallet, and
// retirements that permanently remove credits from circulation. Every
// mutation is validated, then committed as one atomic store operation whose
// conditions re-check the preconditions at commit time. Lost optimistic-lock
// races are re-validated and retried a bounded number of times.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/veridex/carbon-ledger/pkg/certificates"
	"github.com/veridex/carbon-ledger/pkg/events"
	"github.com/veridex/carbon-ledger/pkg/lifecycle"
	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
)

const (
	// maxConflictRetries bounds re-validation after a lost version race.
	maxConflictRetries = 3
	// maxSerialAttempts bounds serial regeneration on collision. Collisions
	// are the only retryable failure in the engine.
	maxSerialAttempts = 5
)

// Engine executes purchases and retirements against the ledger store.
type Engine struct {
	Store  storage.LedgerStore
	Issuer *certificates.Issuer
	Events events.Publisher
}

// NewEngine creates an Engine. The event publisher may be nil; committed
// operations are then simply not announced.
func NewEngine(store storage.LedgerStore, issuer *certificates.Issuer, publisher events.Publisher) *Engine {
	return &Engine{Store: store, Issuer: issuer, Events: publisher}
}

// Purchase buys quantity credits of a project for the buyer. On success the
// project's available pool is debited, the buyer's wallet pays the cash and
// holds the credits, and the completed transaction record exists, all from
// the same atomic commit.
func (e *Engine) Purchase(ctx context.Context, buyerID, projectID string, quantity models.Decimal) (*models.Transaction, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		project, err := e.Store.GetProject(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if !lifecycle.Purchasable(project) {
			return nil, fmt.Errorf("project %s in status %s: %w", project.ID, project.Status, storage.ErrProjectNotPurchasable)
		}
		if quantity.GreaterThan(project.AvailableCredits) {
			return nil, fmt.Errorf("requested %s of %s available: %w", quantity, project.AvailableCredits, storage.ErrInsufficientCredits)
		}

		wallet, err := e.Store.GetWallet(ctx, buyerID)
		if err != nil {
			return nil, err
		}
		totalCost := quantity.Mul(project.PricePerUnit).Round(models.CurrencyScale)
		if wallet.CashBalance.LessThan(totalCost) {
			return nil, fmt.Errorf("cost %s exceeds balance %s: %w", totalCost, wallet.CashBalance, storage.ErrInsufficientFunds)
		}

		tx := &models.Transaction{
			ID:          uuid.New().String(),
			BuyerID:     buyerID,
			ProjectID:   projectID,
			Quantity:    quantity,
			UnitPrice:   project.PricePerUnit,
			TotalAmount: totalCost,
			Type:        models.TransactionTypePurchase,
			Status:      models.TransactionCompleted,
			CreatedAt:   time.Now().UTC(),
			GSI1PK:      "TRANSACTIONS",
		}

		err = e.Store.ExecutePurchase(ctx, tx, project, wallet)
		if err == nil {
			e.publish(ctx, events.Event{
				Type: events.EventPurchaseCompleted,
				Payload: events.PurchasePayload{
					TransactionID: tx.ID,
					BuyerID:       tx.BuyerID,
					ProjectID:     tx.ProjectID,
					Quantity:      tx.Quantity,
					TotalAmount:   tx.TotalAmount,
				},
			})
			return tx, nil
		}

		// A conditional failure can mean a genuinely failed precondition or
		// just a stale version snapshot. Loop around: the re-read either
		// surfaces the typed error from fresh state or retries the commit.
		if errors.Is(err, storage.ErrInsufficientCredits) ||
			errors.Is(err, storage.ErrInsufficientFunds) ||
			errors.Is(err, storage.ErrVersionConflict) {
			lastErr = err
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("purchase did not commit after %d attempts: %w", maxConflictRetries+1, lastErr)
}

// Retire permanently removes quantity credits from the wallet and mints a
// retirement certificate. projectID is optional provenance recorded on the
// certificate; credits themselves are fungible across projects. There is no
// reversal operation.
func (e *Engine) Retire(ctx context.Context, userID string, quantity models.Decimal, projectID, reason string) (*models.RetirementCertificate, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	// A named project must at least exist; the ledger does not otherwise
	// constrain which project's provenance a fungible retirement claims.
	if projectID != "" {
		if _, err := e.Store.GetProject(ctx, projectID); err != nil {
			return nil, err
		}
	}

	var lastErr error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		wallet, err := e.Store.GetWallet(ctx, userID)
		if err != nil {
			return nil, err
		}
		if wallet.CreditBalance.LessThan(quantity) {
			return nil, fmt.Errorf("retiring %s of %s held: %w", quantity, wallet.CreditBalance, storage.ErrInsufficientCredits)
		}

		cert, err := e.executeWithFreshSerials(ctx, userID, projectID, quantity, reason, wallet)
		if err == nil {
			e.publish(ctx, events.Event{
				Type: events.EventCreditsRetired,
				Payload: events.RetirementPayload{
					SerialNumber:   cert.SerialNumber,
					UserID:         cert.UserID,
					ProjectID:      cert.ProjectID,
					CreditsRetired: cert.CreditsRetired,
				},
			})
			return cert, nil
		}

		if errors.Is(err, storage.ErrInsufficientCredits) || errors.Is(err, storage.ErrVersionConflict) {
			lastErr = err
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("retirement did not commit after %d attempts: %w", maxConflictRetries+1, lastErr)
}

// executeWithFreshSerials retries the atomic retirement with a newly minted
// serial on each collision, up to the issuance budget.
func (e *Engine) executeWithFreshSerials(ctx context.Context, userID, projectID string, quantity models.Decimal, reason string, wallet *models.Wallet) (*models.RetirementCertificate, error) {
	for attempt := 0; attempt < maxSerialAttempts; attempt++ {
		cert := e.Issuer.NewCertificate(userID, projectID, quantity, reason, time.Now())

		err := e.Store.ExecuteRetirement(ctx, cert, wallet)
		if err == nil {
			return cert, nil
		}
		if errors.Is(err, storage.ErrSerialCollision) {
			slog.Warn("certificate serial collided, regenerating", "serial", cert.SerialNumber, "attempt", attempt+1)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("serial collisions exhausted %d attempts: %w", maxSerialAttempts, storage.ErrIssuanceFailed)
}

func (e *Engine) publish(ctx context.Context, event events.Event) {
	if e.Events == nil {
		return
	}
	if err := e.Events.Publish(ctx, event); err != nil {
		slog.Error("failed to publish ledger event", "type", event.Type, "error", err)
	}
}

// validateQuantity rejects non-positive quantities and quantities finer than
// the ledger's tonnage resolution.
func validateQuantity(quantity models.Decimal) error {
	if !quantity.IsPositive() {
		return fmt.Errorf("quantity %s must be positive: %w", quantity, storage.ErrInvalidQuantity)
	}
	if !quantity.HasScaleAtMost(models.CreditScale) {
		return fmt.Errorf("quantity %s exceeds %d decimal places: %w", quantity, models.CreditScale, storage.ErrInvalidQuantity)
	}
	return nil
}
