package storage

import (
	"context"

	"github.com/veridex/carbon-ledger/pkg/models"
)

// TransactionReader defines the interface for reading transaction records.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListTransactionsByBuyer retrieves all transactions for a buyer.
	ListTransactionsByBuyer(ctx context.Context, buyerID string) ([]models.Transaction, error)

	// ListTransactionsByProject retrieves all transactions against a project.
	ListTransactionsByProject(ctx context.Context, projectID string) ([]models.Transaction, error)

	// ListTransactions retrieves every transaction. Used by the integrity audit.
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
}

// LedgerExecutor defines the two privileged atomic operations of the credit
// ledger. Each call either applies every mutation it names or none of them;
// preconditions are re-checked inside the write via condition expressions
// against the snapshot versions carried on the wallet and project.
type LedgerExecutor interface {
	// ExecutePurchase atomically debits the project's available credits,
	// moves cash out of and credits into the buyer's wallet, and appends the
	// completed transaction record.
	ExecutePurchase(ctx context.Context, tx *models.Transaction, project *models.Project, wallet *models.Wallet) error

	// ExecuteRetirement atomically debits the wallet's credit balance and
	// persists the immutable retirement certificate. A duplicate serial
	// surfaces as ErrSerialCollision.
	ExecuteRetirement(ctx context.Context, cert *models.RetirementCertificate, wallet *models.Wallet) error
}
