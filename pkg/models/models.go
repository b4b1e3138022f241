package models

import (
	"time"
)

// ProjectStatus defines the certification pipeline states of a project.
type ProjectStatus string

const (
	StatusApplication   ProjectStatus = "application"
	StatusRegistration  ProjectStatus = "registration"
	StatusPreValidation ProjectStatus = "pre_validation"
	StatusValidation    ProjectStatus = "validation"
	StatusMonitoring    ProjectStatus = "monitoring"
	StatusAudited       ProjectStatus = "audited"
	StatusActive        ProjectStatus = "active"
	StatusRejected      ProjectStatus = "rejected"
	StatusRetired       ProjectStatus = "retired"
)

// TransactionType defines the kind of ledger event a transaction records.
type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
)

// TransactionStatus defines the possible states of a transaction record.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Wallet represents the internal domain model for a user's balances.
// Balances are mutated only through conditional ledger writes; the version
// counter backs optimistic locking.
type Wallet struct {
	UserID        string    `json:"user_id" dynamodbav:"user_id"`
	CashBalance   Decimal   `json:"cash_balance" dynamodbav:"cash_balance"`
	EscrowBalance Decimal   `json:"escrow_balance" dynamodbav:"escrow_balance"`
	CreditBalance Decimal   `json:"credit_balance" dynamodbav:"credit_balance"`
	Version       int64     `json:"version" dynamodbav:"version"`
	CreatedAt     time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// Project represents one carbon-reduction initiative moving through the
// certification pipeline. AvailableCredits only ever decreases (purchases) and
// never exceeds TotalCredits.
type Project struct {
	ID                string        `dynamodbav:"id"`
	OwnerID           string        `dynamodbav:"owner_id"`
	Name              string        `dynamodbav:"name"`
	Description       string        `dynamodbav:"description,omitempty"`
	Status            ProjectStatus `dynamodbav:"status"`
	CurrentStage      ProjectStatus `dynamodbav:"current_stage"`
	TotalCredits      Decimal       `dynamodbav:"total_credits"`
	AvailableCredits  Decimal       `dynamodbav:"available_credits"`
	PricePerUnit      Decimal       `dynamodbav:"price_per_unit"`
	RegistryName      string        `dynamodbav:"registry_name,omitempty"`
	RegistryProjectID string        `dynamodbav:"registry_project_id,omitempty"`
	OwnershipProofURL string        `dynamodbav:"ownership_proof_url,omitempty"`
	PCNDocumentURL    string        `dynamodbav:"pcn_document_url,omitempty"`

	OwnershipProofSigned      bool       `dynamodbav:"ownership_proof_signed"`
	OwnershipProofSignedAt    *time.Time `dynamodbav:"ownership_proof_signed_at,omitempty"`
	NoHarmDeclarationSigned   bool       `dynamodbav:"no_harm_declaration_signed"`
	NoHarmDeclarationSignedAt *time.Time `dynamodbav:"no_harm_declaration_signed_at,omitempty"`
	MandateSigned             bool       `dynamodbav:"mandate_signed"`
	MandateSignedAt           *time.Time `dynamodbav:"mandate_signed_at,omitempty"`

	ValidatedAt     *time.Time `dynamodbav:"validated_at,omitempty"`
	AuditedAt       *time.Time `dynamodbav:"audited_at,omitempty"`
	RetiredAt       *time.Time `dynamodbav:"retired_at,omitempty"`
	RejectionReason string     `dynamodbav:"rejection_reason,omitempty"`

	Version   int64     `dynamodbav:"version"`
	CreatedAt time.Time `dynamodbav:"created_at"`
	UpdatedAt time.Time `dynamodbav:"updated_at"`
}

// Transaction is the immutable record of one purchase. It is written exactly
// once, inside the same atomic write that moves the balances, and never
// mutated afterwards.
type Transaction struct {
	ID          string            `dynamodbav:"id"`
	BuyerID     string            `dynamodbav:"buyer_id"`
	ProjectID   string            `dynamodbav:"project_id"`
	Quantity    Decimal           `dynamodbav:"quantity"`
	UnitPrice   Decimal           `dynamodbav:"unit_price"`
	TotalAmount Decimal           `dynamodbav:"total_amount"`
	Type        TransactionType   `dynamodbav:"type"`
	Status      TransactionStatus `dynamodbav:"status"`
	CreatedAt   time.Time         `dynamodbav:"created_at"`
	GSI1PK      string            `dynamodbav:"gsi1pk"`
}

// RetirementCertificate is the immutable proof of permanent credit retirement.
// The serial number is the primary key; the store's unique constraint on it is
// what makes concurrent issuance safe.
type RetirementCertificate struct {
	SerialNumber     string    `dynamodbav:"serial_number"`
	CertificateID    string    `dynamodbav:"certificate_id"`
	UserID           string    `dynamodbav:"user_id"`
	ProjectID        string    `dynamodbav:"project_id,omitempty"`
	CreditsRetired   Decimal   `dynamodbav:"credits_retired"`
	RetirementReason string    `dynamodbav:"retirement_reason,omitempty"`
	CreatedAt        time.Time `dynamodbav:"created_at"`
	GSI1PK           string    `dynamodbav:"gsi1pk"`
}

// ProjectSummary is the store-owned aggregate view of a project's ledger
// activity, computed server-side instead of in UI code.
type ProjectSummary struct {
	ProjectID        string        `json:"project_id"`
	Status           ProjectStatus `json:"status"`
	TotalCredits     Decimal       `json:"total_credits"`
	AvailableCredits Decimal       `json:"available_credits"`
	SoldCredits      Decimal       `json:"sold_credits"`
	RetiredCredits   Decimal       `json:"retired_credits"`
	SalesVolume      Decimal       `json:"sales_volume"`
	TransactionCount int           `json:"transaction_count"`
	CertificateCount int           `json:"certificate_count"`
}
