// Package api defines the wire models of the HTTP surface. Decimal fields
// marshal as quoted decimal strings, never as binary floats.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// NewWallet is the request body for provisioning a wallet.
type NewWallet struct {
	UserId string `json:"user_id"`
}

// Wallet is the API representation of a user's balances.
type Wallet struct {
	UserId        string          `json:"user_id"`
	CashBalance   decimal.Decimal `json:"cash_balance"`
	EscrowBalance decimal.Decimal `json:"escrow_balance"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewProject is the request body for a project registration submission.
type NewProject struct {
	Name              string          `json:"name"`
	Description       *string         `json:"description,omitempty"`
	TotalCredits      decimal.Decimal `json:"total_credits"`
	PricePerUnit      decimal.Decimal `json:"price_per_unit"`
	RegistryName      *string         `json:"registry_name,omitempty"`
	RegistryProjectId *string         `json:"registry_project_id,omitempty"`
	OwnershipProofUrl *string         `json:"ownership_proof_url,omitempty"`
	PcnDocumentUrl    *string         `json:"pcn_document_url,omitempty"`
}

// Project is the API representation of a project.
type Project struct {
	Id                openapi_types.UUID `json:"id"`
	OwnerId           string             `json:"owner_id"`
	Name              string             `json:"name"`
	Description       string             `json:"description,omitempty"`
	Status            string             `json:"status"`
	CurrentStage      string             `json:"current_stage"`
	TotalCredits      decimal.Decimal    `json:"total_credits"`
	AvailableCredits  decimal.Decimal    `json:"available_credits"`
	PricePerUnit      decimal.Decimal    `json:"price_per_unit"`
	RegistryName      string             `json:"registry_name,omitempty"`
	RegistryProjectId string             `json:"registry_project_id,omitempty"`
	OwnershipProofUrl string             `json:"ownership_proof_url,omitempty"`
	PcnDocumentUrl    string             `json:"pcn_document_url,omitempty"`

	OwnershipProofSigned      bool       `json:"ownership_proof_signed"`
	OwnershipProofSignedAt    *time.Time `json:"ownership_proof_signed_at,omitempty"`
	NoHarmDeclarationSigned   bool       `json:"no_harm_declaration_signed"`
	NoHarmDeclarationSignedAt *time.Time `json:"no_harm_declaration_signed_at,omitempty"`
	MandateSigned             bool       `json:"mandate_signed"`
	MandateSignedAt           *time.Time `json:"mandate_signed_at,omitempty"`

	ValidatedAt     *time.Time `json:"validated_at,omitempty"`
	AuditedAt       *time.Time `json:"audited_at,omitempty"`
	RetiredAt       *time.Time `json:"retired_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPurchase is the request body for buying project credits.
type NewPurchase struct {
	ProjectId openapi_types.UUID `json:"project_id"`
	Quantity  decimal.Decimal    `json:"quantity"`
}

// Transaction is the API representation of an immutable purchase record.
type Transaction struct {
	Id          openapi_types.UUID `json:"id"`
	BuyerId     string             `json:"buyer_id"`
	ProjectId   openapi_types.UUID `json:"project_id"`
	Quantity    decimal.Decimal    `json:"quantity"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Type        string             `json:"type"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
}

// NewRetirement is the request body for permanently retiring credits.
// ProjectId is optional provenance; credits are fungible.
type NewRetirement struct {
	Quantity  decimal.Decimal     `json:"quantity"`
	ProjectId *openapi_types.UUID `json:"project_id,omitempty"`
	Reason    *string             `json:"reason,omitempty"`
}

// RetirementCertificate is the API representation of an immutable retirement proof.
type RetirementCertificate struct {
	SerialNumber     string             `json:"serial_number"`
	CertificateId    openapi_types.UUID `json:"certificate_id"`
	UserId           string             `json:"user_id"`
	ProjectId        string             `json:"project_id,omitempty"`
	CreditsRetired   decimal.Decimal    `json:"credits_retired"`
	RetirementReason string             `json:"retirement_reason,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}

// ProjectSummary is the server-side ledger aggregate for one project.
type ProjectSummary struct {
	ProjectId        openapi_types.UUID `json:"project_id"`
	Status           string             `json:"status"`
	TotalCredits     decimal.Decimal    `json:"total_credits"`
	AvailableCredits decimal.Decimal    `json:"available_credits"`
	SoldCredits      decimal.Decimal    `json:"sold_credits"`
	RetiredCredits   decimal.Decimal    `json:"retired_credits"`
	SalesVolume      decimal.Decimal    `json:"sales_volume"`
	TransactionCount int                `json:"transaction_count"`
	CertificateCount int                `json:"certificate_count"`
}

// RejectProject is the request body for rejecting a project.
type RejectProject struct {
	Reason string `json:"reason"`
}

// VerificationUpdate is the request body for patching verification metadata.
// Absent fields are left untouched.
type VerificationUpdate struct {
	RegistryName            *string `json:"registry_name,omitempty"`
	RegistryProjectId       *string `json:"registry_project_id,omitempty"`
	OwnershipProofUrl       *string `json:"ownership_proof_url,omitempty"`
	PcnDocumentUrl          *string `json:"pcn_document_url,omitempty"`
	OwnershipProofSigned    *bool   `json:"ownership_proof_signed,omitempty"`
	NoHarmDeclarationSigned *bool   `json:"no_harm_declaration_signed,omitempty"`
	MandateSigned           *bool   `json:"mandate_signed,omitempty"`
}
