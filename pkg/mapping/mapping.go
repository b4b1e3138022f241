package mapping

import (
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/veridex/carbon-ledger/pkg/api"
	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
)

// toAPIUUID converts an engine-minted uuid string to the API UUID type.
// Domain ids are always generated by the engine, so a malformed id maps to
// the zero UUID instead of an error path.
func toAPIUUID(id string) openapi_types.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return openapi_types.UUID{}
	}
	return openapi_types.UUID(parsed)
}

// ToApiWallet converts a domain Wallet model to an API Wallet model.
func ToApiWallet(wallet *models.Wallet) *api.Wallet {
	return &api.Wallet{
		UserId:        wallet.UserID,
		CashBalance:   wallet.CashBalance.Decimal,
		EscrowBalance: wallet.EscrowBalance.Decimal,
		CreditBalance: wallet.CreditBalance.Decimal,
		Version:       wallet.Version,
		CreatedAt:     wallet.CreatedAt,
		UpdatedAt:     wallet.UpdatedAt,
	}
}

// ToDomainNewWallet converts an API NewWallet model to a domain Wallet model.
// New wallets start empty; funding is the payment collaborator's business.
func ToDomainNewWallet(newWallet *api.NewWallet) *models.Wallet {
	return &models.Wallet{
		UserID:        newWallet.UserId,
		CashBalance:   models.DecimalZero(),
		EscrowBalance: models.DecimalZero(),
		CreditBalance: models.DecimalZero(),
	}
}

// ToDomainNewProject converts a registration submission to a domain Project.
func ToDomainNewProject(newProject *api.NewProject, ownerID string) *models.Project {
	project := &models.Project{
		OwnerID:      ownerID,
		Name:         newProject.Name,
		TotalCredits: models.NewDecimal(newProject.TotalCredits),
		PricePerUnit: models.NewDecimal(newProject.PricePerUnit),
	}
	if newProject.Description != nil {
		project.Description = *newProject.Description
	}
	if newProject.RegistryName != nil {
		project.RegistryName = *newProject.RegistryName
	}
	if newProject.RegistryProjectId != nil {
		project.RegistryProjectID = *newProject.RegistryProjectId
	}
	if newProject.OwnershipProofUrl != nil {
		project.OwnershipProofURL = *newProject.OwnershipProofUrl
	}
	if newProject.PcnDocumentUrl != nil {
		project.PCNDocumentURL = *newProject.PcnDocumentUrl
	}
	return project
}

// ToApiProject converts a domain Project model to an API Project model.
func ToApiProject(project *models.Project) *api.Project {
	return &api.Project{
		Id:                toAPIUUID(project.ID),
		OwnerId:           project.OwnerID,
		Name:              project.Name,
		Description:       project.Description,
		Status:            string(project.Status),
		CurrentStage:      string(project.CurrentStage),
		TotalCredits:      project.TotalCredits.Decimal,
		AvailableCredits:  project.AvailableCredits.Decimal,
		PricePerUnit:      project.PricePerUnit.Decimal,
		RegistryName:      project.RegistryName,
		RegistryProjectId: project.RegistryProjectID,
		OwnershipProofUrl: project.OwnershipProofURL,
		PcnDocumentUrl:    project.PCNDocumentURL,

		OwnershipProofSigned:      project.OwnershipProofSigned,
		OwnershipProofSignedAt:    project.OwnershipProofSignedAt,
		NoHarmDeclarationSigned:   project.NoHarmDeclarationSigned,
		NoHarmDeclarationSignedAt: project.NoHarmDeclarationSignedAt,
		MandateSigned:             project.MandateSigned,
		MandateSignedAt:           project.MandateSignedAt,

		ValidatedAt:     project.ValidatedAt,
		AuditedAt:       project.AuditedAt,
		RetiredAt:       project.RetiredAt,
		RejectionReason: project.RejectionReason,

		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}
}

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:          toAPIUUID(tx.ID),
		BuyerId:     tx.BuyerID,
		ProjectId:   toAPIUUID(tx.ProjectID),
		Quantity:    tx.Quantity.Decimal,
		UnitPrice:   tx.UnitPrice.Decimal,
		TotalAmount: tx.TotalAmount.Decimal,
		Type:        string(tx.Type),
		Status:      string(tx.Status),
		CreatedAt:   tx.CreatedAt,
	}
}

// ToApiCertificate converts a domain RetirementCertificate to its API model.
func ToApiCertificate(cert *models.RetirementCertificate) *api.RetirementCertificate {
	return &api.RetirementCertificate{
		SerialNumber:     cert.SerialNumber,
		CertificateId:    toAPIUUID(cert.CertificateID),
		UserId:           cert.UserID,
		ProjectId:        cert.ProjectID,
		CreditsRetired:   cert.CreditsRetired.Decimal,
		RetirementReason: cert.RetirementReason,
		CreatedAt:        cert.CreatedAt,
	}
}

// ToApiProjectSummary converts a domain ProjectSummary to its API model.
func ToApiProjectSummary(summary *models.ProjectSummary) *api.ProjectSummary {
	return &api.ProjectSummary{
		ProjectId:        toAPIUUID(summary.ProjectID),
		Status:           string(summary.Status),
		TotalCredits:     summary.TotalCredits.Decimal,
		AvailableCredits: summary.AvailableCredits.Decimal,
		SoldCredits:      summary.SoldCredits.Decimal,
		RetiredCredits:   summary.RetiredCredits.Decimal,
		SalesVolume:      summary.SalesVolume.Decimal,
		TransactionCount: summary.TransactionCount,
		CertificateCount: summary.CertificateCount,
	}
}

// ToDomainVerificationUpdate converts the PATCH body into the store's update set.
func ToDomainVerificationUpdate(update *api.VerificationUpdate) storage.VerificationUpdate {
	return storage.VerificationUpdate{
		RegistryName:            update.RegistryName,
		RegistryProjectID:       update.RegistryProjectId,
		OwnershipProofURL:       update.OwnershipProofUrl,
		PCNDocumentURL:          update.PcnDocumentUrl,
		OwnershipProofSigned:    update.OwnershipProofSigned,
		NoHarmDeclarationSigned: update.NoHarmDeclarationSigned,
		MandateSigned:           update.MandateSigned,
	}
}
