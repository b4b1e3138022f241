package storage

import (
	"context"

	"github.com/veridex/carbon-ledger/pkg/models"
)

// CertificateReader defines the interface for reading retirement certificates.
// Certificates are written only through LedgerExecutor.ExecuteRetirement and
// are never updated afterwards.
type CertificateReader interface {
	// GetCertificate retrieves a certificate by its serial number. This backs
	// the public verification lookup.
	GetCertificate(ctx context.Context, serialNumber string) (*models.RetirementCertificate, error)

	// ListCertificatesByUser retrieves all certificates held by a user.
	ListCertificatesByUser(ctx context.Context, userID string) ([]models.RetirementCertificate, error)

	// ListCertificatesByProject retrieves all certificates referencing a project.
	ListCertificatesByProject(ctx context.Context, projectID string) ([]models.RetirementCertificate, error)

	// ListCertificates retrieves every certificate. Used by the integrity audit.
	ListCertificates(ctx context.Context) ([]models.RetirementCertificate, error)
}
