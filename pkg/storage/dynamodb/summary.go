package dynamodb

import (
	"context"
	"fmt"

	"github.com/veridex/carbon-ledger/pkg/models"
)

// SummarizeProject computes the ledger aggregate for one project server-side:
// credits sold and retired, sales volume, record counts. This replaces the
// per-page-load client-side table scans of the old marketplace UI with a
// store-owned read API.
func (s *Store) SummarizeProject(ctx context.Context, projectID string) (*models.ProjectSummary, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.ListTransactionsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	certificates, err := s.ListCertificatesByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate certificates: %w", err)
	}

	summary := &models.ProjectSummary{
		ProjectID:        project.ID,
		Status:           project.Status,
		TotalCredits:     project.TotalCredits,
		AvailableCredits: project.AvailableCredits,
		SoldCredits:      models.DecimalZero(),
		RetiredCredits:   models.DecimalZero(),
		SalesVolume:      models.DecimalZero(),
	}

	for _, tx := range transactions {
		if tx.Status != models.TransactionCompleted {
			continue
		}
		summary.SoldCredits = summary.SoldCredits.Add(tx.Quantity)
		summary.SalesVolume = summary.SalesVolume.Add(tx.TotalAmount)
		summary.TransactionCount++
	}

	for _, cert := range certificates {
		summary.RetiredCredits = summary.RetiredCredits.Add(cert.CreditsRetired)
		summary.CertificateCount++
	}

	return summary, nil
}
