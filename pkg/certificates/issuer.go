// Package certificates mints retirement certificates with registry-style
// serial numbers. Serials combine a registry prefix, a high-resolution
// timestamp and a random suffix; the store's unique constraint on the serial
// is the final arbiter, and a collision there is the one retryable failure in
// the whole engine.
package certificates

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veridex/carbon-ledger/pkg/models"
)

// DefaultPrefix is the registry prefix stamped on serials when none is configured.
const DefaultPrefix = "VCR"

// Issuer generates immutable retirement certificates.
type Issuer struct {
	Prefix string
}

// NewIssuer creates an Issuer with the given registry prefix, falling back to
// DefaultPrefix when empty.
func NewIssuer(prefix string) *Issuer {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Issuer{Prefix: prefix}
}

// Serial mints a fresh serial number, e.g. "VCR-20260901-1756722000123456789-9F3A8C21".
// The random suffix keeps concurrent issuers from colliding even within the
// same nanosecond.
func (i *Issuer) Serial(now time.Time) string {
	entropy := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%d-%s", i.Prefix, now.UTC().Format("20060102"), now.UTC().UnixNano(), entropy)
}

// NewCertificate builds the certificate record for a retirement. The project
// reference is best-effort provenance: credits are fungible, so it stays
// empty unless the retiring user named a project.
func (i *Issuer) NewCertificate(userID, projectID string, quantity models.Decimal, reason string, now time.Time) *models.RetirementCertificate {
	return &models.RetirementCertificate{
		SerialNumber:     i.Serial(now),
		CertificateID:    uuid.New().String(),
		UserID:           userID,
		ProjectID:        projectID,
		CreditsRetired:   quantity,
		RetirementReason: reason,
		CreatedAt:        now.UTC(),
		GSI1PK:           "CERTIFICATES",
	}
}
