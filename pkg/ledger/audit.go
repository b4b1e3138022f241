package ledger

import (
	"context"
	"fmt"

	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
)

// Finding is a single integrity violation discovered by an audit run.
type Finding struct {
	Check  string `json:"check"`
	Entity string `json:"entity"`
	Detail string `json:"detail"`
}

// AuditReport summarizes one read-only pass over the ledger tables.
type AuditReport struct {
	WalletsChecked      int       `json:"wallets_checked"`
	ProjectsChecked     int       `json:"projects_checked"`
	TransactionsChecked int       `json:"transactions_checked"`
	CertificatesChecked int       `json:"certificates_checked"`
	Findings            []Finding `json:"findings"`
}

// Clean reports whether the audit found no violations.
func (r *AuditReport) Clean() bool {
	return len(r.Findings) == 0
}

func (r *AuditReport) flag(check, entity, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Check:  check,
		Entity: entity,
		Detail: fmt.Sprintf(format, args...),
	})
}

// Auditor cross-checks the ledger tables against each other. It only reads;
// repairing a violation is an operator decision, not something to automate
// against live balances.
type Auditor struct {
	Store storage.LedgerStore
}

// NewAuditor creates an Auditor over the given store.
func NewAuditor(store storage.LedgerStore) *Auditor {
	return &Auditor{Store: store}
}

// Run executes every integrity check and returns the combined report.
// The checks are:
//   - no wallet balance is negative
//   - no project has sold more credits than it was certified for
//   - per project, credits sold equal the sum of its completed transactions
//   - per user, credits bought minus credits retired equal the wallet balance
//   - no two certificates share a serial number
func (a *Auditor) Run(ctx context.Context) (*AuditReport, error) {
	report := &AuditReport{}

	wallets, err := a.Store.ListWallets(ctx)
	if err != nil {
		return nil, fmt.Errorf("audit: failed to list wallets: %w", err)
	}
	projects, err := a.Store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("audit: failed to list projects: %w", err)
	}
	transactions, err := a.Store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("audit: failed to list transactions: %w", err)
	}
	certificates, err := a.Store.ListCertificates(ctx)
	if err != nil {
		return nil, fmt.Errorf("audit: failed to list certificates: %w", err)
	}

	report.WalletsChecked = len(wallets)
	report.ProjectsChecked = len(projects)
	report.TransactionsChecked = len(transactions)
	report.CertificatesChecked = len(certificates)

	soldByProject := make(map[string]models.Decimal)
	boughtByUser := make(map[string]models.Decimal)
	for _, tx := range transactions {
		if tx.Status != models.TransactionCompleted {
			continue
		}
		soldByProject[tx.ProjectID] = sumOrInit(soldByProject, tx.ProjectID, tx.Quantity)
		boughtByUser[tx.BuyerID] = sumOrInit(boughtByUser, tx.BuyerID, tx.Quantity)
	}

	retiredByUser := make(map[string]models.Decimal)
	serials := make(map[string]int)
	for _, cert := range certificates {
		retiredByUser[cert.UserID] = sumOrInit(retiredByUser, cert.UserID, cert.CreditsRetired)
		serials[cert.SerialNumber]++
	}

	for serial, count := range serials {
		if count > 1 {
			report.flag("serial_uniqueness", serial, "serial appears on %d certificates", count)
		}
	}

	for _, w := range wallets {
		if w.CashBalance.IsNegative() || w.EscrowBalance.IsNegative() || w.CreditBalance.IsNegative() {
			report.flag("wallet_non_negative", w.UserID,
				"cash=%s escrow=%s credits=%s", w.CashBalance, w.EscrowBalance, w.CreditBalance)
		}

		bought := zeroIfAbsent(boughtByUser, w.UserID)
		retired := zeroIfAbsent(retiredByUser, w.UserID)
		expected := bought.Sub(retired)
		if !w.CreditBalance.Equal(expected) {
			report.flag("credit_conservation", w.UserID,
				"wallet holds %s credits but bought %s and retired %s", w.CreditBalance, bought, retired)
		}
	}

	for _, p := range projects {
		if p.AvailableCredits.IsNegative() {
			report.flag("project_non_negative", p.ID, "available_credits=%s", p.AvailableCredits)
		}
		if p.TotalCredits.LessThan(p.AvailableCredits) {
			report.flag("project_overdrawn", p.ID,
				"available %s exceeds total %s", p.AvailableCredits, p.TotalCredits)
		}

		sold := zeroIfAbsent(soldByProject, p.ID)
		if !p.TotalCredits.Sub(p.AvailableCredits).Equal(sold) {
			report.flag("project_conservation", p.ID,
				"total %s minus available %s does not match %s sold", p.TotalCredits, p.AvailableCredits, sold)
		}
	}

	return report, nil
}

func sumOrInit(m map[string]models.Decimal, key string, add models.Decimal) models.Decimal {
	if cur, ok := m[key]; ok {
		return cur.Add(add)
	}
	return add
}

func zeroIfAbsent(m map[string]models.Decimal, key string) models.Decimal {
	if cur, ok := m[key]; ok {
		return cur
	}
	return models.DecimalZero()
}
