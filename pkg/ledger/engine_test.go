package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/veridex/carbon-ledger/pkg/certificates"
	"github.com/veridex/carbon-ledger/pkg/events"
	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
	"github.com/veridex/carbon-ledger/pkg/storage/mocks"
)

func mustDec(s string) models.Decimal {
	d, err := models.DecimalFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestEngine(store storage.LedgerStore) *Engine {
	return NewEngine(store, certificates.NewIssuer(""), events.NoOpPublisher{})
}

func activeProject() *models.Project {
	return &models.Project{
		ID:               "project-1",
		OwnerID:          "owner-1",
		Status:           models.StatusActive,
		TotalCredits:     mustDec("1000"),
		AvailableCredits: mustDec("1000"),
		PricePerUnit:     mustDec("20.50"),
		Version:          3,
	}
}

func buyerWallet() *models.Wallet {
	return &models.Wallet{
		UserID:        "buyer-1",
		CashBalance:   mustDec("5000.00"),
		CreditBalance: mustDec("0"),
		Version:       1,
	}
}

func TestPurchase(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(activeProject(), nil)
		mockStorage.On("GetWallet", mock.Anything, "buyer-1").Return(buyerWallet(), nil)
		mockStorage.On("ExecutePurchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		e := newTestEngine(mockStorage)
		tx, err := e.Purchase(context.Background(), "buyer-1", "project-1", mustDec("10"))

		assert.NoError(t, err)
		assert.NotEmpty(t, tx.ID)
		assert.Equal(t, "buyer-1", tx.BuyerID)
		assert.Equal(t, "project-1", tx.ProjectID)
		assert.True(t, tx.Quantity.Equal(mustDec("10")))
		assert.True(t, tx.UnitPrice.Equal(mustDec("20.50")))
		assert.True(t, tx.TotalAmount.Equal(mustDec("205.00")))
		assert.Equal(t, models.TransactionTypePurchase, tx.Type)
		assert.Equal(t, models.TransactionCompleted, tx.Status)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Rounds Total To Currency Scale", func(t *testing.T) {
		project := activeProject()
		project.PricePerUnit = mustDec("0.333")

		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(project, nil)
		mockStorage.On("GetWallet", mock.Anything, "buyer-1").Return(buyerWallet(), nil)
		mockStorage.On("ExecutePurchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		e := newTestEngine(mockStorage)
		tx, err := e.Purchase(context.Background(), "buyer-1", "project-1", mustDec("10"))

		assert.NoError(t, err)
		assert.True(t, tx.TotalAmount.Equal(mustDec("3.33")))
	})

	t.Run("Project Not Purchasable", func(t *testing.T) {
		project := activeProject()
		project.Status = models.StatusMonitoring

		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(project, nil)

		e := newTestEngine(mockStorage)
		_, err := e.Purchase(context.Background(), "buyer-1", "project-1", mustDec("10"))

		assert.ErrorIs(t, err, storage.ErrProjectNotPurchasable)
		mockStorage.AssertNotCalled(t, "ExecutePurchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Sold Out Project Not Purchasable", func(t *testing.T) {
		project := activeProject()
		project.AvailableCredits = mustDec("0")

		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(project, nil)

		e := newTestEngine(mockStorage)
		_, err := e.Purchase(context.Background(), "buyer-1", "project-1", mustDec("10"))

		assert.ErrorIs(t, err, storage.ErrProjectNotPurchasable)
	})

	t.Run("Insufficient Credits", func(t *testing.T) {
		project := activeProject()
		project.AvailableCredits = mustDec("5")

		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(project, nil)

		e := newTestEngine(mockStorage)
		_, err := e.Purchase(context.Background(), "buyer-1", "project-1", mustDec("10"))

		assert.ErrorIs(t, err, storage.ErrInsufficientCredits)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		wallet := buyerWallet()
		wallet.CashBalance = mustDec("100.00")

		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(activeProject(), nil)
		mockStorage.On("GetWallet", mock.Anything, "buyer-1").Return(wallet, nil)

		e := newTestEngine(mockStorage)
		_, err := e.Purchase(context.Background(), "buyer-1", "project-1", mustDec("10"))

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		mockStorage.AssertNotCalled(t, "ExecutePurchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid Quantity", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		e := newTestEngine(mockStorage)

		for _, quantity := range []string{"0", "-5", "1.00001"} {
			_, err := e.Purchase(context.Background(), "buyer-1", "project-1", mustDec(quantity))
			assert.ErrorIs(t, err, storage.ErrInvalidQuantity)
		}
		mockStorage.AssertNotCalled(t, "GetProject", mock.Anything, mock.Anything)
	})

	t.Run("Retries After Version Conflict", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(activeProject(), nil).Twice()
		mockStorage.On("GetWallet", mock.Anything, "buyer-1").Return(buyerWallet(), nil).Twice()
		mockStorage.On("ExecutePurchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrVersionConflict).Once()
		mockStorage.On("ExecutePurchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		e := newTestEngine(mockStorage)
		tx, err := e.Purchase(context.Background(), "buyer-1", "project-1", mustDec("10"))

		assert.NoError(t, err)
		assert.NotNil(t, tx)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Gives Up After Repeated Conflicts", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(activeProject(), nil)
		mockStorage.On("GetWallet", mock.Anything, "buyer-1").Return(buyerWallet(), nil)
		mockStorage.On("ExecutePurchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrVersionConflict)

		e := newTestEngine(mockStorage)
		_, err := e.Purchase(context.Background(), "buyer-1", "project-1", mustDec("10"))

		assert.ErrorIs(t, err, storage.ErrVersionConflict)
		mockStorage.AssertNumberOfCalls(t, "ExecutePurchase", 4)
	})

	t.Run("Project Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "missing").Return(nil, storage.ErrNotFound)

		e := newTestEngine(mockStorage)
		_, err := e.Purchase(context.Background(), "buyer-1", "missing", mustDec("10"))

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestRetire(t *testing.T) {
	holderWallet := func() *models.Wallet {
		return &models.Wallet{
			UserID:        "holder-1",
			CashBalance:   mustDec("0"),
			CreditBalance: mustDec("50"),
			Version:       4,
		}
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(activeProject(), nil)
		mockStorage.On("GetWallet", mock.Anything, "holder-1").Return(holderWallet(), nil)
		mockStorage.On("ExecuteRetirement", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		e := newTestEngine(mockStorage)
		cert, err := e.Retire(context.Background(), "holder-1", mustDec("10"), "project-1", "offsetting 2026 travel")

		assert.NoError(t, err)
		assert.NotEmpty(t, cert.SerialNumber)
		assert.Equal(t, "holder-1", cert.UserID)
		assert.Equal(t, "project-1", cert.ProjectID)
		assert.True(t, cert.CreditsRetired.Equal(mustDec("10")))
		assert.Equal(t, "offsetting 2026 travel", cert.RetirementReason)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Fungible Without Project", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "holder-1").Return(holderWallet(), nil)
		mockStorage.On("ExecuteRetirement", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		e := newTestEngine(mockStorage)
		cert, err := e.Retire(context.Background(), "holder-1", mustDec("10"), "", "")

		assert.NoError(t, err)
		assert.Empty(t, cert.ProjectID)
		mockStorage.AssertNotCalled(t, "GetProject", mock.Anything, mock.Anything)
	})

	t.Run("Exact Balance", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "holder-1").Return(holderWallet(), nil)
		mockStorage.On("ExecuteRetirement", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		e := newTestEngine(mockStorage)
		cert, err := e.Retire(context.Background(), "holder-1", mustDec("50"), "", "")

		assert.NoError(t, err)
		assert.True(t, cert.CreditsRetired.Equal(mustDec("50")))
	})

	t.Run("Insufficient Credits", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "holder-1").Return(holderWallet(), nil)

		e := newTestEngine(mockStorage)
		_, err := e.Retire(context.Background(), "holder-1", mustDec("60"), "", "")

		assert.ErrorIs(t, err, storage.ErrInsufficientCredits)
		mockStorage.AssertNotCalled(t, "ExecuteRetirement", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Named Project Must Exist", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "missing").Return(nil, storage.ErrNotFound)

		e := newTestEngine(mockStorage)
		_, err := e.Retire(context.Background(), "holder-1", mustDec("10"), "missing", "")

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockStorage.AssertNotCalled(t, "GetWallet", mock.Anything, mock.Anything)
	})

	t.Run("Regenerates Serial On Collision", func(t *testing.T) {
		var serials []string
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "holder-1").Return(holderWallet(), nil)
		mockStorage.On("ExecuteRetirement", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			cert := args.Get(1).(*models.RetirementCertificate)
			serials = append(serials, cert.SerialNumber)
		}).Return(storage.ErrSerialCollision).Once()
		mockStorage.On("ExecuteRetirement", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			cert := args.Get(1).(*models.RetirementCertificate)
			serials = append(serials, cert.SerialNumber)
		}).Return(nil).Once()

		e := newTestEngine(mockStorage)
		cert, err := e.Retire(context.Background(), "holder-1", mustDec("10"), "", "")

		assert.NoError(t, err)
		assert.Len(t, serials, 2)
		assert.NotEqual(t, serials[0], serials[1])
		assert.Equal(t, serials[1], cert.SerialNumber)
	})

	t.Run("Collisions Exhaust Issuance Budget", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "holder-1").Return(holderWallet(), nil)
		mockStorage.On("ExecuteRetirement", mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrSerialCollision)

		e := newTestEngine(mockStorage)
		_, err := e.Retire(context.Background(), "holder-1", mustDec("10"), "", "")

		assert.ErrorIs(t, err, storage.ErrIssuanceFailed)
		mockStorage.AssertNumberOfCalls(t, "ExecuteRetirement", 5)
	})

	t.Run("Invalid Quantity", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		e := newTestEngine(mockStorage)

		_, err := e.Retire(context.Background(), "holder-1", mustDec("-1"), "", "")
		assert.ErrorIs(t, err, storage.ErrInvalidQuantity)

		_, err = e.Retire(context.Background(), "holder-1", mustDec("0.00001"), "", "")
		assert.ErrorIs(t, err, storage.ErrInvalidQuantity)
	})
}

func TestPurchaseEventFailureDoesNotFailPurchase(t *testing.T) {
	mockStorage := new(mocks.Storage)
	mockStorage.On("GetProject", mock.Anything, "project-1").Return(activeProject(), nil)
	mockStorage.On("GetWallet", mock.Anything, "buyer-1").Return(buyerWallet(), nil)
	mockStorage.On("ExecutePurchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	e := NewEngine(mockStorage, certificates.NewIssuer(""), failingPublisher{})
	tx, err := e.Purchase(context.Background(), "buyer-1", "project-1", mustDec("10"))

	assert.NoError(t, err)
	assert.NotNil(t, tx)
}

type failingPublisher struct{}

func (failingPublisher) Publish(_ context.Context, _ events.Event) error {
	return errors.New("queue unavailable")
}

// TestPurchaseThenRetireScenario walks one buyer through a full purchase and
// retirement against a store that applies the mutations, checking every
// balance along the way.
func TestPurchaseThenRetireScenario(t *testing.T) {
	project := &models.Project{
		ID:               "project-1",
		OwnerID:          "owner-1",
		Status:           models.StatusActive,
		TotalCredits:     mustDec("50"),
		AvailableCredits: mustDec("50"),
		PricePerUnit:     mustDec("10"),
		Version:          1,
	}
	wallet := &models.Wallet{
		UserID:        "buyer-1",
		CashBalance:   mustDec("1000"),
		CreditBalance: mustDec("0"),
		Version:       1,
	}

	mockStorage := new(mocks.Storage)
	mockStorage.On("GetProject", mock.Anything, "project-1").Return(func(context.Context, string) *models.Project {
		snapshot := *project
		return &snapshot
	}, nil)
	mockStorage.On("GetWallet", mock.Anything, "buyer-1").Return(func(context.Context, string) *models.Wallet {
		snapshot := *wallet
		return &snapshot
	}, nil)
	mockStorage.On("ExecutePurchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		tx := args.Get(1).(*models.Transaction)
		project.AvailableCredits = project.AvailableCredits.Sub(tx.Quantity)
		project.Version++
		wallet.CashBalance = wallet.CashBalance.Sub(tx.TotalAmount)
		wallet.CreditBalance = wallet.CreditBalance.Add(tx.Quantity)
		wallet.Version++
	}).Return(nil)
	mockStorage.On("ExecuteRetirement", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		cert := args.Get(1).(*models.RetirementCertificate)
		wallet.CreditBalance = wallet.CreditBalance.Sub(cert.CreditsRetired)
		wallet.Version++
	}).Return(nil)

	e := newTestEngine(mockStorage)

	tx, err := e.Purchase(context.Background(), "buyer-1", "project-1", mustDec("20"))
	assert.NoError(t, err)
	assert.True(t, tx.TotalAmount.Equal(mustDec("200")), "total should be 200, got %s", tx.TotalAmount)
	assert.True(t, wallet.CashBalance.Equal(mustDec("800")), "cash should be 800, got %s", wallet.CashBalance)
	assert.True(t, wallet.CreditBalance.Equal(mustDec("20")))
	assert.True(t, project.AvailableCredits.Equal(mustDec("30")))

	cert, err := e.Retire(context.Background(), "buyer-1", mustDec("20"), "project-1", "offset Q1")
	assert.NoError(t, err)
	assert.True(t, cert.CreditsRetired.Equal(mustDec("20")))
	assert.NotEmpty(t, cert.SerialNumber)
	assert.True(t, wallet.CreditBalance.Equal(mustDec("0")), "credits should all be retired, got %s", wallet.CreditBalance)

	// Credits stayed conserved end to end: sold credits left the pool, held
	// credits were fully retired.
	assert.True(t, project.TotalCredits.Sub(project.AvailableCredits).Equal(mustDec("20")))
}
