package retirements

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/veridex/carbon-ledger/pkg/api"
	"github.com/veridex/carbon-ledger/pkg/auth"
	"github.com/veridex/carbon-ledger/pkg/certificates"
	"github.com/veridex/carbon-ledger/pkg/events"
	"github.com/veridex/carbon-ledger/pkg/ledger"
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

func asUser(req *http.Request, userID string, roles ...models.Role) *http.Request {
	principal := auth.Principal{UserID: userID, Roles: roles}
	return req.WithContext(auth.WithPrincipal(req.Context(), principal))
}

func newHandler(store *mocks.Storage) *RetirementsHandler {
	engine := ledger.NewEngine(store, certificates.NewIssuer(""), events.NoOpPublisher{})
	return NewRetirementsHandler(engine, store)
}

func retirementBody(quantity string, reason string) *bytes.Reader {
	q, _ := decimal.NewFromString(quantity)
	body := api.NewRetirement{Quantity: q}
	if reason != "" {
		body.Reason = &reason
	}
	raw, _ := json.Marshal(body)
	return bytes.NewReader(raw)
}

func TestCreateRetirement(t *testing.T) {
	wallet := &models.Wallet{UserID: "holder-1", CreditBalance: mustDec("50"), Version: 2}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "holder-1").Return(wallet, nil)
		mockStorage.On("ExecuteRetirement", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		h := newHandler(mockStorage)

		req := asUser(httptest.NewRequest(http.MethodPost, "/retirements", retirementBody("10", "offset fleet emissions")), "holder-1", models.RoleBuyer)
		rr := httptest.NewRecorder()

		h.CreateRetirement(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var cert api.RetirementCertificate
		json.Unmarshal(rr.Body.Bytes(), &cert)
		assert.NotEmpty(t, cert.SerialNumber)
		assert.Equal(t, "holder-1", cert.UserId)
		assert.Equal(t, "offset fleet emissions", cert.RetirementReason)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Insufficient Credits", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "holder-1").Return(wallet, nil)

		h := newHandler(mockStorage)

		req := asUser(httptest.NewRequest(http.MethodPost, "/retirements", retirementBody("60", "")), "holder-1", models.RoleBuyer)
		rr := httptest.NewRecorder()

		h.CreateRetirement(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Issuance Failure Is Service Unavailable", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "holder-1").Return(wallet, nil)
		mockStorage.On("ExecuteRetirement", mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrSerialCollision)

		h := newHandler(mockStorage)

		req := asUser(httptest.NewRequest(http.MethodPost, "/retirements", retirementBody("10", "")), "holder-1", models.RoleBuyer)
		rr := httptest.NewRecorder()

		h.CreateRetirement(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("No Principal", func(t *testing.T) {
		h := newHandler(new(mocks.Storage))

		req := httptest.NewRequest(http.MethodPost, "/retirements", retirementBody("10", ""))
		rr := httptest.NewRecorder()

		h.CreateRetirement(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestListMyCertificates(t *testing.T) {
	mockStorage := new(mocks.Storage)
	mockStorage.On("ListCertificatesByUser", mock.Anything, "holder-1").Return([]models.RetirementCertificate{
		{SerialNumber: "VCR-1", CertificateID: uuid.New().String(), UserID: "holder-1"},
		{SerialNumber: "VCR-2", CertificateID: uuid.New().String(), UserID: "holder-1"},
	}, nil)

	h := newHandler(mockStorage)

	req := asUser(httptest.NewRequest(http.MethodGet, "/retirements", nil), "holder-1", models.RoleBuyer)
	rr := httptest.NewRecorder()

	h.ListMyCertificates(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var certs []api.RetirementCertificate
	json.Unmarshal(rr.Body.Bytes(), &certs)
	assert.Len(t, certs, 2)
}

func TestGetCertificateBySerial(t *testing.T) {
	t.Run("Public Lookup", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetCertificate", mock.Anything, "VCR-1").Return(&models.RetirementCertificate{
			SerialNumber:   "VCR-1",
			CertificateID:  uuid.New().String(),
			UserID:         "holder-1",
			CreditsRetired: mustDec("10"),
		}, nil)

		h := newHandler(mockStorage)

		// No principal on purpose: verification is public.
		req := httptest.NewRequest(http.MethodGet, "/certificates/VCR-1", nil)
		rr := httptest.NewRecorder()

		h.GetCertificateBySerial(rr, req, "VCR-1")

		assert.Equal(t, http.StatusOK, rr.Code)

		var cert api.RetirementCertificate
		json.Unmarshal(rr.Body.Bytes(), &cert)
		assert.Equal(t, "VCR-1", cert.SerialNumber)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetCertificate", mock.Anything, "VCR-404").Return(nil, storage.ErrNotFound)

		h := newHandler(mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/certificates/VCR-404", nil)
		rr := httptest.NewRecorder()

		h.GetCertificateBySerial(rr, req, "VCR-404")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
