package wallets

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/veridex/carbon-ledger/pkg/api"
	"github.com/veridex/carbon-ledger/pkg/auth"
	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
	"github.com/veridex/carbon-ledger/pkg/storage/mocks"
)

func asUser(req *http.Request, userID string, roles ...models.Role) *http.Request {
	principal := auth.Principal{UserID: userID, Roles: roles}
	return req.WithContext(auth.WithPrincipal(req.Context(), principal))
}

func TestCreateWallet(t *testing.T) {
	t.Run("Self Provisioning", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateWallet", mock.Anything, mock.Anything).
			Return(&models.Wallet{UserID: "user-1", Version: 1}, nil)

		h := NewWalletsHandler(mockStorage)

		body, _ := json.Marshal(api.NewWallet{UserId: "user-1"})
		req := asUser(httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body)), "user-1", models.RoleBuyer)
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var returned api.Wallet
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, "user-1", returned.UserId)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Admin Provisions Another User", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateWallet", mock.Anything, mock.MatchedBy(func(wallet *models.Wallet) bool {
			return wallet.UserID == "user-2"
		})).Return(&models.Wallet{UserID: "user-2", Version: 1}, nil)

		h := NewWalletsHandler(mockStorage)

		body, _ := json.Marshal(api.NewWallet{UserId: "user-2"})
		req := asUser(httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body)), "admin-1", models.RoleAdmin)
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Cannot Provision For Another User", func(t *testing.T) {
		mockStorage := new(mocks.Storage)

		h := NewWalletsHandler(mockStorage)

		body, _ := json.Marshal(api.NewWallet{UserId: "victim-user"})
		req := asUser(httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body)), "mallory", models.RoleBuyer)
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStorage.AssertNotCalled(t, "CreateWallet", mock.Anything, mock.Anything)
	})

	t.Run("No Principal", func(t *testing.T) {
		h := NewWalletsHandler(new(mocks.Storage))

		body, _ := json.Marshal(api.NewWallet{UserId: "user-1"})
		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Already Exists", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateWallet", mock.Anything, mock.Anything).Return(nil, storage.ErrWalletExists)

		h := NewWalletsHandler(mockStorage)

		body, _ := json.Marshal(api.NewWallet{UserId: "user-1"})
		req := asUser(httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body)), "user-1", models.RoleBuyer)
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "already exists")
	})

	t.Run("Missing User Id", func(t *testing.T) {
		h := NewWalletsHandler(new(mocks.Storage))

		req := asUser(httptest.NewRequest(http.MethodPost, "/wallets", strings.NewReader(`{}`)), "user-1", models.RoleBuyer)
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		h := NewWalletsHandler(new(mocks.Storage))

		req := asUser(httptest.NewRequest(http.MethodPost, "/wallets", strings.NewReader("{not json")), "user-1", models.RoleBuyer)
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetWalletByUserId(t *testing.T) {
	t.Run("Owner Reads Own Wallet", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "user-1").Return(&models.Wallet{UserID: "user-1"}, nil)

		h := NewWalletsHandler(mockStorage)

		req := asUser(httptest.NewRequest(http.MethodGet, "/wallets/user-1", nil), "user-1", models.RoleBuyer)
		rr := httptest.NewRecorder()

		h.GetWalletByUserId(rr, req, "user-1")

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Admin Reads Any Wallet", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "user-1").Return(&models.Wallet{UserID: "user-1"}, nil)

		h := NewWalletsHandler(mockStorage)

		req := asUser(httptest.NewRequest(http.MethodGet, "/wallets/user-1", nil), "admin-1", models.RoleAdmin)
		rr := httptest.NewRecorder()

		h.GetWalletByUserId(rr, req, "user-1")

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Stranger Forbidden", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewWalletsHandler(mockStorage)

		req := asUser(httptest.NewRequest(http.MethodGet, "/wallets/user-1", nil), "user-2", models.RoleBuyer)
		rr := httptest.NewRecorder()

		h.GetWalletByUserId(rr, req, "user-1")

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStorage.AssertNotCalled(t, "GetWallet", mock.Anything, mock.Anything)
	})

	t.Run("No Principal", func(t *testing.T) {
		h := NewWalletsHandler(new(mocks.Storage))

		req := httptest.NewRequest(http.MethodGet, "/wallets/user-1", nil)
		rr := httptest.NewRecorder()

		h.GetWalletByUserId(rr, req, "user-1")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "user-1").Return(nil, storage.ErrNotFound)

		h := NewWalletsHandler(mockStorage)

		req := asUser(httptest.NewRequest(http.MethodGet, "/wallets/user-1", nil), "user-1")
		rr := httptest.NewRecorder()

		h.GetWalletByUserId(rr, req, "user-1")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListWallets(t *testing.T) {
	mockStorage := new(mocks.Storage)
	mockStorage.On("ListWallets", mock.Anything).Return([]models.Wallet{{UserID: "a"}, {UserID: "b"}}, nil)

	h := NewWalletsHandler(mockStorage)

	req := asUser(httptest.NewRequest(http.MethodGet, "/wallets", nil), "admin-1", models.RoleAdmin)
	rr := httptest.NewRecorder()

	h.ListWallets(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var wallets []api.Wallet
	json.Unmarshal(rr.Body.Bytes(), &wallets)
	assert.Len(t, wallets, 2)
}
