package admin

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
	"github.com/veridex/carbon-ledger/pkg/events"
	"github.com/veridex/carbon-ledger/pkg/lifecycle"
	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
	"github.com/veridex/carbon-ledger/pkg/storage/mocks"
)

func newHandler(store *mocks.Storage) *AdminHandler {
	return NewAdminHandler(lifecycle.NewWorkflow(store, events.NoOpPublisher{}))
}

func projectInStatus(status models.ProjectStatus) *models.Project {
	return &models.Project{ID: "project-1", Status: status, Version: 2}
}

func TestAdvanceProject(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(projectInStatus(models.StatusApplication), nil)
		mockStorage.On("TransitionProject", mock.Anything, mock.Anything, models.StatusRegistration, "", mock.Anything).
			Return(projectInStatus(models.StatusRegistration), nil)

		h := newHandler(mockStorage)

		req := httptest.NewRequest(http.MethodPost, "/admin/projects/project-1/advance", nil)
		rr := httptest.NewRecorder()

		h.AdvanceProject(rr, req, "project-1")

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.Project
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, string(models.StatusRegistration), returned.Status)
	})

	t.Run("Active Cannot Advance", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(projectInStatus(models.StatusActive), nil)

		h := newHandler(mockStorage)

		req := httptest.NewRequest(http.MethodPost, "/admin/projects/project-1/advance", nil)
		rr := httptest.NewRecorder()

		h.AdvanceProject(rr, req, "project-1")

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "missing").Return(nil, storage.ErrNotFound)

		h := newHandler(mockStorage)

		req := httptest.NewRequest(http.MethodPost, "/admin/projects/missing/advance", nil)
		rr := httptest.NewRecorder()

		h.AdvanceProject(rr, req, "missing")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRejectProject(t *testing.T) {
	rejectBody := func(reason string) *bytes.Reader {
		body, _ := json.Marshal(api.RejectProject{Reason: reason})
		return bytes.NewReader(body)
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(projectInStatus(models.StatusValidation), nil)
		mockStorage.On("TransitionProject", mock.Anything, mock.Anything, models.StatusRejected, "registry mismatch", mock.Anything).
			Return(projectInStatus(models.StatusRejected), nil)

		h := newHandler(mockStorage)

		req := httptest.NewRequest(http.MethodPost, "/admin/projects/project-1/reject", rejectBody("registry mismatch"))
		rr := httptest.NewRecorder()

		h.RejectProject(rr, req, "project-1")

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Reason Required", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(projectInStatus(models.StatusValidation), nil)

		h := newHandler(mockStorage)

		req := httptest.NewRequest(http.MethodPost, "/admin/projects/project-1/reject", rejectBody(""))
		rr := httptest.NewRecorder()

		h.RejectProject(rr, req, "project-1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "reason")
	})

	t.Run("Invalid Body", func(t *testing.T) {
		h := newHandler(new(mocks.Storage))

		req := httptest.NewRequest(http.MethodPost, "/admin/projects/project-1/reject", strings.NewReader("{broken"))
		rr := httptest.NewRecorder()

		h.RejectProject(rr, req, "project-1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRetireProject(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(projectInStatus(models.StatusActive), nil)
		mockStorage.On("TransitionProject", mock.Anything, mock.Anything, models.StatusRetired, "", mock.Anything).
			Return(projectInStatus(models.StatusRetired), nil)

		h := newHandler(mockStorage)

		req := httptest.NewRequest(http.MethodPost, "/admin/projects/project-1/retire", nil)
		rr := httptest.NewRecorder()

		h.RetireProject(rr, req, "project-1")

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Only Active Can Retire", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetProject", mock.Anything, "project-1").Return(projectInStatus(models.StatusMonitoring), nil)

		h := newHandler(mockStorage)

		req := httptest.NewRequest(http.MethodPost, "/admin/projects/project-1/retire", nil)
		rr := httptest.NewRecorder()

		h.RetireProject(rr, req, "project-1")

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestUpdateVerification(t *testing.T) {
	signed := true
	body, _ := json.Marshal(api.VerificationUpdate{OwnershipProofSigned: &signed})

	mockStorage := new(mocks.Storage)
	mockStorage.On("UpdateVerification", mock.Anything, "project-1", mock.MatchedBy(func(u storage.VerificationUpdate) bool {
		return u.OwnershipProofSigned != nil && *u.OwnershipProofSigned
	}), mock.Anything).Return(projectInStatus(models.StatusRegistration), nil)

	h := newHandler(mockStorage)

	req := httptest.NewRequest(http.MethodPatch, "/admin/projects/project-1/verification", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.UpdateVerification(rr, req, "project-1")

	assert.Equal(t, http.StatusOK, rr.Code)
	mockStorage.AssertExpectations(t)
}
