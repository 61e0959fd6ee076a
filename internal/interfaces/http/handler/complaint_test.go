package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	applcomplaint "github.com/gharzo/engine/internal/application/complaint"
	"github.com/gharzo/engine/internal/domain/complaint"
	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/gharzo/engine/internal/infrastructure/lock"
	"github.com/gharzo/engine/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockComplaintRepository implements complaint.Repository for testing
type MockComplaintRepository struct {
	mock.Mock
}

func (m *MockComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complaint.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) FindByNumber(ctx context.Context, number string) (*complaint.Complaint, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complaint.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) FindAll(ctx context.Context, filter complaint.Filter) ([]complaint.Complaint, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]complaint.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) Save(ctx context.Context, c *complaint.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockComplaintRepository) SaveWithLock(ctx context.Context, c *complaint.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockComplaintRepository) NextNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func setupComplaintTestRouter() (*gin.Engine, *MockComplaintRepository) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockComplaintRepository)
	service := applcomplaint.NewService(mockRepo, lock.NewMemoryLocker(), nil,
		zap.NewNop(), applcomplaint.DefaultConfig())
	h := NewComplaintHandler(service)

	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	return router, mockRepo
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func testComplaint(t *testing.T) *complaint.Complaint {
	t.Helper()
	c, err := complaint.NewComplaint("COMP-007", uuid.New(), uuid.New(), "R1", "B1",
		"Water leakage", "Kitchen sink", complaint.PriorityHigh)
	require.NoError(t, err)
	c.ClearDomainEvents()
	return c
}

func TestComplaintHandler_File(t *testing.T) {
	t.Run("files a complaint", func(t *testing.T) {
		router, mockRepo := setupComplaintTestRouter()
		mockRepo.On("NextNumber", mock.Anything).Return("COMP-001", nil)
		mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		body, _ := json.Marshal(gin.H{
			"tenant_id":   uuid.New().String(),
			"property_id": uuid.New().String(),
			"room_id":     "R1",
			"bed_id":      "B2",
			"subject":     "Broken geyser",
			"priority":    "High",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/complaints", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "COMP-001", data["number"])
		assert.Equal(t, "Pending", data["status"])
		assert.NotContains(t, w.Body.String(), "otp")
	})

	t.Run("rejects missing subject", func(t *testing.T) {
		router, _ := setupComplaintTestRouter()

		body, _ := json.Marshal(gin.H{
			"tenant_id":   uuid.New().String(),
			"property_id": uuid.New().String(),
			"priority":    "Low",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/complaints", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		router, _ := setupComplaintTestRouter()

		body, _ := json.Marshal(gin.H{
			"tenant_id":   uuid.New().String(),
			"property_id": uuid.New().String(),
			"subject":     "Noise",
			"priority":    "Urgent",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/complaints", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
	})
}

func TestComplaintHandler_ListAssigned(t *testing.T) {
	t.Run("lists complaints", func(t *testing.T) {
		router, mockRepo := setupComplaintTestRouter()
		mockRepo.On("FindAll", mock.Anything, mock.Anything).
			Return([]complaint.Complaint{*testComplaint(t)}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/complaints/assigned", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Len(t, resp.Data, 1)
	})

	t.Run("rejects bad status filter", func(t *testing.T) {
		router, _ := setupComplaintTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/complaints/assigned?status=Open", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestComplaintHandler_Accept(t *testing.T) {
	t.Run("accepts a pending complaint", func(t *testing.T) {
		router, mockRepo := setupComplaintTestRouter()
		c := testComplaint(t)
		mockRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
		mockRepo.On("SaveWithLock", mock.Anything, c).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/api/v1/complaints/%s/accept", c.ID), nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Accepted")
	})

	t.Run("refuses to accept a resolved complaint", func(t *testing.T) {
		router, mockRepo := setupComplaintTestRouter()
		c := testComplaint(t)
		require.NoError(t, c.Accept(uuid.New()))
		require.NoError(t, c.IssueResolutionCode("123456", time.Now(), time.Hour))
		require.NoError(t, c.VerifyAndResolve("123456", time.Now(), 5))
		c.ClearDomainEvents()
		mockRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/api/v1/complaints/%s/accept", c.ID), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_TRANSITION")
	})

	t.Run("404 on unknown complaint", func(t *testing.T) {
		router, mockRepo := setupComplaintTestRouter()
		id := uuid.New()
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/api/v1/complaints/%s/accept", id), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestComplaintHandler_IssueChallenge(t *testing.T) {
	router, mockRepo := setupComplaintTestRouter()
	c := testComplaint(t)
	require.NoError(t, c.Accept(uuid.New()))
	c.ClearDomainEvents()
	mockRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	mockRepo.On("SaveWithLock", mock.Anything, c).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/complaints/%s/challenge", c.ID), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, c.ID.String(), data["complaint_id"])
	assert.NotEmpty(t, data["expires_at"])
	// The code itself must never appear in the response
	require.NotNil(t, c.OTP)
	assert.NotContains(t, w.Body.String(), c.OTP.Code)
}

func TestComplaintHandler_VerifyAndResolve(t *testing.T) {
	t.Run("resolves with the right code", func(t *testing.T) {
		router, mockRepo := setupComplaintTestRouter()
		c := testComplaint(t)
		require.NoError(t, c.Accept(uuid.New()))
		require.NoError(t, c.IssueResolutionCode("482193", time.Now(), time.Hour))
		c.ClearDomainEvents()
		mockRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
		mockRepo.On("SaveWithLock", mock.Anything, c).Return(nil)

		body, _ := json.Marshal(gin.H{"complaint_id": c.ID.String(), "otp": "482193"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/complaints/verify-otp", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Resolved")
	})

	t.Run("422 on a wrong code", func(t *testing.T) {
		router, mockRepo := setupComplaintTestRouter()
		c := testComplaint(t)
		require.NoError(t, c.Accept(uuid.New()))
		require.NoError(t, c.IssueResolutionCode("482193", time.Now(), time.Hour))
		c.ClearDomainEvents()
		mockRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
		mockRepo.On("SaveWithLock", mock.Anything, c).Return(nil)

		body, _ := json.Marshal(gin.H{"complaint_id": c.ID.String(), "otp": "000000"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/complaints/verify-otp", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INVALID_CODE")
	})

	t.Run("429 once attempts are exhausted", func(t *testing.T) {
		router, mockRepo := setupComplaintTestRouter()
		c := testComplaint(t)
		require.NoError(t, c.Accept(uuid.New()))
		require.NoError(t, c.IssueResolutionCode("482193", time.Now(), time.Hour))
		for i := 0; i < 5; i++ {
			_ = c.VerifyAndResolve("000000", time.Now(), 6)
		}
		c.ClearDomainEvents()
		mockRepo.On("FindByID", mock.Anything, c.ID).Return(c, nil)

		body, _ := json.Marshal(gin.H{"complaint_id": c.ID.String(), "otp": "482193"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/complaints/verify-otp", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOO_MANY_ATTEMPTS")
	})
}
