package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/georgeji/change-bridge/internal/config"
	"github.com/georgeji/change-bridge/internal/models"
	"github.com/georgeji/change-bridge/internal/queue"
	"github.com/georgeji/change-bridge/internal/repository"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) ReadFrom(ctx context.Context, minSequence uint64, pageSize int) []models.ChangeRecord {
	args := m.Called(ctx, minSequence, pageSize)
	return args.Get(0).([]models.ChangeRecord)
}

func (m *mockLedger) MaxSequence(ctx context.Context) uint64 {
	args := m.Called(ctx)
	return args.Get(0).(uint64)
}

func (m *mockLedger) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type fixedCounter int

func (f fixedCounter) GetSubscriberCount() int { return int(f) }

func setupRouter(ledger Ledger, feed SubscriberCounter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewChangeHandler(ledger, feed, zap.NewNop()).RegisterRoutes(r.Group(""))
	return r
}

func doRequest(r http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestListChanges_Defaults(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("ReadFrom", mock.Anything, uint64(0), queue.DefaultPageSize).Return([]models.ChangeRecord{})

	w := doRequest(setupRouter(ledger, nil), http.MethodGet, "/changes")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"count":0}`, w.Body.String())
	ledger.AssertExpectations(t)
}

func TestListChanges_RecordShape(t *testing.T) {
	actor := "user-1"
	ledger := new(mockLedger)
	ledger.On("ReadFrom", mock.Anything, uint64(7), 2).Return([]models.ChangeRecord{
		{
			Sequence:   8,
			EntityType: models.EntityProduct,
			EntityID:   "p1",
			Operation:  models.OperationInsert,
			UserName:   &actor,
			Context:    models.ContextAdminBackend,
			CreatedAt:  time.Date(2024, 1, 2, 3, 4, 5, 678e6, time.UTC),
		},
		{
			Sequence:   9,
			EntityType: models.EntityTax,
			EntityID:   "t1",
			Operation:  models.OperationDelete,
			Context:    models.ContextBackend,
			CreatedAt:  time.Date(2024, 1, 2, 3, 4, 6, 0, time.UTC),
		},
	})

	w := doRequest(setupRouter(ledger, nil), http.MethodGet, "/changes?minSequence=7&pageSize=2")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"success": true,
		"count": 2,
		"data": [
			{"queue_id": 8, "entity_type": "product", "entity_ids": "p1", "operation": "insert",
			 "user_name": "user-1", "context": "admin-backend", "created_at": "2024-01-02 03:04:05.678"},
			{"queue_id": 9, "entity_type": "tax", "entity_ids": "t1", "operation": "delete",
			 "user_name": null, "context": "backend", "created_at": "2024-01-02 03:04:06.000"}
		]
	}`, w.Body.String())
}

func TestListChanges_Params(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantMin  uint64
		wantSize int
	}{
		{"legacy cursor name", "?minQueueId=5", 5, queue.DefaultPageSize},
		{"new name wins", "?minSequence=3&minQueueId=5", 3, queue.DefaultPageSize},
		{"page size clamped high", "?pageSize=5000", 0, queue.MaxPageSize},
		{"page size clamped low", "?pageSize=0", 0, 1},
		{"negative page size", "?pageSize=-4", 0, 1},
		{"page size overflows int", "?pageSize=99999999999999999999", 0, queue.MaxPageSize},
		{"page size underflows int", "?pageSize=-99999999999999999999", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := new(mockLedger)
			ledger.On("ReadFrom", mock.Anything, tt.wantMin, tt.wantSize).Return([]models.ChangeRecord{})

			w := doRequest(setupRouter(ledger, nil), http.MethodGet, "/changes"+tt.query)

			assert.Equal(t, http.StatusOK, w.Code)
			ledger.AssertExpectations(t)
		})
	}
}

func TestListChanges_BadParams(t *testing.T) {
	for _, query := range []string{"?minSequence=abc", "?minQueueId=-1", "?pageSize=ten", "?pageSize=1e3"} {
		t.Run(query, func(t *testing.T) {
			ledger := new(mockLedger)

			w := doRequest(setupRouter(ledger, nil), http.MethodGet, "/changes"+query)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Contains(t, body["error"], "invalid")
			ledger.AssertNotCalled(t, "ReadFrom", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMaxSequence(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("MaxSequence", mock.Anything).Return(uint64(42))

	w := doRequest(setupRouter(ledger, nil), http.MethodGet, "/changes/max")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"maxSequence":42}`, w.Body.String())
}

func TestResetChanges(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("Reset", mock.Anything).Return(nil)

	w := doRequest(setupRouter(ledger, nil), http.MethodDelete, "/changes")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"`+ResetMessage+`"}`, w.Body.String())
}

func TestResetChanges_Failure(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("Reset", mock.Anything).Return(errors.New("reset failed: table locked"))

	w := doRequest(setupRouter(ledger, nil), http.MethodDelete, "/changes")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Failed to truncate queue: reset failed: table locked"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("MaxSequence", mock.Anything).Return(uint64(3))

	w := doRequest(setupRouter(ledger, fixedCounter(2)), http.MethodGet, "/health")
	assert.JSONEq(t, `{"status":"ok","subscribers":2,"maxSequence":3}`, w.Body.String())

	w = doRequest(setupRouter(ledger, nil), http.MethodGet, "/health")
	assert.JSONEq(t, `{"status":"ok","subscribers":0,"maxSequence":3}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	w := doRequest(setupRouter(new(mockLedger), nil), http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

// End to end against a real ledger: enqueue, page, reset, and numbering restarts.
func TestChangeAPI_WithSQLiteLedger(t *testing.T) {
	db, err := repository.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "api.db"),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(context.Background(), db))
	t.Cleanup(func() { _ = repository.Close(db) })

	svc := queue.NewService(repository.NewGormRepo(db), nil, zap.NewNop())
	ctx := context.Background()
	for _, id := range []string{"p1", "p2", "p3"} {
		_, err := svc.Enqueue(ctx, models.EntityProduct, id, models.OperationUpdate, models.SystemOrigin())
		require.NoError(t, err)
	}

	r := setupRouter(svc, nil)

	type listResponse struct {
		Success bool         `json:"success"`
		Count   int          `json:"count"`
		Data    []changeView `json:"data"`
	}

	var page listResponse
	w := doRequest(r, http.MethodGet, "/changes?minSequence=1&pageSize=1")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Equal(t, 1, page.Count)
	assert.Equal(t, uint64(2), page.Data[0].QueueID)
	assert.Equal(t, "p2", page.Data[0].EntityIDs)
	assert.Equal(t, "System", *page.Data[0].UserName)

	w = doRequest(r, http.MethodDelete, "/changes")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/changes/max")
	assert.JSONEq(t, `{"success":true,"maxSequence":0}`, w.Body.String())

	seq, err := svc.Enqueue(ctx, models.EntityProduct, "p4", models.OperationInsert, models.SystemOrigin())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)
}
