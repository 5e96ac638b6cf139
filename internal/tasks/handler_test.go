package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vaadhorim/portal/pkg"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testRouterSetup(repo tasksRepo) *mux.Router {
	r := mux.NewRouter()
	NewHandler(repo).SetupRoutes(r)
	return r
}

func TestHandler_Add_DefaultsToOpen(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo)

	taskJson := `{"title": "להזמין אוטובוס לטיול", "assignee": "Ира"}`
	req := httptest.NewRequest("POST", "/tasks", bytes.NewReader([]byte(taskJson)))
	req.Header.Set("Content-Type", pkg.ContentType.JSON)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var addedTask Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &addedTask))
	assert.Equal(t, StatusOpen, addedTask.Status)
	assert.NotZero(t, addedTask.ID)
	assert.False(t, addedTask.CreatedAt.IsZero())
}

func TestHandler_Add_InvalidStatus(t *testing.T) {
	router := testRouterSetup(newRepoMock())

	taskJson := `{"title": "whatever", "status": "paused"}`
	req := httptest.NewRequest("POST", "/tasks", bytes.NewReader([]byte(taskJson)))
	req.Header.Set("Content-Type", pkg.ContentType.JSON)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_UpdateStatus(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo)

	added, err := repo.Add(context.Background(), &Task{
		Title:     "לקנות שתייה",
		Status:    StatusOpen,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	added.Status = StatusDone
	taskJson, err := json.Marshal(added)
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/tasks", bytes.NewReader(taskJson))
	req.Header.Set("Content-Type", pkg.ContentType.JSON)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	updated, err := repo.Get(context.Background(), added.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, updated.Status)
}

func TestHandler_List_StatusFilter(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo)

	ctx := context.Background()
	for i, status := range []Status{StatusOpen, StatusOpen, StatusDone} {
		_, err := repo.Add(ctx, &Task{
			Title:     fmt.Sprintf("task %d", i),
			Status:    status,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	req := httptest.NewRequest("GET", "/tasks?status=open", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var listResp ListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	assert.Equal(t, 2, listResp.Total)

	// bogus filter value
	req = httptest.NewRequest("GET", "/tasks?status=bogus", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Delete(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo)

	added, err := repo.Add(context.Background(), &Task{
		Title:     "לסגור הזמנה",
		Status:    StatusOpen,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/tasks/%d", added.ID), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest("DELETE", fmt.Sprintf("/tasks/%d", added.ID), nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
