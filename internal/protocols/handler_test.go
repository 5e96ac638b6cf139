package protocols

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

type extractorMock struct {
	items []ActionItem
	err   error
}

func (e *extractorMock) Extract(_ context.Context, _ string) ([]ActionItem, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.items, nil
}

func testRouterSetup(repo protocolsRepo, extractor actionItemsExtractor) *mux.Router {
	r := mux.NewRouter()
	NewHandler(repo, extractor).SetupRoutes(r)
	return r
}

func TestHandler_AddAndGet(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo, &extractorMock{})

	protocolJson := `{
		"title": "ישיבת ועד ספטמבר",
		"body": "הוחלט להזמין אוטובוסים לטיול השנתי. דנה אחראית.",
		"meeting_date": "2025-09-03T19:30:00Z"
	}`
	req := httptest.NewRequest("POST", "/protocols", bytes.NewReader([]byte(protocolJson)))
	req.Header.Set("Content-Type", pkg.ContentType.JSON)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var added Protocol
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &added))
	assert.NotZero(t, added.ID)
	assert.False(t, added.CreatedAt.IsZero())

	req = httptest.NewRequest("GET", fmt.Sprintf("/protocols/%d", added.ID), nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var fetched Protocol
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	assert.Equal(t, "ישיבת ועד ספטמבר", fetched.Title)
}

func TestHandler_Add_NoMeetingDate(t *testing.T) {
	router := testRouterSetup(newRepoMock(), &extractorMock{})

	protocolJson := `{"title": "untitled meeting", "body": "..."}`
	req := httptest.NewRequest("POST", "/protocols", bytes.NewReader([]byte(protocolJson)))
	req.Header.Set("Content-Type", pkg.ContentType.JSON)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_List_NewestMeetingFirst(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo, &extractorMock{})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := repo.Add(ctx, &Protocol{
			Title:       fmt.Sprintf("protocol %d", i),
			MeetingDate: time.Now().Add(time.Duration(i) * 24 * time.Hour),
			CreatedAt:   time.Now(),
		})
		require.NoError(t, err)
	}

	req := httptest.NewRequest("GET", "/protocols", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var listResp ListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	require.Equal(t, 3, listResp.Total)
	assert.Equal(t, "protocol 2", listResp.Protocols[0].Title)
	assert.Equal(t, "protocol 0", listResp.Protocols[2].Title)
}

func TestHandler_Extract(t *testing.T) {
	repo := newRepoMock()
	extractor := &extractorMock{
		items: []ActionItem{
			{Title: "להזמין אוטובוסים", Assignee: "דנה", DueHint: "עד סוף החודש"},
		},
	}
	router := testRouterSetup(repo, extractor)

	added, err := repo.Add(context.Background(), &Protocol{
		Title:       "ישיבת ועד",
		Body:        "הוחלט להזמין אוטובוסים. דנה אחראית, עד סוף החודש.",
		MeetingDate: time.Now(),
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", fmt.Sprintf("/protocols/%d/extract", added.ID), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var extractResp ExtractResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &extractResp))
	assert.Equal(t, added.ID, extractResp.ProtocolID)
	require.Len(t, extractResp.ActionItems, 1)
	assert.Equal(t, "דנה", extractResp.ActionItems[0].Assignee)
}

func TestHandler_Extract_NoItems(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo, &extractorMock{err: ErrNoActionItems})

	added, err := repo.Add(context.Background(), &Protocol{
		Title:       "short sync",
		Body:        "nothing decided",
		MeetingDate: time.Now(),
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", fmt.Sprintf("/protocols/%d/extract", added.ID), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var extractResp ExtractResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &extractResp))
	assert.Empty(t, extractResp.ActionItems)
}

func TestHandler_Extract_ProtocolNotFound(t *testing.T) {
	router := testRouterSetup(newRepoMock(), &extractorMock{})

	req := httptest.NewRequest("POST", "/protocols/777/extract", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
