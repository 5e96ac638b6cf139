package groceries

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

func testRouterSetup(repo groceriesRepo) *mux.Router {
	r := mux.NewRouter()
	NewHandler(repo).SetupRoutes(r)
	return r
}

func TestHandler_AddListAndItems(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo)

	listJson := `{"name": "קניות למסיבת חנוכה"}`
	req := httptest.NewRequest("POST", "/groceries", bytes.NewReader([]byte(listJson)))
	req.Header.Set("Content-Type", pkg.ContentType.JSON)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var addedList List
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &addedList))
	require.NotZero(t, addedList.ID)

	for _, itemJson := range []string{
		`{"name": "סופגניות", "quantity": "60"}`,
		`{"name": "מיץ תפוזים", "quantity": "12 בקבוקים"}`,
	} {
		req = httptest.NewRequest(
			"POST",
			fmt.Sprintf("/groceries/%d/items", addedList.ID),
			bytes.NewReader([]byte(itemJson)),
		)
		req.Header.Set("Content-Type", pkg.ContentType.JSON)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	// the shared read-only view
	req = httptest.NewRequest("GET", fmt.Sprintf("/groceries/list/%d", addedList.ID), nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var fetched List
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	require.Len(t, fetched.Items, 2)
	assert.Equal(t, "סופגניות", fetched.Items[0].Name)
	assert.False(t, fetched.Items[0].Purchased)
}

func TestHandler_AddItem_ListNotFound(t *testing.T) {
	router := testRouterSetup(newRepoMock())

	req := httptest.NewRequest("POST", "/groceries/42/items", bytes.NewReader([]byte(`{"name": "חלב"}`)))
	req.Header.Set("Content-Type", pkg.ContentType.JSON)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_TogglePurchased(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo)

	ctx := context.Background()
	list, err := repo.AddList(ctx, &List{Name: "פיקניק", CreatedAt: time.Now()})
	require.NoError(t, err)
	item, err := repo.AddItem(ctx, &Item{ListID: list.ID, Name: "אבטיח", Quantity: "2"})
	require.NoError(t, err)

	item.Purchased = true
	itemJson, err := json.Marshal(item)
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/groceries/items", bytes.NewReader(itemJson))
	req.Header.Set("Content-Type", pkg.ContentType.JSON)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	fetched, err := repo.GetList(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.True(t, fetched.Items[0].Purchased)
}

func TestHandler_DeleteList_RemovesItems(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo)

	ctx := context.Background()
	list, err := repo.AddList(ctx, &List{Name: "מסיבת סיום", CreatedAt: time.Now()})
	require.NoError(t, err)
	item, err := repo.AddItem(ctx, &Item{ListID: list.ID, Name: "בלונים"})
	require.NoError(t, err)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/groceries/%d", list.ID), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	_, err = repo.GetList(ctx, list.ID)
	assert.ErrorIs(t, err, ErrListNotFound)
	assert.ErrorIs(t, repo.DeleteItem(ctx, item.ID), ErrItemNotFound)
}

func TestHandler_Lists(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := repo.AddList(ctx, &List{
			Name:      fmt.Sprintf("list %d", i),
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	req := httptest.NewRequest("GET", "/groceries", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var listsResp ListsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listsResp))
	require.Equal(t, 2, listsResp.Total)
	assert.Equal(t, "list 1", listsResp.Lists[0].Name)
}
