package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vaadhorim/portal/internal/telemetry/metrics"
	"github.com/vaadhorim/portal/pkg"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func noopRateLimit(next http.Handler) http.Handler {
	return next
}

func testRouterSetup(repo feedbackRepo) *mux.Router {
	r := mux.NewRouter()
	NewHandler(repo, metrics.NewTestManager()).SetupRoutes(r, noopRateLimit)
	return r
}

func TestHandler_Add(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo)

	feedbackJson := `{
		"subject": "הצעה",
		"message": "אולי אפשר לארגן הסעה משותפת לחוגים",
		"language": "he"
	}`
	req := httptest.NewRequest("POST", "/feedback", bytes.NewReader([]byte(feedbackJson)))
	req.Header.Set("Content-Type", pkg.ContentType.JSON)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"addedId": 1}`, rr.Body.String())

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestHandler_Add_DefaultsToHebrew(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo)

	req := httptest.NewRequest("POST", "/feedback", bytes.NewReader([]byte(`{"message": "Спасибо за праздник!"}`)))
	req.Header.Set("Content-Type", pkg.ContentType.JSON)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, LanguageHebrew, entries[0].Language)
}

func TestHandler_Add_Invalid(t *testing.T) {
	router := testRouterSetup(newRepoMock())

	for name, body := range map[string]string{
		"empty message":    `{"subject": "no text"}`,
		"bad language":     `{"message": "hi", "language": "en"}`,
		"message too long": fmt.Sprintf(`{"message": %q}`, strings.Repeat("א", maxMessageLength+1)),
	} {
		req := httptest.NewRequest("POST", "/feedback", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", pkg.ContentType.JSON)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, name)
	}
}

func TestHandler_ListAndDelete(t *testing.T) {
	repo := newRepoMock()
	router := testRouterSetup(repo)

	added, err := repo.Add(context.Background(), &Feedback{
		Message:   "Нужен второй выход с парковки",
		Language:  LanguageRussian,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/feedback", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var listResp ListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	require.Equal(t, 1, listResp.Total)

	req = httptest.NewRequest("DELETE", fmt.Sprintf("/feedback/%d", added.ID), nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
