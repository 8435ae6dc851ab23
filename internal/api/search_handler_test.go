package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskwatch/deskwatch/internal/model"
)

func doGet(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestSearchMissingQuery(t *testing.T) {
	router, _, _ := newTestRouter()

	rr := doGet(router, "/api/search")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Missing 'query' parameter"}`, rr.Body.String())
}

func TestSearchEmptyIndex(t *testing.T) {
	router, _, _ := newTestRouter()

	rr := doGet(router, "/api/search?query=browser")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"No data in vector index"}`, rr.Body.String())
}

func TestSearchReturnsMatchedRecords(t *testing.T) {
	router, _, idx := newTestRouter()

	rr := doJSON(t, router, http.MethodPost, "/api/usage", validPayload())
	require.Equal(t, http.StatusCreated, rr.Code)

	idx.hits = []model.SearchHit{{ID: 1, Score: 0.88}}

	rr = doGet(router, "/api/search?query=browser")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Query      string              `json:"query"`
		MatchedIDs []int64             `json:"matched_ids"`
		Results    []model.UsageRecord `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "browser", resp.Query)
	assert.Equal(t, []int64{1}, resp.MatchedIDs)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Google Chrome", resp.Results[0].WindowTitle)
}

func TestSearchNoNeighborsIsSuccess(t *testing.T) {
	router, _, idx := newTestRouter()

	rr := doJSON(t, router, http.MethodPost, "/api/usage", validPayload())
	require.Equal(t, http.StatusCreated, rr.Code)
	idx.hits = nil

	rr = doGet(router, "/api/search?query=nothing+like+this")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.JSONEq(t, `[]`, string(resp["matched_ids"]))
	assert.JSONEq(t, `[]`, string(resp["results"]))
}

func TestSearchIndexFailure(t *testing.T) {
	router, _, idx := newTestRouter()

	rr := doJSON(t, router, http.MethodPost, "/api/usage", validPayload())
	require.Equal(t, http.StatusCreated, rr.Code)
	idx.searchErr = assert.AnError

	rr = doGet(router, "/api/search?query=browser")
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "Search failed: ")
}

func TestHealthEndpointAlwaysResponds(t *testing.T) {
	h := NewHealthHandler()

	BindServiceHealth(func() bool { return false })
	rr := httptest.NewRecorder()
	h.CheckHealth(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"unhealthy"`)

	BindServiceHealth(func() bool { return true })
	rr = httptest.NewRecorder()
	h.CheckHealth(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"healthy"`)
}
