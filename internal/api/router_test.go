package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"canteen-finder/internal/core/catalog"
	"canteen-finder/internal/core/preference"
	"canteen-finder/internal/core/search"
	"canteen-finder/internal/infrastructure/config"
	"canteen-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App:         config.AppConfig{Version: "test"},
		Server:      config.ServerConfig{MaxBodyBytes: 1 << 16, RequestTimeout: 5 * time.Second},
		Search:      config.SearchConfig{HistoryLimit: 5, RandomTrigger: "bingung"},
		DedupWindow: time.Second,
	}
}

func testSnapshot() *catalog.Snapshot {
	return catalog.NewSnapshot(
		[]catalog.Canteen{
			{ID: "green", Name: "Green Eatery", Latitude: -6.302180, Longitude: 106.652299},
			{ID: "gop6", Name: "GOP 6 Canteen", Latitude: -6.303134, Longitude: 106.652815},
		},
		[]catalog.Tenant{
			{ID: "kasturi", Name: "Kasturi", CanteenID: "green", OperatingHours: "07:00-17:00", PriceRange: "15.000-25.000"},
			{ID: "mimin", Name: "Dapur Mimin", CanteenID: "gop6", OperatingHours: "08:00-15:00", PriceRange: "10.000-18.000"},
		},
		[]catalog.Food{
			{ID: "bakar", Name: "Ayam Bakar", TenantID: "kasturi", Categories: []catalog.Category{catalog.Chicken, catalog.Roasted, catalog.Sweet, catalog.Savory}},
			{ID: "sawi", Name: "Sawi Putih", TenantID: "kasturi", Categories: []catalog.Category{catalog.Vegetables, catalog.Steamed, catalog.Savory}},
			{ID: "tempe", Name: "Tempe", TenantID: "mimin", Categories: []catalog.Category{catalog.Soy, catalog.Fried, catalog.Savory}},
		},
	)
}

func setupRouter(t *testing.T, source catalog.Source) (*gin.Engine, *search.Service) {
	t.Helper()
	cfg := testConfig()
	svc := search.NewService(source, preference.NewMemoryStore(), nil, search.Config{
		HistoryLimit:  cfg.Search.HistoryLimit,
		RandomTrigger: cfg.Search.RandomTrigger,
	})
	svc.SetRandom(func(int) int { return 0 })
	return SetupRouter(cfg, svc), svc
}

func doRequest(r http.Handler, method, path, owner string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if owner != "" {
		req.Header.Set("X-User-ID", owner)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestSearch_SubmitRecordsHistory(t *testing.T) {
	r, _ := setupRouter(t, catalog.Static(testSnapshot()))

	w := doRequest(r, http.MethodPost, "/api/v1/search?submit=true", "", `{"search_term":"ayam","now":"2025-03-10T12:00:00Z"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result search.Result
	decode(t, w, &result)
	require.Len(t, result.VisibleTenants, 1)
	assert.Equal(t, "Kasturi", result.VisibleTenants[0].Name)
	require.Len(t, result.VisibleFoodsByTenant["kasturi"], 1)
	assert.Equal(t, "Ayam Bakar", result.VisibleFoodsByTenant["kasturi"][0].Name)

	w = doRequest(r, http.MethodGet, "/api/v1/search/recent", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var recent struct {
		Entries []string `json:"entries"`
	}
	decode(t, w, &recent)
	assert.Equal(t, []string{"ayam"}, recent.Entries)

	w = doRequest(r, http.MethodDelete, "/api/v1/search/recent", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSearch_ValidationErrors(t *testing.T) {
	r, _ := setupRouter(t, catalog.Static(testSnapshot()))

	for name, body := range map[string]string{
		"negative price":  `{"price_min":-1}`,
		"inverted bounds": `{"price_min":20000,"price_max":10000}`,
		"bad latitude":    `{"location":{"latitude":120,"longitude":0}}`,
		"unknown field":   `{"query":"ayam"}`,
		"malformed json":  `{"search_term":`,
	} {
		t.Run(name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/v1/search", "", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp common.ErrorResponse
			decode(t, w, &resp)
			assert.Equal(t, common.ErrCodeInvalidRequest, resp.Code)
		})
	}
}

func TestPreferences_RoundTrip(t *testing.T) {
	r, _ := setupRouter(t, catalog.Static(testSnapshot()))

	w := doRequest(r, http.MethodPut, "/api/v1/preferences", "alice", map[string]interface{}{
		"selections": []string{"Pescatarian"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var prefs struct {
		Owner             string   `json:"owner"`
		Selections        []string `json:"selections"`
		IgnoredCategories []string `json:"ignored_categories"`
	}
	decode(t, w, &prefs)
	assert.Equal(t, "alice", prefs.Owner)
	assert.Equal(t, []string{"Pescatarian"}, prefs.Selections)
	assert.Equal(t, []string{"Chicken", "Meat"}, prefs.IgnoredCategories)

	// alice no longer sees chicken dishes
	w = doRequest(r, http.MethodPost, "/api/v1/search", "alice", `{"search_term":"ayam"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var result search.Result
	decode(t, w, &result)
	assert.Empty(t, result.VisibleTenants)
	assert.Equal(t, []string{"Ayam Bakar"}, result.HiddenFoodNames)

	// other owners are unaffected
	w = doRequest(r, http.MethodGet, "/api/v1/preferences", "bob", nil)
	decode(t, w, &prefs)
	assert.Empty(t, prefs.IgnoredCategories)

	w = doRequest(r, http.MethodDelete, "/api/v1/preferences", "alice", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/preferences", "alice", nil)
	decode(t, w, &prefs)
	assert.Empty(t, prefs.Selections)
	assert.Empty(t, prefs.IgnoredCategories)
}

func TestPreferences_CategorySelectionsAreCanonical(t *testing.T) {
	r, _ := setupRouter(t, catalog.Static(testSnapshot()))

	w := doRequest(r, http.MethodPut, "/api/v1/preferences", "hana", map[string]interface{}{
		"selections": []string{"chicken"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var prefs struct {
		Selections        []string `json:"selections"`
		IgnoredCategories []string `json:"ignored_categories"`
	}
	decode(t, w, &prefs)
	assert.Equal(t, []string{"Chicken"}, prefs.Selections)
	assert.Equal(t, []string{"Chicken"}, prefs.IgnoredCategories)

	w = doRequest(r, http.MethodPost, "/api/v1/search", "hana", `{"search_term":"ayam"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var result search.Result
	decode(t, w, &result)
	assert.Contains(t, result.HiddenFoodNames, "Ayam Bakar")

	w = doRequest(r, http.MethodPut, "/api/v1/preferences", "hana", map[string]interface{}{
		"selections": []string{"Umami"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp common.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, common.ErrCodeInvalidRequest, resp.Code)

	// the rejected update kept the earlier preference
	w = doRequest(r, http.MethodGet, "/api/v1/preferences", "hana", nil)
	decode(t, w, &prefs)
	assert.Equal(t, []string{"Chicken"}, prefs.Selections)
}

func TestPreferences_Presets(t *testing.T) {
	r, _ := setupRouter(t, catalog.Static(testSnapshot()))

	w := doRequest(r, http.MethodGet, "/api/v1/preferences/presets", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var presets []struct {
		Name       string   `json:"name"`
		Categories []string `json:"categories"`
	}
	decode(t, w, &presets)
	require.Len(t, presets, 4)
	assert.Equal(t, "Ahimsa", presets[0].Name)
	assert.Equal(t, []string{"Chicken", "Eggs", "Fish", "Meat", "Seafood"}, presets[0].Categories)
}

func TestSearchOptions_ExcludeIgnored(t *testing.T) {
	r, _ := setupRouter(t, catalog.Static(testSnapshot()))

	w := doRequest(r, http.MethodPut, "/api/v1/preferences", "carol", map[string]interface{}{
		"selections": []string{"GERD-Triggers"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/search/options", "carol", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var opts search.Options
	decode(t, w, &opts)
	assert.Equal(t, []string{"Roasted", "Soup", "Steamed"}, opts.CookingStyles)
	assert.Equal(t, []string{"Savory", "Sweet"}, opts.TasteTypes)
	assert.Equal(t, []string{"GOP 6 Canteen", "Green Eatery"}, opts.Canteens)
}

func TestCatalogBrowsing(t *testing.T) {
	r, _ := setupRouter(t, catalog.Static(testSnapshot()))

	w := doRequest(r, http.MethodGet, "/api/v1/canteens?lat=-6.302180&lon=106.652299", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var canteens []search.CanteenSummary
	decode(t, w, &canteens)
	require.Len(t, canteens, 2)
	require.NotNil(t, canteens[1].DistanceMeters)
	assert.InDelta(t, 0, *canteens[1].DistanceMeters, 1)
	assert.NotEmpty(t, canteens[0].Geohash)

	w = doRequest(r, http.MethodGet, "/api/v1/canteens?lat=abc&lon=1", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/canteens/green/tenants", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tenants []catalog.Tenant
	decode(t, w, &tenants)
	require.Len(t, tenants, 1)
	assert.Equal(t, "Kasturi", tenants[0].Name)

	w = doRequest(r, http.MethodGet, "/api/v1/canteens/nope/tenants", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp common.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "CANTEEN_NOT_FOUND", resp.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/tenants/kasturi/foods", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var foods []catalog.Food
	decode(t, w, &foods)
	assert.Len(t, foods, 2)

	w = doRequest(r, http.MethodGet, "/api/v1/foods/random", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pick search.Pick
	decode(t, w, &pick)
	assert.Equal(t, "Ayam Bakar", pick.Food.Name)
	assert.Equal(t, "Green Eatery", pick.Canteen.Name)
}

func TestRecordRecent_RepeatMovesToFront(t *testing.T) {
	r, _ := setupRouter(t, catalog.Static(testSnapshot()))

	for _, term := range []string{"soto", "tempe", "soto"} {
		w := doRequest(r, http.MethodPost, "/api/v1/search/recent", "", `{"term":"`+term+`"}`)
		require.Equal(t, http.StatusOK, w.Code, term)
	}

	w := doRequest(r, http.MethodGet, "/api/v1/search/recent", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var recent struct {
		Entries []string `json:"entries"`
	}
	decode(t, w, &recent)
	assert.Equal(t, []string{"soto", "tempe"}, recent.Entries)
}

func TestCatalogRefresh_Deduplicated(t *testing.T) {
	r, _ := setupRouter(t, catalog.Static(testSnapshot()))

	w := doRequest(r, http.MethodPost, "/api/v1/catalog/refresh", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/catalog/refresh", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// a different owner is a different fingerprint
	w = doRequest(r, http.MethodPost, "/api/v1/catalog/refresh", "dave", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCatalogUnavailable(t *testing.T) {
	failing := catalog.SourceFunc(func(context.Context) (*catalog.Snapshot, error) {
		return nil, errors.New("catalog offline")
	})
	r, _ := setupRouter(t, failing)

	// search degrades to an empty result
	w := doRequest(r, http.MethodPost, "/api/v1/search", "", `{"search_term":"ayam"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var result search.Result
	decode(t, w, &result)
	assert.Empty(t, result.VisibleTenants)

	w = doRequest(r, http.MethodGet, "/api/v1/canteens", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp common.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "CATALOG_UNAVAILABLE", resp.Code)

	w = doRequest(r, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	r, _ := setupRouter(t, catalog.NewCachedSource(catalog.Static(testSnapshot()), time.Minute))

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := doRequest(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := doRequest(r, http.MethodPost, "/api/v1/catalog/refresh", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var refresh struct {
		Canteens int                    `json:"canteens"`
		Foods    int                    `json:"foods"`
		Cache    map[string]interface{} `json:"cache"`
	}
	decode(t, w, &refresh)
	assert.Equal(t, 2, refresh.Canteens)
	assert.Equal(t, 3, refresh.Foods)
	assert.NotEmpty(t, refresh.Cache)

	w = doRequest(r, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
