package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/nirajd/backend-pasal/internal/catalog"
	"github.com/nirajd/backend-pasal/internal/pricing"
)

type fakeStore struct {
	items map[string]catalog.Item
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[string]catalog.Item{}}
}

func (f *fakeStore) List(_ context.Context, p catalog.ListParams) ([]catalog.Item, error) {
	var out []catalog.Item
	for _, item := range f.items {
		if p.Kind != "" && item.Kind != p.Kind {
			continue
		}
		if p.Query != "" && !strings.Contains(strings.ToLower(item.Title), strings.ToLower(p.Query)) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeStore) Count(ctx context.Context, p catalog.ListParams) (int64, error) {
	items, _ := f.List(ctx, p)
	return int64(len(items)), nil
}

func (f *fakeStore) GetBySlug(_ context.Context, slug string) (catalog.Item, error) {
	item, ok := f.items[slug]
	if !ok {
		return catalog.Item{}, catalog.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeStore) Insert(_ context.Context, item catalog.Item) error {
	f.items[item.Slug] = item
	return nil
}

func (f *fakeStore) Update(_ context.Context, item catalog.Item) error {
	existing, ok := f.items[item.Slug]
	if !ok {
		return catalog.ErrItemNotFound
	}
	item.ID = existing.ID
	f.items[item.Slug] = item
	return nil
}

func (f *fakeStore) Delete(_ context.Context, slug string) error {
	if _, ok := f.items[slug]; !ok {
		return catalog.ErrItemNotFound
	}
	delete(f.items, slug)
	return nil
}

func newTestHandler(t *testing.T, store *fakeStore) *catalog.Handler {
	t.Helper()
	svc, err := catalog.NewService(catalog.ServiceConfig{Store: store, DefaultLimit: 20, MaxLimit: 100})
	require.NoError(t, err)
	return &catalog.Handler{Service: svc}
}

func withSlug(req *http.Request, slug string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("slug", slug)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateNormalisesCategories(t *testing.T) {
	handler := newTestHandler(t, newFakeStore())

	body := `{
		"slug": "business-starter",
		"kind": "package",
		"title": "Business Starter",
		"basePrice": "199 USD",
		"pricingCategories": [
			{"title": "License", "options": [{"name": "Single Site", "price": "150 USD"}]},
			{"title": "Additional Services", "options": [{"name": "Installation", "price": "+30 USD"}]}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data catalog.Item `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.ID)
	require.Len(t, resp.Data.Categories, 2)
	// Missing modes are backfilled from the legacy title convention.
	require.Equal(t, pricing.ModeExclusive, resp.Data.Categories[0].Mode)
	require.Equal(t, pricing.ModeAdditive, resp.Data.Categories[1].Mode)
	// Keys are generated for every category and option.
	require.NotEmpty(t, resp.Data.Categories[0].Key)
	require.NotEmpty(t, resp.Data.Categories[0].Options[0].Key)
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	handler := newTestHandler(t, newFakeStore())
	body := `{"slug": "x", "kind": "theme", "title": ""}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAndListRoundTrip(t *testing.T) {
	store := newFakeStore()
	handler := newTestHandler(t, store)

	createBody := `{"slug": "seo-plugin", "kind": "plugin", "title": "SEO Plugin", "basePrice": "49 USD"}`
	createReq := httptest.NewRequest(http.MethodPost, "/api/v1/admin/items", strings.NewReader(createBody))
	createRec := httptest.NewRecorder()
	handler.Create(createRec, createReq)
	require.Equal(t, http.StatusCreated, createRec.Code)

	getReq := withSlug(httptest.NewRequest(http.MethodGet, "/api/v1/items/seo-plugin", nil), "seo-plugin")
	getRec := httptest.NewRecorder()
	handler.Get(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)

	var detail struct {
		Data catalog.Item `json:"data"`
	}
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &detail))
	require.Equal(t, "SEO Plugin", detail.Data.Title)

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/items?kind=plugin", nil)
	listRec := httptest.NewRecorder()
	handler.List(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)
	require.Equal(t, "1", listRec.Header().Get("X-Total-Count"))
}

func TestGetMissingItem(t *testing.T) {
	handler := newTestHandler(t, newFakeStore())
	req := withSlug(httptest.NewRequest(http.MethodGet, "/api/v1/items/nope", nil), "nope")
	rec := httptest.NewRecorder()
	handler.Get(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete(t *testing.T) {
	store := newFakeStore()
	store.items["old-package"] = catalog.Item{Slug: "old-package", Kind: "package", Title: "Old"}
	handler := newTestHandler(t, store)

	req := withSlug(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/items/old-package", nil), "old-package")
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, store.items)
}

func TestListRejectsUnknownKind(t *testing.T) {
	handler := newTestHandler(t, newFakeStore())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items?kind=theme", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
