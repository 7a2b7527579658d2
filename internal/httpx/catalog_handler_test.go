package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-kasir-pos.git/internal/catalog"
)

type fakeCatalog struct {
	listFn   func(category string) ([]catalog.Product, error)
	createFn func(p catalog.Product) (int64, error)
	updateFn func(p catalog.Product) error
	deleteFn func(id int64) error
}

func (f *fakeCatalog) List(_ context.Context, category string) ([]catalog.Product, error) {
	if f.listFn != nil {
		return f.listFn(category)
	}
	return nil, nil
}

func (f *fakeCatalog) Get(context.Context, int64) (catalog.Product, error) {
	return catalog.Product{}, catalog.ErrNotFound
}

func (f *fakeCatalog) Create(_ context.Context, p catalog.Product) (int64, error) {
	if f.createFn != nil {
		return f.createFn(p)
	}
	return 0, nil
}

func (f *fakeCatalog) Update(_ context.Context, p catalog.Product) error {
	if f.updateFn != nil {
		return f.updateFn(p)
	}
	return nil
}

func (f *fakeCatalog) Delete(_ context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return nil
}

func newCatalogRouter(f *fakeCatalog) http.Handler {
	r := NewRouter()
	h := &CatalogHandler{Catalog: f}
	h.Register(r)
	return r
}

func TestListProducts(t *testing.T) {
	f := &fakeCatalog{listFn: func(category string) ([]catalog.Product, error) {
		assert.Equal(t, "Coffee", category)
		return []catalog.Product{{ID: 1, Name: "Latte", PriceCents: 32000, Category: "Coffee"}}, nil
	}}
	req := httptest.NewRequest(http.MethodGet, "/api/products?category=Coffee", nil)
	rec := httptest.NewRecorder()

	newCatalogRouter(f).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Latte"`)
}

func TestListProductsEmptyIsArray(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	newCatalogRouter(&fakeCatalog{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestCreateProduct(t *testing.T) {
	f := &fakeCatalog{createFn: func(p catalog.Product) (int64, error) {
		require.Equal(t, "Mocha", p.Name)
		return 7, nil
	}}
	req := httptest.NewRequest(http.MethodPost, "/api/products",
		strings.NewReader(`{"name":"Mocha","price_cents":35000,"category":"Coffee"}`))
	rec := httptest.NewRecorder()

	newCatalogRouter(f).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)
}

func TestCreateProductValidationError(t *testing.T) {
	f := &fakeCatalog{createFn: func(catalog.Product) (int64, error) {
		return 0, errors.New("name is required")
	}}
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"price_cents":100}`))
	rec := httptest.NewRecorder()

	newCatalogRouter(f).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}

func TestUpdateProductNotFound(t *testing.T) {
	f := &fakeCatalog{updateFn: func(p catalog.Product) error {
		assert.Equal(t, int64(99), p.ID)
		return catalog.ErrNotFound
	}}
	req := httptest.NewRequest(http.MethodPut, "/api/products/99",
		strings.NewReader(`{"name":"Gone","price_cents":1}`))
	rec := httptest.NewRecorder()

	newCatalogRouter(f).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	f := &fakeCatalog{deleteFn: func(id int64) error {
		assert.Equal(t, int64(3), id)
		return nil
	}}
	req := httptest.NewRequest(http.MethodDelete, "/api/products/3", nil)
	rec := httptest.NewRecorder()

	newCatalogRouter(f).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
