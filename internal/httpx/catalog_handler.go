package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/go-kasir-pos.git/internal/catalog"
	kafkax "github.com/ariefcatur/go-kasir-pos.git/internal/kafka"
	"github.com/ariefcatur/go-kasir-pos.git/internal/redisx"
)

// CatalogService is the product CRUD surface the admin endpoints call.
type CatalogService interface {
	List(ctx context.Context, category string) ([]catalog.Product, error)
	Get(ctx context.Context, id int64) (catalog.Product, error)
	Create(ctx context.Context, p catalog.Product) (int64, error)
	Update(ctx context.Context, p catalog.Product) error
	Delete(ctx context.Context, id int64) error
}

type CatalogHandler struct {
	Catalog CatalogService
	Redis   *redis.Client
}

func (h *CatalogHandler) Register(r *chi.Mux) {
	r.Get("/api/products", h.list)
	r.Post("/api/products", h.create)
	r.Put("/api/products/{id}", h.update)
	r.Delete("/api/products/{id}", h.delete)
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	category := r.URL.Query().Get("category")
	key := fmt.Sprintf(redisx.KeyProductList, cacheCategory(category))

	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	ps, err := h.Catalog.List(ctx, category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ps == nil {
		ps = []catalog.Product{}
	}
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, kafkax.MustMarshal(ps), redisx.TTLProductCache).Err()
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *CatalogHandler) create(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	id, err := h.Catalog.Create(ctx, p)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.invalidate(ctx, p.Category)
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *CatalogHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var p catalog.Product
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	p.ID = id

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Catalog.Update(ctx, p); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.invalidate(ctx, p.Category)
	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *CatalogHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Catalog.Delete(ctx, id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.invalidate(ctx, "")
	w.WriteHeader(http.StatusNoContent)
}

func cacheCategory(category string) string {
	if category == "" {
		return "all"
	}
	return category
}

// invalidate drops the list caches a catalog write may have staled. The "all"
// key always goes; the category key goes when known.
func (h *CatalogHandler) invalidate(ctx context.Context, category string) {
	if h.Redis == nil {
		return
	}
	keys := []string{fmt.Sprintf(redisx.KeyProductList, "all")}
	if category != "" {
		keys = append(keys, fmt.Sprintf(redisx.KeyProductList, category))
	}
	_ = h.Redis.Del(ctx, keys...).Err()
}
