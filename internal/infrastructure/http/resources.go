package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"inventory-admin/internal/application"
	"inventory-admin/internal/domain"

	"github.com/go-chi/chi/v5"
)

// resource binds one entity's service calls to the common route set.
type resource[E, D, In any] struct {
	list    func(context.Context, domain.ListFilter) ([]E, error)
	get     func(context.Context, string) (E, error)
	create  func(context.Context, In) (E, error)
	update  func(context.Context, string, In) (E, error)
	delete  func(context.Context, string) error
	setOne  func(context.Context, string, bool) (E, error)
	setMany func(context.Context, []string, bool) ([]E, error)
	dto     func(E) D
}

func (res resource[E, D, In]) routes(r chi.Router, idem func(http.Handler) http.Handler) {
	r.Get("/", res.handleList)
	r.With(idem).Post("/", res.handleCreate)
	r.Post("/activation", res.handleActivation)
	r.Get("/{id}", res.handleGet)
	r.Put("/{id}", res.handleUpdate)
	r.Delete("/{id}", res.handleDelete)
	r.Post("/{id}/activate", res.handleSetActive(true))
	r.Post("/{id}/deactivate", res.handleSetActive(false))
}

func (res resource[E, D, In]) handleList(w http.ResponseWriter, r *http.Request) {
	f, err := listFilter(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	items, err := res.list(r.Context(), f)
	if err != nil {
		fail(w, r, err)
		return
	}
	f = f.Normalize()
	writeJSON(w, http.StatusOK, listResponse[D]{Items: mapAll(items, res.dto), Limit: f.Limit, Offset: f.Offset})
}

func (res resource[E, D, In]) handleGet(w http.ResponseWriter, r *http.Request) {
	e, err := res.get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.dto(e))
}

func (res resource[E, D, In]) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in In
	if err := decode(w, r, &in); err != nil {
		fail(w, r, err)
		return
	}
	e, err := res.create(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res.dto(e))
}

func (res resource[E, D, In]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in In
	if err := decode(w, r, &in); err != nil {
		fail(w, r, err)
		return
	}
	e, err := res.update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.dto(e))
}

func (res resource[E, D, In]) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := res.delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (res resource[E, D, In]) handleSetActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := res.setOne(r.Context(), chi.URLParam(r, "id"), active)
		if err != nil {
			fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res.dto(e))
	}
}

func (res resource[E, D, In]) handleActivation(w http.ResponseWriter, r *http.Request) {
	var body activationRequest
	if err := decode(w, r, &body); err != nil {
		fail(w, r, err)
		return
	}
	items, err := res.setMany(r.Context(), body.IDs, body.Active)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": mapAll(items, res.dto)})
}

func listFilter(r *http.Request) (domain.ListFilter, error) {
	q := r.URL.Query()
	f := domain.ListFilter{
		BrandID:     q.Get("brand_id"),
		ProviderID:  q.Get("provider_id"),
		ProductID:   q.Get("product_id"),
		WarehouseID: q.Get("warehouse_id"),
	}
	var err error
	if v := q.Get("active_only"); v != "" {
		if f.ActiveOnly, err = strconv.ParseBool(v); err != nil {
			return f, fmt.Errorf("%w: active_only: %v", application.ErrBadRequest, err)
		}
	}
	if v := q.Get("limit"); v != "" {
		if f.Limit, err = strconv.Atoi(v); err != nil {
			return f, fmt.Errorf("%w: limit: %v", application.ErrBadRequest, err)
		}
	}
	if v := q.Get("offset"); v != "" {
		if f.Offset, err = strconv.Atoi(v); err != nil {
			return f, fmt.Errorf("%w: offset: %v", application.ErrBadRequest, err)
		}
	}
	return f, nil
}
