package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dEnchanter/aprilwind-admin/internal/api"
	apierrors "github.com/dEnchanter/aprilwind-admin/internal/errors"
	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// CRUD — REST-хендлеры одного ресурса бэкенда. id берётся из URL-параметра {id}.
type CRUD[T, In any] struct {
	res *api.Resource[T, In]
}

func NewCRUD[T, In any](res *api.Resource[T, In]) CRUD[T, In] {
	return CRUD[T, In]{res: res}
}

func (c CRUD[T, In]) List(w http.ResponseWriter, r *http.Request) {
	page, err := c.res.List(r.Context(), models.PageQueryFrom(r.URL.Query()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (c CRUD[T, In]) Get(w http.ResponseWriter, r *http.Request) {
	out, err := c.res.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (c CRUD[T, In]) Create(w http.ResponseWriter, r *http.Request) {
	var in In
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := c.res.Create(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, out)
}

func (c CRUD[T, In]) Update(w http.ResponseWriter, r *http.Request) {
	var in In
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := c.res.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (c CRUD[T, In]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.res.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
