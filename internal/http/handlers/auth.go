package handlers

import (
	"net/http"

	apierrors "github.com/dEnchanter/aprilwind-admin/internal/errors"
	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// Login — вход оператора. Токены остаются в хранилище шлюза; фронту
// возвращается только состояние сессии.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if _, err := h.API.Auth.Login(r.Context(), in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	info, err := h.API.Auth.Session(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.API.Auth.Logout(r.Context()); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrInternal)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	info, err := h.API.Auth.Session(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, apierrors.ErrInternal)
		return
	}

	writeJSON(w, http.StatusOK, info)
}
