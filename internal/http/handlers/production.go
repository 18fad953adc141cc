package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/dEnchanter/aprilwind-admin/internal/errors"
	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// Summary — счётчики главной страницы.
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.API.Dashboard.Summary(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}

func (h *Handlers) MoveStage(w http.ResponseWriter, r *http.Request) {
	var in models.StageTransition
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.API.Productions.MoveStage(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) PendingRequests(w http.ResponseWriter, r *http.Request) {
	page, err := h.API.MaterialRequests.Pending(r.Context(), models.PageQueryFrom(r.URL.Query()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	var in models.Decision
	if err := decodeOptional(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.API.MaterialRequests.Approve(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var in models.Decision
	if err := decodeOptional(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.API.MaterialRequests.Reject(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}
