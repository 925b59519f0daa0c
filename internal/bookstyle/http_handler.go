package bookstyle

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookstorage/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type bookStyleRequest struct {
	BookISBN string `json:"bookIsbn" validate:"required,isbn"`
	StyleID  int    `json:"styleId" validate:"required"`
}

func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookStyleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	bs := BookStyle{BookISBN: req.BookISBN, StyleID: req.StyleID}
	if err := h.svc.Create(r.Context(), bs); err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, bs)
}

func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	styleID, err := strconv.Atoi(r.PathValue("styleId"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_ID", "Style id must be an integer", nil)
		return
	}
	bs, err := h.svc.Get(r.Context(), r.PathValue("isbn"), styleID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, bs, nil)
}

func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, links, map[string]any{"total": len(links)})
}

func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	styleID, err := strconv.Atoi(r.PathValue("styleId"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_ID", "Style id must be an integer", nil)
		return
	}
	var req bookStyleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	bs := BookStyle{BookISBN: req.BookISBN, StyleID: req.StyleID}
	if err := h.svc.Update(r.Context(), r.PathValue("isbn"), styleID, bs); err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, bs, nil)
}

func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	styleID, err := strconv.Atoi(r.PathValue("styleId"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_ID", "Style id must be an integer", nil)
		return
	}
	if err := h.svc.Delete(r.Context(), r.PathValue("isbn"), styleID); err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book style not found", nil)
	case errors.Is(err, ErrConflict):
		httpx.JSONError(w, http.StatusBadRequest, "CONFLICT", "Book style already exists", nil)
	case errors.Is(err, ErrInvalidRef):
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_REFERENCE", "Referenced book or style does not exist", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong", nil)
	}
}
