package authorship

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

type authorshipRequest struct {
	BookISBN string `json:"bookIsbn" validate:"required,isbn"`
	AuthorID int    `json:"authorId" validate:"required"`
}

func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req authorshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	a := Authorship{BookISBN: req.BookISBN, AuthorID: req.AuthorID}
	if err := h.svc.Create(r.Context(), a); err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, a)
}

func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	authorID, err := strconv.Atoi(r.PathValue("authorId"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_ID", "Author id must be an integer", nil)
		return
	}
	a, err := h.svc.Get(r.Context(), r.PathValue("isbn"), authorID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, a, nil)
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
	authorID, err := strconv.Atoi(r.PathValue("authorId"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_ID", "Author id must be an integer", nil)
		return
	}
	var req authorshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	a := Authorship{BookISBN: req.BookISBN, AuthorID: req.AuthorID}
	if err := h.svc.Update(r.Context(), r.PathValue("isbn"), authorID, a); err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, a, nil)
}

func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	authorID, err := strconv.Atoi(r.PathValue("authorId"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_ID", "Author id must be an integer", nil)
		return
	}
	if err := h.svc.Delete(r.Context(), r.PathValue("isbn"), authorID); err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Authorship not found", nil)
	case errors.Is(err, ErrConflict):
		httpx.JSONError(w, http.StatusBadRequest, "CONFLICT", "Authorship already exists", nil)
	case errors.Is(err, ErrInvalidRef):
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_REFERENCE", "Referenced book or author does not exist", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong", nil)
	}
}
