package book

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookstorage/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type bookRequest struct {
	ISBN              string      `json:"isbn" validate:"required,isbn"`
	Name              string      `json:"name" validate:"required"`
	PublicationYear   string      `json:"publicationYear"`
	AgeLimit          float32     `json:"ageLimit"`
	PublishingCompany string      `json:"publishingCompany" validate:"required"`
	PageCount         int         `json:"pageCount"`
	Language          string      `json:"language"`
	Cost              string      `json:"cost"`
	CountOfBooks      int         `json:"countOfBooks"`
	Authors           []AuthorRef `json:"authors"`
	Genres            []string    `json:"genres"`
}

func (req bookRequest) toInput() Input {
	return Input{
		ISBN:              req.ISBN,
		Name:              req.Name,
		PublicationYear:   req.PublicationYear,
		AgeLimit:          req.AgeLimit,
		PublishingCompany: req.PublishingCompany,
		PageCount:         req.PageCount,
		Language:          req.Language,
		Cost:              req.Cost,
		CountOfBooks:      req.CountOfBooks,
		Authors:           req.Authors,
		Genres:            req.Genres,
	}
}

func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	b, err := h.svc.Create(r.Context(), req.toInput())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, b)
}

func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetByISBN(r.Context(), r.PathValue("isbn"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, b, nil)
}

func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	q := Query{
		Search:     r.URL.Query().Get("search"),
		SortColumn: r.URL.Query().Get("sort_column"),
		SortOrder:  r.URL.Query().Get("sort_order"),
	}
	books, err := h.svc.List(r.Context(), q)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, books, map[string]any{"total": len(books)})
}

func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}
	// The path owns the identity; the body's isbn field is ignored.
	req.ISBN = r.PathValue("isbn")
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	b, err := h.svc.Update(r.Context(), req.ISBN, req.toInput())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, b, nil)
}

func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("isbn")); err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var isbns []string
	if err := json.NewDecoder(r.Body).Decode(&isbns); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}
	if err := h.svc.BulkDelete(r.Context(), isbns); err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrAuthorNotFound):
		httpx.JSONError(w, http.StatusNotFound, "AUTHOR_NOT_FOUND", "Referenced author not found", nil)
	case errors.Is(err, ErrConflict):
		httpx.JSONError(w, http.StatusBadRequest, "CONFLICT", "Book with this ISBN already exists", nil)
	case errors.Is(err, ErrPublisherRequired):
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Publishing company name must not be blank", nil)
	case errors.Is(err, ErrAuthorNameRequired):
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Author fio must not be blank", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong", nil)
	}
}
