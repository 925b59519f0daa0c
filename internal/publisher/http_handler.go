package publisher

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookstorage/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type companyRequest struct {
	Name              string `json:"name" validate:"required"`
	EstablishmentYear string `json:"establishmentYear"`
	ContactInfo       string `json:"contactInfo"`
	City              string `json:"city"`
}

func (req companyRequest) toEntity() PublishingCompany {
	return PublishingCompany{
		Name:              req.Name,
		EstablishmentYear: req.EstablishmentYear,
		ContactInfo:       req.ContactInfo,
		City:              req.City,
	}
}

// Create handles POST /api/publishing-companies
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	pc := req.toEntity()
	if err := h.service.Create(r.Context(), &pc); err != nil {
		if errors.Is(err, ErrConflict) {
			httpx.JSONError(w, http.StatusBadRequest, "CONFLICT", "Publishing company already exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessCreated(w, pc)
}

// GetByName handles GET /api/publishing-companies/{name}
func (h *HTTPHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	pc, err := h.service.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Publishing company not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, pc, nil)
}

// List handles GET /api/publishing-companies
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, companies, map[string]any{"total": len(companies)})
}

// Search handles GET /api/publishing-companies/search
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, companies, map[string]any{"total": len(companies)})
}

// Update handles PUT /api/publishing-companies/{name}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	originalName := r.PathValue("name")

	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	pc := req.toEntity()
	updated, err := h.service.Update(r.Context(), originalName, &pc)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Publishing company not found", nil)
		case errors.Is(err, ErrConflict):
			httpx.JSONError(w, http.StatusBadRequest, "CONFLICT", "A publishing company with the new name already exists", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}
	httpx.JSONSuccess(w, updated, nil)
}

// Delete handles DELETE /api/publishing-companies/{name}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	if err := h.service.Delete(r.Context(), name); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Publishing company not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// BulkDelete handles DELETE /api/publishing-companies/bulk-delete
func (h *HTTPHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var names []string
	if err := json.NewDecoder(r.Body).Decode(&names); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be a list of names", nil)
		return
	}

	if err := h.service.DeleteMany(r.Context(), names); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Some publishing companies were not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
