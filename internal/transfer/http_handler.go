package transfer

import (
	"net/http"

	"bookstorage/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

func (h *HTTPHandler) Export(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Export(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "EXPORT_FAILED", "CSV export failed", nil)
		return
	}
	httpx.JSONSuccess(w, report, nil)
}

func (h *HTTPHandler) Import(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Import(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "IMPORT_FAILED", "CSV import failed", nil)
		return
	}
	httpx.JSONSuccess(w, report, nil)
}
