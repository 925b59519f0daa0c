package book

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"bookstorage/internal/testutil"
)

func validBody() map[string]any {
	return map[string]any{
		"isbn":              "9781234567890",
		"name":              "Solaris",
		"publishingCompany": "AST",
		"cost":              "12.50",
		"genres":            []string{"Science Fiction"},
	}
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newFakeRepo()))

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/api/books", validBody())

		handler.Create(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.Equal(t, true, resp.Body["success"])
	})

	t.Run("duplicate isbn", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newFakeRepo(Book{ISBN: "9781234567890"})))

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/api/books", validBody())

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad isbn format", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newFakeRepo()))

		body := validBody()
		body["isbn"] = "not-an-isbn"
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/api/books", body)

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("blank publisher", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newFakeRepo()))

		body := validBody()
		body["publishingCompany"] = "   "
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/api/books", body)

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("inline author with blank fio", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newFakeRepo()))

		body := validBody()
		body["authors"] = []map[string]any{{"fio": ""}}
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/api/books", body)

		handler.Create(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, false, resp.Body["success"])
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	t.Run("success ignores body isbn", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newFakeRepo(Book{ISBN: "9781234567890"})))

		body := validBody()
		body["isbn"] = "9999999999999"
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/books/9781234567890", body)
		r.SetPathValue("isbn", "9781234567890")

		handler.Update(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		data := resp.Body["data"].(map[string]any)
		assert.Equal(t, "9781234567890", data["isbn"])
	})

	t.Run("not found", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newFakeRepo()))

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/api/books/9781234567890", validBody())
		r.SetPathValue("isbn", "9781234567890")

		handler.Update(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newFakeRepo(Book{ISBN: "9781234567890"})))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/books/9781234567890", nil)
		r.SetPathValue("isbn", "9781234567890")

		handler.Delete(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(newFakeRepo()))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/books/9781234567890", nil)
		r.SetPathValue("isbn", "9781234567890")

		handler.Delete(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
