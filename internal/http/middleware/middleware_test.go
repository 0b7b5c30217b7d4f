package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
)

func TestCorrelationID(t *testing.T) {
	var seen string
	h := CorrelationID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = correlationid.FromContext(r.Context())
	}))

	t.Run("Should propagate the incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set(correlationid.Header, "req-1")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, "req-1", seen)
		assert.Equal(t, "req-1", rec.Header().Get(correlationid.Header))
	})

	t.Run("Should generate an id when missing", func(t *testing.T) {
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(correlationid.Header))
	})
}

func TestRecoverer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Recoverer(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}
