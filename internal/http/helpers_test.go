package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/platform"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newTestShop(t *testing.T) *platform.Platform {
	t.Helper()

	p := platform.New()
	laptop, err := domain.NewProduct("P001", "Laptop", 999.99, 10)
	require.NoError(t, err)
	mouse, err := domain.NewProduct("P002", "Mouse", 29.99, 50)
	require.NoError(t, err)
	require.True(t, p.RegisterProduct(laptop))
	require.True(t, p.RegisterProduct(mouse))

	withAddress, err := domain.NewUser("U001", "john_doe", "john@example.com")
	require.NoError(t, err)
	require.NoError(t, withAddress.SetAddress("123 Main St"))
	require.True(t, p.RegisterUser(withAddress))

	noAddress, err := domain.NewUser("U002", "anna_nowak", "anna@example.com")
	require.NoError(t, err)
	require.True(t, p.RegisterUser(noAddress))

	return p
}

func withParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}
