package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserHandler_List(t *testing.T) {
	handler := NewUserHandler(newTestShop(t), zap.NewNop())
	rec := httptest.NewRecorder()

	handler.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp UsersResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Users, 2)
	require.NotNil(t, resp.Users[0].Address)
	assert.Equal(t, "123 Main St", *resp.Users[0].Address)
	assert.Nil(t, resp.Users[1].Address)
}

func TestUserHandler_Get_AddressNull(t *testing.T) {
	handler := NewUserHandler(newTestShop(t), zap.NewNop())
	rec := httptest.NewRecorder()

	handler.Get(rec, withParams(httptest.NewRequest(http.MethodGet, "/", nil), "user_id", "U002"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"address":null`)
}

func TestUserHandler_Create(t *testing.T) {
	shop := newTestShop(t)
	handler := NewUserHandler(shop, zap.NewNop())

	rec := httptest.NewRecorder()
	body := jsonBody(t, CreateUserRequestDTO{UserID: "U003", Username: "bob", Email: "bob@example.com", Address: "1 Elm St"})
	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	user, ok := shop.User("U003")
	require.True(t, ok)
	assert.True(t, user.HasAddress())
	_, ok = shop.Cart("U003")
	assert.True(t, ok)
}

func TestUserHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"missing id", `{"email":"a@b"}`, http.StatusBadRequest, "invalid_user_id"},
		{"bad email", `{"user_id":"U9","email":"nope"}`, http.StatusBadRequest, "invalid_email"},
		{"blank address", `{"user_id":"U9","email":"a@b","address":"  "}`, http.StatusBadRequest, "invalid_address"},
		{"duplicate", `{"user_id":"U001","email":"a@b"}`, http.StatusConflict, "already_exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop := newTestShop(t)
			handler := NewUserHandler(shop, zap.NewNop())
			rec := httptest.NewRecorder()

			handler.Create(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, decodeError(t, rec).Code)
			_, registered := shop.User("U9")
			assert.False(t, registered)
		})
	}
}

func TestUserHandler_SetAddress(t *testing.T) {
	shop := newTestShop(t)
	handler := NewUserHandler(shop, zap.NewNop())

	rec := httptest.NewRecorder()
	req := withParams(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"address":"9 Oak Rd"}`)), "user_id", "U002")
	handler.SetAddress(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	user, _ := shop.User("U002")
	addr, _ := user.Address()
	assert.Equal(t, "9 Oak Rd", addr)

	rec = httptest.NewRecorder()
	req = withParams(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"address":""}`)), "user_id", "U002")
	handler.SetAddress(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req = withParams(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"address":"x"}`)), "user_id", "U999")
	handler.SetAddress(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_ListOrders(t *testing.T) {
	shop := newTestShop(t)
	handler := NewUserHandler(shop, zap.NewNop())
	_, _ = shop.AddToCart("U001", "P001", 1)
	_, ok := shop.Checkout("U001")
	require.True(t, ok)

	rec := httptest.NewRecorder()
	handler.ListOrders(rec, withParams(httptest.NewRequest(http.MethodGet, "/", nil), "user_id", "U001"))
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []OrderResponseDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-000001", orders[0].OrderID)

	// Must be a JSON array, not null
	rec = httptest.NewRecorder()
	handler.ListOrders(rec, withParams(httptest.NewRequest(http.MethodGet, "/", nil), "user_id", "U002"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ListOrders(rec, withParams(httptest.NewRequest(http.MethodGet, "/", nil), "user_id", "U999"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
