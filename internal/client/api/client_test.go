package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndmitry/pricetrack/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL, 30*time.Second)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// TestClient_SignIn проверяет успешный вход
func TestClient_SignIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sign-in", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		// Вход не авторизуется токеном
		assert.Empty(t, r.Header.Get("Authorization"))

		var req api.SignInRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, "a", req.Username)
		assert.Equal(t, "b", req.Password)

		resp := api.SignInResponse{
			User: api.UserInfo{Username: "a"},
			Tokens: api.Tokens{
				AccessToken:  "T1",
				IDToken:      "I1",
				RefreshToken: "R1",
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, 30*time.Second)

	resp, err := client.SignIn(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a", resp.User.Username)
	assert.Equal(t, "T1", resp.Tokens.AccessToken)
	assert.Equal(t, "I1", resp.Tokens.IDToken)
	assert.Equal(t, "R1", resp.Tokens.RefreshToken)
}

// TestClient_SignIn_InvalidCredentials проверяет обработку отказа сервера
func TestClient_SignIn_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Message: "wrong password"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 30*time.Second)

	_, err := client.SignIn(context.Background(), "a", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "wrong password")
}

// TestClient_FetchCurrentUser проверяет сырой Authorization заголовок
func TestClient_FetchCurrentUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/get-user", r.URL.Path)
		// Токен передается как есть, без "Bearer " префикса
		assert.Equal(t, "T1", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(api.UserInfo{
			Username: "alice",
			Attributes: []api.UserAttribute{
				{Name: "email", Value: "alice@example.com"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 30*time.Second)

	user, err := client.FetchCurrentUser(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	require.Len(t, user.Attributes, 1)
	assert.Equal(t, "email", user.Attributes[0].Name)
}

// TestClient_FetchCurrentUser_NoToken проверяет guard до сетевого вызова
func TestClient_FetchCurrentUser_NoToken(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, 30*time.Second)

	_, err := client.FetchCurrentUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.False(t, called, "no request should be sent without a token")
}

// TestClient_RefreshToken проверяет обновление токенов
func TestClient_RefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/refresh-token", r.URL.Path)
		// Refresh токен идет в теле, заголовок авторизации пустой
		assert.Empty(t, r.Header.Get("Authorization"))

		var req api.RefreshRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, "R1", req.RefreshToken)

		resp := api.RefreshResponse{
			Tokens: api.Tokens{
				AccessToken:  "T2",
				IDToken:      "I2",
				RefreshToken: "R2",
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, 30*time.Second)

	tokens, err := client.RefreshToken(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, "T2", tokens.AccessToken)
	assert.Equal(t, "I2", tokens.IDToken)
	assert.Equal(t, "R2", tokens.RefreshToken)
}

// TestClient_RefreshToken_Rejected проверяет отказ refresh endpoint
func TestClient_RefreshToken_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Message: "refresh token consumed"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 30*time.Second)

	_, err := client.RefreshToken(context.Background(), "stale")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRefreshFailed)
}

// TestClient_Products проверяет CRUD операции с продуктами
func TestClient_Products(t *testing.T) {
	product := api.Product{
		ID:             "42",
		UserID:         "user-1",
		Name:           "Coffee Beans",
		Category:       "groceries",
		LatestPrice:    9.99,
		LatestCurrency: "EUR",
		PriceHistory: []api.PriceEntry{
			{PriceEntryID: "pe-1", Date: "2025-08-01", Price: 9.99, Currency: "EUR"},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "T1", r.Header.Get("Authorization"))

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/products":
			_ = json.NewEncoder(w).Encode([]api.Product{product})
		case r.Method == http.MethodGet && r.URL.Path == "/products/42":
			_ = json.NewEncoder(w).Encode(product)
		case r.Method == http.MethodPost && r.URL.Path == "/products":
			var req api.NewProduct
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Coffee Beans", req.Name)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(product)
		case r.Method == http.MethodPatch && r.URL.Path == "/products/42":
			var req api.ProductPatch
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.NotNil(t, req.Name)
			assert.Equal(t, "Coffee Beans XL", *req.Name)
			_ = json.NewEncoder(w).Encode(product)
		case r.Method == http.MethodDelete && r.URL.Path == "/products/42":
			_ = json.NewEncoder(w).Encode(api.DeleteResponse{Message: "deleted"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 30*time.Second)
	ctx := context.Background()

	list, err := client.ListProducts(ctx, "T1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "42", list[0].ID)

	got, err := client.GetProduct(ctx, "T1", "42")
	require.NoError(t, err)
	assert.Equal(t, "Coffee Beans", got.Name)

	created, err := client.CreateProduct(ctx, "T1", api.NewProduct{
		Name:           "Coffee Beans",
		Category:       "groceries",
		LatestPrice:    9.99,
		LatestCurrency: "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, "42", created.ID)

	newName := "Coffee Beans XL"
	updated, err := client.UpdateProduct(ctx, "T1", "42", api.ProductPatch{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "42", updated.ID)

	deleted, err := client.DeleteProduct(ctx, "T1", "42")
	require.NoError(t, err)
	assert.Equal(t, "deleted", deleted.Message)
}

// TestClient_Products_RequestError проверяет структурированную ошибку операции
func TestClient_Products_RequestError(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *Client) error
		wantOp     string
		statusCode int
	}{
		{
			name: "list products",
			call: func(c *Client) error {
				_, err := c.ListProducts(context.Background(), "T1")
				return err
			},
			wantOp:     "list products",
			statusCode: http.StatusInternalServerError,
		},
		{
			name: "get product",
			call: func(c *Client) error {
				_, err := c.GetProduct(context.Background(), "T1", "nope")
				return err
			},
			wantOp:     "get product",
			statusCode: http.StatusNotFound,
		},
		{
			name: "delete product",
			call: func(c *Client) error {
				_, err := c.DeleteProduct(context.Background(), "T1", "nope")
				return err
			},
			wantOp:     "delete product",
			statusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_ = json.NewEncoder(w).Encode(api.ErrorResponse{Message: "boom"})
			}))
			defer server.Close()

			client := NewClient(server.URL, 30*time.Second)
			err := tt.call(client)
			require.Error(t, err)

			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.wantOp, reqErr.Op)
			assert.Equal(t, tt.statusCode, reqErr.StatusCode)
			assert.Equal(t, "boom", reqErr.Message)
		})
	}
}
