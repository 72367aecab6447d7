// Package api реализует HTTP клиент для price tracker сервера.
//
// Access token передается в заголовке Authorization как есть, БЕЗ префикса
// "Bearer " - так ожидает существующий сервер, менять формат нельзя.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ndmitry/pricetrack/pkg/api"
)

// Имена операций для RequestError
const (
	opListProducts  = "list products"
	opGetProduct    = "get product"
	opCreateProduct = "create product"
	opUpdateProduct = "update product"
	opDeleteProduct = "delete product"
	opFetchUser     = "fetch current user"
)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SignIn выполняет аутентификацию пользователя
// non-2xx ответ трактуется как неверные учетные данные
func (c *Client) SignIn(ctx context.Context, username, password string) (*api.SignInResponse, error) {
	req := api.SignInRequest{
		Username: username,
		Password: password,
	}

	var resp api.SignInResponse
	err := c.doRequest(ctx, http.MethodPost, "/sign-in", "", req, &resp, "sign in")
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, reqErr.Message)
		}
		return nil, fmt.Errorf("sign-in request failed: %w", err)
	}
	return &resp, nil
}

// FetchCurrentUser получает информацию о текущем пользователе
// Пустой token - ErrUnauthenticated без обращения к сети
func (c *Client) FetchCurrentUser(ctx context.Context, accessToken string) (*api.UserInfo, error) {
	if accessToken == "" {
		return nil, ErrUnauthenticated
	}

	var resp api.UserInfo
	err := c.doRequest(ctx, http.MethodGet, "/get-user", accessToken, nil, &resp, opFetchUser)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshToken обменивает refresh токен на новую связку токенов
// Refresh токен передается в теле запроса, не в заголовке
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*api.Tokens, error) {
	req := api.RefreshRequest{RefreshToken: refreshToken}

	var resp api.RefreshResponse
	err := c.doRequest(ctx, http.MethodPost, "/refresh-token", "", req, &resp, "refresh token")
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			return nil, fmt.Errorf("%w: %s", ErrRefreshFailed, reqErr.Message)
		}
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp.Tokens, nil
}

// ListProducts возвращает все продукты текущего пользователя
func (c *Client) ListProducts(ctx context.Context, accessToken string) ([]api.Product, error) {
	var resp []api.Product
	err := c.doRequest(ctx, http.MethodGet, "/products", accessToken, nil, &resp, opListProducts)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetProduct возвращает продукт по id
func (c *Client) GetProduct(ctx context.Context, accessToken, productID string) (*api.Product, error) {
	var resp api.Product
	path := "/products/" + productID
	err := c.doRequest(ctx, http.MethodGet, path, accessToken, nil, &resp, opGetProduct)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateProduct создает новый продукт; id и timestamps назначает сервер
func (c *Client) CreateProduct(ctx context.Context, accessToken string, product api.NewProduct) (*api.Product, error) {
	var resp api.Product
	err := c.doRequest(ctx, http.MethodPost, "/products", accessToken, product, &resp, opCreateProduct)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProduct частично обновляет продукт (PATCH merge семантика)
func (c *Client) UpdateProduct(ctx context.Context, accessToken, productID string, patch api.ProductPatch) (*api.Product, error) {
	var resp api.Product
	path := "/products/" + productID
	err := c.doRequest(ctx, http.MethodPatch, path, accessToken, patch, &resp, opUpdateProduct)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteProduct удаляет продукт по id
func (c *Client) DeleteProduct(ctx context.Context, accessToken, productID string) (*api.DeleteResponse, error) {
	var resp api.DeleteResponse
	path := "/products/" + productID
	err := c.doRequest(ctx, http.MethodDelete, path, accessToken, nil, &resp, opDeleteProduct)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
// non-2xx ответ возвращается как *RequestError с сообщением сервера
func (c *Client) doRequest(ctx context.Context, method, path, authToken string, body, result interface{}, op string) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		// Сырой токен, без "Bearer " - контракт сервера
		req.Header.Set("Authorization", authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{
			Op:         op,
			StatusCode: resp.StatusCode,
		}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			reqErr.Message = errResp.Message
		} else {
			reqErr.Message = string(respBody)
		}
		return reqErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
