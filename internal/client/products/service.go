// Package products реализует клиентский сервис продуктов: чтения через
// кеш с окнами свежести, мутации с инвалидацией затронутых ключей.
package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ndmitry/pricetrack/internal/client/cache"
	"github.com/ndmitry/pricetrack/internal/pricing"
	"github.com/ndmitry/pricetrack/pkg/api"
)

// ErrNoTokenFound - в хранилище нет access токена; запрос не отправляется
var ErrNoTokenFound = errors.New("no access token found")

// Окна свежести продуктовых чтений (повторяют поведение мобильного клиента)
const (
	// DefaultStaleFor - окно, в течение которого кеш отдается без ревалидации
	DefaultStaleFor = 5 * time.Minute
	// DefaultExpireAfter - время жизни записи кеша
	DefaultExpireAfter = 10 * time.Minute
)

// API defines the product gateway operations the service needs
type API interface {
	ListProducts(ctx context.Context, accessToken string) ([]api.Product, error)
	GetProduct(ctx context.Context, accessToken, productID string) (*api.Product, error)
	CreateProduct(ctx context.Context, accessToken string, product api.NewProduct) (*api.Product, error)
	UpdateProduct(ctx context.Context, accessToken, productID string, patch api.ProductPatch) (*api.Product, error)
	DeleteProduct(ctx context.Context, accessToken, productID string) (*api.DeleteResponse, error)
}

// TokenSource loads the currently stored access token
// Отсутствующий токен - пустая строка без ошибки
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Service представляет сервис продуктов
type Service struct {
	api      API
	tokens   TokenSource
	cache    *cache.Cache
	readOpts cache.Options
}

// NewService создает новый сервис продуктов
func NewService(productAPI API, tokens TokenSource, c *cache.Cache) *Service {
	return &Service{
		api:    productAPI,
		tokens: tokens,
		cache:  c,
		readOpts: cache.Options{
			StaleFor:    DefaultStaleFor,
			ExpireAfter: DefaultExpireAfter,
		},
	}
}

// accessToken загружает токен и падает быстро, если его нет
// Guard стоит перед каждым сетевым вызовом - неавторизованные запросы
// не отправляются вовсе
func (s *Service) accessToken(ctx context.Context) (string, error) {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load access token: %w", err)
	}
	if token == "" {
		return "", ErrNoTokenFound
	}
	return token, nil
}

// List возвращает все продукты пользователя через кеш
func (s *Service) List(ctx context.Context) ([]api.Product, error) {
	data, err := s.cache.Read(ctx, cache.ProductsKey(), s.readOpts, func(ctx context.Context) (interface{}, error) {
		token, err := s.accessToken(ctx)
		if err != nil {
			return nil, err
		}
		return s.api.ListProducts(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return data.([]api.Product), nil
}

// GetByID возвращает продукт по id через кеш
func (s *Service) GetByID(ctx context.Context, productID string) (*api.Product, error) {
	data, err := s.cache.Read(ctx, cache.ProductKey(productID), s.readOpts, func(ctx context.Context) (interface{}, error) {
		token, err := s.accessToken(ctx)
		if err != nil {
			return nil, err
		}
		return s.api.GetProduct(ctx, token, productID)
	})
	if err != nil {
		return nil, err
	}
	return data.(*api.Product), nil
}

// Create создает продукт
// Успех инвалидирует ключ списка и ключ нового продукта; неудача не
// трогает кеш
func (s *Service) Create(ctx context.Context, product api.NewProduct) (*api.Product, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.api.CreateProduct(ctx, token, product)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.ProductKey(created.ID))
	s.cache.Invalidate(cache.ProductsKey())
	return created, nil
}

// Update частично обновляет продукт
// Успех инвалидирует ключ продукта и ключ списка
func (s *Service) Update(ctx context.Context, productID string, patch api.ProductPatch) (*api.Product, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateProduct(ctx, token, productID, patch)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.ProductKey(productID))
	s.cache.Invalidate(cache.ProductsKey())
	return updated, nil
}

// Delete удаляет продукт
// Успех инвалидирует ключ списка; осиротевший ключ продукта выпадет
// из кеша по TTL
func (s *Service) Delete(ctx context.Context, productID string) (*api.DeleteResponse, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.DeleteProduct(ctx, token, productID)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.ProductsKey())
	return resp, nil
}

// AddPriceEntry добавляет наблюдение цены в историю продукта
// У сервера нет endpoint частичной правки истории: отправляется полный
// замещающий массив, плюс обновленный снимок последней цены
func (s *Service) AddPriceEntry(ctx context.Context, productID string, entry api.PriceEntry) (*api.Product, error) {
	product, err := s.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	history, err := pricing.AppendEntry(product.PriceHistory, entry)
	if err != nil {
		return nil, err
	}

	newest := history[0]
	patch := api.ProductPatch{
		PriceHistory:       &history,
		LatestPrice:        &newest.Price,
		LatestCurrency:     &newest.Currency,
		LatestPurchaseDate: &newest.Date,
	}
	if newest.Store != "" {
		patch.LatestStore = &newest.Store
	}

	return s.Update(ctx, productID, patch)
}

// EditPriceEntry заменяет одно наблюдение в истории продукта
func (s *Service) EditPriceEntry(ctx context.Context, productID string, entry api.PriceEntry) (*api.Product, error) {
	product, err := s.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	history, err := pricing.ReplaceEntry(product.PriceHistory, entry)
	if err != nil {
		return nil, err
	}

	return s.Update(ctx, productID, api.ProductPatch{PriceHistory: &history})
}

// DeletePriceEntry удаляет одно наблюдение из истории продукта
// Последнее оставшееся наблюдение удалить нельзя
func (s *Service) DeletePriceEntry(ctx context.Context, productID, priceEntryID string) (*api.Product, error) {
	product, err := s.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	history, err := pricing.RemoveEntry(product.PriceHistory, priceEntryID)
	if err != nil {
		return nil, err
	}

	return s.Update(ctx, productID, api.ProductPatch{PriceHistory: &history})
}
