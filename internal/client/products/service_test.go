package products

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndmitry/pricetrack/internal/client/cache"
	"github.com/ndmitry/pricetrack/pkg/api"
)

// mockTokenSource implements TokenSource for testing
type mockTokenSource struct {
	token string
	err   error
}

func (m *mockTokenSource) AccessToken(ctx context.Context) (string, error) {
	return m.token, m.err
}

// mockAPI implements API for testing
type mockAPI struct {
	mu sync.Mutex

	products map[string]api.Product
	order    []string

	listCalls   int
	getCalls    int
	createErr   error
	updateErr   error
	deleteErr   error
	lastToken   string
	lastPatch   *api.ProductPatch
	nextID      int
}

func newMockAPI(products ...api.Product) *mockAPI {
	m := &mockAPI{
		products: make(map[string]api.Product),
		nextID:   100,
	}
	for _, p := range products {
		m.products[p.ID] = p
		m.order = append(m.order, p.ID)
	}
	return m
}

func (m *mockAPI) ListProducts(ctx context.Context, accessToken string) ([]api.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.lastToken = accessToken

	result := make([]api.Product, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.products[id])
	}
	return result, nil
}

func (m *mockAPI) GetProduct(ctx context.Context, accessToken, productID string) (*api.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	m.lastToken = accessToken

	p, ok := m.products[productID]
	if !ok {
		return nil, fmt.Errorf("get product failed (404): not found")
	}
	return &p, nil
}

func (m *mockAPI) CreateProduct(ctx context.Context, accessToken string, product api.NewProduct) (*api.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastToken = accessToken

	if m.createErr != nil {
		return nil, m.createErr
	}

	m.nextID++
	created := api.Product{
		ID:             fmt.Sprintf("%d", m.nextID),
		UserID:         "user-1",
		Name:           product.Name,
		Category:       product.Category,
		LatestPrice:    product.LatestPrice,
		LatestCurrency: product.LatestCurrency,
		PriceHistory:   product.PriceHistory,
	}
	m.products[created.ID] = created
	m.order = append(m.order, created.ID)
	return &created, nil
}

func (m *mockAPI) UpdateProduct(ctx context.Context, accessToken, productID string, patch api.ProductPatch) (*api.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastToken = accessToken
	m.lastPatch = &patch

	if m.updateErr != nil {
		return nil, m.updateErr
	}

	p := m.products[productID]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.PriceHistory != nil {
		p.PriceHistory = *patch.PriceHistory
	}
	if patch.LatestPrice != nil {
		p.LatestPrice = *patch.LatestPrice
	}
	m.products[productID] = p
	return &p, nil
}

func (m *mockAPI) DeleteProduct(ctx context.Context, accessToken, productID string) (*api.DeleteResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastToken = accessToken

	if m.deleteErr != nil {
		return nil, m.deleteErr
	}

	delete(m.products, productID)
	for i, id := range m.order {
		if id == productID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return &api.DeleteResponse{Message: "deleted"}, nil
}

func (m *mockAPI) listCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

func testProduct(id string) api.Product {
	return api.Product{
		ID:             id,
		UserID:         "user-1",
		Name:           "Product " + id,
		Category:       "groceries",
		LatestPrice:    10,
		LatestCurrency: "EUR",
		PriceHistory: []api.PriceEntry{
			{PriceEntryID: "pe-" + id + "-1", Date: "2025-08-01", Price: 10, Currency: "EUR"},
			{PriceEntryID: "pe-" + id + "-2", Date: "2025-07-01", Price: 12, Currency: "EUR"},
		},
	}
}

func newTestService(mock *mockAPI) *Service {
	return NewService(mock, &mockTokenSource{token: "T1"}, cache.New())
}

func TestService_List(t *testing.T) {
	mock := newMockAPI(testProduct("1"))
	svc := newTestService(mock)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "T1", mock.lastToken)

	// Повторное чтение внутри окна свежести - без сети
	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.listCallCount())
}

func TestService_NoToken(t *testing.T) {
	mock := newMockAPI(testProduct("1"))
	svc := NewService(mock, &mockTokenSource{token: ""}, cache.New())
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, ErrNoTokenFound)
	assert.Equal(t, 0, mock.listCallCount(), "no request without a token")

	_, err = svc.Create(ctx, api.NewProduct{Name: "x"})
	assert.ErrorIs(t, err, ErrNoTokenFound)

	_, err = svc.Delete(ctx, "1")
	assert.ErrorIs(t, err, ErrNoTokenFound)
}

// TestService_CreateInvalidatesList: create -> invalidate -> list видит
// новый продукт без ручной очистки кеша
func TestService_CreateInvalidatesList(t *testing.T) {
	mock := newMockAPI(testProduct("1"))
	svc := newTestService(mock)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	created, err := svc.Create(ctx, api.NewProduct{
		Name:           "Fresh Bread",
		Category:       "groceries",
		LatestPrice:    2.5,
		LatestCurrency: "EUR",
	})
	require.NoError(t, err)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[1].ID)
	assert.Equal(t, 2, mock.listCallCount(), "list must be refetched after create")
}

// TestService_FailedMutationKeepsCache: неудачная мутация не трогает кеш
func TestService_FailedMutationKeepsCache(t *testing.T) {
	mock := newMockAPI(testProduct("1"))
	svc := newTestService(mock)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)

	mock.createErr = fmt.Errorf("create product failed (500): boom")
	_, err = svc.Create(ctx, api.NewProduct{Name: "x"})
	require.Error(t, err)

	// Кеш списка не инвалидирован - чтение без сети
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, mock.listCallCount())
}

func TestService_UpdateInvalidatesDetailAndList(t *testing.T) {
	mock := newMockAPI(testProduct("1"))
	svc := newTestService(mock)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, "1")
	require.NoError(t, err)

	newName := "Renamed"
	_, err = svc.Update(ctx, "1", api.ProductPatch{Name: &newName})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", list[0].Name)
	assert.Equal(t, 2, mock.listCallCount())
}

func TestService_DeleteInvalidatesList(t *testing.T) {
	mock := newMockAPI(testProduct("1"), testProduct("2"))
	svc := newTestService(mock)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)

	resp, err := svc.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "deleted", resp.Message)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2", list[0].ID)
}

func TestService_AddPriceEntry(t *testing.T) {
	mock := newMockAPI(testProduct("1"))
	svc := newTestService(mock)
	ctx := context.Background()

	updated, err := svc.AddPriceEntry(ctx, "1", api.PriceEntry{
		Date:     "2025-09-01",
		Price:    8.5,
		Currency: "EUR",
		Store:    "SuperMart",
	})
	require.NoError(t, err)

	require.Len(t, updated.PriceHistory, 3)
	assert.Equal(t, "2025-09-01", updated.PriceHistory[0].Date)
	assert.NotEmpty(t, updated.PriceHistory[0].PriceEntryID)
	assert.InDelta(t, 8.5, updated.LatestPrice, 0.0001)

	// Patch несет полный замещающий массив
	require.NotNil(t, mock.lastPatch)
	require.NotNil(t, mock.lastPatch.PriceHistory)
	assert.Len(t, *mock.lastPatch.PriceHistory, 3)
}

func TestService_EditPriceEntry(t *testing.T) {
	mock := newMockAPI(testProduct("1"))
	svc := newTestService(mock)
	ctx := context.Background()

	updated, err := svc.EditPriceEntry(ctx, "1", api.PriceEntry{
		PriceEntryID: "pe-1-2",
		Date:         "2025-07-01",
		Price:        11,
		Currency:     "EUR",
	})
	require.NoError(t, err)

	require.Len(t, updated.PriceHistory, 2)
	assert.InDelta(t, 11, updated.PriceHistory[1].Price, 0.0001)
}

func TestService_DeletePriceEntry(t *testing.T) {
	mock := newMockAPI(testProduct("1"))
	svc := newTestService(mock)
	ctx := context.Background()

	updated, err := svc.DeletePriceEntry(ctx, "1", "pe-1-2")
	require.NoError(t, err)
	require.Len(t, updated.PriceHistory, 1)
	assert.Equal(t, "pe-1-1", updated.PriceHistory[0].PriceEntryID)
}

// TestService_DeletePriceEntry_Last: последнее наблюдение удалить нельзя
func TestService_DeletePriceEntry_Last(t *testing.T) {
	p := testProduct("1")
	p.PriceHistory = p.PriceHistory[:1]
	mock := newMockAPI(p)
	svc := newTestService(mock)
	ctx := context.Background()

	_, err := svc.DeletePriceEntry(ctx, "1", "pe-1-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only price entry")
}
