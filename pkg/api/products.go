package api

// Location представляет географическую точку покупки
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PriceEntry представляет одно наблюдение цены продукта
// PriceEntryID уникален в пределах продукта; история редактируется
// только полной заменой массива priceHistory (см. ProductPatch)
type PriceEntry struct {
	PriceEntryID string    `json:"priceEntryId"`
	Date         string    `json:"date"`
	Store        string    `json:"store,omitempty"`
	Location     *Location `json:"location,omitempty"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
}

// Product представляет продукт, отслеживаемый пользователем
// Источник истины - сервер; клиент держит только кешированные копии
type Product struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`

	// Текущий снимок цены
	LatestPrice        float64 `json:"latestPrice"`
	LatestCurrency     string  `json:"latestCurrency"`
	LatestStore        string  `json:"latestStore,omitempty"`
	LatestPurchaseDate string  `json:"latestPurchaseDate,omitempty"`

	PriceHistory []PriceEntry `json:"priceHistory"`

	// Аналитика (вычисляется сервером, опциональна)
	AveragePrice *float64 `json:"averagePrice,omitempty"`
	LowestPrice  *float64 `json:"lowestPrice,omitempty"`
	HighestPrice *float64 `json:"highestPrice,omitempty"`
	Trend        string   `json:"trend,omitempty"`

	Tags      []string `json:"tags,omitempty"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// NewProduct представляет запрос на создание продукта
// id, userId и timestamps назначает сервер
type NewProduct struct {
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`

	LatestPrice        float64 `json:"latestPrice"`
	LatestCurrency     string  `json:"latestCurrency"`
	LatestStore        string  `json:"latestStore,omitempty"`
	LatestPurchaseDate string  `json:"latestPurchaseDate,omitempty"`

	PriceHistory []PriceEntry `json:"priceHistory"`
	Tags         []string     `json:"tags,omitempty"`
}

// ProductPatch представляет частичное обновление продукта (PATCH семантика)
// Отсутствующие поля не меняются на сервере. Для правки истории цен
// PriceHistory всегда содержит ПОЛНЫЙ замещающий массив - частичного
// обновления отдельных записей у сервера нет.
type ProductPatch struct {
	Name        *string `json:"name,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`

	LatestPrice        *float64 `json:"latestPrice,omitempty"`
	LatestCurrency     *string  `json:"latestCurrency,omitempty"`
	LatestStore        *string  `json:"latestStore,omitempty"`
	LatestPurchaseDate *string  `json:"latestPurchaseDate,omitempty"`

	PriceHistory *[]PriceEntry `json:"priceHistory,omitempty"`
	Tags         *[]string     `json:"tags,omitempty"`
}

// DeleteResponse представляет ответ на удаление продукта
type DeleteResponse struct {
	Message string `json:"message"`
}
