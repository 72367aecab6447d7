// Package pricing содержит клиентскую аналитику истории цен и построение
// замещающего массива priceHistory для PATCH запросов.
//
// У сервера нет endpoint для частичного изменения отдельной записи истории:
// любое добавление/правка/удаление записи отправляется как полный
// замещающий массив. Функции этого пакета строят такой массив, сохраняя
// уникальность priceEntryId.
package pricing

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/ndmitry/pricetrack/pkg/api"
)

// Направления тренда цены
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// ChangeInfo представляет изменение цены между двумя последними записями
type ChangeInfo struct {
	Change     float64 // абсолютное изменение (может быть отрицательным)
	Percentage float64 // процент изменения, всегда >= 0
	Trend      string  // up / down / stable
}

// PriceChange вычисляет изменение цены по истории
// История упорядочена от новых записей к старым (порядок сервера)
// Меньше двух записей - изменение нулевое, тренд stable
func PriceChange(history []api.PriceEntry) ChangeInfo {
	if len(history) < 2 {
		return ChangeInfo{Trend: TrendStable}
	}

	latest := history[0].Price
	previous := history[1].Price
	change := latest - previous

	trend := TrendStable
	switch {
	case change > 0:
		trend = TrendUp
	case change < 0:
		trend = TrendDown
	}

	return ChangeInfo{
		Change:     change,
		Percentage: math.Abs(change / previous * 100),
		Trend:      trend,
	}
}

// Analytics представляет сводную статистику по истории цен
// Клиентский fallback для опциональных computed полей продукта
type Analytics struct {
	AveragePrice float64
	LowestPrice  float64
	HighestPrice float64
}

// Summarize вычисляет сводную статистику по истории цен
// Пустая история дает нулевую статистику
func Summarize(history []api.PriceEntry) Analytics {
	if len(history) == 0 {
		return Analytics{}
	}

	var sum float64
	lowest := history[0].Price
	highest := history[0].Price

	for _, entry := range history {
		sum += entry.Price
		if entry.Price < lowest {
			lowest = entry.Price
		}
		if entry.Price > highest {
			highest = entry.Price
		}
	}

	return Analytics{
		AveragePrice: sum / float64(len(history)),
		LowestPrice:  lowest,
		HighestPrice: highest,
	}
}

// AppendEntry строит замещающий массив с новой записью в начале истории
// Если PriceEntryID не задан, генерируется новый; коллизия id - ошибка
func AppendEntry(history []api.PriceEntry, entry api.PriceEntry) ([]api.PriceEntry, error) {
	if entry.PriceEntryID == "" {
		entry.PriceEntryID = uuid.New().String()
	}

	for _, existing := range history {
		if existing.PriceEntryID == entry.PriceEntryID {
			return nil, fmt.Errorf("price entry id %s already exists", entry.PriceEntryID)
		}
	}

	result := make([]api.PriceEntry, 0, len(history)+1)
	result = append(result, entry)
	result = append(result, history...)
	return result, nil
}

// ReplaceEntry строит замещающий массив с обновленной записью
// PriceEntryID записи сохраняется; отсутствующий id - ошибка
func ReplaceEntry(history []api.PriceEntry, entry api.PriceEntry) ([]api.PriceEntry, error) {
	if entry.PriceEntryID == "" {
		return nil, fmt.Errorf("price entry id is required")
	}

	result := make([]api.PriceEntry, len(history))
	found := false
	for i, existing := range history {
		if existing.PriceEntryID == entry.PriceEntryID {
			result[i] = entry
			found = true
			continue
		}
		result[i] = existing
	}

	if !found {
		return nil, fmt.Errorf("price entry %s not found", entry.PriceEntryID)
	}
	return result, nil
}

// RemoveEntry строит замещающий массив без указанной записи
// Последнюю оставшуюся запись удалять нельзя - у продукта всегда есть
// хотя бы одно наблюдение цены
func RemoveEntry(history []api.PriceEntry, priceEntryID string) ([]api.PriceEntry, error) {
	if len(history) == 1 && history[0].PriceEntryID == priceEntryID {
		return nil, fmt.Errorf("cannot remove the only price entry")
	}

	result := make([]api.PriceEntry, 0, len(history))
	found := false
	for _, existing := range history {
		if existing.PriceEntryID == priceEntryID {
			found = true
			continue
		}
		result = append(result, existing)
	}

	if !found {
		return nil, fmt.Errorf("price entry %s not found", priceEntryID)
	}
	return result, nil
}
