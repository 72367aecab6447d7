package cache

import "strings"

// Key представляет семантический ключ кеша
// Ключи строятся только через конструкторы ниже - это защита от
// коллизий между разными ресурсами
type Key string

const keySeparator = "/"

// Сегменты ключей
const (
	segmentProducts    = "products"
	segmentProductInfo = "productInfo"
	segmentUser        = "user"
)

// ProductsKey - ключ списка всех продуктов пользователя
func ProductsKey() Key {
	return Key(segmentProducts)
}

// ProductKey - ключ детальной информации одного продукта
func ProductKey(productID string) Key {
	return Key(segmentProductInfo + keySeparator + productID)
}

// ProductInfoPrefix - префикс всех ключей детальной информации
func ProductInfoPrefix() Key {
	return Key(segmentProductInfo)
}

// UserKey - ключ информации о текущем пользователе
func UserKey() Key {
	return Key(segmentUser + keySeparator + "auth")
}

// UserPrefix - префикс ключей идентичности пользователя
func UserPrefix() Key {
	return Key(segmentUser)
}

// HasPrefix проверяет, начинается ли ключ с prefix
// Совпадение только по целым сегментам: "products" не префикс "productInfo/42"
func (k Key) HasPrefix(prefix Key) bool {
	if k == prefix {
		return true
	}
	return strings.HasPrefix(string(k), string(prefix)+keySeparator)
}
