// Package cache реализует клиентский кеш ответов сервера с окнами
// свежести и дедупликацией одновременных запросов.
//
// Семантика чтения по ключу:
//   - данные моложе StaleFor отдаются без сети;
//   - данные старше StaleFor, но еще не выпавшие из кеша, отдаются сразу,
//     а в фоне запускается перечитывание;
//   - отсутствующие или выпавшие данные требуют блокирующего запроса.
//
// Успешная мутация инвалидирует затронутые ключи (записи уничтожаются),
// следующее чтение идет в сеть.
package cache

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Options задает окна свежести для одного чтения
type Options struct {
	// StaleFor - окно, в течение которого данные отдаются без ревалидации
	StaleFor time.Duration
	// ExpireAfter - окно жизни записи; старше - только блокирующий запрос
	ExpireAfter time.Duration
}

// Fetcher загружает свежие данные для ключа
type Fetcher func(ctx context.Context) (interface{}, error)

// entry - одна запись кеша
type entry struct {
	data      interface{}
	fetchedAt time.Time
	staleFor  time.Duration
}

// Cache представляет кеш с in-flight дедупликацией запросов
// Безопасен для конкурентного использования
type Cache struct {
	store *gocache.Cache
	sf    singleflight.Group
	now   func() time.Time
}

// New создает пустой кеш
// TTL задается на каждую запись при чтении, не глобально
func New() *Cache {
	return &Cache{
		store: gocache.New(gocache.NoExpiration, time.Minute),
		now:   time.Now,
	}
}

// Read возвращает данные по ключу согласно окнам свежести opts
// Конкурентные чтения одного ключа разделяют один исходящий запрос
func (c *Cache) Read(ctx context.Context, key Key, opts Options, fetch Fetcher) (interface{}, error) {
	if raw, ok := c.store.Get(string(key)); ok {
		ent := raw.(entry)
		age := c.now().Sub(ent.fetchedAt)

		if age <= ent.staleFor {
			// Свежие данные - без сети
			return ent.data, nil
		}

		// Устаревшие, но еще живые: отдаем сразу, перечитываем в фоне.
		// context.Background - уход вызывающего не должен обрывать запись
		go c.revalidate(context.Background(), key, opts, fetch)
		return ent.data, nil
	}

	return c.fetch(ctx, key, opts, fetch)
}

// Invalidate уничтожает все записи, чей ключ начинается с prefix
// Следующее чтение таких ключей блокируется на свежем запросе
func (c *Cache) Invalidate(prefix Key) {
	for rawKey := range c.store.Items() {
		if Key(rawKey).HasPrefix(prefix) {
			c.store.Delete(rawKey)
		}
	}
}

// Purge уничтожает все записи (logout)
func (c *Cache) Purge() {
	c.store.Flush()
}

// fetch выполняет блокирующий запрос с дедупликацией по ключу
func (c *Cache) fetch(ctx context.Context, key Key, opts Options, fetch Fetcher) (interface{}, error) {
	data, err, _ := c.sf.Do(string(key), func() (interface{}, error) {
		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.put(key, data, opts)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// revalidate перечитывает устаревшую запись в фоне
// Неудача не трогает имеющиеся данные - они продолжают отдаваться
func (c *Cache) revalidate(ctx context.Context, key Key, opts Options, fetch Fetcher) {
	_, err, _ := c.sf.Do(string(key), func() (interface{}, error) {
		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.put(key, data, opts)
		return data, nil
	})
	if err != nil {
		slog.Warn("background cache revalidation failed", "key", string(key), "error", err)
	}
}

func (c *Cache) put(key Key, data interface{}, opts Options) {
	c.store.Set(string(key), entry{
		data:      data,
		fetchedAt: c.now(),
		staleFor:  opts.StaleFor,
	}, opts.ExpireAfter)
}
