package querycache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type item struct {
	data      interface{}
	expiresAt time.Time
}

type subscription struct {
	prefix string
	fn     func(key string)
}

// Cache keeps query results by key. Invalidate drops every key under a
// prefix and tells subscribers so they can refetch.
type Cache struct {
	mu   sync.Mutex
	lru  *lru.Cache[string, item]
	ttl  time.Duration
	now  func() time.Time
	gen  uint64
	subs map[int]subscription
	next int
}

// New creates a cache holding up to size keys, each fresh for ttl.
func New(size int, ttl time.Duration) (*Cache, error) {
	l, err := lru.New[string, item](size)
	if err != nil {
		return nil, fmt.Errorf("querycache: %w", err)
	}
	return &Cache{
		lru:  l,
		ttl:  ttl,
		now:  time.Now,
		subs: map[int]subscription{},
	}, nil
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.get(key)
}

func (c *Cache) get(key string) (interface{}, bool) {
	it, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if c.now().After(it.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return it.data, true
}

func (c *Cache) Set(key string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, data)
}

func (c *Cache) set(key string, data interface{}) {
	c.lru.Add(key, item{data: data, expiresAt: c.now().Add(c.ttl)})
}

// Fetch returns the cached value for key or loads and stores it. A load
// that raced with an invalidation is returned but not cached.
func Fetch[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	if v, ok := c.get(key); ok {
		if typed, ok := v.(T); ok {
			c.mu.Unlock()
			return typed, nil
		}
	}
	gen := c.gen
	c.mu.Unlock()

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	if c.gen == gen {
		c.set(key, v)
	}
	c.mu.Unlock()
	return v, nil
}

// Invalidate removes every key starting with one of prefixes.
func (c *Cache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	c.gen++
	for _, key := range c.lru.Keys() {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				c.lru.Remove(key)
				break
			}
		}
	}
	notify := []func(){}
	for _, s := range c.subs {
		for _, p := range prefixes {
			if strings.HasPrefix(p, s.prefix) || strings.HasPrefix(s.prefix, p) {
				fn, key := s.fn, p
				notify = append(notify, func() { fn(key) })
				break
			}
		}
	}
	c.mu.Unlock()

	for _, n := range notify {
		n()
	}
}

// Subscribe calls fn with the invalidated prefix whenever keys under prefix
// are invalidated. The returned func cancels the subscription.
func (c *Cache) Subscribe(prefix string, fn func(key string)) func() {
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = subscription{prefix: prefix, fn: fn}
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}
