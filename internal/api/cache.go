package api

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/alcademic/web/internal/model"
)

// CachedClient wraps a Client with a keyed fetch layer for list pages.
// Each (page, limit, query) navigation state maps to one cache key;
// concurrent requests for the same key collapse into a single upstream
// call, and a render only ever sees the response for its own key, so a
// slow older fetch cannot overwrite a newer page. Detail fetches pass
// through uncached.
type CachedClient struct {
	client *Client

	group singleflight.Group

	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]*list.Element
	order    *list.List
}

type cacheEntry struct {
	key     string
	value   *model.PaperListResponse
	fetched time.Time
}

// NewCachedClient wraps client with an LRU of capacity list pages, each
// valid for ttl.
func NewCachedClient(client *Client, capacity int, ttl time.Duration) *CachedClient {
	if capacity <= 0 {
		capacity = 64
	}
	return &CachedClient{
		client:   client,
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// FetchPapers serves the list page for the key (page, limit, query),
// from cache when fresh, otherwise via exactly one upstream call shared
// by all concurrent requests for that key.
func (cc *CachedClient) FetchPapers(ctx context.Context, page, limit int, query string) (*model.PaperListResponse, error) {
	key := fmt.Sprintf("%d|%d|%s", page, limit, query)

	if resp, ok := cc.get(key); ok {
		return resp, nil
	}

	v, err, _ := cc.group.Do(key, func() (interface{}, error) {
		resp, err := cc.client.FetchPapers(ctx, page, limit, query)
		if err != nil {
			return nil, err
		}
		cc.put(key, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.PaperListResponse), nil
}

// FetchPaperDetail delegates to the underlying client.
func (cc *CachedClient) FetchPaperDetail(ctx context.Context, id string) (*model.PaperDetail, error) {
	return cc.client.FetchPaperDetail(ctx, id)
}

func (cc *CachedClient) get(key string) (*model.PaperListResponse, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	elem, ok := cc.entries[key]
	if !ok {
		return nil, false
	}
	ent := elem.Value.(*cacheEntry)
	if cc.ttl > 0 && time.Since(ent.fetched) > cc.ttl {
		delete(cc.entries, key)
		cc.order.Remove(elem)
		return nil, false
	}
	cc.order.MoveToFront(elem)
	return ent.value, true
}

func (cc *CachedClient) put(key string, value *model.PaperListResponse) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if elem, ok := cc.entries[key]; ok {
		ent := elem.Value.(*cacheEntry)
		ent.value = value
		ent.fetched = time.Now()
		cc.order.MoveToFront(elem)
		return
	}

	if cc.order.Len() >= cc.capacity {
		back := cc.order.Back()
		if back != nil {
			delete(cc.entries, back.Value.(*cacheEntry).key)
			cc.order.Remove(back)
		}
	}
	cc.entries[key] = cc.order.PushFront(&cacheEntry{
		key:     key,
		value:   value,
		fetched: time.Now(),
	})
}
