// internal/cache/cache.go
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/law-makers/results/pkg/models"
	"github.com/rs/zerolog/log"
)

// Cache stores extracted records by key.
type Cache interface {
	// Get returns the record stored under key and whether it was present.
	Get(key string) (*models.StudentRecord, bool)

	// Set stores rec under key for ttl, evicting older entries when full.
	Set(key string, rec *models.StudentRecord, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(key string) error

	// Clear removes every entry.
	Clear() error

	// Close stops background work.
	Close()
}

type cacheEntry struct {
	Record    *models.StudentRecord
	ExpiresAt time.Time
	Key       string
	Size      int64
}

// MemoryCache is an in-memory LRU cache bounded by an estimated byte size
type MemoryCache struct {
	store   map[string]*list.Element
	lruList *list.List
	mu      sync.Mutex
	maxSize int64
	size    int64
	ctx     context.Context
	cancel  context.CancelFunc
	hits    uint64
	misses  uint64
}

// NewMemoryCache creates a new in-memory cache with LRU eviction
func NewMemoryCache(maxSizeBytes int64) *MemoryCache {
	if maxSizeBytes <= 0 {
		maxSizeBytes = 16 * 1024 * 1024
	}

	ctx, cancel := context.WithCancel(context.Background())

	cache := &MemoryCache{
		store:   make(map[string]*list.Element),
		lruList: list.New(),
		maxSize: maxSizeBytes,
		ctx:     ctx,
		cancel:  cancel,
	}

	go cache.cleanupExpired(time.Minute)

	return cache
}

// Get retrieves a cached record and marks it most recently used
func (mc *MemoryCache) Get(key string) (*models.StudentRecord, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	element, exists := mc.store[key]
	if !exists {
		mc.misses++
		return nil, false
	}

	entry := element.Value.(*cacheEntry)
	if time.Now().After(entry.ExpiresAt) {
		mc.misses++
		mc.removeElement(element)
		return nil, false
	}

	mc.lruList.MoveToFront(element)
	mc.hits++
	return entry.Record, true
}

// Set stores a record with TTL
func (mc *MemoryCache) Set(key string, rec *models.StudentRecord, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if element, exists := mc.store[key]; exists {
		mc.removeElement(element)
	}

	entry := &cacheEntry{
		Record:    rec,
		ExpiresAt: time.Now().Add(ttl),
		Key:       key,
		Size:      recordSize(rec),
	}

	for mc.size+entry.Size > mc.maxSize && mc.lruList.Len() > 0 {
		mc.evictLRU()
	}

	mc.store[key] = mc.lruList.PushFront(entry)
	mc.size += entry.Size

	log.Debug().
		Str("key", key).
		Dur("ttl", ttl).
		Int64("size_bytes", entry.Size).
		Msg("Cached record")

	return nil
}

// Delete removes a cached record
func (mc *MemoryCache) Delete(key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if element, exists := mc.store[key]; exists {
		mc.removeElement(element)
	}
	return nil
}

// Clear removes all cached records
func (mc *MemoryCache) Clear() error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.store = make(map[string]*list.Element)
	mc.lruList = list.New()
	mc.size = 0
	mc.hits = 0
	mc.misses = 0
	return nil
}

// Close stops the background cleanup goroutine
func (mc *MemoryCache) Close() {
	mc.cancel()
}

// Stats reports entry count, size and hit counters
func (mc *MemoryCache) Stats() Stats {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	return Stats{
		Entries:   mc.lruList.Len(),
		SizeBytes: mc.size,
		MaxBytes:  mc.maxSize,
		Hits:      mc.hits,
		Misses:    mc.misses,
	}
}

// Stats is a snapshot of cache counters
type Stats struct {
	Entries   int    `json:"entries"`
	SizeBytes int64  `json:"sizeBytes"`
	MaxBytes  int64  `json:"maxBytes"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
}

// evictLRU removes the least recently used entry (must be called with lock held)
func (mc *MemoryCache) evictLRU() {
	if element := mc.lruList.Back(); element != nil {
		log.Debug().Str("key", element.Value.(*cacheEntry).Key).Msg("Evicted from cache (LRU)")
		mc.removeElement(element)
	}
}

// removeElement must be called with lock held
func (mc *MemoryCache) removeElement(element *list.Element) {
	entry := element.Value.(*cacheEntry)
	mc.lruList.Remove(element)
	delete(mc.store, entry.Key)
	mc.size -= entry.Size
}

func (mc *MemoryCache) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.mu.Lock()
			now := time.Now()
			var next *list.Element
			for element := mc.lruList.Front(); element != nil; element = next {
				next = element.Next()
				if now.After(element.Value.(*cacheEntry).ExpiresAt) {
					mc.removeElement(element)
				}
			}
			mc.mu.Unlock()
		case <-mc.ctx.Done():
			return
		}
	}
}

// recordSize roughly estimates the memory held by rec
func recordSize(rec *models.StudentRecord) int64 {
	size := int64(256 + len(rec.HallTicket) + len(rec.Message))
	if pd := rec.PersonalDetails; pd != nil {
		size += int64(len(pd.HallTicketNo) + len(pd.Name) + len(pd.FatherName) + len(pd.Gender) + len(pd.Course))
	}
	for _, m := range rec.Marks {
		size += int64(64 + len(m.SubCode) + len(m.SubjectName) + len(m.Credits) + len(m.GradePoints) + len(m.GradeSecurity))
	}
	if r := rec.Result; r != nil {
		size += int64(len(r.Semester) + len(r.SGPA) + len(r.CGPA))
	}
	return size
}
