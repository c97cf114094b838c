package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog/log"
)

type seenEntry struct {
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
}

// SeenCache remembers which jobs and notifications were already reported,
// so restarting the watcher does not spam the same items again. Backed by a
// JSON file; entries expire after 30 days.
type SeenCache struct {
	mu       sync.Mutex
	filePath string
	keys     mapset.Set[string]
	stamps   map[string]int64
}

const thirtyDays = 30 * 24 * time.Hour

// NewSeenCache creates or loads the cache under cacheDir.
func NewSeenCache(cacheDir, name string) *SeenCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Warn().Err(err).Msg("⚠️ Failed to create cache directory")
	}
	cache := &SeenCache{
		filePath: filepath.Join(cacheDir, name),
		keys:     mapset.NewThreadUnsafeSet[string](),
		stamps:   make(map[string]int64),
	}
	cache.load()
	return cache
}

// IsSeen checks whether a key has already been reported.
func (c *SeenCache) IsSeen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keys.Contains(key)
}

// Add records keys as seen and saves when anything changed.
func (c *SeenCache) Add(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixMilli()
	changed := false
	for _, key := range keys {
		if c.keys.Add(key) {
			c.stamps[key] = now
			changed = true
		}
	}
	if changed {
		c.save()
	}
}

func (c *SeenCache) load() {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", c.filePath).Msg("⚠️ Failed to read seen cache")
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn().Err(err).Str("path", c.filePath).Msg("⚠️ Failed to parse seen cache")
		return
	}

	cutoff := time.Now().Add(-thirtyDays).UnixMilli()
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			c.keys.Add(e.Key)
			c.stamps[e.Key] = e.Timestamp
			loaded++
		}
	}
	log.Info().Int("loaded", loaded).Int("expired", len(entries)-loaded).Msg("📋 Seen cache loaded")
}

func (c *SeenCache) save() {
	entries := make([]seenEntry, 0, c.keys.Cardinality())
	for key := range c.keys.Iter() {
		entries = append(entries, seenEntry{Key: key, Timestamp: c.stamps[key]})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Failed to marshal seen cache")
		return
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		log.Warn().Err(err).Str("path", c.filePath).Msg("⚠️ Failed to write seen cache")
	}
}
