package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeenCacheAddAndReload(t *testing.T) {
	dir := t.TempDir()

	cache := NewSeenCache(dir, "seen_items.json")
	assert.False(t, cache.IsSeen("job:1"))

	cache.Add("job:1", "notification:5")
	assert.True(t, cache.IsSeen("job:1"))
	assert.True(t, cache.IsSeen("notification:5"))
	assert.False(t, cache.IsSeen("job:2"))

	// a fresh instance reads the same file back
	reloaded := NewSeenCache(dir, "seen_items.json")
	assert.True(t, reloaded.IsSeen("job:1"))
	assert.True(t, reloaded.IsSeen("notification:5"))
}

func TestSeenCacheExpiresOldEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seen_items.json")

	old := time.Now().Add(-40 * 24 * time.Hour).UnixMilli()
	fresh := time.Now().UnixMilli()
	entries := []seenEntry{
		{Key: "job:old", Timestamp: old},
		{Key: "job:fresh", Timestamp: fresh},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cache := NewSeenCache(dir, "seen_items.json")
	assert.False(t, cache.IsSeen("job:old"), "entries past 30 days are dropped on load")
	assert.True(t, cache.IsSeen("job:fresh"))
}

func TestSeenCacheAddIsIdempotent(t *testing.T) {
	cache := NewSeenCache(t.TempDir(), "seen_items.json")
	cache.Add("job:1")
	cache.Add("job:1")
	assert.True(t, cache.IsSeen("job:1"))
}
