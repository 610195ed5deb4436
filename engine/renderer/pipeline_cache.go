package renderer

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/euansprr-dev/CosmoNative-sub007/engine/renderer/pipeline"
)

// cacheKey identifies one compiled pipeline variant. The same program needs a
// separate compile per target format and sample count.
type cacheKey struct {
	program     string
	format      wgpu.TextureFormat
	sampleCount uint32
}

// compileFunc builds the pipeline for a key. Called under the cache write
// lock, at most once per key.
type compileFunc func(cacheKey) (pipeline.Pipeline, error)

// cacheEntry is one compile outcome. Failures are cached too: compilation
// runs at most once per key for the process lifetime, and a broken program
// keeps returning the same error instead of recompiling every frame.
type cacheEntry struct {
	p   pipeline.Pipeline
	err error
}

// pipelineCache memoizes compile outcomes. Reads take the shared lock so
// concurrent surface renderers hitting warm keys never serialize; the write
// lock is only taken on a miss, with a re-check so racing misses compile
// once.
type pipelineCache struct {
	mu      sync.RWMutex
	compile compileFunc
	entries map[cacheKey]cacheEntry
}

func newPipelineCache(compile compileFunc) *pipelineCache {
	return &pipelineCache{
		compile: compile,
		entries: make(map[cacheKey]cacheEntry),
	}
}

func (c *pipelineCache) get(key cacheKey) (pipeline.Pipeline, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return e.p, e.err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.p, e.err
	}
	p, err := c.compile(key)
	c.entries[key] = cacheEntry{p: p, err: err}
	return p, err
}

func (c *pipelineCache) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.p != nil {
			e.p.Release()
		}
	}
	c.entries = make(map[cacheKey]cacheEntry)
}
