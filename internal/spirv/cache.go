// Package spirv compiles WGSL to SPIR-V words and caches the results so
// several devices loading the same shader set compile each source once.
package spirv

import (
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

// DefaultSoftLimit is the number of compiled modules kept by Default.
const DefaultSoftLimit = 64

// Default is the process-wide compile cache.
var Default = New(DefaultSoftLimit)

// CompileFunc turns WGSL source into SPIR-V words.
type CompileFunc func(source string) ([]uint32, error)

// Cache is a thread-safe cache of compiled shaders keyed by WGSL source,
// with a soft limit. When the cache exceeds softLimit, least recently used
// entries are evicted. Compile errors are not cached.
//
// Cache must not be copied after creation (has mutex).
type Cache struct {
	mu        sync.Mutex
	entries   map[string]*entry
	softLimit int
	tick      int64 // Monotonic access counter
	hits      uint64
	misses    uint64
	compile   CompileFunc
}

type entry struct {
	code  []uint32
	atime int64
}

// Stats contains cache statistics.
type Stats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// New creates a cache that compiles with naga. A softLimit of 0 means
// unlimited.
func New(softLimit int) *Cache {
	return NewWithCompiler(softLimit, CompileWGSL)
}

// NewWithCompiler is New with an explicit compiler.
func NewWithCompiler(softLimit int, compile CompileFunc) *Cache {
	return &Cache{
		entries:   make(map[string]*entry),
		softLimit: softLimit,
		compile:   compile,
	}
}

// Compile returns the SPIR-V for source, compiling it on a miss.
// Compilation runs under the lock so a source is never compiled twice
// concurrently. Callers must not modify the returned slice.
func (c *Cache) Compile(source string) ([]uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[source]; ok {
		e.atime = c.tick
		c.hits++
		return e.code, nil
	}
	c.misses++

	code, err := c.compile(source)
	if err != nil {
		return nil, err
	}
	c.entries[source] = &entry{code: code, atime: c.tick}

	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return code, nil
}

// Clear removes all entries. Statistics are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.tick = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{Len: len(c.entries), Hits: c.hits, Misses: c.misses}
}

// evictOldest removes the least recently used entries until a quarter of
// the soft limit is free.
// Caller must hold c.mu.
func (c *Cache) evictOldest() {
	targetSize := max(c.softLimit*3/4, 1)

	for len(c.entries) > targetSize {
		var oldest string
		oldestTime := int64(-1)
		for src, e := range c.entries {
			if oldestTime < 0 || e.atime < oldestTime {
				oldest, oldestTime = src, e.atime
			}
		}
		delete(c.entries, oldest)
	}
}

// CompileWGSL compiles WGSL source to SPIR-V words with naga, bypassing
// any cache.
func CompileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}
