package spirv

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// countingCompiler returns the source length as a single word.
type countingCompiler struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *countingCompiler) compile(src string) ([]uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	c.calls[src]++
	if strings.HasPrefix(src, "bad") {
		return nil, errors.New("syntax error")
	}
	return []uint32{uint32(len(src))}, nil
}

func TestCacheCompileOnce(t *testing.T) {
	cc := &countingCompiler{}
	c := NewWithCompiler(0, cc.compile)

	for range 3 {
		code, err := c.Compile("fn main() {}")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]uint32{12}, code); diff != "" {
			t.Errorf("Compile mismatch (-want +got):\n%s", diff)
		}
	}

	if got := cc.calls["fn main() {}"]; got != 1 {
		t.Errorf("compiled %d times, want 1", got)
	}
	if diff := cmp.Diff(Stats{Len: 1, Hits: 2, Misses: 1}, c.Stats()); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheErrorsNotCached(t *testing.T) {
	cc := &countingCompiler{}
	c := NewWithCompiler(0, cc.compile)

	for range 2 {
		if _, err := c.Compile("bad source"); err == nil {
			t.Fatal("expected error")
		}
	}
	if got := cc.calls["bad source"]; got != 2 {
		t.Errorf("failing source compiled %d times, want 2", got)
	}
	if got := c.Stats().Len; got != 0 {
		t.Errorf("Len = %d, want 0", got)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cc := &countingCompiler{}
	c := NewWithCompiler(4, cc.compile)

	for i := range 4 {
		if _, err := c.Compile(fmt.Sprintf("src%d", i)); err != nil {
			t.Fatal(err)
		}
	}
	// Touch src0 so it is the most recently used.
	if _, err := c.Compile("src0"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Compile("src4"); err != nil {
		t.Fatal(err)
	}

	// Over the limit: shrink to 3 entries, dropping src1 and src2.
	if got := c.Stats().Len; got != 3 {
		t.Fatalf("Len = %d, want 3", got)
	}
	for _, src := range []string{"src0", "src3", "src4"} {
		before := cc.calls[src]
		if _, err := c.Compile(src); err != nil {
			t.Fatal(err)
		}
		if cc.calls[src] != before {
			t.Errorf("%s was evicted", src)
		}
	}
}

func TestCacheClear(t *testing.T) {
	cc := &countingCompiler{}
	c := NewWithCompiler(0, cc.compile)

	_, _ = c.Compile("a")
	c.Clear()
	_, _ = c.Compile("a")

	if got := cc.calls["a"]; got != 2 {
		t.Errorf("compiled %d times after Clear, want 2", got)
	}
}

func TestCacheConcurrent(t *testing.T) {
	cc := &countingCompiler{}
	c := NewWithCompiler(0, cc.compile)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Compile(fmt.Sprintf("src%d", i%4))
		}()
	}
	wg.Wait()

	for i := range 4 {
		if got := cc.calls[fmt.Sprintf("src%d", i)]; got != 1 {
			t.Errorf("src%d compiled %d times, want 1", i, got)
		}
	}
}

func TestCompileWGSLInvalid(t *testing.T) {
	if _, err := CompileWGSL("this is not wgsl"); err == nil {
		t.Error("expected error for invalid WGSL")
	}
}
