package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Codec hooks
	c := NoopCodecHooks{}
	c.OnEncodeStart(ctx, 10)
	c.OnEncodeComplete(ctx, 10, time.Second, nil)
	c.OnDecodeStart(ctx, 1024)
	c.OnDecodeComplete(ctx, 10, time.Second, nil)

	// Cache hooks
	ch := NoopCacheHooks{}
	ch.OnCacheHit(ctx, "artifact")
	ch.OnCacheMiss(ctx, "artifact")
	ch.OnCacheSet(ctx, "artifact", 1024)

	// Store hooks
	s := NoopStoreHooks{}
	s.OnPut(ctx, "abc", 1024)
	s.OnGet(ctx, "abc", true)
	s.OnDelete(ctx, "abc", false)
}

type countingCacheHooks struct {
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestSetCacheHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingCacheHooks{}
	SetCacheHooks(h)

	ctx := context.Background()
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 10)
	Cache().OnCacheHit(ctx, "artifact")

	if h.hits != 1 || h.misses != 1 || h.sets != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", h.hits, h.misses, h.sets)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingCacheHooks{}
	SetCacheHooks(h)
	SetCacheHooks(nil)

	Cache().OnCacheHit(context.Background(), "artifact")
	if h.hits != 1 {
		t.Errorf("hits = %d, want 1 (nil registration must be ignored)", h.hits)
	}
}

func TestReset(t *testing.T) {
	h := &countingCacheHooks{}
	SetCacheHooks(h)
	Reset()

	Cache().OnCacheHit(context.Background(), "artifact")
	if h.hits != 0 {
		t.Errorf("hits = %d after Reset, want 0", h.hits)
	}
}
