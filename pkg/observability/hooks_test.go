package observability

import (
	"context"
	"testing"
	"time"
)

type countingPipelineHooks struct {
	NoopPipelineHooks
	layoutStarts int
}

func (h *countingPipelineHooks) OnLayoutStart(ctx context.Context, nodeCount int) {
	h.layoutStarts++
}

type countingCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *countingCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.hits++
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// No-op hooks must tolerate all events without panicking.
	Pipeline().OnIngestStart(ctx, "file")
	Pipeline().OnIngestComplete(ctx, "file", 5, time.Millisecond, nil)
	Pipeline().OnLayoutStart(ctx, 5)
	Pipeline().OnLayoutComplete(ctx, 5, time.Millisecond, nil)
	Pipeline().OnRenderStart(ctx, []string{"svg"})
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "layout", 128)
}

func TestSetPipelineHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	h := &countingPipelineHooks{}
	SetPipelineHooks(h)

	Pipeline().OnLayoutStart(context.Background(), 3)
	Pipeline().OnLayoutStart(context.Background(), 3)
	if h.layoutStarts != 2 {
		t.Errorf("layoutStarts = %d, want 2", h.layoutStarts)
	}

	// Setting nil keeps the current hooks
	SetPipelineHooks(nil)
	Pipeline().OnLayoutStart(context.Background(), 3)
	if h.layoutStarts != 3 {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestSetCacheHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	h := &countingCacheHooks{}
	SetCacheHooks(h)

	Cache().OnCacheHit(context.Background(), "artifact")
	if h.hits != 1 {
		t.Errorf("hits = %d, want 1", h.hits)
	}

	SetCacheHooks(nil)
	Cache().OnCacheHit(context.Background(), "artifact")
	if h.hits != 2 {
		t.Error("SetCacheHooks(nil) should be ignored")
	}
}

func TestReset(t *testing.T) {
	h := &countingPipelineHooks{}
	SetPipelineHooks(h)
	Reset()

	Pipeline().OnLayoutStart(context.Background(), 1)
	if h.layoutStarts != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
