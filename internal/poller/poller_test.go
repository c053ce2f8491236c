package poller

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/naseer2426/mod-bot/internal/telegram"
	"github.com/naseer2426/mod-bot/internal/telegram/model"
)

type step struct {
	batch telegram.UpdateBatch
	err   error
}

// scriptedClient plays steps in order, then cancels the poller.
type scriptedClient struct {
	steps   []step
	offsets []int64
	cancel  context.CancelFunc
}

func (c *scriptedClient) GetUpdates(ctx context.Context, req telegram.GetUpdates) (telegram.UpdateBatch, error) {
	var offset int64
	if req.Offset != nil {
		offset = *req.Offset
	}
	c.offsets = append(c.offsets, offset)
	if len(c.steps) == 0 {
		c.cancel()
		return telegram.UpdateBatch{}, ctx.Err()
	}
	s := c.steps[0]
	c.steps = c.steps[1:]
	return s.batch, s.err
}

type recordingHandler struct {
	seen []int64
	err  error
}

func (h *recordingHandler) HandleUpdate(_ context.Context, u model.Update) (bool, error) {
	h.seen = append(h.seen, u.ID)
	return true, h.err
}

func openStore(t *testing.T) *OffsetStore {
	t.Helper()
	store, err := OpenOffsetStore(filepath.Join(t.TempDir(), "offsets.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(id int64) model.Update {
	return model.Update{ID: id, Content: model.PollUpdate{}}
}

func TestRun(t *testing.T) {
	store := openStore(t)
	if err := store.SetOffset(42, 10); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client := &scriptedClient{
		cancel: cancel,
		steps: []step{
			{batch: telegram.UpdateBatch{
				Updates:    []model.Update{update(10), update(12)},
				Failed:     map[int64]error{11: model.ErrEmptyUpdate},
				NextOffset: 13,
			}},
			{err: errors.New("connection reset")},
			{batch: telegram.UpdateBatch{Failed: map[int64]error{13: model.ErrAmbiguousUpdate}, NextOffset: 14}},
			{batch: telegram.UpdateBatch{Updates: []model.Update{update(14)}, NextOffset: 15}},
		},
	}
	handler := &recordingHandler{err: errors.New("handler failed")}

	p := New(client, handler, store, 42)
	p.MinBackoff = time.Millisecond
	p.MaxBackoff = 2 * time.Millisecond

	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff([]int64{10, 12, 14}, handler.seen); diff != "" {
		t.Errorf("handled updates (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{10, 13, 13, 14, 15}, client.offsets); diff != "" {
		t.Errorf("requested offsets (-want +got):\n%s", diff)
	}
	offset, err := store.Offset(42)
	if err != nil {
		t.Fatal(err)
	}
	if offset != 15 {
		t.Errorf("stored offset = %d, want 15", offset)
	}
}

type handlerFunc func(ctx context.Context, u model.Update) (bool, error)

func (f handlerFunc) HandleUpdate(ctx context.Context, u model.Update) (bool, error) {
	return f(ctx, u)
}

func TestRunStopsMidBatch(t *testing.T) {
	store := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client := &scriptedClient{
		cancel: cancel,
		steps: []step{{batch: telegram.UpdateBatch{
			Updates:    []model.Update{update(1), update(2), update(3)},
			NextOffset: 4,
		}}},
	}
	var seen []int64
	handler := handlerFunc(func(_ context.Context, u model.Update) (bool, error) {
		seen = append(seen, u.ID)
		if u.ID == 1 {
			cancel()
		}
		return true, nil
	})

	if err := New(client, handler, store, 42).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff([]int64{1}, seen); diff != "" {
		t.Errorf("handled updates (-want +got):\n%s", diff)
	}
	offset, err := store.Offset(42)
	if err != nil {
		t.Fatal(err)
	}
	if offset != 2 {
		t.Errorf("stored offset = %d, want 2", offset)
	}
}

func TestRunStopsWhileBackingOff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &scriptedClient{cancel: cancel, steps: []step{{err: errors.New("boom")}}}
	p := New(client, &recordingHandler{}, openStore(t), 1)
	p.MinBackoff = time.Hour

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestOffsetStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offsets.db")
	store, err := OpenOffsetStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, err := store.Offset(7); err != nil || got != 0 {
		t.Errorf("Offset(7) on empty store = %d, %v", got, err)
	}
	if err := store.SetOffset(7, 99); err != nil {
		t.Fatal(err)
	}
	if err := store.SetOffset(8, 5); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenOffsetStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if got, err := reopened.Offset(7); err != nil || got != 99 {
		t.Errorf("Offset(7) after reopen = %d, %v; want 99", got, err)
	}
}
