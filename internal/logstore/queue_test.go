package logstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestTaskQueueFIFO(t *testing.T) {
	q := newTaskQueue()
	defer q.close()

	var mu sync.Mutex
	var order []int

	results := make([]*Result, 0, 10)
	for i := 0; i < 10; i++ {
		i := i
		results = append(results, q.submit("append", func() error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}))
	}

	ctx := context.Background()
	for _, r := range results {
		if err := r.Wait(ctx); err != nil {
			t.Fatalf("task failed: %v", err)
		}
	}

	for i, got := range order {
		if got != i {
			t.Fatalf("execution order %v, want strictly ascending", order)
		}
	}
}

func TestTaskQueueErrorDoesNotPoison(t *testing.T) {
	q := newTaskQueue()
	defer q.close()

	boom := errors.New("disk on fire")
	failed := q.submit("append", func() error { return boom })
	ok := q.submit("append", func() error { return nil })

	ctx := context.Background()
	if err := failed.Wait(ctx); !errors.Is(err, boom) {
		t.Errorf("failed task error = %v, want %v", err, boom)
	}
	if err := ok.Wait(ctx); err != nil {
		t.Errorf("queue stopped draining after a failed task: %v", err)
	}
}

func TestTaskQueueSlowTaskDelaysButKeepsOrder(t *testing.T) {
	q := newTaskQueue()
	defer q.close()

	var mu sync.Mutex
	var order []string

	slow := q.submit("append", func() error {
		time.Sleep(30 * time.Millisecond)
		mu.Lock()
		order = append(order, "slow")
		mu.Unlock()
		return nil
	})
	fast := q.submit("append", func() error {
		mu.Lock()
		order = append(order, "fast")
		mu.Unlock()
		return nil
	})

	ctx := context.Background()
	if err := slow.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if err := fast.Wait(ctx); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 2 || order[0] != "slow" || order[1] != "fast" {
		t.Errorf("execution order = %v, want [slow fast]", order)
	}
}

func TestTaskQueueCloseDrains(t *testing.T) {
	q := newTaskQueue()

	ran := false
	r := q.submit("append", func() error {
		time.Sleep(10 * time.Millisecond)
		ran = true
		return nil
	})

	q.close()

	if !ran {
		t.Error("close returned before the queued task ran")
	}
	if err := r.Wait(context.Background()); err != nil {
		t.Errorf("drained task returned error: %v", err)
	}
}

func TestTaskQueueSubmitAfterClose(t *testing.T) {
	q := newTaskQueue()
	q.close()

	r := q.submit("append", func() error { return nil })
	if err := r.Wait(context.Background()); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("submit after close error = %v, want ErrStoreClosed", err)
	}
}

func TestResultWaitHonorsContext(t *testing.T) {
	q := newTaskQueue()
	defer q.close()

	release := make(chan struct{})
	r := q.submit("append", func() error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := r.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait error = %v, want deadline exceeded", err)
	}

	// The task still runs to completion; a submitted task cannot be
	// cancelled.
	close(release)
	if err := r.Wait(context.Background()); err != nil {
		t.Errorf("task error after release = %v", err)
	}
}
