package scheduler

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestEngineStressConcurrentSchedule(t *testing.T) {
	engine := NewEngine(4096)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const perWorker = 200
	total := workers * perWorker

	now := time.Now()
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				delay := time.Duration((w+i)%50+10) * time.Millisecond
				a := Alert{
					ID:        fmt.Sprintf("w%d-%d", w, i),
					TaskID:    fmt.Sprintf("task-%d", i),
					Kind:      AlertSoon,
					TriggerAt: now.Add(delay),
				}
				if err := engine.Schedule(a); err != nil {
					t.Errorf("schedule failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	deadline := time.After(5 * time.Second)
	var received int64
	for atomic.LoadInt64(&received) < int64(total) {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for alerts: received=%d total=%d dropped=%d", received, total, engine.Dropped())
		case <-engine.C():
			atomic.AddInt64(&received, 1)
		}
	}

	if got := int(received); got != total {
		t.Fatalf("unexpected received count: got=%d want=%d", got, total)
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with active consumer, got=%d", engine.Dropped())
	}
}

// Replans from many goroutines must leave exactly the last plan queued.
func TestEngineStressConcurrentReplace(t *testing.T) {
	engine := NewEngine(256)
	engine.Start()
	defer engine.Stop()

	const planners = 6
	const replans = 150
	later := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	wg.Add(planners)
	for p := 0; p < planners; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < replans; i++ {
				plan := make([]Alert, 0, i%5+1)
				for k := 0; k < cap(plan); k++ {
					plan = append(plan, Alert{
						ID:        fmt.Sprintf("stale-%d-%d-%d", p, i, k),
						TaskID:    fmt.Sprintf("task-%d", k),
						Kind:      AlertStart,
						TriggerAt: later.Add(time.Duration(k) * time.Minute),
					})
				}
				if err := engine.Replace(plan); err != nil {
					t.Errorf("replace failed: %v", err)
					return
				}
				if n := engine.Pending(); n > 5 {
					t.Errorf("pending grew past one plan: %d", n)
					return
				}
			}
		}()
	}
	wg.Wait()

	now := time.Now()
	final := []Alert{
		{ID: "final-0", TaskID: "a", Kind: AlertSoon, TriggerAt: now.Add(20 * time.Millisecond)},
		{ID: "final-1", TaskID: "b", Kind: AlertStart, TriggerAt: now.Add(30 * time.Millisecond)},
		{ID: "final-2", TaskID: "c", Kind: AlertSoon, TriggerAt: now.Add(10 * time.Millisecond)},
	}
	if err := engine.Replace(final); err != nil {
		t.Fatalf("final replace: %v", err)
	}

	got := map[string]bool{}
	deadline := time.After(5 * time.Second)
	for len(got) < len(final) {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for final plan: got=%v", got)
		case a := <-engine.C():
			if got[a.ID] || !strings.HasPrefix(a.ID, "final-") {
				t.Fatalf("unexpected alert %s", a.ID)
			}
			got[a.ID] = true
		}
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d pending", engine.Pending())
	}
}
