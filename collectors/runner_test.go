package collectors

import (
	"context"
	"errors"
	"testing"
	"time"
)

func collectUpdates(t *testing.T, ch <-chan Update, n int, within time.Duration) []Update {
	t.Helper()

	var got []Update
	deadline := time.After(within)
	for len(got) < n {
		select {
		case u := <-ch:
			got = append(got, u)
		case <-deadline:
			t.Fatalf("received %d updates within %v, want %d", len(got), within, n)
		}
	}
	return got
}

func TestRunnerDeliversInitialUpdates(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeCollector{name: "core", fields: []Field{NewField("OS", "Linux")}, interval: time.Hour})
	reg.Register(&fakeCollector{name: "hardware", fields: []Field{NewField("CPU", "Ryzen")}, interval: time.Hour})

	updates := make(chan Update, DefaultUpdateBufferSize)
	r := NewRunner(reg, updates, discardLogger())
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer r.Stop()

	got := collectUpdates(t, updates, 2, 2*time.Second)

	seen := map[string]bool{}
	for _, u := range got {
		if u.Err != nil {
			t.Errorf("update from %s carries error: %v", u.Source, u.Err)
		}
		if u.Result == nil {
			t.Errorf("update from %s has nil result", u.Source)
		}
		seen[u.Source] = true
	}
	if !seen["core"] || !seen["hardware"] {
		t.Errorf("missing initial update: %v", seen)
	}
}

func TestRunnerTicks(t *testing.T) {
	c := &fakeCollector{name: "hardware", fields: []Field{NewField("Memory", "8 GiB")}, interval: 10 * time.Millisecond}
	reg := NewRegistry()
	reg.Register(c)

	updates := make(chan Update, DefaultUpdateBufferSize)
	r := NewRunner(reg, updates, discardLogger())
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer r.Stop()

	collectUpdates(t, updates, 3, 2*time.Second)

	if calls := c.calls.Load(); calls < 3 {
		t.Errorf("collector ran %d times, want at least 3", calls)
	}
}

func TestRunnerSendsErrors(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeCollector{name: "broken", err: errors.New("no such probe"), interval: time.Hour})

	updates := make(chan Update, DefaultUpdateBufferSize)
	r := NewRunner(reg, updates, discardLogger())
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer r.Stop()

	got := collectUpdates(t, updates, 1, 2*time.Second)

	if got[0].Err == nil {
		t.Error("expected error in update")
	}
	if got[0].Result != nil {
		t.Error("failed collection should carry a nil result")
	}
	if got[0].Source != "broken" {
		t.Errorf("Source = %q, want %q", got[0].Source, "broken")
	}
}

func TestRunnerStopIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeCollector{name: "core", interval: time.Hour})

	updates := make(chan Update, DefaultUpdateBufferSize)
	r := NewRunner(reg, updates, discardLogger())
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	done := make(chan struct{})
	go func() {
		r.Stop()
		r.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * DefaultStopTimeout):
		t.Fatal("double Stop blocked")
	}
}

func TestRunnerEmptyRegistry(t *testing.T) {
	updates := make(chan Update, 1)
	r := NewRunner(NewRegistry(), updates, discardLogger())
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop on empty registry blocked")
	}
}

func TestRunnerContextCancelStopsCollectors(t *testing.T) {
	c := &fakeCollector{name: "hardware", interval: 10 * time.Millisecond}
	reg := NewRegistry()
	reg.Register(c)

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan Update, DefaultUpdateBufferSize)
	r := NewRunner(reg, updates, discardLogger())
	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	collectUpdates(t, updates, 1, 2*time.Second)
	cancel()
	r.Stop()

	// Drain anything in flight, then confirm the tickers are gone.
	for {
		select {
		case <-updates:
			continue
		case <-time.After(50 * time.Millisecond):
		}
		break
	}
	before := c.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if after := c.calls.Load(); after != before {
		t.Errorf("collector still running after cancel: %d -> %d calls", before, after)
	}
}
