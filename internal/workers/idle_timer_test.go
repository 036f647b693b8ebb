// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool, timeout time.Duration) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestIdleTimer_FiresOnce(t *testing.T) {
	var fired atomic.Int32
	timer := NewIdleTimer(func(uint64) { fired.Add(1) })

	timer.Arm(20 * time.Millisecond)

	if !waitFor(t, func() bool { return fired.Load() == 1 }, time.Second) {
		t.Fatalf("expected timer to fire once, fired=%d", fired.Load())
	}

	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("expected exactly one fire, got %d", got)
	}
	if _, armed := timer.Deadline(); armed {
		t.Error("expected timer to be disarmed after firing")
	}
}

func TestIdleTimer_StopPreventsFire(t *testing.T) {
	var fired atomic.Int32
	timer := NewIdleTimer(func(uint64) { fired.Add(1) })

	timer.Arm(20 * time.Millisecond)
	timer.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("expected no fire after Stop, got %d", got)
	}
}

func TestIdleTimer_RearmExtendsWindow(t *testing.T) {
	var fired atomic.Int32
	timer := NewIdleTimer(func(uint64) { fired.Add(1) })

	timer.Arm(60 * time.Millisecond)
	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		timer.Arm(60 * time.Millisecond)
	}
	if got := fired.Load(); got != 0 {
		t.Fatalf("expected activity to keep postponing the fire, got %d", got)
	}

	if !waitFor(t, func() bool { return fired.Load() == 1 }, time.Second) {
		t.Fatal("expected timer to fire after activity stopped")
	}
}

func TestIdleTimer_Deadline(t *testing.T) {
	timer := NewIdleTimer(nil)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	timer.now = func() time.Time { return fixed }

	if _, armed := timer.Deadline(); armed {
		t.Fatal("new timer must not be armed")
	}

	timer.Arm(time.Hour)
	deadline, armed := timer.Deadline()
	if !armed {
		t.Fatal("expected armed timer")
	}
	if !deadline.Equal(fixed.Add(time.Hour)) {
		t.Errorf("unexpected deadline %v", deadline)
	}

	timer.Arm(0)
	if _, armed := timer.Deadline(); armed {
		t.Error("non-positive window must disarm the timer")
	}
}

func TestIdleTimer_CallbackMayRearm(t *testing.T) {
	var fired atomic.Int32
	var timer *IdleTimer
	timer = NewIdleTimer(func(uint64) {
		if fired.Add(1) == 1 {
			timer.Arm(10 * time.Millisecond)
		}
	})

	timer.Arm(10 * time.Millisecond)

	if !waitFor(t, func() bool { return fired.Load() == 2 }, time.Second) {
		t.Fatalf("expected re-armed timer to fire again, fired=%d", fired.Load())
	}
}

func TestIdleTimer_CurrentWindow(t *testing.T) {
	windows := make(chan uint64, 1)
	timer := NewIdleTimer(func(window uint64) { windows <- window })

	timer.Arm(10 * time.Millisecond)

	var window uint64
	select {
	case window = <-windows:
	case <-time.After(time.Second):
		t.Fatal("expected timer to fire")
	}
	if !timer.Current(window) {
		t.Fatal("fired window must stay current until the next Arm or Stop")
	}

	timer.Arm(time.Hour)
	if timer.Current(window) {
		t.Error("re-armed timer must not report the fired window as current")
	}

	timer.Stop()
	if timer.Current(window) {
		t.Error("stopped timer must not report the fired window as current")
	}
}
