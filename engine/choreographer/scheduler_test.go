package choreographer

import (
	"testing"
	"time"
)

func TestCollectDueOrdersByDeadlineThenInsertion(t *testing.T) {
	var s scheduler
	base := time.Unix(0, 0)
	var fired []int
	note := func(i int) func() { return func() { fired = append(fired, i) } }

	s.schedule(base.Add(30*time.Millisecond), 1, note(0))
	s.schedule(base.Add(10*time.Millisecond), 1, note(1))
	s.schedule(base.Add(10*time.Millisecond), 1, note(2))
	s.schedule(base.Add(20*time.Millisecond), 1, note(3))

	for _, m := range s.collectDue(base.Add(40*time.Millisecond), 1) {
		m.apply()
	}

	want := []int{1, 2, 3, 0}
	if len(fired) != len(want) {
		t.Fatalf("fired %d steps, want %d", len(fired), len(want))
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("fire order = %v, want %v", fired, want)
		}
	}
}

func TestCollectDueLeavesFutureSteps(t *testing.T) {
	var s scheduler
	base := time.Unix(0, 0)
	s.schedule(base.Add(10*time.Millisecond), 1, func() {})
	s.schedule(base.Add(500*time.Millisecond), 1, func() {})

	due := s.collectDue(base.Add(100*time.Millisecond), 1)
	if len(due) != 1 {
		t.Fatalf("collected %d steps, want 1", len(due))
	}
	if n := s.pendingCount(); n != 1 {
		t.Fatalf("pending = %d, want the future step kept", n)
	}

	due = s.collectDue(base.Add(time.Second), 1)
	if len(due) != 1 || s.pendingCount() != 0 {
		t.Errorf("second collect = %d steps, pending = %d, want 1 and 0", len(due), s.pendingCount())
	}
}

func TestCollectDueDropsStaleGenerations(t *testing.T) {
	var s scheduler
	base := time.Unix(0, 0)
	fired := 0
	s.schedule(base.Add(10*time.Millisecond), 1, func() { fired++ })
	s.schedule(base.Add(time.Hour), 1, func() { fired++ })
	s.schedule(base.Add(10*time.Millisecond), 2, func() { fired++ })

	for _, m := range s.collectDue(base.Add(time.Minute), 2) {
		m.apply()
	}
	if fired != 1 {
		t.Errorf("fired = %d, want only the current generation's step", fired)
	}
	// Stale steps are gone for good, due or not.
	if n := s.pendingCount(); n != 0 {
		t.Errorf("pending = %d, want stale steps discarded", n)
	}
}
