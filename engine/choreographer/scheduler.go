package choreographer

import (
	"sort"
	"time"
)

// scheduledMutation is one deferred script step: a state change queued to
// apply once the clock reaches its deadline.
type scheduledMutation struct {
	deadline   time.Time
	seq        uint64 // insertion order, tiebreak for equal deadlines
	generation uint64 // owning sequence; stale steps never apply
	apply      func()
}

// scheduler holds the pending script steps. It is not safe for concurrent
// use; the choreographer serializes access under its own mutex.
type scheduler struct {
	pending []scheduledMutation
	nextSeq uint64
}

// schedule queues apply to run once the clock reaches deadline, stamped with
// the owning sequence's generation.
func (s *scheduler) schedule(deadline time.Time, generation uint64, apply func()) {
	s.nextSeq++
	s.pending = append(s.pending, scheduledMutation{
		deadline:   deadline,
		seq:        s.nextSeq,
		generation: generation,
		apply:      apply,
	})
}

// collectDue removes and returns every step whose deadline has passed,
// ordered by (deadline, insertion order). Steps stamped with an older
// generation are dropped instead of returned, so a slow step from a previous
// sequence can never fire into the current one.
func (s *scheduler) collectDue(now time.Time, generation uint64) []scheduledMutation {
	var due []scheduledMutation
	rest := s.pending[:0]
	for _, m := range s.pending {
		switch {
		case m.generation != generation:
			// stale, dropped
		case !m.deadline.After(now):
			due = append(due, m)
		default:
			rest = append(rest, m)
		}
	}
	// Zero the tail so dropped closures are collectable.
	for i := len(rest); i < len(s.pending); i++ {
		s.pending[i] = scheduledMutation{}
	}
	s.pending = rest

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	return due
}

// pendingCount reports the number of queued steps, stale ones included.
func (s *scheduler) pendingCount() int {
	return len(s.pending)
}
