package particle

import (
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTestSystem parks the integration loop on an hour-long tick so tests
// drive Step directly and stay deterministic. Loop tests override the rate.
func newTestSystem(opts ...SystemBuilderOption) System {
	base := []SystemBuilderOption{
		WithRandSource(rand.NewSource(1)),
		WithTickRate(time.Hour),
	}
	return NewSystem(append(base, opts...)...)
}

func TestSpawnBurstAddsParticles(t *testing.T) {
	s := newTestSystem()
	defer s.Stop()

	s.SpawnBurst(mgl32.Vec2{100, 100}, 40)
	if got := s.Count(); got != 40 {
		t.Errorf("Count = %d after burst of 40, want 40", got)
	}
	if !s.Active() {
		t.Errorf("system should be active after a burst")
	}
}

func TestSpawnBurstRespectsCap(t *testing.T) {
	s := newTestSystem(WithMaxParticles(50))
	defer s.Stop()

	s.SpawnBurst(mgl32.Vec2{0, 0}, 80)
	if got := s.Count(); got != 50 {
		t.Errorf("Count = %d with cap 50, want 50", got)
	}
	s.SpawnBurst(mgl32.Vec2{0, 0}, 10)
	if got := s.Count(); got != 50 {
		t.Errorf("Count = %d after burst at cap, want 50", got)
	}
}

func TestStepIntegratesUnderGravity(t *testing.T) {
	s := newTestSystem(
		WithGravity(mgl32.Vec2{0, 100}),
		WithSpeedRange(0, 0),
		WithLifeRange(10, 10),
	)
	defer s.Stop()

	s.SpawnBurst(mgl32.Vec2{50, 50}, 1)
	before := s.Snapshot()[0]

	// 30 steps of 1/60 s: y = y0 + 0.5*g*t^2 within Euler error.
	for range 30 {
		s.Step(1.0 / 60.0)
	}
	after := s.Snapshot()[0]

	if after.Pos[1] <= before.Pos[1] {
		t.Errorf("particle did not fall: y %v -> %v", before.Pos[1], after.Pos[1])
	}
	if after.Pos[0] != before.Pos[0] {
		t.Errorf("zero-speed particle drifted in x: %v -> %v", before.Pos[0], after.Pos[0])
	}
	if after.Life >= before.Life {
		t.Errorf("life fraction did not decrease: %v -> %v", before.Life, after.Life)
	}
}

func TestStepClampsLargeDelta(t *testing.T) {
	s := newTestSystem(
		WithGravity(mgl32.Vec2{0, 0}),
		WithSpeedRange(100, 100),
		WithLifeRange(10, 10),
	)
	defer s.Stop()

	s.SpawnBurst(mgl32.Vec2{0, 0}, 1)
	start := s.Snapshot()[0]

	// A 2 s stall must integrate as a single clamped 1/30 s step, so the
	// particle moves at most speed/30 plus the upward spawn bias.
	s.Step(2.0)
	end := s.Snapshot()[0]

	dx := end.Pos[0] - start.Pos[0]
	dy := end.Pos[1] - start.Pos[1]
	dist := dx*dx + dy*dy
	limit := float32(200.0/30.0) * float32(200.0/30.0)
	if dist > limit {
		t.Errorf("clamped step moved particle too far: %v px^2, limit %v", dist, limit)
	}
}

func TestFieldEmptiesAndLoopParks(t *testing.T) {
	s := newTestSystem(
		WithLifeRange(0.02, 0.05),
		WithTickRate(time.Millisecond),
	)

	s.SpawnBurst(mgl32.Vec2{10, 10}, 25)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !s.Active() && s.Count() == 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if s.Active() {
		t.Fatalf("loop still active after all particles expired")
	}
	if got := s.Count(); got != 0 {
		t.Fatalf("Count = %d after expiry, want 0", got)
	}

	// A fresh burst must restart the loop.
	s.SpawnBurst(mgl32.Vec2{10, 10}, 5)
	if !s.Active() {
		t.Errorf("loop did not restart on new burst")
	}
	s.Stop()
}

func TestStopTerminatesLoop(t *testing.T) {
	s := newTestSystem(WithLifeRange(60, 60), WithTickRate(time.Millisecond))
	s.SpawnBurst(mgl32.Vec2{0, 0}, 10)

	s.Stop()
	if s.Active() {
		t.Errorf("system active after Stop")
	}
	if got := s.Count(); got != 0 {
		t.Errorf("Count = %d after Stop, want 0", got)
	}

	// Stop again is a no-op.
	s.Stop()
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestSystem(WithLifeRange(10, 10))
	defer s.Stop()

	s.SpawnBurst(mgl32.Vec2{5, 5}, 3)
	snap := s.Snapshot()
	snap[0].Pos = [2]float32{-999, -999}

	fresh := s.Snapshot()
	if fresh[0].Pos == snap[0].Pos {
		t.Errorf("mutating a snapshot leaked into the system")
	}
}

func TestLifeFractionStaysNormalized(t *testing.T) {
	s := newTestSystem(WithLifeRange(0.5, 1.5))
	defer s.Stop()

	s.SpawnBurst(mgl32.Vec2{0, 0}, 20)
	for range 10 {
		s.Step(1.0 / 60.0)
		for _, inst := range s.Snapshot() {
			if inst.Life <= 0 || inst.Life > 1 {
				t.Fatalf("life fraction %v out of (0, 1]", inst.Life)
			}
		}
	}
}
