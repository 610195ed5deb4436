// package particle implements the transient burst system behind celebration
// effects: level-up showers and XP gain sparks. Bursts are spawned by the
// choreographer, integrate under gravity on a background loop, and the system
// parks itself when the last particle dies so an idle dashboard runs no
// particle goroutine at all.
package particle

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/euansprr-dev/CosmoNative-sub007/engine/element"
)

// maxStepSeconds clamps a single integration step. After a scheduler stall
// the next tick would otherwise teleport particles across the surface.
const maxStepSeconds = float32(1.0 / 30.0)

// part is one live particle.
type part struct {
	pos      mgl32.Vec2
	vel      mgl32.Vec2
	size     float32
	life     float32 // remaining seconds
	maxLife  float32
	rotation float32
	spin     float32
	seed     float32
}

// particleSystem is the implementation of the System interface.
type particleSystem struct {
	mu        sync.Mutex
	particles []part
	running   bool
	quit      chan struct{}
	wg        sync.WaitGroup

	gravity      mgl32.Vec2
	tickRate     time.Duration
	maxParticles int
	sizeRange    [2]float32
	speedRange   [2]float32
	lifeRange    [2]float32
	maxSpin      float32
	rng          *rand.Rand
}

// System is a self-driving burst particle field. SpawnBurst starts the
// integration loop on demand; the loop exits when the field empties. All
// methods are safe for concurrent use.
type System interface {
	// SpawnBurst adds count particles radiating from origin, capped so the
	// field never exceeds the configured maximum. Starts the integration
	// loop if it is not running.
	//
	// Parameters:
	//   - origin: burst center in surface pixels
	//   - count: number of particles to spawn
	SpawnBurst(origin mgl32.Vec2, count int)

	// Step advances the simulation by dt seconds: Euler integration under
	// gravity, then swap-remove purge of expired particles. Steps longer
	// than 1/30 s are clamped. The internal loop calls this; it is exported
	// so hosts driving their own clock can advance the field manually.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Step(dt float32)

	// Snapshot returns a copy of the live particles as GPU instance data,
	// with Life expressed as the remaining fraction in [0, 1].
	//
	// Returns:
	//   - []element.GPUParticleInstance: the instance data, nil when empty
	Snapshot() []element.GPUParticleInstance

	// Count returns the number of live particles.
	Count() int

	// Active reports whether the integration loop is running.
	Active() bool

	// Stop terminates the integration loop if it is running and waits for
	// it to exit. Live particles are discarded.
	Stop()
}

var _ System = &particleSystem{}

// NewSystem creates an idle particle system. No goroutine runs until the
// first SpawnBurst.
//
// Parameters:
//   - options: optional builder options for configuring the system
//
// Returns:
//   - System: the idle system
func NewSystem(options ...SystemBuilderOption) System {
	s := &particleSystem{
		gravity:      mgl32.Vec2{0, 240},
		tickRate:     time.Second / 60,
		maxParticles: 500,
		sizeRange:    [2]float32{2.5, 5.5},
		speedRange:   [2]float32{60, 220},
		lifeRange:    [2]float32{0.8, 1.8},
		maxSpin:      4,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *particleSystem) SpawnBurst(origin mgl32.Vec2, count int) {
	s.mu.Lock()

	if room := s.maxParticles - len(s.particles); count > room {
		count = room
	}
	for range count {
		angle := s.rng.Float32() * 2 * math.Pi
		speed := s.between(s.speedRange)
		life := s.between(s.lifeRange)
		s.particles = append(s.particles, part{
			pos: origin,
			vel: mgl32.Vec2{
				float32(math.Cos(float64(angle))) * speed,
				// Upward bias so bursts fountain before gravity wins.
				float32(math.Sin(float64(angle)))*speed - s.between(s.speedRange)*0.5,
			},
			size:     s.between(s.sizeRange),
			life:     life,
			maxLife:  life,
			rotation: s.rng.Float32() * 2 * math.Pi,
			spin:     (s.rng.Float32()*2 - 1) * s.maxSpin,
			seed:     s.rng.Float32(),
		})
	}

	start := !s.running && len(s.particles) > 0
	if start {
		s.running = true
		s.quit = make(chan struct{})
		s.wg.Add(1)
	}
	quit := s.quit
	s.mu.Unlock()

	if start {
		go s.loop(quit)
	}
}

// between returns a uniform random value in [r[0], r[1]).
func (s *particleSystem) between(r [2]float32) float32 {
	return r[0] + s.rng.Float32()*(r[1]-r[0])
}

// loop integrates the field at the configured tick rate and exits when the
// field empties or quit closes.
func (s *particleSystem) loop(quit chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.tickRate)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-quit:
			s.mu.Lock()
			s.particles = nil
			s.running = false
			s.mu.Unlock()
			return
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			s.Step(dt)

			s.mu.Lock()
			if len(s.particles) == 0 {
				s.running = false
				s.mu.Unlock()
				return
			}
			s.mu.Unlock()
		}
	}
}

func (s *particleSystem) Step(dt float32) {
	if dt <= 0 {
		return
	}
	if dt > maxStepSeconds {
		dt = maxStepSeconds
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < len(s.particles); {
		p := &s.particles[i]
		p.life -= dt
		if p.life <= 0 {
			// Swap-remove; order is irrelevant to rendering.
			s.particles[i] = s.particles[len(s.particles)-1]
			s.particles = s.particles[:len(s.particles)-1]
			continue
		}
		p.vel = p.vel.Add(s.gravity.Mul(dt))
		p.pos = p.pos.Add(p.vel.Mul(dt))
		p.rotation += p.spin * dt
		i++
	}
}

func (s *particleSystem) Snapshot() []element.GPUParticleInstance {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.particles) == 0 {
		return nil
	}
	out := make([]element.GPUParticleInstance, len(s.particles))
	for i, p := range s.particles {
		out[i] = element.GPUParticleInstance{
			Pos:      [2]float32{p.pos.X(), p.pos.Y()},
			Size:     p.size,
			Life:     p.life / p.maxLife,
			Rotation: p.rotation,
			Seed:     p.seed,
		}
	}
	return out
}

func (s *particleSystem) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.particles)
}

func (s *particleSystem) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *particleSystem) Stop() {
	s.mu.Lock()
	if s.running && s.quit != nil {
		close(s.quit)
		s.quit = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}
