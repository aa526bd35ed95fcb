package game

import (
	"math"

	"github.com/pthm-cable/minifps/components"
	"github.com/pthm-cable/minifps/config"
)

// updateParticles moves particles, wraps them at the screen edges and
// despawns expired ones.
func (g *Game) updateParticles(dt float32) {
	g.expired = g.expired[:0]

	query := g.particleFilter.Query()
	for query.Next() {
		pos, vel, life := query.Get()

		pos.X = mod(pos.X+vel.X*dt, g.width)
		pos.Y = mod(pos.Y+vel.Y*dt, g.height)

		life.Remaining -= dt
		if life.Remaining <= 0 {
			g.expired = append(g.expired, query.Entity())
		}
	}

	// Remove after iteration completes
	for _, e := range g.expired {
		g.world.RemoveEntity(e)
	}
}

// spawnTowardTarget adds or removes particles to approach the target count,
// limited per frame so large slider jumps do not stall a single frame.
func (g *Game) spawnTowardTarget() {
	demo := config.Cfg().Demo
	budget := demo.SpawnPerFrame
	count := g.EntityCount()

	for count < g.target && budget > 0 {
		g.spawnParticle(demo)
		count++
		budget--
	}

	if count <= g.target || budget <= 0 {
		return
	}

	g.expired = g.expired[:0]
	query := g.particleFilter.Query()
	for query.Next() {
		if len(g.expired) >= count-g.target || len(g.expired) >= budget {
			query.Close()
			break
		}
		g.expired = append(g.expired, query.Entity())
	}
	for _, e := range g.expired {
		g.world.RemoveEntity(e)
	}
}

func (g *Game) spawnParticle(demo config.DemoConfig) {
	heading := g.rng.Float64() * 2 * math.Pi
	speed := demo.ParticleSpeed * (0.5 + g.rng.Float64())
	// Jitter lifetimes so particles do not expire in lockstep.
	lifetime := float32(demo.ParticleLifetime * (0.5 + g.rng.Float64()))

	pos := components.Position{X: g.rng.Float32() * g.width, Y: g.rng.Float32() * g.height}
	vel := components.Velocity{
		X: float32(math.Cos(heading) * speed),
		Y: float32(math.Sin(heading) * speed),
	}
	life := components.Lifetime{Remaining: lifetime, Total: lifetime}

	g.particleMapper.NewEntity(&pos, &vel, &life)
}

// mod returns positive modulo (Go's % can return negative).
func mod(a, b float32) float32 {
	return float32(math.Mod(math.Mod(float64(a), float64(b))+float64(b), float64(b)))
}
