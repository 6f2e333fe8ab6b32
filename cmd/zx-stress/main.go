// Stress harness for the collision core: times grid vs brute-force broad
// phase at increasing collider counts and verifies that re-executing a step
// produces bit-identical results, the property rollback replay depends on.
package main

import (
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"

	"github.com/nethercore/zxcollide/physics"
	"github.com/nethercore/zxcollide/vec"
)

type config struct {
	Counts   []int   `env:"STRESS_COUNTS" envDefault:"100,500,1000,2000,5000"`
	Movers   int     `env:"STRESS_MOVERS" envDefault:"64"`
	Ticks    int     `env:"STRESS_TICKS" envDefault:"60"`
	Seed     int64   `env:"STRESS_SEED" envDefault:"42"`
	CellSize float32 `env:"STRESS_CELL_SIZE" envDefault:"5"`
	Dt       float32 `env:"STRESS_DT" envDefault:"0.016666668"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal("parse env", "err", err)
	}

	for _, count := range cfg.Counts {
		run(cfg, count)
	}

	if !checkDeterminism(cfg) {
		log.Fatal("determinism check FAILED: replayed step diverged")
	}
	log.Info("determinism check passed", "ticks", cfg.Ticks, "movers", cfg.Movers)
	_ = os.Stdout.Sync()
}

// buildWorld populates a world with random boxes and spheres in a cube whose
// size scales with count to keep density reasonable.
func buildWorld(cfg config, count int, rng *rand.Rand) (*physics.World, []physics.MovingBody) {
	w := physics.NewWorld(physics.Config{CellSize: cfg.CellSize})
	spawn := float32(50.0) + float32(count)/100.0

	randPos := func() vec.Vec3 {
		return vec.Vec3{
			X: rng.Float32()*spawn - spawn/2,
			Y: rng.Float32()*spawn - spawn/2,
			Z: rng.Float32()*spawn - spawn/2,
		}
	}

	for i := 0; i < count; i++ {
		var shape physics.Shape
		if i%2 == 0 {
			half := vec.Vec3{
				X: 0.5 + rng.Float32()*0.5,
				Y: 0.5 + rng.Float32()*0.5,
				Z: 0.5 + rng.Float32()*0.5,
			}
			shape = physics.BoxShape(physics.NewAABBFromCenter(randPos(), half))
		} else {
			shape = physics.SphereShape(physics.Sphere{
				Center: randPos(),
				Radius: 0.5 + rng.Float32()*0.5,
			})
		}
		if _, err := w.CreateCollider(shape, physics.DefaultFilter, physics.EntityRef(i)); err != nil {
			log.Fatal("create collider", "err", err)
		}
	}

	movers := make([]physics.MovingBody, cfg.Movers)
	for i := range movers {
		movers[i] = physics.MovingBody{
			Entity:      physics.EntityRef(1_000_000 + i),
			Position:    randPos(),
			HalfExtents: vec.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
			Velocity: vec.Vec3{
				X: rng.Float32()*20 - 10,
				Y: rng.Float32()*20 - 10,
				Z: rng.Float32()*20 - 10,
			},
			Filter: physics.DefaultFilter,
		}
	}

	return w, movers
}

func run(cfg config, count int) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	w, movers := buildWorld(cfg, count, rng)

	// Warm up
	if _, err := w.StepPhysics(cfg.Dt, movers); err != nil {
		log.Fatal("step", "err", err)
	}

	const iterations = 10
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := w.StepPhysics(cfg.Dt, movers); err != nil {
			log.Fatal("step", "err", err)
		}
	}
	stepTime := time.Since(start) / iterations

	// Brute-force broad phase for comparison: every mover against every
	// collider bounds
	region := physics.AABB{
		Min: vec.Vec3{X: -1e9, Y: -1e9, Z: -1e9},
		Max: vec.Vec3{X: 1e9, Y: 1e9, Z: 1e9},
	}
	bruteStart := time.Now()
	all := w.QueryRegion(region)
	var overlaps int
	for _, m := range movers {
		box := physics.NewAABBFromCenter(m.Position, m.HalfExtents)
		for _, id := range all {
			c, err := w.Collider(id)
			if err != nil {
				continue
			}
			if c.Shape.Bounds().Intersects(box) {
				overlaps++
			}
		}
	}
	bruteTime := time.Since(bruteStart)

	stats := w.Stats()
	log.Info("stress",
		"colliders", count,
		"movers", len(movers),
		"step", stepTime.Round(time.Microsecond),
		"brute", bruteTime.Round(time.Microsecond),
		"overlaps", overlaps,
		"narrowTests", stats.NarrowTests,
		"capHits", stats.IterationCapHits,
	)
}

// checkDeterminism runs the same tick sequence on two independently built
// worlds and compares every result position bit for bit.
func checkDeterminism(cfg config) bool {
	runSim := func() [][]physics.MoverResult {
		rng := rand.New(rand.NewSource(cfg.Seed))
		w, movers := buildWorld(cfg, 500, rng)
		out := make([][]physics.MoverResult, 0, cfg.Ticks)
		for tick := 0; tick < cfg.Ticks; tick++ {
			results, err := w.StepPhysics(cfg.Dt, movers)
			if err != nil {
				log.Fatal("step", "err", err)
			}
			for i := range movers {
				movers[i].Position = results[i].Position
			}
			out = append(out, results)
		}
		return out
	}

	a := runSim()
	b := runSim()

	for tick := range a {
		for i := range a[tick] {
			if !bitsEqual(a[tick][i].Position, b[tick][i].Position) {
				log.Error("divergence",
					"tick", tick,
					"mover", i,
					"a", a[tick][i].Position,
					"b", b[tick][i].Position,
				)
				return false
			}
		}
	}
	return true
}

func bitsEqual(a, b vec.Vec3) bool {
	return math.Float32bits(a.X) == math.Float32bits(b.X) &&
		math.Float32bits(a.Y) == math.Float32bits(b.Y) &&
		math.Float32bits(a.Z) == math.Float32bits(b.Z)
}
