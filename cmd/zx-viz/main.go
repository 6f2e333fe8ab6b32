// Visualizer for collider layouts: loads a scene file, steps its movers at a
// fixed tick, and renders collider wireframes through the debug-draw
// callback. Observational tooling only; nothing here feeds back into the
// simulation.
package main

import (
	"flag"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/nethercore/zxcollide/physics"
	"github.com/nethercore/zxcollide/scene"
	"github.com/nethercore/zxcollide/vec"
)

const tickRate = float32(1.0 / 60.0)

func main() {
	path := flag.String("scene", "assets/scenes/arena.json", "collider layout file (json or yaml)")
	flag.Parse()

	layout, err := scene.Load(*path)
	if err != nil {
		log.Fatal("load scene", "err", err)
	}
	world, movers, err := layout.Build()
	if err != nil {
		log.Fatal("build scene", "err", err)
	}
	log.Info("scene loaded", "name", layout.Name, "colliders", world.ColliderCount(), "movers", len(movers))

	rl.InitWindow(1280, 720, "zx-collide viz")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	camera := rl.Camera3D{
		Position:   rl.Vector3{X: 20, Y: 18, Z: 20},
		Target:     rl.Vector3{X: 0, Y: 0, Z: 0},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	world.SetDebugDraw(drawShape)

	for !rl.WindowShouldClose() {
		rl.UpdateCamera(&camera, rl.CameraOrbital)

		results, err := world.StepPhysics(tickRate, movers)
		if err != nil {
			log.Fatal("step", "err", err)
		}
		for i := range movers {
			movers[i].Position = results[i].Position
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		rl.BeginMode3D(camera)

		rl.DrawGrid(40, 1)
		world.DebugDraw()
		for i := range movers {
			drawMover(&movers[i], results[i].Contacts)
		}

		rl.EndMode3D()
		rl.DrawFPS(10, 10)
		rl.EndDrawing()
	}
}

// drawShape is the physics.DrawFunc wired into the world.
func drawShape(shape *physics.Shape, color uint32) {
	c := unpackColor(color)
	switch shape.Kind {
	case physics.KindSphere:
		s := shape.Sphere
		rl.DrawSphereWires(rlVec(s.Center), s.Radius, 8, 8, c)
	case physics.KindCapsule:
		capsule := shape.Capsule
		rl.DrawCapsuleWires(rlVec(capsule.Base), rlVec(capsule.Tip), capsule.Radius, 8, 8, c)
	default:
		b := shape.Box
		center := b.Center()
		size := b.Max.Sub(b.Min)
		rl.DrawCubeWiresV(rlVec(center), rlVec(size), c)
	}
}

func drawMover(m *physics.MovingBody, contacts []physics.Contact) {
	size := m.HalfExtents.Scale(2)
	color := rl.White
	if len(contacts) > 0 {
		color = rl.Red
	}
	rl.DrawCubeWiresV(rlVec(m.Position), rlVec(size), color)

	// Contact normals as short lines off the mover
	for _, contact := range contacts {
		end := m.Position.Add(contact.Normal.Scale(2))
		rl.DrawLine3D(rlVec(m.Position), rlVec(end), rl.Yellow)
	}
}

func rlVec(v vec.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

func unpackColor(c uint32) rl.Color {
	return rl.Color{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
		A: uint8(c),
	}
}
