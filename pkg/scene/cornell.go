package scene

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

// cornellCamera looks into the open side of the box
func cornellCamera(cameraOverrides []renderer.CameraConfig) renderer.CameraConfig {
	return applyCameraOverrides(renderer.CameraConfig{
		Center:        core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:            core.NewVec3(0, 1, 0),
		Width:         600,
		AspectRatio:   1.0,
		VFov:          40,
		FocusDistance: 10,
	}, cameraOverrides)
}

// addCornellWalls adds the walls and the given light, returning the white wall material
func addCornellWalls(world *geometry.HittableList, light geometry.Hittable) material.Material {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	// Right wall (green) - YZ plane at x=boxSize
	world.Add(geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green))
	// Left wall (red) - YZ plane at x=0
	world.Add(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), red))
	world.Add(light)
	// Floor
	world.Add(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white))
	// Ceiling
	world.Add(geometry.NewQuad(core.NewVec3(boxSize, boxSize, boxSize), core.NewVec3(-boxSize, 0, 0), core.NewVec3(0, 0, -boxSize), white))
	// Back wall
	world.Add(geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white))

	return white
}

// cornellBlocks returns the tall and short rotated boxes standing on the floor
func cornellBlocks(mat material.Material) (tall, short geometry.Hittable) {
	tall = geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), mat), 15),
		core.NewVec3(265, 0, 295),
	)
	short = geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), mat), -18),
		core.NewVec3(130, 0, 65),
	)
	return tall, short
}

// NewCornellScene creates a classic Cornell box with two rotated blocks and a ceiling light
func NewCornellScene(opts Options, cameraOverrides ...renderer.CameraConfig) *Scene {
	world := geometry.NewHittableList()

	light := geometry.NewQuad(
		core.NewVec3(343, 544, 343),
		core.NewVec3(-130, 0, 0),
		core.NewVec3(0, 0, -105),
		material.NewDiffuseLight(core.NewVec3(15, 15, 15)),
	)
	white := addCornellWalls(world, light)

	tall, short := cornellBlocks(white)
	world.Add(tall)
	world.Add(short)

	return &Scene{
		World:          world,
		CameraConfig:   cornellCamera(cameraOverrides),
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 15},
		Background:     blackBackground(),
	}
}

// NewCornellSmokeScene replaces the Cornell blocks with dark and light smoke of the same shape
func NewCornellSmokeScene(opts Options, cameraOverrides ...renderer.CameraConfig) *Scene {
	world := geometry.NewHittableList()

	light := geometry.NewQuad(
		core.NewVec3(113, 554, 127),
		core.NewVec3(330, 0, 0),
		core.NewVec3(0, 0, 305),
		material.NewDiffuseLight(core.NewVec3(7, 7, 7)),
	)
	white := addCornellWalls(world, light)

	tall, short := cornellBlocks(white)
	world.Add(geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)))
	world.Add(geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)))

	return &Scene{
		World:          world,
		CameraConfig:   cornellCamera(cameraOverrides),
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 15},
		Background:     blackBackground(),
	}
}
