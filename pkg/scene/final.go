package scene

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/loaders"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/renderer"
)

const (
	boxesPerSide = 20
	groundBoxW   = 100.0
	foamSpheres  = 1000
)

// NewFinalScene creates the showcase scene exercising every primitive, material and medium
// under a single ceiling light
func NewFinalScene(opts Options, cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(renderer.CameraConfig{
		Center:        core.NewVec3(478, 278, -600),
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         800,
		AspectRatio:   1.0,
		VFov:          40,
		FocusDistance: 10,
	}, cameraOverrides)

	sampler := opts.sampler()

	// Ground of boxes with random heights
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	boxes := geometry.NewHittableList()
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			x0 := -1000.0 + float64(i)*groundBoxW
			z0 := -1000.0 + float64(j)*groundBoxW
			y1 := core.RandomInRange(sampler, 1, 101)
			boxes.Add(geometry.NewBox(
				core.NewVec3(x0, 0, z0),
				core.NewVec3(x0+groundBoxW, y1, z0+groundBoxW),
				ground,
			))
		}
	}

	world := geometry.NewHittableList()
	world.Add(geometry.NewBVHFromList(boxes))

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	world.Add(geometry.NewQuad(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), light))

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))
	world.Add(geometry.NewMovingSphere(center1, center2, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	world.Add(geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)))

	// Blue fog inside a glass ball
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	world.Add(boundary)
	world.Add(geometry.NewConstantMedium(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin mist over everything
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	world.Add(geometry.NewConstantMedium(mist, 0.0001, core.NewVec3(1, 1, 1)))

	earthTexture := loaders.LoadImageTexture(EarthTextureFile, opts.logger(), opts.TextureDirs...)
	world.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earthTexture)))

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(0.2, sampler))
	world.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, marble))

	// Cluster of small white spheres, rotated and moved into place
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	foam := make([]geometry.Hittable, 0, foamSpheres)
	for j := 0; j < foamSpheres; j++ {
		center := core.NewVec3(
			core.RandomInRange(sampler, 0, 165),
			core.RandomInRange(sampler, 0, 165),
			core.RandomInRange(sampler, 0, 165),
		)
		foam = append(foam, geometry.NewSphere(center, 10, white))
	}
	world.Add(geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBVH(foam), 15),
		core.NewVec3(-100, 270, 395),
	))

	return &Scene{
		World:          world,
		CameraConfig:   cameraConfig,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 10000, MaxDepth: 40},
		Background:     blackBackground(),
	}
}
