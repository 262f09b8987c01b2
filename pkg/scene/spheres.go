package scene

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/loaders"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/renderer"
)

// EarthTextureFile is the image wrapped around the earth spheres
const EarthTextureFile = "earthmap.jpg"

// groundChecker is the checker texture shared by the sphere scenes
func groundChecker() *material.CheckerTexture {
	return material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
}

// wideSphereCamera is the camera shared by the sphere scenes
func wideSphereCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20,
		FocusDistance: 10,
	}
}

// NewBouncingSpheresScene creates a checkered ground covered in small random spheres,
// the diffuse ones moving upward during the shutter interval, around three large spheres
func NewBouncingSpheresScene(opts Options, cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := wideSphereCamera()
	cameraConfig.DefocusAngle = 0.6
	cameraConfig = applyCameraOverrides(cameraConfig, cameraOverrides)

	sampler := opts.sampler()
	world := geometry.NewHittableList()

	ground := material.NewTexturedLambertian(groundChecker())
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	clearance := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				// Diffuse
				albedo := core.RandomColor(sampler, 0, 1).MultiplyVec(core.RandomColor(sampler, 0, 1))
				center2 := center.Add(core.NewVec3(0, core.RandomInRange(sampler, 0, 0.5), 0))
				world.Add(geometry.NewMovingSphere(center, center2, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				// Metal
				albedo := core.RandomColor(sampler, 0.5, 1)
				fuzz := core.RandomInRange(sampler, 0, 0.5)
				world.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				// Glass
				world.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	return &Scene{
		World:          geometry.NewBVHFromList(world),
		CameraConfig:   cameraConfig,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 25, MaxDepth: 10},
		Background:     skyBackground(),
	}
}

// NewCheckeredSpheresScene creates two large checkered spheres touching at the origin
func NewCheckeredSpheresScene(opts Options, cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(wideSphereCamera(), cameraOverrides)

	checker := material.NewTexturedLambertian(groundChecker())
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	return &Scene{
		World:          world,
		CameraConfig:   cameraConfig,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
		Background:     skyBackground(),
	}
}

// NewEarthScene creates a single image-textured globe
// A missing texture image renders with the debug color instead of failing
func NewEarthScene(opts Options, cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := wideSphereCamera()
	cameraConfig.Center = core.NewVec3(0, 0, 12)
	cameraConfig = applyCameraOverrides(cameraConfig, cameraOverrides)

	earthTexture := loaders.LoadImageTexture(EarthTextureFile, opts.logger(), opts.TextureDirs...)
	globe := geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(earthTexture))

	return &Scene{
		World:          geometry.NewHittableList(globe),
		CameraConfig:   cameraConfig,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 20, MaxDepth: 10},
		Background:     skyBackground(),
	}
}

// NewPerlinSpheresScene creates a marble-textured sphere resting on a marble ground
func NewPerlinSpheresScene(opts Options, cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(wideSphereCamera(), cameraOverrides)

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, opts.sampler()))
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)

	return &Scene{
		World:          world,
		CameraConfig:   cameraConfig,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 25, MaxDepth: 10},
		Background:     skyBackground(),
	}
}
