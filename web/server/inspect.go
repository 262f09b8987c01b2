package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-path-tracer/pkg/config"
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	UV           [2]float64             `json:"uv"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// centerSampler returns 0.5 for every dimension so rays pass through pixel centers
type centerSampler struct{}

func (centerSampler) Get1D() float64   { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (centerSampler) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

// handleInspect reports what the camera ray through a pixel hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = scene.DefaultSceneID
	}

	width, err := parseIntParam(query, "width", 400, minWidth, maxWidth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	x, err := parseIntParam(query, "x", -1, 0, math.MaxInt32)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseIntParam(query, "y", -1, 0, math.MaxInt32)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if x < 0 || y < 0 {
		writeError(w, http.StatusBadRequest, "x and y are required")
		return
	}

	cfg := config.Default()
	cfg.Scene = sceneName
	cfg.Width = width
	cfg.TextureDirs = s.textureDirs
	sc, camera, _, err := cfg.BuildScene(core.NopLogger{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if x >= camera.Width() || y >= camera.Height() {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("pixel (%d, %d) outside %dx%d image", x, y, camera.Width(), camera.Height()))
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sc, camera.GetRay(x, y, centerSampler{})))
}

// inspectPixel traces a single ray into the scene and describes the closest hit
func inspectPixel(sc *scene.Scene, ray core.Ray) InspectResponse {
	var hit material.HitRecord
	if !sc.World.Hit(ray, core.NewInterval(0.001, math.Inf(1)), &hit, centerSampler{}) {
		return InspectResponse{Hit: false}
	}

	materialType, properties := extractMaterialInfo(hit.Material, hit)
	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T * ray.Direction.Length(),
		FrontFace:    hit.FrontFace,
		UV:           [2]float64{hit.UV.X, hit.UV.Y},
		Properties:   properties,
	}
}

// extractMaterialInfo extracts material details with type assertions
// Textured colors are evaluated at the hit point
func extractMaterialInfo(mat material.Material, hit material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		albedo := m.Albedo.Evaluate(hit.UV, hit.Point)
		properties["albedo"] = vecArray(albedo)
		properties["color"] = hexColor(albedo)
		properties["texture"] = textureName(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		emission := m.Emission.Evaluate(hit.UV, hit.Point)
		properties["emission"] = vecArray(emission)
		properties["color"] = hexColor(emission)
		return "diffuse_light", properties

	case *material.Isotropic:
		albedo := m.Albedo.Evaluate(hit.UV, hit.Point)
		properties["albedo"] = vecArray(albedo)
		properties["color"] = hexColor(albedo)
		return "isotropic", properties

	default:
		return fmt.Sprintf("%T", mat), properties
	}
}

func textureName(source material.ColorSource) string {
	switch t := source.(type) {
	case *material.SolidColor:
		return "solid"
	case *material.CheckerTexture:
		return "checker"
	case *material.NoiseTexture:
		return "noise"
	case *material.ImageTexture:
		return fmt.Sprintf("image %dx%d", t.Width, t.Height)
	default:
		return "unknown"
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// hexColor formats a color as #rrggbb, clamping channels to [0,1]
func hexColor(c core.Vec3) string {
	unit := core.NewInterval(0, 1)
	return fmt.Sprintf("#%02x%02x%02x",
		int(unit.Clamp(c.X)*255), int(unit.Clamp(c.Y)*255), int(unit.Clamp(c.Z)*255))
}
