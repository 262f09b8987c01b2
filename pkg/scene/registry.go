package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-path-tracer/pkg/renderer"
)

// Builder constructs a scene from build options and optional camera overrides
type Builder func(opts Options, cameraOverrides ...renderer.CameraConfig) *Scene

// SceneInfo describes a registered scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, used on the command line
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const (
	groupSpheres = "Spheres and Textures"
	groupLights  = "Lights and Volumes"
)

type registration struct {
	info  SceneInfo
	build Builder
}

// registry lists the built-in scenes in presentation order
var registry = []registration{
	{SceneInfo{ID: "bouncing-spheres", Description: "Random moving, metal and glass spheres on a checkered ground", Group: groupSpheres}, NewBouncingSpheresScene},
	{SceneInfo{ID: "checkered-spheres", Description: "Two checkered spheres", Group: groupSpheres}, NewCheckeredSpheresScene},
	{SceneInfo{ID: "earth", Description: "Image-textured globe", Group: groupSpheres}, NewEarthScene},
	{SceneInfo{ID: "perlin-spheres", Description: "Perlin marble spheres", Group: groupSpheres}, NewPerlinSpheresScene},
	{SceneInfo{ID: "quads", Description: "Five colored quads", Group: groupSpheres}, NewQuadsScene},
	{SceneInfo{ID: "simple-light", Description: "Marble spheres under emissive lights", Group: groupLights}, NewSimpleLightScene},
	{SceneInfo{ID: "cornell-box", Description: "Cornell box with two rotated blocks", Group: groupLights}, NewCornellScene},
	{SceneInfo{ID: "cornell-smoke", Description: "Cornell box with smoke blocks", Group: groupLights}, NewCornellSmokeScene},
	{SceneInfo{ID: "final", Description: "Showcase of every primitive, material and medium", Group: groupLights}, NewFinalScene},
}

// DefaultSceneID is the scene rendered when none is named
const DefaultSceneID = "final"

func init() {
	for i := range registry {
		info := &registry[i].info
		info.Name = titleCase(info.ID)
		info.DisplayName = info.Name
	}
}

// Names returns the IDs of all registered scenes in presentation order
func Names() []string {
	names := make([]string, len(registry))
	for i, r := range registry {
		names[i] = r.info.ID
	}
	return names
}

// Lookup returns the builder registered under id
func Lookup(id string) (Builder, error) {
	for _, r := range registry {
		if r.info.ID == id {
			return r.build, nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(Names(), ", "))
}

// Build constructs the scene registered under id
func Build(id string, opts Options, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	build, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return build(opts, cameraOverrides...), nil
}

// ListAllScenes returns the registered scenes grouped by category
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	var groupNames []string
	for _, r := range registry {
		if _, seen := groupMap[r.info.Group]; !seen {
			groupNames = append(groupNames, r.info.Group)
		}
		groupMap[r.info.Group] = append(groupMap[r.info.Group], r.info)
	}
	sort.Strings(groupNames)

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-box" -> "Cornell Box"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
