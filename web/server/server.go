package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-path-tracer/pkg/config"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// Request limits shared by the render and inspect endpoints
const (
	minWidth, maxWidth = 8, 2000
	minSPP, maxSPP     = 1, 10000
	minDepth, maxDepth = 1, 200
)

// Server handles web requests for the path tracer
type Server struct {
	port        int
	staticDir   string
	textureDirs []string
}

// NewServer creates a new web server
// textureDirs are searched for image textures in addition to the defaults
func NewServer(port int, staticDir string, textureDirs ...string) *Server {
	return &Server{port: port, staticDir: staticDir, textureDirs: textureDirs}
}

// RenderRequest represents a render request from the client
// Zero SamplesPerPixel and MaxDepth keep the scene defaults
type RenderRequest struct {
	Scene           string `json:"scene"`           // Scene ID (e.g., "cornell-box")
	Width           int    `json:"width"`           // Image width; height follows the scene aspect ratio
	SamplesPerPixel int    `json:"samplesPerPixel"` // Samples per pixel
	MaxDepth        int    `json:"maxDepth"`        // Maximum bounce depth
	Seed            int64  `json:"seed"`            // Sampling seed
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes grouped by category
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListAllScenes())
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = scene.DefaultSceneID
	}

	sceneObj, err := scene.Build(sceneName, s.sceneOptions())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cam := sceneObj.CameraConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           cam.Width,
			"aspectRatio":     cam.AspectRatio,
			"samplesPerPixel": sceneObj.SamplingConfig.SamplesPerPixel,
			"maxDepth":        sceneObj.SamplingConfig.MaxDepth,
			"vfov":            cam.VFov,
			"defocusAngle":    cam.DefocusAngle,
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": minWidth, "max": maxWidth},
			"samplesPerPixel": map[string]int{"min": minSPP, "max": maxSPP},
			"maxDepth":        map[string]int{"min": minDepth, "max": maxDepth},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// sceneOptions returns build options for scene metadata requests
func (s *Server) sceneOptions() scene.Options {
	opts := scene.DefaultOptions()
	opts.TextureDirs = s.textureDirs
	return opts
}

// parseRenderRequest parses and validates request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = scene.DefaultSceneID
	}
	if _, err := scene.Lookup(req.Scene); err != nil {
		return nil, err
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "spp", 0, minSPP, maxSPP); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 0, minDepth, maxDepth); err != nil {
		return nil, err
	}
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	} else {
		req.Seed = config.Default().Seed
	}

	// Performance warning
	if req.Width > 800 && req.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// renderConfig converts the request to a render config
func (s *Server) renderConfig(req *RenderRequest) config.RenderConfig {
	cfg := config.Default()
	cfg.Scene = req.Scene
	cfg.Width = req.Width
	cfg.SamplesPerPixel = req.SamplesPerPixel
	cfg.MaxDepth = req.MaxDepth
	cfg.Seed = req.Seed
	cfg.TextureDirs = s.textureDirs
	return cfg
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
