package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/loaders"
	"github.com/alariq/basic-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string // Directory scanned for .xml scenes, "" for scenes or ../scenes
	mux       *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int, scenesDir string) *Server {
	s := &Server{port: port, scenesDir: scenesDir, mux: http.NewServeMux()}

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// SceneRequest holds the scene selection and overrides shared by render
// and inspect requests
type SceneRequest struct {
	Scene    string  `json:"scene"`    // Built-in name or xml:<name> id
	Width    int     `json:"width"`    // Image width, 0 keeps the scene's
	Height   int     `json:"height"`   // Image height, 0 keeps the scene's
	Bounces  int     `json:"bounces"`  // Max bounces, -1 keeps the scene's
	VFov     float64 `json:"vfov"`     // Vertical field of view, 0 keeps the scene's
	Aperture float64 `json:"aperture"` // Lens aperture, 0 keeps the scene's
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and discovered XML scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// parseSceneRequest parses the parameters shared by every scene endpoint
func parseSceneRequest(values url.Values) (*SceneRequest, error) {
	req := &SceneRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 1, 2000); err != nil {
		return nil, err
	}
	if req.Bounces, err = parseIntParam(values, "bounces", -1, 0, 50); err != nil {
		return nil, err
	}
	if req.VFov, err = parseFloatParam(values, "vfov", 0, 1, 179); err != nil {
		return nil, err
	}
	if req.Aperture, err = parseFloatParam(values, "aperture", 0, 0, 10); err != nil {
		return nil, err
	}
	return req, nil
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

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam accepts the forms understood by strconv.ParseBool
func parseBoolParam(values url.Values, key string) (bool, error) {
	value := values.Get(key)
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %s", key, value)
	}
	return parsed, nil
}

// createScene builds the requested scene, applies the overrides and
// validates the result
func (s *Server) createScene(req *SceneRequest, logger core.Logger) (*scene.Scene, error) {
	sceneObj, err := s.loadScene(req.Scene, logger)
	if err != nil {
		return nil, err
	}

	sceneObj.RenderConfig = scene.MergeRenderConfig(sceneObj.RenderConfig, scene.RenderConfig{
		Width:  req.Width,
		Height: req.Height,
	})
	if req.Bounces >= 0 {
		sceneObj.RenderConfig.MaxDepth = req.Bounces
	}
	sceneObj.CameraConfig = scene.MergeCameraConfig(sceneObj.CameraConfig, scene.CameraConfig{
		VFov:     req.VFov,
		Aperture: req.Aperture,
	})

	if err := sceneObj.Validate(); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// loadScene resolves built-in names and xml:<name> ids. XML scenes are only
// loaded from files found by scene discovery.
func (s *Server) loadScene(id string, logger core.Logger) (*scene.Scene, error) {
	if sceneObj, err := scene.NewBuiltinScene(id); err == nil {
		return sceneObj, nil
	}

	xmlScenes, err := scene.ListXMLScenes(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range xmlScenes {
		if info.ID == id {
			return loaders.LoadScene(info.FilePath, logger)
		}
	}
	return nil, fmt.Errorf("unknown scene: %s", id)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
