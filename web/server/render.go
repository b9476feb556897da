package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/integrator"
	"github.com/alariq/basic-raytracer/pkg/loaders"
	"github.com/alariq/basic-raytracer/pkg/renderer"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	SceneRequest
	Workers int   `json:"workers"` // Parallel workers, 0 uses every CPU
	Seed    int64 `json:"seed"`    // Lens sampling seed, 0 seeds from the clock
	Gamma   bool  `json:"gamma"`
	Fresnel bool  `json:"fresnel"`
	Falloff bool  `json:"falloff"`
}

// RenderResponse is the JSON body returned by /api/render
type RenderResponse struct {
	Scene            string               `json:"scene"`
	Width            int                  `json:"width"`
	Height           int                  `json:"height"`
	ImageData        string               `json:"imageData"` // Base64 encoded PNG
	Stats            renderer.RenderStats `json:"stats"`
	AverageLuminance float64              `json:"averageLuminance"`
	ElapsedMs        int64                `json:"elapsedMs"`
	Console          []ConsoleMessage     `json:"console"`
}

// handleRender renders the requested scene and returns the frame as PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Setup console logging
	consoleChan, webLogger := setupConsoleLogging()

	sceneObj, err := s.createScene(&req.SceneRequest, webLogger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	integConfig := integrator.DefaultConfig()
	integConfig.FresnelEnabled = req.Fresnel
	integConfig.PointLightFalloff = req.Falloff

	config := renderer.ConfigFromScene(sceneObj)
	config.GammaCorrection = req.Gamma
	config.NumWorkers = req.Workers
	config.Seed = req.Seed

	// Use request context to stop rendering when the client disconnects
	startTime := time.Now()
	raytracer := renderer.NewRaytracer(sceneObj, integrator.NewWhittedIntegrator(integConfig), config, webLogger)
	img, stats, err := raytracer.Render(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, RenderResponse{
		Scene:            req.Scene,
		Width:            config.Width,
		Height:           config.Height,
		ImageData:        imageData,
		Stats:            stats,
		AverageLuminance: renderer.CalculateAverageLuminance(img),
		ElapsedMs:        time.Since(startTime).Milliseconds(),
		Console:          drainConsole(consoleChan),
	})
}

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	values := r.URL.Query()
	sceneReq, err := parseSceneRequest(values)
	if err != nil {
		return nil, err
	}
	req := &RenderRequest{SceneRequest: *sceneReq}

	if req.Workers, err = parseIntParam(values, "workers", 0, 0, 256); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 0, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	if req.Gamma, err = parseBoolParam(values, "gamma"); err != nil {
		return nil, err
	}
	if req.Fresnel, err = parseBoolParam(values, "fresnel"); err != nil {
		return nil, err
	}
	if req.Falloff, err = parseBoolParam(values, "falloff"); err != nil {
		return nil, err
	}
	return req, nil
}

// setupConsoleLogging creates console channel and web logger for a render
func setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 100)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img *image.RGBA) (string, error) {
	var buf bytes.Buffer
	if err := loaders.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
