package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/df07/go-path-tracer/pkg/config"
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/gorilla/websocket"
)

const (
	pingInterval = 30 * time.Second
	writeTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RenderEvent is a single message sent to the client over the websocket
type RenderEvent struct {
	Type string      `json:"type"` // "console", "progress", "error", "complete"
	Data interface{} `json:"data"`
}

// ProgressUpdate reports how many tiles have finished
type ProgressUpdate struct {
	Completed int   `json:"completed"`
	Total     int   `json:"total"`
	ElapsedMs int64 `json:"elapsedMs"`
}

// RenderComplete carries the finished image and its statistics
type RenderComplete struct {
	ImageData        string  `json:"imageData"` // Base64 encoded PNG
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	TotalSamples     int     `json:"totalSamples"`
	Workers          int     `json:"workers"`
	ElapsedMs        int64   `json:"elapsedMs"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
}

// handleRender renders one image and streams progress over a websocket
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Validate before upgrading so bad requests get a plain HTTP error
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	cfg := s.renderConfig(req)
	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events := make(chan RenderEvent, 100)
	writerDone := make(chan struct{})
	go s.writeEvents(conn, events, writerDone)

	// Client disconnects and close frames cancel the render
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	consoleChan := make(chan ConsoleMessage, 100)
	webLogger := NewWebLogger(renderID, consoleChan)

	var consoleWG sync.WaitGroup
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		s.streamConsoleMessages(consoleChan, events)
	}()

	s.runRender(ctx, cfg, webLogger, events)

	close(consoleChan)
	consoleWG.Wait()
	close(events)
	<-writerDone
}

// runRender builds the scene, renders it and reports the outcome as events
func (s *Server) runRender(ctx context.Context, cfg config.RenderConfig, logger core.Logger, events chan<- RenderEvent) {
	sc, camera, renderCfg, err := cfg.BuildScene(logger)
	if err != nil {
		events <- RenderEvent{Type: "error", Data: err.Error()}
		return
	}

	logger.Printf("Rendering %s at %dx%d, %d spp, depth %d\n",
		cfg.Scene, camera.Width(), camera.Height(), renderCfg.SamplesPerPixel, renderCfg.MaxDepth)

	start := time.Now()
	raytracer := renderer.NewRaytracer(sc.World, camera, renderCfg, logger)
	raytracer.SetProgressFunc(func(completed, total int) {
		sendEvent(ctx, events, RenderEvent{Type: "progress", Data: ProgressUpdate{
			Completed: completed,
			Total:     total,
			ElapsedMs: time.Since(start).Milliseconds(),
		}})
	})

	frame, stats, err := raytracer.Render(ctx)
	if err != nil {
		sendEvent(ctx, events, RenderEvent{Type: "error", Data: err.Error()})
		return
	}

	imageData, err := imageToBase64PNG(frame.ToImage())
	if err != nil {
		events <- RenderEvent{Type: "error", Data: err.Error()}
		return
	}

	events <- RenderEvent{Type: "complete", Data: RenderComplete{
		ImageData:        imageData,
		Width:            frame.Width,
		Height:           frame.Height,
		SamplesPerPixel:  stats.SamplesPerPixel,
		TotalSamples:     stats.TotalSamples,
		Workers:          stats.NumWorkers,
		ElapsedMs:        stats.Elapsed.Milliseconds(),
		SamplesPerSecond: stats.SamplesPerSecond(),
	}}
}

// writeEvents is the only goroutine that writes to the connection
// It keeps draining events after a write error so senders never block
func (s *Server) writeEvents(conn *websocket.Conn, events <-chan RenderEvent, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	failed := false
	for {
		select {
		case event, ok := <-events:
			if !ok {
				if !failed {
					conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, "render finished"))
				}
				return
			}
			if failed {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("websocket write failed: %v", err)
				failed = true
			}
		case <-ticker.C:
			if failed {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				failed = true
			}
		}
	}
}

// streamConsoleMessages forwards logger output as console events until consoleChan closes
func (s *Server) streamConsoleMessages(consoleChan <-chan ConsoleMessage, events chan<- RenderEvent) {
	for msg := range consoleChan {
		select {
		case events <- RenderEvent{Type: "console", Data: msg}:
		default:
			// Drop console output rather than stall the render
		}
	}
}

// sendEvent delivers an event unless the render was cancelled
func sendEvent(ctx context.Context, events chan<- RenderEvent, event RenderEvent) {
	select {
	case events <- event:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to a base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
