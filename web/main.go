package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/df07/go-path-tracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	static := flag.String("static", "", "Directory of static files to serve at /")
	textures := flag.String("textures", "", "Extra directories searched for image textures (path list)")
	flag.Parse()

	var textureDirs []string
	if *textures != "" {
		textureDirs = filepath.SplitList(*textures)
	}

	// Create and start web server
	webServer := server.NewServer(*port, *static, textureDirs...)

	log.Printf("Path Tracer Web Server")
	log.Printf("Connect a websocket to ws://localhost:%d/api/render?scene=<id> to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
