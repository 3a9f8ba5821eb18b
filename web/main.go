package main

import (
	"flag"
	"os"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	logger := core.NewDefaultLogger("web")

	// Create and start web server
	webServer := server.NewServer(*port, logger)

	logger.Printf("Tile Raytracer Web Server\n")
	logger.Printf("Visit http://localhost:%d to start rendering\n", *port)

	if err := webServer.Start(); err != nil {
		logger.Printf("Error starting server: %v\n", err)
		os.Exit(1)
	}
}
