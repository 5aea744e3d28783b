// Command sglrender renders a TOML scene description to a PNG file.
//
// Usage:
//
//	sglrender -scene scene.toml -output frame.png
//
// Without -scene a built-in triangle is drawn.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/softgl"
)

const defaultScene = `
width = 256
height = 256
clear = [0.1, 0.1, 0.1, 1.0]

[[mesh]]
positions = [-0.8, -0.8, 0.0,  0.8, -0.8, 0.0,  0.0, 0.8, 0.0]
colors = [1.0, 0.0, 0.0, 1.0,  0.0, 1.0, 0.0, 1.0,  0.0, 0.0, 1.0, 1.0]
`

func main() {
	scenePath := flag.String("scene", "", "scene file (TOML)")
	output := flag.String("output", "frame.png", "output PNG file")
	verbose := flag.Bool("v", false, "log rasterizer diagnostics")
	flag.Parse()

	if *verbose {
		softgl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var (
		scene *Scene
		err   error
		dir   = "."
	)
	if *scenePath == "" {
		scene, err = ParseScene(defaultScene)
	} else {
		scene, err = LoadScene(*scenePath)
		dir = filepath.Dir(*scenePath)
	}
	if err != nil {
		log.Fatalf("Couldn't load scene: %v", err)
	}

	surface, err := Render(scene, dir)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	if err := surface.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Frame saved to %s (%dx%d, %d meshes)", *output, scene.Width, scene.Height, len(scene.Meshes))
}
