package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-tile-raytracer/pkg/core"
	"github.com/df07/go-tile-raytracer/pkg/renderer"
	"github.com/df07/go-tile-raytracer/pkg/scene"
)

// Config holds the command line settings for a single render
type Config struct {
	Scene   string
	Width   int
	Height  int
	Scale   int
	Output  string
	List    bool
	Help    bool
	Options renderer.Options
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags reads the command line into a Config
func parseFlags(args []string, out io.Writer) (Config, *flag.FlagSet, error) {
	config := Config{Options: renderer.DefaultOptions()}

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&config.Scene, "scene", "default", "Scene name (see -list)")
	fs.IntVar(&config.Width, "width", 400, "Image width in pixels")
	fs.IntVar(&config.Height, "height", 225, "Image height in pixels")
	fs.IntVar(&config.Options.Samples, "samples", config.Options.Samples, "Samples per pixel")
	fs.IntVar(&config.Options.MaxScatter, "max-scatter", config.Options.MaxScatter, "Maximum bounces per camera ray")
	fs.IntVar(&config.Options.TileWidth, "tile", config.Options.TileWidth, "Tile size in pixels")
	fs.IntVar(&config.Options.NumWorkers, "workers", config.Options.NumWorkers, "Number of parallel workers (0 = use CPU count)")
	fs.Int64Var(&config.Options.Seed, "seed", config.Options.Seed, "Random seed")
	fs.IntVar(&config.Scale, "scale", 1, "Integer upscale factor applied to the saved image")
	fs.StringVar(&config.Output, "output", "", "Output file; the extension selects png, bmp or tiff (default output/<scene>/render_<timestamp>.png)")
	fs.BoolVar(&config.List, "list", false, "List available scenes")
	fs.BoolVar(&config.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return config, fs, err
	}
	config.Options.TileHeight = config.Options.TileWidth

	if config.Width <= 0 || config.Height <= 0 {
		return config, fs, fmt.Errorf("image size must be positive, got %dx%d", config.Width, config.Height)
	}
	if config.Scale < 1 {
		return config, fs, fmt.Errorf("scale must be at least 1, got %d", config.Scale)
	}
	return config, fs, config.Options.Validate()
}

func run(args []string, stdout io.Writer) error {
	config, fs, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	if config.Help {
		fmt.Fprintln(stdout, "Tile Raytracer")
		fmt.Fprintln(stdout, "Usage: raytracer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		printScenes(stdout)
		return nil
	}

	if config.List {
		printScenes(stdout)
		return nil
	}

	selectedScene, err := scene.Lookup(config.Scene, float64(config.Width)/float64(config.Height))
	if err != nil {
		return err
	}

	outputPath := config.Output
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = filepath.Join("output", config.Scene, fmt.Sprintf("render_%s.png", timestamp))
	}
	format, err := renderer.FormatFromPath(outputPath)
	if err != nil {
		return err
	}

	logger := core.NewDefaultLogger("raytracer")
	logger.Printf("Using %s scene (%d entities)\n", config.Scene, selectedScene.Len())

	surface := renderer.NewImageSurface(config.Width, config.Height)
	stats, err := renderer.NewPathTracingRenderer(config.Options, logger).Render(selectedScene, surface)
	if err != nil {
		return fmt.Errorf("render %s: %w", config.Scene, err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	if err := renderer.EncodeImage(file, surface.Scaled(config.Scale), format); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}

	fmt.Fprintf(stdout, "Render completed in %v (%d tiles, %.1f samples/pixel)\n",
		stats.Elapsed, stats.Tiles, stats.AverageSamples())
	fmt.Fprintf(stdout, "Render saved as %s\n", outputPath)
	return file.Close()
}

func printScenes(out io.Writer) {
	fmt.Fprintln(out, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(out, "  %-8s - %s\n", info.ID, info.Description)
	}
}
