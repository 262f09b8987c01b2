package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/df07/go-path-tracer/pkg/config"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/report"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	configPath string
	list       bool
	help       bool
	config     config.RenderConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run renders the scene described by args; log output goes to logOut
func run(ctx context.Context, args []string, logOut io.Writer) error {
	opts, err := parseFlags(args, logOut)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if opts.help {
		return nil
	}
	if opts.list {
		listScenes(logOut)
		return nil
	}

	cfg := opts.config
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := renderer.NewWriterLogger(logOut)
	sc, camera, renderCfg, err := cfg.BuildScene(logger)
	if err != nil {
		return err
	}

	logger.Printf("Rendering %s at %dx%d with %d samples per pixel, max depth %d\n",
		cfg.Scene, camera.Width(), camera.Height(), renderCfg.SamplesPerPixel, renderCfg.MaxDepth)

	raytracer := renderer.NewRaytracer(sc.World, camera, renderCfg, logger)
	frame, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render %s: %w", cfg.Scene, err)
	}

	if err := renderer.SaveFrame(frame, cfg.Output); err != nil {
		return err
	}
	if cfg.Output != "-" {
		logger.Printf("Render saved as %s\n", cfg.Output)
	}

	if cfg.Profile != "" {
		files, err := report.WriteProfile(cfg.Profile, frame, stats)
		if err != nil {
			return err
		}
		for _, file := range files {
			logger.Printf("Profile saved as %s\n", file)
		}
	}
	return nil
}

// parseFlags builds the options from the command line
// Flags that are set explicitly override values loaded from -config
func parseFlags(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("path-tracer", flag.ContinueOnError)
	fs.SetOutput(output)

	defaults := config.Default()
	var opts options
	fs.StringVar(&opts.configPath, "config", "", "JSON render config file")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	sceneID := fs.String("scene", defaults.Scene, "Scene to render (see -list)")
	width := fs.Int("width", 0, "Image width in pixels (0 keeps the scene default)")
	spp := fs.Int("spp", 0, "Samples per pixel (0 keeps the scene default)")
	depth := fs.Int("depth", 0, "Maximum bounce depth (0 keeps the scene default)")
	seed := fs.Int64("seed", defaults.Seed, "Random seed for scene construction and sampling")
	workers := fs.Int("workers", 0, "Number of render workers (0 uses all CPUs)")
	tile := fs.Int("tile", defaults.TileSize, "Tile size in pixels")
	outputPath := fs.String("output", defaults.Output, "Output file (.ppm, .ppm.zst, .ppm.sz, .png or - for stdout)")
	profile := fs.String("profile", "", "Write tile timing and luminance plots using this path prefix")
	textures := fs.String("textures", "", "Extra directories searched for image textures (path list)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.help {
		printHelp(output, fs)
		return opts, nil
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts.config = defaults
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return options{}, err
		}
		opts.config = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			opts.config.Scene = *sceneID
		case "width":
			opts.config.Width = *width
		case "spp":
			opts.config.SamplesPerPixel = *spp
		case "depth":
			opts.config.MaxDepth = *depth
		case "seed":
			opts.config.Seed = *seed
		case "workers":
			opts.config.Workers = *workers
		case "tile":
			opts.config.TileSize = *tile
		case "output":
			opts.config.Output = *outputPath
		case "profile":
			opts.config.Profile = *profile
		case "textures":
			opts.config.TextureDirs = append(opts.config.TextureDirs, filepath.SplitList(*textures)...)
		}
	})
	return opts, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Path Tracer")
	fmt.Fprintln(w, "Usage: path-tracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	listScenes(w)
}

func listScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, group := range scene.ListAllScenes().Groups {
		fmt.Fprintf(w, "  %s\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "    %-18s %s\n", info.ID, info.Description)
		}
	}
}
