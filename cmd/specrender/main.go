// Command specrender renders the spectrograms of an analysis result to PNG.
//
// Usage:
//
//	specrender [flags]
//
// The input is the analysis service's JSON response, either keyed by method
// name ("original", "method-a", ...) or a single flat result. One image per
// method is written to the output directory; methods without spectrogram data
// get a placeholder card.
//
// Examples:
//
//	specrender -in result.json -out specs
//	curl -s localhost:8000/analyze -F file=@call.wav | specrender -in - -methods original,method-b
//	specrender -config specrender.yaml -zoom 2
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zammelRocks/whale-spectrogram/analysis"
	"github.com/zammelRocks/whale-spectrogram/config"
	"github.com/zammelRocks/whale-spectrogram/logging"
	"github.com/zammelRocks/whale-spectrogram/render"
)

const (
	placeholderWidth  = 320
	placeholderHeight = 160
)

type options struct {
	configPath string
	input      string
	outDir     string
	methods    string
	legend     string
	zoom       int
	level      string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flag.StringVar(&opts.input, "in", "-", "analysis result JSON file, or - for stdin")
	flag.StringVar(&opts.outDir, "out", "", "output directory (overrides config)")
	flag.StringVar(&opts.methods, "methods", "", "comma separated methods to render (default: all present)")
	flag.StringVar(&opts.legend, "legend", "", "stack the dB legend under each image: true or false (overrides config)")
	flag.IntVar(&opts.zoom, "zoom", 0, "integer upscale factor for written images (overrides config)")
	flag.StringVar(&opts.level, "level", "", "log level: debug, info, warn, error (overrides config)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: specrender [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders the spectrograms of an analysis result to PNG.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(context.Background(), opts, os.Stdin); err != nil {
		logging.Error(err, "specrender failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdin io.Reader) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logging.SetGlobalLogger(cfg.Logger())
	logger := logging.WithFields(logging.Fields{"component": "specrender"})

	methods, err := analysis.ParseMethods(strings.Join(cfg.Output.Methods, ","))
	if err != nil {
		return err
	}

	result, err := readResult(opts.input, stdin)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if series, ok := result.Series(analysis.Bandwidth, result.Present()); ok {
		logger.Info("bandwidth comparison", logging.Fields{"methods": len(series), "bandwidth_hz": series})
	}

	g, ctx := errgroup.WithContext(ctx)
	rendered := 0
	for _, m := range methods {
		features, ok := result.Features(m)
		if !ok {
			continue
		}
		rendered++

		methodLogger := logger.WithContext(logging.ContextWithFields(ctx, logging.Fields{"method": m.String()}))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return renderMethod(m, features, cfg, methodLogger)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if rendered == 0 {
		logger.Warn("no requested method present in result", logging.Fields{"present": len(result.Present())})
	}

	logger.Info("done", logging.Fields{"images": rendered, "dir": cfg.Output.Dir})
	return nil
}

func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}
	if opts.methods != "" {
		cfg.Output.Methods = strings.Split(opts.methods, ",")
	}
	if opts.legend != "" {
		legend, err := strconv.ParseBool(opts.legend)
		if err != nil {
			return nil, fmt.Errorf("-legend: %w", err)
		}
		cfg.Output.Legend = legend
	}
	if opts.zoom != 0 {
		cfg.Output.Zoom = opts.zoom
	}
	if opts.level != "" {
		cfg.Logging.Level = opts.level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readResult(path string, stdin io.Reader) (*analysis.Result, error) {
	if path == "" || path == "-" {
		return analysis.Decode(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open analysis result: %w", err)
	}
	defer f.Close()

	return analysis.Decode(f)
}

func renderMethod(m analysis.Method, features *analysis.Features, cfg *config.Config, logger logging.Logger) error {
	in := features.Spectrogram.Input()

	st := analysis.Stats(in, cfg.Render.DBFloor, cfg.Render.DBCeiling)
	logger.Debug("spectrogram stats", logging.Fields{
		"rows":       st.Rows,
		"cols":       st.Cols,
		"min_db":     st.Min,
		"max_db":     st.Max,
		"mean_db":    st.Mean,
		"non_finite": st.NonFinite,
		"clipped":    st.Clipped,
	})
	if st.Truncated {
		logger.Warn("ragged spectrogram rows truncated", logging.Fields{"cols": st.Cols})
	}

	surface := render.NewSurface(&cfg.Render, logger)
	out, ok, err := surface.Update(in)
	if err != nil {
		return fmt.Errorf("render %s: %w", m, err)
	}
	if !ok {
		return fmt.Errorf("render %s: superseded", m)
	}

	var img *image.RGBA
	if out.HasData {
		img = out.Image
		if cfg.Output.Legend {
			img = out.Compose()
		}
	} else {
		logger.Info("no spectrogram data, writing placeholder")
		img = render.Placeholder(placeholderWidth, placeholderHeight)
	}

	img, err = render.Scaled(img, cfg.Output.Zoom)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.Output.Dir, m.String()+".png")
	if err := writePNG(path, img); err != nil {
		return err
	}

	logger.Info("wrote spectrogram", logging.Fields{
		"path":     path,
		"width":    img.Bounds().Dx(),
		"height":   img.Bounds().Dy(),
		"has_data": out.HasData,
	})
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return f.Close()
}
