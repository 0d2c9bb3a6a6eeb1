// Command flatpaint converts an SVG document or a raster image into a
// Happy Wheels level.
//
// Usage:
//
//	flatpaint -in art.svg -out level.xml
//	flatpaint -in photo.png -x 100 -y 200 -w 800 -h 600
//
// Decomposition preferences are read from FLATPAINT_* environment
// variables; see internal/config.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/flatpaint"
	"github.com/gogpu/flatpaint/internal/config"
	"github.com/gogpu/flatpaint/internal/imageio"
	"github.com/gogpu/flatpaint/svg"
)

func main() {
	var (
		input  = flag.String("in", "", "input SVG or image file")
		output = flag.String("out", "", "output level file (default stdout)")
		x      = flag.Float64("x", 0, "left edge of the artwork in the level")
		y      = flag.Float64("y", 0, "top edge of the artwork in the level")
		w      = flag.Float64("w", 0, "artwork width (default: the input's own size)")
		h      = flag.Float64("h", 0, "artwork height (default: the input's own size)")
		group  = flag.Bool("group", false, "collect the artwork into one group")
	)
	flag.Parse()

	if err := run(*input, *output, *x, *y, *w, *h, *group); err != nil {
		fmt.Fprintln(os.Stderr, "flatpaint:", err)
		os.Exit(1)
	}
}

func run(input, output string, x, y, w, h float64, group bool) error {
	if input == "" {
		return errors.New("missing -in")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	lvl, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	flatpaint.SetLogger(logger)

	level := flatpaint.NewLevel()
	level.Info = cfg.Info()
	root := level.Layer(flatpaint.WithPreferences(cfg.Preferences()))

	var anchor *flatpaint.Bounds
	if w > 0 && h > 0 {
		anchor = &flatpaint.Bounds{X: x, Y: y, W: w, H: h}
	}

	draw := func(l *flatpaint.Layer) error {
		if anchor == nil && (x != 0 || y != 0) {
			l = l.Translate(x, y)
		}
		return load(l, input, anchor)
	}
	if group {
		err = root.Group(flatpaint.DefaultGroupOptions(), draw)
	} else {
		err = draw(root)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	logger.Info("level built", "input", input, "shapes", len(level.Shapes), "groups", len(level.Groups))
	return write(level, output)
}

// load draws the input file into l.
func load(l *flatpaint.Layer, path string, anchor *flatpaint.Bounds) error {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		return svg.Picture(l, bufio.NewReader(f), anchor)
	}

	if !imageio.IsImage(path) {
		return fmt.Errorf("%w: %s", imageio.ErrUnsupportedFormat, filepath.Ext(path))
	}
	img, format, err := imageio.Load(path)
	if err != nil {
		return err
	}
	flatpaint.Logger().Debug("image loaded", "format", format, "bounds", img.Bounds())
	return l.Picture(img, anchor)
}

func write(level *flatpaint.Level, output string) (err error) {
	if output == "" {
		return level.WriteXML(os.Stdout)
	}
	f, err := os.Create(filepath.Clean(output))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if err := level.WriteXML(bw); err != nil {
		return err
	}
	return bw.Flush()
}
