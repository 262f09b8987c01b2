// Package report renders diagnostic plots for a finished render
package report

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/df07/go-path-tracer/pkg/renderer"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultHistogramBins is the number of luminance bins used by WriteProfile
const DefaultHistogramBins = 64

// ErrNoData is returned when there is nothing to plot
var ErrNoData = errors.New("no data to plot")

// TileTimeGrid lays per-tile render seconds out on the tile grid
// Row 0 is the bottom row of the image so the plot reads like the picture
type TileTimeGrid struct {
	seconds  [][]float64 // [column][row]
	min, max float64
}

// NewTileTimeGrid builds the grid from per-tile statistics
func NewTileTimeGrid(tiles []renderer.TileStats) (*TileTimeGrid, error) {
	if len(tiles) == 0 {
		return nil, ErrNoData
	}

	colIndex := indexOf(tiles, func(t renderer.TileStats) int { return t.Bounds.Min.X })
	rowIndex := indexOf(tiles, func(t renderer.TileStats) int { return t.Bounds.Min.Y })
	rows := len(rowIndex)

	grid := &TileTimeGrid{seconds: make([][]float64, len(colIndex))}
	for c := range grid.seconds {
		grid.seconds[c] = make([]float64, rows)
	}

	first := true
	for _, tile := range tiles {
		c := colIndex[tile.Bounds.Min.X]
		r := rows - 1 - rowIndex[tile.Bounds.Min.Y]
		s := tile.Duration.Seconds()
		grid.seconds[c][r] = s

		if first || s < grid.min {
			grid.min = s
		}
		if first || s > grid.max {
			grid.max = s
		}
		first = false
	}
	if grid.max <= grid.min {
		grid.max = grid.min + 1e-9
	}
	return grid, nil
}

// indexOf maps each distinct key to its rank in ascending order
func indexOf(tiles []renderer.TileStats, key func(renderer.TileStats) int) map[int]int {
	seen := make(map[int]bool)
	var keys []int
	for _, tile := range tiles {
		k := key(tile)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Ints(keys)

	index := make(map[int]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}
	return index
}

func (g *TileTimeGrid) Dims() (c, r int) {
	if len(g.seconds) == 0 {
		return 0, 0
	}
	return len(g.seconds), len(g.seconds[0])
}

func (g *TileTimeGrid) Z(c, r int) float64 { return g.seconds[c][r] }
func (g *TileTimeGrid) X(c int) float64    { return float64(c) }
func (g *TileTimeGrid) Y(r int) float64    { return float64(r) }
func (g *TileTimeGrid) Min() float64       { return g.min }
func (g *TileTimeGrid) Max() float64       { return g.max }

// TileHeatMap plots how long each tile took to render
func TileHeatMap(stats renderer.RenderStats) (*plot.Plot, error) {
	grid, err := NewTileTimeGrid(stats.Tiles)
	if err != nil {
		return nil, err
	}

	plt := plot.New()
	plt.Title.Text = "Tile render time (s)"
	plt.X.Label.Text = "tile column"
	plt.Y.Label.Text = "tile row (from bottom)"

	hm := plotter.NewHeatMap(grid, palette.Heat(256, 1))
	hm.Underflow = color.Black
	hm.Rasterized = true
	plt.Add(hm)

	return plt, nil
}

// LuminanceHistogram plots the distribution of pixel luminance
func LuminanceHistogram(frame *renderer.Frame, bins int) (*plot.Plot, error) {
	if frame == nil || len(frame.Pixels) == 0 {
		return nil, ErrNoData
	}

	hist, err := plotter.NewHist(plotter.Values(frame.Luminances()), bins)
	if err != nil {
		return nil, fmt.Errorf("failed to build histogram: %w", err)
	}

	plt := plot.New()
	plt.Title.Text = "Pixel luminance"
	plt.X.Label.Text = "luminance (linear)"
	plt.Y.Label.Text = "pixels"
	plt.Add(hist)

	return plt, nil
}

// WriteProfile saves the tile heat map and luminance histogram as <prefix>-tiles.png
// and <prefix>-luminance.png
func WriteProfile(prefix string, frame *renderer.Frame, stats renderer.RenderStats) ([]string, error) {
	heat, err := TileHeatMap(stats)
	if err != nil {
		return nil, fmt.Errorf("tile heat map: %w", err)
	}
	hist, err := LuminanceHistogram(frame, DefaultHistogramBins)
	if err != nil {
		return nil, fmt.Errorf("luminance histogram: %w", err)
	}

	files := []string{prefix + "-tiles.png", prefix + "-luminance.png"}
	for i, plt := range []*plot.Plot{heat, hist} {
		if err := plt.Save(20*vg.Centimeter, 15*vg.Centimeter, files[i]); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", files[i], err)
		}
	}
	return files, nil
}
