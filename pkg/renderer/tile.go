package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-path-tracer/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major across the grid
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	seed   int64
}

// NewTile creates a new tile with the specified bounds
// Its sampler is seeded with seed + id, so results don't depend on which worker renders it
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		seed:   seed + int64(id),
	}
}

// NewSampler returns a fresh deterministic sampler for this tile
func (t *Tile) NewSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(t.seed)))
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}
