package vision

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Background color detection parameters.
const (
	DefaultColorGridSize = 100 // pixels per sampled cell
	DefaultMaxColorCount = 5   // distinct background colors per page

	nearWhiteMean    = 230.0 // cells at least this bright are background paper
	flatChannelStdev = 10.0  // cells with less channel spread carry no color
	minClusterCells  = 3     // clusters need this many supporting cells
)

// ColorConfig holds tunable parameters for background color detection.
type ColorConfig struct {
	GridSize  int
	MaxColors int
}

// DefaultColorConfig returns the parameter set tuned for 150 DPI form pages.
func DefaultColorConfig() ColorConfig {
	return ColorConfig{
		GridSize:  DefaultColorGridSize,
		MaxColors: DefaultMaxColorCount,
	}
}

// ColorDetector finds shaded background regions on rasterized pages.
type ColorDetector struct {
	config ColorConfig
}

// NewColorDetector creates a color detector with the given configuration.
func NewColorDetector(config ColorConfig) *ColorDetector {
	return &ColorDetector{config: config}
}

// cellSample is a sampled grid cell carried through clustering so the
// originating position can be recovered from each cluster.
type cellSample struct {
	x, y   int
	coords clusters.Coordinates
}

func (s cellSample) Coordinates() clusters.Coordinates { return s.coords }

func (s cellSample) Distance(p clusters.Coordinates) float64 {
	return s.coords.Distance(p)
}

// Detect samples the page on a coarse grid, discards paper-white and
// colorless cells, clusters the remaining mean colors with k-means, and
// returns one region per color cluster with enough supporting cells.
func (d *ColorDetector) Detect(img image.Image, dpi float64) ([]ColorRegion, error) {
	grid := d.config.GridSize
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var samples clusters.Observations
	var cells []cellSample
	for y := 0; y+grid < h; y += grid {
		for x := 0; x+grid < w; x += grid {
			mean, stdev := cellColorStats(img, bounds.Min.X+x, bounds.Min.Y+y, grid)
			if (mean[0]+mean[1]+mean[2])/3 >= nearWhiteMean || stdev <= flatChannelStdev {
				continue
			}
			cell := cellSample{x: x, y: y, coords: clusters.Coordinates{mean[0], mean[1], mean[2]}}
			cells = append(cells, cell)
			samples = append(samples, cell)
		}
	}

	if len(cells) < 2 {
		return nil, nil
	}

	var partition clusters.Clusters
	if k := d.clusterCount(cells); k < 2 {
		// All cells share one color; nothing to partition.
		partition = clusters.Clusters{singleCluster(samples)}
	} else {
		km := kmeans.New()
		var err error
		partition, err = km.Partition(samples, k)
		if err != nil {
			return nil, fmt.Errorf("color clustering failed: %w", err)
		}
	}

	ppp := PointsPerPixel(dpi)
	var regions []ColorRegion
	for _, cluster := range partition {
		if len(cluster.Observations) < minClusterCells {
			continue
		}

		minX, minY := w, h
		maxX, maxY := 0, 0
		for _, obs := range cluster.Observations {
			cell, ok := obs.(cellSample)
			if !ok {
				continue
			}
			minX = minInt(minX, cell.x)
			minY = minInt(minY, cell.y)
			maxX = maxInt(maxX, cell.x+grid)
			maxY = maxInt(maxY, cell.y+grid)
		}

		regions = append(regions, ColorRegion{
			ElementType: "background_color",
			Position: RegionPosition{
				X:      round2(float64(minX) * ppp),
				Y:      round2(float64(minY) * ppp),
				Width:  round2(float64(maxX-minX) * ppp),
				Height: round2(float64(maxY-minY) * ppp),
				Units:  PositionUnits,
			},
			Color:       centerColor(cluster.Center),
			RegionCount: len(cluster.Observations),
		})
	}

	return regions, nil
}

// clusterCount caps k at both the configured maximum and the number of
// distinct cell colors, so k-means never partitions duplicates into empty
// clusters.
func (d *ColorDetector) clusterCount(cells []cellSample) int {
	distinct := make(map[[3]int]struct{}, len(cells))
	for _, c := range cells {
		key := [3]int{int(c.coords[0]), int(c.coords[1]), int(c.coords[2])}
		distinct[key] = struct{}{}
	}

	k := d.config.MaxColors
	if len(distinct) < k {
		k = len(distinct)
	}
	if len(cells) < k {
		k = len(cells)
	}
	if k < 1 {
		k = 1
	}
	return k
}

func singleCluster(samples clusters.Observations) clusters.Cluster {
	var sum [3]float64
	for _, obs := range samples {
		c := obs.Coordinates()
		sum[0] += c[0]
		sum[1] += c[1]
		sum[2] += c[2]
	}
	n := float64(len(samples))
	return clusters.Cluster{
		Center:       clusters.Coordinates{sum[0] / n, sum[1] / n, sum[2] / n},
		Observations: samples,
	}
}

// cellColorStats returns the per-channel mean of a grid cell and the standard
// deviation across the three channel means.
func cellColorStats(img image.Image, x0, y0, grid int) ([3]float64, float64) {
	var sum [3]float64
	count := 0
	for y := y0; y < y0+grid; y++ {
		for x := x0; x < x0+grid; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sum[0] += float64(r >> 8)
			sum[1] += float64(g >> 8)
			sum[2] += float64(b >> 8)
			count++
		}
	}

	var mean [3]float64
	for i := range mean {
		mean[i] = sum[i] / float64(count)
	}

	avg := (mean[0] + mean[1] + mean[2]) / 3
	variance := 0.0
	for _, m := range mean {
		variance += (m - avg) * (m - avg)
	}
	return mean, math.Sqrt(variance / 3)
}

func centerColor(center clusters.Coordinates) ColorValue {
	r := clampInt(int(math.Round(center[0])), 0, 255)
	g := clampInt(int(math.Round(center[1])), 0, 255)
	b := clampInt(int(math.Round(center[2])), 0, 255)

	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	return ColorValue{
		RGB: [3]int{r, g, b},
		Hex: c.Hex(),
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
