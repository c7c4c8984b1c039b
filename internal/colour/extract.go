package colour

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"sort"
)

// Extractor derives a palette from an image using k-means clustering in
// RGB space. Extraction is deterministic for a given image: the random
// source is seeded from a hash of the pixel content, so the same image
// always yields the same palette.
type Extractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
}

// NewExtractor creates an Extractor with default settings.
func NewExtractor() *Extractor {
	return &Extractor{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    2000,
	}
}

// Extract returns up to count colours from the image, ordered by how
// much of the image each covers (largest cluster first). If the image
// holds fewer unique colours than requested, all of them are returned.
func (e *Extractor) Extract(img image.Image, count int) ([]RGB, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("colour count too large: %d (maximum: 256)", count)
	}

	pixels := e.samplePixels(img)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	unique := make([]RGB, 0, len(pixels))
	seen := make(map[RGB]bool)
	for _, p := range pixels {
		if !seen[p] {
			unique = append(unique, p)
			seen[p] = true
		}
	}

	if count >= len(unique) {
		sort.Slice(unique, func(i, j int) bool {
			return unique[i].Hex() < unique[j].Hex()
		})
		return unique, nil
	}

	rng := rand.New(rand.NewSource(contentSeed(img)))
	centroids, weights := e.kmeans(pixels, count, rng)

	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		wi, wj := weights[order[i]], weights[order[j]]
		if wi != wj {
			return wi > wj
		}
		return centroids[order[i]].rgb().Hex() < centroids[order[j]].rgb().Hex()
	})

	out := make([]RGB, len(order))
	for i, idx := range order {
		out[i] = centroids[idx].rgb()
	}
	return out, nil
}

// contentSeed hashes a grid sample of the pixel data into a seed, so
// extraction is reproducible by image content rather than by path.
func contentSeed(img image.Image) int64 {
	bounds := img.Bounds()
	hasher := sha256.New()

	dims := make([]byte, 8)
	binary.LittleEndian.PutUint32(dims[0:4], uint32(bounds.Dx()))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(bounds.Dy()))
	hasher.Write(dims)

	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixel := make([]byte, 3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, _ := img.At(x, y).RGBA()
			pixel[0] = byte(r >> 8)
			pixel[1] = byte(g >> 8)
			pixel[2] = byte(b >> 8)
			hasher.Write(pixel)
		}
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8]))
}

// samplePixels samples the image on a grid. Large images are subsampled
// for performance; small ones are read in full.
func (e *Extractor) samplePixels(img image.Image) []RGB {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()

	if total <= e.maxSamples {
		pixels := make([]RGB, 0, total)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				pixels = append(pixels, rgbOf(img.At(x, y)))
			}
		}
		return pixels
	}

	step := max(int(math.Sqrt(float64(total)/float64(e.maxSamples))), 1)
	pixels := make([]RGB, 0, e.maxSamples)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pixels = append(pixels, rgbOf(img.At(x, y)))
			if len(pixels) >= e.maxSamples {
				return pixels
			}
		}
	}
	return pixels
}

func rgbOf(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// point3D is a point in RGB space.
type point3D struct {
	R, G, B float64
}

func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func (p point3D) rgb() RGB {
	return RGB{R: uint8(p.R), G: uint8(p.G), B: uint8(p.B)}
}

// kmeans clusters the pixels into k groups and returns the centroids
// with their relative cluster sizes.
func (e *Extractor) kmeans(pixels []RGB, k int, rng *rand.Rand) ([]point3D, []float64) {
	points := make([]point3D, len(pixels))
	for i, p := range pixels {
		points[i] = point3D{R: float64(p.R), G: float64(p.G), B: float64(p.B)}
	}

	centroids := e.initialCentroids(points, k, rng)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := nearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Converged when under 1% of assignments moved.
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		next := e.recalculate(points, assignments, k, rng)

		movement := 0.0
		for i := range centroids {
			movement += centroids[i].distance(next[i])
		}
		centroids = next

		if movement/float64(k) < e.convergence {
			break
		}
	}

	weights := make([]float64, k)
	for _, a := range assignments {
		weights[a]++
	}
	total := float64(len(assignments))
	for i := range weights {
		weights[i] /= total
	}

	return centroids, weights
}

// initialCentroids seeds the clusters with k-means++: each new centroid
// is picked with probability proportional to its squared distance from
// the nearest existing one.
func (e *Extractor) initialCentroids(points []point3D, k int, rng *rand.Rand) []point3D {
	if len(points) == 0 || k == 0 {
		return []point3D{}
	}

	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	for len(centroids) < k {
		distances := make([]float64, len(points))
		total := 0.0

		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				if d := point.distance(centroid); d < minDist {
					minDist = d
				}
			}
			distances[i] = minDist * minDist
			total += distances[i]
		}

		if total == 0 {
			// Remaining points coincide with existing centroids; nudge a
			// duplicate so the loop terminates.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		for i, dist := range distances {
			cumulative += dist
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}

	return centroids
}

func nearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		if d := point.distance(centroid); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

func (e *Extractor) recalculate(points []point3D, assignments []int, k int, rng *rand.Rand) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := 0; i < k; i++ {
		if counts[i] > 0 {
			centroids[i] = point3D{
				R: sums[i].R / float64(counts[i]),
				G: sums[i].G / float64(counts[i]),
				B: sums[i].B / float64(counts[i]),
			}
		} else {
			centroids[i] = points[rng.Intn(len(points))]
		}
	}
	return centroids
}
