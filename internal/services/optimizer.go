package services

import (
	"math"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

const (
	// DefaultMaxPasses bounds 2-opt on large stop sets. Small inputs converge long before it.
	DefaultMaxPasses = 1000

	// A reversal must shorten the tour by more than this to count as an improvement.
	improvementEpsilon = 1e-9
	// A restart replaces the incumbent only when shorter by more than this, so
	// float noise between equal-length tours never changes the answer.
	restartEpsilon = 1e-6
)

type optimizerConfig struct {
	maxPasses int
}

// OptimizerOption tunes OptimizeOrder.
type OptimizerOption func(*optimizerConfig)

// WithMaxPasses caps the number of full 2-opt scans per restart. Values < 1 are ignored.
func WithMaxPasses(n int) OptimizerOption {
	return func(c *optimizerConfig) {
		if n >= 1 {
			c.maxPasses = n
		}
	}
}

// costMatrix is symmetric; node 0 is the origin, node i+1 is stop i.
type costMatrix [][]float64

func buildCostMatrix(origin domain.Coordinate, stops []domain.Stop) costMatrix {
	points := make([]domain.Coordinate, 0, len(stops)+1)
	points = append(points, origin)
	for _, s := range stops {
		points = append(points, s.Coordinate)
	}

	m := make(costMatrix, len(points))
	for i := range m {
		m[i] = make([]float64, len(points))
	}
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			d := geo.DistanceMeters(points[i], points[j])
			m[i][j] = d
			m[j][i] = d
		}
	}
	return m
}

// tourLength sums consecutive edges, closing the cycle back to tour[0].
func tourLength(m costMatrix, tour []int) float64 {
	total := 0.0
	for i := range tour {
		total += m[tour[i]][tour[(i+1)%len(tour)]]
	}
	return total
}

// OptimizeOrder returns a visiting order for req.Stops as indexes into req.Stops.
//
// The tour is built with multi-restart nearest-neighbor construction and refined
// with 2-opt, always as a closed cycle through the origin. ReturnToOrigin does not
// affect the order; it only changes how the aggregator accounts for the final leg.
// The result is a heuristic, not a guaranteed optimum, but it is deterministic for
// identical input.
func OptimizeOrder(req domain.StopOrderRequest, opts ...OptimizerOption) []int {
	cfg := optimizerConfig{maxPasses: DefaultMaxPasses}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(req.Stops)
	switch n {
	case 0:
		return []int{}
	case 1:
		return []int{0}
	}

	m := buildCostMatrix(req.Origin, req.Stops)

	var best []int
	bestLen := math.Inf(1)

	// Restart from every node in index order, origin first.
	for start := 0; start <= n; start++ {
		tour := nearestNeighborTour(m, start)
		twoOpt(m, tour, cfg.maxPasses)

		if l := tourLength(m, tour); best == nil || l < bestLen-restartEpsilon {
			best = tour
			bestLen = l
		}
	}

	return stopOrder(best)
}

// nearestNeighborTour greedily visits the closest unvisited node.
// Ties resolve to the lowest node index so the result is deterministic.
func nearestNeighborTour(m costMatrix, start int) []int {
	size := len(m)
	visited := make([]bool, size)
	tour := make([]int, 0, size)

	current := start
	visited[current] = true
	tour = append(tour, current)

	for len(tour) < size {
		next := -1
		minDist := math.Inf(1)
		for candidate := 0; candidate < size; candidate++ {
			if visited[candidate] {
				continue
			}
			if d := m[current][candidate]; next == -1 || d < minDist {
				next = candidate
				minDist = d
			}
		}

		visited[next] = true
		tour = append(tour, next)
		current = next
	}

	return tour
}

// twoOpt improves tour in place by reversing segments while that strictly
// shortens the closed tour. It stops at a local optimum or after maxPasses scans.
func twoOpt(m costMatrix, tour []int, maxPasses int) {
	size := len(tour)
	if size < 4 {
		// Every cycle through three or fewer nodes has the same length.
		return
	}

	for pass := 0; pass < maxPasses; pass++ {
		improved := false

		for i := 0; i < size-1; i++ {
			for j := i + 1; j < size; j++ {
				if i == 0 && j == size-1 {
					// Reversing the whole cycle leaves it unchanged.
					continue
				}

				a := tour[(i-1+size)%size]
				b := tour[i]
				c := tour[j]
				d := tour[(j+1)%size]

				delta := m[a][c] + m[b][d] - m[a][b] - m[c][d]
				if delta < -improvementEpsilon {
					reverse(tour, i, j)
					improved = true
				}
			}
		}

		if !improved {
			return
		}
	}
}

func reverse(tour []int, i, j int) {
	for i < j {
		tour[i], tour[j] = tour[j], tour[i]
		i++
		j--
	}
}

// stopOrder rotates tour to start at the origin and maps nodes back to stop indexes.
func stopOrder(tour []int) []int {
	originAt := 0
	for i, node := range tour {
		if node == 0 {
			originAt = i
			break
		}
	}

	order := make([]int, 0, len(tour)-1)
	for k := 1; k < len(tour); k++ {
		order = append(order, tour[(originAt+k)%len(tour)]-1)
	}
	return order
}
