package graph

import (
	"log/slog"
	"math"
	"slices"
)

// Default ranking parameters.
const (
	DefaultDamping  = 0.85 // probability of following an edge
	DefaultMinDiff  = 1e-5 // convergence threshold on the step-to-step weight sum
	DefaultMaxSteps = 10   // hard cap on iterations
)

// Options tunes Rank. The zero value is not useful; start from DefaultOptions.
type Options struct {
	Damping  float64
	MinDiff  float64
	MaxSteps int

	// Logger receives one debug record per step and a summary record.
	// Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns the parameters that reproduce reference scores.
func DefaultOptions() Options {
	return Options{
		Damping:  DefaultDamping,
		MinDiff:  DefaultMinDiff,
		MaxSteps: DefaultMaxSteps,
	}
}

// Result holds the outcome of a ranking run.
type Result struct {
	Scores    map[string]float64 // normalized scores
	Weights   map[string]float64 // weights before normalization
	Steps     int                // iterations actually run
	Converged bool               // stopped on MinDiff rather than MaxSteps
}

// Rank runs the damped weight redistribution over g and returns normalized
// scores for every node.
//
// After step k the sum of all weights is appended to a history seeded with 0,
// and from the second step on the run stops when history[k] and history[k-1]
// differ by at most MinDiff. The check lags one step behind: the second step
// compares the first step's sum with the 0 seed, and a converged sum is only
// detected one step after it occurs.
//
// Normalization seeds min and max at 0 and computes
// (w - min/10) / (max - min/10). A zero denominator yields NaN or ±Inf.
func Rank(g *Graph, opts Options) Result {
	n := g.Len()
	weights := make(map[string]float64, n)
	out := make(map[string]float64, n)

	defaultWeight := 1.0 / float64(max(n, 1))
	for node := range g.adj {
		weights[node] = defaultWeight
		out[node] = g.OutWeight(node)
	}

	sorted := slices.Clone(g.order)
	slices.Sort(sorted)

	res := Result{Weights: weights}
	history := []float64{0}
	for step := range opts.MaxSteps {
		for _, node := range sorted {
			sum := 0.0
			for _, e := range g.adj[node] {
				sum += (e.Weight / out[e.To]) * weights[e.To]
			}
			weights[node] = (1 - opts.Damping) + opts.Damping*sum
		}

		total := 0.0
		for _, node := range g.order {
			total += weights[node]
		}
		history = append(history, total)
		res.Steps = step + 1

		if opts.Logger != nil {
			opts.Logger.Debug("rank step", "step", step, "sum", total)
		}

		if step >= 1 && math.Abs(history[step]-history[step-1]) <= opts.MinDiff {
			res.Converged = true
			break
		}
	}

	minRank, maxRank := 0.0, 0.0
	for _, w := range weights {
		if w < minRank {
			minRank = w
		}
		if w > maxRank {
			maxRank = w
		}
	}

	res.Scores = make(map[string]float64, n)
	for node, w := range weights {
		res.Scores[node] = (w - minRank/10.0) / (maxRank - minRank/10.0)
	}

	if opts.Logger != nil {
		opts.Logger.Debug("ranked",
			"nodes", n,
			"steps", res.Steps,
			"converged", res.Converged,
			"min", minRank,
			"max", maxRank,
		)
	}

	return res
}
