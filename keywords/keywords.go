// Package keywords extracts keywords from a part-of-speech tagged token
// sequence with co-occurrence TextRank.
//
// Candidate tokens (accepted tag, surface of at least two bytes, not a stop
// token) that appear within a sliding window of each other are counted as
// co-occurring. Every counted pair becomes a weighted undirected edge and the
// graph is ranked with graph.Rank. Scores are normalized so the best keyword
// scores 1.
//
// Two API layers:
//
//   - Structured: Extractor.Extract and Extract return []Keyword with
//     surfaces and scores; Extractor.Pairs and Extractor.Rank expose the
//     intermediate co-occurrence counts and the unsorted score map.
//   - Convenience: Keywords returns []string of keyword surfaces.
//
// An Extractor is immutable after New and safe for concurrent use by
// multiple goroutines. Each call builds its own graph.
//
// Known limitations:
//
//   - Surface length is measured in bytes, so every Hangul syllable (three
//     bytes in UTF-8) passes the two-unit minimum on its own. Single ASCII
//     letters are rejected, but any single non-ASCII rune of two or more
//     bytes (é, ß, a CJK ideograph) is accepted like a Hangul syllable.
//   - Ranking uses an in-place update, so nodes in a perfectly symmetric graph
//     receive close but not identical scores.
//   - A graph whose weights cannot be normalized (for example an edge of
//     weight 0) produces NaN or ±Inf scores. They are returned as is.
//   - Tokens are not normalized here. Use tagged.Parse to read analyzer
//     output with NFC normalization applied.
package keywords

import (
	"encoding/json"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/vbalien/textrank/graph"
)

const (
	defaultTopN       = 10 // number of keywords returned by Keywords
	defaultWindowSize = 5  // co-occurrence sliding window size
	minSurfaceBytes   = 2  // minimum surface length to be a candidate
)

// Token is one analyzed unit: its surface form and part-of-speech tag.
type Token struct {
	Surface string `json:"surface" yaml:"surface"`
	Tag     string `json:"tag" yaml:"tag"`
}

// Keyword represents a single extracted keyword with its normalized score.
type Keyword struct {
	Surface string  `json:"surface" yaml:"surface"`
	Score   float64 `json:"score" yaml:"score"`
}

// MarshalJSON encodes non-finite scores as null, which encoding/json would
// otherwise reject.
func (k Keyword) MarshalJSON() ([]byte, error) {
	type wire struct {
		Surface string   `json:"surface"`
		Score   *float64 `json:"score"`
	}
	w := wire{Surface: k.Surface}
	if !math.IsNaN(k.Score) && !math.IsInf(k.Score, 0) {
		w.Score = &k.Score
	}
	return json.Marshal(w)
}

// Extractor holds the filter and ranking configuration.
type Extractor struct {
	window int
	tags   map[string]struct{}
	stops  map[Token]struct{}
	rank   graph.Options
	logger *slog.Logger
}

// New returns an Extractor configured with the defaults (window 5, tags
// NNG NNP VV VA, the built-in stop tokens, damping 0.85, threshold 1e-5,
// 10 steps) overridden by opts.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		window: defaultWindowSize,
		tags:   toTagSet(defaultCandidateTags),
		stops:  toStopSet(defaultStopTokens),
		rank:   graph.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = New()

// Pairs returns the co-occurrence counts of the candidate tokens.
func (e *Extractor) Pairs(tokens []Token) *Pairs {
	return e.buildPairs(tokens)
}

// Rank returns the normalized score of every node of the co-occurrence graph,
// unsorted. Returns nil when no pair was counted.
func (e *Extractor) Rank(tokens []Token) map[string]float64 {
	res, ok := e.rankTokens(tokens)
	if !ok {
		return nil
	}
	return res.Scores
}

// Extract returns the top n keywords of tokens.
// Results are sorted by score descending, with lexicographic tie-breaking.
// Returns nil when n <= 0 or when no candidate pair co-occurs. When fewer
// than n nodes exist, all of them are returned.
func (e *Extractor) Extract(tokens []Token, n int) []Keyword {
	if n <= 0 {
		return nil
	}

	candidates := e.scoreTextRank(tokens)
	if len(candidates) == 0 {
		return nil
	}
	slices.SortStableFunc(candidates, cmpKeyword)

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// Extract returns the top n keywords of tokens using the default Extractor.
func Extract(tokens []Token, n int) []Keyword {
	return defaultExtractor.Extract(tokens, n)
}

// Keywords returns the surfaces of the top 10 keywords using the default
// Extractor. Returns nil when no keywords are found.
func Keywords(tokens []Token) []string {
	kws := defaultExtractor.Extract(tokens, defaultTopN)
	if len(kws) == 0 {
		return nil
	}
	result := make([]string, len(kws))
	for i, kw := range kws {
		result[i] = kw.Surface
	}
	return result
}

// cmpKeyword orders by score descending, then surface ascending. NaN scores
// sort after every number.
func cmpKeyword(a, b Keyword) int {
	aNaN, bNaN := math.IsNaN(a.Score), math.IsNaN(b.Score)
	switch {
	case aNaN && !bNaN:
		return 1
	case !aNaN && bNaN:
		return -1
	case !aNaN && a.Score != b.Score:
		if a.Score > b.Score {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Surface, b.Surface)
}
