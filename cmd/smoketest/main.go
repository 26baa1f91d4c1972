// Command smoketest runs the keyword pipeline over a directory of tagged
// .txt files and reports invariant violations and corpus statistics.
//
//	go run ./cmd/smoketest ./corpus
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vbalien/textrank/keywords"
	"github.com/vbalien/textrank/tagged"
)

const (
	maxWorkers     = 4
	expectedArgs   = 2
	bytesToKBShift = 10
	outlierFactor  = 3
	topN           = 10
)

type fileRatio struct {
	path       string
	candidates int
	pairs      int
	ratio      float64
}

type Stats struct {
	mu              sync.Mutex
	filesScanned    int
	parseFail       int
	totalBytes      int64
	totalTokens     int
	totalCandidates int
	totalPairs      int
	emptyFiles      int
	roundTripOK     int
	roundTripFail   int
	nonDeterminism  int
	scoreOutOfRange int
	nonFinite       int
	densityOutliers int
	keywordCounts   map[string]int
	fileRatios      []fileRatio
}

type fileState struct {
	path       string
	bytes      int64
	tokens     int
	candidates int
	pairs      int
	keywords   []keywords.Keyword
	roundTrip  bool
	stable     bool
	outOfRange int
	nonFinite  int
}

func main() {
	if len(os.Args) != expectedArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s <directory>\n", os.Args[0])
		os.Exit(1)
	}

	dirPath := os.Args[1]
	stats := &Stats{keywordCounts: make(map[string]int)}

	var filePaths []string
	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") {
			return nil
		}
		filePaths = append(filePaths, path)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Found %d files to process\n", len(filePaths))
	start := time.Now()

	extractor := keywords.New()
	var g errgroup.Group
	g.SetLimit(maxWorkers)
	for _, path := range filePaths {
		g.Go(func() error {
			processFile(extractor, path, stats)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error processing files: %v\n", err)
		os.Exit(1)
	}

	flagDensityOutliers(stats)

	fmt.Fprintf(os.Stderr, "\nCompleted in %s\n\n", time.Since(start).Round(time.Millisecond))
	printStats(stats)
}

func processFile(e *keywords.Extractor, path string, stats *Stats) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error stat %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(os.Stderr, "START %s (%d KB)\n", path, info.Size()>>bytesToKBShift)
	fileStart := time.Now()

	tokens, err := tagged.ParseLines(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "PARSE_FAIL: %s: %v\n", path, err)
		stats.mu.Lock()
		stats.filesScanned++
		stats.parseFail++
		stats.mu.Unlock()
		return
	}

	state := checkTokens(e, tokens)
	state.path = path
	state.bytes = info.Size()

	if !state.roundTrip {
		fmt.Fprintf(os.Stderr, "ROUND_TRIP_FAIL: %s: formatted tokens parse differently\n", path)
	}
	if !state.stable {
		fmt.Fprintf(os.Stderr, "NONDETERMINISTIC: %s: repeated extraction differs\n", path)
	}
	if state.outOfRange > 0 {
		fmt.Fprintf(os.Stderr, "SCORE_RANGE: %s: %d scores outside [0,1]\n", path, state.outOfRange)
	}

	fmt.Fprintf(os.Stderr, "DONE  %s in %s (%d tokens, %d pairs)\n",
		filepath.Base(path), time.Since(fileStart).Round(time.Millisecond), state.tokens, state.pairs)

	mergeFileState(state, stats)
}

// checkTokens runs the pipeline on tokens and records which invariants hold.
func checkTokens(e *keywords.Extractor, tokens []keywords.Token) *fileState {
	fs := &fileState{tokens: len(tokens)}

	for _, t := range tokens {
		if e.IsCandidate(t) {
			fs.candidates++
		}
	}
	fs.pairs = e.Pairs(tokens).Len()

	fs.keywords = e.Extract(tokens, topN)
	fs.stable = slices.EqualFunc(fs.keywords, e.Extract(tokens, topN), sameKeyword)

	for _, score := range e.Rank(tokens) {
		switch {
		case math.IsNaN(score) || math.IsInf(score, 0):
			fs.nonFinite++
		case score < 0 || score > 1:
			fs.outOfRange++
		}
	}

	reparsed, err := tagged.Parse(tagged.Format(tokens))
	fs.roundTrip = err == nil && slices.Equal(reparsed, tokens)
	return fs
}

func sameKeyword(a, b keywords.Keyword) bool {
	if a.Surface != b.Surface {
		return false
	}
	return a.Score == b.Score || (math.IsNaN(a.Score) && math.IsNaN(b.Score))
}

func mergeFileState(fs *fileState, stats *Stats) {
	stats.mu.Lock()
	defer stats.mu.Unlock()

	stats.filesScanned++
	stats.totalBytes += fs.bytes
	stats.totalTokens += fs.tokens
	stats.totalCandidates += fs.candidates
	stats.totalPairs += fs.pairs
	stats.scoreOutOfRange += fs.outOfRange
	stats.nonFinite += fs.nonFinite

	if len(fs.keywords) == 0 {
		stats.emptyFiles++
	}
	if fs.roundTrip {
		stats.roundTripOK++
	} else {
		stats.roundTripFail++
	}
	if !fs.stable {
		stats.nonDeterminism++
	}
	for _, kw := range fs.keywords {
		stats.keywordCounts[kw.Surface]++
	}

	if fs.candidates > 0 {
		stats.fileRatios = append(stats.fileRatios, fileRatio{
			path:       fs.path,
			candidates: fs.candidates,
			pairs:      fs.pairs,
			ratio:      float64(fs.pairs) / float64(fs.candidates),
		})
	}
}

// flagDensityOutliers computes the median pairs/candidate ratio across all
// files and flags any file whose ratio exceeds 3x the median.
func flagDensityOutliers(stats *Stats) {
	if len(stats.fileRatios) == 0 {
		return
	}

	ratios := make([]float64, len(stats.fileRatios))
	for i, fr := range stats.fileRatios {
		ratios[i] = fr.ratio
	}
	med := computeMedian(ratios)

	for _, fr := range stats.fileRatios {
		if med > 0 && fr.ratio > outlierFactor*med {
			stats.densityOutliers++
			fmt.Fprintf(os.Stderr, "DENSITY_OUTLIER: %s: %d pairs / %d candidates (ratio %.2f, median %.2f)\n",
				fr.path, fr.pairs, fr.candidates, fr.ratio, med)
		}
	}
}

func computeMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2 //nolint:mnd // arithmetic mean of two middle values
	}
	return sorted[mid]
}

func printStats(stats *Stats) {
	fmt.Printf("Files scanned:           %d\n", stats.filesScanned)
	fmt.Printf("Parse FAIL:              %d\n", stats.parseFail)
	fmt.Printf("Total bytes:             %d\n", stats.totalBytes)
	fmt.Printf("Tokens:                  %d\n", stats.totalTokens)
	fmt.Printf("Candidates:              %d\n", stats.totalCandidates)
	fmt.Printf("Co-occurrence pairs:     %d\n", stats.totalPairs)
	fmt.Printf("Files without keywords:  %d\n", stats.emptyFiles)
	fmt.Printf("Round trip OK:           %d\n", stats.roundTripOK)
	fmt.Printf("Round trip FAIL:         %d\n", stats.roundTripFail)
	fmt.Printf("Nondeterministic files:  %d\n", stats.nonDeterminism)
	fmt.Printf("Scores out of range:     %d\n", stats.scoreOutOfRange)
	fmt.Printf("Non-finite scores:       %d\n", stats.nonFinite)
	fmt.Printf("Density outliers:        %d\n", stats.densityOutliers)
	fmt.Println()

	type count struct {
		surface string
		n       int
	}
	counts := make([]count, 0, len(stats.keywordCounts))
	for s, n := range stats.keywordCounts {
		counts = append(counts, count{s, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].n != counts[j].n {
			return counts[i].n > counts[j].n
		}
		return counts[i].surface < counts[j].surface
	})

	fmt.Println("Most frequent keywords:")
	for _, c := range counts[:min(len(counts), topN)] {
		percentage := 0.0
		if stats.filesScanned > 0 {
			percentage = float64(c.n) / float64(stats.filesScanned) * 100
		}
		fmt.Printf("  %-15s %d  (%.1f%% of files)\n", c.surface+":", c.n, percentage)
	}
}
