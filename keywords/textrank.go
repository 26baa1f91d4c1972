package keywords

import "github.com/vbalien/textrank/graph"

func (e *Extractor) scoreTextRank(tokens []Token) []Keyword {
	res, ok := e.rankTokens(tokens)
	if !ok {
		return nil
	}

	result := make([]Keyword, 0, len(res.Scores))
	for node, score := range res.Scores {
		result = append(result, Keyword{Surface: node, Score: score})
	}
	return result
}

// rankTokens reports false when no pair was counted.
func (e *Extractor) rankTokens(tokens []Token) (graph.Result, bool) {
	pairs := e.buildPairs(tokens)
	g := buildGraph(pairs)

	if e.logger != nil {
		e.logger.Debug("co-occurrence graph",
			"tokens", len(tokens),
			"window", e.window,
			"pairs", pairs.Len(),
			"nodes", g.Len(),
		)
	}

	if g.Len() == 0 {
		return graph.Result{}, false
	}
	return graph.Rank(g, e.rank), true
}

// buildGraph adds one edge per nonzero pair in first-seen order, so node order
// and every adjacency list follow the token sequence.
func buildGraph(pairs *Pairs) *graph.Graph {
	g := graph.New()
	for _, p := range pairs.Ordered() {
		if p.Count == 0 {
			continue
		}
		g.AddEdge(p.A, p.B, p.Count)
	}
	return g
}
