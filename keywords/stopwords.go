package keywords

// defaultStopTokens are high-frequency Korean verb stems that carry no
// discriminative value even though their tag is a candidate tag. A stop token
// matches on surface and tag together.
var defaultStopTokens = []Token{
	{Surface: "있", Tag: "VV"},
	{Surface: "하", Tag: "VV"},
	{Surface: "되", Tag: "VV"},
	{Surface: "없", Tag: "VV"},
	{Surface: "보", Tag: "VV"},
}

// defaultCandidateTags are the Sejong tags eligible for the graph:
// common noun, proper noun, verb, adjective.
var defaultCandidateTags = []string{"NNG", "NNP", "VV", "VA"}

// DefaultStopTokens returns a copy of the built-in stop tokens.
func DefaultStopTokens() []Token {
	return append([]Token(nil), defaultStopTokens...)
}

// DefaultCandidateTags returns a copy of the built-in candidate tags.
func DefaultCandidateTags() []string {
	return append([]string(nil), defaultCandidateTags...)
}

func toTagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func toStopSet(tokens []Token) map[Token]struct{} {
	set := make(map[Token]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func (e *Extractor) isStopToken(t Token) bool {
	_, ok := e.stops[t]
	return ok
}

// IsCandidate reports whether t may take part in a co-occurrence pair.
func (e *Extractor) IsCandidate(t Token) bool {
	if _, ok := e.tags[t.Tag]; !ok {
		return false
	}
	if len(t.Surface) < minSurfaceBytes {
		return false
	}
	return !e.isStopToken(t)
}
